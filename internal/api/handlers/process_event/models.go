package process_event

import (
	"github.com/tablebook/reservation-service/internal/conversation"
)

// ProcessEventRequest HTTP request model
type ProcessEventRequest struct {
	RequesterID int64   `json:"requesterId"`
	Kind        string  `json:"kind"`
	Payload     string  `json:"payload"`
	Username    *string `json:"username,omitempty"`
}

// ProcessEventResponse HTTP response model
type ProcessEventResponse struct {
	Prompts []conversation.Prompt `json:"prompts"`
}

// ToEvent конвертирует HTTP запрос в событие диалога
func (r *ProcessEventRequest) ToEvent() conversation.Event {
	kind := conversation.EventKind(r.Kind)
	if kind == "" {
		kind = conversation.EventText
	}

	return conversation.Event{
		RequesterID: r.RequesterID,
		Kind:        kind,
		Payload:     r.Payload,
		Username:    r.Username,
	}
}
