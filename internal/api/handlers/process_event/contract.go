package process_event

import (
	"context"

	"github.com/tablebook/reservation-service/internal/conversation"
)

type EventDispatcher interface {
	Dispatch(ctx context.Context, event conversation.Event) ([]conversation.Prompt, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
