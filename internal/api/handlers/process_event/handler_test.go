package process_event

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablebook/reservation-service/internal/conversation"
)

type fakeDispatcher struct {
	gotEvent *conversation.Event
	prompts  []conversation.Prompt
	failWith error
}

func (f *fakeDispatcher) Dispatch(_ context.Context, event conversation.Event) ([]conversation.Prompt, error) {
	f.gotEvent = &event
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.prompts, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestProcessEventHandler(t *testing.T) {
	dispatcher := &fakeDispatcher{
		prompts: []conversation.Prompt{
			{RequesterID: 42, Kind: conversation.PromptDateOptions},
		},
	}
	h := NewHandler(dispatcher, noopLogger{}, nil)

	body := `{"requesterId": 42, "kind": "structured_choice", "payload": "start"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Handle(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp ProcessEventResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Prompts, 1)
	assert.Equal(t, conversation.PromptDateOptions, resp.Prompts[0].Kind)

	require.NotNil(t, dispatcher.gotEvent)
	assert.Equal(t, int64(42), dispatcher.gotEvent.RequesterID)
	assert.Equal(t, conversation.EventChoice, dispatcher.gotEvent.Kind)
	assert.Equal(t, "start", dispatcher.gotEvent.Payload)
}

func TestProcessEventHandlerBadBody(t *testing.T) {
	h := NewHandler(&fakeDispatcher{}, noopLogger{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	h.Handle(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProcessEventHandlerMissingRequester(t *testing.T) {
	h := NewHandler(&fakeDispatcher{}, noopLogger{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(`{"payload": "start"}`))
	w := httptest.NewRecorder()

	h.Handle(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProcessEventHandlerDispatchFailure(t *testing.T) {
	h := NewHandler(&fakeDispatcher{failWith: errors.New("session store down")}, noopLogger{}, nil)

	body := `{"requesterId": 42, "payload": "start"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Handle(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
