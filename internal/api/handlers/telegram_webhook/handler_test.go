package telegram_webhook

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConversation struct {
	updates []tgbotapi.Update
	err     error
}

func (f *fakeConversation) HandleUpdate(_ context.Context, update tgbotapi.Update) error {
	f.updates = append(f.updates, update)
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const callbackUpdate = `{
  "update_id": 1001,
  "callback_query": {
    "id": "cb-1",
    "from": {"id": 7, "is_bot": false, "first_name": "Иван"},
    "message": {"message_id": 5, "date": 0, "chat": {"id": 70, "type": "private"}},
    "data": "branch_1"
  }
}`

func post(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/webhook/telegram", strings.NewReader(body)))
	return rec
}

func TestHandle_PassesUpdateToConversation(t *testing.T) {
	conv := &fakeConversation{}

	rec := post(NewHandler(conv, nopLogger{}), callbackUpdate)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, conv.updates, 1)
	update := conv.updates[0]
	assert.Equal(t, 1001, update.UpdateID)
	require.NotNil(t, update.CallbackQuery)
	assert.Equal(t, "branch_1", update.CallbackQuery.Data)
	assert.Equal(t, int64(70), update.CallbackQuery.Message.Chat.ID)
}

func TestHandle_ConversationErrorStillAcknowledged(t *testing.T) {
	conv := &fakeConversation{err: errors.New("clinic unavailable")}

	rec := post(NewHandler(conv, nopLogger{}), callbackUpdate)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandle_InvalidBody(t *testing.T) {
	conv := &fakeConversation{}

	rec := post(NewHandler(conv, nopLogger{}), "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, conv.updates)
}
