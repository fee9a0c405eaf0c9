package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBot(t *testing.T, handler http.HandlerFunc) *Bot {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	bot := New("123:token", "42")
	bot.apiBase = server.URL
	return bot
}

func TestSendMessage(t *testing.T) {
	var payload map[string]interface{}

	bot := newTestBot(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bot123:token/sendMessage", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.Write([]byte(`{"ok":true}`))
	})

	require.NoError(t, bot.SendMessage(context.Background(), "<b>로또</b> 수집 완료"))

	assert.Equal(t, "42", payload["chat_id"])
	assert.Equal(t, "<b>로또</b> 수집 완료", payload["text"])
	assert.Equal(t, "HTML", payload["parse_mode"])
}

func TestSendMessage_Error(t *testing.T) {
	bot := newTestBot(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	})

	err := bot.SendMessage(context.Background(), "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "chat not found")
}

func TestSendMessageSafe_DoesNotPanic(t *testing.T) {
	bot := newTestBot(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	assert.NotPanics(t, func() {
		bot.SendMessageSafe(context.Background(), "test")
	})
}
