package notifier

import (
	"SalesBoard-Backend/internal/config"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestNotifier(apiURL string) *GroupMeNotifier {
	return New(&config.Bot{
		BotID:       "test-bot-id",
		APIURL:      apiURL,
		SendTimeout: 5 * time.Second,
	}, zap.NewNop())
}

func TestSendPostsBotMessage(t *testing.T) {
	var got botPostRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted) // GroupMe отвечает 202
	}))
	defer srv.Close()

	n := newTestNotifier(srv.URL)
	require.NoError(t, n.Send(context.Background(), "🏆 Weekly Sales Leaderboard"))

	assert.Equal(t, "test-bot-id", got.BotID)
	assert.Equal(t, "🏆 Weekly Sales Leaderboard", got.Text)
}

func TestSendReturnsErrorOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad bot id", http.StatusNotFound)
	}))
	defer srv.Close()

	n := newTestNotifier(srv.URL)
	err := n.Send(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestSendReturnsErrorWhenUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // сервер уже закрыт

	n := newTestNotifier(srv.URL)
	assert.Error(t, n.Send(context.Background(), "hello"))
}

func TestSendHonorsContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	n := newTestNotifier(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.Error(t, n.Send(ctx, "hello"))
}
