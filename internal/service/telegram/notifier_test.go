package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TradeRadar/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stdout"})
	require.NoError(t, err)
	return log
}

func TestNotifySendsOnceAndDedupes(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Contains(t, r.URL.Path, "/bottoken/sendMessage")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	n := New("token", "chat", testLogger(t)).(*Notifier)
	n.apiBase = srv.URL

	require.NoError(t, n.Notify(context.Background(), "whale alert"))
	require.NoError(t, n.Notify(context.Background(), "whale alert"))
	assert.Equal(t, int64(1), calls.Load())

	require.NoError(t, n.Notify(context.Background(), "different alert"))
	assert.Equal(t, int64(2), calls.Load())
}

func TestNotifySwallowsDeliveryErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := New("token", "chat", testLogger(t)).(*Notifier)
	n.apiBase = srv.URL
	assert.NoError(t, n.Notify(context.Background(), "alert"))
}

func TestConsoleNotifierNeverFails(t *testing.T) {
	n := NewConsole(testLogger(t))
	assert.NoError(t, n.Notify(context.Background(), "scalp alert"))
}
