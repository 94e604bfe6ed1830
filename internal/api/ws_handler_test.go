package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialWS(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/v1/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWebSocket_ForwardsNotifications(t *testing.T) {
	env := newTestEnv(t)
	userID := env.createUser(t, "ada@example.com", "correct-horse", false)
	server := httptest.NewServer(env.router)
	defer server.Close()

	conn := dialWS(t, server)
	require.NoError(t, conn.WriteJSON(wsAuthMessage{Type: "auth", Token: env.accessToken(t, userID)}))

	select {
	case got := <-env.notifications.userID:
		assert.Equal(t, userID, got)
	case <-time.After(5 * time.Second):
		t.Fatal("subscription not established")
	}

	payload := `{"type":"export_pdf","status":"completed","resume_id":"1"}`
	env.notifications.ch <- payload

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, payload, string(message))
}

func TestWebSocket_RejectsBadToken(t *testing.T) {
	env := newTestEnv(t)
	server := httptest.NewServer(env.router)
	defer server.Close()

	conn := dialWS(t, server)
	require.NoError(t, conn.WriteJSON(wsAuthMessage{Type: "auth", Token: "not-a-token"}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.ClosePolicyViolation), err.Error())
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://app.example.com"})

	req := httptest.NewRequest(http.MethodGet, "/v1/ws", nil)
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://app.example.com")
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://evil.example.com")
	assert.False(t, check(req))

	sameHost := originChecker(nil)
	req = httptest.NewRequest(http.MethodGet, "http://api.example.com/v1/ws", nil)
	req.Header.Set("Origin", "https://api.example.com")
	assert.True(t, sameHost(req))
	req.Header.Set("Origin", "https://other.example.com")
	assert.False(t, sameHost(req))
}
