package events

import (
	"bufio"
	"encoding/json"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 10*time.Millisecond)
}

func TestTCPFeed(t *testing.T) {
	hub := NewHub(nil)
	srv := NewServer("127.0.0.1:0", hub, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ln) }()

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	sc := bufio.NewScanner(conn)

	require.True(t, sc.Scan())
	assert.Contains(t, sc.Text(), `"welcome"`)
	waitFor(t, func() bool { return hub.Stats().TCPClients == 1 })

	hub.Publish(Event{Type: TypeSearch, Names: []string{"pikachu"}, IDs: []int{25}})
	require.True(t, sc.Scan())

	var ev Event
	require.NoError(t, json.Unmarshal(sc.Bytes(), &ev))
	assert.Equal(t, TypeSearch, ev.Type)
	assert.Equal(t, []string{"pikachu"}, ev.Names)
	assert.False(t, ev.At.IsZero())

	require.NoError(t, conn.Close())
	waitFor(t, func() bool { return hub.Stats().TCPClients == 0 })

	require.NoError(t, srv.Close())
	assert.NoError(t, <-done)
}

func TestWebSocketFeed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub(nil)
	r := gin.New()
	r.GET("/ws", WSHandler(hub))
	srv := httptest.NewServer(r)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	_, msg, err := ws.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(msg), "websocket")
	waitFor(t, func() bool { return hub.Stats().WSClients == 1 })

	hub.Publish(Event{Type: TypeCompare, Names: []string{"pikachu", "charizard"}, Winner: "charizard"})
	_, msg, err = ws.ReadMessage()
	require.NoError(t, err)

	var ev Event
	require.NoError(t, json.Unmarshal(msg, &ev))
	assert.Equal(t, "charizard", ev.Winner)

	require.NoError(t, ws.Close())
	waitFor(t, func() bool { return hub.Stats().WSClients == 0 })
}

func TestPublishOnNilHub(t *testing.T) {
	var hub *Hub
	assert.NotPanics(t, func() { hub.Publish(Event{Type: TypeTeam}) })
}

func TestWelcomeReplaysLastEvent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub(nil)
	r := gin.New()
	r.GET("/ws", WSHandler(hub))
	srv := httptest.NewServer(r)
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	first, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	_, msg, err := first.ReadMessage()
	require.NoError(t, err)

	var w Welcome
	require.NoError(t, json.Unmarshal(msg, &w))
	assert.Equal(t, "websocket", w.Transport)
	assert.Nil(t, w.Last)
	waitFor(t, func() bool { return hub.Stats().WSClients == 1 })

	hub.Publish(Event{Type: TypeTeam, Names: []string{"a", "b"}, Types: []string{"fire"}})
	_, _, err = first.ReadMessage()
	require.NoError(t, err)

	second, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	_, msg, err = second.ReadMessage()
	require.NoError(t, err)

	w = Welcome{}
	require.NoError(t, json.Unmarshal(msg, &w))
	assert.Equal(t, "welcome", w.Type)
	assert.Equal(t, 1, w.Clients.WSClients)
	require.NotNil(t, w.Last)
	assert.Equal(t, TypeTeam, w.Last.Type)
	assert.Equal(t, []string{"a", "b"}, w.Last.Names)

	require.NoError(t, first.Close())
	require.NoError(t, second.Close())
	waitFor(t, func() bool { return hub.Stats().WSClients == 0 })
}

func TestTCPWelcomeCountsOthers(t *testing.T) {
	hub := NewHub(nil)
	hub.Publish(Event{Type: TypeSearch, Names: []string{"mew"}})

	client, server := net.Pipe()
	defer client.Close()
	go func() {
		hub.SendWelcome(server)
		_ = server.Close()
	}()

	sc := bufio.NewScanner(client)
	require.True(t, sc.Scan())

	var w Welcome
	require.NoError(t, json.Unmarshal(sc.Bytes(), &w))
	assert.Equal(t, "tcp", w.Transport)
	assert.Zero(t, w.Clients.TCPClients)
	require.NotNil(t, w.Last)
	assert.Equal(t, []string{"mew"}, w.Last.Names)
}
