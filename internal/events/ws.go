package events

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// feed subscribers never send payloads, only control frames
	wsReadLimit  = 512
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  512,
	WriteBufferSize: 4096,
	// origins are enforced by the CORS layer in front of the router
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler upgrades the request and subscribes it to the feed. The first
// frame is the hub's Welcome; after that the connection only receives
// events and keepalive pings until the client goes away.
func WSHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			hub.logger.Debug("ws upgrade", zap.Error(err))
			return
		}
		remote := c.ClientIP()

		// sent before AddWS so it can never interleave with a broadcast
		_ = ws.SetWriteDeadline(time.Now().Add(2 * time.Second))
		if err := ws.WriteMessage(websocket.TextMessage, hub.welcome("websocket")); err != nil {
			_ = ws.Close()
			return
		}

		ws.SetReadLimit(wsReadLimit)
		_ = ws.SetReadDeadline(time.Now().Add(wsPongWait))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(wsPongWait))
		})

		hub.AddWS(ws)
		hub.logger.Info("ws subscriber joined", zap.String("remote", remote))

		done := make(chan struct{})
		go keepAlive(ws, done)

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}
		close(done)

		hub.RemoveWS(ws)
		hub.logger.Info("ws subscriber left", zap.String("remote", remote))
	}
}

// keepAlive pings until done closes. Control frames may be written
// concurrently with the hub's data writes.
func keepAlive(ws *websocket.Conn, done <-chan struct{}) {
	t := time.NewTicker(wsPingPeriod)
	defer t.Stop()
	for {
		select {
		case <-done:
			return
		case <-t.C:
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(2*time.Second)); err != nil {
				return
			}
		}
	}
}
