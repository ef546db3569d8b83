package websocket

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// HandleWebSocket upgrades a staff dashboard connection and subscribes it to
// item events. username may be empty when staff auth is disabled.
func HandleWebSocket(c echo.Context, hub *Hub, username string) error {
	upgrader := websocket.Upgrader{
		// Access is gated by the staff token
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &Client{
		Username: username,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
	}

	welcome, _ := json.Marshal(Notification{Type: "connected", Message: "WebSocket connection established"})
	client.send <- welcome

	select {
	case hub.register <- client:
	case <-hub.done:
		return conn.Close()
	}

	go client.writePump()
	go client.readPump(hub)

	return nil
}
