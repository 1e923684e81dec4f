// Package ws serves driver records over a WebSocket, one JSON text message per record.
package ws

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"portfolio-backend/internal/stream"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Public demo: every origin is allowed, same as the CORS policy
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Conn is a stream.Sink over an upgraded connection
type Conn struct {
	conn *websocket.Conn
}

// Send writes record as a JSON text message
func (c *Conn) Send(ctx context.Context, record any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}
	if err := c.conn.WriteJSON(record); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

// Serve upgrades the request and streams session until either side closes
func Serve(w http.ResponseWriter, r *http.Request, session *stream.Session) (stream.State, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return stream.StateIdle, fmt.Errorf("failed to upgrade connection: %w", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// The server does not watch hijacked connections, so a reader notices the client leaving
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	state := session.Run(ctx, &Conn{conn: conn})

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, state.String())
	if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second)); err != nil && state == stream.StateCompleted {
		log.Printf("WebSocket[%s]: close handshake failed: %v", session.Feed, err)
	}
	return state, nil
}
