package feed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/phanxgames/dreamscape"
)

// Client streams landmark snapshots to a Server. It is what an estimator
// process embeds. Send is safe for concurrent use.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Dial connects to the landmark endpoint at url, e.g.
// "ws://localhost:8090/ws/landmarks".
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return &Client{conn: conn}, nil
}

// Send publishes snap. A nil snap tells the server nobody is in view.
func (c *Client) Send(snap *dreamscape.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	if err := c.conn.WriteJSON(snap); err != nil {
		return fmt.Errorf("send snapshot: %w", err)
	}
	return nil
}

// Close says goodbye and closes the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	return c.conn.Close()
}

// Stream replays a script to the server at the script's frame rate until
// the script ends or ctx is cancelled.
func (c *Client) Stream(ctx context.Context, script *dreamscape.Script) error {
	player := script.Player()
	ticker := time.NewTicker(time.Duration(script.DT() * float64(time.Second)))
	defer ticker.Stop()
	for {
		f, ok := player.Next()
		if !ok {
			return nil
		}
		if err := c.Send(f.Snapshot); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
