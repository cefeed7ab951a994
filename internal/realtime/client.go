package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the broker
	writeWait = 10 * time.Second

	// Time allowed between reads before the connection is considered dead
	pongWait = 60 * time.Second

	// Send pings with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Delay before redialing a dropped connection
	redialDelay = 5 * time.Second
)

// frame is the broker's wire envelope (pusher protocol). Data is usually a
// JSON-encoded string holding the actual payload.
type frame struct {
	Event   string          `json:"event"`
	Channel string          `json:"channel,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Client subscribes to the fleet broker's riders and orders channels and
// dispatches decoded events to the handler. The composition root owns its
// lifecycle via Run.
type Client struct {
	url     string
	handler Handler
	dialer  *websocket.Dialer
}

// NewClient creates a broker subscriber. url is the full websocket endpoint
// including the app key path, e.g. "ws://localhost:8080/app/my-key".
func NewClient(url string, handler Handler) *Client {
	return &Client{
		url:     url,
		handler: handler,
		dialer:  websocket.DefaultDialer,
	}
}

// Run dials the broker and processes events until ctx is cancelled,
// redialing with a fixed delay after any connection failure.
func (c *Client) Run(ctx context.Context) {
	for {
		if err := c.connect(ctx); err != nil {
			log.Printf("⚠️  [REALTIME] Connection lost: %v", err)
		}

		select {
		case <-ctx.Done():
			log.Println("🔴 [REALTIME] Subscriber stopped")
			return
		case <-time.After(redialDelay):
			log.Println("🔄 [REALTIME] Redialing broker...")
		}
	}
}

func (c *Client) connect(ctx context.Context) error {
	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("dial failed: %w", err)
	}
	defer conn.Close()

	log.Printf("✅ [REALTIME] Connected to broker at %s", c.url)

	// Close the connection when ctx ends so the read loop unblocks
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	go c.pingLoop(conn, done)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read failed: %w", err)
		}
		conn.SetReadDeadline(time.Now().Add(pongWait))

		var f frame
		if err := json.Unmarshal(message, &f); err != nil {
			log.Printf("⚠️  [REALTIME] Invalid frame: %v", err)
			continue
		}

		if err := c.handleFrame(ctx, conn, f); err != nil {
			return err
		}
	}
}

func (c *Client) pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (c *Client) handleFrame(ctx context.Context, conn *websocket.Conn, f frame) error {
	switch f.Event {
	case "pusher:connection_established":
		return c.subscribe(conn)

	case "pusher:ping":
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(frame{Event: "pusher:pong", Data: json.RawMessage(`"{}"`)})

	case "pusher_internal:subscription_succeeded":
		log.Printf("✅ [REALTIME] Subscribed to channel: %s", f.Channel)

	case RiderLocationUpdated:
		var ev RiderLocationEvent
		if err := decodePayload(f.Data, &ev); err != nil {
			log.Printf("⚠️  [REALTIME] Bad rider location payload: %v", err)
			return nil
		}
		c.handler.HandleRiderLocation(ev)

	case OrderStatusChanged:
		var ev OrderStatusEvent
		if err := decodePayload(f.Data, &ev); err != nil {
			log.Printf("⚠️  [REALTIME] Bad order status payload: %v", err)
			return nil
		}
		c.handler.HandleOrderStatusChanged(ctx, ev)
	}
	return nil
}

func (c *Client) subscribe(conn *websocket.Conn) error {
	for _, channel := range []string{RidersChannel, OrdersChannel} {
		sub := map[string]interface{}{
			"event": "pusher:subscribe",
			"data":  map[string]string{"channel": channel},
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(sub); err != nil {
			return fmt.Errorf("subscribe to %s failed: %w", channel, err)
		}
		log.Printf("📡 [REALTIME] Subscribe requested: %s", channel)
	}
	return nil
}

// decodePayload unwraps an event payload. The pusher protocol encodes Data
// as a JSON string containing JSON; plain objects are accepted too.
func decodePayload(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return fmt.Errorf("empty payload")
	}

	var inner string
	if err := json.Unmarshal(raw, &inner); err == nil {
		return json.Unmarshal([]byte(inner), v)
	}
	return json.Unmarshal(raw, v)
}
