package sensors

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"AgriPulse/internal/domain/models"
	drepo "AgriPulse/internal/domain/repository"

	"github.com/gorilla/websocket"
)

// Client implements a SensorStream backed by the field gateway's WebSocket
// feed. The gateway multiplexes all soil probes of a farm onto one socket.
type Client struct {
	token          string
	websocketURL   string
	fields         []string
	reconnectDelay time.Duration
	pingInterval   time.Duration

	conn      *websocket.Conn
	connected bool
}

// New creates a new gateway SensorStream.
func New(token, websocketURL string, fields []string, reconnectDelay, pingInterval time.Duration) drepo.SensorStream {
	return &Client{
		token:          token,
		websocketURL:   websocketURL,
		fields:         fields,
		reconnectDelay: reconnectDelay,
		pingInterval:   pingInterval,
	}
}

// Connect establishes the WebSocket connection.
func (c *Client) Connect(ctx context.Context) error {
	u := fmt.Sprintf("%s?token=%s", c.websocketURL, c.token)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("gateway connect: %w", err)
	}
	c.conn = conn
	c.connected = true
	log.Printf("sensors: connected to gateway")
	return nil
}

// Subscribe subscribes to configured fields.
func (c *Client) Subscribe(ctx context.Context) error {
	if c.conn == nil || !c.connected {
		return fmt.Errorf("gateway not connected")
	}
	for _, f := range c.fields {
		msg := map[string]string{"type": "subscribe", "field": f}
		if err := c.conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("subscribe %s: %w", f, err)
		}
		log.Printf("sensors: subscribed %s", f)
	}
	return nil
}

type gwReading struct {
	F string  `json:"f"`
	C string  `json:"c"`
	M float64 `json:"m"`
	T int64   `json:"t"` // ms
}

type gwMessage struct {
	Type string      `json:"type"`
	Data []gwReading `json:"data"`
}

// Read streams SoilReading events and errors.
func (c *Client) Read(ctx context.Context) (<-chan *models.SoilReading, <-chan error) {
	readings := make(chan *models.SoilReading, 1024)
	errs := make(chan error, 1)

	// ping loop
	go func() {
		ticker := time.NewTicker(c.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if c.conn != nil {
					_ = c.conn.WriteMessage(websocket.PingMessage, nil)
				}
			}
		}
	}()

	// read loop
	go func() {
		defer close(readings)
		defer close(errs)
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if c.conn == nil {
					errs <- fmt.Errorf("gateway conn nil")
					return
				}
				_, b, err := c.conn.ReadMessage()
				if err != nil {
					errs <- fmt.Errorf("gateway read: %w", err)
					return
				}
				var m gwMessage
				if err := json.Unmarshal(b, &m); err != nil {
					// ignore non-reading frames
					continue
				}
				if m.Type != "reading" {
					continue
				}
				for _, d := range m.Data {
					sec := d.T / 1000
					reading := &models.SoilReading{Field: d.F, Crop: d.C, Timestamp: sec, Moisture: d.M}
					select {
					case readings <- reading:
					default:
						// drop on backpressure
					}
				}
			}
		}
	}()

	return readings, errs
}

// Reconnect closes and reconnects.
func (c *Client) Reconnect(ctx context.Context) error {
	_ = c.Close()
	time.Sleep(c.reconnectDelay)
	if err := c.Connect(ctx); err != nil {
		return err
	}
	return c.Subscribe(ctx)
}

// Close closes the WS connection.
func (c *Client) Close() error {
	c.connected = false
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// IsConnected indicates status.
func (c *Client) IsConnected() bool { return c.connected }
