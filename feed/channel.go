package feed

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"finpulse/models"
	"finpulse/observability"
)

const handshakeTimeout = 10 * time.Second

// reconnectDelay returns the wait before reconnect attempt number attempt
// (1-based): initial, doubling each attempt, capped at max.
func reconnectDelay(initial, max time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := initial
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= max {
			return max
		}
	}
	if delay > max {
		return max
	}
	return delay
}

// channel owns one websocket connection and its reconnect state. Each
// channel retries independently; exhausting the attempt budget silently
// abandons the channel until the next Connect().
type channel struct {
	client *Client
	name   Channel
	url    string

	mu       sync.Mutex
	conn     *websocket.Conn
	state    models.ConnectionState
	attempts int
}

func newChannel(client *Client, name Channel) *channel {
	return &channel{
		client: client,
		name:   name,
		url:    client.cfg.BaseURL + "/ws/" + string(name) + "/",
		state:  models.ConnectionStateDisconnected,
	}
}

// run drives the dial / read / reconnect cycle until ctx is cancelled or
// the reconnect budget is exhausted.
func (c *channel) run(ctx context.Context) {
	log := observability.WithChannel(string(c.name))

	for {
		if ctx.Err() != nil {
			return
		}

		c.setState(models.ConnectionStateConnecting)
		conn, err := c.dial(ctx)
		if err != nil {
			c.setState(models.ConnectionStateDisconnected)
			log.Warn("dial failed", "error", err)
			if !c.waitForRetry(ctx) {
				return
			}
			continue
		}

		c.setConn(conn)
		c.setState(models.ConnectionStateConnected)
		c.client.notifyConnectionStatus()
		log.Info("channel connected")

		c.sendHello()
		c.readLoop(ctx, conn)

		c.setConn(nil)
		conn.Close()
		c.setState(models.ConnectionStateDisconnected)
		c.client.notifyConnectionStatus()

		if ctx.Err() != nil {
			return
		}
		log.Info("channel disconnected")
		if !c.waitForRetry(ctx) {
			return
		}
	}
}

func (c *channel) dial(ctx context.Context) (*websocket.Conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, c.url, nil)
	return conn, err
}

// waitForRetry blocks for the backoff delay of the next attempt. It returns
// false when the budget is exhausted or the context is cancelled.
func (c *channel) waitForRetry(ctx context.Context) bool {
	c.mu.Lock()
	c.attempts++
	attempt := c.attempts
	c.mu.Unlock()

	cfg := c.client.cfg
	if attempt > cfg.ReconnectMaxAttempts {
		// Silent give-up: the caller resets the budget with Connect()
		observability.WithChannel(string(c.name)).Warn("reconnect attempts exhausted, giving up",
			"attempts", cfg.ReconnectMaxAttempts)
		observability.GetMetrics().RecordFeedGiveUp(string(c.name))
		return false
	}

	delay := reconnectDelay(cfg.ReconnectInitialWait, cfg.ReconnectMaxWait, attempt)
	observability.WithChannel(string(c.name)).Info("scheduling reconnect",
		"attempt", attempt,
		"delay", delay)
	observability.GetMetrics().RecordFeedReconnect(string(c.name))

	select {
	case <-ctx.Done():
		return false
	case <-time.After(delay):
		return true
	}
}

// readLoop delivers frames to the client's dispatcher until the connection
// drops. A malformed frame is logged and dropped; the channel stays open.
func (c *channel) readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil && websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				observability.WithChannel(string(c.name)).Warn("read failed", "error", err)
			}
			return
		}

		if err := c.client.dispatch(c.name, data); err != nil {
			observability.WithChannel(string(c.name)).Warn("dropping malformed frame", "error", err)
			observability.GetMetrics().RecordFeedParseError(string(c.name))
		}
	}
}

// sendHello authenticates and issues the channel's initial subscriptions
func (c *channel) sendHello() {
	if token := c.client.cfg.AuthToken; token != "" {
		c.send(outboundFrame{Type: frameTypeAuthenticate, Token: token})
	}

	switch c.name {
	case ChannelStockPrices:
		c.send(outboundFrame{Type: frameTypeWatchlistPrices})
	case ChannelPortfolio:
		c.send(outboundFrame{Type: frameTypeSubscribePortfolio})
	}
}

// send writes a frame on the current connection. Best-effort: a nil or
// broken connection is a silent no-op and the read loop handles recovery.
func (c *channel) send(frame outboundFrame) bool {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		return false
	}
	if err := conn.WriteJSON(frame); err != nil {
		observability.WithChannel(string(c.name)).Debug("write failed", "type", frame.Type, "error", err)
		return false
	}
	return true
}

func (c *channel) setConn(conn *websocket.Conn) {
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
}

// closeConn unblocks the read loop during teardown
func (c *channel) closeConn() {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
}

func (c *channel) setState(state models.ConnectionState) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()

	observability.GetMetrics().SetFeedConnectionState(string(c.name), connectionStateToInt(state))
}

// State returns the channel's current connection state
func (c *channel) State() models.ConnectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *channel) connected() bool {
	return c.State() == models.ConnectionStateConnected
}

// connectionStateToInt converts a connection state to an integer for metrics
// 0=disconnected, 1=connecting, 2=connected
func connectionStateToInt(state models.ConnectionState) int {
	switch state {
	case models.ConnectionStateConnecting:
		return 1
	case models.ConnectionStateConnected:
		return 2
	default:
		return 0
	}
}
