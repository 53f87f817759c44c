package feed

import (
	"context"
	"sync"

	"finpulse/config"
	"finpulse/models"
	"finpulse/observability"
	"finpulse/services"
)

// Callbacks holds at most one handler per event type. SetCallbacks replaces
// the whole set; re-registering overwrites the previous handler, there is no
// multi-subscriber fan-out. Nil handlers are skipped.
type Callbacks struct {
	OnStockPriceUpdate       func(models.StockPriceTick)
	OnPriceAlert             func(models.PriceAlert)
	OnNewDiscussion          func(models.Discussion)
	OnNewComment             func(models.Comment)
	OnDiscussionUpdate       func(models.Discussion)
	OnPortfolioUpdate        func(models.PortfolioSnapshot)
	OnConnectionStatusChange func(bool)
}

// Client maintains the three feed channels and the polling fallback. It is
// safe for concurrent use; one instance is shared per process and passed
// explicitly to its consumers.
type Client struct {
	cfg    config.FeedConfig
	quotes *services.FallbackQuoteSource

	mu          sync.RWMutex
	callbacks   Callbacks
	channels    map[Channel]*channel
	cancel      context.CancelFunc
	running     bool
	lastStatus  bool
	lastSymbols []string

	wg sync.WaitGroup
}

// NewClient creates a feed client. quotes backs the polling fallback and is
// required; wrap a nil live source with NewFallbackQuoteSource to run purely
// synthetic.
func NewClient(cfg config.FeedConfig, quotes *services.FallbackQuoteSource) *Client {
	if quotes == nil {
		quotes = services.NewFallbackQuoteSource(nil, nil)
	}
	return &Client{
		cfg:    cfg,
		quotes: quotes,
	}
}

// SetCallbacks registers the handler set, replacing any previous one
func (c *Client) SetCallbacks(callbacks Callbacks) {
	c.mu.Lock()
	c.callbacks = callbacks
	c.mu.Unlock()
}

// Connect opens all three channels and starts the polling fallback. It is
// idempotent: calling it while running is a no-op. Each call resets every
// channel's reconnect budget.
func (c *Client) Connect() {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.running = true

	// Fresh channel objects zero the per-channel attempt counters
	c.channels = make(map[Channel]*channel, 3)
	for _, name := range AllChannels() {
		ch := newChannel(c, name)
		c.channels[name] = ch
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			ch.run(ctx)
		}()
	}

	// The poller starts immediately rather than waiting for a socket
	// failure, so data flows before the handshakes complete.
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.pollLoop(ctx)
	}()
	c.mu.Unlock()

	observability.Info("feed client connected", "base_url", c.cfg.BaseURL)
}

// Disconnect tears down all channels and the poller, then reports a
// disconnected status. Connect may be called again afterwards.
func (c *Client) Disconnect() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	cancel := c.cancel
	channels := c.channels
	c.mu.Unlock()

	cancel()
	for _, ch := range channels {
		ch.closeConn()
	}
	c.wg.Wait()

	c.mu.Lock()
	c.lastStatus = false
	cb := c.callbacks.OnConnectionStatusChange
	c.mu.Unlock()

	if cb != nil {
		cb(false)
	}
	observability.Info("feed client disconnected")
}

// SubscribeToStocks sends a subscribe frame for the given symbols on the
// stock channel. It silently no-ops when the socket is not open; callers
// retry after the connection is up. The last caller's list wins.
func (c *Client) SubscribeToStocks(symbols []string) {
	c.mu.Lock()
	c.lastSymbols = symbols
	ch := c.channels[ChannelStockPrices]
	c.mu.Unlock()

	if ch == nil || !ch.connected() {
		return
	}
	ch.send(outboundFrame{Type: frameTypeSubscribeStocks, Symbols: symbols})
}

// Ping sends a keepalive frame on every open channel. Best-effort only; no
// response timeout is tracked.
func (c *Client) Ping() {
	c.mu.RLock()
	channels := c.channels
	c.mu.RUnlock()

	for _, ch := range channels {
		if ch.connected() {
			ch.send(outboundFrame{Type: frameTypePing})
		}
	}
}

// Connected reports whether at least one channel is currently connected
func (c *Client) Connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.anyConnectedLocked()
}

// Status returns the current state of every channel
func (c *Client) Status() map[Channel]models.ConnectionState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	status := make(map[Channel]models.ConnectionState, len(AllChannels()))
	for _, name := range AllChannels() {
		if ch, ok := c.channels[name]; ok {
			status[name] = ch.State()
		} else {
			status[name] = models.ConnectionStateDisconnected
		}
	}
	return status
}

func (c *Client) anyConnectedLocked() bool {
	for _, ch := range c.channels {
		if ch.connected() {
			return true
		}
	}
	return false
}

// notifyConnectionStatus fires the status callback when the aggregate
// connected/disconnected boolean flips
func (c *Client) notifyConnectionStatus() {
	c.mu.Lock()
	status := c.running && c.anyConnectedLocked()
	if status == c.lastStatus {
		c.mu.Unlock()
		return
	}
	c.lastStatus = status
	cb := c.callbacks.OnConnectionStatusChange
	c.mu.Unlock()

	if cb != nil {
		cb(status)
	}
}

func (c *Client) getCallbacks() Callbacks {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.callbacks
}
