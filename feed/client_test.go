package feed

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"finpulse/config"
	"finpulse/models"
	"finpulse/services"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
)

// wsServer is a minimal feed backend serving all three channel paths. Every
// inbound frame from any channel lands on frames; every accepted upgrade is
// announced on connects.
type wsServer struct {
	srv      *httptest.Server
	frames   chan outboundFrame
	connects chan Channel

	mu    sync.Mutex
	conns map[Channel][]*websocket.Conn
}

func newWSServer(t *testing.T) *wsServer {
	t.Helper()
	s := &wsServer{
		frames:   make(chan outboundFrame, 64),
		connects: make(chan Channel, 16),
		conns:    make(map[Channel][]*websocket.Conn),
	}

	upgrader := websocket.Upgrader{}
	mux := http.NewServeMux()
	for _, name := range AllChannels() {
		name := name
		mux.HandleFunc("/ws/"+string(name)+"/", func(w http.ResponseWriter, r *http.Request) {
			conn, err := upgrader.Upgrade(w, r, nil)
			if err != nil {
				return
			}
			s.mu.Lock()
			s.conns[name] = append(s.conns[name], conn)
			s.mu.Unlock()
			s.connects <- name

			go func() {
				for {
					var frame outboundFrame
					if err := conn.ReadJSON(&frame); err != nil {
						return
					}
					s.frames <- frame
				}
			}()
		})
	}

	s.srv = httptest.NewServer(mux)
	t.Cleanup(s.close)
	return s
}

func (s *wsServer) baseURL() string {
	return "ws" + strings.TrimPrefix(s.srv.URL, "http")
}

// latest returns the most recently accepted connection on a channel
func (s *wsServer) latest(name Channel) *websocket.Conn {
	s.mu.Lock()
	defer s.mu.Unlock()
	conns := s.conns[name]
	if len(conns) == 0 {
		return nil
	}
	return conns[len(conns)-1]
}

func (s *wsServer) close() {
	s.mu.Lock()
	for _, conns := range s.conns {
		for _, conn := range conns {
			conn.Close()
		}
	}
	s.conns = make(map[Channel][]*websocket.Conn)
	s.mu.Unlock()
	s.srv.Close()
}

// waitConnect blocks until the server accepts an upgrade on the named channel
func (s *wsServer) waitConnect(t *testing.T, name Channel) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case got := <-s.connects:
			if got == name {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %v upgrade", name)
		}
	}
}

// waitFrame blocks until the server receives a frame of the given type
func (s *wsServer) waitFrame(t *testing.T, frameType string) outboundFrame {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case frame := <-s.frames:
			if frame.Type == frameType {
				return frame
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q frame", frameType)
		}
	}
}

func testFeedConfig(s *wsServer) config.FeedConfig {
	cfg := config.NewTestConfig().Feed
	cfg.BaseURL = s.baseURL()
	cfg.AuthToken = "test-token"
	cfg.Watchlist = []string{"AAPL"}
	// Keep the poller quiet so socket traffic is the only tick source
	// after the initial poll
	cfg.PollInterval = time.Hour
	cfg.ReconnectInitialWait = 10 * time.Millisecond
	cfg.ReconnectMaxWait = 50 * time.Millisecond
	return cfg
}

func newTestClient(cfg config.FeedConfig) *Client {
	return NewClient(cfg, services.NewFallbackQuoteSource(nil, services.NewSyntheticQuoteSourceWithSeed(1)))
}

func TestClient_HandshakeAndFrameDelivery(t *testing.T) {
	server := newWSServer(t)
	client := newTestClient(testFeedConfig(server))

	ticks := make(chan models.StockPriceTick, 16)
	client.SetCallbacks(Callbacks{
		OnStockPriceUpdate: func(tick models.StockPriceTick) {
			if tick.Symbol == "ZZZT" {
				ticks <- tick
			}
		},
	})

	client.Connect()
	defer client.Disconnect()

	auth := server.waitFrame(t, frameTypeAuthenticate)
	if auth.Token != "test-token" {
		t.Errorf("authenticate token = %q, want %q", auth.Token, "test-token")
	}
	server.waitFrame(t, frameTypeWatchlistPrices)
	server.waitFrame(t, frameTypeSubscribePortfolio)

	conn := server.latest(ChannelStockPrices)
	if conn == nil {
		t.Fatal("no stock-prices connection accepted")
	}
	err := conn.WriteJSON(stockFrame{
		Type: frameTypePriceUpdate,
		Price: &models.StockPriceTick{
			Symbol:        "ZZZT",
			Price:         decimal.NewFromFloat(12.34),
			ChangePercent: 1.2,
			Timestamp:     time.Now().UTC(),
		},
	})
	if err != nil {
		t.Fatalf("server write failed: %v", err)
	}

	select {
	case tick := <-ticks:
		if !tick.Price.Equal(decimal.NewFromFloat(12.34)) {
			t.Errorf("tick price = %v, want 12.34", tick.Price)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("price_update never reached the callback")
	}
}

func TestClient_SubscribeToStocksReachesServer(t *testing.T) {
	server := newWSServer(t)
	client := newTestClient(testFeedConfig(server))

	client.Connect()
	defer client.Disconnect()
	server.waitFrame(t, frameTypeWatchlistPrices)

	// The socket may report connected slightly after the server-side
	// upgrade; wait for the client's view before subscribing.
	waitUntil(t, func() bool {
		return client.Status()[ChannelStockPrices] == models.ConnectionStateConnected
	})

	client.SubscribeToStocks([]string{"NVDA", "TSLA"})

	frame := server.waitFrame(t, frameTypeSubscribeStocks)
	if len(frame.Symbols) != 2 || frame.Symbols[0] != "NVDA" || frame.Symbols[1] != "TSLA" {
		t.Errorf("subscribe symbols = %v, want [NVDA TSLA]", frame.Symbols)
	}
}

func TestClient_SubscribeBeforeConnectIsNoOp(t *testing.T) {
	cfg := config.NewTestConfig().Feed
	client := newTestClient(cfg)

	// Must not panic or block with no connection
	client.SubscribeToStocks([]string{"AAPL"})
	client.Ping()

	if client.Connected() {
		t.Error("Connected() = true before Connect")
	}
}

func TestClient_ConnectionStatusLifecycle(t *testing.T) {
	server := newWSServer(t)
	client := newTestClient(testFeedConfig(server))

	statuses := make(chan bool, 16)
	client.SetCallbacks(Callbacks{
		OnConnectionStatusChange: func(up bool) { statuses <- up },
	})

	client.Connect()

	select {
	case up := <-statuses:
		if !up {
			t.Error("first status change = false, want true")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no status change after Connect")
	}

	client.Disconnect()

	// Every callback has fired by the time Disconnect returns; the last
	// buffered notification must be the disconnect.
	last, any := false, false
	for done := false; !done; {
		select {
		case last = <-statuses:
			any = true
		default:
			done = true
		}
	}
	if !any {
		t.Fatal("no status change after Disconnect")
	}
	if last {
		t.Error("final status = true after Disconnect, want false")
	}
}

func TestClient_ReconnectsAfterServerDrop(t *testing.T) {
	server := newWSServer(t)
	client := newTestClient(testFeedConfig(server))

	client.Connect()
	defer client.Disconnect()

	server.waitConnect(t, ChannelStockPrices)
	server.latest(ChannelStockPrices).Close()

	// A fresh upgrade on the same channel proves the reconnect cycle ran
	server.waitConnect(t, ChannelStockPrices)
}

func TestClient_ConnectIsIdempotent(t *testing.T) {
	server := newWSServer(t)
	client := newTestClient(testFeedConfig(server))

	client.Connect()
	client.Connect()
	defer client.Disconnect()

	server.waitConnect(t, ChannelStockPrices)

	// Only the first Connect should have spawned channel goroutines; a
	// second stock upgrade arriving would mean a duplicate dial.
	timeout := time.After(150 * time.Millisecond)
	for done := false; !done; {
		select {
		case name := <-server.connects:
			if name == ChannelStockPrices {
				t.Error("duplicate stock-prices upgrade after second Connect")
			}
		case <-timeout:
			done = true
		}
	}
}

func TestClient_DisconnectWithoutConnect(t *testing.T) {
	client := newTestClient(config.NewTestConfig().Feed)
	client.Disconnect() // must be a no-op
}

func waitUntil(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition never became true")
}
