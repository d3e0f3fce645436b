// Package feed connects a running dreamscape to the outside world over HTTP
// and WebSocket: an external landmark estimator streams snapshots in, a
// control panel reads metrics and tunes params, and observers can follow the
// domain events live.
package feed

import (
	"encoding/json"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/phanxgames/dreamscape"
)

const (
	// maxMessageSize bounds one landmark message; a full pose, both hands
	// and a face mesh fit comfortably.
	maxMessageSize = 1 << 20
	// eventBuffer is the per-subscriber backlog before events are dropped.
	eventBuffer = 256
	writeWait   = 5 * time.Second
)

// Config wires a Server to the stores it serves. Nil stores are replaced
// with fresh ones.
type Config struct {
	Snapshots *dreamscape.SnapshotStore
	Params    *dreamscape.ParamStore
	Metrics   *dreamscape.MetricsBoard
	Logger    *zap.Logger
}

// Server is the landmark ingest and control server. It implements
// dreamscape.EventSink so that it can fan frame events out to subscribers.
type Server struct {
	app       *fiber.App
	log       *zap.Logger
	snapshots *dreamscape.SnapshotStore
	params    *dreamscape.ParamStore
	metrics   *dreamscape.MetricsBoard

	mu          sync.Mutex
	sources     map[string]time.Time // landmark sessions by id, with connect time
	subscribers map[string]chan dreamscape.Event

	rejected atomic.Uint64
	dropped  atomic.Uint64
}

var _ dreamscape.EventSink = (*Server)(nil)

// NewServer builds the fiber app and its routes.
func NewServer(cfg Config) *Server {
	if cfg.Snapshots == nil {
		cfg.Snapshots = &dreamscape.SnapshotStore{}
	}
	if cfg.Params == nil {
		cfg.Params = dreamscape.NewParamStore(dreamscape.DefaultParams())
	}
	if cfg.Metrics == nil {
		cfg.Metrics = &dreamscape.MetricsBoard{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	s := &Server{
		log:         cfg.Logger.Named("feed"),
		snapshots:   cfg.Snapshots,
		params:      cfg.Params,
		metrics:     cfg.Metrics,
		sources:     make(map[string]time.Time),
		subscribers: make(map[string]chan dreamscape.Event),
	}

	app := fiber.New(fiber.Config{
		AppName:               "dreamscape feed",
		DisableStartupMessage: true,
	})

	app.Get("/healthz", s.handleHealth)
	app.Get("/metrics", s.handleMetrics)
	app.Get("/params", s.handleGetParams)
	app.Put("/params", s.handlePutParams)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/landmarks", websocket.New(s.handleLandmarks))
	app.Get("/ws/events", websocket.New(s.handleEvents))

	s.app = app
	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	s.log.Info("listening", zap.String("addr", addr))
	return s.app.Listen(addr)
}

// Serve serves on an existing listener until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.log.Info("listening", zap.Stringer("addr", ln.Addr()))
	return s.app.Listener(ln)
}

// Shutdown stops the server and closes every connection.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// Sources returns the number of connected landmark sessions.
func (s *Server) Sources() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sources)
}

// Subscribers returns the number of connected event subscribers.
func (s *Server) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers)
}

// Emit implements dreamscape.EventSink. It never blocks; a subscriber whose
// backlog is full misses the event.
func (s *Server) Emit(e dreamscape.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- e:
		default:
			s.dropped.Add(1)
		}
	}
}

// Health is the body of GET /healthz.
type Health struct {
	Status      string `json:"status"`
	Sources     int    `json:"sources"`
	Subscribers int    `json:"subscribers"`
	Received    uint64 `json:"received"`
	Rejected    uint64 `json:"rejected"`
	Dropped     uint64 `json:"dropped"`
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	s.mu.Lock()
	h := Health{
		Status:      "ok",
		Sources:     len(s.sources),
		Subscribers: len(s.subscribers),
	}
	s.mu.Unlock()
	h.Received = s.snapshots.Received()
	h.Rejected = s.rejected.Load()
	h.Dropped = s.dropped.Load()
	return c.JSON(h)
}

func (s *Server) handleMetrics(c *fiber.Ctx) error {
	m, ok := s.metrics.Latest()
	if !ok {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(m)
}

func (s *Server) handleGetParams(c *fiber.Ctx) error {
	return c.JSON(s.params.Load())
}

// handlePutParams merges the JSON body over the current params. Fields not in
// the body keep their values; out-of-range values are clamped.
func (s *Server) handlePutParams(c *fiber.Ctx) error {
	p := s.params.Load()
	if err := json.Unmarshal(c.Body(), &p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	s.params.Store(p)
	stored := s.params.Load()
	s.log.Info("params updated",
		zap.Float64("flower_size", stored.FlowerSize),
		zap.Float64("rain_density", stored.RainDensity),
		zap.Bool("show_debug", stored.ShowDebug),
	)
	return c.JSON(stored)
}

// handleLandmarks ingests snapshots. Each text message is one JSON Snapshot,
// or null when the estimator sees nobody. When the last source disconnects
// the store is cleared so the scene stops tracking a ghost.
func (s *Server) handleLandmarks(c *websocket.Conn) {
	id := uuid.NewString()
	log := s.log.With(zap.String("session", id), zap.String("remote", c.RemoteAddr().String()))

	s.mu.Lock()
	s.sources[id] = time.Now()
	s.mu.Unlock()
	log.Info("landmark source connected")

	defer func() {
		s.mu.Lock()
		since := s.sources[id]
		delete(s.sources, id)
		last := len(s.sources) == 0
		s.mu.Unlock()
		if last {
			s.snapshots.Store(nil)
		}
		log.Info("landmark source disconnected", zap.Duration("connected", time.Since(since)))
	}()

	c.SetReadLimit(maxMessageSize)
	for {
		mt, data, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("landmark read", zap.Error(err))
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}
		var snap *dreamscape.Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			s.rejected.Add(1)
			log.Debug("bad landmark message", zap.Error(err))
			continue
		}
		s.snapshots.Store(snap)
	}
}

// handleEvents streams frame events to the client as JSON text messages.
func (s *Server) handleEvents(c *websocket.Conn) {
	id := uuid.NewString()
	ch := make(chan dreamscape.Event, eventBuffer)

	s.mu.Lock()
	s.subscribers[id] = ch
	s.mu.Unlock()
	s.log.Info("event subscriber connected", zap.String("session", id))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
		s.log.Info("event subscriber disconnected", zap.String("session", id))
	}()

	for {
		select {
		case <-done:
			return
		case e := <-ch:
			_ = c.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.WriteJSON(e); err != nil {
				return
			}
		}
	}
}
