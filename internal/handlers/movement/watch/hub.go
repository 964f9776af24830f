// Package watch streams computed move costs to websocket observers.
//
// The hub listens for movement.cost_computed on the event bus and fans each
// one out to connected observers as a JSON text frame. Slow observers drop
// frames instead of stalling the computation that published them.
package watch

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/gorilla/websocket"

	"github.com/Toakan-Network/RW-MassAffect/internal/errors"
	"github.com/Toakan-Network/RW-MassAffect/internal/orchestrators/movement"
)

// Path is where servers mount Hub.Handler
const Path = "/v1alpha1/watch"

const (
	writeWait       = 5 * time.Second
	defaultReadWait = 60 * time.Second
	queueLength     = 64
)

// CostEvent is the frame sent to observers
type CostEvent struct {
	ComputationID string  `json:"computation_id"`
	PawnID        string  `json:"pawn_id,omitempty"`
	Ticks         float64 `json:"ticks"`
	Diagonal      bool    `json:"diagonal"`
	Provider      string  `json:"provider"`
}

// Config holds dependencies for the hub
type Config struct {
	EventBus events.EventBus

	// AllowRemote accepts observers from non-loopback addresses
	AllowRemote bool

	// ReadTimeout is how long an observer may go without answering a ping.
	// Zero means one minute.
	ReadTimeout time.Duration
}

// Validate ensures all required dependencies are present
func (c *Config) Validate() error {
	if c == nil || c.EventBus == nil {
		return errors.InvalidArgument("event bus is required")
	}
	if c.ReadTimeout < 0 {
		return errors.InvalidArgument("read timeout cannot be negative")
	}
	return nil
}

type observer struct {
	pawnID string
	out    chan []byte
}

// Hub fans cost events out to websocket observers
type Hub struct {
	bus         events.EventBus
	allowRemote bool
	readWait    time.Duration
	pingPeriod  time.Duration
	upgrader    websocket.Upgrader

	subscription string
	nextID       atomic.Uint64
	dropped      atomic.Uint64

	closeOnce sync.Once
	closeErr  error

	mu        sync.RWMutex
	closed    bool
	observers map[uint64]*observer
}

// NewHub subscribes a hub to the event bus
func NewHub(cfg *Config) (*Hub, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	readWait := cfg.ReadTimeout
	if readWait == 0 {
		readWait = defaultReadWait
	}

	h := &Hub{
		bus:         cfg.EventBus,
		allowRemote: cfg.AllowRemote,
		readWait:    readWait,
		pingPeriod:  readWait * 9 / 10,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		observers: make(map[uint64]*observer),
	}
	h.subscription = cfg.EventBus.SubscribeFunc(movement.EventCostComputed, 0, h.onCostComputed)

	return h, nil
}

// Close unsubscribes from the bus and disconnects every observer.
// Later calls return the first result.
func (h *Hub) Close() error {
	h.closeOnce.Do(func() {
		h.closeErr = h.bus.Unsubscribe(h.subscription)

		h.mu.Lock()
		h.closed = true
		for id, o := range h.observers {
			close(o.out)
			delete(h.observers, id)
		}
		h.mu.Unlock()
	})
	return h.closeErr
}

// Observers reports how many observers are connected
func (h *Hub) Observers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.observers)
}

// Dropped reports how many frames were dropped for slow observers
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

func (h *Hub) onCostComputed(_ context.Context, e events.Event) error {
	frame := CostEvent{}
	if src := e.Source(); src != nil {
		frame.PawnID = src.GetID()
	}

	ctx := e.Context()
	if v, ok := ctx.Get(movement.EventKeyComputationID); ok {
		frame.ComputationID, _ = v.(string)
	}
	if v, ok := ctx.Get(movement.EventKeyTicks); ok {
		frame.Ticks, _ = v.(float64)
	}
	if v, ok := ctx.Get(movement.EventKeyDiagonal); ok {
		frame.Diagonal, _ = v.(bool)
	}
	if v, ok := ctx.Get(movement.EventKeyProvider); ok {
		frame.Provider, _ = v.(string)
	}

	raw, err := json.Marshal(frame)
	if err != nil {
		return errors.Wrap(err, "failed to encode cost event")
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, o := range h.observers {
		if o.pawnID != "" && o.pawnID != frame.PawnID {
			continue
		}
		select {
		case o.out <- raw:
		default:
			h.dropped.Add(1)
		}
	}

	return nil
}

func (h *Hub) register(pawnID string) (uint64, *observer, bool) {
	o := &observer{pawnID: pawnID, out: make(chan []byte, queueLength)}
	id := h.nextID.Add(1)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return 0, nil, false
	}
	h.observers[id] = o

	return id, o, true
}

func (h *Hub) unregister(id uint64) {
	h.mu.Lock()
	if o, ok := h.observers[id]; ok {
		close(o.out)
		delete(h.observers, id)
	}
	h.mu.Unlock()
}

// Handler upgrades the request and streams cost events until either side
// closes. The optional pawn_id query parameter filters the stream.
func (h *Hub) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if !h.allowRemote && !isLoopbackRemote(r.RemoteAddr) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}

		pawnID := r.URL.Query().Get("pawn_id")

		// Registered before the upgrade so an observer never misses events
		// published right after its handshake completes.
		id, o, ok := h.register(pawnID)
		if !ok {
			http.Error(rw, "watch stream closed", http.StatusServiceUnavailable)
			return
		}
		defer h.unregister(id)

		conn, err := h.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			slog.WarnContext(r.Context(), "watch upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		slog.InfoContext(r.Context(), "watch observer connected",
			"observer", id,
			"pawn_id", pawnID,
			"remote", r.RemoteAddr,
		)

		// Observers only listen, so pongs are what keep the read deadline moving.
		_ = conn.SetReadDeadline(time.Now().Add(h.readWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(h.readWait))
		})

		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
				_ = conn.SetReadDeadline(time.Now().Add(h.readWait))
			}
		}()

		ping := time.NewTicker(h.pingPeriod)
		defer ping.Stop()

		for {
			select {
			case <-done:
				return
			case <-ping.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			case raw, ok := <-o.out:
				if !ok {
					_ = conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
						time.Now().Add(time.Second))
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
					return
				}
			}
		}
	}
}

func isLoopbackRemote(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	host = strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
