package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quasar-dev/quasar/pkg/dom"
	"github.com/quasar-dev/quasar/pkg/quasar"
)

var (
	// ErrSessionClosed is returned when queueing to a closed session.
	ErrSessionClosed = errors.New("live: session closed")

	// ErrEventQueueFull is returned when a session's event buffer is full.
	ErrEventQueueFull = errors.New("live: event queue full")

	// ErrAlreadyAttached is returned when a second websocket connects to a
	// session.
	ErrAlreadyAttached = errors.New("live: session already attached")
)

// Session is one browser page: its document, its mounted app and, once the
// client connects, its websocket.
type Session struct {
	ID        string
	CreatedAt time.Time

	doc *dom.Document
	app *quasar.App

	conn     *websocket.Conn
	writeMu  sync.Mutex
	attached atomic.Bool

	config *Config
	events chan ClientEvent
	done   chan struct{}
	closed atomic.Bool

	eventCount  atomic.Uint64
	updateCount atomic.Uint64

	onClose func(*Session)
	logger  *slog.Logger
	metrics *metrics
	tracer  trace.Tracer
}

func newSession(id string, doc *dom.Document, app *quasar.App, config *Config, logger *slog.Logger, m *metrics, tracer trace.Tracer) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		doc:       doc,
		app:       app,
		config:    config,
		events:    make(chan ClientEvent, config.EventQueueSize),
		done:      make(chan struct{}),
		logger:    logger,
		metrics:   m,
		tracer:    tracer,
	}
}

// Document returns the session's document. It must only be used from the
// event loop.
func (s *Session) Document() *dom.Document {
	return s.doc
}

// App returns the session's app. It must only be used from the event loop.
func (s *Session) App() *quasar.App {
	return s.app
}

// Attached reports whether a websocket has connected.
func (s *Session) Attached() bool {
	return s.attached.Load()
}

// attach binds conn to the session. Only the first connection is accepted.
func (s *Session) attach(conn *websocket.Conn) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	if s.attached.Swap(true) {
		return ErrAlreadyAttached
	}
	s.writeMu.Lock()
	s.conn = conn
	s.writeMu.Unlock()
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	})
	s.logger.Info("session attached")
	return nil
}

// ReadLoop reads client events until the connection closes.
func (s *Session) ReadLoop() {
	defer s.Close()

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		var ev ClientEvent
		if err := s.conn.ReadJSON(&ev); err != nil {
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			switch {
			case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
				s.metrics.wsErrors.WithLabelValues("decode").Inc()
				s.logger.Warn("event decode error", "error", err)
				continue
			case websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure):
				s.metrics.wsErrors.WithLabelValues("read").Inc()
				s.logger.Error("read error", "error", err)
			}
			return
		}

		if err := s.QueueEvent(ev); err != nil {
			s.sendError(err.Error())
		}
	}
}

// WriteLoop pings the client until the session closes.
func (s *Session) WriteLoop() {
	ticker := time.NewTicker(s.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.writeMu.Lock()
			err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.config.WriteTimeout))
			s.writeMu.Unlock()
			if err != nil {
				s.metrics.wsErrors.WithLabelValues("ping").Inc()
				s.Close()
				return
			}

		case <-s.done:
			return
		}
	}
}

// EventLoop handles queued events one at a time until the session closes.
// It is the only goroutine that touches the session's document.
func (s *Session) EventLoop() {
	for {
		select {
		case ev := <-s.events:
			s.handleEvent(ev)

		case <-s.done:
			return
		}
	}
}

// QueueEvent queues an event for the event loop.
func (s *Session) QueueEvent(ev ClientEvent) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	select {
	case s.events <- ev:
		return nil
	default:
		s.logger.Warn("event queue full, dropping event", "qid", ev.QID, "event", ev.Event)
		return ErrEventQueueFull
	}
}

// handleEvent applies the client's property values, dispatches the event
// into the document and sends every element whose children changed.
// A panic, including a reentrancy violation, ends the session.
func (s *Session) handleEvent(ev ClientEvent) {
	_, span := s.tracer.Start(context.Background(), "quasar.live.event",
		trace.WithAttributes(
			attribute.String("quasar.session", s.ID),
			attribute.String("quasar.event_type", ev.Event),
			attribute.String("quasar.qid", ev.QID),
		))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("event panic",
				"panic", r,
				"stack", string(debug.Stack()))
			span.SetStatus(codes.Error, fmt.Sprint(r))
			s.metrics.eventsTotal.WithLabelValues("panic").Inc()
			s.sendError("internal error")
			s.Close()
		}
	}()

	if _, ok := quasar.ParseEventType(ev.Event); !ok {
		s.metrics.eventsTotal.WithLabelValues("unsupported").Inc()
		s.logger.Debug("unsupported event", "event", ev.Event)
		return
	}
	node, ok := s.doc.ByID(ev.QID)
	if !ok {
		// The element was removed by an earlier update the client had not
		// applied yet.
		s.metrics.eventsTotal.WithLabelValues("stale").Inc()
		s.logger.Debug("stale event target", "qid", ev.QID)
		return
	}

	if ev.Value != nil {
		node.SetProperty("value", *ev.Value)
	}
	if ev.Checked != nil {
		node.SetProperty("checked", strconv.FormatBool(*ev.Checked))
	}

	s.eventCount.Add(1)
	node.Dispatch(ev.Event)
	s.metrics.eventsTotal.WithLabelValues("ok").Inc()

	changed := s.doc.TakeUpdates()
	if len(changed) == 0 {
		return
	}
	updates := make([]Update, len(changed))
	for i, n := range changed {
		updates[i] = Update{QID: n.ID(), HTML: n.AnnotatedInnerMarkup()}
	}
	span.SetAttributes(attribute.Int("quasar.updates", len(updates)))

	if err := s.send(ServerMessage{Type: MessageUpdate, Updates: updates}); err != nil {
		s.logger.Error("update send error", "error", err)
		return
	}
	s.updateCount.Add(uint64(len(updates)))
	s.metrics.updatesSent.Add(float64(len(updates)))
}

func (s *Session) send(msg ServerMessage) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.conn == nil || s.closed.Load() {
		return ErrSessionClosed
	}

	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteJSON(msg); err != nil {
		s.metrics.wsErrors.WithLabelValues("write").Inc()
		return err
	}
	return nil
}

func (s *Session) sendError(message string) {
	if err := s.send(ServerMessage{Type: MessageError, Error: message}); err != nil {
		s.logger.Debug("error send failed", "error", err)
	}
}

// Close ends the session. It is safe to call more than once.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}
	close(s.done)

	s.writeMu.Lock()
	if s.conn != nil {
		s.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		s.conn.Close()
	}
	s.writeMu.Unlock()

	if s.onClose != nil {
		s.onClose(s)
	}

	s.logger.Info("session closed",
		"events", s.eventCount.Load(),
		"updates", s.updateCount.Load(),
		"age", time.Since(s.CreatedAt).Round(time.Millisecond))
}

// IsClosed reports whether the session is closed.
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// Done returns a channel that is closed when the session ends.
func (s *Session) Done() <-chan struct{} {
	return s.done
}
