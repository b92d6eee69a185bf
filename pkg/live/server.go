package live

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/quasar-dev/quasar/pkg/dom"
	"github.com/quasar-dev/quasar/pkg/host"
	quasarmw "github.com/quasar-dev/quasar/pkg/middleware"
	"github.com/quasar-dev/quasar/pkg/quasar"
)

const tracerName = "github.com/quasar-dev/quasar/pkg/live"

// AppFactory builds the app for one page load.
type AppFactory interface {
	// Page returns the host document markup.
	Page() string

	// Mount binds the app into doc.
	Mount(doc host.Document, opts ...quasar.Option) (*quasar.App, error)
}

// Server serves an app's page and mirrors each page load over a websocket.
type Server struct {
	factory  AppFactory
	config   Config
	sessions *Manager
	upgrader websocket.Upgrader
	router   chi.Router

	registry *prometheus.Registry
	engine   *quasar.Metrics
	metrics  *metrics

	logger     *slog.Logger
	tracer     trace.Tracer
	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithConfig replaces the default configuration.
func WithConfig(config Config) Option {
	return func(s *Server) { s.config = config }
}

// WithRegistry sets the registry that engine and server metrics are
// registered with and served from.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) { s.registry = reg }
}

// WithTracer sets the tracer used for sessions and their apps.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Server) { s.tracer = tracer }
}

// NewServer creates a Server for factory.
func NewServer(factory AppFactory, opts ...Option) *Server {
	s := &Server{
		factory: factory,
		config:  DefaultConfig(),
		logger:  slog.Default(),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.logger = s.logger.With("component", "live")
	s.engine = quasar.NewMetrics(s.registry)
	s.metrics = newMetrics(s.registry)
	s.sessions = newManager(&s.config, s.logger, s.metrics)
	if s.config.ConnectTimeout > 0 {
		s.sessions.startCleanup(s.config.ConnectTimeout / 2)
	}

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.config.CheckOrigin,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(quasarmw.OpenTelemetry(quasarmw.WithTracer(s.tracer)))
	r.Use(quasarmw.Prometheus(quasarmw.WithRegistry(s.registry)))
	r.Get("/", s.handlePage)
	r.Get("/quasar.js", s.handleScript)
	r.Get("/ws", s.handleWebSocket)
	if s.config.MetricsPath != "" {
		r.Handle(s.config.MetricsPath, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	s.router = r

	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Sessions returns the session manager.
func (s *Server) Sessions() *Manager {
	return s.sessions
}

// Registry returns the Prometheus registry.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		s.logger.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

// Shutdown closes every session, then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.sessions.Close()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>{{.Head}}</head>
<body data-qid="{{.BodyID}}">{{.Body}}<script src="/quasar.js" data-session="{{.Session}}"></script></body>
</html>
`))

type pageData struct {
	Head    template.HTML
	BodyID  string
	Body    template.HTML
	Session string
}

// handlePage creates a session, mounts the app into a fresh document and
// serves the annotated result.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	logger := s.logger.With("session_id", id, "request_id", middleware.GetReqID(r.Context()))

	doc, err := dom.Parse(s.factory.Page(), dom.WithLogger(logger))
	if err != nil {
		logger.Error("page parse failed", "error", err)
		http.Error(w, "page parse failed", http.StatusInternalServerError)
		return
	}
	app, err := s.factory.Mount(doc,
		quasar.WithLogger(logger),
		quasar.WithMetrics(s.engine),
		quasar.WithTracer(s.tracer),
	)
	if err != nil {
		logger.Error("mount failed", "error", err)
		http.Error(w, "mount failed", http.StatusInternalServerError)
		return
	}
	// The served page already reflects the mount.
	doc.TakeUpdates()

	session := newSession(id, doc, app, &s.config, logger, s.metrics, s.tracer)
	if err := s.sessions.Add(session); err != nil {
		logger.Warn("session rejected", "error", err)
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	data := pageData{Session: id}
	if head, ok := doc.QueryNode("head"); ok {
		data.Head = template.HTML(head.InnerMarkup())
	}
	body := doc.Body()
	data.BodyID = body.ID()
	data.Body = template.HTML(body.AnnotatedInnerMarkup())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := pageTemplate.Execute(w, data); err != nil {
		logger.Error("page write failed", "error", err)
	}
}

func (s *Server) handleScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Write([]byte(clientScript))
}

// handleWebSocket attaches a websocket to the session named by the
// session query parameter and runs its loops.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session")
	session, ok := s.sessions.Get(id)
	if !ok {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.metrics.wsErrors.WithLabelValues("upgrade").Inc()
		s.logger.Error("websocket upgrade failed", "error", err, "session_id", id)
		return
	}

	if err := session.attach(conn); err != nil {
		s.logger.Warn("websocket rejected", "error", err, "session_id", id)
		conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()),
			time.Now().Add(time.Second),
		)
		conn.Close()
		return
	}

	go session.WriteLoop()
	go session.EventLoop()
	session.ReadLoop()
}
