package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	clientdist "github.com/vango-dev/mwc/client/dist"
	"github.com/vango-dev/mwc/pkg/assets"
	"github.com/vango-dev/mwc/pkg/element"
	"github.com/vango-dev/mwc/pkg/middleware"
	"github.com/vango-dev/mwc/pkg/protocol"
	"github.com/vango-dev/mwc/pkg/render"
	"github.com/vango-dev/mwc/pkg/vango"
	"github.com/vango-dev/mwc/pkg/vdom"
)

// RootFunc creates the root component. It is called once per page render
// and once per live session.
type RootFunc func() vango.Component

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAssets serves element modules from src, resolving module names
// through manifest. manifest may be nil.
func WithAssets(src assets.Source, manifest *assets.Manifest) Option {
	return func(s *Server) {
		s.assets = src
		s.manifest = manifest
	}
}

// WithRegistry sets the element registry whose loaded definitions become
// page module scripts. Default: element.Default().
func WithRegistry(reg *element.Registry) Option {
	return func(s *Server) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// WithPrometheus registers the server's collectors on reg and exposes reg
// at Config.MetricsPath.
func WithPrometheus(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.metrics = middleware.NewMetrics(middleware.WithRegistry(reg))
		s.gatherer = reg
	}
}

// WithTracer sets the tracer for events and node calls.
func WithTracer(t *middleware.Tracer) Option {
	return func(s *Server) {
		s.tracer = t
	}
}

// Server serves pages, element modules, the bridge and live sessions.
type Server struct {
	config   *Config
	root     RootFunc
	logger   *slog.Logger
	registry *element.Registry
	assets   assets.Source
	manifest *assets.Manifest
	metrics  *middleware.Metrics
	gatherer prometheus.Gatherer
	tracer   *middleware.Tracer
	renderer *render.Renderer

	upgrader websocket.Upgrader
	router   chi.Router

	mu         sync.Mutex
	sessions   map[string]*Session
	wg         sync.WaitGroup
	httpServer *http.Server
}

// New creates a server for root.
func New(config *Config, root RootFunc, opts ...Option) *Server {
	config = config.withDefaults()

	s := &Server{
		config:   config,
		root:     root,
		logger:   slog.Default().With("component", "server"),
		registry: element.Default(),
		renderer: render.NewRenderer(render.RendererConfig{}),
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracer == nil {
		s.tracer = middleware.NewTracer()
	}

	checkOrigin := config.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = sameOrigin
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     checkOrigin,
	}

	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer(s.logger))
	r.Use(middleware.RequestLogger(s.logger))
	r.Use(s.metrics.HTTP)

	// The socket stays outside the compressed group; its writer must hijack.
	r.Get(render.DefaultSocketPath, s.HandleWebSocket)

	r.Group(func(r chi.Router) {
		r.Use(compress)
		r.Get("/", s.HandlePage)
		r.Get(render.DefaultBridgeScript, s.handleBridge)
		if s.assets != nil {
			prefix := s.config.ModulesPrefix
			r.Handle(prefix+"*", http.StripPrefix(prefix, assets.Handler(s.assets)))
		}
	})
	if s.gatherer != nil {
		r.Handle(s.config.MetricsPath, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// compress gzips responses for clients that accept it.
func compress(next http.Handler) http.Handler {
	return gzhttp.GzipHandler(next)
}

// sameOrigin accepts upgrades without an Origin header or whose Origin host
// matches the request host.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// HandlePage renders the root component as a complete document.
func (s *Server) HandlePage(w http.ResponseWriter, r *http.Request) {
	tree := s.root().Render()
	if tree == nil {
		s.logger.Error("root rendered nil")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	vdom.AssignHIDs(tree, vdom.NewHIDGenerator())

	var buf bytes.Buffer
	err := s.renderer.RenderPage(&buf, render.PageData{
		Body:    tree,
		Title:   s.config.Title,
		Lang:    s.config.Lang,
		Styles:  s.config.Styles,
		Modules: render.ModuleURLs(s.registry, assets.NewResolver(s.manifest, s.config.ModulesPrefix)),
	})
	if err != nil {
		s.logger.Error("page render failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

func (s *Server) handleBridge(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Write(clientdist.BridgeJS)
}

// HandleWebSocket upgrades the request, performs the hello handshake, mounts
// a fresh root component and runs the session until it ends.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	conn.SetReadLimit(s.config.MaxMessageSize)
	conn.SetReadDeadline(time.Now().Add(s.config.HandshakeTimeout))

	hello, status := readClientHello(conn)
	if status != protocol.HelloOK {
		s.logger.Warn("handshake rejected", "status", status)
		s.sendServerHello(conn, status, "")
		conn.Close()
		return
	}

	sess := newSession(conn, s.config, s.logger, s.metrics, s.tracer)
	if err := s.sendServerHello(conn, protocol.HelloOK, sess.ID); err != nil {
		s.logger.Error("server hello failed", "error", err)
		conn.Close()
		return
	}

	if !s.register(sess) {
		sess.CloseWithReason(protocol.CloseServerShutdown, "server shutting down")
		return
	}
	defer s.wg.Done()

	if err := sess.mount(s.root()); err != nil {
		s.logger.Error("mount failed", "session_id", sess.ID, "error", err)
		sess.sendError(protocol.NewFatalError(protocol.ErrServerError, "mount failed"))
		sess.CloseWithReason(protocol.CloseError, "mount failed")
		sess.teardown()
		return
	}

	s.logger.Info("session started", "session_id", sess.ID, "path", hello.Path, "nodes", sess.NodeCount())
	go sess.WriteLoop()
	sess.ReadLoop()
}

// readClientHello reads the first frame and validates it as a client hello.
func readClientHello(conn *websocket.Conn) (*protocol.ClientHello, protocol.HelloStatus) {
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return nil, protocol.HelloInvalidFormat
	}
	frame, err := protocol.DecodeFrame(msg)
	if err != nil || frame.Type != protocol.FrameHello {
		return nil, protocol.HelloInvalidFormat
	}
	hello, err := protocol.DecodeClientHello(frame.Payload)
	if err != nil {
		return nil, protocol.HelloInvalidFormat
	}
	if !hello.Compatible() {
		return hello, protocol.HelloVersionMismatch
	}
	return hello, protocol.HelloOK
}

func (s *Server) sendServerHello(conn *websocket.Conn, status protocol.HelloStatus, sessionID string) error {
	payload := protocol.EncodeServerHello(&protocol.ServerHello{
		Status:     status,
		SessionID:  sessionID,
		ServerTime: uint64(time.Now().UnixMilli()),
	})
	data, err := protocol.NewFrame(protocol.FrameHello, payload).Encode()
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	return conn.WriteMessage(websocket.BinaryMessage, data)
}

// register adds sess to the live set. It fails once shutdown has begun.
func (s *Server) register(sess *Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions == nil {
		return false
	}
	s.sessions[sess.ID] = sess
	s.wg.Add(1)
	s.metrics.SessionOpened()

	sess.onClose = func(sess *Session) {
		s.mu.Lock()
		if s.sessions != nil {
			delete(s.sessions, sess.ID)
		}
		s.mu.Unlock()
		s.metrics.SessionClosed()
	}
	return true
}

// SessionCount returns the number of live sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Preflight creates the root component once so element definitions load
// before the server accepts requests. A definition that fails to load makes
// component construction panic; Preflight reports that as an error.
func (s *Server) Preflight() (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("server: preflight: %w", e)
				return
			}
			err = fmt.Errorf("server: preflight: %v", r)
		}
	}()
	if s.root == nil {
		return errors.New("server: no root component")
	}
	if s.root().Render() == nil {
		return errors.New("server: root rendered nil")
	}
	return nil
}

// Run starts the server and blocks until SIGINT/SIGTERM or a listen error.
func (s *Server) Run() error {
	if err := s.config.Validate(); err != nil {
		return err
	}
	if err := s.Preflight(); err != nil {
		return err
	}

	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil

	case <-shutdown:
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes every session, waits for them to unmount and stops the
// HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.Lock()
	sessions := s.sessions
	s.sessions = nil
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.CloseWithReason(protocol.CloseServerShutdown, "server shutting down")
	}

	drained := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-ctx.Done():
		s.logger.Warn("sessions did not drain before shutdown timeout")
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Config returns a copy of the effective configuration.
func (s *Server) Config() *Config {
	return s.config.Clone()
}

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}
