// Package httpapi serves the shop's listings over HTTP. Every listing
// endpoint returns one rendered page of a data table.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/teashop/internal/session"
	"github.com/mesh-intelligence/teashop/pkg/datatable"
	"github.com/mesh-intelligence/teashop/pkg/types"
)

const (
	contentTypeJSON        = "application/json"
	contentTypeCSV         = "text/csv"
	defaultAddr            = "127.0.0.1:8080"
	defaultShutdownTimeout = 5 * time.Second
)

// Config configures a Server.
type Config struct {
	// Addr is the listen address. Defaults to 127.0.0.1:8080.
	Addr string
	// PageSize is used when a request has no page_size.
	PageSize int
	// Session authorizes access to manager-only listings. Nil denies them.
	Session *session.Session
	Logger  *zap.Logger
}

// Server is the HTTP front end over a Shop.
type Server struct {
	shop       types.Shop
	session    *session.Session
	logger     *zap.Logger
	pageSize   int
	addr       string
	httpServer *http.Server
	listener   net.Listener
	// serveErr receives the error that ends Serve early, if any.
	serveErr chan error
}

// NewServer creates a server for shop. Call Start to listen.
func NewServer(shop types.Shop, cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = datatable.DefaultPageSize
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Server{
		shop:     shop,
		session:  cfg.Session,
		logger:   cfg.Logger,
		pageSize: cfg.PageSize,
		addr:     cfg.Addr,
	}
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/inventory", s.handleInventory)
		r.Get("/inventory/{id}", s.handleInventoryItem)
		r.Get("/employees", s.handleEmployees)
		r.Get("/orders", s.handleOrders)
		r.Post("/orders/{id}/status", s.handleOrderStatus)
		r.Get("/reports", s.handleReports)
	})
	return r
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: time.Second,
	}
	errc := make(chan error, 1)
	s.listener = ln
	s.httpServer = srv
	s.serveErr = errc

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", zap.Error(err))
			errc <- err
		}
	}()

	s.logger.Info("HTTP server started", zap.String("addr", s.URL()))
	return nil
}

// Stop shuts the server down, waiting up to five seconds for in-flight
// requests.
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	s.httpServer = nil
	s.logger.Info("HTTP server stopped")
	return nil
}

// Run starts the server and stops it when ctx is done. It returns early
// with the error if the server stops serving on its own.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	return s.wait(ctx)
}

// wait blocks until ctx is done or Serve fails, then stops the server.
func (s *Server) wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return s.Stop()
	case err := <-s.serveErr:
		_ = s.Stop()
		return fmt.Errorf("serve HTTP: %w", err)
	}
}

// URL returns the base URL of the running server, or of the configured
// address before Start.
func (s *Server) URL() string {
	if s.listener != nil {
		return "http://" + s.listener.Addr().String()
	}
	return "http://" + s.addr
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, NewOKResponse())
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("error encoding response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	s.writeJSON(w, status, NewErrorResponse(err.Error()))
}

// statusFor maps shop errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, types.ErrInvalidState),
		errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrInvalidData),
		errors.Is(err, types.ErrInvalidFilter):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrNotLoggedIn):
		return http.StatusUnauthorized
	case errors.Is(err, types.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrInvalidTransition),
		errors.Is(err, types.ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// requestLogger logs one line per request.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())))
		})
	}
}
