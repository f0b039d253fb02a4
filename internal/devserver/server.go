// Package devserver is a local backend for the evaluation service, used for
// development and in tests of the API client.
package devserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/nikbrunner/mev/internal/logger"
	"github.com/nikbrunner/mev/internal/storage"
)

// SessionCookie is set by a successful login.
const SessionCookie = "SESSION"

// MaxUploadSize bounds multipart request bodies.
const MaxUploadSize = 10 << 20

// Config holds runtime options for the development server.
type Config struct {
	Addr     string
	PageSize int
	Logger   *charmlog.Logger
}

// Server serves the evaluation REST surface from a Store.
type Server struct {
	cfg      Config
	store    storage.Store
	log      *charmlog.Logger
	validate *validator.Validate
	router   chi.Router
}

// New constructs the server with its middleware stack and routes.
func New(store storage.Store, cfg Config) *Server {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}

	s := &Server{
		cfg:      cfg,
		store:    store,
		log:      cfg.Logger,
		validate: validator.New(),
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(s.requestLogger)
	router.Use(chimw.Recoverer)
	router.Use(chimw.Timeout(30 * time.Second))

	router.Get("/search", s.handleSearch)
	router.Get("/filter", s.handleFilter)

	router.Post("/login", s.handleLogin)
	router.Post("/send-verification-email", s.handleSendVerificationEmail)
	router.Post("/find-id", s.handleFindID)
	router.Post("/find-password", s.handleFindPassword)

	router.Post("/menu", s.handleAddMenu)
	router.Get("/images/{menuId}", s.handleImage)
	router.Route("/evaluate", func(r chi.Router) {
		r.Post("/find-restaurant", s.handleFindRestaurant)
		r.Get("/menu/{restaurantId}", s.handleDishes)
		r.Post("/{menuId}", s.handleEvaluate)
	})

	s.router = router
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on cfg.Addr until ctx is done, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("dev server listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}
