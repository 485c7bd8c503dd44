package http

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"cansee/internal/cache"
	"cansee/internal/config"
	"cansee/internal/core"
	applog "cansee/internal/log"
	"cansee/internal/middleware/ratelimit"
	"cansee/internal/middleware/security"
	"cansee/internal/middleware/trace"
	"cansee/internal/view"
	appweb "cansee/web"
)

const (
	staticMaxAge      = 3600
	fragmentCacheSize = 16
)

// Server serves the dashboard page, its tab fragments and static assets.
type Server struct {
	http.Server
	renderer    *view.Renderer
	logger      *applog.Logger
	fragments   *cache.Loader[[]byte]
	cacheMgr    *cache.Manager
	rateLimiter *ratelimit.Limiter
	tracer      *trace.Middleware

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(cfg *config.Config, renderer *view.Renderer, logger *applog.Logger) *Server {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}

	fragmentCache := cache.NewLRUCache[[]byte](fragmentCacheSize, cfg.CacheTTL)
	mgr := cache.NewManager()
	mgr.Register(fragmentCache)
	mgr.StartCleanup(cfg.CacheCleanupInterval)

	s := &Server{
		Server: http.Server{
			Addr:           cfg.Addr(),
			ReadTimeout:    cfg.ReadTimeout,
			WriteTimeout:   cfg.WriteTimeout,
			IdleTimeout:    cfg.IdleTimeout,
			MaxHeaderBytes: 1 << 16, // 64KB
		},
		renderer:    renderer,
		logger:      logger.WithComponent(applog.ComponentHTTP),
		fragments:   cache.NewLoader[[]byte](fragmentCache),
		cacheMgr:    mgr,
		rateLimiter: ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: cfg.RateLimitRPM, CleanupInterval: cfg.CacheCleanupInterval}),
		tracer:      trace.NewMiddleware(logger, security.ClientIP),
	}
	s.Handler = s.routes(logger)
	return s
}

func (s *Server) routes(logger *applog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(s.tracer.Middleware)
	r.Use(applog.Middleware(logger))
	r.Use(applog.RequestIDMiddleware(trace.GetRequestID))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware)

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", s.handleReady)

	static := http.StripPrefix("/static/", http.FileServer(http.FS(appweb.Static())))
	r.With(security.StaticAssetMiddleware(staticMaxAge)).Handle("/static/*", static)

	r.Group(func(r chi.Router) {
		r.Use(s.rateLimiter.Middleware(security.ClientIP, s.handleRateLimited))
		r.Get("/", s.handleIndex)
		r.Get("/ui/tabs/{tab}", s.handleTab)
	})

	r.NotFound(s.handleNotFound)
	return r
}

// Shutdown stops background work and gracefully shuts the HTTP server down.
func (s *Server) Shutdown(ctx context.Context) error {
	s.shutdownOnce.Do(func() {
		s.logger.Info("Stopping background services",
			applog.FieldOperation, applog.OpShutdown,
			"requests_total", s.tracer.GetMetrics().TotalRequests,
			"rate_limited", s.rateLimiter.Rejected())
		s.cacheMgr.Stop()
		s.rateLimiter.Stop()
	})
	return s.Server.Shutdown(ctx)
}

// ListenAndServe runs the server until it is shut down. A clean shutdown
// is not reported as an error.
func (s *Server) ListenAndServe() error {
	s.logger.Info("HTTP server listening", "addr", s.Addr, applog.FieldOperation, applog.OpStartup)
	if err := s.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Warm renders every tab fragment into the cache.
func (s *Server) Warm(ctx context.Context) error {
	start := time.Now()
	for _, tab := range core.Tabs() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, _, err := s.fragment(tab); err != nil {
			return err
		}
	}
	s.logger.Debug("Fragment cache warmed", applog.FieldDuration, time.Since(start).Milliseconds())
	return nil
}
