package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"event-site/pkg/config"
	"event-site/pkg/handlers"
	"event-site/pkg/metrics"
	"event-site/pkg/services"
	"event-site/web"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const sessionName = "eventsite_session"

// NewRouter wires middleware and routes onto a gin engine.
func NewRouter(cfg config.Config, content *services.ContentManager, m *metrics.Metrics) (*gin.Engine, error) {
	tmpl, err := template.New("").Funcs(handlers.TemplateFuncs()).ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	h := handlers.New(cfg, content, m)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)

	// Session Setup
	store := cookie.NewStore([]byte(cfg.SecretKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   30 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	r.Use(
		handlers.RequestIDMiddleware,
		handlers.AccessLog,
		handlers.MetricsMiddleware(m),
		gin.CustomRecovery(h.Recover),
		handlers.CORS,
		sessions.Sessions(sessionName, store),
	)

	// Static Files
	r.StaticFS("/static", http.FS(web.Static()))
	r.GET("/media/:tab/:file", h.ServeMedia)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	// --- Pages ---
	r.GET("/health", h.RootHealth)
	r.GET("/", h.Index)
	r.GET("/tab/:tab", h.ViewTab)
	r.GET("/article/:tab/:articleId", h.ViewArticle)

	// --- JSON API ---
	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/info", h.Info)
		api.GET("/tabs", h.ListTabs)
		api.GET("/tabs/:tab", h.GetTab)
		api.GET("/tabs/:tab/media", h.ListMedia)
		api.GET("/articles/:tab", h.ListArticles)
		api.GET("/article/:tab/:articleId", h.GetArticle)
		api.GET("/recent", h.RecentArticles)
	}

	r.NoRoute(h.NotFound)

	return r, nil
}

// NewContentManager builds the content manager and Markdown renderer described
// by cfg.
func NewContentManager(cfg config.Config) *services.ContentManager {
	renderer := services.NewMarkdownRenderer(services.MarkdownOptions{
		Extensions: cfg.MarkdownExtensions,
		HardWraps:  cfg.MarkdownHardWraps,
		SafeMode:   cfg.MarkdownSafeMode,
		HeadingIDs: cfg.MarkdownHeadingIDs,
	})
	return services.NewContentManager(cfg.ContentDir, renderer)
}

// Server owns the HTTP listener.
type Server struct {
	cfg        config.Config
	httpServer *http.Server
}

// New builds the content manager, metrics and router for cfg.
func New(cfg config.Config) (*Server, error) {
	if cfg.Debug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := NewRouter(cfg, NewContentManager(cfg), metrics.New())
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg: cfg,
		httpServer: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until ctx is cancelled, then drains connections for up to ten
// seconds.
func (s *Server) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		slog.Info("starting server",
			"server_addr", "http://localhost"+s.cfg.Addr(),
			"content_dir", s.cfg.ContentDir,
			"environment", s.cfg.Environment,
		)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
