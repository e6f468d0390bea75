package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guiyumin/vgrab/internal/core/config"
	"github.com/guiyumin/vgrab/internal/core/extractor"
	"github.com/guiyumin/vgrab/internal/core/i18n"
	"github.com/guiyumin/vgrab/internal/core/version"
	"github.com/guiyumin/vgrab/internal/core/waitlist"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Response is the standard API response structure
type Response struct {
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

// Server is the HTTP server for vgrab
type Server struct {
	cfg      *config.Config
	registry *extractor.Registry
	waitlist waitlist.Store
	slots    chan struct{}
	limiter  *rate.Limiter
	engine   *gin.Engine
	server   *http.Server
}

// New creates a server. The registry resolves URLs to extractors and the
// store backs the waitlist endpoints.
func New(cfg *config.Config, registry *extractor.Registry, store waitlist.Store) *Server {
	maxConcurrent := cfg.Server.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}

	s := &Server{
		cfg:      cfg,
		registry: registry,
		waitlist: store,
		slots:    make(chan struct{}, maxConcurrent),
	}
	if cfg.Server.RateLimit > 0 {
		burst := cfg.Server.RateBurst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.Server.RateLimit), burst)
	}

	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(requestIDMiddleware())
	engine.Use(loggingMiddleware())
	if s.limiter != nil {
		engine.Use(s.rateLimitMiddleware())
	}
	if s.cfg.Server.APIKey != "" {
		engine.Use(s.authMiddleware())
	}

	api := engine.Group("/api")
	api.GET("/health", s.handleHealth)
	api.POST("/info", s.handleInfo)
	api.POST("/waitlist", s.handleJoinWaitlist)
	api.GET("/waitlist", s.handleWaitlistStatus)
	api.GET("/i18n", s.handleI18n)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, Response{
			Code:    404,
			Data:    nil,
			Message: "not found",
		})
	})

	return engine
}

// Handler returns the HTTP handler, used by tests and embedding callers
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start listens on the configured port and blocks until the server stops
func (s *Server) Start() error {
	if !config.Exists() {
		t := i18n.T(s.lang())
		log.Warn(t.Server.NoConfigWarning)
		log.Info(t.Server.RunInitHint)
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:      s.engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: s.cfg.Extractor.Options().RequestTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.WithFields(log.Fields{
		"port":           s.cfg.Server.Port,
		"max_concurrent": cap(s.slots),
		"ytdlp":          s.cfg.Extractor.BinaryPath,
	}).Info("starting vgrab server")
	if s.cfg.Server.APIKey != "" {
		log.Info("API key authentication enabled")
	}

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) lang() string {
	if s.cfg.Language == "" {
		return "en"
	}
	return s.cfg.Language
}

// acquire takes an extraction slot, giving up when ctx ends first
func (s *Server) acquire(ctx context.Context) bool {
	select {
	case s.slots <- struct{}{}:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *Server) release() {
	<-s.slots
}

// Run builds a server from cfg and blocks until SIGINT/SIGTERM
func Run(cfg *config.Config) error {
	store := OpenWaitlist(context.Background(), cfg.Waitlist)
	registry := extractor.NewDefaultRegistry(cfg.Extractor.Options())
	srv := New(cfg, registry, store)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Stop(ctx)
	}()

	return srv.Start()
}

// OpenWaitlist returns a Redis-backed store when an address is configured
// and reachable, otherwise an in-memory store.
func OpenWaitlist(ctx context.Context, cfg config.WaitlistConfig) waitlist.Store {
	if cfg.RedisAddr == "" {
		return waitlist.NewMemoryStore()
	}

	store, err := waitlist.NewRedisStore(ctx, waitlist.RedisOptions{
		Addr:      cfg.RedisAddr,
		Password:  cfg.RedisPassword,
		DB:        cfg.RedisDB,
		KeyPrefix: cfg.KeyPrefix,
	})
	if err != nil {
		log.WithError(err).Warn("redis not available, using in-memory waitlist")
		return waitlist.NewMemoryStore()
	}
	log.WithField("addr", cfg.RedisAddr).Info("waitlist connected to redis")
	return store
}

// Handlers

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Code: 200,
		Data: gin.H{
			"status":  "ok",
			"version": version.Version,
		},
		Message: "everything is good",
	})
}

func (s *Server) handleI18n(c *gin.Context) {
	lang := s.lang()
	t := i18n.T(lang)

	c.JSON(http.StatusOK, Response{
		Code: 200,
		Data: gin.H{
			"language": lang,
			"errors":   t.Errors,
			"waitlist": t.Waitlist,
		},
		Message: "translations retrieved",
	})
}
