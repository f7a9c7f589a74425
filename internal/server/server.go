// Package server hosts the simulator page and forwards form submissions to
// the simulator upstream.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/goliatone/go-simform/internal/config"
	"github.com/goliatone/go-simform/pkg/contract"
	"github.com/goliatone/go-simform/pkg/page"
)

// NoUpstreamText is returned by the simulate routes when no upstream is
// configured.
const NoUpstreamText = "simulator upstream is not configured"

// Server serves the host page.
type Server struct {
	cfg      config.ServerConfig
	bindings []contract.Binding
	renderer *page.Renderer
	logger   *zap.Logger
	script   []byte
	proxy    *httputil.ReverseProxy
	engine   *gin.Engine
}

// New builds the gin engine for the bindings.
func New(cfg config.ServerConfig, bindings []contract.Binding, renderer *page.Renderer, logger *zap.Logger) (*Server, error) {
	if renderer == nil {
		return nil, errors.New("server: renderer is nil")
	}
	if len(bindings) == 0 {
		return nil, errors.New("server: no bindings")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	script, err := page.Script()
	if err != nil {
		return nil, fmt.Errorf("server: read script: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		bindings: bindings,
		renderer: renderer,
		logger:   logger,
		script:   script,
	}
	if upstream := strings.TrimSpace(cfg.Upstream); upstream != "" {
		target, err := url.Parse(upstream)
		if err != nil || target.Scheme == "" || target.Host == "" {
			return nil, fmt.Errorf("server: invalid upstream %q", upstream)
		}
		s.proxy = httputil.NewSingleHostReverseProxy(target)
		s.proxy.ErrorHandler = s.proxyError
	}
	s.engine = s.routes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(s.logger))
	if len(s.cfg.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins: s.cfg.CORSOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{"Origin", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}))
	}

	router.GET("/", s.handleIndex)
	router.GET(page.ScriptPath, s.handleScript)
	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	for _, binding := range s.bindings {
		router.POST(binding.Path, s.handleSimulate)
	}
	return router
}

func (s *Server) handleIndex(c *gin.Context) {
	p, err := page.New(s.bindings, page.WithLogger(s.logger))
	if err != nil {
		s.logger.Error("build page", zap.Error(err))
		c.String(http.StatusInternalServerError, "page unavailable")
		return
	}
	html, err := s.renderer.Render(c.Request.Context(), p)
	if err != nil {
		s.logger.Error("render page", zap.Error(err))
		c.String(http.StatusInternalServerError, "page unavailable")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

func (s *Server) handleScript(c *gin.Context) {
	c.Data(http.StatusOK, "application/javascript; charset=utf-8", s.script)
}

func (s *Server) handleSimulate(c *gin.Context) {
	if s.proxy == nil {
		c.String(http.StatusBadGateway, NoUpstreamText)
		return
	}
	s.proxy.ServeHTTP(c.Writer, c.Request)
}

func (s *Server) proxyError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Warn("upstream request failed", zap.String("path", r.URL.Path), zap.Error(err))
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusBadGateway)
	_, _ = w.Write([]byte("simulator upstream unavailable"))
}

// Run serves until ctx is done, then shuts down within the grace period.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.cfg.Addr), zap.String("upstream", s.cfg.Upstream))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err, ok := <-errChan:
		if ok {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownGrace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}
