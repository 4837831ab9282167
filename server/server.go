package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pratm1304/IntelliDocs-Ai/intellidocs"
	log "github.com/rs/zerolog/log"
)

// Options tunes the HTTP surface
type Options struct {
	Addr        string
	MaxUploadMB int64
}

// Server is the HTTP front end for the README generator
type Server struct {
	router *gin.Engine
	opts   Options
	srv    *http.Server
}

// New builds the router; svc is shared by every handler
func New(svc *intellidocs.Service, opts Options) *Server {
	if opts.MaxUploadMB <= 0 {
		opts.MaxUploadMB = 32
	}
	router := gin.New()
	router.MaxMultipartMemory = opts.MaxUploadMB << 20
	router.Use(RequestLogger(), gin.CustomRecovery(recoverPanic))
	registerRoutes(router, &Handler{svc: svc, maxUploadBytes: opts.MaxUploadMB << 20})
	return &Server{router: router, opts: opts}
}

// Handler exposes the router for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.opts.Addr).Msg("HTTP server starting")
		errCh <- s.srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("HTTP server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	}
}

func recoverPanic(c *gin.Context, recovered any) {
	log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("recovered from panic")
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
}
