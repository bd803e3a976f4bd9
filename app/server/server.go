package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dreamshops/catalog/app/api"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// RouteRegistrar is implemented by every resource handler.
type RouteRegistrar interface {
	RegisterRoutes(router gin.IRouter)
}

// NewRouter mounts the handlers under /api/v1 behind the request-id and
// access-log middleware.
func NewRouter(logger *logrus.Logger, handlers ...RouteRegistrar) *gin.Engine {
	router := gin.New()
	router.RedirectTrailingSlash = false
	router.Use(gin.Recovery(), api.RequestID(), api.AccessLog(logger))

	router.GET("/healthz", func(c *gin.Context) {
		api.SuccessResponse(c, http.StatusOK, "ok", nil)
	})

	v1 := router.Group("/api/v1")
	for _, h := range handlers {
		h.RegisterRoutes(v1)
	}
	return router
}

// Run serves handler on addr until ctx is cancelled, then drains in-flight
// requests for at most shutdownTimeout.
func Run(ctx context.Context, addr string, handler http.Handler, shutdownTimeout time.Duration, logger *logrus.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve on %s: %w", addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Warn("Shutdown signal received, draining connections...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("Server stopped gracefully.")
		return nil
	})
	return g.Wait()
}
