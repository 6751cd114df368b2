package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kbolino/modinv/internal/logger"
)

// TraceIDHeader carries the trace id in requests and responses.
const TraceIDHeader = "X-Trace-ID"

const shutdownTimeout = 5 * time.Second

// NewRouter returns an engine serving the API routes. gin's mode is global,
// so callers set it with gin.SetMode beforehand.
func NewRouter(log *logger.Logger) *gin.Engine {
	h := NewHandler(log)

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(h.log))

	r.GET("/healthz", h.Health)
	api := r.Group("/api/v1")
	{
		api.GET("/inverse", h.Inverse)
		api.GET("/egcd", h.EGCD)
	}
	return r
}

// RequestLogger tags each request with a trace id, taken from the
// X-Trace-ID header or freshly generated, and logs it once handled.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx := logger.WithTraceID(c.Request.Context(), c.GetHeader(TraceIDHeader))
		c.Request = c.Request.WithContext(ctx)
		c.Header(TraceIDHeader, logger.GetTraceID(ctx))

		c.Next()

		log.WithContext(ctx).Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// Serve runs handler on addr until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, log *logger.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("server stopped")
	return nil
}
