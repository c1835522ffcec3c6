package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Abdulaziz20007/Phono-Backend/internal/config"
)

const shutdownTimeout = 10 * time.Second

// Run serves the API until ctx is cancelled, then drains in-flight requests
func Run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	gin.SetMode(cfg.HTTP.GinMode)

	c, err := NewContainer(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Warn("close container", zap.Error(err))
		}
	}()

	if err := c.Bootstrap(ctx); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           c.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr), zap.String("sms_provider", cfg.SMS.Provider))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
