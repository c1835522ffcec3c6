package logging

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
)

// New builds the process logger: JSON in production, console otherwise
func New(production bool) (*zap.Logger, error) {
	if production {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// RequestLogger logs one line per request after it completes
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Error("request", fields...)
		case status >= 400:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}

// AuditLogger writes audit events to a dedicated named zap logger
type AuditLogger struct {
	log *zap.Logger
}

// NewAuditLogger creates a domain.AuditLogger backed by zap
func NewAuditLogger(log *zap.Logger) *AuditLogger {
	return &AuditLogger{log: log.Named("audit")}
}

// LogEvent implements domain.AuditLogger
func (a *AuditLogger) LogEvent(_ context.Context, event *domain.AuditEvent) {
	fields := []zap.Field{
		zap.String("event", string(event.EventType)),
		zap.Bool("success", event.Success),
		zap.Time("at", event.Timestamp),
	}
	if event.Actor != "" {
		fields = append(fields, zap.String("actor", string(event.Actor)))
	}
	if event.AccountID != 0 {
		fields = append(fields, zap.Uint("account_id", event.AccountID))
	}
	if event.Phone != "" {
		fields = append(fields, zap.String("phone", event.Phone))
	}
	if event.ErrorMsg != "" {
		fields = append(fields, zap.String("error", event.ErrorMsg))
	}
	if len(event.Metadata) > 0 {
		fields = append(fields, zap.Any("metadata", event.Metadata))
	}

	if event.Success {
		a.log.Info("audit", fields...)
		return
	}
	a.log.Warn("audit", fields...)
}

var _ domain.AuditLogger = (*AuditLogger)(nil)
