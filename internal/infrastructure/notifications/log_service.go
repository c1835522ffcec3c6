package notifications

import (
	"context"

	"go.uber.org/zap"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
)

// LogServiceImpl writes messages to the log instead of delivering them.
// Used for local development.
type LogServiceImpl struct {
	log         *zap.Logger
	countryCode string
}

// NewLogService creates a notification service that only logs
func NewLogService(log *zap.Logger, countryCode string) domain.NotificationService {
	return &LogServiceImpl{log: log.Named("sms"), countryCode: countryCode}
}

// SendSMS implements domain.NotificationService
func (l *LogServiceImpl) SendSMS(_ context.Context, to, message string) error {
	l.log.Info("sms not delivered (log provider)",
		zap.String("to", l.countryCode+to),
		zap.String("message", message),
	)
	return nil
}
