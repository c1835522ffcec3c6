package notifications

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
	"github.com/Abdulaziz20007/Phono-Backend/internal/config"
)

// New selects the SMS provider named in the configuration
func New(cfg config.SMSConfig, log *zap.Logger) (domain.NotificationService, error) {
	switch cfg.Provider {
	case "", "log":
		return NewLogService(log, cfg.CountryCode), nil
	case "twilio":
		return NewTwilioService(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber, cfg.CountryCode), nil
	case "gateway":
		return NewGatewayService(GatewayConfig{
			BaseURL:     cfg.Gateway.BaseURL,
			Email:       cfg.Gateway.Email,
			Password:    cfg.Gateway.Password,
			From:        cfg.Gateway.From,
			CountryCode: cfg.CountryCode,
		}, &ProviderTokenCache{}, log), nil
	default:
		return nil, fmt.Errorf("unknown sms provider %q", cfg.Provider)
	}
}
