package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
)

var errGatewayUnauthorized = errors.New("sms gateway rejected provider token")

// ProviderTokenCache holds the gateway session token between sends
type ProviderTokenCache struct {
	mu    sync.Mutex
	token string
}

// Get returns the cached token, calling fetch when the cache is empty
func (c *ProviderTokenCache) Get(ctx context.Context, fetch func(context.Context) (string, error)) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" {
		return c.token, nil
	}
	token, err := fetch(ctx)
	if err != nil {
		return "", err
	}
	c.token = token
	return token, nil
}

// Invalidate drops token if it is still the cached one
func (c *ProviderTokenCache) Invalidate(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == token {
		c.token = ""
	}
}

// GatewayConfig configures a token-authenticated HTTP SMS gateway
type GatewayConfig struct {
	BaseURL     string
	Email       string
	Password    string
	From        string
	CountryCode string
}

// GatewayServiceImpl implements domain.NotificationService over an HTTP SMS gateway
// that hands out bearer tokens from a login endpoint.
type GatewayServiceImpl struct {
	cfg    GatewayConfig
	tokens *ProviderTokenCache
	client *http.Client
	log    *zap.Logger
}

// NewGatewayService creates a gateway notification service
func NewGatewayService(cfg GatewayConfig, tokens *ProviderTokenCache, log *zap.Logger) domain.NotificationService {
	return &GatewayServiceImpl{
		cfg:    cfg,
		tokens: tokens,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log.Named("sms-gateway"),
	}
}

// SendSMS implements domain.NotificationService. A rejected token is refreshed once.
func (g *GatewayServiceImpl) SendSMS(ctx context.Context, to, message string) error {
	recipient := strings.TrimPrefix(g.cfg.CountryCode, "+") + to

	for attempt := 0; attempt < 2; attempt++ {
		token, err := g.tokens.Get(ctx, g.login)
		if err != nil {
			return fmt.Errorf("sms gateway login: %w", err)
		}

		err = g.send(ctx, token, recipient, message)
		if errors.Is(err, errGatewayUnauthorized) {
			g.log.Warn("provider token rejected, refreshing")
			g.tokens.Invalidate(token)
			continue
		}
		return err
	}
	return errGatewayUnauthorized
}

func (g *GatewayServiceImpl) login(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("email", g.cfg.Email)
	form.Set("password", g.cfg.Password)

	resp, err := g.postForm(ctx, "/auth/login", "", form)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	if payload.Data.Token == "" {
		return "", errors.New("login response carries no token")
	}
	return payload.Data.Token, nil
}

func (g *GatewayServiceImpl) send(ctx context.Context, token, recipient, message string) error {
	form := url.Values{}
	form.Set("mobile_phone", recipient)
	form.Set("message", message)
	form.Set("from", g.cfg.From)

	start := time.Now()
	resp, err := g.postForm(ctx, "/message/sms/send", token, form)
	if err != nil {
		return fmt.Errorf("sms gateway send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return errGatewayUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		g.log.Error("sms send failed",
			zap.String("to", recipient),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", body),
		)
		return fmt.Errorf("sms gateway returned %d", resp.StatusCode)
	}

	g.log.Debug("sms sent", zap.String("to", recipient), zap.Duration("took", time.Since(start)))
	return nil
}

func (g *GatewayServiceImpl) postForm(ctx context.Context, path, token string, form url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(g.cfg.BaseURL, "/")+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return g.client.Do(req)
}
