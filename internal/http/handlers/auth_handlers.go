package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
	"github.com/Abdulaziz20007/Phono-Backend/internal/http/middleware"
)

const (
	// UserRefreshCookie carries the user refresh token
	UserRefreshCookie = "refresh_token"
	// AdminRefreshCookie carries the admin refresh token
	AdminRefreshCookie = "admin_refresh_token"

	cookiePath = "/auth"
)

// CookieConfig controls the refresh cookies
type CookieConfig struct {
	MaxAge time.Duration
	Secure bool
	Domain string
}

// AuthHandlers handles registration, activation and session HTTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
	cookies CookieConfig
	log     *zap.Logger
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, cookies CookieConfig, log *zap.Logger) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc, cookies: cookies, log: log.Named("auth")}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Phone    string `json:"phone" binding:"required,uzphone"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"max=64"`
	Surname  string `json:"surname" binding:"max=64"`
}

// PhoneRequest carries a bare phone number
type PhoneRequest struct {
	Phone string `json:"phone" binding:"required,uzphone"`
}

// OTPVerifyRequest represents OTP verification request
type OTPVerifyRequest struct {
	Phone string `json:"phone" binding:"required,uzphone"`
	Code  string `json:"code" binding:"required,numeric"`
	UUID  string `json:"uuid" binding:"required,uuid"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Phone    string `json:"phone" binding:"required,uzphone"`
	Password string `json:"password" binding:"required"`
}

// Register opens a pending account and sends the first code
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	reg, err := h.authSvc.Register(c.Request.Context(), domain.RegisterRequest{
		Phone:    req.Phone,
		Password: req.Password,
		Name:     req.Name,
		Surname:  req.Surname,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": registrationView(reg)})
}

// SendOTP issues a fresh code for a pending account
func (h *AuthHandlers) SendOTP(c *gin.Context) {
	var req PhoneRequest
	if !bindJSON(c, &req) {
		return
	}

	reg, err := h.authSvc.SendOTP(c.Request.Context(), req.Phone)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": registrationView(reg)})
}

// VerifyOTP activates the account and starts a session
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req OTPVerifyRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.VerifyOTP(c.Request.Context(), req.Phone, req.Code, req.UUID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.startSession(c, UserRefreshCookie, result)
}

// Login handles user login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.startSession(c, UserRefreshCookie, result)
}

// Refresh rotates the user session from the refresh cookie
func (h *AuthHandlers) Refresh(c *gin.Context) {
	h.refresh(c, UserRefreshCookie, h.authSvc.Refresh)
}

// Logout clears the user refresh cookie
func (h *AuthHandlers) Logout(c *gin.Context) {
	h.clearCookie(c, UserRefreshCookie)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Logged out successfully"}})
}

// AdminLogin handles administrator login
func (h *AuthHandlers) AdminLogin(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.AdminLogin(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.startSession(c, AdminRefreshCookie, result)
}

// AdminRefresh rotates the admin session from the admin refresh cookie
func (h *AuthHandlers) AdminRefresh(c *gin.Context) {
	h.refresh(c, AdminRefreshCookie, h.authSvc.AdminRefresh)
}

// AdminLogout clears the admin refresh cookie
func (h *AuthHandlers) AdminLogout(c *gin.Context) {
	h.clearCookie(c, AdminRefreshCookie)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Logged out successfully"}})
}

// Me returns the caller's identity and profile
func (h *AuthHandlers) Me(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		respondError(c, h.log, domain.ErrUnauthenticated)
		return
	}

	var profile gin.H
	switch identity.Actor {
	case domain.ActorUser:
		user, err := h.authSvc.GetUserProfile(c.Request.Context(), identity.ID)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		profile = userView(user)
	case domain.ActorAdmin:
		admin, err := h.authSvc.GetAdminProfile(c.Request.Context(), identity.ID)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		profile = adminView(admin)
	default:
		respondError(c, h.log, domain.ErrUnauthenticated)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"identity": gin.H{
				"id":         identity.ID,
				"phone":      identity.Phone,
				"actor":      identity.Actor,
				"role":       identity.Role,
				"is_active":  identity.IsActive,
				"is_creator": identity.IsCreator,
			},
			"profile": profile,
		},
	})
}

func (h *AuthHandlers) refresh(c *gin.Context, cookie string, rotate func(ctx context.Context, token string) (*domain.AuthResult, error)) {
	token, err := c.Cookie(cookie)
	if err != nil || token == "" {
		respondError(c, h.log, domain.ErrInvalidRefreshToken)
		return
	}

	result, err := rotate(c.Request.Context(), token)
	if err != nil {
		if StatusFor(err) == http.StatusUnauthorized {
			h.clearCookie(c, cookie)
		}
		respondError(c, h.log, err)
		return
	}

	h.startSession(c, cookie, result)
}

// startSession puts the refresh token in its cookie and the access token in the body
func (h *AuthHandlers) startSession(c *gin.Context, cookie string, result *domain.AuthResult) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookie, result.Tokens.RefreshToken, int(h.cookies.MaxAge.Seconds()), cookiePath, h.cookies.Domain, h.cookies.Secure, true)

	data := gin.H{
		"access_token": result.Tokens.AccessToken,
		"token_type":   "Bearer",
		"expires_at":   result.Tokens.AccessExpiresAt.Unix(),
	}
	switch {
	case result.User != nil:
		data["user"] = userView(result.User)
	case result.Admin != nil:
		data["admin"] = adminView(result.Admin)
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

func (h *AuthHandlers) clearCookie(c *gin.Context, cookie string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookie, "", -1, cookiePath, h.cookies.Domain, h.cookies.Secure, true)
}

func registrationView(reg *domain.Registration) gin.H {
	return gin.H{
		"uuid":   reg.UUID,
		"expire": reg.ExpiresAt.Unix(),
		"phone":  reg.Phone,
	}
}

func userView(u *domain.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"name":       u.Name,
		"surname":    u.Surname,
		"phone":      u.Phone,
		"is_active":  u.IsActive,
		"created_at": u.CreatedAt,
	}
}

func adminView(a *domain.Admin) gin.H {
	return gin.H{
		"id":         a.ID,
		"name":       a.Name,
		"surname":    a.Surname,
		"phone":      a.Phone,
		"is_creator": a.IsCreator,
		"created_at": a.CreatedAt,
	}
}
