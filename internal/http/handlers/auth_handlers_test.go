package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
	"github.com/Abdulaziz20007/Phono-Backend/internal/mocks"
)

func sessionFor(user *domain.User) *domain.AuthResult {
	return &domain.AuthResult{
		Actor: domain.ActorUser,
		User:  user,
		Tokens: &domain.TokenPair{
			AccessToken:     "access-token",
			RefreshToken:    "refresh-token",
			AccessExpiresAt: time.Now().Add(15 * time.Minute),
		},
	}
}

func newAuthRouter(svc *mocks.MockAuthService, identity *domain.Identity) http.Handler {
	h := NewAuthHandlers(svc, testCookies, nopLogger())
	r := newTestRouter(identity)
	r.POST("/auth/register", h.Register)
	r.POST("/auth/send-otp", h.SendOTP)
	r.POST("/auth/verify-otp", h.VerifyOTP)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/refresh-token", h.Refresh)
	r.POST("/auth/logout", h.Logout)
	r.POST("/auth/admin/login", h.AdminLogin)
	r.POST("/auth/admin/refresh-token", h.AdminRefresh)
	r.POST("/auth/admin/logout", h.AdminLogout)
	r.GET("/auth/me", h.Me)
	return r
}

func TestAuthHandlers_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "successful registration",
			body: RegisterRequest{Phone: "901234567", Password: "secret1", Name: "Ali"},
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.RegisterFunc = func(ctx context.Context, req domain.RegisterRequest) (*domain.Registration, error) {
					return &domain.Registration{UUID: "u-1", Phone: req.Phone, ExpiresAt: time.Unix(1700000000, 0)}, nil
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "phone with country code",
			body:           RegisterRequest{Phone: "+998901234567", Password: "secret1"},
			setupMocks:     func(*mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid phone number",
		},
		{
			name:           "malformed json",
			body:           `{"phone":`,
			setupMocks:     func(*mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate phone",
			body: RegisterRequest{Phone: "901234567", Password: "secret1"},
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.RegisterFunc = func(context.Context, domain.RegisterRequest) (*domain.Registration, error) {
					return nil, domain.ErrDuplicatePhone
				}
			},
			expectedStatus: http.StatusConflict,
			expectedError:  "phone number is already registered",
		},
		{
			name: "weak password",
			body: RegisterRequest{Phone: "901234567", Password: "abc"},
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.RegisterFunc = func(context.Context, domain.RegisterRequest) (*domain.Registration, error) {
					return nil, domain.ErrWeakPassword
				}
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "password must be at least 6 characters",
		},
		{
			name: "sms provider down",
			body: RegisterRequest{Phone: "901234567", Password: "secret1"},
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.RegisterFunc = func(context.Context, domain.RegisterRequest) (*domain.Registration, error) {
					return nil, fmt.Errorf("failed to send OTP SMS: %w", errors.New("dial tcp: refused"))
				}
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockAuthService()
			tt.setupMocks(svc)

			w := doJSON(t, newAuthRouter(svc, nil), http.MethodPost, "/auth/register", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decodeBody(t, w)
			if tt.expectedStatus == http.StatusCreated {
				data := body["data"].(map[string]interface{})
				assert.Equal(t, "u-1", data["uuid"])
				assert.Equal(t, float64(1700000000), data["expire"])
				assert.Equal(t, "901234567", data["phone"])
				assert.NotContains(t, data, "code")
				return
			}
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, body["error"])
			}
		})
	}
}

func TestAuthHandlers_VerifyOTP(t *testing.T) {
	validBody := OTPVerifyRequest{Phone: "901234567", Code: "123456", UUID: "6f1c2d3e-4b5a-4c7d-8e9f-0a1b2c3d4e5f"}

	tests := []struct {
		name           string
		body           interface{}
		verifyErr      error
		expectedStatus int
	}{
		{name: "activates and starts a session", body: validBody, expectedStatus: http.StatusOK},
		{name: "uuid must be a uuid", body: OTPVerifyRequest{Phone: "901234567", Code: "123456", UUID: "abc"}, expectedStatus: http.StatusBadRequest},
		{name: "code must be numeric", body: OTPVerifyRequest{Phone: "901234567", Code: "12a456", UUID: validBody.UUID}, expectedStatus: http.StatusBadRequest},
		{name: "unknown code", body: validBody, verifyErr: domain.ErrOTPNotFound, expectedStatus: http.StatusNotFound},
		{name: "expired code", body: validBody, verifyErr: domain.ErrOTPExpired, expectedStatus: http.StatusBadRequest},
		{name: "wrong code", body: validBody, verifyErr: domain.ErrOTPMismatch, expectedStatus: http.StatusBadRequest},
		{name: "too many attempts", body: validBody, verifyErr: domain.ErrOTPMaxAttempts, expectedStatus: http.StatusTooManyRequests},
		{name: "phone mismatch", body: validBody, verifyErr: domain.ErrPhoneMismatch, expectedStatus: http.StatusBadRequest},
		{name: "already active", body: validBody, verifyErr: domain.ErrAlreadyActive, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockAuthService()
			svc.VerifyOTPFunc = func(ctx context.Context, phone, code, uuid string) (*domain.AuthResult, error) {
				if tt.verifyErr != nil {
					return nil, tt.verifyErr
				}
				return sessionFor(&domain.User{ID: 1, Phone: phone, IsActive: true}), nil
			}

			w := doJSON(t, newAuthRouter(svc, nil), http.MethodPost, "/auth/verify-otp", tt.body)
			require.Equal(t, tt.expectedStatus, w.Code)

			cookie := findCookie(w, UserRefreshCookie)
			if tt.expectedStatus != http.StatusOK {
				assert.Nil(t, cookie)
				return
			}
			require.NotNil(t, cookie)
			assert.Equal(t, "refresh-token", cookie.Value)
			assert.True(t, cookie.HttpOnly)
			assert.Equal(t, "/auth", cookie.Path)
			assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
			assert.Equal(t, int((240 * time.Hour).Seconds()), cookie.MaxAge)

			data := decodeBody(t, w)["data"].(map[string]interface{})
			assert.Equal(t, "access-token", data["access_token"])
			assert.NotContains(t, data, "refresh_token")
			user := data["user"].(map[string]interface{})
			assert.Equal(t, true, user["is_active"])
		})
	}
}

func TestAuthHandlers_Login(t *testing.T) {
	tests := []struct {
		name           string
		loginErr       error
		expectedStatus int
		expectedError  string
	}{
		{name: "success", expectedStatus: http.StatusOK},
		{name: "bad credentials", loginErr: domain.ErrInvalidCredentials, expectedStatus: http.StatusUnauthorized, expectedError: "invalid credentials"},
		{name: "blocked", loginErr: domain.ErrAccountBlocked, expectedStatus: http.StatusForbidden, expectedError: "account is blocked"},
		{name: "inactive", loginErr: domain.ErrAccountInactive, expectedStatus: http.StatusForbidden, expectedError: "account is not activated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockAuthService()
			svc.LoginFunc = func(ctx context.Context, phone, password string) (*domain.AuthResult, error) {
				if tt.loginErr != nil {
					return nil, tt.loginErr
				}
				return sessionFor(&domain.User{ID: 1, Phone: phone, IsActive: true}), nil
			}

			w := doJSON(t, newAuthRouter(svc, nil), http.MethodPost, "/auth/login", LoginRequest{Phone: "901234567", Password: "secret1"})
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeBody(t, w)["error"])
				return
			}
			assert.NotNil(t, findCookie(w, UserRefreshCookie))
		})
	}
}

func TestAuthHandlers_Refresh(t *testing.T) {
	svc := mocks.NewMockAuthService()
	svc.RefreshFunc = func(ctx context.Context, token string) (*domain.AuthResult, error) {
		if token != "old-refresh" {
			return nil, domain.ErrInvalidRefreshToken
		}
		return sessionFor(&domain.User{ID: 1, Phone: "901234567", IsActive: true}), nil
	}
	svc.AdminRefreshFunc = func(ctx context.Context, token string) (*domain.AuthResult, error) {
		return nil, domain.ErrInvalidRefreshToken
	}
	r := newAuthRouter(svc, nil)

	t.Run("rotates the cookie", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/auth/refresh-token", nil, &http.Cookie{Name: UserRefreshCookie, Value: "old-refresh"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "refresh-token", findCookie(w, UserRefreshCookie).Value)
	})

	t.Run("missing cookie", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/auth/refresh-token", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "invalid refresh token", decodeBody(t, w)["error"])
	})

	t.Run("user cookie is ignored by admin refresh", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/auth/admin/refresh-token", nil, &http.Cookie{Name: UserRefreshCookie, Value: "old-refresh"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejected token clears the cookie", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/auth/refresh-token", nil, &http.Cookie{Name: UserRefreshCookie, Value: "stolen"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		cleared := findCookie(w, UserRefreshCookie)
		require.NotNil(t, cleared)
		assert.Empty(t, cleared.Value)
		assert.Negative(t, cleared.MaxAge)
	})
}

func TestAuthHandlers_AdminLoginAndLogout(t *testing.T) {
	svc := mocks.NewMockAuthService()
	svc.AdminLoginFunc = func(ctx context.Context, phone, password string) (*domain.AuthResult, error) {
		return &domain.AuthResult{
			Actor:  domain.ActorAdmin,
			Admin:  &domain.Admin{ID: 1, Phone: phone, IsCreator: true},
			Tokens: &domain.TokenPair{AccessToken: "a", RefreshToken: "r"},
		}, nil
	}
	r := newAuthRouter(svc, nil)

	w := doJSON(t, r, http.MethodPost, "/auth/admin/login", LoginRequest{Phone: "991234567", Password: "rootpass"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, findCookie(w, UserRefreshCookie))
	require.NotNil(t, findCookie(w, AdminRefreshCookie))
	admin := decodeBody(t, w)["data"].(map[string]interface{})["admin"].(map[string]interface{})
	assert.Equal(t, true, admin["is_creator"])

	w = doJSON(t, r, http.MethodPost, "/auth/admin/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cleared := findCookie(w, AdminRefreshCookie)
	require.NotNil(t, cleared)
	assert.Negative(t, cleared.MaxAge)

	w = doJSON(t, r, http.MethodPost, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, findCookie(w, UserRefreshCookie))
}

func TestAuthHandlers_SendOTP(t *testing.T) {
	svc := mocks.NewMockAuthService()
	svc.SendOTPFunc = func(ctx context.Context, phone string) (*domain.Registration, error) {
		return nil, fmt.Errorf("%w: retry in 42 seconds", domain.ErrOTPResendThrottled)
	}

	w := doJSON(t, newAuthRouter(svc, nil), http.MethodPost, "/auth/send-otp", PhoneRequest{Phone: "901234567"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "retry in 42 seconds")
}

func TestAuthHandlers_Me(t *testing.T) {
	svc := mocks.NewMockAuthService()
	svc.GetUserProfileFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		return &domain.User{ID: id, Name: "Ali", Phone: "901234567", IsActive: true}, nil
	}
	svc.GetAdminProfileFunc = func(ctx context.Context, id uint) (*domain.Admin, error) {
		return &domain.Admin{ID: id, Name: "Creator", Phone: "991234567", IsCreator: true}, nil
	}

	tests := []struct {
		name           string
		identity       *domain.Identity
		expectedStatus int
		wantName       string
	}{
		{
			name:           "user",
			identity:       &domain.Identity{ID: 4, Actor: domain.ActorUser, Role: domain.RoleUser, IsActive: true},
			expectedStatus: http.StatusOK,
			wantName:       "Ali",
		},
		{
			name:           "creator",
			identity:       &domain.Identity{ID: 1, Actor: domain.ActorAdmin, Role: domain.RoleSuperAdmin, IsCreator: true},
			expectedStatus: http.StatusOK,
			wantName:       "Creator",
		},
		{name: "no identity", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, newAuthRouter(svc, tt.identity), http.MethodGet, "/auth/me", nil)
			require.Equal(t, tt.expectedStatus, w.Code)
			if tt.wantName == "" {
				return
			}
			data := decodeBody(t, w)["data"].(map[string]interface{})
			assert.Equal(t, tt.wantName, data["profile"].(map[string]interface{})["name"])
			assert.Equal(t, string(tt.identity.Role), data["identity"].(map[string]interface{})["role"])
		})
	}
}
