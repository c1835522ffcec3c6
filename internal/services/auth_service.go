package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
	"github.com/Abdulaziz20007/Phono-Backend/internal/metrics"
)

// MinPasswordLength is the shortest password accepted after trimming
const MinPasswordLength = 6

// AuthConfig holds the registration policy switches
type AuthConfig struct {
	// ReplacePending lets a new registration take over a phone whose account
	// was never activated
	ReplacePending bool
}

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	adminRepo   domain.AdminRepository
	blockRepo   domain.BlockRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	otpSvc      domain.OTPService
	audit       domain.AuditLogger
	metrics     *metrics.Metrics
	config      AuthConfig
	now         func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	adminRepo domain.AdminRepository,
	blockRepo domain.BlockRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
	audit domain.AuditLogger,
	m *metrics.Metrics,
	config AuthConfig,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		adminRepo:   adminRepo,
		blockRepo:   blockRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		otpSvc:      otpSvc,
		audit:       audit,
		metrics:     m,
		config:      config,
		now:         time.Now,
	}
}

// Register implements domain.AuthService
func (s *AuthServiceImpl) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Registration, error) {
	if !domain.ValidPhone(req.Phone) {
		return nil, domain.ErrInvalidPhone
	}
	password := strings.TrimSpace(req.Password)
	if len(password) < MinPasswordLength {
		return nil, domain.ErrWeakPassword
	}

	existing, err := s.userRepo.FindByPhone(ctx, req.Phone)
	switch {
	case err == nil:
		if existing.IsActive || !s.config.ReplacePending {
			return nil, domain.ErrDuplicatePhone
		}
		if err := s.replacePending(ctx, existing); err != nil {
			return nil, err
		}
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("failed to look up phone: %w", err)
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(req.Name),
		Surname:      strings.TrimSpace(req.Surname),
		Phone:        req.Phone,
		PasswordHash: hashedPassword,
		IsActive:     false,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicatePhone) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserRegisteredEvent, domain.ActorUser, user.ID).WithPhone(user.Phone))

	otp, err := s.otpSvc.Issue(ctx, user)
	if err != nil {
		return nil, err
	}
	s.metrics.OTPsIssued.Inc()

	return &domain.Registration{UUID: otp.UUID, ExpiresAt: otp.ExpiresAt, Phone: user.Phone}, nil
}

func (s *AuthServiceImpl) replacePending(ctx context.Context, pending *domain.User) error {
	if err := s.otpSvc.Revoke(ctx, pending.ID); err != nil {
		return fmt.Errorf("failed to drop pending OTP: %w", err)
	}
	if err := s.userRepo.Delete(ctx, pending.ID); err != nil {
		return fmt.Errorf("failed to drop pending account: %w", err)
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.PendingAccountReplacedEvent, domain.ActorUser, pending.ID).WithPhone(pending.Phone))
	return nil
}

// SendOTP implements domain.AuthService
func (s *AuthServiceImpl) SendOTP(ctx context.Context, phone string) (*domain.Registration, error) {
	if !domain.ValidPhone(phone) {
		return nil, domain.ErrInvalidPhone
	}

	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to look up phone: %w", err)
	}
	if user.IsActive {
		return nil, domain.ErrAlreadyActivated
	}

	ok, wait, err := s.otpSvc.CanResend(ctx, phone)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: retry in %d seconds", domain.ErrOTPResendThrottled, wait)
	}

	otp, err := s.otpSvc.Issue(ctx, user)
	if err != nil {
		return nil, err
	}
	s.metrics.OTPsIssued.Inc()
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.OTPRequestedEvent, domain.ActorUser, user.ID).WithPhone(phone))

	return &domain.Registration{UUID: otp.UUID, ExpiresAt: otp.ExpiresAt, Phone: phone}, nil
}

// VerifyOTP implements domain.AuthService
func (s *AuthServiceImpl) VerifyOTP(ctx context.Context, phone, code, otpUUID string) (*domain.AuthResult, error) {
	result, err := s.verifyOTP(ctx, phone, code, otpUUID)
	s.metrics.AuthAttempts.WithLabelValues(string(domain.ActorUser), "verify_otp", metrics.Outcome(err)).Inc()
	if err != nil {
		s.metrics.OTPFailures.WithLabelValues(otpFailureReason(err)).Inc()
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.OTPVerifyFailureEvent, domain.ActorUser, 0).WithPhone(phone).WithError(err))
		return nil, err
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.AccountActivatedEvent, domain.ActorUser, result.User.ID).WithPhone(phone))
	return result, nil
}

func (s *AuthServiceImpl) verifyOTP(ctx context.Context, phone, code, otpUUID string) (*domain.AuthResult, error) {
	if !domain.ValidPhone(phone) {
		return nil, domain.ErrInvalidPhone
	}

	otp, err := s.otpSvc.Check(ctx, otpUUID, code)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrPhoneMismatch
		}
		return nil, fmt.Errorf("failed to look up phone: %w", err)
	}
	if user.ID != otp.UserID {
		return nil, domain.ErrPhoneMismatch
	}

	if user.IsActive {
		if err := s.otpSvc.Consume(ctx, otp); err != nil {
			return nil, err
		}
		return nil, domain.ErrAlreadyActive
	}

	// An active account never holds a live code
	if err := s.otpSvc.Consume(ctx, otp); err != nil {
		return nil, err
	}
	if err := s.userRepo.Activate(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to activate user: %w", err)
	}
	user.IsActive = true

	return s.userSession(user)
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, phone, password string) (*domain.AuthResult, error) {
	result, err := s.login(ctx, phone, password)
	s.metrics.AuthAttempts.WithLabelValues(string(domain.ActorUser), "login", metrics.Outcome(err)).Inc()
	if err != nil {
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, domain.ActorUser, 0).WithPhone(phone).WithError(err))
		return nil, err
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginEvent, domain.ActorUser, result.User.ID).WithPhone(phone))
	return result, nil
}

func (s *AuthServiceImpl) login(ctx context.Context, phone, password string) (*domain.AuthResult, error) {
	if !domain.ValidPhone(phone) {
		return nil, domain.ErrInvalidPhone
	}

	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up phone: %w", err)
	}

	blocked, err := s.blockRepo.HasActive(ctx, user.ID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to check blocks: %w", err)
	}
	if blocked {
		return nil, domain.ErrAccountBlocked
	}

	if !user.IsActive {
		return nil, domain.ErrAccountInactive
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.userSession(user)
}

// Refresh implements domain.AuthService. Both tokens are rotated.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	result, err := s.refresh(ctx, refreshToken)
	s.recordRefresh(ctx, domain.ActorUser, result, err)
	return result, err
}

func (s *AuthServiceImpl) refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	claims, err := s.tokenSvc.Verify(refreshToken, domain.ActorUser, domain.RefreshToken)
	if err != nil {
		return nil, domain.ErrInvalidRefreshToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	blocked, err := s.blockRepo.HasActive(ctx, user.ID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to check blocks: %w", err)
	}
	if blocked || !user.IsActive {
		return nil, domain.ErrInvalidRefreshToken
	}

	return s.userSession(user)
}

// AdminLogin implements domain.AuthService
func (s *AuthServiceImpl) AdminLogin(ctx context.Context, phone, password string) (*domain.AuthResult, error) {
	result, err := s.adminLogin(ctx, phone, password)
	s.metrics.AuthAttempts.WithLabelValues(string(domain.ActorAdmin), "login", metrics.Outcome(err)).Inc()
	if err != nil {
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.AdminLoginFailureEvent, domain.ActorAdmin, 0).WithPhone(phone).WithError(err))
		return nil, err
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.AdminLoginEvent, domain.ActorAdmin, result.Admin.ID).WithPhone(phone))
	return result, nil
}

func (s *AuthServiceImpl) adminLogin(ctx context.Context, phone, password string) (*domain.AuthResult, error) {
	if !domain.ValidPhone(phone) {
		return nil, domain.ErrInvalidPhone
	}

	admin, err := s.adminRepo.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up phone: %w", err)
	}

	if !s.passwordSvc.Verify(admin.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.adminSession(admin)
}

// AdminRefresh implements domain.AuthService
func (s *AuthServiceImpl) AdminRefresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	result, err := s.adminRefresh(ctx, refreshToken)
	s.recordRefresh(ctx, domain.ActorAdmin, result, err)
	return result, err
}

func (s *AuthServiceImpl) adminRefresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	claims, err := s.tokenSvc.Verify(refreshToken, domain.ActorAdmin, domain.RefreshToken)
	if err != nil {
		return nil, domain.ErrInvalidRefreshToken
	}

	admin, err := s.adminRepo.FindByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return nil, domain.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to load admin: %w", err)
	}

	return s.adminSession(admin)
}

func (s *AuthServiceImpl) recordRefresh(ctx context.Context, actor domain.ActorKind, result *domain.AuthResult, err error) {
	s.metrics.AuthAttempts.WithLabelValues(string(actor), "refresh", metrics.Outcome(err)).Inc()
	if err != nil {
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.TokenRefreshFailedEvent, actor, 0).WithError(err))
		return
	}
	var id uint
	if result.User != nil {
		id = result.User.ID
	} else if result.Admin != nil {
		id = result.Admin.ID
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.TokenRefreshedEvent, actor, id))
}

// GetUserProfile implements domain.AuthService
func (s *AuthServiceImpl) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// GetAdminProfile implements domain.AuthService
func (s *AuthServiceImpl) GetAdminProfile(ctx context.Context, adminID uint) (*domain.Admin, error) {
	return s.adminRepo.FindByID(ctx, adminID)
}

func (s *AuthServiceImpl) userSession(user *domain.User) (*domain.AuthResult, error) {
	tokens, err := s.tokenSvc.Issue(domain.ActorUser, domain.UserClaims(user))
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}
	return &domain.AuthResult{Actor: domain.ActorUser, User: user, Tokens: tokens}, nil
}

func (s *AuthServiceImpl) adminSession(admin *domain.Admin) (*domain.AuthResult, error) {
	tokens, err := s.tokenSvc.Issue(domain.ActorAdmin, domain.AdminClaims(admin))
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}
	return &domain.AuthResult{Actor: domain.ActorAdmin, Admin: admin, Tokens: tokens}, nil
}

func otpFailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrOTPNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrOTPExpired):
		return "expired"
	case errors.Is(err, domain.ErrOTPMaxAttempts):
		return "max_attempts"
	case errors.Is(err, domain.ErrOTPMismatch):
		return "mismatch"
	case errors.Is(err, domain.ErrPhoneMismatch):
		return "phone_mismatch"
	case errors.Is(err, domain.ErrAlreadyActive):
		return "already_active"
	case errors.Is(err, domain.ErrInvalidPhone):
		return "invalid_phone"
	}
	return "internal"
}

var _ domain.AuthService = (*AuthServiceImpl)(nil)
