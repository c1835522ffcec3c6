package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
)

// OTPServiceImpl implements domain.OTPService. Codes live in the database;
// Redis carries the per-code attempt counter and the per-phone resend throttle.
type OTPServiceImpl struct {
	otpRepo         domain.OTPRepository
	notificationSvc domain.NotificationService
	redisClient     *redis.Client
	config          OTPConfig
	log             *zap.Logger
	now             func() time.Time
}

type OTPConfig struct {
	Length       int
	TTL          time.Duration
	MaxAttempts  int
	ResendWindow time.Duration
}

// NewOTPService creates a new OTP service
func NewOTPService(otpRepo domain.OTPRepository, notificationSvc domain.NotificationService, redisClient *redis.Client, config OTPConfig, log *zap.Logger) *OTPServiceImpl {
	return &OTPServiceImpl{
		otpRepo:         otpRepo,
		notificationSvc: notificationSvc,
		redisClient:     redisClient,
		config:          config,
		log:             log.Named("otp"),
		now:             time.Now,
	}
}

func attemptsKey(otpUUID string) string { return "otp:att:" + otpUUID }
func resendKey(phone string) string     { return "otp:res:" + phone }

// Issue implements domain.OTPService. Any code the user already holds is
// replaced; a concurrent issue for the same user fails with ErrConflictingOTPRequest.
func (s *OTPServiceImpl) Issue(ctx context.Context, user *domain.User) (*domain.OTP, error) {
	if err := s.otpRepo.DeleteByUserID(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to delete previous OTP: %w", err)
	}

	code, err := s.generateSecureCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	otp := &domain.OTP{
		UserID:    user.ID,
		Code:      code,
		UUID:      uuid.NewString(),
		ExpiresAt: s.now().Add(s.config.TTL),
	}
	if err := s.otpRepo.Create(ctx, otp); err != nil {
		if errors.Is(err, domain.ErrConflictingOTPRequest) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to store OTP: %w", err)
	}

	if err := s.redisClient.Set(ctx, resendKey(user.Phone), 1, s.config.ResendWindow).Err(); err != nil {
		s.discard(ctx, otp)
		return nil, fmt.Errorf("failed to set resend throttle: %w", err)
	}

	message := fmt.Sprintf("Phono: your activation code is %s. It is valid for %d minutes.", code, int(s.config.TTL.Minutes()))
	if err := s.notificationSvc.SendSMS(ctx, user.Phone, message); err != nil {
		// Clean up so the user can ask again right away
		s.discard(ctx, otp)
		if derr := s.redisClient.Del(ctx, resendKey(user.Phone)).Err(); derr != nil {
			s.log.Warn("failed to clear resend throttle", zap.Uint("user_id", user.ID), zap.Error(derr))
		}
		return nil, fmt.Errorf("failed to send OTP SMS: %w", err)
	}

	return otp, nil
}

// discard drops a code whose issue failed half way
func (s *OTPServiceImpl) discard(ctx context.Context, otp *domain.OTP) {
	if err := s.otpRepo.Delete(ctx, otp.ID); err != nil {
		s.log.Warn("failed to clean up OTP", zap.Uint("user_id", otp.UserID), zap.String("uuid", otp.UUID), zap.Error(err))
	}
}

// Check implements domain.OTPService. It does not consume the code.
func (s *OTPServiceImpl) Check(ctx context.Context, otpUUID, code string) (*domain.OTP, error) {
	otp, err := s.otpRepo.FindByUUID(ctx, otpUUID)
	if err != nil {
		return nil, err
	}

	if otp.Expired(s.now()) {
		if err := s.Consume(ctx, otp); err != nil {
			return nil, err
		}
		return nil, domain.ErrOTPExpired
	}

	attempts, err := s.redisClient.Incr(ctx, attemptsKey(otp.UUID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to increment attempts: %w", err)
	}
	if attempts == 1 {
		s.redisClient.ExpireAt(ctx, attemptsKey(otp.UUID), otp.ExpiresAt)
	}
	if attempts > int64(s.config.MaxAttempts) {
		if err := s.Consume(ctx, otp); err != nil {
			return nil, err
		}
		return nil, domain.ErrOTPMaxAttempts
	}

	if subtle.ConstantTimeCompare([]byte(otp.Code), []byte(code)) != 1 {
		return nil, domain.ErrOTPMismatch
	}

	return otp, nil
}

// Consume implements domain.OTPService
func (s *OTPServiceImpl) Consume(ctx context.Context, otp *domain.OTP) error {
	if err := s.otpRepo.Delete(ctx, otp.ID); err != nil {
		return fmt.Errorf("failed to delete OTP: %w", err)
	}
	s.redisClient.Del(ctx, attemptsKey(otp.UUID))
	return nil
}

// Revoke implements domain.OTPService. It drops whatever code the user holds.
func (s *OTPServiceImpl) Revoke(ctx context.Context, userID uint) error {
	otp, err := s.otpRepo.FindByUserID(ctx, userID)
	if errors.Is(err, domain.ErrOTPNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up OTP: %w", err)
	}
	return s.Consume(ctx, otp)
}

// CanResend implements domain.OTPService with Redis-based throttling
func (s *OTPServiceImpl) CanResend(ctx context.Context, phone string) (bool, int64, error) {
	ttl, err := s.redisClient.TTL(ctx, resendKey(phone)).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check resend TTL: %w", err)
	}

	// If TTL <= 0, key doesn't exist or has expired - can resend
	if ttl <= 0 {
		return true, 0, nil
	}

	return false, int64(ttl.Seconds()), nil
}

// generateSecureCode generates a cryptographically secure OTP code without a leading zero
func (s *OTPServiceImpl) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.Length)

	for i := 0; i < s.config.Length; i++ {
		n, offset := int64(10), int64(0)
		if i == 0 {
			n, offset = 9, 1
		}
		num, err := rand.Int(rand.Reader, big.NewInt(n))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64() + offset)
	}

	return string(digits), nil
}

var _ domain.OTPService = (*OTPServiceImpl)(nil)
