package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
	"github.com/Abdulaziz20007/Phono-Backend/internal/infrastructure/auth"
	"github.com/Abdulaziz20007/Phono-Backend/internal/infrastructure/repositories"
	"github.com/Abdulaziz20007/Phono-Backend/internal/metrics"
	"github.com/Abdulaziz20007/Phono-Backend/internal/mocks"
)

// createTestOTPConfig creates a test OTP configuration
func createTestOTPConfig(t *testing.T) OTPConfig {
	t.Helper()

	return OTPConfig{
		Length:       6,
		TTL:          5 * time.Minute,
		MaxAttempts:  3,
		ResendWindow: 60 * time.Second,
	}
}

// setupTestRedis starts a miniredis server that lives for the test
func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

// setupTestDB creates an in-memory SQLite database with the account tables
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(repositories.Models()...); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

// testEnv wires the real services over SQLite, miniredis and the JWT issuer.
// Only SMS delivery is mocked.
type testEnv struct {
	db        *gorm.DB
	mr        *miniredis.Miniredis
	users     domain.UserRepository
	admins    domain.AdminRepository
	blocks    domain.BlockRepository
	otps      domain.OTPRepository
	sms       *mocks.MockNotificationService
	audit     *mocks.RecordingAuditLogger
	tokens    *auth.JWTServiceImpl
	passwords domain.PasswordService
	otp       *OTPServiceImpl
	auth      *AuthServiceImpl
}

func newTestEnv(t *testing.T, cfg AuthConfig) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	mr, rdb := setupTestRedis(t)

	tokens, err := auth.NewJWTService(auth.Secrets{
		UserAccess:   "ua-secret",
		UserRefresh:  "ur-secret",
		AdminAccess:  "aa-secret",
		AdminRefresh: "ar-secret",
	}, "phono-test", 15*time.Minute, 240*time.Hour)
	if err != nil {
		t.Fatalf("failed to build token service: %v", err)
	}

	env := &testEnv{
		db:        db,
		mr:        mr,
		users:     repositories.NewUserRepository(db),
		admins:    repositories.NewAdminRepository(db),
		blocks:    repositories.NewBlockRepository(db),
		otps:      repositories.NewOTPRepository(db),
		sms:       mocks.NewMockNotificationService(),
		audit:     &mocks.RecordingAuditLogger{},
		tokens:    tokens,
		passwords: auth.NewPasswordService(bcrypt.MinCost),
	}
	env.otp = NewOTPService(env.otps, env.sms, rdb, createTestOTPConfig(t), nopLogger())
	env.auth = NewAuthService(env.users, env.admins, env.blocks, env.passwords, env.tokens, env.otp, env.audit, metrics.New(), cfg)
	return env
}

var smsCode = regexp.MustCompile(`\b(\d{6})\b`)

// lastCode extracts the code from the most recent SMS
func (e *testEnv) lastCode(t *testing.T) string {
	t.Helper()
	m := smsCode.FindStringSubmatch(e.sms.Last().Message)
	if m == nil {
		t.Fatalf("no code in sms %q", e.sms.Last().Message)
	}
	return m[1]
}

// createTestContext creates a context for testing with timeout
func createTestContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// createActiveUser creates an active user entity for testing
func createActiveUser(t *testing.T) *domain.User {
	t.Helper()

	return &domain.User{
		ID:           1,
		Name:         "Ali",
		Surname:      "Valiyev",
		Phone:        "901234567",
		PasswordHash: "hashed_secret1",
		IsActive:     true,
		CreatedAt:    time.Now().Add(-24 * time.Hour),
		UpdatedAt:    time.Now().Add(-1 * time.Hour),
	}
}

// createPendingUser creates a user that never activated
func createPendingUser(t *testing.T) *domain.User {
	t.Helper()

	user := createActiveUser(t)
	user.IsActive = false
	return user
}

// mockDeps bundles the mocks used by the table tests
type mockDeps struct {
	users     *mocks.MockUserRepository
	admins    *mocks.MockAdminRepository
	blocks    *mocks.MockBlockRepository
	passwords *mocks.MockPasswordService
	tokens    *mocks.MockTokenService
	otp       *mocks.MockOTPService
	audit     *mocks.RecordingAuditLogger
}

func newMockDeps() *mockDeps {
	return &mockDeps{
		users:     mocks.NewMockUserRepository(),
		admins:    mocks.NewMockAdminRepository(),
		blocks:    mocks.NewMockBlockRepository(),
		passwords: mocks.NewMockPasswordService(),
		tokens:    mocks.NewMockTokenService(),
		otp:       mocks.NewMockOTPService(),
		audit:     &mocks.RecordingAuditLogger{},
	}
}

// createAuthServiceForTest creates an AuthService with mock dependencies for testing
func createAuthServiceForTest(t *testing.T, d *mockDeps, cfg AuthConfig) *AuthServiceImpl {
	t.Helper()
	return NewAuthService(d.users, d.admins, d.blocks, d.passwords, d.tokens, d.otp, d.audit, metrics.New(), cfg)
}

func nopLogger() *zap.Logger { return zap.NewNop() }
