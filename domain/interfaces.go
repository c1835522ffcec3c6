package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByPhone(ctx context.Context, phone string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Activate(ctx context.Context, userID uint) error
	Delete(ctx context.Context, userID uint) error
}

// AdminRepository defines admin data access operations
type AdminRepository interface {
	Create(ctx context.Context, admin *Admin) error
	FindByPhone(ctx context.Context, phone string) (*Admin, error)
	FindByID(ctx context.Context, id uint) (*Admin, error)
}

// OTPRepository stores one-time codes. Create fails with ErrConflictingOTPRequest
// when the account already owns a code.
type OTPRepository interface {
	Create(ctx context.Context, otp *OTP) error
	FindByUUID(ctx context.Context, uuid string) (*OTP, error)
	FindByUserID(ctx context.Context, userID uint) (*OTP, error)
	Delete(ctx context.Context, id uint) error
	DeleteByUserID(ctx context.Context, userID uint) error
}

// BlockRepository defines block record data access operations
type BlockRepository interface {
	Create(ctx context.Context, block *Block) error
	FindByID(ctx context.Context, id uint) (*Block, error)
	ListByUser(ctx context.Context, userID uint) ([]*Block, error)
	ListByAdmin(ctx context.Context, adminID uint) ([]*Block, error)
	HasActive(ctx context.Context, userID uint, now time.Time) (bool, error)
	Update(ctx context.Context, block *Block) error
	Delete(ctx context.Context, id uint) error
}

// AuthService defines authentication business logic
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*Registration, error)
	SendOTP(ctx context.Context, phone string) (*Registration, error)
	VerifyOTP(ctx context.Context, phone, code, uuid string) (*AuthResult, error)
	Login(ctx context.Context, phone, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	AdminLogin(ctx context.Context, phone, password string) (*AuthResult, error)
	AdminRefresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	GetUserProfile(ctx context.Context, userID uint) (*User, error)
	GetAdminProfile(ctx context.Context, adminID uint) (*Admin, error)
}

// RegisterRequest carries the fields needed to open a pending account
type RegisterRequest struct {
	Phone    string
	Password string
	Name     string
	Surname  string
}

// OTPService defines the OTP lifecycle
type OTPService interface {
	Issue(ctx context.Context, user *User) (*OTP, error)
	Check(ctx context.Context, uuid, code string) (*OTP, error)
	Consume(ctx context.Context, otp *OTP) error
	Revoke(ctx context.Context, userID uint) error
	CanResend(ctx context.Context, phone string) (bool, int64, error)
}

// AdminService defines administrator provisioning
type AdminService interface {
	Create(ctx context.Context, req CreateAdminRequest) (*Admin, error)
	EnsureCreator(ctx context.Context, phone, password string) (*Admin, error)
}

// CreateAdminRequest carries the fields needed to provision an admin
type CreateAdminRequest struct {
	Phone     string
	Password  string
	Name      string
	Surname   string
	IsCreator bool
}

// BlockService defines account suspension management
type BlockService interface {
	Create(ctx context.Context, adminID, userID uint, reason string, expiresAt time.Time) (*Block, error)
	List(ctx context.Context, identity *Identity) ([]*Block, error)
	Get(ctx context.Context, id uint, identity *Identity) (*Block, error)
	Update(ctx context.Context, adminID, id uint, req UpdateBlockRequest) (*Block, error)
	Remove(ctx context.Context, id uint) error
}

// UpdateBlockRequest changes the fields that are set. An expiry at or before
// now ends the block early and keeps the record.
type UpdateBlockRequest struct {
	Reason    *string
	ExpiresAt *time.Time
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService issues and verifies session tokens. Each (actor, kind) pair
// has its own signing secret.
type TokenService interface {
	Issue(actor ActorKind, claims Claims) (*TokenPair, error)
	Verify(token string, actor ActorKind, kind TokenKind) (*Claims, error)
}

// NotificationService delivers codes to account owners
type NotificationService interface {
	SendSMS(ctx context.Context, to, message string) error
}

// PolicyService holds the route to role table and evaluates it
type PolicyService interface {
	Declare(method, path string, roles ...Role) error
	Required(method, path string) ([]Role, error)
	Allows(required []Role, identity *Identity) bool
	AddPolicy(role Role, path, method string) error
	RemovePolicy(role Role, path, method string) error
	GetPolicies() ([][]string, error)
}

// IdentityResolver turns a raw bearer token into an identity
type IdentityResolver interface {
	Resolve(token string) (*Identity, error)
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	GetFilteredPolicy(fieldIndex int, fieldValues ...string) ([][]string, error)
}
