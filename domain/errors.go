package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicatePhone     = errors.New("phone number is already registered")
	ErrAccountBlocked     = errors.New("account is blocked")
	ErrAccountInactive    = errors.New("account is not activated")
	ErrInvalidPhone       = errors.New("invalid phone number")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
)

// OTP errors
var (
	ErrOTPNotFound           = errors.New("otp not found")
	ErrOTPExpired            = errors.New("otp has expired")
	ErrOTPMismatch           = errors.New("otp does not match")
	ErrOTPMaxAttempts        = errors.New("maximum otp attempts exceeded")
	ErrOTPResendThrottled    = errors.New("otp was requested too recently")
	ErrPhoneMismatch         = errors.New("phone number does not match otp owner")
	ErrAlreadyActive         = errors.New("account is already active")
	ErrAlreadyActivated      = errors.New("phone number has already been activated")
	ErrConflictingOTPRequest = errors.New("another otp request is in progress")
)

// Token errors
var (
	ErrTokenInvalid        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token has expired")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// Authorization errors
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("insufficient role permissions")
	ErrLastRoutePolicy = errors.New("cannot remove the last role of a route")
)

// Block errors
var (
	ErrBlockNotFound = errors.New("block not found")
	ErrInvalidBlock  = errors.New("block expiry must be in the future")
)
