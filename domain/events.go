package domain

import (
	"context"
	"time"
)

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Activation events
	UserRegisteredEvent         AuditEventType = "USER_REGISTERED"
	OTPRequestedEvent           AuditEventType = "OTP_REQUESTED"
	OTPVerifyFailureEvent       AuditEventType = "OTP_VERIFICATION_FAILED"
	AccountActivatedEvent       AuditEventType = "ACCOUNT_ACTIVATED"
	PendingAccountReplacedEvent AuditEventType = "PENDING_ACCOUNT_REPLACED"

	// Session events
	UserLoginEvent          AuditEventType = "USER_LOGIN"
	UserLoginFailureEvent   AuditEventType = "USER_LOGIN_FAILED"
	AdminLoginEvent         AuditEventType = "ADMIN_LOGIN"
	AdminLoginFailureEvent  AuditEventType = "ADMIN_LOGIN_FAILED"
	TokenRefreshedEvent     AuditEventType = "TOKEN_REFRESHED"
	TokenRefreshFailedEvent AuditEventType = "TOKEN_REFRESH_FAILED"

	// Administration events
	AdminCreatedEvent AuditEventType = "ADMIN_CREATED"
	BlockCreatedEvent AuditEventType = "BLOCK_CREATED"
	BlockUpdatedEvent AuditEventType = "BLOCK_UPDATED"
	BlockRemovedEvent AuditEventType = "BLOCK_REMOVED"

	// Authorization events
	AccessDeniedEvent AuditEventType = "ACCESS_DENIED"
)

// AuditEvent represents a security relevant event that occurred in the system
type AuditEvent struct {
	EventType AuditEventType         `json:"event_type"`
	Actor     ActorKind              `json:"actor,omitempty"`
	AccountID uint                   `json:"account_id,omitempty"`
	Phone     string                 `json:"phone,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	ErrorMsg  string                 `json:"error_msg,omitempty"`
	Success   bool                   `json:"success"`
}

// AuditLogger records audit events
type AuditLogger interface {
	LogEvent(ctx context.Context, event *AuditEvent)
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType, actor ActorKind, accountID uint) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		Actor:     actor,
		AccountID: accountID,
		Timestamp: time.Now().UTC(),
		Metadata:  make(map[string]interface{}),
		Success:   true,
	}
}

// WithError sets error information on the audit event
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithPhone sets the phone field
func (e *AuditEvent) WithPhone(phone string) *AuditEvent {
	e.Phone = phone
	return e
}

// WithMetadata adds metadata to the event
func (e *AuditEvent) WithMetadata(key string, value interface{}) *AuditEvent {
	e.Metadata[key] = value
	return e
}

// NopAuditLogger discards all events
type NopAuditLogger struct{}

func (NopAuditLogger) LogEvent(context.Context, *AuditEvent) {}
