package domain

import "time"

// ActorKind identifies which family of signing secrets applies to a session
type ActorKind string

const (
	ActorUser  ActorKind = "user"
	ActorAdmin ActorKind = "admin"
)

// TokenKind distinguishes short-lived access tokens from refresh tokens
type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

// Role is an authorization role attached to a resolved identity or required by a route
type Role string

const (
	RoleUser       Role = "USER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPERADMIN"
	RolePublic     Role = "PUBLIC"
)

// ParseRole converts a stored policy subject back into a Role
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleUser, RoleAdmin, RoleSuperAdmin, RolePublic:
		return r, true
	}
	return "", false
}

// User represents a marketplace end-user account
type User struct {
	ID           uint
	Name         string
	Surname      string
	Phone        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Admin represents an administrator. Creators are super administrators.
type Admin struct {
	ID           uint
	Name         string
	Surname      string
	Phone        string
	PasswordHash string
	IsCreator    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OTP is a one-time activation code, addressed by clients through UUID only
type OTP struct {
	ID        uint
	UserID    uint
	Code      string
	UUID      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the code can no longer be used at now
func (o *OTP) Expired(now time.Time) bool {
	return o.ExpiresAt.Before(now)
}

// Block suspends authentication for a user until ExpiresAt
type Block struct {
	ID        uint
	UserID    uint
	AdminID   uint
	Reason    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Active reports whether the block still denies authentication at now
func (b *Block) Active(now time.Time) bool {
	return b.ExpiresAt.After(now)
}

// Claims is the payload carried by session tokens.
// IsActive is meaningful for users, IsCreator for admins.
type Claims struct {
	ID        uint
	Phone     string
	IsActive  bool
	IsCreator bool
	Actor     ActorKind
	IssuedAt  int64
	ExpiresAt int64
}

// UserClaims builds the token payload for a user account
func UserClaims(u *User) Claims {
	return Claims{ID: u.ID, Phone: u.Phone, IsActive: u.IsActive, Actor: ActorUser}
}

// AdminClaims builds the token payload for an admin account
func AdminClaims(a *Admin) Claims {
	return Claims{ID: a.ID, Phone: a.Phone, IsCreator: a.IsCreator, Actor: ActorAdmin}
}

// TokenPair is the result of issuing a session
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// Identity is the minimal request context synthesized by the session gate
type Identity struct {
	ID        uint
	Phone     string
	Actor     ActorKind
	Role      Role
	IsActive  bool
	IsCreator bool
}

// Holds reports whether the identity satisfies a single required role.
// Creators hold SUPERADMIN and ADMIN; plain admins hold ADMIN only.
func (i *Identity) Holds(role Role) bool {
	switch role {
	case RoleSuperAdmin:
		return i.Actor == ActorAdmin && i.IsCreator
	case RoleAdmin:
		return i.Actor == ActorAdmin
	case RoleUser:
		return i.Actor == ActorUser
	}
	return false
}

// AuthResult represents authentication outcome
type AuthResult struct {
	Actor  ActorKind
	User   *User
	Admin  *Admin
	Tokens *TokenPair
}

// Registration is returned when an OTP has been issued; it never contains the code
type Registration struct {
	UUID      string
	ExpiresAt time.Time
	Phone     string
}
