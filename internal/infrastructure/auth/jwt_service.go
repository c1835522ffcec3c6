package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
)

// Secrets holds one signing key per (actor, token kind) pair
type Secrets struct {
	UserAccess   string
	UserRefresh  string
	AdminAccess  string
	AdminRefresh string
}

type secretKey struct {
	actor domain.ActorKind
	kind  domain.TokenKind
}

// JWTServiceImpl implements domain.TokenService
type JWTServiceImpl struct {
	keys            map[secretKey][]byte
	issuer          string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	now             func() time.Time
}

// sessionClaims is the wire form of domain.Claims. Users carry is_active,
// admins carry is_creator.
type sessionClaims struct {
	ID        uint   `json:"id"`
	Phone     string `json:"phone"`
	IsActive  *bool  `json:"is_active,omitempty"`
	IsCreator *bool  `json:"is_creator,omitempty"`
	jwt.RegisteredClaims
}

// NewJWTService creates a new JWT service. All four secrets must be set and distinct.
func NewJWTService(secrets Secrets, issuer string, accessTTL, refreshTTL time.Duration) (*JWTServiceImpl, error) {
	keys := map[secretKey][]byte{
		{domain.ActorUser, domain.AccessToken}:   []byte(secrets.UserAccess),
		{domain.ActorUser, domain.RefreshToken}:  []byte(secrets.UserRefresh),
		{domain.ActorAdmin, domain.AccessToken}:  []byte(secrets.AdminAccess),
		{domain.ActorAdmin, domain.RefreshToken}: []byte(secrets.AdminRefresh),
	}

	seen := make(map[string]secretKey, len(keys))
	for k, v := range keys {
		if len(v) == 0 {
			return nil, fmt.Errorf("%s %s secret is empty", k.actor, k.kind)
		}
		if other, dup := seen[string(v)]; dup {
			return nil, fmt.Errorf("%s %s secret duplicates %s %s secret", k.actor, k.kind, other.actor, other.kind)
		}
		seen[string(v)] = k
	}

	return &JWTServiceImpl{
		keys:            keys,
		issuer:          issuer,
		accessTokenTTL:  accessTTL,
		refreshTokenTTL: refreshTTL,
		now:             time.Now,
	}, nil
}

// Issue implements domain.TokenService
func (j *JWTServiceImpl) Issue(actor domain.ActorKind, claims domain.Claims) (*domain.TokenPair, error) {
	now := j.now()

	access, accessExp, err := j.sign(actor, domain.AccessToken, claims, now, j.accessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, refreshExp, err := j.sign(actor, domain.RefreshToken, claims, now, j.refreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func (j *JWTServiceImpl) sign(actor domain.ActorKind, kind domain.TokenKind, c domain.Claims, now time.Time, ttl time.Duration) (string, time.Time, error) {
	key, ok := j.keys[secretKey{actor, kind}]
	if !ok {
		return "", time.Time{}, fmt.Errorf("unknown actor kind %q", actor)
	}

	exp := now.Add(ttl)
	sc := sessionClaims{
		ID:    c.ID,
		Phone: c.Phone,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}
	switch actor {
	case domain.ActorUser:
		sc.IsActive = &c.IsActive
	case domain.ActorAdmin:
		sc.IsCreator = &c.IsCreator
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sc)
	signed, err := token.SignedString(key)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify implements domain.TokenService. A token signed with any other secret,
// including another actor's, yields ErrTokenInvalid.
func (j *JWTServiceImpl) Verify(tokenString string, actor domain.ActorKind, kind domain.TokenKind) (*domain.Claims, error) {
	key, ok := j.keys[secretKey{actor, kind}]
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	var sc sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &sc, func(*jwt.Token) (interface{}, error) {
		return key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims := &domain.Claims{
		ID:        sc.ID,
		Phone:     sc.Phone,
		Actor:     actor,
		ExpiresAt: sc.ExpiresAt.Unix(),
	}
	if sc.IssuedAt != nil {
		claims.IssuedAt = sc.IssuedAt.Unix()
	}

	// The actor-specific flag must be present; its absence means the payload
	// was minted for the other actor kind.
	switch actor {
	case domain.ActorUser:
		if sc.IsActive == nil {
			return nil, domain.ErrTokenInvalid
		}
		claims.IsActive = *sc.IsActive
	case domain.ActorAdmin:
		if sc.IsCreator == nil {
			return nil, domain.ErrTokenInvalid
		}
		claims.IsCreator = *sc.IsCreator
	}

	return claims, nil
}

var _ domain.TokenService = (*JWTServiceImpl)(nil)
