package services

import (
	"github.com/Abdulaziz20007/Phono-Backend/domain"
)

// ActorStrategy pairs an actor kind with the mapping from its verified claims
// to a request identity
type ActorStrategy struct {
	Actor    domain.ActorKind
	Identity func(*domain.Claims) *domain.Identity
}

// DefaultStrategies tries the user access secret first, then the admin one
func DefaultStrategies() []ActorStrategy {
	return []ActorStrategy{
		{Actor: domain.ActorUser, Identity: userIdentity},
		{Actor: domain.ActorAdmin, Identity: adminIdentity},
	}
}

func userIdentity(c *domain.Claims) *domain.Identity {
	return &domain.Identity{
		ID:       c.ID,
		Phone:    c.Phone,
		Actor:    domain.ActorUser,
		Role:     domain.RoleUser,
		IsActive: c.IsActive,
	}
}

func adminIdentity(c *domain.Claims) *domain.Identity {
	role := domain.RoleAdmin
	if c.IsCreator {
		role = domain.RoleSuperAdmin
	}
	return &domain.Identity{
		ID:        c.ID,
		Phone:     c.Phone,
		Actor:     domain.ActorAdmin,
		Role:      role,
		IsActive:  true,
		IsCreator: c.IsCreator,
	}
}

// SessionResolver implements domain.IdentityResolver by trying each strategy's
// access secret in order
type SessionResolver struct {
	tokenSvc   domain.TokenService
	strategies []ActorStrategy
}

// NewSessionResolver creates a resolver; nil strategies means DefaultStrategies
func NewSessionResolver(tokenSvc domain.TokenService, strategies []ActorStrategy) *SessionResolver {
	if strategies == nil {
		strategies = DefaultStrategies()
	}
	return &SessionResolver{tokenSvc: tokenSvc, strategies: strategies}
}

// Resolve implements domain.IdentityResolver. The first strategy whose secret
// verifies the token wins; otherwise ErrUnauthenticated.
func (r *SessionResolver) Resolve(token string) (*domain.Identity, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}
	for _, s := range r.strategies {
		claims, err := r.tokenSvc.Verify(token, s.Actor, domain.AccessToken)
		if err != nil {
			continue
		}
		return s.Identity(claims), nil
	}
	return nil, domain.ErrUnauthenticated
}

var _ domain.IdentityResolver = (*SessionResolver)(nil)
