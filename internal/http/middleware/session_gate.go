package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
	"github.com/Abdulaziz20007/Phono-Backend/internal/metrics"
)

// IdentityKey is the gin context key holding the resolved *domain.Identity
const IdentityKey = "identity"

// CurrentIdentity returns the identity attached by the session gate, if any
func CurrentIdentity(c *gin.Context) (*domain.Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*domain.Identity)
	return identity, ok && identity != nil
}

// SessionGate resolves the bearer token of every request and checks it
// against the roles declared for the matched route
type SessionGate struct {
	policy   domain.PolicyService
	resolver domain.IdentityResolver
	audit    domain.AuditLogger
	metrics  *metrics.Metrics
	log      *zap.Logger
}

// NewSessionGate creates the gate middleware
func NewSessionGate(policy domain.PolicyService, resolver domain.IdentityResolver, audit domain.AuditLogger, m *metrics.Metrics, log *zap.Logger) *SessionGate {
	return &SessionGate{
		policy:   policy,
		resolver: resolver,
		audit:    audit,
		metrics:  m,
		log:      log.Named("gate"),
	}
}

// Enforce returns the gin handler. Routes that admit anonymous callers never
// look at the Authorization header.
func (g *SessionGate) Enforce() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			// unmatched, let gin answer 404
			c.Next()
			return
		}
		method := c.Request.Method

		required, err := g.policy.Required(method, route)
		if err != nil {
			g.log.Error("policy lookup failed", zap.String("route", route), zap.Error(err))
			g.decide("error")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
			return
		}

		if g.policy.Allows(required, nil) {
			g.decide("public")
			c.Next()
			return
		}

		token, ok := bearerToken(c)
		if !ok {
			g.decide("unauthenticated")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		identity, err := g.resolver.Resolve(token)
		if err != nil {
			g.decide("unauthenticated")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthenticated.Error()})
			return
		}

		if !g.policy.Allows(required, identity) {
			g.decide("forbidden")
			g.audit.LogEvent(c.Request.Context(), domain.NewAuditEvent(domain.AccessDeniedEvent, identity.Actor, identity.ID).
				WithPhone(identity.Phone).
				WithMetadata("route", route).
				WithMetadata("method", method).
				WithMetadata("role", string(identity.Role)).
				WithError(domain.ErrForbidden))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": domain.ErrForbidden.Error()})
			return
		}

		g.decide("allowed")
		c.Set(IdentityKey, identity)
		c.Next()
	}
}

func (g *SessionGate) decide(decision string) {
	g.metrics.GateDecisions.WithLabelValues(decision).Inc()
}

// bearerToken extracts the token from "Authorization: Bearer <token>"
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
