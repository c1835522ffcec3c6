package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
	"github.com/Abdulaziz20007/Phono-Backend/internal/metrics"
	"github.com/Abdulaziz20007/Phono-Backend/internal/mocks"
	"github.com/Abdulaziz20007/Phono-Backend/internal/services"
)

var (
	userIdentity    = &domain.Identity{ID: 10, Phone: "901234567", Actor: domain.ActorUser, Role: domain.RoleUser, IsActive: true}
	adminIdentity   = &domain.Identity{ID: 2, Phone: "991234567", Actor: domain.ActorAdmin, Role: domain.RoleAdmin, IsActive: true}
	creatorIdentity = &domain.Identity{ID: 1, Phone: "981234567", Actor: domain.ActorAdmin, Role: domain.RoleSuperAdmin, IsActive: true, IsCreator: true}
)

type gateFixture struct {
	router  *gin.Engine
	audit   *mocks.RecordingAuditLogger
	metrics *metrics.Metrics
}

func newGateFixture(t *testing.T, rules [][]string) *gateFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	table := mocks.NewMockCasbinEnforcer()
	table.SetPolicies(rules)
	enforcer := mocks.NewMockCasbinEnforcer()
	enforcer.GetFilteredPolicyFunc = func(fieldIndex int, fieldValues ...string) ([][]string, error) {
		if fieldValues[0] == "/broken" {
			return nil, errors.New("adapter closed")
		}
		return table.GetFilteredPolicy(fieldIndex, fieldValues...)
	}
	policy := services.NewPolicyServiceWithEnforcer(enforcer, false, zap.NewNop())

	resolver := mocks.NewMockIdentityResolver()
	resolver.Identities["user-token"] = userIdentity
	resolver.Identities["admin-token"] = adminIdentity
	resolver.Identities["creator-token"] = creatorIdentity

	f := &gateFixture{audit: &mocks.RecordingAuditLogger{}, metrics: metrics.New()}
	gate := NewSessionGate(policy, resolver, f.audit, f.metrics, zap.NewNop())

	r := gin.New()
	r.Use(gate.Enforce())
	echo := func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"data": gin.H{"anonymous": true}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": identity.ID, "role": identity.Role}})
	}
	for _, path := range []string{"/auth/login", "/auth/me", "/admins", "/blocks/:id", "/undeclared", "/broken"} {
		r.GET(path, echo)
	}
	f.router = r
	return f
}

func TestSessionGate_Enforce(t *testing.T) {
	rules := [][]string{
		{"PUBLIC", "/auth/login", "GET"},
		{"USER", "/auth/me", "GET"},
		{"ADMIN", "/auth/me", "GET"},
		{"SUPERADMIN", "/admins", "GET"},
		{"ADMIN", "/blocks/:id", "GET"},
	}

	tests := []struct {
		name           string
		path           string
		header         string
		expectedStatus int
		expectedError  string
		wantRole       domain.Role
		wantDecision   string
	}{
		{name: "public route without token", path: "/auth/login", expectedStatus: http.StatusOK, wantDecision: "public"},
		{name: "public route ignores a bad token", path: "/auth/login", header: "Bearer garbage", expectedStatus: http.StatusOK, wantDecision: "public"},
		{name: "undeclared route is open", path: "/undeclared", expectedStatus: http.StatusOK, wantDecision: "public"},
		{
			name: "missing header", path: "/auth/me",
			expectedStatus: http.StatusUnauthorized, expectedError: "Authorization header required", wantDecision: "unauthenticated",
		},
		{
			name: "wrong scheme", path: "/auth/me", header: "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized, expectedError: "Authorization header required", wantDecision: "unauthenticated",
		},
		{
			name: "unknown token", path: "/auth/me", header: "Bearer forged",
			expectedStatus: http.StatusUnauthorized, expectedError: "unauthenticated", wantDecision: "unauthenticated",
		},
		{name: "user on shared route", path: "/auth/me", header: "Bearer user-token", expectedStatus: http.StatusOK, wantRole: domain.RoleUser, wantDecision: "allowed"},
		{name: "admin on shared route", path: "/auth/me", header: "Bearer admin-token", expectedStatus: http.StatusOK, wantRole: domain.RoleAdmin, wantDecision: "allowed"},
		{
			name: "user on admin route", path: "/blocks/7", header: "Bearer user-token",
			expectedStatus: http.StatusForbidden, expectedError: "insufficient role permissions", wantDecision: "forbidden",
		},
		{
			name: "plain admin on superadmin route", path: "/admins", header: "Bearer admin-token",
			expectedStatus: http.StatusForbidden, expectedError: "insufficient role permissions", wantDecision: "forbidden",
		},
		{name: "creator on superadmin route", path: "/admins", header: "Bearer creator-token", expectedStatus: http.StatusOK, wantRole: domain.RoleSuperAdmin, wantDecision: "allowed"},
		{name: "creator on admin route", path: "/blocks/7", header: "bearer creator-token", expectedStatus: http.StatusOK, wantRole: domain.RoleSuperAdmin, wantDecision: "allowed"},
		{
			name: "policy store failure", path: "/broken", header: "Bearer user-token",
			expectedStatus: http.StatusInternalServerError, expectedError: "Authorization check failed", wantDecision: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newGateFixture(t, rules)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			f.router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.GateDecisions.WithLabelValues(tt.wantDecision)))

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, body["error"])
				return
			}
			data := body["data"].(map[string]interface{})
			if tt.wantRole == "" {
				assert.Equal(t, true, data["anonymous"])
				return
			}
			assert.Equal(t, string(tt.wantRole), data["role"])
		})
	}
}

func TestSessionGate_AuditsDenials(t *testing.T) {
	f := newGateFixture(t, [][]string{{"SUPERADMIN", "/admins", "GET"}})

	req := httptest.NewRequest(http.MethodGet, "/admins", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Len(t, f.audit.Events, 1)
	event := f.audit.Events[0]
	assert.Equal(t, domain.AccessDeniedEvent, event.EventType)
	assert.Equal(t, adminIdentity.ID, event.AccountID)
	assert.Equal(t, "/admins", event.Metadata["route"])
	assert.False(t, event.Success)
}

func TestSessionGate_UnmatchedRoute(t *testing.T) {
	f := newGateFixture(t, nil)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
