package httpx

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
	"github.com/Abdulaziz20007/Phono-Backend/internal/http/handlers"
	"github.com/Abdulaziz20007/Phono-Backend/internal/http/middleware"
	"github.com/Abdulaziz20007/Phono-Backend/internal/logging"
	"github.com/Abdulaziz20007/Phono-Backend/internal/metrics"
)

// Handlers groups the route handlers
type Handlers struct {
	Auth     *handlers.AuthHandlers
	Admins   *handlers.AdminHandlers
	Blocks   *handlers.BlockHandlers
	Policies *handlers.PolicyHandlers
}

// RouterDeps is everything BuildRouter needs
type RouterDeps struct {
	Handlers       Handlers
	Gate           *middleware.SessionGate
	Policy         domain.PolicyService
	Metrics        *metrics.Metrics
	Log            *zap.Logger
	AllowedOrigins []string
}

type route struct {
	method  string
	path    string
	roles   []domain.Role
	handler gin.HandlerFunc
}

var (
	public         = []domain.Role{domain.RolePublic}
	userOrAdmin    = []domain.Role{domain.RoleUser, domain.RoleAdmin}
	adminOnly      = []domain.Role{domain.RoleAdmin}
	superAdminOnly = []domain.Role{domain.RoleSuperAdmin}
)

func routes(h Handlers, m *metrics.Metrics) []route {
	return []route{
		{http.MethodGet, "/health", public, func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }},
		{http.MethodGet, "/metrics", public, gin.WrapH(m.Handler())},

		{http.MethodPost, "/auth/register", public, h.Auth.Register},
		{http.MethodPost, "/auth/send-otp", public, h.Auth.SendOTP},
		{http.MethodPost, "/auth/verify-otp", public, h.Auth.VerifyOTP},
		{http.MethodPost, "/auth/login", public, h.Auth.Login},
		{http.MethodPost, "/auth/refresh-token", public, h.Auth.Refresh},
		{http.MethodPost, "/auth/logout", public, h.Auth.Logout},
		{http.MethodPost, "/auth/admin/login", public, h.Auth.AdminLogin},
		{http.MethodPost, "/auth/admin/refresh-token", public, h.Auth.AdminRefresh},
		{http.MethodPost, "/auth/admin/logout", public, h.Auth.AdminLogout},
		{http.MethodGet, "/auth/me", userOrAdmin, h.Auth.Me},

		{http.MethodPost, "/admins", superAdminOnly, h.Admins.Create},

		{http.MethodPost, "/blocks", adminOnly, h.Blocks.Create},
		{http.MethodGet, "/blocks", userOrAdmin, h.Blocks.List},
		{http.MethodGet, "/blocks/:id", userOrAdmin, h.Blocks.Get},
		{http.MethodPatch, "/blocks/:id", adminOnly, h.Blocks.Update},
		{http.MethodDelete, "/blocks/:id", adminOnly, h.Blocks.Remove},

		{http.MethodGet, "/admin/policies", superAdminOnly, h.Policies.List},
		{http.MethodPost, "/admin/policies", superAdminOnly, h.Policies.Add},
		{http.MethodDelete, "/admin/policies", superAdminOnly, h.Policies.Remove},
	}
}

// BuildRouter registers every route and seeds its role declaration. Routes
// that already have rows in the policy table keep them, so runtime edits
// made through /admin/policies survive a restart.
func BuildRouter(deps RouterDeps) (*gin.Engine, error) {
	if err := handlers.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.RequestLogger(deps.Log))
	r.Use(deps.Metrics.Middleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(deps.Gate.Enforce())

	for _, rt := range routes(deps.Handlers, deps.Metrics) {
		if err := seed(deps.Policy, rt); err != nil {
			return nil, err
		}
		r.Handle(rt.method, rt.path, rt.handler)
	}

	return r, nil
}

func seed(policy domain.PolicyService, rt route) error {
	existing, err := policy.Required(rt.method, rt.path)
	if err != nil {
		return fmt.Errorf("read policy for %s %s: %w", rt.method, rt.path, err)
	}
	if len(existing) > 0 {
		return nil
	}
	return policy.Declare(rt.method, rt.path, rt.roles...)
}
