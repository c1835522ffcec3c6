package services

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
)

// CasbinEnforcerWrapper wraps the real Casbin enforcer to implement our interface
type CasbinEnforcerWrapper struct {
	enforcer *casbin.Enforcer
}

// NewCasbinEnforcerWrapper creates a wrapper for the real Casbin enforcer
func NewCasbinEnforcerWrapper(enforcer *casbin.Enforcer) domain.CasbinEnforcer {
	return &CasbinEnforcerWrapper{enforcer: enforcer}
}

func (w *CasbinEnforcerWrapper) AddPolicy(params ...interface{}) (bool, error) {
	return w.enforcer.AddPolicy(params...)
}

func (w *CasbinEnforcerWrapper) RemovePolicy(params ...interface{}) (bool, error) {
	return w.enforcer.RemovePolicy(params...)
}

func (w *CasbinEnforcerWrapper) GetPolicy() ([][]string, error) {
	return w.enforcer.GetPolicy()
}

func (w *CasbinEnforcerWrapper) GetFilteredPolicy(fieldIndex int, fieldValues ...string) ([][]string, error) {
	return w.enforcer.GetFilteredPolicy(fieldIndex, fieldValues...)
}

// PolicyServiceImpl implements domain.PolicyService. The casbin table holds
// one (role, route, method) row per role a route admits.
type PolicyServiceImpl struct {
	enforcer         domain.CasbinEnforcer
	strictUndeclared bool
	log              *zap.Logger
}

// NewPolicyService creates a new policy service
func NewPolicyService(enforcer *casbin.Enforcer, strictUndeclared bool, log *zap.Logger) *PolicyServiceImpl {
	return NewPolicyServiceWithEnforcer(NewCasbinEnforcerWrapper(enforcer), strictUndeclared, log)
}

// NewPolicyServiceWithEnforcer creates a new policy service with a CasbinEnforcer interface (for testing)
func NewPolicyServiceWithEnforcer(enforcer domain.CasbinEnforcer, strictUndeclared bool, log *zap.Logger) *PolicyServiceImpl {
	return &PolicyServiceImpl{
		enforcer:         enforcer,
		strictUndeclared: strictUndeclared,
		log:              log.Named("policy"),
	}
}

// Declare implements domain.PolicyService. Existing rows are left alone.
func (p *PolicyServiceImpl) Declare(method, path string, roles ...domain.Role) error {
	for _, role := range roles {
		if err := p.AddPolicy(role, path, method); err != nil {
			return fmt.Errorf("declare %s %s: %w", method, path, err)
		}
	}
	return nil
}

// Required implements domain.PolicyService
func (p *PolicyServiceImpl) Required(method, path string) ([]domain.Role, error) {
	rules, err := p.enforcer.GetFilteredPolicy(1, path, method)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy: %w", err)
	}

	roles := make([]domain.Role, 0, len(rules))
	for _, rule := range rules {
		role, ok := domain.ParseRole(rule[0])
		if !ok {
			p.log.Warn("ignoring unknown role in policy", zap.Strings("rule", rule))
			continue
		}
		roles = append(roles, role)
	}
	return roles, nil
}

// Allows implements domain.PolicyService.
// An empty requirement admits everyone unless strict mode is on. A SUPERADMIN
// requirement admits creators only, whatever else is listed.
func (p *PolicyServiceImpl) Allows(required []domain.Role, identity *domain.Identity) bool {
	if len(required) == 0 {
		if p.strictUndeclared {
			return false
		}
		p.log.Warn("route has no declared roles, allowing")
		return true
	}

	for _, r := range required {
		if r == domain.RolePublic {
			return true
		}
	}
	if identity == nil {
		return false
	}

	for _, r := range required {
		if r == domain.RoleSuperAdmin {
			return identity.Holds(domain.RoleSuperAdmin)
		}
	}

	for _, r := range required {
		if identity.Holds(r) {
			return true
		}
	}
	return false
}

// AddPolicy implements domain.PolicyService
func (p *PolicyServiceImpl) AddPolicy(role domain.Role, path, method string) error {
	if _, ok := domain.ParseRole(string(role)); !ok {
		return fmt.Errorf("unknown role %q", role)
	}
	if _, err := p.enforcer.AddPolicy(string(role), path, method); err != nil {
		return err
	}
	return nil
}

// RemovePolicy implements domain.PolicyService. A route keeps at least one
// role: an emptied route would fall back to the undeclared default.
func (p *PolicyServiceImpl) RemovePolicy(role domain.Role, path, method string) error {
	roles, err := p.Required(method, path)
	if err != nil {
		return err
	}
	held := false
	for _, r := range roles {
		if r == role {
			held = true
			break
		}
	}
	if held && len(roles) == 1 {
		return domain.ErrLastRoutePolicy
	}

	_, err = p.enforcer.RemovePolicy(string(role), path, method)
	return err
}

// GetPolicies implements domain.PolicyService
func (p *PolicyServiceImpl) GetPolicies() ([][]string, error) {
	return p.enforcer.GetPolicy()
}

var _ domain.PolicyService = (*PolicyServiceImpl)(nil)
