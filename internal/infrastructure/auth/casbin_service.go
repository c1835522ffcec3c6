package auth

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

// RouteModel describes the route policy table: one row per (role, route, method).
// Routes are gin route patterns, matched verbatim.
const RouteModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

type CasbinService struct{ E *casbin.Enforcer }

// NewCasbinService builds an enforcer whose policies persist through the GORM adapter
func NewCasbinService(db *gorm.DB) (*CasbinService, error) {
	adp, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("casbin adapter: %w", err)
	}
	m, err := model.NewModelFromString(RouteModel)
	if err != nil {
		return nil, fmt.Errorf("casbin model: %w", err)
	}
	E, err := casbin.NewEnforcer(m, adp)
	if err != nil {
		return nil, err
	}
	if err := E.LoadPolicy(); err != nil {
		return nil, err
	}
	return &CasbinService{E}, nil
}

// NewMemoryCasbinService builds an enforcer without persistence
func NewMemoryCasbinService() (*CasbinService, error) {
	m, err := model.NewModelFromString(RouteModel)
	if err != nil {
		return nil, fmt.Errorf("casbin model: %w", err)
	}
	E, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}
	return &CasbinService{E}, nil
}
