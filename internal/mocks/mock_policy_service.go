package mocks

import "github.com/Abdulaziz20007/Phono-Backend/domain"

// MockPolicyService implements domain.PolicyService interface for testing
type MockPolicyService struct {
	DeclareFunc      func(method, path string, roles ...domain.Role) error
	RequiredFunc     func(method, path string) ([]domain.Role, error)
	AllowsFunc       func(required []domain.Role, identity *domain.Identity) bool
	AddPolicyFunc    func(role domain.Role, path, method string) error
	RemovePolicyFunc func(role domain.Role, path, method string) error
	GetPoliciesFunc  func() ([][]string, error)
}

// NewMockPolicyService creates a new MockPolicyService with default behaviors
func NewMockPolicyService() *MockPolicyService {
	return &MockPolicyService{}
}

func (m *MockPolicyService) Declare(method, path string, roles ...domain.Role) error {
	if m.DeclareFunc != nil {
		return m.DeclareFunc(method, path, roles...)
	}
	return nil
}

// Required defaults to an undeclared route
func (m *MockPolicyService) Required(method, path string) ([]domain.Role, error) {
	if m.RequiredFunc != nil {
		return m.RequiredFunc(method, path)
	}
	return nil, nil
}

// Allows defaults to "any holder of a required role"
func (m *MockPolicyService) Allows(required []domain.Role, identity *domain.Identity) bool {
	if m.AllowsFunc != nil {
		return m.AllowsFunc(required, identity)
	}
	if identity == nil {
		return false
	}
	for _, r := range required {
		if identity.Holds(r) {
			return true
		}
	}
	return false
}

func (m *MockPolicyService) AddPolicy(role domain.Role, path, method string) error {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(role, path, method)
	}
	return nil
}

func (m *MockPolicyService) RemovePolicy(role domain.Role, path, method string) error {
	if m.RemovePolicyFunc != nil {
		return m.RemovePolicyFunc(role, path, method)
	}
	return nil
}

func (m *MockPolicyService) GetPolicies() ([][]string, error) {
	if m.GetPoliciesFunc != nil {
		return m.GetPoliciesFunc()
	}
	return [][]string{}, nil
}

// Compile-time interface compliance verification
var _ domain.PolicyService = (*MockPolicyService)(nil)
