package mocks

import "github.com/Abdulaziz20007/Phono-Backend/domain"

// MockCasbinEnforcer implements the CasbinEnforcer interface for testing.
// By default it keeps policies in memory with casbin's add/remove semantics.
type MockCasbinEnforcer struct {
	AddPolicyFunc         func(params ...interface{}) (bool, error)
	RemovePolicyFunc      func(params ...interface{}) (bool, error)
	GetPolicyFunc         func() ([][]string, error)
	GetFilteredPolicyFunc func(fieldIndex int, fieldValues ...string) ([][]string, error)
	policies              [][]string
}

// Compile-time interface compliance verification
var _ domain.CasbinEnforcer = (*MockCasbinEnforcer)(nil)

// NewMockCasbinEnforcer creates a new MockCasbinEnforcer with no policies
func NewMockCasbinEnforcer() *MockCasbinEnforcer {
	return &MockCasbinEnforcer{}
}

func toRule(params []interface{}) []string {
	rule := make([]string, 0, len(params))
	for _, p := range params {
		if s, ok := p.(string); ok {
			rule = append(rule, s)
		}
	}
	return rule
}

func (m *MockCasbinEnforcer) indexOf(rule []string) int {
	for i, p := range m.policies {
		if len(p) != len(rule) {
			continue
		}
		match := true
		for j := range p {
			if p[j] != rule[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// AddPolicy adds a rule; it reports false when the rule already exists
func (m *MockCasbinEnforcer) AddPolicy(params ...interface{}) (bool, error) {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(params...)
	}
	rule := toRule(params)
	if len(rule) < 3 || m.indexOf(rule) >= 0 {
		return false, nil
	}
	m.policies = append(m.policies, rule)
	return true, nil
}

// RemovePolicy removes a rule; it reports false when the rule was absent
func (m *MockCasbinEnforcer) RemovePolicy(params ...interface{}) (bool, error) {
	if m.RemovePolicyFunc != nil {
		return m.RemovePolicyFunc(params...)
	}
	i := m.indexOf(toRule(params))
	if i < 0 {
		return false, nil
	}
	m.policies = append(m.policies[:i], m.policies[i+1:]...)
	return true, nil
}

// GetPolicy returns a copy of all policies
func (m *MockCasbinEnforcer) GetPolicy() ([][]string, error) {
	if m.GetPolicyFunc != nil {
		return m.GetPolicyFunc()
	}
	result := make([][]string, len(m.policies))
	for i, policy := range m.policies {
		result[i] = append([]string(nil), policy...)
	}
	return result, nil
}

// GetFilteredPolicy returns the rules whose fields starting at fieldIndex match
// fieldValues; an empty value matches anything
func (m *MockCasbinEnforcer) GetFilteredPolicy(fieldIndex int, fieldValues ...string) ([][]string, error) {
	if m.GetFilteredPolicyFunc != nil {
		return m.GetFilteredPolicyFunc(fieldIndex, fieldValues...)
	}
	var result [][]string
	for _, p := range m.policies {
		match := true
		for i, v := range fieldValues {
			idx := fieldIndex + i
			if v == "" {
				continue
			}
			if idx >= len(p) || p[idx] != v {
				match = false
				break
			}
		}
		if match {
			result = append(result, append([]string(nil), p...))
		}
	}
	return result, nil
}

// SetPolicies sets the internal policies (test helper)
func (m *MockCasbinEnforcer) SetPolicies(policies [][]string) {
	m.policies = make([][]string, len(policies))
	for i, policy := range policies {
		m.policies[i] = append([]string(nil), policy...)
	}
}
