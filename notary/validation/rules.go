package validation

import (
	"fmt"
)

// Fields is the subset of the raw configuration that rules inspect.
type Fields struct {
	RPCURL        string
	PrivateKey    string
	ExplorerTxURL string
	WatchSchedule string
	MetricsURL    string
}

// Rule represents a validation rule that can be applied to configuration fields
type Rule interface {
	Name() string
	Validate(fields Fields) error
}

// RuleSet holds a collection of validation rules and applies them sequentially
type RuleSet struct {
	rules []Rule
}

// NewRuleSet creates a new validation rule set
func NewRuleSet(rules ...Rule) *RuleSet {
	return &RuleSet{rules: rules}
}

// DefaultRules returns the standard set of validation rules for notary configuration.
// The order matters: required fields are reported before format problems.
func DefaultRules() *RuleSet {
	return NewRuleSet(
		&RPCEndpointRule{},
		&PrivateKeyRule{},
		&ExplorerURLRule{},
		&MetricsEndpointRule{},
	)
}

// Validate applies all rules to the fields
func (rs *RuleSet) Validate(fields Fields) error {
	for _, rule := range rs.rules {
		if err := rule.Validate(fields); err != nil {
			return fmt.Errorf("%s validation failed: %w", rule.Name(), err)
		}
	}
	return nil
}

// AddRule adds a new rule to the rule set
func (rs *RuleSet) AddRule(rule Rule) {
	rs.rules = append(rs.rules, rule)
}

// Rules returns a copy of all rules in the set
func (rs *RuleSet) Rules() []Rule {
	result := make([]Rule, len(rs.rules))
	copy(result, rs.rules)
	return result
}
