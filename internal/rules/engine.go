// Package rules provides a YAML-based rules engine for merchant categorization.
package rules

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/domain"
)

//go:embed rules.yaml
var embeddedRules []byte

// Rule represents a single categorization rule: a category plus the
// keyword set that selects it. Matching is case-insensitive substring
// matching against the transaction description.
//
// Rules should be created via YAML loading (NewEngine, LoadEmbedded,
// LoadFromFile) or the NewRule constructor; both validate all invariants:
//   - Category must be a valid domain.Category
//   - Priority in range [0, 999]
//   - At least one keyword, none empty after trimming
//
// Direct struct construction bypasses validation. Fields are exported for
// YAML unmarshaling and testing.
type Rule struct {
	Name     string   `yaml:"name"`
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
	Priority int      `yaml:"priority"`
}

// NewRule creates a validated rule for programmatic construction.
func NewRule(name, category string, keywords []string, priority int) (*Rule, error) {
	r := Rule{Name: name, Category: category, Keywords: keywords, Priority: priority}
	if err := validateRule(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

func validateRule(r *Rule) error {
	if !domain.ValidateCategory(domain.Category(r.Category)) {
		return fmt.Errorf("invalid category %q", r.Category)
	}
	if r.Priority < 0 || r.Priority > 999 {
		return fmt.Errorf("priority must be in [0,999], got %d", r.Priority)
	}
	if len(r.Keywords) == 0 {
		return fmt.Errorf("rule must have at least one keyword")
	}
	for _, kw := range r.Keywords {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("keywords cannot be empty")
		}
	}
	return nil
}

// RuleSet represents the top-level YAML structure
type RuleSet struct {
	Rules []Rule `yaml:"rules"`
}

// Engine performs keyword matching on transaction descriptions.
// Read-only after construction and safe for concurrent use: concurrent
// uploads share the engine but no mutable state.
type Engine struct {
	rules []Rule // Sorted by priority (highest first)
}

// MatchResult contains the result of applying a rule
type MatchResult struct {
	Category domain.Category
	RuleName string // For debugging
	Keyword  string // The keyword that matched
}

// NewEngine creates a rules engine from YAML data
func NewEngine(rulesData []byte) (*Engine, error) {
	var ruleSet RuleSet
	if err := yaml.Unmarshal(rulesData, &ruleSet); err != nil {
		return nil, fmt.Errorf("failed to parse YAML rules (check syntax, indentation, and field names): %w", err)
	}

	for i, rule := range ruleSet.Rules {
		if err := validateRule(&rule); err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i, rule.Name, err)
		}
	}

	// Sort rules by priority (highest first). Use SliceStable to preserve
	// YAML file order for rules with equal priority, so precedence between
	// overlapping keyword sets is explicit and deterministic.
	sortedRules := make([]Rule, len(ruleSet.Rules))
	copy(sortedRules, ruleSet.Rules)
	sort.SliceStable(sortedRules, func(i, j int) bool {
		return sortedRules[i].Priority > sortedRules[j].Priority
	})

	return &Engine{rules: sortedRules}, nil
}

// LoadEmbedded loads the embedded rules.yaml file
func LoadEmbedded() (*Engine, error) {
	engine, err := NewEngine(embeddedRules)
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded rules (possible binary corruption): %w", err)
	}
	return engine, nil
}

// LoadFromFile loads rules from a filesystem path
func LoadFromFile(path string) (*Engine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	engine, err := NewEngine(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules from %q: %w", path, err)
	}
	return engine, nil
}

// Match applies rules to a description and returns the first match.
// Rules are evaluated in priority order (highest first); equal priorities
// keep YAML file order. Within a rule, keywords are checked in declared
// order. Ties between keywords of different rules are broken by rule
// order, never by longest match. Returns (nil, false) if no rule matches.
func (e *Engine) Match(description string) (*MatchResult, bool) {
	normalized := strings.ToLower(strings.TrimSpace(description))

	for _, rule := range e.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(normalized, strings.ToLower(strings.TrimSpace(kw))) {
				return &MatchResult{
					Category: domain.Category(rule.Category),
					RuleName: rule.Name,
					Keyword:  kw,
				}, true
			}
		}
	}

	return nil, false
}

// Categorize maps a description to exactly one category: the first
// matching rule's category, or domain.CategoryOther when nothing matches.
func (e *Engine) Categorize(description string) domain.Category {
	if result, ok := e.Match(description); ok {
		return result.Category
	}
	return domain.CategoryOther
}

// GetRules returns a copy of the rules in evaluation order.
func (e *Engine) GetRules() []Rule {
	result := make([]Rule, len(e.rules))
	copy(result, e.rules)
	return result
}
