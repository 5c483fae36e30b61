package mapping

import (
	"cmp"
	"slices"
	"strings"
)

// Matches compares the employee attribute named by c.Field against c.Value.
// A missing attribute compares as the empty string. Comparison is
// case-sensitive; an unknown operator never matches.
func (c Condition) Matches(attrs map[string]string) bool {
	actual := attrs[string(c.Field)]

	switch c.Operator {
	case OpEquals:
		return actual == c.Value
	case OpContains:
		return strings.Contains(actual, c.Value)
	case OpStartsWith:
		return strings.HasPrefix(actual, c.Value)
	case OpEndsWith:
		return strings.HasSuffix(actual, c.Value)
	default:
		return false
	}
}

// Matches reports whether every condition matches. A rule with no
// conditions matches every employee.
func (r MappingRule) Matches(attrs map[string]string) bool {
	return r.firstFailure(attrs) < 0
}

func (r MappingRule) firstFailure(attrs map[string]string) int {
	for i, c := range r.Conditions {
		if !c.Matches(attrs) {
			return i
		}
	}
	return -1
}

// ordered returns the rules sorted by ascending priority without touching
// the caller's slice. Equal priorities keep their original order.
func ordered(rules []MappingRule) []MappingRule {
	sorted := slices.Clone(rules)
	slices.SortStableFunc(sorted, func(a, b MappingRule) int {
		return cmp.Compare(a.Priority, b.Priority)
	})
	return sorted
}

// FirstMatch returns the first active rule, in priority order, whose
// conditions all match attrs.
func FirstMatch(rules []MappingRule, attrs map[string]string) (*MappingRule, bool) {
	for _, r := range ordered(rules) {
		if !r.IsActive {
			continue
		}
		if r.Matches(attrs) {
			return &r, true
		}
	}
	return nil, false
}

// SelectSite returns the site of the winning rule, or false when no active
// rule matches.
func SelectSite(rules []MappingRule, attrs map[string]string) (string, bool) {
	r, ok := FirstMatch(rules, attrs)
	if !ok {
		return "", false
	}
	return r.SiteID, true
}

// TraceStatus describes what happened to one rule during evaluation.
type TraceStatus string

const (
	TraceInactive   TraceStatus = "inactive"
	TraceMatched    TraceStatus = "matched"
	TraceNotMatched TraceStatus = "not_matched"
	TraceShadowed   TraceStatus = "shadowed"
)

// Trace is the evaluation record for one rule.
type Trace struct {
	RuleID          string      `json:"ruleId"`
	SiteID          string      `json:"siteId"`
	Priority        int         `json:"priority"`
	Status          TraceStatus `json:"status"`
	FailedCondition *Condition  `json:"failedCondition,omitempty"`
}

// Explain evaluates every rule in priority order and records why each one
// did or did not win. A rule after the winner that would also match is
// reported as shadowed; one that would not is not_matched.
func Explain(rules []MappingRule, attrs map[string]string) []Trace {
	sorted := ordered(rules)
	traces := make([]Trace, 0, len(sorted))
	matched := false

	for _, r := range sorted {
		t := Trace{RuleID: r.ID, SiteID: r.SiteID, Priority: r.Priority}

		if !r.IsActive {
			t.Status = TraceInactive
			traces = append(traces, t)
			continue
		}

		switch idx := r.firstFailure(attrs); {
		case idx >= 0:
			failed := r.Conditions[idx]
			t.Status = TraceNotMatched
			t.FailedCondition = &failed
		case matched:
			t.Status = TraceShadowed
		default:
			t.Status = TraceMatched
			matched = true
		}
		traces = append(traces, t)
	}
	return traces
}
