package ignore

import "strings"

// Source describes one rule file that contributed to a RuleSet.
type Source struct {
	Path  string
	Rules int
}

// RuleSet is the ordered union of the rules found in one directory. Rules
// from earlier sources come first; inside a source they keep line order.
type RuleSet struct {
	Dir     string
	Sources []Source

	rules []Rule
}

// NewRuleSet builds the RuleSet of dir from per-file rule lists. The order
// of groups is the tie-break between rule-file kinds: a later group
// overrides an earlier one because the last matching rule wins.
func NewRuleSet(dir string, groups ...[]Rule) *RuleSet {
	total := 0
	for _, g := range groups {
		total += len(g)
	}

	rs := &RuleSet{Dir: dir, rules: make([]Rule, 0, total)}
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		rs.rules = append(rs.rules, g...)
		rs.Sources = append(rs.Sources, Source{Path: g[0].Source, Rules: len(g)})
	}
	return rs
}

// Rules returns the rules in evaluation order. Callers must not modify the
// returned slice.
func (rs *RuleSet) Rules() []Rule {
	if rs == nil {
		return nil
	}
	return rs.rules
}

// Len returns the number of rules in the set.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.rules)
}

// relative strips the set's directory from p. It reports false when p does
// not lie beneath that directory.
func (rs *RuleSet) relative(p string) (string, bool) {
	if rs.Dir == "" {
		return p, true
	}
	rest, ok := strings.CutPrefix(p, rs.Dir+"/")
	return rest, ok
}
