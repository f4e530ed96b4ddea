package ignore

// Chain lists the RuleSets of every directory from the ignore base down to
// the directory containing the candidate path, shallowest first.
type Chain []*RuleSet

// Append returns a new chain ending with rs. The receiver is never written
// to, so chains handed to different subtrees stay independent.
func (c Chain) Append(rs *RuleSet) Chain {
	out := make(Chain, len(c), len(c)+1)
	copy(out, c)
	return append(out, rs)
}

// Resolve computes the verdict for p (slash-separated, relative to the
// ignore base). The last matching rule across the whole chain wins, so a
// deeper directory overrides a shallower one and a later line overrides an
// earlier line.
func Resolve(chain Chain, p string, isDir bool) Verdict {
	v, _ := Explain(chain, p, isDir)
	return v
}

// Explain is Resolve that also returns the deciding rule, or nil when no
// rule matched.
func Explain(chain Chain, p string, isDir bool) (Verdict, *Rule) {
	verdict := Included
	var decided *Rule

	for _, rs := range chain {
		if rs.Len() == 0 {
			continue
		}
		rel, ok := rs.relative(p)
		if !ok {
			continue
		}
		for i := range rs.rules {
			r := &rs.rules[i]
			if !r.Matches(rel, isDir) {
				continue
			}
			decided = r
			if r.Negated {
				verdict = Included
			} else {
				verdict = Ignored
			}
		}
	}
	return verdict, decided
}
