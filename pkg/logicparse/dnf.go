package logicparse

import "github.com/randocore/randocore/pkg/randoerrors"

// pushNegation eliminates every notNode by pushing negation down to the
// leaves via De Morgan's laws, flipping a negated comparison into the
// Or of its two complementary comparisons. A negated plain identifier
// has no such expansion — Clause.EvaluateLogic has no "term/variable is
// absent" atom — so that case is a compile error.
func pushNegation(n node, negate bool) (node, error) {
	switch v := n.(type) {
	case identNode:
		if negate {
			return nil, randoerrors.NewDomainError("logicparse.pushNegation",
				"cannot negate bare identifier %q; negate a comparison instead", v.name)
		}
		return v, nil
	case cmpNode:
		if negate {
			return pushNegation(negateCmp(v), false)
		}
		return v, nil
	case notNode:
		return pushNegation(v.operand, !negate)
	case andNode:
		left, err := pushNegation(v.left, negate)
		if err != nil {
			return nil, err
		}
		right, err := pushNegation(v.right, negate)
		if err != nil {
			return nil, err
		}
		if negate {
			return orNode{left: left, right: right}, nil
		}
		return andNode{left: left, right: right}, nil
	case orNode:
		left, err := pushNegation(v.left, negate)
		if err != nil {
			return nil, err
		}
		right, err := pushNegation(v.right, negate)
		if err != nil {
			return nil, err
		}
		if negate {
			return andNode{left: left, right: right}, nil
		}
		return orNode{left: left, right: right}, nil
	default:
		return nil, randoerrors.NewDomainError("logicparse.pushNegation", "unhandled node type %T", n)
	}
}

// toDNF distributes a Not-free tree into disjunctive normal form: a
// list of conjunctions, each a list of leaf nodes (identNode/cmpNode).
// Or concatenates; And takes the cross product of its two sides'
// conjunction lists.
func toDNF(n node) [][]node {
	switch v := n.(type) {
	case identNode, cmpNode:
		return [][]node{{v}}
	case orNode:
		return append(toDNF(v.left), toDNF(v.right)...)
	case andNode:
		left := toDNF(v.left)
		right := toDNF(v.right)
		out := make([][]node, 0, len(left)*len(right))
		for _, lc := range left {
			for _, rc := range right {
				conj := make([]node, 0, len(lc)+len(rc))
				conj = append(conj, lc...)
				conj = append(conj, rc...)
				out = append(out, conj)
			}
		}
		return out
	default:
		// unreachable once pushNegation has run
		return nil
	}
}
