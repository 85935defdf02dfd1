package logicparse

import (
	"github.com/randocore/randocore/pkg/logic"
	"github.com/randocore/randocore/pkg/randoerrors"
	"github.com/randocore/randocore/pkg/term"
)

// Compiler implements logic.Compiler, the single exported entry point
// this package offers. A zero-value Compiler is ready to use.
type Compiler struct{}

var _ logic.Compiler = Compiler{}

// Compile parses src and lowers it into a DNFLogicDef over lm's
// registered terms and variables. Integer literals referenced by a
// comparison must have been pre-declared via RegisterLiterals before lm
// was built.
func (Compiler) Compile(lm *logic.LogicManager, src string) (*logic.DNFLogicDef, error) {
	tree, err := parse(src)
	if err != nil {
		return nil, err
	}
	noNot, err := pushNegation(tree, false)
	if err != nil {
		return nil, err
	}
	conjunctions := toDNF(noNot)

	clauses := make([]*logic.Clause, len(conjunctions))
	for i, conj := range conjunctions {
		seq, err := resolveConjunction(lm, conj)
		if err != nil {
			return nil, err
		}
		clauses[i] = logic.NewClause(seq, nil, term.NONE)
	}
	return logic.NewDNFLogicDef(lm, clauses), nil
}

func resolveConjunction(lm *logic.LogicManager, conj []node) ([]term.ID, error) {
	var seq []term.ID
	for _, leaf := range conj {
		switch v := leaf.(type) {
		case identNode:
			id, err := resolveIdent(lm, v.name)
			if err != nil {
				return nil, err
			}
			seq = append(seq, id)
		case cmpNode:
			left, err := resolveOperand(lm, v.left)
			if err != nil {
				return nil, err
			}
			right, err := resolveOperand(lm, v.right)
			if err != nil {
				return nil, err
			}
			seq = append(seq, cmpTermID(v.op), left, right)
		default:
			return nil, randoerrors.NewDomainError("logicparse.Compile", "unhandled leaf node %T", leaf)
		}
	}
	return seq, nil
}

func cmpTermID(op cmpOp) term.ID {
	switch op {
	case opEQ:
		return term.EQ
	case opLT:
		return term.LT
	default:
		return term.GT
	}
}

// resolveIdent resolves a bare identifier: a declared term first, then
// a declared LogicIntVariable.
func resolveIdent(lm *logic.LogicManager, name string) (term.ID, error) {
	if t, ok := lm.TermByName(name); ok {
		return t.ID, nil
	}
	if v, ok := lm.VariableByName(name); ok {
		if _, ok := v.(logic.LogicIntVariable); !ok {
			return 0, randoerrors.NewDomainError("logicparse.Compile", "variable %q is not usable as a bare logic atom", name)
		}
		return v.ID(), nil
	}
	return 0, randoerrors.NewDomainError("logicparse.Compile", "unknown identifier %q", name)
}

// resolveOperand resolves a comparison operand: an identifier (term or
// LogicIntVariable) or a literal backed by a pre-registered variable.
func resolveOperand(lm *logic.LogicManager, o operand) (term.ID, error) {
	if o.isLit {
		name := literalName(o.literal)
		v, ok := lm.VariableByName(name)
		if !ok {
			return 0, randoerrors.NewDomainError("logicparse.Compile",
				"literal %d not pre-registered; call logicparse.RegisterLiterals before Build", o.literal)
		}
		return v.ID(), nil
	}
	return resolveIdent(lm, o.ident)
}
