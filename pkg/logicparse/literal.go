package logicparse

import (
	"fmt"

	"github.com/randocore/randocore/pkg/logic"
	"github.com/randocore/randocore/pkg/term"
)

// literalVariable is a LogicIntVariable that always resolves to a fixed
// value, letting comparisons reference integer literals through the
// same term.ID-keyed operand path as any other identifier.
type literalVariable struct {
	id    term.ID
	name  string
	value int
}

func (l *literalVariable) ID() term.ID           { return l.id }
func (l *literalVariable) Name() string          { return l.name }
func (l *literalVariable) Kind() logic.VariableKind { return logic.KindLogicInt }
func (l *literalVariable) GetTerms() []term.ID   { return nil }
func (l *literalVariable) GetValue(logic.PM) int { return l.value }

// literalName returns the registered variable name for integer literal
// n, consistent between RegisterLiterals and Compile's operand lookup.
func literalName(n int) string {
	return fmt.Sprintf("_lit_%d", n)
}

// RegisterLiterals declares a LogicIntVariable for each of values on b,
// so later source compiled against the resulting LogicManager may
// reference them in comparisons (e.g. "COUNTER > 3" requires
// RegisterLiterals(b, 3) beforehand). Safe to call with values already
// registered is not supported — call once per distinct literal.
func RegisterLiterals(b *logic.LogicManagerBuilder, values ...int) []term.ID {
	ids := make([]term.ID, len(values))
	for i, v := range values {
		name := literalName(v)
		ids[i] = b.AddVariable(name, func(id term.ID) logic.Variable {
			return &literalVariable{id: id, name: name, value: v}
		})
	}
	return ids
}
