package logic

import (
	"github.com/randocore/randocore/pkg/state"
	"github.com/randocore/randocore/pkg/term"
)

// VariableKind tags which of the four plug-in contracts a Variable
// implements. The evaluator dispatches on this tag rather than growing
// a deep interface hierarchy.
type VariableKind int

const (
	KindLogicInt VariableKind = iota
	KindStateProvider
	KindStateModifier
	KindStateAccessVariable
)

// Variable is the common capability set every plug-in kind shares. The
// core defines this contract; concrete bodies (an item counter, a
// locked-door state transformer, ...) are supplied by callers.
type Variable interface {
	ID() term.ID
	Name() string
	Kind() VariableKind
	// GetTerms returns every term id this variable's logic touches, so
	// DNFLogicDef.termClauseLookup can index clauses that reference it
	// indirectly through a variable.
	GetTerms() []term.ID
}

// LogicIntVariable resolves to an integer for a given PM, used directly
// as a logic-list atom (value > 0 succeeds) or as a comparison operand.
type LogicIntVariable interface {
	Variable
	GetValue(pm PM) int
}

// StateProviderVariable additionally yields the input StateUnion for a
// clause whose stateProvider names it.
type StateProviderVariable interface {
	Variable
	GetInputState(pm PM) *state.StateUnion
}

// StateModifierVariable transforms state during stateLogic walking. It
// can consume an established input builder (ModifyState, fanning out
// into 0..n continuations) or originate state on the empty/no-input
// branch (ProvideState).
//
// ProvideState's return value is three-way:
//   - nil                                 -> fail on empty
//   - non-nil, zero-length slice          -> succeed with indeterminate output
//   - non-nil, non-empty slice            -> branches to continue from
type StateModifierVariable interface {
	Variable
	ModifyState(parent *DNFLogicDef, pm PM, current *state.LazyStateBuilder) []*state.LazyStateBuilder
	ProvideState(parent *DNFLogicDef, pm PM) []*state.LazyStateBuilder
}

// StateAccessVariable reads a scalar from the builder currently being
// walked; valid only as a comparison operand during state evaluation,
// never inside EvaluateLogic's plain logic[] walk.
type StateAccessVariable interface {
	Variable
	GetValue(current *state.LazyStateBuilder) int
}
