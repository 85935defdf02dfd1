package logic

import (
	"fmt"

	"github.com/randocore/randocore/pkg/state"
	"github.com/randocore/randocore/pkg/term"
)

// LogicManagerBuilder accumulates term and variable declarations before
// the registry is frozen into a LogicManager.
type LogicManagerBuilder struct {
	sm *state.StateManager

	terms   []term.Term
	termIdx map[string]term.ID

	variables  map[term.ID]Variable
	varNameIdx map[string]term.ID
	nextVarID  term.ID

	resolver VariableResolver
	compiler Compiler
}

// NewLogicManagerBuilder creates an empty builder bound to sm, the
// StateManager any state-valued terms this registry produces are built
// against.
func NewLogicManagerBuilder(sm *state.StateManager) *LogicManagerBuilder {
	return &LogicManagerBuilder{
		sm:         sm,
		termIdx:    make(map[string]term.ID),
		variables:  make(map[term.ID]Variable),
		varNameIdx: make(map[string]term.ID),
		nextVarID:  term.IntVariableOffset,
	}
}

// AddTerm declares a term and assigns it the next dense, non-negative
// id. Panics if the name is already declared.
func (b *LogicManagerBuilder) AddTerm(name string) term.ID {
	if _, exists := b.termIdx[name]; exists {
		panic(fmt.Sprintf("logic: term %q already declared", name))
	}
	id := term.ID(len(b.terms))
	b.terms = append(b.terms, term.Term{ID: id, Name: name})
	b.termIdx[name] = id
	return id
}

// AddVariable declares a variable, assigning it the next id at or
// below term.IntVariableOffset, and constructs it via make so the
// implementation can close over its own assigned id. Panics if the
// name is already declared.
func (b *LogicManagerBuilder) AddVariable(name string, make_ func(id term.ID) Variable) term.ID {
	if _, exists := b.varNameIdx[name]; exists {
		panic(fmt.Sprintf("logic: variable %q already declared", name))
	}
	id := b.nextVarID
	b.nextVarID--
	v := make_(id)
	b.variables[id] = v
	b.varNameIdx[name] = id
	return id
}

// SetResolver installs a VariableResolver chain consulted by
// VariableByName before the builder's own name index.
func (b *LogicManagerBuilder) SetResolver(r VariableResolver) *LogicManagerBuilder {
	b.resolver = r
	return b
}

// SetCompiler installs the Compiler CreateDNFLogicDef delegates to.
func (b *LogicManagerBuilder) SetCompiler(c Compiler) *LogicManagerBuilder {
	b.compiler = c
	return b
}

// Build freezes the declared terms and variables into an immutable
// LogicManager.
func (b *LogicManagerBuilder) Build() *LogicManager {
	lm := &LogicManager{
		sm:         b.sm,
		terms:      append([]term.Term(nil), b.terms...),
		termIdx:    make(map[string]term.ID, len(b.termIdx)),
		variables:  make(map[term.ID]Variable, len(b.variables)),
		varNameIdx: make(map[string]term.ID, len(b.varNameIdx)),
		resolver:   b.resolver,
		compiler:   b.compiler,
	}
	for k, v := range b.termIdx {
		lm.termIdx[k] = v
	}
	for k, v := range b.variables {
		lm.variables[k] = v
	}
	for k, v := range b.varNameIdx {
		lm.varNameIdx[k] = v
	}
	return lm
}
