package logic

import (
	"fmt"

	"github.com/randocore/randocore/pkg/randoerrors"
	"github.com/randocore/randocore/pkg/state"
	"github.com/randocore/randocore/pkg/term"
)

// Compiler turns infix-ish source text into a compiled DNFLogicDef
// against a LogicManager's registered terms/variables. The core treats
// a Compiler as an external collaborator (see pkg/logicparse for the
// one this module ships).
type Compiler interface {
	Compile(lm *LogicManager, src string) (*DNFLogicDef, error)
}

// LogicManager is the immutable, once-frozen registry of terms and
// variables. Built once via LogicManagerBuilder.Build and thereafter
// consulted read-only for the lifetime of however many runs share it.
type LogicManager struct {
	sm *state.StateManager

	terms   []term.Term
	termIdx map[string]term.ID

	variables  map[term.ID]Variable
	varNameIdx map[string]term.ID
	resolver   VariableResolver

	compiler Compiler
}

// StateManager returns the manager this LogicManager's state-valued
// terms are built against.
func (lm *LogicManager) StateManager() *state.StateManager {
	return lm.sm
}

// Term looks up a registered term by id.
func (lm *LogicManager) Term(id term.ID) (term.Term, bool) {
	if !id.IsTerm() || int(id) >= len(lm.terms) {
		return term.Term{}, false
	}
	return lm.terms[id], true
}

// TermByName looks up a registered term by name.
func (lm *LogicManager) TermByName(name string) (term.Term, bool) {
	id, ok := lm.termIdx[name]
	if !ok {
		return term.Term{}, false
	}
	return lm.terms[id], true
}

// TermByNameStrict looks up a registered term by name, returning a
// DomainError if unknown.
func (lm *LogicManager) TermByNameStrict(name string) (term.Term, error) {
	t, ok := lm.TermByName(name)
	if !ok {
		return term.Term{}, randoerrors.NewDomainError("LogicManager.TermByNameStrict", "unknown term %q", name)
	}
	return t, nil
}

// Terms returns every registered term, ordered by id.
func (lm *LogicManager) Terms() []term.Term {
	return append([]term.Term(nil), lm.terms...)
}

// Variable looks up a registered variable by id.
func (lm *LogicManager) Variable(id term.ID) (Variable, bool) {
	v, ok := lm.variables[id]
	return v, ok
}

// VariableByName resolves a name to a Variable via the resolver chain,
// falling back to the name-indexed registry built at Build time.
func (lm *LogicManager) VariableByName(name string) (Variable, bool) {
	if lm.resolver != nil {
		if v, ok := lm.resolver.TryMatch(name); ok {
			return v, true
		}
	}
	id, ok := lm.varNameIdx[name]
	if !ok {
		return nil, false
	}
	return lm.variables[id], true
}

// CreateDNFLogicDef delegates to the configured Compiler. Returns a
// DomainError if no compiler was configured on the builder.
func (lm *LogicManager) CreateDNFLogicDef(src string) (*DNFLogicDef, error) {
	if lm.compiler == nil {
		return nil, randoerrors.NewDomainError("LogicManager.CreateDNFLogicDef", "no compiler configured")
	}
	return lm.compiler.Compile(lm, src)
}

func (lm *LogicManager) String() string {
	return fmt.Sprintf("LogicManager{terms=%d, variables=%d}", len(lm.terms), len(lm.variables))
}
