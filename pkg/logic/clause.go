package logic

import (
	"github.com/randocore/randocore/pkg/randoerrors"
	"github.com/randocore/randocore/pkg/state"
	"github.com/randocore/randocore/pkg/term"
)

// Clause is one conjunction of a DNFLogicDef's disjunction: a logic
// sequence (term/variable ids and comparison operators, all implicitly
// AND-ed), a parallel state-logic sequence walked independently, and a
// state-origin id identifying where the state walk's input comes from.
//
// parent is a borrowed, non-owning back-pointer set once by
// NewDNFLogicDef; its lifetime is bounded by the DNFLogicDef that holds
// this Clause, so it is never a leak risk under Go's GC even though it
// forms a reference cycle.
type Clause struct {
	logic         []term.ID
	stateLogic    []term.ID
	stateProvider term.ID
	parent        *DNFLogicDef
}

// NewClause builds a Clause from its three tagged sequences. stateProvider
// may be term.NONE to mean "no state origin" (GetInputState returns nil).
func NewClause(logicSeq, stateLogicSeq []term.ID, stateProvider term.ID) *Clause {
	return &Clause{
		logic:         append([]term.ID(nil), logicSeq...),
		stateLogic:    append([]term.ID(nil), stateLogicSeq...),
		stateProvider: stateProvider,
	}
}

func (c *Clause) lookupVariable(id term.ID) (Variable, bool) {
	return c.parent.lm.Variable(id)
}

// EvaluateLogic walks logic[] left to right; any atomic failure
// short-circuits the clause to false.
func (c *Clause) EvaluateLogic(pm PM) bool {
	i := 0
	for i < len(c.logic) {
		id := c.logic[i]
		switch {
		case id == term.ANY:
			i++
		case id == term.NONE:
			return false
		case id == term.EQ || id == term.LT || id == term.GT:
			if i+2 >= len(c.logic) {
				panic(randoerrors.NewDomainError("Clause.EvaluateLogic", "comparison at index %d missing operands", i))
			}
			av, err := c.resolveInt(pm, c.logic[i+1], nil)
			if err != nil {
				panic(err)
			}
			bv, err := c.resolveInt(pm, c.logic[i+2], nil)
			if err != nil {
				panic(err)
			}
			if !compare(id, av, bv) {
				return false
			}
			i += 3
		case id.IsTerm():
			if !pm.Has(id) {
				return false
			}
			i++
		case id.IsVariable():
			v, ok := c.lookupVariable(id)
			if !ok {
				panic(randoerrors.NewDomainError("Clause.EvaluateLogic", "unknown variable id %s", id))
			}
			li, ok := v.(LogicIntVariable)
			if !ok {
				panic(randoerrors.NewDomainError("Clause.EvaluateLogic", "variable %s is not a LogicInt", v.Name()))
			}
			if li.GetValue(pm) <= 0 {
				return false
			}
			i++
		default:
			panic(randoerrors.NewDomainError("Clause.EvaluateLogic", "unexpected id %s in logic sequence", id))
		}
	}
	return true
}

// GetInputState resolves the clause's state origin.
func (c *Clause) GetInputState(pm PM) *state.StateUnion {
	switch {
	case c.stateProvider == term.NONE || c.stateProvider == term.ANY:
		return nil
	case c.stateProvider.IsTerm():
		return pm.GetState(c.stateProvider)
	case c.stateProvider.IsVariable():
		v, ok := c.lookupVariable(c.stateProvider)
		if !ok {
			panic(randoerrors.NewDomainError("Clause.GetInputState", "unknown state provider variable %s", c.stateProvider))
		}
		sp, ok := v.(StateProviderVariable)
		if !ok {
			panic(randoerrors.NewDomainError("Clause.GetInputState", "variable %s is not a StateProvider", v.Name()))
		}
		return sp.GetInputState(pm)
	default:
		return nil
	}
}

// EvaluateStateDiscard reports whether at least one (input x
// state-logic) path succeeds, without materializing any State.
func (c *Clause) EvaluateStateDiscard(pm PM) bool {
	input := c.GetInputState(pm)
	if input == nil {
		return c.evaluateEmptyStateDiscardRec(pm, 0)
	}
	for _, s := range input.States() {
		b := state.NewLazyStateBuilder(s)
		if c.evaluateStateDiscardRec(pm, 0, b) {
			return true
		}
	}
	return false
}

// EvaluateStateChange enumerates output states into result, appending
// as it goes, and reports whether the clause additionally succeeds on
// the empty/indeterminate branch (the ProvideState chain alone, with no
// established input, is viable).
func (c *Clause) EvaluateStateChange(pm PM, result *[]state.State) bool {
	input := c.GetInputState(pm)
	if input == nil {
		return c.evaluateEmptyStateChangeRec(pm, 0, result)
	}
	for _, s := range input.States() {
		b := state.NewLazyStateBuilder(s)
		c.evaluateStateChangeRec(pm, 0, b, result)
	}
	return false
}

// GetTerms returns every term id this clause touches directly or
// through a referenced variable's own GetTerms, for termClauseLookup
// indexing.
func (c *Clause) GetTerms() []term.ID {
	seen := make(map[term.ID]bool)
	var out []term.ID
	add := func(id term.ID) {
		if id.IsTerm() && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	addVar := func(id term.ID) {
		if v, ok := c.lookupVariable(id); ok {
			for _, t := range v.GetTerms() {
				add(t)
			}
		}
	}
	scan := func(seq []term.ID) {
		for _, id := range seq {
			switch {
			case id.IsTerm():
				add(id)
			case id.IsVariable():
				addVar(id)
			}
		}
	}
	scan(c.logic)
	scan(c.stateLogic)
	switch {
	case c.stateProvider.IsTerm():
		add(c.stateProvider)
	case c.stateProvider.IsVariable():
		addVar(c.stateProvider)
	}
	return out
}

// --- state-logic recursion (with an established input builder) ---

func (c *Clause) evaluateStateChangeRec(pm PM, idx int, b *state.LazyStateBuilder, result *[]state.State) {
	if idx >= len(c.stateLogic) {
		*result = append(*result, b.GetState())
		return
	}
	id := c.stateLogic[idx]
	switch {
	case id.IsVariable():
		v, ok := c.lookupVariable(id)
		if !ok {
			panic(randoerrors.NewDomainError("Clause.EvaluateStateChange", "unknown variable id %s", id))
		}
		sm, ok := v.(StateModifierVariable)
		if !ok {
			panic(randoerrors.NewDomainError("Clause.EvaluateStateChange", "variable %s is not a StateModifier", v.Name()))
		}
		for _, nb := range sm.ModifyState(c.parent, pm, b) {
			c.evaluateStateChangeRec(pm, idx+1, nb, result)
		}
	case id == term.EQ || id == term.LT || id == term.GT:
		if idx+2 >= len(c.stateLogic) {
			panic(randoerrors.NewDomainError("Clause.EvaluateStateChange", "comparison at index %d missing operands", idx))
		}
		av, err := c.resolveInt(pm, c.stateLogic[idx+1], b)
		if err != nil {
			panic(err)
		}
		bv, err := c.resolveInt(pm, c.stateLogic[idx+2], b)
		if err != nil {
			panic(err)
		}
		if compare(id, av, bv) {
			c.evaluateStateChangeRec(pm, idx+3, b, result)
		}
	default:
		panic(randoerrors.NewDomainError("Clause.EvaluateStateChange", "unexpected id %s in state logic", id))
	}
}

func (c *Clause) evaluateStateDiscardRec(pm PM, idx int, b *state.LazyStateBuilder) bool {
	if idx >= len(c.stateLogic) {
		return true
	}
	id := c.stateLogic[idx]
	switch {
	case id.IsVariable():
		v, ok := c.lookupVariable(id)
		if !ok {
			panic(randoerrors.NewDomainError("Clause.EvaluateStateDiscard", "unknown variable id %s", id))
		}
		sm, ok := v.(StateModifierVariable)
		if !ok {
			panic(randoerrors.NewDomainError("Clause.EvaluateStateDiscard", "variable %s is not a StateModifier", v.Name()))
		}
		for _, nb := range sm.ModifyState(c.parent, pm, b) {
			if c.evaluateStateDiscardRec(pm, idx+1, nb) {
				return true
			}
		}
		return false
	case id == term.EQ || id == term.LT || id == term.GT:
		if idx+2 >= len(c.stateLogic) {
			panic(randoerrors.NewDomainError("Clause.EvaluateStateDiscard", "comparison at index %d missing operands", idx))
		}
		av, err := c.resolveInt(pm, c.stateLogic[idx+1], b)
		if err != nil {
			panic(err)
		}
		bv, err := c.resolveInt(pm, c.stateLogic[idx+2], b)
		if err != nil {
			panic(err)
		}
		if !compare(id, av, bv) {
			return false
		}
		return c.evaluateStateDiscardRec(pm, idx+3, b)
	default:
		panic(randoerrors.NewDomainError("Clause.EvaluateStateDiscard", "unexpected id %s in state logic", id))
	}
}

// --- state-logic recursion (empty/no-input branch) ---

func (c *Clause) evaluateEmptyStateChangeRec(pm PM, idx int, result *[]state.State) bool {
	if idx >= len(c.stateLogic) {
		return true
	}
	id := c.stateLogic[idx]
	if !id.IsVariable() {
		return false
	}
	v, ok := c.lookupVariable(id)
	if !ok {
		panic(randoerrors.NewDomainError("Clause.EvaluateStateChange", "unknown variable id %s", id))
	}
	sm, ok := v.(StateModifierVariable)
	if !ok {
		panic(randoerrors.NewDomainError("Clause.EvaluateStateChange", "variable %s is not a StateModifier", v.Name()))
	}
	branches := sm.ProvideState(c.parent, pm)
	if branches == nil {
		return false
	}
	if len(branches) == 0 {
		return true
	}
	for _, nb := range branches {
		c.evaluateStateChangeRec(pm, idx+1, nb, result)
	}
	return false
}

func (c *Clause) evaluateEmptyStateDiscardRec(pm PM, idx int) bool {
	if idx >= len(c.stateLogic) {
		return true
	}
	id := c.stateLogic[idx]
	if !id.IsVariable() {
		return false
	}
	v, ok := c.lookupVariable(id)
	if !ok {
		panic(randoerrors.NewDomainError("Clause.EvaluateStateDiscard", "unknown variable id %s", id))
	}
	sm, ok := v.(StateModifierVariable)
	if !ok {
		panic(randoerrors.NewDomainError("Clause.EvaluateStateDiscard", "variable %s is not a StateModifier", v.Name()))
	}
	branches := sm.ProvideState(c.parent, pm)
	if branches == nil {
		return false
	}
	if len(branches) == 0 {
		return true
	}
	for _, nb := range branches {
		if c.evaluateStateDiscardRec(pm, idx+1, nb) {
			return true
		}
	}
	return false
}

// resolveInt resolves a logic/state-logic operand to an int: a term via
// pm.Get, a LogicInt variable via GetValue(pm), or (only when access is
// non-nil, i.e. during state evaluation) a StateAccessVariable via
// GetValue(access).
func (c *Clause) resolveInt(pm PM, id term.ID, access *state.LazyStateBuilder) (int, error) {
	switch {
	case id.IsTerm():
		return pm.Get(id), nil
	case id.IsVariable():
		v, ok := c.lookupVariable(id)
		if !ok {
			return 0, randoerrors.NewDomainError("Clause.resolveInt", "unknown variable id %s", id)
		}
		switch vv := v.(type) {
		case LogicIntVariable:
			return vv.GetValue(pm), nil
		case StateAccessVariable:
			if access == nil {
				return 0, randoerrors.NewDomainError("Clause.resolveInt", "StateAccessVariable %s used outside state evaluation", v.Name())
			}
			return vv.GetValue(access), nil
		default:
			return 0, randoerrors.NewDomainError("Clause.resolveInt", "variable %s cannot resolve to an int", v.Name())
		}
	default:
		return 0, randoerrors.NewDomainError("Clause.resolveInt", "operator id %s used as operand", id)
	}
}

func compare(op term.ID, a, b int) bool {
	switch op {
	case term.EQ:
		return a == b
	case term.LT:
		return a < b
	case term.GT:
		return a > b
	default:
		panic(randoerrors.NewDomainError("Clause.compare", "unexpected comparison operator %s", op))
	}
}
