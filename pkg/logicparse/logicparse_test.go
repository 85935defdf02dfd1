package logicparse

import (
	"testing"

	"github.com/randocore/randocore/pkg/logic"
	"github.com/randocore/randocore/pkg/progression"
	"github.com/randocore/randocore/pkg/state"
	"github.com/randocore/randocore/pkg/term"
)

func newTestBuilder() *logic.LogicManagerBuilder {
	sm := state.NewStateManagerBuilder().Build()
	b := logic.NewLogicManagerBuilder(sm)
	b.SetCompiler(Compiler{})
	return b
}

func grant(pm *progression.ProgressionManager, name string, id term.ID) {
	pm.Add(&progression.IncrItem{ItemName: name, Effects: map[term.ID]int{id: 1}})
}

func TestCompileAnd(t *testing.T) {
	b := newTestBuilder()
	key := b.AddTerm("KEY")
	door := b.AddTerm("DOOR")
	lm := b.Build()

	def, err := lm.CreateDNFLogicDef("KEY & DOOR")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	pm := progression.NewProgressionManager(lm)
	if def.EvaluateLogic(pm) {
		t.Fatal("expected false before either term is granted")
	}
	grant(pm, "key", key)
	if def.EvaluateLogic(pm) {
		t.Fatal("expected false with only one of two terms granted")
	}
	grant(pm, "door", door)
	if !def.EvaluateLogic(pm) {
		t.Fatal("expected true once both terms are granted")
	}
}

func TestCompileOrAndParentheses(t *testing.T) {
	b := newTestBuilder()
	a := b.AddTerm("A")
	bTerm := b.AddTerm("B")
	c := b.AddTerm("C")
	lm := b.Build()

	def, err := lm.CreateDNFLogicDef("A & (B | C)")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	pm := progression.NewProgressionManager(lm)
	grant(pm, "a", a)
	if def.EvaluateLogic(pm) {
		t.Fatal("expected false: A alone is not enough")
	}
	grant(pm, "c", c)
	if !def.EvaluateLogic(pm) {
		t.Fatal("expected true: A & C should satisfy A & (B | C)")
	}
	_ = bTerm
}

func TestCompileNegatedComparison(t *testing.T) {
	b := newTestBuilder()
	counter := b.AddTerm("COUNTER")
	RegisterLiterals(b, 3)
	lm := b.Build()

	// !(COUNTER < 3) expands to (COUNTER == 3) | (COUNTER > 3), i.e.
	// COUNTER >= 3.
	def, err := lm.CreateDNFLogicDef("!(COUNTER < 3)")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	pm := progression.NewProgressionManager(lm)
	for i := 0; i < 2; i++ {
		grant(pm, "tick", counter)
	}
	if def.EvaluateLogic(pm) {
		t.Fatal("expected false: COUNTER is 2, less than 3")
	}
	grant(pm, "tick3", counter)
	if !def.EvaluateLogic(pm) {
		t.Fatal("expected true: COUNTER is now 3")
	}
}

func TestCompileUnregisteredLiteralFails(t *testing.T) {
	b := newTestBuilder()
	b.AddTerm("COUNTER")
	lm := b.Build()

	if _, err := lm.CreateDNFLogicDef("COUNTER > 3"); err == nil {
		t.Fatal("expected error: literal 3 was never registered")
	}
}

func TestCompileNegatedIdentifierFails(t *testing.T) {
	b := newTestBuilder()
	b.AddTerm("KEY")
	lm := b.Build()

	if _, err := lm.CreateDNFLogicDef("!KEY"); err == nil {
		t.Fatal("expected error: a bare identifier cannot be negated")
	}
}

func TestCompileUnknownIdentifierFails(t *testing.T) {
	b := newTestBuilder()
	lm := b.Build()

	if _, err := lm.CreateDNFLogicDef("GHOST"); err == nil {
		t.Fatal("expected error: GHOST was never declared")
	}
}
