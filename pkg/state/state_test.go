package state

import "testing"

func testManager() *StateManager {
	return NewStateManagerBuilder().
		AddBool("KEY", false, HigherIsBetterBool, "item").
		AddBool("HASRING", true, LowerIsBetterBool, "consumable").
		AddInt("RUPEES", 0, HigherIsBetterInt, "currency").
		Build()
}

func TestStartStateAppliesDefaults(t *testing.T) {
	sm := testManager()
	s := sm.StartState()

	keyField, _ := sm.GetBool("KEY")
	ringField, _ := sm.GetBool("HASRING")
	rupeeField, _ := sm.GetInt("RUPEES")

	if got := s.Bool(keyField.ID); got != false {
		t.Errorf("KEY default = %v, want false", got)
	}
	if got := s.Bool(ringField.ID); got != true {
		t.Errorf("HASRING default = %v, want true", got)
	}
	if got := s.Int(rupeeField.ID); got != 0 {
		t.Errorf("RUPEES default = %v, want 0", got)
	}
}

func TestGetBoolStrictUnknownField(t *testing.T) {
	sm := testManager()
	if _, err := sm.GetBoolStrict("NOPE"); err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
}

func TestDominanceRespectsDirection(t *testing.T) {
	sm := testManager()
	keyField, _ := sm.GetBool("KEY")     // higher is better: true dominates false
	ringField, _ := sm.GetBool("HASRING") // lower is better: false dominates true

	base := sm.StartState()
	haveKey := base.With(keyField.ID, true)
	if !base.LessEq(haveKey) {
		t.Error("expected !KEY <= KEY under HigherIsBetterBool")
	}
	if haveKey.LessEq(base) {
		t.Error("expected KEY not <= !KEY under HigherIsBetterBool")
	}

	usedRing := base.With(ringField.ID, false)
	if !base.LessEq(usedRing) {
		t.Error("expected HASRING=true <= HASRING=false under LowerIsBetterBool")
	}
}

func TestIndeterminateIsBottom(t *testing.T) {
	sm := testManager()
	bottom := sm.IndeterminateState()
	concrete := sm.StartState()

	if !bottom.LessEq(concrete) {
		t.Error("indeterminate state must be <= every concrete state")
	}
	if concrete.LessEq(bottom) {
		t.Error("concrete state must not be <= indeterminate state")
	}
	if !bottom.Equal(sm.IndeterminateState()) {
		t.Error("two indeterminate states must be equal")
	}
}

func TestStateUnionReducesToAntichain(t *testing.T) {
	sm := testManager()
	keyField, _ := sm.GetBool("KEY")

	base := sm.StartState()
	withKey := base.With(keyField.ID, true)

	u := NewStateUnion([]State{base, withKey})
	if u.Len() != 1 {
		t.Fatalf("expected dominated element discarded, got %d elements", u.Len())
	}
	if !u.States()[0].Equal(withKey) {
		t.Error("expected surviving element to be the dominant one")
	}
}

func TestStateUnionIncomparableKept(t *testing.T) {
	sm := NewStateManagerBuilder().
		AddBool("A", false, HigherIsBetterBool).
		AddBool("B", false, HigherIsBetterBool).
		Build()
	aField, _ := sm.GetBool("A")
	bField, _ := sm.GetBool("B")

	base := sm.StartState()
	onlyA := base.With(aField.ID, true)
	onlyB := base.With(bField.ID, true)

	u := NewStateUnion([]State{onlyA, onlyB})
	if u.Len() != 2 {
		t.Fatalf("expected incomparable states both kept, got %d", u.Len())
	}

	both := onlyA.With(bField.ID, true)
	u2 := Union(u, NewStateUnion([]State{both}))
	if u2.Len() != 1 || !u2.States()[0].Equal(both) {
		t.Errorf("expected union with strictly dominant state to reduce to it alone, got %d elements", u2.Len())
	}
}

func TestTryUnionBothEmptyFails(t *testing.T) {
	if _, ok := TryUnion(None(), None()); ok {
		t.Error("TryUnion(None, None) should report false")
	}
}

func TestTryUnionNoImprovementReturnsCurrent(t *testing.T) {
	sm := testManager()
	base := sm.StartState()
	current := NewStateUnion([]State{base})

	result, ok := TryUnion(current, NewStateUnion([]State{base}))
	if !ok {
		t.Fatal("expected ok=true")
	}
	if result.Len() != 1 || !result.States()[0].Equal(base) {
		t.Error("expected unchanged union returned")
	}
}

func TestLazyStateBuilderCopyOnWrite(t *testing.T) {
	sm := testManager()
	keyField, _ := sm.GetBool("KEY")
	base := sm.StartState()

	b := NewLazyStateBuilder(base)
	b.SetBool(keyField.ID, true)

	if base.Bool(keyField.ID) {
		t.Fatal("mutating the builder must not mutate the shared base State")
	}
	if !b.GetBool(keyField.ID) {
		t.Error("builder should reflect the write")
	}

	out := b.GetState()
	if !out.Bool(keyField.ID) {
		t.Error("materialized state should reflect the write")
	}
}

func TestLazyStateBuilderCloneIsIndependent(t *testing.T) {
	sm := testManager()
	keyField, _ := sm.GetBool("KEY")
	rupeeField, _ := sm.GetInt("RUPEES")

	b := NewLazyStateBuilder(sm.StartState())
	b.SetInt(rupeeField.ID, 5)

	clone := b.Clone()
	clone.SetBool(keyField.ID, true)
	clone.AddInt(rupeeField.ID, 10)

	if b.GetBool(keyField.ID) {
		t.Error("original builder must not see clone's writes")
	}
	if got := b.GetInt(rupeeField.ID); got != 5 {
		t.Errorf("original builder's int field changed to %d, want 5", got)
	}
	if got := clone.GetInt(rupeeField.ID); got != 15 {
		t.Errorf("clone int field = %d, want 15", got)
	}
}
