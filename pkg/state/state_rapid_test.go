package state

import (
	"testing"

	"pgregory.net/rapid"
)

// randomManager builds a StateManager with a random number of bool and
// int fields, each with a randomly chosen dominance direction.
func randomManager(t *rapid.T) *StateManager {
	nBools := rapid.IntRange(0, 5).Draw(t, "nBools")
	nInts := rapid.IntRange(0, 5).Draw(t, "nInts")

	b := NewStateManagerBuilder()
	for i := 0; i < nBools; i++ {
		dir := HigherIsBetterBool
		if rapid.Bool().Draw(t, "boolDir") {
			dir = LowerIsBetterBool
		}
		b.AddBool(rapid.StringMatching(`[A-Z][A-Z0-9]{0,4}`).Draw(t, "boolName")+string(rune('a'+i)), rapid.Bool().Draw(t, "boolDefault"), dir)
	}
	for i := 0; i < nInts; i++ {
		dir := HigherIsBetterInt
		if rapid.Bool().Draw(t, "intDir") {
			dir = LowerIsBetterInt
		}
		b.AddInt(rapid.StringMatching(`[A-Z][A-Z0-9]{0,4}`).Draw(t, "intName")+string(rune('a'+i)), rapid.IntRange(-5, 5).Draw(t, "intDefault"), dir)
	}
	return b.Build()
}

func randomState(t *rapid.T, sm *StateManager) State {
	s := sm.StartState()
	for _, f := range sm.bools {
		s = s.With(f.ID, rapid.Bool().Draw(t, "bv"))
	}
	for _, f := range sm.ints {
		s = s.WithInt(f.ID, rapid.IntRange(-10, 10).Draw(t, "iv"))
	}
	return s
}

// TestAntichainInvariant asserts the §8 universal property for
// NewStateUnion: the StateUnion it returns has no element dominating
// another. TestUnionIsAntichain checks the same for Union.
func TestAntichainInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sm := randomManager(t)
		n := rapid.IntRange(0, 6).Draw(t, "n")
		states := make([]State, n)
		for i := range states {
			states[i] = randomState(t, sm)
		}

		u := NewStateUnion(states)
		assertAntichain(t, u)
	})
}

func TestUnionIsAntichain(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sm := randomManager(t)
		na := rapid.IntRange(0, 4).Draw(t, "na")
		nb := rapid.IntRange(0, 4).Draw(t, "nb")
		as := make([]State, na)
		for i := range as {
			as[i] = randomState(t, sm)
		}
		bs := make([]State, nb)
		for i := range bs {
			bs[i] = randomState(t, sm)
		}

		u := Union(NewStateUnion(as), NewStateUnion(bs))
		assertAntichain(t, u)
	})
}

func assertAntichain(t *rapid.T, u StateUnion) {
	t.Helper()
	states := u.States()
	for i := range states {
		for j := range states {
			if i == j {
				continue
			}
			if states[i].LessEq(states[j]) && !states[j].LessEq(states[i]) {
				t.Fatalf("element %d is strictly dominated by element %d", i, j)
			}
		}
	}
}

// TestDominanceIsReflexiveAndTransitive checks the partial order laws
// the evaluator's monotonicity argument depends on.
func TestDominanceIsReflexiveAndTransitive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sm := randomManager(t)
		a := randomState(t, sm)
		b := randomState(t, sm)
		c := randomState(t, sm)

		if !a.LessEq(a) {
			t.Fatal("LessEq must be reflexive")
		}
		if a.LessEq(b) && b.LessEq(c) && !a.LessEq(c) {
			t.Fatal("LessEq must be transitive")
		}
	})
}
