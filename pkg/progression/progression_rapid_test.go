package progression

import (
	"testing"

	"github.com/randocore/randocore/pkg/logic"
	"github.com/randocore/randocore/pkg/state"
	"github.com/randocore/randocore/pkg/term"
	"pgregory.net/rapid"
)

// TestIncrMonotonicity checks the §8 universal property against the real
// PM rather than a fake: once a term is obtained, a further sequence of
// random Incr calls can never make it unobtained again.
func TestIncrMonotonicity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lmb, _ := newTestLM()
		n := rapid.IntRange(1, 6).Draw(t, "nTerms")
		ids := make([]term.ID, n)
		for i := 0; i < n; i++ {
			ids[i] = lmb.AddTerm(rapid.StringMatching(`t[0-9]{1,4}`).Draw(t, "name") + string(rune('a'+i)))
		}
		lm := lmb.Build()
		pm := NewProgressionManager(lm)

		steps := rapid.IntRange(1, 20).Draw(t, "steps")
		seenHas := make(map[term.ID]bool)
		for s := 0; s < steps; s++ {
			id := ids[rapid.IntRange(0, n-1).Draw(t, "which")]
			delta := rapid.IntRange(0, 3).Draw(t, "delta")
			pm.Incr(id, delta)
			for _, other := range ids {
				if seenHas[other] && !pm.Has(other) {
					t.Fatalf("term %v lost Has() after previously holding it", other)
				}
				if pm.Has(other) {
					seenHas[other] = true
				}
			}
		}
	})
}

// TestGiveStateMonotonicity checks that GiveState only ever replaces a
// term's recorded union with a strict dominance improvement — it never
// discards states already recorded.
func TestGiveStateMonotonicity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sm := state.NewStateManagerBuilder().
			AddInt("A", 0, state.HigherIsBetterInt).
			AddInt("B", 0, state.HigherIsBetterInt).
			Build()
		lmb := logic.NewLogicManagerBuilder(sm)
		target := lmb.AddTerm("TARGET")
		lm := lmb.Build()
		pm := NewProgressionManager(lm, target)

		steps := rapid.IntRange(1, 12).Draw(t, "steps")
		for s := 0; s < steps; s++ {
			a := rapid.IntRange(0, 5).Draw(t, "a")
			b := rapid.IntRange(0, 5).Draw(t, "b")
			st := sm.StartState().WithInt(0, a)
			st = st.WithInt(1, b)

			before := pm.GetState(target)
			pm.GiveState(target, state.NewStateUnion([]state.State{st}))
			after := pm.GetState(target)

			if after == nil {
				t.Fatal("GetState is nil after a GiveState call")
			}
			if before != nil {
				for _, bs := range before.States() {
					dominated := false
					for _, as := range after.States() {
						if bs.LessEq(as) {
							dominated = true
							break
						}
					}
					if !dominated {
						t.Fatalf("a previously recorded state was lost: %v not dominated by any of %v", bs, after.States())
					}
				}
			}
		}
	})
}
