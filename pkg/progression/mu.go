package progression

import "github.com/randocore/randocore/pkg/term"

// MainUpdater is an event-driven propagator: each registered Entry
// watches one or more terms and fires when any of them change. Hook
// links a MainUpdater to a ProgressionManager, performs the initial
// sweep, and drives to a fixed point; subsequent changes from pm.Add
// drain naturally through the same queue.
type MainUpdater struct {
	entries []Entry
	index   map[term.ID][]Entry
	pm      *ProgressionManager
	hooked  bool
}

// NewMainUpdater creates an empty, unhooked MainUpdater.
func NewMainUpdater() *MainUpdater {
	return &MainUpdater{}
}

// AddEntry registers e. Must be called before Hook.
func (mu *MainUpdater) AddEntry(e Entry) {
	if mu.hooked {
		panic("progression: AddEntry called after Hook")
	}
	mu.entries = append(mu.entries, e)
}

// Hook links mu to pm, builds the watch index, fires every entry once
// per watched term (the initial sweep), and drains to a fixed point.
func (mu *MainUpdater) Hook(pm *ProgressionManager) {
	mu.pm = pm
	pm.mu = mu
	mu.hooked = true

	mu.index = make(map[term.ID][]Entry, len(mu.entries))
	for _, e := range mu.entries {
		for _, t := range e.WatchedTerms() {
			mu.index[t] = append(mu.index[t], e)
		}
	}

	mu.sweep()
	mu.drainToFixedPoint()
}

// sweep fires every entry once against each of its watched terms,
// establishing the state Hook (and Reset) settle to before any pm.Add.
func (mu *MainUpdater) sweep() {
	for _, e := range mu.entries {
		for _, t := range e.WatchedTerms() {
			e.Fire(mu.pm, t)
		}
	}
}

// drainToFixedPoint repeatedly fires entries watching whatever terms
// changed in the last pass, until a pass produces no further change.
// Monotonicity (obtained counts only grow, state unions only strictly
// improve) guarantees this terminates.
func (mu *MainUpdater) drainToFixedPoint() {
	for len(mu.pm.pending) > 0 {
		batch := mu.pm.pending
		mu.pm.pending = nil
		for _, t := range batch {
			for _, e := range mu.index[t] {
				e.Fire(mu.pm, t)
			}
		}
	}
}

// resetAndResweep resets every entry's one-shot internal state (where
// applicable) and replays the initial sweep against pm, which the
// caller (ProgressionManager.Reset) has already zeroed.
func (mu *MainUpdater) resetAndResweep(pm *ProgressionManager) {
	for _, e := range mu.entries {
		if r, ok := e.(resettableEntry); ok {
			r.resetEntry()
		}
	}
	mu.sweep()
	mu.drainToFixedPoint()
}
