package sphere

// NameCouple pairs items by name across a stage's groups (e.g. a small
// key and the door it opens back): once one side settles Permanent, the
// other is discarded instead of being proposed again. Register must be
// called with every item a NameCouple might be asked about — normally
// once per group build, right after its items are constructed — before
// Dual is used against it.
type NameCouple struct {
	pairs    map[string]string
	registry map[string]Item
}

// NewNameCouple builds a NameCouple from a set of name pairs. Each pair
// is recorded in both directions, so Dual resolves correctly from
// either side of the pairing.
func NewNameCouple(pairs map[string]string) *NameCouple {
	nc := &NameCouple{
		pairs:    make(map[string]string, len(pairs)*2),
		registry: make(map[string]Item, len(pairs)*2),
	}
	for a, b := range pairs {
		nc.pairs[a] = b
		nc.pairs[b] = a
	}
	return nc
}

// Register records it as the current live Item for its name, so a later
// Dual call against its paired name resolves to this instance.
func (c *NameCouple) Register(it Item) {
	c.registry[it.Name()] = it
}

// Dual implements Couple by a name lookup through the live registry.
func (c *NameCouple) Dual(it Item) (Item, bool) {
	dualName, ok := c.pairs[it.Name()]
	if !ok {
		return nil, false
	}
	dual, ok := c.registry[dualName]
	return dual, ok
}

// Registrar is implemented by Couple values that need their live Item
// instances refreshed before Dual can resolve anything. NameCouple is
// the only concrete implementation; callers that build fresh Items per
// pass (e.g. the Randomizer) should Register each one through this
// interface as it's built.
type Registrar interface {
	Register(Item)
}
