package logic

// VariableResolver resolves a source-level name to a Variable. Chains
// compose: a resolver that misses defers to its Inner, terminating in a
// nil Inner that always misses.
type VariableResolver interface {
	TryMatch(name string) (Variable, bool)
}

type mapResolver struct {
	entries map[string]Variable
	inner   VariableResolver
}

// NewMapResolver builds a VariableResolver backed by a name->Variable
// map, falling back to inner (which may be nil) on miss.
func NewMapResolver(entries map[string]Variable, inner VariableResolver) VariableResolver {
	return &mapResolver{entries: entries, inner: inner}
}

func (r *mapResolver) TryMatch(name string) (Variable, bool) {
	if v, ok := r.entries[name]; ok {
		return v, true
	}
	if r.inner != nil {
		return r.inner.TryMatch(name)
	}
	return nil, false
}
