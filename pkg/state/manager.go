package state

import (
	"fmt"
	"sort"

	"github.com/randocore/randocore/pkg/randoerrors"
)

// StateManagerBuilder accumulates field declarations before the schema is
// frozen into a StateManager. Fields cannot be renamed or retyped once
// built; defaults may be rewritten any number of times before Build.
type StateManagerBuilder struct {
	bools []BoolField
	ints  []IntField
	props map[string]string

	boolIdx map[string]int
	intIdx  map[string]int
}

// NewStateManagerBuilder creates an empty builder.
func NewStateManagerBuilder() *StateManagerBuilder {
	return &StateManagerBuilder{
		props:   make(map[string]string),
		boolIdx: make(map[string]int),
		intIdx:  make(map[string]int),
	}
}

// AddBool declares a boolean field and assigns it the next dense bool id.
// Panics if the name is already declared, since this is a build-time
// programmer error, not a runtime condition.
func (b *StateManagerBuilder) AddBool(name string, def bool, dir BoolDirection, tags ...string) *StateManagerBuilder {
	if _, exists := b.boolIdx[name]; exists {
		panic(fmt.Sprintf("state: bool field %q already declared", name))
	}
	id := len(b.bools)
	b.bools = append(b.bools, BoolField{ID: id, Name: name, Default: def, Direction: dir, Tags: append([]string(nil), tags...)})
	b.boolIdx[name] = id
	return b
}

// AddInt declares an integer field and assigns it the next dense int id.
func (b *StateManagerBuilder) AddInt(name string, def int, dir IntDirection, tags ...string) *StateManagerBuilder {
	if _, exists := b.intIdx[name]; exists {
		panic(fmt.Sprintf("state: int field %q already declared", name))
	}
	id := len(b.ints)
	b.ints = append(b.ints, IntField{ID: id, Name: name, Default: def, Direction: dir, Tags: append([]string(nil), tags...)})
	b.intIdx[name] = id
	return b
}

// SetDefault rewrites a previously declared field's default value. Valid
// only before Build; v must be bool or int matching the field's kind.
func (b *StateManagerBuilder) SetDefault(name string, v interface{}) *StateManagerBuilder {
	if id, ok := b.boolIdx[name]; ok {
		bv, ok := v.(bool)
		if !ok {
			panic(fmt.Sprintf("state: default for bool field %q must be bool", name))
		}
		b.bools[id].Default = bv
		return b
	}
	if id, ok := b.intIdx[name]; ok {
		iv, ok := v.(int)
		if !ok {
			panic(fmt.Sprintf("state: default for int field %q must be int", name))
		}
		b.ints[id].Default = iv
		return b
	}
	panic(fmt.Sprintf("state: unknown field %q", name))
}

// SetProperty records an arbitrary named diagnostic/config property,
// independent of any single field.
func (b *StateManagerBuilder) SetProperty(key, value string) *StateManagerBuilder {
	b.props[key] = value
	return b
}

// Build freezes the declared fields into an immutable StateManager.
func (b *StateManagerBuilder) Build() *StateManager {
	sm := &StateManager{
		bools:   append([]BoolField(nil), b.bools...),
		ints:    append([]IntField(nil), b.ints...),
		boolIdx: make(map[string]int, len(b.bools)),
		intIdx:  make(map[string]int, len(b.ints)),
		props:   make(map[string]string, len(b.props)),
		tagIdx:  make(map[string][]FieldRef),
	}
	for k, v := range b.props {
		sm.props[k] = v
	}
	for _, f := range sm.bools {
		sm.boolIdx[f.Name] = f.ID
		for _, tg := range f.Tags {
			sm.tagIdx[tg] = append(sm.tagIdx[tg], FieldRef{Kind: FieldKindBool, ID: f.ID, Name: f.Name})
		}
	}
	for _, f := range sm.ints {
		sm.intIdx[f.Name] = f.ID
		for _, tg := range f.Tags {
			sm.tagIdx[tg] = append(sm.tagIdx[tg], FieldRef{Kind: FieldKindInt, ID: f.ID, Name: f.Name})
		}
	}
	for tg, refs := range sm.tagIdx {
		sorted := append([]FieldRef(nil), refs...)
		sort.Slice(sorted, func(i, j int) bool {
			if sorted[i].Kind != sorted[j].Kind {
				return sorted[i].Kind < sorted[j].Kind
			}
			return sorted[i].ID < sorted[j].ID
		})
		sm.tagIdx[tg] = sorted
	}
	return sm
}

// StateManager is the immutable, once-frozen schema registry for state
// fields. Built once via StateManagerBuilder.Build and thereafter
// consulted read-only for the lifetime of however many runs share it.
type StateManager struct {
	bools []BoolField
	ints  []IntField

	boolIdx map[string]int
	intIdx  map[string]int
	props   map[string]string
	tagIdx  map[string][]FieldRef
}

// NumBools returns the number of declared boolean fields.
func (sm *StateManager) NumBools() int { return len(sm.bools) }

// NumInts returns the number of declared integer fields.
func (sm *StateManager) NumInts() int { return len(sm.ints) }

// GetBool looks up a boolean field by name, returning ok=false if unknown.
func (sm *StateManager) GetBool(name string) (BoolField, bool) {
	id, ok := sm.boolIdx[name]
	if !ok {
		return BoolField{}, false
	}
	return sm.bools[id], true
}

// GetBoolStrict looks up a boolean field by name, returning a DomainError
// if unknown.
func (sm *StateManager) GetBoolStrict(name string) (BoolField, error) {
	f, ok := sm.GetBool(name)
	if !ok {
		return BoolField{}, randoerrors.NewDomainError("StateManager.GetBoolStrict", "unknown bool field %q", name)
	}
	return f, nil
}

// GetInt looks up an integer field by name, returning ok=false if unknown.
func (sm *StateManager) GetInt(name string) (IntField, bool) {
	id, ok := sm.intIdx[name]
	if !ok {
		return IntField{}, false
	}
	return sm.ints[id], true
}

// GetIntStrict looks up an integer field by name, returning a
// DomainError if unknown.
func (sm *StateManager) GetIntStrict(name string) (IntField, error) {
	f, ok := sm.GetInt(name)
	if !ok {
		return IntField{}, randoerrors.NewDomainError("StateManager.GetIntStrict", "unknown int field %q", name)
	}
	return f, nil
}

// GetListByTag returns every bool and int field tagged with tag, bool
// fields first, each group ordered by ascending field id.
func (sm *StateManager) GetListByTag(tag string) []FieldRef {
	return append([]FieldRef(nil), sm.tagIdx[tag]...)
}

// TryGetProperty reads an arbitrary named property set on the builder.
func (sm *StateManager) TryGetProperty(key string) (string, bool) {
	v, ok := sm.props[key]
	return v, ok
}

// StartState materializes the State in which every field holds its
// declared default.
func (sm *StateManager) StartState() State {
	bools := make([]bool, len(sm.bools))
	for i, f := range sm.bools {
		bools[i] = f.Default
	}
	ints := make([]int, len(sm.ints))
	for i, f := range sm.ints {
		ints[i] = f.Default
	}
	return State{mgr: sm, bools: bools, ints: ints}
}

// IndeterminateState returns the dominance-bottom State used to build
// the canonical Empty StateUnion: a state that declares no particular
// resource configuration and is dominated by every concrete State of the
// same manager.
func (sm *StateManager) IndeterminateState() State {
	return State{mgr: sm, indeterminate: true}
}

// PrettyPrint renders the schema for diagnostics. The output format is
// not stable API and must not be parsed.
func (sm *StateManager) PrettyPrint() string {
	out := "StateManager{\n"
	for _, f := range sm.bools {
		out += fmt.Sprintf("  bool[%d] %s = %v (tags=%v)\n", f.ID, f.Name, f.Default, f.Tags)
	}
	for _, f := range sm.ints {
		out += fmt.Sprintf("  int[%d] %s = %v (tags=%v)\n", f.ID, f.Name, f.Default, f.Tags)
	}
	out += "}"
	return out
}
