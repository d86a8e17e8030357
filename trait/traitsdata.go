// Package trait provides the trait-based data payload exchanged through
// the API. A trait is a named aspect of an entity or locale, identified
// by a string id and carrying typed properties. Data holds a set of
// traits with their property values and is the universal payload of
// resolve, publish and policy queries.
package trait

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

// Set is a set of trait ids.
type Set = mapset.Set[string]

// NewSet creates a Set holding the given trait ids.
func NewSet(ids ...string) Set {
	return mapset.NewSet(ids...)
}

// Data is a mapping from trait id to that trait's property values.
// Property values are restricted to string, int64, float64 and bool.
// A trait present with no properties is still held (imbued).
//
// Data returned from the middleware is never mutated by it afterwards;
// callers own what they receive.
type Data struct {
	traits map[string]map[string]any
}

// NewData creates an empty Data.
func NewData() *Data {
	return &Data{traits: map[string]map[string]any{}}
}

// NewDataWithTraitSet creates a Data holding each trait of the given
// set, with no properties.
func NewDataWithTraitSet(ts Set) *Data {
	d := NewData()
	if ts != nil {
		d.AddTraits(ts)
	}
	return d
}

// TraitSet returns the set of held trait ids.
func (d *Data) TraitSet() Set {
	ids := make([]string, 0, len(d.traits))
	for id := range d.traits {
		ids = append(ids, id)
	}
	return mapset.NewSet(ids...)
}

// HasTrait reports whether the trait is held.
func (d *Data) HasTrait(id string) bool {
	_, ok := d.traits[id]
	return ok
}

// AddTrait adds the trait with no properties. Adding a trait that is
// already held leaves its properties untouched.
func (d *Data) AddTrait(id string) {
	if _, ok := d.traits[id]; !ok {
		d.traits[id] = map[string]any{}
	}
}

// AddTraits adds each trait of the set, leaving existing traits
// untouched.
func (d *Data) AddTraits(ts Set) {
	ts.Each(func(id string) bool {
		d.AddTrait(id)
		return false
	})
}

// SetTraitProperty sets a property of the trait, adding the trait if it
// is not yet held. Accepted value types are string, int64 (plain ints
// are widened), float64 and bool; anything else is rejected.
func (d *Data) SetTraitProperty(id, key string, value any) error {
	switch v := value.(type) {
	case string, int64, float64, bool:
	case int:
		value = int64(v)
	default:
		return fmt.Errorf("invalid property value type %T for '%s' of trait '%s'", value, key, id)
	}
	d.AddTrait(id)
	d.traits[id][key] = value
	return nil
}

// TraitProperty returns the property value and whether it is set. The
// lookup misses both when the trait is not held and when the trait has
// no such property.
func (d *Data) TraitProperty(id, key string) (any, bool) {
	props, ok := d.traits[id]
	if !ok {
		return nil, false
	}
	value, ok := props[key]
	return value, ok
}

// TraitPropertyKeys returns the property keys set for the trait.
func (d *Data) TraitPropertyKeys(id string) Set {
	keys := mapset.NewSet[string]()
	for key := range d.traits[id] {
		keys.Add(key)
	}
	return keys
}

// Copy returns a deep copy. Mutating the copy never affects the
// original.
func (d *Data) Copy() *Data {
	out := NewData()
	for id, props := range d.traits {
		copied := make(map[string]any, len(props))
		for key, value := range props {
			copied[key] = value
		}
		out.traits[id] = copied
	}
	return out
}

// Equal reports structural equality over the trait set and all property
// values.
func (d *Data) Equal(other *Data) bool {
	if other == nil {
		return false
	}
	if len(d.traits) != len(other.traits) {
		return false
	}
	for id, props := range d.traits {
		otherProps, ok := other.traits[id]
		if !ok || len(props) != len(otherProps) {
			return false
		}
		for key, value := range props {
			otherValue, ok := otherProps[key]
			if !ok || value != otherValue {
				return false
			}
		}
	}
	return true
}
