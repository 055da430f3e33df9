package sgf

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Property is a key with its value.
type Property struct {
	Key   *Key
	Value Value
}

// NewProperty builds a typed property from raw bracketed values.
//
// If the values cannot be read as the key's type, the error is returned together
// with an untyped property holding the values as text, so that callers can record
// the problem and carry on.
func NewProperty(code string, raws []string) (Property, error) {
	k := LookupKey(code)
	v, err := ParseValue(k, raws)
	if err != nil {
		return Property{Key: k.untyped(), Value: textValue(raws)}, err
	}
	return Property{Key: k, Value: v}, nil
}

// Write writes the property as KEY[value][value]...
func (p Property) Write(w io.Writer) error {
	_, err := io.WriteString(w, p.String())
	return errors.WithStack(err)
}

func (p Property) String() string {
	s := p.Key.Code
	for _, v := range p.Value.encode() {
		s += "[" + v + "]"
	}
	return s
}

// Clone returns a deep copy of the property.
func (p Property) Clone() Property { return Property{Key: p.Key, Value: p.Value.Clone()} }

// PropertySet holds at most one property per key. The zero value is ready to use.
type PropertySet struct {
	props map[string]Property
}

// Len returns the number of properties.
func (ps *PropertySet) Len() int { return len(ps.props) }

// Has returns true if the set holds the key.
func (ps *PropertySet) Has(k *Key) bool {
	_, ok := ps.props[k.Code]
	return ok
}

// Get returns the property for the key.
func (ps *PropertySet) Get(k *Key) (Property, bool) {
	p, ok := ps.props[k.Code]
	return p, ok
}

// Value returns the value for the key, or nil.
func (ps *PropertySet) Value(k *Key) Value {
	if p, ok := ps.props[k.Code]; ok {
		return p.Value
	}
	return nil
}

// Set sets a property, replacing any existing value for the key.
func (ps *PropertySet) Set(p Property) {
	if ps.props == nil {
		ps.props = make(map[string]Property)
	}
	ps.props[p.Key.Code] = p
}

// Add adds a property, merging it with an existing value for the key. Point sets
// are joined. Other values are collected into a ValueList.
func (ps *PropertySet) Add(p Property) {
	have, ok := ps.props[p.Key.Code]
	if !ok {
		ps.Set(p)
		return
	}
	if a, ok := have.Value.(*PointSet); ok {
		if b, ok := p.Value.(*PointSet); ok {
			union := a.clone()
			union.Union(b)
			ps.Set(Property{Key: have.Key, Value: union})
			return
		}
	}
	var list ValueList
	switch v := have.Value.(type) {
	case ValueList:
		list = append(list, v...)
	default:
		list = append(list, v)
	}
	switch v := p.Value.(type) {
	case ValueList:
		list = append(list, v...)
	default:
		list = append(list, v)
	}
	ps.Set(Property{Key: have.Key, Value: list})
}

// Remove removes the key. It returns false if the key was not there.
func (ps *PropertySet) Remove(k *Key) bool {
	if _, ok := ps.props[k.Code]; !ok {
		return false
	}
	delete(ps.props, k.Code)
	return true
}

// Keys returns the keys in writing order.
func (ps *PropertySet) Keys() []*Key {
	retVal := make([]*Key, 0, len(ps.props))
	for _, p := range ps.props {
		retVal = append(retVal, p.Key)
	}
	sortKeys(retVal)
	return retVal
}

// Properties returns the properties in writing order.
func (ps *PropertySet) Properties() []Property {
	keys := ps.Keys()
	retVal := make([]Property, len(keys))
	for i, k := range keys {
		retVal[i] = ps.props[k.Code]
	}
	return retVal
}

// Each calls fn on every property in writing order until fn returns false.
func (ps *PropertySet) Each(fn func(Property) bool) {
	for _, p := range ps.Properties() {
		if !fn(p) {
			return
		}
	}
}

// Clone returns a deep copy of the set.
func (ps *PropertySet) Clone() *PropertySet {
	retVal := &PropertySet{}
	if len(ps.props) == 0 {
		return retVal
	}
	retVal.props = make(map[string]Property, len(ps.props))
	for code, p := range ps.props {
		retVal.props[code] = p.Clone()
	}
	return retVal
}

// Clear removes every property.
func (ps *PropertySet) Clear() { ps.props = nil }

// Write writes the properties in writing order.
func (ps *PropertySet) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, p := range ps.Properties() {
		if err := p.Write(bw); err != nil {
			return err
		}
	}
	return errors.WithStack(bw.Flush())
}

func (ps *PropertySet) Format(s fmt.State, c rune) {
	for _, p := range ps.Properties() {
		fmt.Fprint(s, p.String())
	}
}
