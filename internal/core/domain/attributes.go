package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Attribute is one key/value entry describing a variant.
// Value holds a string, bool or int64.
type Attribute struct {
	Name  string
	Value any
}

// AttributeContainer is an immutable set of attributes kept sorted by name.
// The zero value is the empty container.
type AttributeContainer struct {
	attrs []Attribute
}

// EmptyAttributes returns the empty container.
func EmptyAttributes() AttributeContainer {
	return AttributeContainer{}
}

// NewAttributeContainer creates a container from the given attributes.
// Later attributes replace earlier ones with the same name.
func NewAttributeContainer(attrs ...Attribute) AttributeContainer {
	c := AttributeContainer{}
	for _, a := range attrs {
		c = c.With(a.Name, a.Value)
	}
	return c
}

// With returns a copy of the container with name set to value.
// Platform integer types are widened to int64.
func (c AttributeContainer) With(name string, value any) AttributeContainer {
	value = normalizeAttributeValue(value)

	i, found := slices.BinarySearchFunc(c.attrs, name, func(a Attribute, n string) int {
		return strings.Compare(a.Name, n)
	})

	attrs := make([]Attribute, len(c.attrs), len(c.attrs)+1)
	copy(attrs, c.attrs)
	if found {
		attrs[i].Value = value
	} else {
		attrs = slices.Insert(attrs, i, Attribute{Name: name, Value: value})
	}
	return AttributeContainer{attrs: attrs}
}

// Get returns the value of the named attribute.
func (c AttributeContainer) Get(name string) (any, bool) {
	i, found := slices.BinarySearchFunc(c.attrs, name, func(a Attribute, n string) int {
		return strings.Compare(a.Name, n)
	})
	if !found {
		return nil, false
	}
	return c.attrs[i].Value, true
}

// Len returns the number of attributes.
func (c AttributeContainer) Len() int {
	return len(c.attrs)
}

// IsEmpty reports whether the container has no attributes.
func (c AttributeContainer) IsEmpty() bool {
	return len(c.attrs) == 0
}

// Attributes returns a copy of the attributes in name order.
func (c AttributeContainer) Attributes() []Attribute {
	if len(c.attrs) == 0 {
		return nil
	}
	attrs := make([]Attribute, len(c.attrs))
	copy(attrs, c.attrs)
	return attrs
}

// Map returns the attributes as a map.
func (c AttributeContainer) Map() map[string]any {
	m := make(map[string]any, len(c.attrs))
	for _, a := range c.attrs {
		m[a.Name] = a.Value
	}
	return m
}

// String returns {name=value, ...}.
func (c AttributeContainer) String() string {
	parts := make([]string, len(c.attrs))
	for i, a := range c.attrs {
		parts[i] = fmt.Sprintf("%s=%v", a.Name, a.Value)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func normalizeAttributeValue(v any) any {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	default:
		return v
	}
}
