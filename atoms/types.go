// Package atoms resolves responsive style requests into precomputed atomic
// class names.
//
// A build step enumerates every property, value and condition combination
// and emits a Config describing the class generated for each of them. This
// package merges one or more of those configurations and turns a bag of
// property values into the ordered list of class names to apply:
//
//	a, err := atoms.New(layout, colors)
//	classes, err := a.Resolve(map[string]any{
//		"display":  atoms.Responsive{"block", nil, "flex"},
//		"paddingY": "small",
//		"color":    "gray-500",
//	})
//
// Resolution never generates CSS and never accepts a value the
// configuration does not enumerate.
package atoms

import "slices"

// Conditions is the condition set of a configuration: named contexts
// (breakpoints, pseudo states) a value may be scoped to.
type Conditions struct {
	// Names lists every condition in declaration order.
	Names []string
	// Default is the condition a scalar value is assigned to. Optional.
	Default string
	// ResponsiveArray is the ordered subset of Names a positional list
	// value is aligned to. Optional.
	ResponsiveArray []string
}

// Has reports whether name is a declared condition.
func (c *Conditions) Has(name string) bool {
	return c != nil && slices.Contains(c.Names, name)
}

// Equal reports whether two condition sets are structurally identical.
// A nil set only equals another nil set.
func (c *Conditions) Equal(o *Conditions) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.Default == o.Default &&
		slices.Equal(c.Names, o.Names) &&
		slices.Equal(c.ResponsiveArray, o.ResponsiveArray)
}

func (c *Conditions) clone() *Conditions {
	if c == nil {
		return nil
	}
	return &Conditions{
		Names:           slices.Clone(c.Names),
		Default:         c.Default,
		ResponsiveArray: slices.Clone(c.ResponsiveArray),
	}
}

// PropertyValue is one allowed value of a property and the classes generated
// for it.
type PropertyValue struct {
	// Value is the allowed value in its string form ("0", "block").
	Value string
	// DefaultClass is applied when the value is used without a condition.
	// For conditional properties it is the class of the default condition.
	DefaultClass string
	// Conditions maps condition names to classes. Empty for unconditional
	// properties.
	Conditions map[string]string
}

func (v PropertyValue) clone() PropertyValue {
	if v.Conditions != nil {
		m := make(map[string]string, len(v.Conditions))
		for k, c := range v.Conditions {
			m[k] = c
		}
		v.Conditions = m
	}
	return v
}

// Property is a value property: a closed set of values, each with its
// classes.
type Property struct {
	Name   string
	Values []PropertyValue
}

// Shorthand is a property that expands to one or more value properties.
type Shorthand struct {
	Name string
	// Targets lists the longhand properties in expansion order.
	Targets []string
}

// Config is a single configuration as emitted by the build step. Every
// property of a Config carrying Conditions is conditional.
type Config struct {
	Conditions *Conditions
	Properties []Property
	Shorthands []Shorthand
}

// Names returns every property name the configuration declares,
// shorthands first. Class output order is unaffected; it follows value
// property declaration order.
func (c Config) Names() []string {
	names := make([]string, 0, len(c.Properties)+len(c.Shorthands))
	for _, s := range c.Shorthands {
		names = append(names, s.Name)
	}
	for _, p := range c.Properties {
		names = append(names, p.Name)
	}
	return names
}
