package atoms

import (
	"fmt"
	"iter"
	"slices"

	"go.uber.org/multierr"
)

// property is the lookup form of a value property.
type property struct {
	name        string
	index       int
	conditional bool
	values      map[string]*PropertyValue
	allowed     []string
}

type shorthand struct {
	name    string
	index   int
	targets []*property
}

// Merged is the union of one or more configurations. It is immutable and
// safe for concurrent use.
type Merged struct {
	conditions *Conditions
	props      []*property
	byName     map[string]*property
	shorthands []*shorthand
	byShort    map[string]*shorthand
	names      []string
}

// Merge validates configs and combines them in argument order. Property
// names must be unique across all of them and every condition set must be
// identical to the first one declared.
func Merge(configs ...Config) (*Merged, error) {
	m := &Merged{
		byName:  make(map[string]*property),
		byShort: make(map[string]*shorthand),
	}
	owner := make(map[string]int)
	var err error

	for i, cfg := range configs {
		if verr := cfg.validate(i); verr != nil {
			err = multierr.Append(err, verr)
			continue
		}
		if cfg.Conditions != nil {
			switch {
			case m.conditions == nil:
				m.conditions = cfg.Conditions.clone()
			case !m.conditions.Equal(cfg.Conditions):
				err = multierr.Append(err, &ConfigError{Kind: ErrConditionMismatch, Source: i,
					Detail: fmt.Sprintf("conditions %v differ from %v", cfg.Conditions.Names, m.conditions.Names)})
				continue
			}
		}
		var dup error
		for _, name := range cfg.Names() {
			if prev, ok := owner[name]; ok {
				dup = multierr.Append(dup, &ConfigError{Kind: ErrDuplicateProperty, Source: i, Property: name,
					Detail: fmt.Sprintf("already declared by config #%d", prev)})
			}
		}
		if dup != nil {
			err = multierr.Append(err, dup)
			continue
		}
		for _, name := range cfg.Names() {
			owner[name] = i
		}
		m.add(cfg)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Merged) add(cfg Config) {
	local := make(map[string]*property, len(cfg.Properties))
	for _, p := range cfg.Properties {
		lp := &property{
			name:        p.Name,
			index:       len(m.props),
			conditional: cfg.Conditions != nil,
			values:      make(map[string]*PropertyValue, len(p.Values)),
			allowed:     make([]string, 0, len(p.Values)),
		}
		for _, v := range p.Values {
			v := v.clone()
			lp.values[v.Value] = &v
			lp.allowed = append(lp.allowed, v.Value)
		}
		m.props = append(m.props, lp)
		m.byName[p.Name] = lp
		local[p.Name] = lp
	}
	for _, s := range cfg.Shorthands {
		ls := &shorthand{name: s.Name, index: len(m.shorthands), targets: make([]*property, 0, len(s.Targets))}
		for _, t := range s.Targets {
			ls.targets = append(ls.targets, local[t])
		}
		m.shorthands = append(m.shorthands, ls)
		m.byShort[s.Name] = ls
	}
	m.names = append(m.names, cfg.Names()...)
}

// Conditions returns a copy of the merged condition set, nil if no source
// declared one.
func (m *Merged) Conditions() *Conditions {
	return m.conditions.clone()
}

// Properties returns every property name in merge order. Within a source,
// shorthands come before value properties.
func (m *Merged) Properties() []string {
	return slices.Clone(m.names)
}

// Has reports whether name is a value or shorthand property.
func (m *Merged) Has(name string) bool {
	return m.byName[name] != nil || m.byShort[name] != nil
}

// IsShorthand reports whether name is a shorthand property.
func (m *Merged) IsShorthand(name string) bool {
	return m.byShort[name] != nil
}

// IsConditional reports whether name is a value property with per-condition
// classes.
func (m *Merged) IsConditional(name string) bool {
	p := m.byName[name]
	return p != nil && p.conditional
}

// Values returns the allowed values of a value property in declared order.
func (m *Merged) Values(name string) []string {
	if p := m.byName[name]; p != nil {
		return slices.Clone(p.allowed)
	}
	return nil
}

// Targets returns the longhands a shorthand expands to.
func (m *Merged) Targets(name string) []string {
	s := m.byShort[name]
	if s == nil {
		return nil
	}
	out := make([]string, len(s.targets))
	for i, t := range s.targets {
		out[i] = t.name
	}
	return out
}

// Lookup returns the class configured for a value of prop under cond. An
// empty cond selects the unconditional class.
func (m *Merged) Lookup(prop, value, cond string) (string, bool) {
	p := m.byName[prop]
	if p == nil {
		return "", false
	}
	v := p.values[value]
	if v == nil {
		return "", false
	}
	if cond == "" {
		return v.DefaultClass, v.DefaultClass != ""
	}
	class, ok := v.Conditions[cond]
	return class, ok
}

// Expand yields the (longhand, value) pairs a shorthand fans out to, in
// declared target order. It yields nothing for unknown names.
func (m *Merged) Expand(name string, value any) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for p := range m.expand(name) {
			if !yield(p.name, value) {
				return
			}
		}
	}
}

func (m *Merged) expand(name string) iter.Seq[*property] {
	return func(yield func(*property) bool) {
		s := m.byShort[name]
		if s == nil {
			return
		}
		for _, t := range s.targets {
			if !yield(t) {
				return
			}
		}
	}
}
