package atoms

import (
	"slices"
	"strings"
	"sync"
)

// Prop is one entry of an ordered value bag.
type Prop struct {
	Name  string
	Value any
}

// Atoms resolves value bags against a merged configuration. It is built once
// and safe for concurrent use.
type Atoms struct {
	merged *Merged
	norm   *Normalizer
	slots  sync.Pool
}

// New merges configs and returns their resolver.
func New(configs ...Config) (*Atoms, error) {
	m, err := Merge(configs...)
	if err != nil {
		return nil, err
	}
	return NewAtoms(m), nil
}

// NewAtoms returns the resolver of an already merged configuration.
func NewAtoms(m *Merged) *Atoms {
	a := &Atoms{
		merged: m,
		norm:   &Normalizer{conditions: m.conditions},
	}
	size := len(m.props)
	a.slots.New = func() any {
		s := make([]any, size)
		return &s
	}
	return a
}

// Merged returns the configuration the resolver was built from.
func (a *Atoms) Merged() *Merged { return a.merged }

// Properties returns every recognized property name in merge order.
func (a *Atoms) Properties() []string { return a.merged.Properties() }

// Has reports whether name is a recognized property.
func (a *Atoms) Has(name string) bool { return a.merged.Has(name) }

// Resolve returns the space separated class names for props.
//
// Shorthands are applied first, in declaration order, then explicit
// longhands, so a longhand always overrides a shorthand targeting it and a
// later declared shorthand overrides an earlier one. Classes are emitted in
// property declaration order, then condition order. Nil values are ignored.
func (a *Atoms) Resolve(props map[string]any) (string, error) {
	var b strings.Builder
	err := a.run(func(slots []any) error { return a.fill(slots, props) }, joiner(&b))
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// Classes is Resolve returning the class names as a list.
func (a *Atoms) Classes(props map[string]any) ([]string, error) {
	var out []string
	err := a.run(func(slots []any) error { return a.fill(slots, props) }, func(c string) { out = append(out, c) })
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ResolveOrdered is Resolve for an ordered value bag: every write to a
// longhand, direct or through a shorthand, overrides earlier writes in
// props order.
func (a *Atoms) ResolveOrdered(props ...Prop) (string, error) {
	var b strings.Builder
	err := a.run(func(slots []any) error { return a.fillOrdered(slots, props) }, joiner(&b))
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// ClassesOrdered is ResolveOrdered returning the class names as a list.
func (a *Atoms) ClassesOrdered(props ...Prop) ([]string, error) {
	var out []string
	err := a.run(func(slots []any) error { return a.fillOrdered(slots, props) }, func(c string) { out = append(out, c) })
	if err != nil {
		return nil, err
	}
	return out, nil
}

func joiner(b *strings.Builder) func(string) {
	return func(class string) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(class)
	}
}

// run fills a pooled per-longhand slot table and emits the classes of every
// set slot in declaration order.
func (a *Atoms) run(fill func([]any) error, emit func(string)) error {
	sp := a.slots.Get().(*[]any)
	slots := *sp
	defer func() {
		clear(slots)
		a.slots.Put(sp)
	}()

	if err := fill(slots); err != nil {
		return err
	}
	for i, raw := range slots {
		if raw == nil {
			continue
		}
		if err := a.emit(a.merged.props[i], raw, emit); err != nil {
			return err
		}
	}
	return nil
}

func (a *Atoms) fill(slots []any, props map[string]any) error {
	var (
		unknown string
		bad     bool
		buf     [8]*shorthand
		short   = buf[:0]
	)
	for name, v := range props {
		if s := a.merged.byShort[name]; s != nil {
			if v != nil {
				short = append(short, s)
			}
			continue
		}
		if a.merged.byName[name] == nil && (!bad || name < unknown) {
			unknown, bad = name, true
		}
	}
	if bad {
		return &PropertyError{Kind: ErrInvalidProperty, Property: unknown}
	}

	slices.SortFunc(short, func(x, y *shorthand) int { return x.index - y.index })
	for _, s := range short {
		v := props[s.name]
		for p := range a.merged.expand(s.name) {
			slots[p.index] = v
		}
	}
	for name, v := range props {
		if p := a.merged.byName[name]; p != nil && v != nil {
			slots[p.index] = v
		}
	}
	return nil
}

func (a *Atoms) fillOrdered(slots []any, props []Prop) error {
	for _, kv := range props {
		if !a.merged.Has(kv.Name) {
			return &PropertyError{Kind: ErrInvalidProperty, Property: kv.Name}
		}
	}
	for _, kv := range props {
		if kv.Value == nil {
			continue
		}
		if p := a.merged.byName[kv.Name]; p != nil {
			slots[p.index] = kv.Value
			continue
		}
		for p := range a.merged.expand(kv.Name) {
			slots[p.index] = kv.Value
		}
	}
	return nil
}

// emit resolves one longhand value to its classes.
func (a *Atoms) emit(p *property, raw any, emit func(string)) error {
	if !p.conditional {
		if ShapeOf(raw) != ShapeScalar {
			return &PropertyError{Kind: ErrNotConditional, Property: p.name}
		}
		v, err := p.lookup(raw)
		if err != nil {
			return err
		}
		emit(v.DefaultClass)
		return nil
	}

	var failure error
	err := a.norm.walk(p.name, raw, func(cond string, val any, defined bool) {
		if failure != nil || !defined {
			return
		}
		v, err := p.lookup(val)
		if err != nil {
			failure = err
			return
		}
		class, ok := v.Conditions[cond]
		if !ok && cond == a.norm.conditions.Default && v.DefaultClass != "" {
			class, ok = v.DefaultClass, true
		}
		if !ok {
			failure = &PropertyError{Kind: ErrUnknownCondition, Property: p.name, Condition: cond, Options: conditionNames(a.norm.conditions)}
			return
		}
		emit(class)
	})
	if err != nil {
		return err
	}
	return failure
}

func (p *property) lookup(raw any) (*PropertyValue, error) {
	key := FormatValue(raw)
	if v := p.values[key]; v != nil {
		return v, nil
	}
	return nil, &PropertyError{Kind: ErrInvalidValue, Property: p.name, Value: key, Options: slices.Clone(p.allowed)}
}
