package atoms

// MappedEntry is one condition of a mapped value.
type MappedEntry[T any] struct {
	Condition string
	Value     T
	// Defined is false for explicitly unset conditions; Value is the zero
	// value and the transform was not called.
	Defined bool
}

// Mapped has the shape of a normalized Value with every value transformed.
type Mapped[T any] struct {
	Conditional bool
	Scalar      T
	Entries     []MappedEntry[T]
}

// Get returns the transformed value for cond.
func (m Mapped[T]) Get(cond string) (T, bool) {
	for _, e := range m.Entries {
		if e.Condition == cond {
			return e.Value, e.Defined
		}
	}
	var zero T
	return zero, false
}

// MapValue applies fn to every value raw resolves to, using the same shape
// rules as n.Normalize. Without a condition set fn receives an empty
// condition and the result is unwrapped.
func MapValue[T any](n *Normalizer, raw any, fn func(value any, condition string) T) (Mapped[T], error) {
	if n.conditions == nil {
		if err := n.unconditional("", raw); err != nil {
			return Mapped[T]{}, err
		}
		if raw == nil {
			return Mapped[T]{}, nil
		}
		return Mapped[T]{Scalar: fn(raw, "")}, nil
	}
	m := Mapped[T]{Conditional: true}
	err := n.walk("", raw, func(cond string, val any, defined bool) {
		e := MappedEntry[T]{Condition: cond, Defined: defined}
		if defined {
			e.Value = fn(val, cond)
		}
		m.Entries = append(m.Entries, e)
	})
	if err != nil {
		return Mapped[T]{}, err
	}
	return m, nil
}

// CreateMapValueFn binds MapValue to cfg's condition set.
func CreateMapValueFn[T any](cfg Config) func(raw any, fn func(value any, condition string) T) (Mapped[T], error) {
	n := NewNormalizer(cfg.Conditions)
	return func(raw any, fn func(any, string) T) (Mapped[T], error) {
		return MapValue(n, raw, fn)
	}
}
