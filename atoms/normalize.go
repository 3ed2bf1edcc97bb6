package atoms

// Entry is one condition of a normalized value.
type Entry struct {
	Condition string
	Value     any
	// Defined is false when a mapping named the condition with a nil
	// value: the condition was mentioned but explicitly left unset.
	Defined bool
}

// Value is a normalized property value. Without a condition set it is the
// raw scalar; otherwise it lists the conditions that were given, in
// condition sequence order.
type Value struct {
	Conditional bool
	Scalar      any
	Entries     []Entry
}

// Get returns the value given for cond. ok is false when cond was never
// mentioned; an explicitly unset condition returns (nil, true).
func (v Value) Get(cond string) (value any, ok bool) {
	for _, e := range v.Entries {
		if e.Condition == cond {
			return e.Value, true
		}
	}
	return nil, false
}

// Map returns the entries as a map, explicitly unset conditions included.
func (v Value) Map() map[string]any {
	m := make(map[string]any, len(v.Entries))
	for _, e := range v.Entries {
		m[e.Condition] = e.Value
	}
	return m
}

// Normalizer converts the accepted input shapes into a per-condition value
// using one condition set.
type Normalizer struct {
	conditions *Conditions
}

// NewNormalizer returns a Normalizer for c. A nil c normalizes every scalar
// to itself and rejects lists and mappings.
func NewNormalizer(c *Conditions) *Normalizer {
	return &Normalizer{conditions: c.clone()}
}

// CreateNormalizeValueFn returns the normalizer of cfg's condition set as a
// function value.
func CreateNormalizeValueFn(cfg Config) func(raw any) (Value, error) {
	return NewNormalizer(cfg.Conditions).Normalize
}

// Conditions returns a copy of the condition set, nil if there is none.
func (n *Normalizer) Conditions() *Conditions {
	return n.conditions.clone()
}

// Normalize converts raw into its canonical per-condition form.
func (n *Normalizer) Normalize(raw any) (Value, error) {
	if n.conditions == nil {
		if err := n.unconditional("", raw); err != nil {
			return Value{}, err
		}
		return Value{Scalar: raw}, nil
	}
	v := Value{Conditional: true}
	err := n.walk("", raw, func(cond string, val any, defined bool) {
		v.Entries = append(v.Entries, Entry{Condition: cond, Value: val, Defined: defined})
	})
	if err != nil {
		return Value{}, err
	}
	return v, nil
}

// unconditional checks raw is a scalar when there is no condition set.
func (n *Normalizer) unconditional(prop string, raw any) error {
	switch ShapeOf(raw) {
	case ShapeList:
		return &PropertyError{Kind: ErrUnsupportedResponsiveArray, Property: prop}
	case ShapeMapping:
		// Even an empty mapping names no condition that could exist.
		return &PropertyError{Kind: ErrNotConditional, Property: prop}
	}
	return nil
}

// walk validates raw against the condition set and calls yield for every
// retained condition. Scalars and lists skip nil values; mappings report
// them with defined set to false. n.conditions must not be nil.
func (n *Normalizer) walk(prop string, raw any, yield func(cond string, val any, defined bool)) error {
	switch ShapeOf(raw) {
	case ShapeList:
		return n.walkList(prop, raw, yield)
	case ShapeMapping:
		return n.walkMapping(prop, raw, yield)
	}
	return n.walkScalar(prop, raw, yield)
}

func (n *Normalizer) walkScalar(prop string, raw any, yield func(string, any, bool)) error {
	if raw == nil {
		return nil
	}
	if n.conditions.Default == "" {
		return &PropertyError{Kind: ErrNoDefaultCondition, Property: prop, Options: conditionNames(n.conditions)}
	}
	yield(n.conditions.Default, raw, true)
	return nil
}

func (n *Normalizer) walkList(prop string, raw any, yield func(string, any, bool)) error {
	seq := n.conditions.ResponsiveArray
	if len(seq) == 0 {
		return &PropertyError{Kind: ErrUnsupportedResponsiveArray, Property: prop}
	}
	size := listLen(raw)
	if size > len(seq) {
		return &PropertyError{Kind: ErrTooManyBreakpoints, Property: prop, Limit: len(seq), Got: size}
	}
	for i := 0; i < size; i++ {
		if v := listAt(raw, i); v != nil {
			yield(seq[i], v, true)
		}
	}
	return nil
}

func (n *Normalizer) walkMapping(prop string, raw any, yield func(string, any, bool)) error {
	if bad, ok := firstUnknownKey(raw, n.conditions); ok {
		return &PropertyError{Kind: ErrUnknownCondition, Property: prop, Condition: bad, Options: conditionNames(n.conditions)}
	}
	for _, cond := range n.conditions.Names {
		if v, ok := lookupMapping(raw, cond); ok {
			yield(cond, v, v != nil)
		}
	}
	return nil
}
