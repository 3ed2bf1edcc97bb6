// Package sprinkles resolves responsive style requests into precomputed
// atomic class names.
//
// The resolution core lives in the atoms package; this package re-exports its
// types and adds a Registry that loads configuration documents from disk and
// hot-reloads them.
//
//	reg, err := sprinkles.Open([]string{"styles/layout.toml"}, sprinkles.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	go reg.Watch(ctx)
//
//	classes, err := reg.Resolve(map[string]any{
//		"display":  sprinkles.Responsive{"none", nil, "flex"},
//		"paddingY": "small",
//	})
package sprinkles

import "github.com/agiangrant/sprinkles/atoms"

// Config is a single configuration source.
// This is a re-export of atoms.Config for consumer convenience.
type Config = atoms.Config

type (
	Conditions    = atoms.Conditions
	Property      = atoms.Property
	PropertyValue = atoms.PropertyValue
	Shorthand     = atoms.Shorthand

	// Responsive is a value listed per responsive breakpoint.
	Responsive = atoms.Responsive
	// Conditional is a value keyed by condition name.
	Conditional = atoms.Conditional

	Prop  = atoms.Prop
	Atoms = atoms.Atoms
)

// CreateAtomsFn merges configs and returns a function resolving a value bag
// to its space separated class names.
func CreateAtomsFn(configs ...Config) (func(props map[string]any) (string, error), error) {
	a, err := atoms.New(configs...)
	if err != nil {
		return nil, err
	}
	return a.Resolve, nil
}

// CreateNormalizeValueFn returns the normalizer of cfg's condition set.
func CreateNormalizeValueFn(cfg Config) func(raw any) (atoms.Value, error) {
	return atoms.CreateNormalizeValueFn(cfg)
}

// CreateMapValueFn returns a mapper over cfg's condition set.
func CreateMapValueFn[T any](cfg Config) func(raw any, fn func(value any, condition string) T) (atoms.Mapped[T], error) {
	return atoms.CreateMapValueFn[T](cfg)
}
