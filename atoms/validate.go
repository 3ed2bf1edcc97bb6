package atoms

import (
	"fmt"

	"go.uber.org/multierr"
)

// Validate checks the invariants of a single configuration and reports
// every violation, combined with multierr.
func (c Config) Validate() error {
	return c.validate(-1)
}

func (c Config) validate(source int) (err error) {
	fail := func(kind error, prop, format string, args ...any) {
		err = multierr.Append(err, &ConfigError{Kind: kind, Source: source, Property: prop, Detail: fmt.Sprintf(format, args...)})
	}

	if cs := c.Conditions; cs != nil {
		if len(cs.Names) == 0 {
			fail(ErrInvalidConfig, "", "condition set declares no conditions")
		}
		seen := make(map[string]bool, len(cs.Names))
		for _, name := range cs.Names {
			switch {
			case name == "":
				fail(ErrInvalidConfig, "", "empty condition name")
			case seen[name]:
				fail(ErrInvalidConfig, "", "condition %q declared twice", name)
			}
			seen[name] = true
		}
		if cs.Default != "" && !seen[cs.Default] {
			fail(ErrInvalidConfig, "", "default condition %q is not declared", cs.Default)
		}
		for _, name := range cs.ResponsiveArray {
			if !seen[name] {
				fail(ErrInvalidConfig, "", "responsive array condition %q is not declared", name)
			}
		}
	}

	names := make(map[string]bool, len(c.Properties)+len(c.Shorthands))
	for _, p := range c.Properties {
		if p.Name == "" {
			fail(ErrInvalidConfig, "", "property without a name")
			continue
		}
		if names[p.Name] {
			fail(ErrDuplicateProperty, p.Name, "declared twice")
		}
		names[p.Name] = true
		if len(p.Values) == 0 {
			fail(ErrInvalidConfig, p.Name, "no values")
		}
		values := make(map[string]bool, len(p.Values))
		for _, v := range p.Values {
			if values[v.Value] {
				fail(ErrInvalidConfig, p.Name, "value %q declared twice", v.Value)
			}
			values[v.Value] = true
			if c.Conditions == nil {
				if len(v.Conditions) > 0 {
					fail(ErrInvalidConfig, p.Name, "value %q has condition classes but the config has no conditions", v.Value)
				}
				if v.DefaultClass == "" {
					fail(ErrInvalidConfig, p.Name, "value %q has no class", v.Value)
				}
				continue
			}
			for cond := range v.Conditions {
				if !c.Conditions.Has(cond) {
					fail(ErrInvalidConfig, p.Name, "value %q has a class for undeclared condition %q", v.Value, cond)
				}
			}
		}
	}

	longhands := make(map[string]bool, len(names))
	for name := range names {
		longhands[name] = true
	}
	for _, s := range c.Shorthands {
		if s.Name == "" {
			fail(ErrInvalidConfig, "", "shorthand without a name")
			continue
		}
		if names[s.Name] {
			fail(ErrDuplicateProperty, s.Name, "declared twice")
		}
		names[s.Name] = true
		if len(s.Targets) == 0 {
			fail(ErrInvalidConfig, s.Name, "shorthand has no targets")
		}
		for _, t := range s.Targets {
			if !longhands[t] {
				fail(ErrInvalidConfig, s.Name, "target %q is not a value property of this config", t)
			}
		}
	}
	return err
}
