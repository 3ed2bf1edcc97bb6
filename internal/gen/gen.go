// Package gen emits Go source embedding atom configurations as literals, so
// a binary can build its resolver without reading documents at runtime.
package gen

import (
	"fmt"
	"go/format"
	"maps"
	"slices"
	"strings"

	"github.com/agiangrant/sprinkles/atoms"
)

const importPath = "github.com/agiangrant/sprinkles/atoms"

// Options controls the emitted file.
type Options struct {
	// Package is the package clause of the generated file.
	Package string
	// Variable names the emitted []atoms.Config.
	Variable string
	// Sources are listed in the header comment.
	Sources []string
}

func (o Options) withDefaults() Options {
	if o.Package == "" {
		o.Package = "styles"
	}
	if o.Variable == "" {
		o.Variable = "Atoms"
	}
	return o
}

// Generate checks that configs merge cleanly and returns gofmt'd source
// declaring them as a single variable.
func Generate(configs []atoms.Config, opts Options) ([]byte, error) {
	if _, err := atoms.Merge(configs...); err != nil {
		return nil, fmt.Errorf("refusing to generate from invalid configuration: %w", err)
	}
	opts = opts.withDefaults()

	var b strings.Builder
	b.WriteString("// Code generated by sprinkles generate - DO NOT EDIT.\n")
	for _, src := range opts.Sources {
		b.WriteString("// source: " + src + "\n")
	}
	b.WriteString("\npackage " + opts.Package + "\n\n")
	b.WriteString(fmt.Sprintf("import %q\n\n", importPath))

	b.WriteString(fmt.Sprintf("// %s holds the atom configurations merged by atoms.New(%s...).\n", opts.Variable, opts.Variable))
	b.WriteString(fmt.Sprintf("var %s = []atoms.Config{\n", opts.Variable))
	for _, cfg := range configs {
		writeConfig(&b, cfg)
	}
	b.WriteString("}\n")

	src, err := format.Source([]byte(b.String()))
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code: %w", err)
	}
	return src, nil
}

func writeConfig(b *strings.Builder, cfg atoms.Config) {
	b.WriteString("{\n")
	if c := cfg.Conditions; c != nil {
		b.WriteString("Conditions: &atoms.Conditions{\n")
		b.WriteString("Names: " + stringSlice(c.Names) + ",\n")
		if c.Default != "" {
			b.WriteString(fmt.Sprintf("Default: %q,\n", c.Default))
		}
		if len(c.ResponsiveArray) > 0 {
			b.WriteString("ResponsiveArray: " + stringSlice(c.ResponsiveArray) + ",\n")
		}
		b.WriteString("},\n")
	}

	if len(cfg.Properties) > 0 {
		b.WriteString("Properties: []atoms.Property{\n")
		for _, p := range cfg.Properties {
			b.WriteString(fmt.Sprintf("{Name: %q, Values: []atoms.PropertyValue{\n", p.Name))
			for _, v := range p.Values {
				b.WriteString(fmt.Sprintf("{Value: %q", v.Value))
				if v.DefaultClass != "" {
					b.WriteString(fmt.Sprintf(", DefaultClass: %q", v.DefaultClass))
				}
				if len(v.Conditions) > 0 {
					b.WriteString(", Conditions: " + classMap(cfg.Conditions, v.Conditions))
				}
				b.WriteString("},\n")
			}
			b.WriteString("}},\n")
		}
		b.WriteString("},\n")
	}

	if len(cfg.Shorthands) > 0 {
		b.WriteString("Shorthands: []atoms.Shorthand{\n")
		for _, s := range cfg.Shorthands {
			b.WriteString(fmt.Sprintf("{Name: %q, Targets: %s},\n", s.Name, stringSlice(s.Targets)))
		}
		b.WriteString("},\n")
	}
	b.WriteString("},\n")
}

func stringSlice(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return "[]string{" + strings.Join(quoted, ", ") + "}"
}

// classMap writes entries in condition order so output is stable.
func classMap(c *atoms.Conditions, classes map[string]string) string {
	var keys []string
	if c != nil {
		for _, name := range c.Names {
			if _, ok := classes[name]; ok {
				keys = append(keys, name)
			}
		}
	}
	if len(keys) != len(classes) {
		keys = slices.Sorted(maps.Keys(classes))
	}
	entries := make([]string, len(keys))
	for i, k := range keys {
		entries[i] = fmt.Sprintf("%q: %q", k, classes[k])
	}
	return "map[string]string{" + strings.Join(entries, ", ") + "}"
}
