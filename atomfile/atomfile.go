// Package atomfile reads and writes the configuration documents the build
// step emits, one atoms.Config per document.
//
// A TOML document looks like:
//
//	[conditions]
//	names = ["mobile", "tablet", "desktop"]
//	default = "mobile"
//	responsive_array = ["mobile", "tablet", "desktop"]
//
//	[[properties]]
//	name = "display"
//
//	[[properties.values]]
//	value = "flex"
//	class = "display_flex_mobile"
//	conditions = { mobile = "display_flex_mobile", desktop = "display_flex_desktop" }
//
//	[[shorthands]]
//	name = "paddingY"
//	targets = ["paddingBottom", "paddingTop"]
//
// YAML and JSON documents use the same keys.
package atomfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/agiangrant/sprinkles/atoms"
)

// Format is a document encoding.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	}
	return "toml"
}

// ParseFormat accepts "toml", "yaml", "yml" and "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return 0, fmt.Errorf("unsupported document format %q", s)
}

// FormatOf derives the format from a file extension.
func FormatOf(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Document is the serialized form of an atoms.Config.
type Document struct {
	Conditions *ConditionsDoc `toml:"conditions,omitempty" yaml:"conditions,omitempty" json:"conditions,omitempty"`
	Properties []PropertyDoc  `toml:"properties,omitempty" yaml:"properties,omitempty" json:"properties,omitempty"`
	Shorthands []ShorthandDoc `toml:"shorthands,omitempty" yaml:"shorthands,omitempty" json:"shorthands,omitempty"`
}

type ConditionsDoc struct {
	Names           []string `toml:"names" yaml:"names" json:"names"`
	Default         string   `toml:"default,omitempty" yaml:"default,omitempty" json:"default,omitempty"`
	ResponsiveArray []string `toml:"responsive_array,omitempty" yaml:"responsive_array,omitempty" json:"responsive_array,omitempty"`
}

type PropertyDoc struct {
	Name   string     `toml:"name" yaml:"name" json:"name"`
	Values []ValueDoc `toml:"values" yaml:"values" json:"values"`
}

type ValueDoc struct {
	// Value may be written as a string or a number; it is keyed by its
	// string form.
	Value      any               `toml:"value" yaml:"value" json:"value"`
	Class      string            `toml:"class,omitempty" yaml:"class,omitempty" json:"class,omitempty"`
	Conditions map[string]string `toml:"conditions,omitempty" yaml:"conditions,omitempty" json:"conditions,omitempty"`
}

type ShorthandDoc struct {
	Name    string   `toml:"name" yaml:"name" json:"name"`
	Targets []string `toml:"targets" yaml:"targets" json:"targets"`
}

// Config converts the document into a configuration.
func (d Document) Config() (atoms.Config, error) {
	var cfg atoms.Config
	if d.Conditions != nil {
		cfg.Conditions = &atoms.Conditions{
			Names:           d.Conditions.Names,
			Default:         d.Conditions.Default,
			ResponsiveArray: d.Conditions.ResponsiveArray,
		}
	}
	for _, p := range d.Properties {
		prop := atoms.Property{Name: p.Name, Values: make([]atoms.PropertyValue, 0, len(p.Values))}
		for i, v := range p.Values {
			if v.Value == nil {
				return atoms.Config{}, fmt.Errorf("property %q: value #%d is missing", p.Name, i)
			}
			prop.Values = append(prop.Values, atoms.PropertyValue{
				Value:        atoms.FormatValue(v.Value),
				DefaultClass: v.Class,
				Conditions:   v.Conditions,
			})
		}
		cfg.Properties = append(cfg.Properties, prop)
	}
	for _, s := range d.Shorthands {
		cfg.Shorthands = append(cfg.Shorthands, atoms.Shorthand{Name: s.Name, Targets: s.Targets})
	}
	return cfg, nil
}

// FromConfig converts a configuration into its document form.
func FromConfig(cfg atoms.Config) Document {
	var d Document
	if c := cfg.Conditions; c != nil {
		d.Conditions = &ConditionsDoc{Names: c.Names, Default: c.Default, ResponsiveArray: c.ResponsiveArray}
	}
	for _, p := range cfg.Properties {
		pd := PropertyDoc{Name: p.Name, Values: make([]ValueDoc, 0, len(p.Values))}
		for _, v := range p.Values {
			pd.Values = append(pd.Values, ValueDoc{Value: v.Value, Class: v.DefaultClass, Conditions: v.Conditions})
		}
		d.Properties = append(d.Properties, pd)
	}
	for _, s := range cfg.Shorthands {
		d.Shorthands = append(d.Shorthands, ShorthandDoc{Name: s.Name, Targets: s.Targets})
	}
	return d
}

// Decode parses a document. Unknown keys are rejected.
func Decode(data []byte, format Format) (atoms.Config, error) {
	var (
		doc Document
		err error
	)
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&doc)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	default:
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&doc)
	}
	if err != nil {
		return atoms.Config{}, fmt.Errorf("failed to parse %s document: %w", format, err)
	}
	return doc.Config()
}

// Encode serializes cfg.
func Encode(cfg atoms.Config, format Format) ([]byte, error) {
	doc := FromConfig(cfg)
	switch format {
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	}
	return toml.Marshal(doc)
}

// Load reads the document at path, its format taken from the extension.
func Load(path string) (atoms.Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return atoms.Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return atoms.Config{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg, err := Decode(data, format)
	if err != nil {
		return atoms.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadAll loads every path in order and reports all failures together.
func LoadAll(paths ...string) ([]atoms.Config, error) {
	var (
		configs = make([]atoms.Config, 0, len(paths))
		err     error
	)
	for _, path := range paths {
		cfg, lerr := Load(path)
		if lerr != nil {
			err = multierr.Append(err, lerr)
			continue
		}
		configs = append(configs, cfg)
	}
	if err != nil {
		return nil, err
	}
	return configs, nil
}

// Save writes cfg to path in the format of its extension.
func Save(path string, cfg atoms.Config) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Encode(cfg, format)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
