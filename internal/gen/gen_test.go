package gen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/sprinkles/atoms"
)

func responsive() atoms.Config {
	return atoms.Config{
		Conditions: &atoms.Conditions{
			Names:           []string{"mobile", "desktop"},
			Default:         "mobile",
			ResponsiveArray: []string{"mobile", "desktop"},
		},
		Properties: []atoms.Property{
			{Name: "marginTop", Values: []atoms.PropertyValue{
				{Value: "0", Conditions: map[string]string{"desktop": "mt_0_desktop", "mobile": "mt_0_mobile"}},
			}},
			{Name: "marginBottom", Values: []atoms.PropertyValue{
				{Value: "0", Conditions: map[string]string{"mobile": "mb_0_mobile", "desktop": "mb_0_desktop"}},
			}},
		},
		Shorthands: []atoms.Shorthand{{Name: "marginY", Targets: []string{"marginTop", "marginBottom"}}},
	}
}

func TestGenerate(t *testing.T) {
	plain := atoms.Config{Properties: []atoms.Property{
		{Name: "color", Values: []atoms.PropertyValue{{Value: "red", DefaultClass: "color_red"}}},
	}}

	src, err := Generate([]atoms.Config{responsive(), plain}, Options{
		Package:  "theme",
		Variable: "Styles",
		Sources:  []string{"atoms/layout.toml"},
	})
	require.NoError(t, err)
	out := string(src)

	assert.True(t, strings.HasPrefix(out, "// Code generated by sprinkles generate - DO NOT EDIT.\n// source: atoms/layout.toml\n"))
	assert.Contains(t, out, "package theme\n")
	assert.Contains(t, out, `import "github.com/agiangrant/sprinkles/atoms"`)
	assert.Contains(t, out, "var Styles = []atoms.Config{")
	assert.Regexp(t, `Default:\s+"mobile",`, out)
	assert.Contains(t, out, `Conditions: map[string]string{"mobile": "mt_0_mobile", "desktop": "mt_0_desktop"}`)
	assert.Contains(t, out, `{Name: "marginY", Targets: []string{"marginTop", "marginBottom"}},`)
	assert.Contains(t, out, `{Value: "red", DefaultClass: "color_red"},`)
}

func TestGenerateDefaults(t *testing.T) {
	src, err := Generate(nil, Options{})
	require.NoError(t, err)
	assert.Contains(t, string(src), "package styles\n")
	assert.Contains(t, string(src), "var Atoms = []atoms.Config{")
}

func TestGenerateIsDeterministic(t *testing.T) {
	first, err := Generate([]atoms.Config{responsive()}, Options{})
	require.NoError(t, err)
	for range 5 {
		again, err := Generate([]atoms.Config{responsive()}, Options{})
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestGenerateRejectsInvalid(t *testing.T) {
	_, err := Generate([]atoms.Config{responsive(), responsive()}, Options{})
	require.ErrorIs(t, err, atoms.ErrDuplicateProperty)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "atoms", "colors.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(doc), 0755))
	require.NoError(t, os.WriteFile(doc, []byte("properties:\n  - name: color\n    values:\n      - value: red\n        class: color_red\n"), 0644))

	out := filepath.Join(dir, "styles", "atoms_gen.go")
	require.NoError(t, WriteFile([]string{doc}, out, Options{}))

	src, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(src), "// source: ../atoms/colors.yaml\n")
	assert.Contains(t, string(src), `{Value: "red", DefaultClass: "color_red"},`)

	err = WriteFile([]string{filepath.Join(dir, "missing.toml")}, out, Options{})
	require.Error(t, err)
}
