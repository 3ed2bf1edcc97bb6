package sprinkles

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/capitan"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

const colorsV1 = `
[[properties]]
name = "color"

[[properties.values]]
value = "red"
class = "color_red"
`

const colorsV2 = `
[[properties]]
name = "color"

[[properties.values]]
value = "red"
class = "color_red_v2"

[[properties.values]]
value = "blue"
class = "color_blue"
`

const spacing = `
[conditions]
names = ["mobile", "desktop"]
default = "mobile"
responsive_array = ["mobile", "desktop"]

[[properties]]
name = "gap"

[[properties.values]]
value = 1
conditions = { mobile = "gap_1_mobile", desktop = "gap_1_desktop" }
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	colors := filepath.Join(dir, "colors.toml")
	gap := filepath.Join(dir, "spacing.toml")
	writeFile(t, colors, colorsV1)
	writeFile(t, gap, spacing)

	reg, err := Open([]string{colors, gap})
	require.NoError(t, err)
	assert.Equal(t, []string{colors, gap}, reg.Paths())
	assert.Equal(t, []string{"color", "gap"}, reg.Atoms().Properties())

	got, err := reg.Resolve(map[string]any{"gap": Responsive{1, 1}, "color": "red"})
	require.NoError(t, err)
	assert.Equal(t, "color_red gap_1_mobile gap_1_desktop", got)

	classes, err := reg.Classes(map[string]any{"gap": Conditional{"desktop": 1}})
	require.NoError(t, err)
	assert.Equal(t, []string{"gap_1_desktop"}, classes)
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(nil)
	require.ErrorIs(t, err, ErrNoFiles)

	dir := t.TempDir()
	colors := filepath.Join(dir, "colors.toml")
	writeFile(t, colors, colorsV1)

	_, err = Open([]string{colors, colors})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to merge atom configuration")

	_, err = Open([]string{filepath.Join(dir, "missing.toml")})
	require.Error(t, err)
}

func TestReload(t *testing.T) {
	dir := t.TempDir()
	colors := filepath.Join(dir, "colors.toml")
	writeFile(t, colors, colorsV1)

	core, logs := observer.New(zap.InfoLevel)
	reg, err := Open([]string{colors}, WithLogger(zap.New(core)))
	require.NoError(t, err)
	before := reg.Atoms()

	writeFile(t, colors, colorsV2)
	require.NoError(t, reg.Reload(context.Background()))
	assert.NotSame(t, before, reg.Atoms())

	got, err := reg.Resolve(map[string]any{"color": "blue"})
	require.NoError(t, err)
	assert.Equal(t, "color_blue", got)

	assert.Equal(t, 1, logs.FilterMessage("Atom configuration reloaded").Len())
}

func TestReloadFailureKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	colors := filepath.Join(dir, "colors.toml")
	writeFile(t, colors, colorsV1)

	failed := make(chan string, 4)
	listener := capitan.Hook(RegistryReloadFailed, func(_ context.Context, e *capitan.Event) {
		msg, _ := KeyError.From(e)
		if strings.Contains(msg, dir) {
			select {
			case failed <- msg:
			default:
			}
		}
	})
	defer listener.Close()

	core, logs := observer.New(zap.ErrorLevel)
	reg, err := Open([]string{colors}, WithLogger(zap.New(core)))
	require.NoError(t, err)

	writeFile(t, colors, "[[properties]\nbroken")
	require.Error(t, reg.Reload(context.Background()))

	got, err := reg.Resolve(map[string]any{"color": "red"})
	require.NoError(t, err)
	assert.Equal(t, "color_red", got)
	assert.Equal(t, 1, logs.FilterMessage("Atom configuration reload failed, keeping previous").Len())

	select {
	case msg := <-failed:
		assert.Contains(t, msg, "colors.toml")
	case <-time.After(2 * time.Second):
		t.Fatal("reload failure was not signalled")
	}
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	colors := filepath.Join(dir, "colors.toml")
	writeFile(t, colors, colorsV1)

	reg, err := Open([]string{colors}, WithDebounce(20*time.Millisecond), WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- reg.Watch(ctx) }()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	writeFile(t, filepath.Join(dir, "unrelated.toml"), colorsV2)
	writeFile(t, colors, colorsV2)

	require.Eventually(t, func() bool {
		return reg.Atoms().Has("color") && len(reg.Atoms().Merged().Values("color")) == 2
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestCreateAtomsFn(t *testing.T) {
	atomsFn, err := CreateAtomsFn(Config{Properties: []Property{
		{Name: "color", Values: []PropertyValue{{Value: "red", DefaultClass: "color_red"}}},
	}})
	require.NoError(t, err)

	got, err := atomsFn(map[string]any{"color": "red"})
	require.NoError(t, err)
	assert.Equal(t, "color_red", got)

	_, err = CreateAtomsFn(Config{Properties: []Property{{Name: "color"}}})
	require.Error(t, err)

	normalize := CreateNormalizeValueFn(Config{Conditions: &Conditions{Names: []string{"a", "b"}, Default: "a"}})
	v, err := normalize("x")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "x"}, v.Map())

	mapValue := CreateMapValueFn[int](Config{})
	m, err := mapValue(3, func(value any, _ string) int { return value.(int) * 2 })
	require.NoError(t, err)
	assert.Equal(t, 6, m.Scalar)
}
