package atoms

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func suffix(value any, cond string) string {
	return fmt.Sprintf("%v_%s", value, cond)
}

func TestMapValue(t *testing.T) {
	mapValue := CreateMapValueFn[string](conditionalAtomicStyles())

	tests := []struct {
		name string
		raw  any
		want []MappedEntry[string]
	}{
		{
			name: "string",
			raw:  "foobar",
			want: []MappedEntry[string]{{"mobile", "foobar_mobile", true}},
		},
		{
			name: "number",
			raw:  123,
			want: []MappedEntry[string]{{"mobile", "123_mobile", true}},
		},
		{
			name: "short responsive array",
			raw:  Responsive{"one"},
			want: []MappedEntry[string]{{"mobile", "one_mobile", true}},
		},
		{
			name: "responsive array",
			raw:  Responsive{"one", "two", "three"},
			want: []MappedEntry[string]{
				{"mobile", "one_mobile", true},
				{"tablet", "two_tablet", true},
				{"desktop", "three_desktop", true},
			},
		},
		{
			name: "responsive array with nils",
			raw:  Responsive{"one", nil, "three"},
			want: []MappedEntry[string]{{"mobile", "one_mobile", true}, {"desktop", "three_desktop", true}},
		},
		{
			name: "only nils",
			raw:  Responsive{nil, nil, nil},
			want: nil,
		},
		{
			name: "conditional object",
			raw:  Conditional{"mobile": "one", "desktop": "three"},
			want: []MappedEntry[string]{{"mobile", "one_mobile", true}, {"desktop", "three_desktop", true}},
		},
		{
			name: "conditional object with nil",
			raw:  Conditional{"mobile": "one", "tablet": nil, "desktop": "three"},
			want: []MappedEntry[string]{
				{"mobile", "one_mobile", true},
				{"tablet", "", false},
				{"desktop", "three_desktop", true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mapValue(tt.raw, suffix)
			require.NoError(t, err)
			assert.True(t, got.Conditional)
			assert.Equal(t, tt.want, got.Entries)
		})
	}
}

func TestMapValueSkipsExplicitNil(t *testing.T) {
	calls := 0
	n := NewNormalizer(responsiveConditions())
	got, err := MapValue(n, Conditional{"tablet": nil, "desktop": 2}, func(v any, cond string) int {
		calls++
		return v.(int) * 10
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	v, ok := got.Get("desktop")
	assert.True(t, ok)
	assert.Equal(t, 20, v)

	_, ok = got.Get("tablet")
	assert.False(t, ok)
}

func TestMapValueWithoutConditions(t *testing.T) {
	mapValue := CreateMapValueFn[string](atomicStyles())

	got, err := mapValue("red", suffix)
	require.NoError(t, err)
	assert.False(t, got.Conditional)
	assert.Equal(t, "red_", got.Scalar)
	assert.Empty(t, got.Entries)

	got, err = mapValue(nil, suffix)
	require.NoError(t, err)
	assert.Equal(t, "", got.Scalar)

	_, err = mapValue(Responsive{"red"}, suffix)
	require.ErrorIs(t, err, ErrUnsupportedResponsiveArray)
}

func TestMapValueErrors(t *testing.T) {
	mapValue := CreateMapValueFn[string](conditionalAtomicStyles())

	_, err := mapValue(Responsive{"a", "b", "c", "d"}, suffix)
	require.ErrorIs(t, err, ErrTooManyBreakpoints)

	_, err = mapValue(Conditional{"print": "a"}, suffix)
	require.ErrorIs(t, err, ErrUnknownCondition)

	_, err = CreateMapValueFn[string](conditionalStylesWithoutDefaultCondition())("a", suffix)
	require.ErrorIs(t, err, ErrNoDefaultCondition)
}
