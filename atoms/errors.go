package atoms

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Call time errors. Every error returned while resolving, normalizing or
// mapping a value is a *PropertyError matching one of these with errors.Is.
var (
	ErrInvalidProperty            = errors.New("invalid atom property")
	ErrInvalidValue               = errors.New("invalid atom value")
	ErrNotConditional             = errors.New("property is not conditional")
	ErrUnsupportedResponsiveArray = errors.New("responsive arrays are not supported")
	ErrTooManyBreakpoints         = errors.New("too many breakpoints")
	ErrNoDefaultCondition         = errors.New("no default condition")
	ErrUnknownCondition           = errors.New("unknown condition")
)

// Configuration errors, reported once by Merge or Config.Validate as
// *ConfigError values.
var (
	ErrDuplicateProperty = errors.New("duplicate property")
	ErrConditionMismatch = errors.New("condition mismatch")
	ErrInvalidConfig     = errors.New("invalid configuration")
)

// PropertyError describes why a property value was rejected.
type PropertyError struct {
	Kind     error
	Property string
	// Value is the offending value in string form (ErrInvalidValue).
	Value string
	// Condition is the offending condition (ErrUnknownCondition).
	Condition string
	// Options lists what would have been accepted, in declared order.
	Options []string
	// Limit and Got are set for ErrTooManyBreakpoints.
	Limit, Got int
}

func (e *PropertyError) Error() string {
	name := strconv.Quote(e.Property)
	if e.Property == "" {
		name = "value"
	}
	switch e.Kind {
	case ErrInvalidProperty:
		return name + " is not a valid atom property"
	case ErrInvalidValue:
		return fmt.Sprintf("%s has no value %q. Possible values are %s", name, e.Value, quoteList(e.Options))
	case ErrNotConditional:
		return name + " is not a conditional property"
	case ErrUnsupportedResponsiveArray:
		return name + " does not support responsive arrays"
	case ErrTooManyBreakpoints:
		return fmt.Sprintf("%s only supports up to %d breakpoints. You passed %d", name, e.Limit, e.Got)
	case ErrNoDefaultCondition:
		return fmt.Sprintf("%s has no default condition. You must specify which conditions to target explicitly. Possible options are %s", name, quoteList(e.Options))
	case ErrUnknownCondition:
		return fmt.Sprintf("%s has no condition named %q. Possible values are %s", name, e.Condition, quoteList(e.Options))
	}
	return fmt.Sprintf("%s: %v", name, e.Kind)
}

func (e *PropertyError) Unwrap() error { return e.Kind }

// ConfigError describes a problem found in a source configuration.
type ConfigError struct {
	Kind error
	// Source is the index of the offending configuration in the Merge
	// arguments, -1 when validating a single Config.
	Source   int
	Property string
	Detail   string
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	if e.Source >= 0 {
		fmt.Fprintf(&b, "config #%d: ", e.Source)
	}
	if e.Property != "" {
		fmt.Fprintf(&b, "%q: ", e.Property)
	}
	b.WriteString(e.Kind.Error())
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *ConfigError) Unwrap() error { return e.Kind }

// quoteList renders ["a" "b"] as `"a", "b"`.
func quoteList(items []string) string {
	var b strings.Builder
	for i, s := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(s))
	}
	return b.String()
}
