package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	cli "github.com/urfave/cli/v3"

	"github.com/agiangrant/sprinkles/atoms"
)

// Normalize prints the per-condition form of VALUE under the configured
// condition set, one CONDITION=VALUE line per entry.
func Normalize(ctx context.Context, cmd *cli.Command) error {
	env := EnvFromContext(ctx)
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one VALUE argument")
	}

	reg, err := env.Open()
	if err != nil {
		return err
	}
	n := atoms.NewNormalizer(reg.Atoms().Merged().Conditions())
	v, err := n.Normalize(parseValue(cmd.Args().First()))
	if err != nil {
		return err
	}

	out := cmd.Root().Writer
	if !v.Conditional {
		fmt.Fprintln(out, jsonText(v.Scalar))
		return nil
	}
	for _, e := range v.Entries {
		if !e.Defined {
			fmt.Fprintf(out, "%s=undefined\n", e.Condition)
			continue
		}
		fmt.Fprintf(out, "%s=%s\n", e.Condition, jsonText(e.Value))
	}
	return nil
}

func jsonText(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

// Properties lists the recognized properties in merge order.
func Properties(ctx context.Context, cmd *cli.Command) error {
	env := EnvFromContext(ctx)

	reg, err := env.Open()
	if err != nil {
		return err
	}
	m := reg.Atoms().Merged()

	out := cmd.Root().Writer
	verbose := cmd.Bool("values")
	for _, name := range m.Properties() {
		if !verbose {
			fmt.Fprintln(out, name)
			continue
		}
		switch {
		case m.IsShorthand(name):
			fmt.Fprintf(out, "%s -> %s\n", name, strings.Join(m.Targets(name), ", "))
		case m.IsConditional(name):
			fmt.Fprintf(out, "%s (conditional): %s\n", name, strings.Join(m.Values(name), ", "))
		default:
			fmt.Fprintf(out, "%s: %s\n", name, strings.Join(m.Values(name), ", "))
		}
	}
	return nil
}
