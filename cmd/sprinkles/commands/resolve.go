package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/agiangrant/sprinkles/atoms"
)

// Resolve prints the classes of the PROPERTY=VALUE arguments. Later
// arguments override earlier ones.
func Resolve(ctx context.Context, cmd *cli.Command) error {
	env := EnvFromContext(ctx)

	props, err := parseProps(cmd.Args().Slice())
	if err != nil {
		return err
	}

	reg, err := env.Open()
	if err != nil {
		return err
	}
	classes, err := reg.Atoms().ClassesOrdered(props...)
	if err != nil {
		return err
	}
	env.Log.Debug("Resolved", zap.Int("props", len(props)), zap.Int("classes", len(classes)))

	out := cmd.Root().Writer
	if cmd.Bool("list") {
		for _, c := range classes {
			fmt.Fprintln(out, c)
		}
		return nil
	}
	fmt.Fprintln(out, strings.Join(classes, " "))
	return nil
}

func parseProps(args []string) ([]atoms.Prop, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("nothing to resolve, expected PROPERTY=VALUE arguments")
	}
	props := make([]atoms.Prop, 0, len(args))
	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("malformed argument %q, expected PROPERTY=VALUE", arg)
		}
		props = append(props, atoms.Prop{Name: name, Value: parseValue(raw)})
	}
	return props, nil
}

// parseValue reads JSON when the argument is valid JSON (numbers, null,
// arrays, objects) and falls back to the literal string.
func parseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}
