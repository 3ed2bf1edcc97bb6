package commands

import (
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/agiangrant/sprinkles/internal/project"
)

// DumpConfig writes either the default or the active project configuration
// as YAML to DESTINATION or stdout.
func DumpConfig(ctx context.Context, cmd *cli.Command) error {
	env := EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	var (
		state = "actual"
		cfg   = env.Cfg
	)
	if cmd.Bool("default") {
		state = "default"
		cfg = project.Default()
	}
	data, err := project.Dump(cfg)
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	fname := cmd.Args().Get(0)
	if fname == "" {
		env.Log.Debug("Outputting configuration", zap.String("state", state), zap.String("file", "STDOUT"))
		_, err = cmd.Root().Writer.Write(data)
	} else {
		env.Log.Info("Outputting configuration", zap.String("state", state), zap.String("file", fname))
		err = os.WriteFile(fname, data, 0644)
	}
	if err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
