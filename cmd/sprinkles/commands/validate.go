package commands

import (
	"context"
	"fmt"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/agiangrant/sprinkles/atomfile"
	"github.com/agiangrant/sprinkles/atoms"
)

// Validate checks every configured atom document and their merge, logging
// each problem found.
func Validate(ctx context.Context, cmd *cli.Command) error {
	env := EnvFromContext(ctx)
	files := env.AtomFiles()

	var (
		configs []atoms.Config
		err     error
	)
	for _, path := range files {
		cfg, lerr := atomfile.Load(path)
		if lerr == nil {
			if verr := cfg.Validate(); verr != nil {
				lerr = fmt.Errorf("%s: %w", path, verr)
			}
		}
		if lerr != nil {
			err = multierr.Append(err, lerr)
			continue
		}
		configs = append(configs, cfg)
	}
	if err == nil {
		var m *atoms.Merged
		if m, err = atoms.Merge(configs...); err == nil {
			env.Log.Info("Atom configuration is valid",
				zap.Int("files", len(files)),
				zap.Int("properties", len(m.Properties())))
			fmt.Fprintf(cmd.Root().Writer, "ok: %d files, %d properties\n", len(files), len(m.Properties()))
			return nil
		}
	}

	problems := multierr.Errors(err)
	for _, p := range problems {
		env.Log.Error("Invalid atom configuration", zap.Error(p))
	}
	return fmt.Errorf("atom configuration has %d problem(s)", len(problems))
}
