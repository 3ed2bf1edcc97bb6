package commands

import (
	"context"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"github.com/zoobzio/capitan"
	"go.uber.org/zap"

	"github.com/agiangrant/sprinkles"
	"github.com/agiangrant/sprinkles/internal/gen"
)

// Generate writes the Go source embedding the configured atom documents and,
// with --watch, regenerates it whenever they change.
func Generate(ctx context.Context, cmd *cli.Command) error {
	env := EnvFromContext(ctx)

	opts := gen.Options{
		Package:  env.Cfg.Generate.Package,
		Variable: env.Cfg.Generate.Variable,
	}
	if p := cmd.String("package"); p != "" {
		opts.Package = p
	}
	output := env.Cfg.Generate.Output
	if o := cmd.String("output"); o != "" {
		output = o
	}
	if !filepath.IsAbs(output) {
		output = filepath.Join(env.Root, output)
	}

	generate := func() error {
		if err := gen.WriteFile(env.AtomFiles(), output, opts); err != nil {
			return err
		}
		env.Log.Info("Generated", zap.String("file", output))
		return nil
	}

	if err := generate(); err != nil {
		return err
	}
	if !cmd.Bool("watch") {
		return nil
	}

	reg, err := env.Open()
	if err != nil {
		return err
	}
	watched := make(map[string]struct{})
	for _, p := range reg.Paths() {
		if abs, err := filepath.Abs(p); err == nil {
			watched[abs] = struct{}{}
		}
	}
	// Reload signals are process wide; only react to this registry's files.
	listener := capitan.Hook(sprinkles.RegistryReloaded, func(_ context.Context, e *capitan.Event) {
		path, _ := sprinkles.KeyPath.From(e)
		abs, err := filepath.Abs(path)
		if _, ok := watched[abs]; !ok || err != nil {
			return
		}
		env.Log.Info("Atom configuration changed, regenerating", zap.String("path", path))
		if err := generate(); err != nil {
			env.Log.Error("Generation failed", zap.Error(err))
		}
	})
	defer listener.Close()

	env.Log.Info("Watching for changes, press Ctrl+C to stop", zap.Strings("files", reg.Paths()))
	return reg.Watch(ctx)
}
