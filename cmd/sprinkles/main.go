package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/agiangrant/sprinkles/cmd/sprinkles/commands"
	"github.com/agiangrant/sprinkles/internal/project"
)

const version = "0.1.0"

// initializeAppContext locates the project, loads sprinkles.toml and prepares
// the logger once the command line has been parsed.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.NArg() == 0 {
		// nothing to do, just return
		return ctx, nil
	}

	env := commands.EnvFromContext(ctx)

	root := cmd.String("dir")
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return ctx, err
		}
		if root, err = project.FindRoot(cwd); err != nil {
			root = cwd
		}
	}
	env.Root = root

	var err error
	if env.Cfg, err = project.Load(root); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	level := env.Cfg.Log.Level
	if cmd.Bool("debug") {
		level = "debug"
	}
	if env.Log, err = commands.NewLogger(level, cmd.ErrWriter); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}

	env.Log.Debug("Program started",
		zap.Strings("args", os.Args),
		zap.String("ver", version),
		zap.String("runtime", runtime.Version()),
		zap.String("root", root))
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	env := commands.EnvFromContext(ctx)

	env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	// syncing a console fails on some platforms, nothing to report
	_ = env.Log.Sync()
	return nil
}

// errWasHandled is set once the error has been logged so main does not print
// it twice.
var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := commands.EnvFromContext(ctx)
	env.Log.Error("Program ended with error", zap.Error(err))
	errWasHandled = env.Log.Core().Enabled(zap.ErrorLevel)
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	commands.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:            "sprinkles",
		Usage:           "resolves responsive style requests into atomic class names",
		Version:         version + " (" + runtime.Version() + ")",
		HideHelpCommand: true,
		Writer:          stdout,
		ErrWriter:       stderr,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Aliases: []string{"C"}, Usage: "project root `DIR` (default: nearest directory with " + project.FileName + " or go.mod)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log at debug level"},
		},
		Commands: []*cli.Command{
			{
				Name:         "resolve",
				Usage:        "Resolves properties to class names",
				ArgsUsage:    "PROPERTY=VALUE...",
				OnUsageError: usageErrorHandler,
				Action:       commands.Resolve,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "list", Aliases: []string{"l"}, Usage: "print one class per line"},
				},
				CustomHelpTemplate: fmt.Sprintf(`%s
VALUE:
    a plain word or any JSON value, for example
        display=flex
        paddingY='["small", null, "large"]'
        display='{"desktop": "none"}'
`, cli.CommandHelpTemplate),
			},
			{
				Name:         "normalize",
				Usage:        "Shows the per-condition form of a value",
				ArgsUsage:    "VALUE",
				OnUsageError: usageErrorHandler,
				Action:       commands.Normalize,
			},
			{
				Name:         "properties",
				Usage:        "Lists recognized properties in merge order",
				OnUsageError: usageErrorHandler,
				Action:       commands.Properties,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "values", Usage: "include allowed values and shorthand targets"},
				},
			},
			{
				Name:         "validate",
				Usage:        "Checks the atom configuration documents",
				OnUsageError: usageErrorHandler,
				Action:       commands.Validate,
			},
			{
				Name:         "generate",
				Usage:        "Generates Go source embedding the atom configuration",
				OnUsageError: usageErrorHandler,
				Action:       commands.Generate,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write to `FILE` instead of the configured output"},
					&cli.StringFlag{Name: "package", Usage: "package `NAME` of the generated file"},
					&cli.BoolFlag{Name: "watch", Aliases: []string{"w"}, Usage: "regenerate whenever an atom document changes"},
				},
			},
			{
				Name:         "init",
				Usage:        "Creates " + project.FileName + " and a starter atom document",
				OnUsageError: usageErrorHandler,
				Action:       commands.Init,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "force", Usage: "overwrite existing files"},
				},
			},
			{
				Name:         "dumpconfig",
				Usage:        "Dumps either default or actual project configuration (YAML)",
				ArgsUsage:    "DESTINATION",
				OnUsageError: usageErrorHandler,
				Action:       commands.DumpConfig,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default configuration"},
				},
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(commands.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deferred functions after that
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = newApp(os.Stdout, os.Stderr).Run(ctx, os.Args)
}
