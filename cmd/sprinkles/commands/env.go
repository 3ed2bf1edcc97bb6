// Package commands implements the sprinkles subcommands.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/agiangrant/sprinkles"
	"github.com/agiangrant/sprinkles/internal/project"
)

type envKey struct{}

// Env keeps everything a subcommand needs in a single place.
type Env struct {
	Root string
	Cfg  project.Config
	Log  *zap.Logger

	start time.Time
}

func EnvFromContext(ctx context.Context) *Env {
	if env, ok := ctx.Value(envKey{}).(*Env); ok {
		return env
	}
	// this should never happen
	panic("env not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, &Env{
		Cfg:   project.Default(),
		Log:   zap.NewNop(),
		start: time.Now(),
	})
}

func (e *Env) Uptime() time.Duration {
	return time.Since(e.start)
}

// AtomFiles returns the configured atom documents resolved against Root.
func (e *Env) AtomFiles() []string {
	return e.Cfg.AtomFiles(e.Root)
}

// Open returns a registry over the configured atom documents.
func (e *Env) Open(opts ...sprinkles.Option) (*sprinkles.Registry, error) {
	opts = append([]sprinkles.Option{sprinkles.WithLogger(e.Log)}, opts...)
	reg, err := sprinkles.Open(e.AtomFiles(), opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load atoms: %w", err)
	}
	return reg, nil
}

// NewLogger returns the console logger used by the program. Everything goes
// to w so command output on stdout stays clean.
func NewLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	ec.EncodeLevel = zapcore.CapitalLevelEncoder

	if w == nil {
		w = os.Stderr
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(zapcore.AddSync(w)), lvl)
	return zap.New(core), nil
}
