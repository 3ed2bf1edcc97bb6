package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/agiangrant/sprinkles/atomfile"
	"github.com/agiangrant/sprinkles/atoms"
	"github.com/agiangrant/sprinkles/internal/project"
)

// Init writes sprinkles.toml and a starter atom document into the project
// root.
func Init(ctx context.Context, cmd *cli.Command) error {
	env := EnvFromContext(ctx)
	force := cmd.Bool("force")

	cfgPath := filepath.Join(env.Root, project.FileName)
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", project.FileName)
	}

	config := project.Default()
	if err := project.Save(env.Root, config); err != nil {
		return err
	}
	env.Log.Info("Created project configuration", zap.String("file", cfgPath))

	docPath := config.AtomFiles(env.Root)[0]
	_, err := os.Stat(docPath)
	switch {
	case err == nil && !force:
		env.Log.Info("Keeping existing atom document", zap.String("file", docPath))
		return nil
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("unable to check %s: %w", docPath, err)
	}
	if err := atomfile.Save(docPath, starterConfig()); err != nil {
		return err
	}
	env.Log.Info("Created atom document", zap.String("file", docPath))
	return nil
}

// starterConfig is a small responsive configuration to edit from.
func starterConfig() atoms.Config {
	conditions := []string{"mobile", "tablet", "desktop"}
	conditional := func(prop string, values ...string) atoms.Property {
		p := atoms.Property{Name: prop}
		for _, v := range values {
			classes := make(map[string]string, len(conditions))
			for _, c := range conditions {
				classes[c] = fmt.Sprintf("%s_%s_%s", prop, v, c)
			}
			p.Values = append(p.Values, atoms.PropertyValue{Value: v, Conditions: classes})
		}
		return p
	}
	return atoms.Config{
		Conditions: &atoms.Conditions{
			Names:           conditions,
			Default:         "mobile",
			ResponsiveArray: conditions,
		},
		Properties: []atoms.Property{
			conditional("display", "none", "block", "flex"),
			conditional("paddingTop", "none", "small", "large"),
			conditional("paddingBottom", "none", "small", "large"),
		},
		Shorthands: []atoms.Shorthand{
			{Name: "paddingY", Targets: []string{"paddingTop", "paddingBottom"}},
		},
	}
}
