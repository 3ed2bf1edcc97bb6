// Command generate embeds the project's atom configuration as Go source.
// It is meant to run from go:generate:
//
//	//go:generate go run github.com/agiangrant/sprinkles/tools/generate
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agiangrant/sprinkles/internal/gen"
	"github.com/agiangrant/sprinkles/internal/project"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	root, err := project.FindRoot(cwd)
	if err != nil {
		return err
	}
	config, err := project.Load(root)
	if err != nil {
		return err
	}

	output := config.Generate.Output
	if !filepath.IsAbs(output) {
		output = filepath.Join(root, output)
	}
	err = gen.WriteFile(config.AtomFiles(root), output, gen.Options{
		Package:  config.Generate.Package,
		Variable: config.Generate.Variable,
	})
	if err != nil {
		return err
	}

	fmt.Printf("✓ Generated %s\n", output)
	return nil
}
