package gen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agiangrant/sprinkles/atomfile"
)

// WriteFile loads the atom documents at paths and writes the generated source
// to output, creating its directory when needed.
func WriteFile(paths []string, output string, opts Options) error {
	configs, err := atomfile.LoadAll(paths...)
	if err != nil {
		return err
	}
	if len(opts.Sources) == 0 {
		opts.Sources = sources(paths, filepath.Dir(output))
	}
	src, err := Generate(configs, opts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(output, src, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	return nil
}

// sources lists paths relative to the output directory so generated headers
// do not depend on where the generator ran.
func sources(paths []string, base string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		rel, err := filepath.Rel(base, p)
		if err != nil {
			rel = p
		}
		out[i] = filepath.ToSlash(rel)
	}
	return out
}
