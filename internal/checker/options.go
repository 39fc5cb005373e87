// Package checker drives whole-module type checking over the Core AST
// (spec.md §4.6): it seeds the built-in environment, registers type
// definitions before values so mutual references work, processes
// declarations in source order, and zonks the result.
package checker

import (
	"fmt"
	"os"

	"github.com/mbcrawfo/corelang-tyck/internal/types"
	"gopkg.in/yaml.v3"
)

// Options mirrors spec.md §6's configuration surface exactly: these are
// the only three knobs the checker accepts.
type Options struct {
	Stdlib               string `yaml:"stdlib"`
	DenyAny              bool   `yaml:"denyAny"`
	LevenshteinThreshold int    `yaml:"levenshteinThreshold"`
}

// DefaultOptions matches spec.md §6's stated defaults.
func DefaultOptions() Options {
	return Options{
		Stdlib:               "Full",
		DenyAny:              false,
		LevenshteinThreshold: 2,
	}
}

// LoadOptions reads a YAML config file and overlays it onto DefaultOptions,
// so an absent key keeps its default rather than zeroing out (teacher:
// internal/eval_harness/models.go's yaml.Unmarshal-onto-defaults pattern).
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("checker: reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("checker: parsing config %s: %w", path, err)
	}
	return opts, nil
}

// stdlib resolves the configured Stdlib name to its types.Stdlib value,
// defaulting to Full for an empty or unrecognized string.
func (o Options) stdlib() types.Stdlib {
	if o.Stdlib == "Minimal" {
		return types.StdlibMinimal
	}
	return types.StdlibFull
}
