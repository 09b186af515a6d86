// Package config loads the intrinsic manifest: the data-driven table of
// built-in callables and their type signatures that the module driver
// registers as pre-materialized specializations before typing any root.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dar-lang/darc/internal/types"
)

// Signature is one argument/yield shape an intrinsic supports, named by
// lowercase primitive-kind strings ("int64", "float", "bool", "string").
type Signature struct {
	Args  []string `yaml:"args"`
	Yield string   `yaml:"yield"`
}

// Intrinsic is a built-in callable and its supported signatures. An
// intrinsic with more than one signature (e.g. `is` over both Int64 and
// Bool) registers one external specialization per signature; the
// specializer's first-match semantics handles call-site dispatch.
type Intrinsic struct {
	Name       string      `yaml:"name"`
	Signatures []Signature `yaml:"signatures"`
}

// IntrinsicManifest is the top-level document shape.
type IntrinsicManifest struct {
	Intrinsics []Intrinsic `yaml:"intrinsics"`
}

// ParseKind maps a manifest's lowercase kind name to a types.PrimitiveKind.
func ParseKind(name string) (types.PrimitiveKind, error) {
	switch name {
	case "int64":
		return types.Int64, nil
	case "float":
		return types.Float, nil
	case "bool":
		return types.Bool, nil
	case "string":
		return types.String, nil
	default:
		return 0, fmt.Errorf("config: unknown primitive kind %q", name)
	}
}

// Parse decodes a manifest from YAML bytes.
func Parse(data []byte) (*IntrinsicManifest, error) {
	var m IntrinsicManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("config: parsing intrinsic manifest: %w", err)
	}
	return &m, nil
}

// Load reads and parses a manifest from a file on disk, used by the CLI's
// -intrinsics flag.
func Load(path string) (*IntrinsicManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading intrinsic manifest %s: %w", path, err)
	}
	return Parse(data)
}

// Default returns the manifest embedded into the binary at build time.
func Default() (*IntrinsicManifest, error) {
	return Parse(defaultManifestYAML)
}
