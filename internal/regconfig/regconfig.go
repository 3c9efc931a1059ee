// Package regconfig provides this registry's static deployment
// configuration: which digest algorithms a deployment accepts and the
// protocol version stamped into new records. It is configuration data
// only — no daemon, no file-watching, no background reload, matching
// the teacher's plain YAML-struct convention in pkg/package/manifest.go.
package regconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pkgchain/registry/pkg/hash"
)

// Config is a registry deployment's static configuration.
type Config struct {
	// AcceptedHashAlgorithms lists the digest algorithms this
	// deployment will accept in an Init entry. At least one is required.
	AcceptedHashAlgorithms []hash.Algorithm `yaml:"accepted_hash_algorithms"`

	// ProtocolVersion is stamped into every PackageRecord this
	// deployment produces.
	ProtocolVersion uint32 `yaml:"protocol_version"`
}

// DefaultConfig returns the configuration this registry ships with:
// SHA-256 only, protocol version 0.
func DefaultConfig() Config {
	return Config{
		AcceptedHashAlgorithms: []hash.Algorithm{hash.SHA256},
		ProtocolVersion:        0,
	}
}

// Validate checks that c is internally consistent.
func (c Config) Validate() error {
	if len(c.AcceptedHashAlgorithms) == 0 {
		return fmt.Errorf("regconfig: accepted_hash_algorithms must not be empty")
	}
	for _, algo := range c.AcceptedHashAlgorithms {
		if algo.Size() == 0 {
			return fmt.Errorf("regconfig: accepted_hash_algorithms: %w", &UnknownAlgorithmError{Algorithm: algo})
		}
	}
	return nil
}

// Accepts reports whether algo is one of c's accepted hash algorithms.
func (c Config) Accepts(algo hash.Algorithm) bool {
	for _, a := range c.AcceptedHashAlgorithms {
		if a == algo {
			return true
		}
	}
	return false
}

// UnknownAlgorithmError reports a configured algorithm this build does
// not implement.
type UnknownAlgorithmError struct {
	Algorithm hash.Algorithm
}

func (e *UnknownAlgorithmError) Error() string {
	return fmt.Sprintf("regconfig: unknown hash algorithm %q", e.Algorithm)
}

// Load reads and parses a Config from a YAML file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("regconfig: failed to read %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("regconfig: failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
