package candidate

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// SeedEntry is the raw shape of one imported application.
type SeedEntry struct {
	Email     string `yaml:"email"`
	AppliedAt string `yaml:"appliedAt"`
}

type seedFile struct {
	Candidates []SeedEntry `yaml:"candidates"`
}

// Seed returns the default candidate list shipped with the binary.
func Seed() []SeedEntry {
	entries, err := ParseSeed(defaultSeed)
	if err != nil {
		panic(fmt.Sprintf("embedded seed is invalid: %v", err))
	}
	return entries
}

// ParseSeed decodes a YAML seed document.
func ParseSeed(data []byte) ([]SeedEntry, error) {
	var doc seedFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	for i, entry := range doc.Candidates {
		if entry.Email == "" {
			return nil, fmt.Errorf("seed entry %d: email is required", i)
		}
	}
	return doc.Candidates, nil
}

// LoadSeed reads a seed file from disk. An empty path yields the embedded seed.
func LoadSeed(path string) ([]SeedEntry, error) {
	if path == "" {
		return Seed(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(data)
}
