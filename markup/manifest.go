package markup

import (
	"os"

	yaml "go.yaml.in/yaml/v2"
)

// Manifest is a small opt-in configuration file: template search roots and
// render defaults. LoadManifest only parses it; nothing in this module,
// the cmd/markup CLI included, loads or applies a manifest.
type Manifest struct {
	SearchRoots     []string `yaml:"search_roots"`
	DefaultMethod   string   `yaml:"default_method"`
	DefaultEncoding string   `yaml:"default_encoding"`
	HTML            bool     `yaml:"html"`
}

// LoadManifest reads and parses a YAML manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
