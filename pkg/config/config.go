// Package config loads the YAML service configuration.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the top-level service configuration.
type Config struct {
	Listen     string          `yaml:"listen"`
	CORSOrigin string          `yaml:"cors-origin"`
	Roads      SourceOptions   `yaml:"roads"`
	Traffic    SourceOptions   `yaml:"traffic"`
	Floods     SourceOptions   `yaml:"floods"`
	Fallback   FallbackOptions `yaml:"fallback"`
	RequestLog string          `yaml:"request-log"`
}

// SourceOptions selects and parameterizes one collaborator backend.
//
// Roads accept backends file, http, and osm; traffic accepts none, file,
// and http; floods accept none, file, http, and geojson. Path applies to
// file-like backends, URL to http.
type SourceOptions struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
	URL     string `yaml:"url"`
}

// FallbackOptions configures the external fallback routing service. An
// empty URL disables fallback.
type FallbackOptions struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout-seconds"`
}

// Default returns the configuration used when a field is absent from the
// config file.
func Default() Config {
	return Config{
		Listen: ":8080",
		Roads:  SourceOptions{Backend: "file", Path: "data/roads.json"},
		Traffic: SourceOptions{
			Backend: "none",
		},
		Floods: SourceOptions{
			Backend: "none",
		},
		Fallback: FallbackOptions{TimeoutSeconds: 5},
	}
}

// Load reads and parses a YAML config file on top of the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse config")
	}
	return cfg, nil
}
