package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/dnswlt/metaview/internal/store"
)

// HelpLink is a custom link shown in the footer.
type HelpLink struct {
	Title string `yaml:"title"`
	URL   string `yaml:"url"`
}

// UIConfig has configuration that only affects the UI.
// We cannot put it into the web package as that would generate
// a cyclic dependency.
type UIConfig struct {
	// An optional custom help link shown at the bottom of the UI.
	HelpLink *HelpLink `yaml:"helpLink"`
	// Maps platform names (hive, looker, ...) to icon keys.
	PlatformIcons map[string]string `yaml:"platformIcons"`
}

// SearchConfig configures the search page.
type SearchConfig struct {
	// Query to run when the search page is opened without a query parameter.
	DefaultQuery string `yaml:"defaultQuery"`
}

// Bundle is the umbrella struct for the serialized application configuration YAML.
// It bundles the package-specific configurations.
type Bundle struct {
	UI     UIConfig     `yaml:"ui"`
	Search SearchConfig `yaml:"search"`
}

func Load(st store.Store, configPath string) (*Bundle, error) {
	bs, err := st.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("could not read config %q: %w", configPath, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(bs))
	dec.KnownFields(true)
	var bundle Bundle
	if err := dec.Decode(&bundle); err != nil {
		return nil, fmt.Errorf("invalid configuration YAML in %q: %v", configPath, err)
	}
	return &bundle, nil
}
