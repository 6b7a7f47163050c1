package config

import (
	"fmt"

	"github.com/lehigh-university-libraries/proofreader/internal/lang"
	"github.com/lehigh-university-libraries/proofreader/internal/quality"
)

const (
	DefaultIndexNamespaceID = 252
	DefaultPageNamespaceID  = 250
	DefaultImageWidth       = 1024
	DefaultPort             = "8888"
	DefaultStateDir         = "./proofreader_state"
	DefaultUserHeader       = "X-Remote-User"
)

// Validate checks the configuration and applies defaults in place.
// Returns collected warnings and any fatal error.
func (c *Config) Validate() (warnings []string, err error) {
	if c.IndexNamespace.Name == "" {
		c.IndexNamespace.Name = "Index"
	}
	if c.IndexNamespace.ID == 0 {
		c.IndexNamespace.ID = DefaultIndexNamespaceID
	}
	if c.PageNamespace.Name == "" {
		c.PageNamespace.Name = "Page"
	}
	if c.PageNamespace.ID == 0 {
		c.PageNamespace.ID = DefaultPageNamespaceID
	}
	if c.IndexNamespace.ID < 0 || c.PageNamespace.ID < 0 {
		return warnings, fmt.Errorf("namespace ids must be positive")
	}
	if c.IndexNamespace.Name == c.PageNamespace.Name {
		return warnings, fmt.Errorf("index and page namespaces must differ, both are %q", c.PageNamespace.Name)
	}

	for key := range c.QualityCategories {
		if _, err := quality.ParseLevel(key); err != nil {
			return warnings, fmt.Errorf("quality_categories: %w", err)
		}
	}

	if c.DefaultLanguage == "" {
		c.DefaultLanguage = "en"
	}
	registry, err := c.Languages()
	if err != nil {
		return warnings, fmt.Errorf("digit_overrides: %w", err)
	}
	if _, err := registry.Lookup(c.DefaultLanguage); err != nil {
		return warnings, fmt.Errorf("default_language: %w", err)
	}

	switch c.Store {
	case "":
		c.Store = "memory"
	case "memory", "badger":
	default:
		return warnings, fmt.Errorf("store must be memory or badger, got %q", c.Store)
	}
	if c.Store == "badger" && c.StateDir == "" {
		warnings = append(warnings, fmt.Sprintf("state_dir is empty, defaulting to '%s'", DefaultStateDir))
		c.StateDir = DefaultStateDir
	}
	if c.Store == "memory" && c.StateDir != "" {
		warnings = append(warnings, "state_dir is ignored by the memory store")
	}

	if c.CatalogPath == "" && c.APIURL == "" {
		warnings = append(warnings, "neither catalog nor api_url is set, no scans can be resolved")
	}
	if c.CatalogPath != "" && c.APIURL != "" {
		warnings = append(warnings, "both catalog and api_url are set, using the catalog")
	}

	if c.DefaultImageWidth <= 0 {
		if c.DefaultImageWidth < 0 {
			warnings = append(warnings, fmt.Sprintf("default_image_width cannot be negative, defaulting to %d", DefaultImageWidth))
		}
		c.DefaultImageWidth = DefaultImageWidth
	}

	if c.Port == "" {
		c.Port = DefaultPort
	}
	if c.UserHeader == "" {
		c.UserHeader = DefaultUserHeader
	}

	return warnings, nil
}

// Language returns the configured default language.
func (c *Config) Language() (lang.Language, error) {
	registry, err := c.Languages()
	if err != nil {
		return lang.Language{}, err
	}
	return registry.Lookup(c.DefaultLanguage)
}
