package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/proofreader/internal/info"
	"github.com/lehigh-university-libraries/proofreader/internal/lang"
	"github.com/lehigh-university-libraries/proofreader/internal/quality"
	"github.com/lehigh-university-libraries/proofreader/internal/resource"
)

// Environment variables that override file settings.
const (
	EnvConfig   = "PROOFREADER_CONFIG"
	EnvCatalog  = "PROOFREADER_CATALOG"
	EnvAPIURL   = "PROOFREADER_API_URL"
	EnvStore    = "PROOFREADER_STORE"
	EnvStateDir = "PROOFREADER_STATE_DIR"
	EnvLanguage = "PROOFREADER_LANGUAGE"
	EnvPort     = "PORT"
)

type NamespaceConfig struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

// Config is the site configuration shared by every command.
type Config struct {
	IndexNamespace NamespaceConfig `yaml:"index_namespace"`
	PageNamespace  NamespaceConfig `yaml:"page_namespace"`

	// QualityCategories maps a level ("0"-"4" or its name) to a category label.
	QualityCategories map[string]string `yaml:"quality_categories"`
	ElevatedUsers     []string          `yaml:"elevated_users"`
	ElevatedGroups    []string          `yaml:"elevated_groups"`

	// UserHeader names the request header the fronting proxy sets to the
	// authenticated user. UserGroups maps user names to their groups.
	UserHeader string              `yaml:"user_header"`
	UserGroups map[string][]string `yaml:"user_groups"`

	DefaultLanguage string            `yaml:"default_language"`
	DigitOverrides  map[string]string `yaml:"digit_overrides"` // language code -> ten digit glyphs, or "latn"

	CatalogPath       string `yaml:"catalog"` // JSONL or Parquet scan catalog
	APIURL            string `yaml:"api_url"` // MediaWiki api.php, used when no catalog is set
	Store             string `yaml:"store"`   // memory or badger
	StateDir          string `yaml:"state_dir"`
	DefaultImageWidth int    `yaml:"default_image_width"`
	Port              string `yaml:"port"`
}

// Load reads the YAML file at path, if any, then applies environment
// overrides. Validate still has to be called.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		EnvCatalog:  &c.CatalogPath,
		EnvAPIURL:   &c.APIURL,
		EnvStore:    &c.Store,
		EnvStateDir: &c.StateDir,
		EnvLanguage: &c.DefaultLanguage,
		EnvPort:     &c.Port,
	}
	for env, field := range overrides {
		if v := os.Getenv(env); v != "" {
			*field = v
		}
	}
}

// Categories returns the configured category labels keyed by level.
func (c *Config) Categories() quality.Categories {
	categories := quality.DefaultCategories()
	for key, label := range c.QualityCategories {
		if l, err := quality.ParseLevel(key); err == nil && label != "" {
			categories[l] = label
		}
	}
	return categories
}

// Capabilities returns the elevated-quality capability checker.
func (c *Config) Capabilities() *quality.StaticCapabilities {
	return quality.NewStaticCapabilities(c.ElevatedUsers, c.ElevatedGroups)
}

// GroupsOf returns the configured groups of the named user.
func (c *Config) GroupsOf(name string) []string {
	return c.UserGroups[name]
}

// Machine returns the quality state machine for the configured users.
func (c *Config) Machine() *quality.Machine {
	return quality.NewMachine(c.Capabilities())
}

// Languages returns a language registry with the digit overrides applied.
func (c *Config) Languages() (*lang.Registry, error) {
	return lang.NewRegistry(c.DigitOverrides)
}

// ResolverOptions strips the configured namespace prefixes.
func (c *Config) ResolverOptions() []resource.Option {
	return []resource.Option{resource.WithNamespaces(c.IndexNamespace.Name, c.PageNamespace.Name)}
}

// Info returns the meta query answering for this configuration.
func (c *Config) Info() *info.Info {
	return info.New(
		info.Namespace{ID: c.IndexNamespace.ID, Name: c.IndexNamespace.Name},
		info.Namespace{ID: c.PageNamespace.ID, Name: c.PageNamespace.Name},
		c.Categories(),
	)
}
