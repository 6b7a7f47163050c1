package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/proofreader/internal/quality"
)

const testConfig = `
index_namespace:
  id: 104
  name: Livre
page_namespace:
  id: 102
  name: Page
quality_categories:
  "0": Sans texte
  validated: Validée
elevated_users: [Alice]
elevated_groups: [proofreaders]
user_header: X-Forwarded-User
user_groups:
  Bob: [proofreaders]
default_language: fa
digit_overrides:
  ar: latn
catalog: ./catalog.jsonl
store: badger
state_dir: /tmp/proofreader
default_image_width: 800
port: "9000"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "proofreader.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// clearEnv keeps the caller's environment out of Load.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range []string{EnvCatalog, EnvAPIURL, EnvStore, EnvStateDir, EnvLanguage, EnvPort} {
		t.Setenv(env, "")
	}
}

func containsWarning(warnings []string, substr string) bool {
	for _, w := range warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	warnings, err := cfg.Validate()
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, NamespaceConfig{ID: 104, Name: "Livre"}, cfg.IndexNamespace)
	assert.Equal(t, "badger", cfg.Store)
	assert.Equal(t, 800, cfg.DefaultImageWidth)
	assert.Equal(t, "9000", cfg.Port)

	categories := cfg.Categories()
	assert.Equal(t, "Sans texte", categories.Label(quality.WithoutText))
	assert.Equal(t, "Validée", categories.Label(quality.Validated))
	assert.Equal(t, "Proofread", categories.Label(quality.Proofread))

	caps := cfg.Capabilities()
	assert.True(t, caps.HasElevatedQualityCapability(quality.User{Name: "Alice"}))
	assert.True(t, caps.HasElevatedQualityCapability(quality.User{Name: "Bob", Groups: []string{"proofreaders"}}))
	assert.False(t, caps.HasElevatedQualityCapability(quality.User{Name: "Bob"}))

	assert.Equal(t, "X-Forwarded-User", cfg.UserHeader)
	assert.Equal(t, []string{"proofreaders"}, cfg.GroupsOf("Bob"))
	assert.Empty(t, cfg.GroupsOf("Carol"))

	l, err := cfg.Language()
	require.NoError(t, err)
	assert.Equal(t, "۴۲", l.TransformDigits("42"))

	registry, err := cfg.Languages()
	require.NoError(t, err)
	ar, err := registry.Lookup("ar")
	require.NoError(t, err)
	assert.Equal(t, "42", ar.TransformDigits("42"))
}

func TestLoadWithoutFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("/nonexistent/proofreader.yaml")
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "store: [unterminated"))
	assert.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvCatalog, "/data/scans.parquet")
	t.Setenv(EnvStore, "memory")
	t.Setenv(EnvPort, "3000")

	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)
	assert.Equal(t, "/data/scans.parquet", cfg.CatalogPath)
	assert.Equal(t, "memory", cfg.Store)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "fa", cfg.DefaultLanguage)
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{}
	warnings, err := cfg.Validate()
	require.NoError(t, err)

	assert.Equal(t, NamespaceConfig{ID: DefaultIndexNamespaceID, Name: "Index"}, cfg.IndexNamespace)
	assert.Equal(t, NamespaceConfig{ID: DefaultPageNamespaceID, Name: "Page"}, cfg.PageNamespace)
	assert.Equal(t, "en", cfg.DefaultLanguage)
	assert.Equal(t, "memory", cfg.Store)
	assert.Equal(t, DefaultImageWidth, cfg.DefaultImageWidth)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultUserHeader, cfg.UserHeader)
	assert.True(t, containsWarning(warnings, "neither catalog nor api_url"))
}

func TestValidateWarnings(t *testing.T) {
	cfg := Config{
		CatalogPath:       "catalog.jsonl",
		APIURL:            "https://en.wikisource.org/w/api.php",
		Store:             "badger",
		DefaultImageWidth: -5,
	}
	warnings, err := cfg.Validate()
	require.NoError(t, err)

	assert.Equal(t, DefaultStateDir, cfg.StateDir)
	assert.Equal(t, DefaultImageWidth, cfg.DefaultImageWidth)
	assert.True(t, containsWarning(warnings, "state_dir is empty"))
	assert.True(t, containsWarning(warnings, "using the catalog"))
	assert.True(t, containsWarning(warnings, "default_image_width cannot be negative"))
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "unknown store", cfg: Config{Store: "redis"}},
		{name: "bad category level", cfg: Config{QualityCategories: map[string]string{"7": "Seven"}}},
		{name: "bad digit override", cfg: Config{DigitOverrides: map[string]string{"fa": "123"}}},
		{name: "bad language", cfg: Config{DefaultLanguage: "not a language!"}},
		{name: "same namespaces", cfg: Config{IndexNamespace: NamespaceConfig{Name: "Page"}}},
		{name: "negative namespace id", cfg: Config{PageNamespace: NamespaceConfig{ID: -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.Validate()
			assert.Error(t, err)
		})
	}
}

func TestInfo(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)
	_, err = cfg.Validate()
	require.NoError(t, err)

	result, err := cfg.Info().Query(nil)
	require.NoError(t, err)
	assert.Equal(t, "Livre", result.Namespaces.Index.Name)
	assert.Equal(t, 102, result.Namespaces.Page.ID)
	assert.Equal(t, "Validée", result.QualityLevels[4].Category)
}
