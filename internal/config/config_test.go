package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nikbrunner/mev/internal/config"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	assert.NilError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mev", "config.toml")

	cfg, err := config.Load(path)
	assert.NilError(t, err)
	assert.DeepEqual(t, *cfg, config.DefaultConfig())

	_, err = os.Stat(path)
	assert.NilError(t, err, "default file written")

	// the written file loads back to the same values
	again, err := config.Load(path)
	assert.NilError(t, err)
	assert.DeepEqual(t, *again, *cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
[api]
base_url = "https://mev.example.com"
timeout = "3s"

[cache]
ttl = "90s"

[log]
level = "debug"
`)

	cfg, err := config.Load(path)
	assert.NilError(t, err)
	assert.Equal(t, cfg.API.BaseURL, "https://mev.example.com")
	assert.Equal(t, cfg.API.Timeout, 3*time.Second)
	assert.Equal(t, cfg.Cache.TTL, 90*time.Second)
	assert.Equal(t, cfg.Log.Level, "debug")
	// untouched keys keep their defaults
	assert.Equal(t, cfg.Cache.Pages, config.DefaultConfig().Cache.Pages)
	assert.Equal(t, cfg.Search.PageSize, 10)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, `
[api]
base_url = "https://from-file.example.com"
`)
	t.Setenv("MEV_API_BASE_URL", "http://127.0.0.1:9000")
	t.Setenv("MEV_SEARCH_PAGE_SIZE", "25")
	t.Setenv("MEV_LOG_JSON", "true")

	cfg, err := config.Load(path)
	assert.NilError(t, err)
	assert.Equal(t, cfg.API.BaseURL, "http://127.0.0.1:9000")
	assert.Equal(t, cfg.Search.PageSize, 25)
	assert.Check(t, cfg.Log.JSON)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad level", "[log]\nlevel = \"loud\"\n", "Level"},
		{"bad url", "[api]\nbase_url = \"not a url\"\n", "BaseURL"},
		{"page size", "[search]\npage_size = 0\n", "PageSize"},
		{"syntax", "[api\n", "load"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeFile(t, tt.content))
			assert.Check(t, is.ErrorContains(err, tt.want))
		})
	}
}
