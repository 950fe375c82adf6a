package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, environ map[string]string) (*configService, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "maxgear", "config.toml")
	cs := NewConfigService(path).(*configService)
	if environ == nil {
		environ = map[string]string{}
	}
	cs.environ = environ
	return cs, path
}

func TestLoadReturnsDefaultsWhenFileMissing(t *testing.T) {
	cs, _ := newTestService(t, nil)

	cfg, err := cs.Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	cs, path := newTestService(t, nil)

	cfg := DefaultConfig()
	cfg.Catalog.BaseURL = "https://api.maxgear.example"
	cfg.Catalog.Timeout = Duration(3 * time.Second)
	cfg.UISettings.StartScreen = "catalog"
	require.NoError(t, cs.Save(cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "3s")

	loaded, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	cs, path := newTestService(t, nil)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("[catalog]\nbase_url = \"http://parts.local\"\n"), 0o644))

	cfg, err := cs.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://parts.local", cfg.Catalog.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Catalog.Timeout.Std())
	assert.Equal(t, "home", cfg.UISettings.StartScreen)
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	cs, path := newTestService(t, nil)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("[catalog\n"), 0o644))

	_, err := cs.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestEnvironmentOverridesFile(t *testing.T) {
	cs, _ := newTestService(t, map[string]string{
		"MAXGEAR_CATALOG_BASE_URL": "http://env.local:9000",
		"MAXGEAR_CATALOG_TIMEOUT":  "750ms",
		"MAXGEAR_CATALOG_OFFLINE":  "true",
		"MAXGEAR_LOG_LEVEL":        "debug",
	})

	cfg, err := cs.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://env.local:9000", cfg.Catalog.BaseURL)
	assert.Equal(t, 750*time.Millisecond, cfg.Catalog.Timeout.Std())
	assert.True(t, cfg.Catalog.Offline)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bad url", mutate: func(c *Config) { c.Catalog.BaseURL = "not a url" }, wantErr: true},
		{name: "missing url", mutate: func(c *Config) { c.Catalog.BaseURL = "" }, wantErr: true},
		{name: "missing url offline", mutate: func(c *Config) { c.Catalog.BaseURL = ""; c.Catalog.Offline = true }},
		{name: "bad screen", mutate: func(c *Config) { c.UISettings.StartScreen = "cart" }, wantErr: true},
		{name: "bad level", mutate: func(c *Config) { c.Log.Level = "trace" }, wantErr: true},
		{name: "negative retries", mutate: func(c *Config) { c.Catalog.MaxRetries = -1 }, wantErr: true},
		{name: "metrics addr", mutate: func(c *Config) { c.Metrics.Addr = "127.0.0.1:9100" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestFlagsApplyOnlyChangedValues(t *testing.T) {
	fs := pflag.NewFlagSet("maxgear", pflag.ContinueOnError)
	flags := RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--catalog-url", "http://flag.local", "--no-alt-screen", "-s", "catalog"}))

	cfg := DefaultConfig()
	cfg.Log.Level = "warn"
	flags.Apply(cfg)

	assert.Equal(t, "http://flag.local", cfg.Catalog.BaseURL)
	assert.Equal(t, "catalog", cfg.UISettings.StartScreen)
	assert.False(t, cfg.UISettings.AltScreen)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.False(t, cfg.Catalog.Offline)
}

func TestFirstRunWritesOnlyDefaults(t *testing.T) {
	cs, path := newTestService(t, map[string]string{
		"MAXGEAR_CATALOG_OFFLINE": "true",
	})
	fs := pflag.NewFlagSet("maxgear", pflag.ContinueOnError)
	flags := RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--catalog-url", "http://one-off:9999", "--log-level", "debug"}))

	created, err := cs.EnsureFile()
	require.NoError(t, err)
	assert.True(t, created)

	cfg, err := cs.Load()
	require.NoError(t, err)
	flags.Apply(cfg)
	require.NoError(t, cfg.Validate())

	// the running config sees every override
	assert.Equal(t, "http://one-off:9999", cfg.Catalog.BaseURL)
	assert.True(t, cfg.Catalog.Offline)
	assert.Equal(t, "debug", cfg.Log.Level)

	// the file does not
	saved, err := cs.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), saved)
}

func TestEnsureFileKeepsExistingFile(t *testing.T) {
	cs, path := newTestService(t, nil)
	custom := DefaultConfig()
	custom.Catalog.BaseURL = "http://mine.local"
	require.NoError(t, cs.SaveToPath(custom, path))

	created, err := cs.EnsureFile()
	require.NoError(t, err)
	assert.False(t, created)

	saved, err := cs.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "http://mine.local", saved.Catalog.BaseURL)
}
