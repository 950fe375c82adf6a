package config

import (
	"time"

	"github.com/spf13/pflag"
)

// Flags holds command line overrides. Only flags the user actually set are
// applied, so file and environment values survive otherwise.
type Flags struct {
	fs *pflag.FlagSet

	ConfigPath  string
	CatalogURL  string
	Timeout     time.Duration
	Offline     bool
	StartScreen string
	LogFile     string
	LogLevel    string
	MetricsAddr string
	NoAltScreen bool
}

// RegisterFlags defines the application flags on fs
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "Path to config.toml")
	fs.StringVarP(&f.CatalogURL, "catalog-url", "u", "", "Base URL of the catalog search service")
	fs.DurationVar(&f.Timeout, "timeout", 0, "Timeout for a single catalog search")
	fs.BoolVar(&f.Offline, "offline", false, "Search the built-in demo catalog instead of the remote service")
	fs.StringVarP(&f.StartScreen, "screen", "s", "", "Screen to open on start (home or catalog)")
	fs.StringVar(&f.LogFile, "log-file", "", "Log file path")
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	fs.BoolVar(&f.NoAltScreen, "no-alt-screen", false, "Render inline instead of using the alternate screen")
	return f
}

// Apply copies every flag that was set on the command line into cfg
func (f *Flags) Apply(cfg *Config) {
	if f.changed("catalog-url") {
		cfg.Catalog.BaseURL = f.CatalogURL
	}
	if f.changed("timeout") {
		cfg.Catalog.Timeout = Duration(f.Timeout)
	}
	if f.changed("offline") {
		cfg.Catalog.Offline = f.Offline
	}
	if f.changed("screen") {
		cfg.UISettings.StartScreen = f.StartScreen
	}
	if f.changed("log-file") {
		cfg.Log.File = f.LogFile
	}
	if f.changed("log-level") {
		cfg.Log.Level = f.LogLevel
	}
	if f.changed("metrics-addr") {
		cfg.Metrics.Addr = f.MetricsAddr
	}
	if f.changed("no-alt-screen") && f.NoAltScreen {
		cfg.UISettings.AltScreen = false
	}
}

func (f *Flags) changed(name string) bool {
	return f.fs != nil && f.fs.Changed(name)
}
