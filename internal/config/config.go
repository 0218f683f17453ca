// Package config loads docdesk settings from the config file, environment
// and defaults, in that order of increasing precedence for env vars.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the resolved runtime configuration.
type Config struct {
	Root         string   // document root served by the file-service
	ListenAddr   string   // file-service listen address
	ServiceURL   string   // base URL the desk and CLI talk to
	CacheFile    string   // persisted document-cache location
	Ignore       []string // glob patterns excluded from the tree
	MaxBodyBytes int64    // write-request body cap

	// Desktop geometry.
	MinWindowWidth  int
	MinWindowHeight int
	TaskbarHeight   int
}

// Init wires viper: $HOME/.config/docdesk/config.yaml, DOCDESK_* env vars,
// and defaults. Called once from the root command.
func Init(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docdesk"))
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("DOCDESK")

	viper.SetDefault("root", "docs")
	viper.SetDefault("listen_addr", ":3001")
	viper.SetDefault("service_url", "http://localhost:3001")
	viper.SetDefault("cache_file", defaultCacheFile())
	viper.SetDefault("ignore", []string{})
	viper.SetDefault("max_body_mb", 10)
	viper.SetDefault("min_window_width", 24)
	viper.SetDefault("min_window_height", 6)
	viper.SetDefault("taskbar_height", 1)

	// Absence of the config file is fine; defaults and env carry the day.
	_ = viper.ReadInConfig()
}

// Load materializes the Config from viper's merged state.
func Load() Config {
	return Config{
		Root:            viper.GetString("root"),
		ListenAddr:      viper.GetString("listen_addr"),
		ServiceURL:      viper.GetString("service_url"),
		CacheFile:       viper.GetString("cache_file"),
		Ignore:          viper.GetStringSlice("ignore"),
		MaxBodyBytes:    viper.GetInt64("max_body_mb") * 1024 * 1024,
		MinWindowWidth:  viper.GetInt("min_window_width"),
		MinWindowHeight: viper.GetInt("min_window_height"),
		TaskbarHeight:   viper.GetInt("taskbar_height"),
	}
}

func defaultCacheFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "docdesk", "cache.json")
	}
	return filepath.Join(dir, "docdesk", "cache.json")
}
