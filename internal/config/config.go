// Package config resolves settings from flags, PREPSMART_* environment
// variables and optional .env files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/prepsmart/internal/store"
)

// EnvPrefix prefixes every environment variable read by viper.
const EnvPrefix = "PREPSMART"

// Keys. Flag names match keys; env names are PREPSMART_ + upper snake case.
const (
	KeyDB         = "db"
	KeyCatalogDir = "catalog-dir"
	KeyLogFile    = "log-file"
	KeyLogLevel   = "log-level"
	KeyQuizDelay  = "quiz-delay"
	KeyDebug      = "debug"
)

// Config is the resolved application configuration.
type Config struct {
	DBPath     string
	CatalogDir string
	LogFile    string
	LogLevel   string
	QuizDelay  time.Duration
	Debug      bool
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetDefault(KeyDB, "")
	v.SetDefault(KeyCatalogDir, "")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyQuizDelay, time.Second)
	v.SetDefault(KeyDebug, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// RegisterFlags adds the persistent flags backing the config keys.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(KeyDB, "", "Path to SQLite database file (overrides PREPSMART_DB env var)")
	fs.String(KeyCatalogDir, "", "Directory of extra module YAML files")
	fs.String(KeyLogFile, "", `Log file path ("-" for stderr; default beside the database)`)
	fs.String(KeyLogLevel, "info", "Log level: debug, info, warn, error")
	fs.Duration(KeyQuizDelay, time.Second, "Pause between quiz questions")
	fs.Bool(KeyDebug, false, "Human-readable development logging")
}

// BindFlags binds every config key to its flag in fs. Set flags win over env.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, key := range []string{KeyDB, KeyCatalogDir, KeyLogFile, KeyLogLevel, KeyQuizDelay, KeyDebug} {
		if f := fs.Lookup(key); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag %s: %w", key, err)
			}
		}
	}
	return nil
}

// LoadDotEnv loads each existing file into the process environment. Variables
// already set are not overridden; missing files are ignored.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("stat %s: %w", p, err)
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// DotEnvPaths returns the .env files consulted at startup, lowest priority last.
func DotEnvPaths() []string {
	paths := []string{".env"}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			configHome = filepath.Join(home, ".config")
		}
	}
	if configHome != "" {
		paths = append(paths, filepath.Join(configHome, "prepsmart", ".env"))
	}
	return paths
}

// Load resolves the configuration. An empty DB path falls back to
// store.DefaultDBPath; an empty log file goes beside the database.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DBPath:     v.GetString(KeyDB),
		CatalogDir: v.GetString(KeyCatalogDir),
		LogFile:    v.GetString(KeyLogFile),
		LogLevel:   v.GetString(KeyLogLevel),
		QuizDelay:  v.GetDuration(KeyQuizDelay),
		Debug:      v.GetBool(KeyDebug),
	}

	if cfg.DBPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		cfg.DBPath = p
	} else if err := store.EnsureDir(cfg.DBPath); err != nil {
		return nil, fmt.Errorf("create DB dir: %w", err)
	}

	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(filepath.Dir(cfg.DBPath), "prepsmart.log")
	}
	if cfg.QuizDelay < 0 {
		return nil, fmt.Errorf("quiz delay must not be negative: %s", cfg.QuizDelay)
	}
	return cfg, nil
}
