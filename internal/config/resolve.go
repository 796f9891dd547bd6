package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/verte-zerg/studypick/internal/model"
)

// Environment overrides.
const (
	EnvDBPath  = "STUDYPICK_DB"
	EnvLogFile = "STUDYPICK_LOG"
	EnvBell    = "STUDYPICK_BELL"
)

// LoadEnv loads a .env file from the working directory when one exists.
func LoadEnv() {
	// A missing .env is the common case.
	_ = godotenv.Load()
}

// Resolve merges defaults, the config file and environment overrides.
// Environment values win over the file.
func Resolve(file FileConfig) model.Config {
	cfg := model.Config{
		DBPath: DefaultDBPath(),
		Bell:   true,
	}
	if file.Storage.Path != nil && *file.Storage.Path != "" {
		cfg.DBPath = *file.Storage.Path
	}
	if file.Notify.Bell != nil {
		cfg.Bell = *file.Notify.Bell
	}
	if file.Log.File != nil {
		cfg.LogFile = *file.Log.File
	}
	cfg.DBPath = envOr(EnvDBPath, cfg.DBPath)
	cfg.LogFile = envOr(EnvLogFile, cfg.LogFile)
	if v := os.Getenv(EnvBell); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Bell = b
		}
	}
	return cfg
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
