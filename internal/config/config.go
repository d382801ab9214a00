package config

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Prefix is prepended to every environment variable name (TM_DB_PATH, ...)
const Prefix = "TM"

const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

// AppName names the data directory under XDG_DATA_HOME
const AppName = "tm"

type Config struct {
	Env      string `envconfig:"ENV" default:"prod"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	// LogFile defaults to tm.log in the data directory
	LogFile string `envconfig:"LOG_FILE"`
	// DBPath defaults to tasks.db in the data directory
	DBPath string `envconfig:"DB_PATH"`
}

// Load reads .env from the working directory when present, then the
// environment, and fills in the path defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(err, "loading .env file")
	}

	cfg := new(Config)
	if err := envconfig.Process(Prefix, cfg); err != nil {
		return nil, errors.Wrap(err, "processing environment")
	}

	if cfg.DBPath == "" || cfg.LogFile == "" {
		dir, err := DataDir()
		if err != nil {
			return nil, err
		}
		if cfg.DBPath == "" {
			cfg.DBPath = filepath.Join(dir, "tasks.db")
		}
		if cfg.LogFile == "" {
			cfg.LogFile = filepath.Join(dir, AppName+".log")
		}
	}

	return cfg, nil
}

// DataDir returns the application data directory. It is not created here.
func DataDir() (string, error) {
	// Use XDG data directory or fallback to home directory
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "resolving home directory")
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, AppName), nil
}
