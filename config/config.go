package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// SysConfig holds system-level options.
type SysConfig struct {
	Workdir  string `yaml:"workdir" json:"workdir"`
	Location string `yaml:"location" json:"location"`
}

// DBConfig holds database connection options. Type selects the backend:
// "sqlite" (default, file under workdir) or "postgres".
type DBConfig struct {
	Type string `yaml:"type" json:"type"`
	Path string `yaml:"path" json:"path"`
	DSN  string `yaml:"dsn" json:"dsn"`
}

// LogConfig holds logger options.
type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

// InventoryConfig holds inventory behavior options.
type InventoryConfig struct {
	LowStockThreshold int `yaml:"low_stock_threshold" json:"low_stock_threshold"`
}

// AppConfig is the full application configuration surface.
type AppConfig struct {
	System    SysConfig       `yaml:"system" json:"system"`
	Database  DBConfig        `yaml:"database" json:"database"`
	Logger    LogConfig       `yaml:"logger" json:"logger"`
	Inventory InventoryConfig `yaml:"inventory" json:"inventory"`
}

// DefaultConfig returns the built-in defaults: a sqlite store under the
// working directory and development logging to stdout.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		System: SysConfig{
			Workdir:  ".",
			Location: "Local",
		},
		Database: DBConfig{
			Type: "sqlite",
			Path: "stockd.db",
		},
		Logger: LogConfig{
			Mode:       "development",
			FileEnable: false,
			Filename:   "stockd.log",
		},
		Inventory: InventoryConfig{
			LowStockThreshold: 5,
		},
	}
}

// LoadConfig builds the configuration from defaults, an optional YAML
// file and environment variable overrides, in that order.
func LoadConfig(path string) (*AppConfig, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	// Missing .env files are acceptable; configuration may come from the
	// environment directly.
	_ = godotenv.Load()
	applyEnv(cfg)

	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	setString(&cfg.System.Workdir, "STOCKD_WORKDIR")
	setString(&cfg.System.Location, "STOCKD_LOCATION")
	setString(&cfg.Database.Type, "STOCKD_DB_TYPE")
	setString(&cfg.Database.Path, "STOCKD_DB_PATH")
	setString(&cfg.Database.DSN, "STOCKD_DB_DSN")
	setString(&cfg.Logger.Mode, "STOCKD_LOG_MODE")
	setString(&cfg.Logger.Filename, "STOCKD_LOG_FILE")
	if v := os.Getenv("STOCKD_LOG_FILE_ENABLE"); v != "" {
		cfg.Logger.FileEnable = cast.ToBool(v)
	}
	if v := os.Getenv("STOCKD_LOW_STOCK_THRESHOLD"); v != "" {
		cfg.Inventory.LowStockThreshold = cast.ToInt(v)
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DBFile resolves the sqlite database file path against the workdir.
func (c *AppConfig) DBFile() string {
	if filepath.IsAbs(c.Database.Path) {
		return c.Database.Path
	}
	return filepath.Join(c.System.Workdir, c.Database.Path)
}
