package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Slayd содержит всю конфигурацию демона и симулятора.
type Slayd struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	Lore     LoreConfig     `yaml:"lore"`

	// DataDir overrides the built-in game data files when set.
	DataDir string `yaml:"data_dir"`
}

// HTTPConfig holds the inspection/metrics listener settings.
type HTTPConfig struct {
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`
}

// Addr returns host:port for net/http.
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", h.BindAddress, h.Port)
}

// DatabaseConfig holds PostgreSQL connection parameters.
// Lore is kept in memory only when Enabled is false.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// CacheConfig controls slay cache value computation.
type CacheConfig struct {
	Workers int `yaml:"workers"`
}

// LoreConfig настройки книги lore.
type LoreConfig struct {
	CacheSize     int           `yaml:"cache_size"`
	FlushInterval time.Duration `yaml:"flush_interval"`
}

// DefaultSlayd returns Slayd config with sensible defaults.
func DefaultSlayd() Slayd {
	return Slayd{
		LogLevel: "info",
		HTTP: HTTPConfig{
			BindAddress: "127.0.0.1",
			Port:        8088,
		},
		Database: DatabaseConfig{
			Enabled:  false,
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "slays",
			Password: "slays",
			DBName:   "slays",
			SSLMode:  "disable",
		},
		Cache: CacheConfig{
			Workers: 4,
		},
		Lore: LoreConfig{
			CacheSize:     256,
			FlushInterval: 30 * time.Second,
		},
	}
}

// LoadSlayd loads config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadSlayd(path string) (Slayd, error) {
	cfg := DefaultSlayd()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Lore.CacheSize <= 0 {
		return cfg, fmt.Errorf("lore.cache_size must be > 0, got %d", cfg.Lore.CacheSize)
	}
	return cfg, nil
}
