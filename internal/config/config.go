package config

import (
	"errors"
	"io/fs"
	"os"
	"slices"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port string `mapstructure:"port" yaml:"port"`
}

// TLSConfig holds the HTTPS settings. MinVersion is one of 1.0, 1.1, 1.2, 1.3.
type TLSConfig struct {
	Enabled    bool   `mapstructure:"enabled" yaml:"enabled"`
	CertFile   string `mapstructure:"cert_file" yaml:"cert_file"`
	KeyFile    string `mapstructure:"key_file" yaml:"key_file"`
	MinVersion string `mapstructure:"min_version" yaml:"min_version"`
}

type StorageConfig struct {
	DBPath   string `mapstructure:"db_path" yaml:"db_path"`     // SQLite file for saved settings
	DataPath string `mapstructure:"data_path" yaml:"data_path"` // Directory for exports.json and export artifacts
}

type ThemesConfig struct {
	File string `mapstructure:"file" yaml:"file"` // Optional YAML file with extra theme presets
}

// GatewayConfig points the push command at a remote settings service
type GatewayConfig struct {
	URL     string        `mapstructure:"url" yaml:"url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type Config struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	TLS     TLSConfig     `mapstructure:"tls" yaml:"tls"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Themes  ThemesConfig  `mapstructure:"themes" yaml:"themes"`
	Gateway GatewayConfig `mapstructure:"gateway" yaml:"gateway"`
}

// Load reads the config file at filePath, if it exists, and applies
// environment overrides on top of the defaults.
func Load(filePath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if err := bindEnvs(v); err != nil {
		return nil, err
	}

	if filePath != "" {
		v.SetConfigFile(filePath)
		if _, err := os.Stat(filePath); !errors.Is(err, fs.ErrNotExist) {
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	err := v.Unmarshal(cfg)

	return cfg, err
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("tls.enabled", false)
	v.SetDefault("tls.min_version", "1.2")
	v.SetDefault("storage.db_path", "./data/ppttheme.db")
	v.SetDefault("storage.data_path", "./data")
	v.SetDefault("gateway.timeout", 30*time.Second)
}

var (
	envBindings = map[string][]string{
		"server.host":       {"PPTTHEME_SERVER_HOST", "SERVER_HOST"},
		"server.port":       {"PPTTHEME_SERVER_PORT", "SERVER_PORT"},
		"tls.enabled":       {"PPTTHEME_TLS_ENABLED", "TLS_ENABLED"},
		"tls.cert_file":     {"PPTTHEME_TLS_CERT_FILE", "TLS_CERT_FILE"},
		"tls.key_file":      {"PPTTHEME_TLS_KEY_FILE", "TLS_KEY_FILE"},
		"tls.min_version":   {"PPTTHEME_TLS_MIN_VERSION", "TLS_MIN_VERSION"},
		"storage.db_path":   {"PPTTHEME_DB_PATH", "DB_PATH"},
		"storage.data_path": {"PPTTHEME_DATA_PATH", "DATA_PATH"},
		"themes.file":       {"PPTTHEME_THEMES_FILE"},
		"gateway.url":       {"PPTTHEME_GATEWAY_URL"},
		"gateway.timeout":   {"PPTTHEME_GATEWAY_TIMEOUT"},
	}
)

func bindEnvs(v *viper.Viper) error {
	for key, envs := range envBindings {
		inputs := slices.Insert(envs, 0, key)

		if err := v.BindEnv(inputs...); err != nil {
			return err
		}
	}

	return nil
}
