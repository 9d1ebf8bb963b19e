package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"`
}

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

type StorageConfig struct {
	Driver string `yaml:"driver"`
	// JSONPath is the directory the file driver writes to.
	JSONPath string `yaml:"jsonPath"`
	// Namespace seeds model ids; empty means the built-in namespace.
	Namespace string `yaml:"namespace"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslMode"`
}

func (d DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type JWTConfig struct {
	Secret          string `yaml:"secret"`
	ExpirationHours int    `yaml:"expirationHours"`
	// AdminPasswordHash is the bcrypt hash the admin logs in with.
	AdminPasswordHash string `yaml:"adminPasswordHash"`
	// APIKeyHash is the hex sha256 of the key accepted by the ApiKey scheme.
	APIKeyHash string `yaml:"apiKeyHash"`
}

func (j JWTConfig) ExpirationDuration() time.Duration {
	return time.Duration(j.ExpirationHours) * time.Hour
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func defaults() *Config {
	return &Config{
		Server:  ServerConfig{Port: "8080", Mode: "debug"},
		Storage: StorageConfig{Driver: DriverMemory, JSONPath: "json"},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    "5432",
			User:    "postgres",
			Name:    "cms",
			SSLMode: "disable",
		},
		JWT: JWTConfig{ExpirationHours: 24},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the YAML file named by CONFIG_FILE, if any, then applies
// environment overrides on top of it.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read config from %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "failed to parse config %s", path)
		}
	}

	override(&cfg.Server.Port, "SERVER_PORT")
	override(&cfg.Server.Mode, "GIN_MODE")
	override(&cfg.Storage.Driver, "STORAGE_DRIVER")
	override(&cfg.Storage.JSONPath, "JSON_PATH")
	override(&cfg.Storage.Namespace, "UUID_NAMESPACE")
	override(&cfg.Database.Host, "DB_HOST")
	override(&cfg.Database.Port, "DB_PORT")
	override(&cfg.Database.User, "DB_USER")
	override(&cfg.Database.Password, "DB_PASSWORD")
	override(&cfg.Database.Name, "DB_NAME")
	override(&cfg.Database.SSLMode, "DB_SSLMODE")
	override(&cfg.JWT.Secret, "JWT_SECRET")
	override(&cfg.JWT.AdminPasswordHash, "ADMIN_PASSWORD_HASH")
	override(&cfg.JWT.APIKeyHash, "API_KEY_HASH")
	override(&cfg.Log.Level, "LOG_LEVEL")

	if v := os.Getenv("JWT_EXPIRATION_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.Wrap(err, "invalid JWT_EXPIRATION_HOURS")
		}
		cfg.JWT.ExpirationHours = hours
	}

	switch cfg.Storage.Driver {
	case DriverMemory, DriverFile, DriverPostgres:
	default:
		return nil, errors.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	return cfg, nil
}

func override(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
