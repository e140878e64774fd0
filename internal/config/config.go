package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageFile  = "file"
	StorageMinio = "minio"
)

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer HTTPServer `yaml:"http_server"`
	DB         DB         `yaml:"db"`
	Cache      Cache      `yaml:"cache"`
	Storage    Storage    `yaml:"storage"`
	AdminToken string     `yaml:"admin_token" env:"ADMIN_TOKEN"`
	Seed       Seed       `yaml:"seed"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type DB struct {
	Addr     string `yaml:"addr" env:"DB_ADDR" env-default:"localhost"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	DB       string `yaml:"db" env:"DB_NAME" env-default:"ipb"`
}

type Cache struct {
	Addr       string        `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password   string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB         int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	SessionTTL time.Duration `yaml:"session_ttl" env-default:"24h"`
	IPBTTL     time.Duration `yaml:"ipb_ttl" env-default:"5m"`
}

type Storage struct {
	Backend       string `yaml:"backend" env:"STORAGE_BACKEND" env-default:"file"`
	Path          string `yaml:"path" env:"STORAGE_PATH" env-default:"./uploads"`
	MaxUploadSize int64  `yaml:"max_upload_size" env-default:"5242880"`
	Minio         Minio  `yaml:"minio"`
}

type Minio struct {
	Endpoint  string `yaml:"endpoint" env:"MINIO_ENDPOINT"`
	AccessKey string `yaml:"access_key" env:"MINIO_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"MINIO_SECRET_KEY"`
	Bucket    string `yaml:"bucket" env:"MINIO_BUCKET" env-default:"ipb-attachments"`
	UseSSL    bool   `yaml:"use_ssl" env:"MINIO_USE_SSL"`
}

type Seed struct {
	DefaultPassword string `yaml:"default_password" env:"SEED_DEFAULT_PASSWORD" env-default:"password123"`
}

// MustLoad reads the file named by -config or CONFIG_PATH and panics when it
// is missing or malformed.
func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	cfg, err := Load(path)
	if err != nil {
		panic(err.Error())
	}

	return cfg
}

func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case StorageFile:
	case StorageMinio:
		if c.Storage.Minio.Endpoint == "" {
			return fmt.Errorf("storage.minio.endpoint is required for the minio backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	if c.Storage.MaxUploadSize <= 0 {
		return fmt.Errorf("storage.max_upload_size must be positive")
	}

	return nil
}

// fetchConfigPath prefers the -config flag over the CONFIG_PATH variable.
func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
