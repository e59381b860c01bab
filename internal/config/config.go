package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER" env-default:"postgres"`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-default:""`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME" env-default:"shopassist"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"disable"`
	MigrationsPath  string        `yaml:"PG_MIGRATIONS" env:"PG_MIGRATIONS" env-default:"migrations"`
	MaxOpenConns    int           `yaml:"PG_MAX_OPEN_CONNS" env:"PG_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `yaml:"PG_MAX_IDLE_CONNS" env:"PG_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"PG_CONN_MAX_LIFETIME" env:"PG_CONN_MAX_LIFETIME" env-default:"30m"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost:6379"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"CACHE_TTL" env:"CACHE_TTL" env-default:"5m"`
}

type Catalog struct {
	// Path of the spreadsheet loaded into the products table at startup.
	// Empty means no bulk load is attempted.
	XLSXPath string `yaml:"CATALOG_XLSX_PATH" env:"CATALOG_XLSX_PATH" env-default:""`
}

type Assistant struct {
	GeminiAPIKey string `yaml:"GEMINI_API_KEY" env:"GEMINI_API_KEY" env-default:""`
	GeminiModel  string `yaml:"GEMINI_MODEL" env:"GEMINI_MODEL" env-default:"gemini-1.5-flash"`
	StoreBaseURL string `yaml:"STORE_BASE_URL" env:"STORE_BASE_URL" env-default:"http://localhost:8080"`
	VerifyToken  string `yaml:"WHATSAPP_VERIFY_TOKEN" env:"WHATSAPP_VERIFY_TOKEN" env-default:"shopassist_verify"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-default:"development"`
	HTTPServer   `yaml:"http_server"`
	Database     Database     `yaml:"database"`
	RedisConnect RedisConnect `yaml:"redis"`
	Cache        CacheConfig  `yaml:"cache"`
	Catalog      Catalog      `yaml:"catalog"`
	Assistant    Assistant    `yaml:"assistant"`
}

// Load reads configuration from the yaml file named by CONFIG_PATH, or from
// the environment when no file is configured. A .env file is honored if present.
func Load() (*Config, error) {

	_ = godotenv.Load()

	var cfg Config

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {

		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file does not exist: %s", configPath)
		}

		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("can not read config file: %w", err)
		}

		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("can not read config from environment: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {

	cfg, err := Load()
	if err != nil {
		log.Fatal(err.Error())
	}

	return cfg
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://:%s@%s/%d", r.Password, r.Host, r.DB)
}
