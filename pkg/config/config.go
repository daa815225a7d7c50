package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Lake     LakeConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Weather  WeatherConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

// LakeConfig is the explicit object-store configuration; the constructed
// gateway owns the client, there is no process-wide singleton.
type LakeConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

type JWTConfig struct {
	SecretKey string
}

type WeatherConfig struct {
	APIKey string
	City   string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("invalid redis database")
		}
		redisDB = parsed
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Makan Apa API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Lake: LakeConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "sigma-lake"),
			UseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "makan_apa"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Weather: WeatherConfig{
			APIKey: getEnv("OPENWEATHER_API_KEY", ""),
			City:   getEnv("CITY", "Banjarmasin"),
		},
	}

	if cfg.Lake.AccessKey == "" || cfg.Lake.SecretKey == "" {
		return nil, errors.New("missing object store credentials")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}
