package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Bootstrap BootstrapConfig `mapstructure:"bootstrap"`
	WebSocket WebSocketConfig `mapstructure:"websocket"`
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	ReadTimeout    int      `mapstructure:"read_timeout"`
	WriteTimeout   int      `mapstructure:"write_timeout"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// RunMigrations: применять миграции при старте сервера
	RunMigrations bool `mapstructure:"run_migrations"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig содержит унифицированные настройки подключения к Redis.
// Поддерживает режимы: single, sentinel, cluster
type RedisConfig struct {
	// Enabled: без Redis кеш викторин и rate limiting отключаются
	Enabled bool   `mapstructure:"enabled"`
	Mode    string `mapstructure:"mode"`

	// Addrs: список адресов (хост:порт). Для 'single' используется первый.
	Addrs []string `mapstructure:"addrs"`
	// Addr: адрес для режима 'single', если Addrs пуст.
	Addr string `mapstructure:"addr"`

	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	MasterName string `mapstructure:"master_name"`

	MaxRetries      int `mapstructure:"max_retries"`
	MinRetryBackoff int `mapstructure:"min_retry_backoff"` // мс
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"` // мс
}

// CacheConfig содержит настройки кеширования викторин
type CacheConfig struct {
	QuizTTLSeconds int `mapstructure:"quiz_ttl_seconds"`
}

// QuizTTL возвращает время жизни кеша викторин
func (c CacheConfig) QuizTTL() time.Duration {
	return time.Duration(c.QuizTTLSeconds) * time.Second
}

// RateLimitConfig содержит настройки ограничения запросов к /api/auth
type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowSeconds int `mapstructure:"window_seconds"`
}

// BootstrapConfig описывает учетную запись администратора, создаваемую при первом запуске
type BootstrapConfig struct {
	AdminUsername string `mapstructure:"admin_username"`
	AdminPassword string `mapstructure:"admin_password"`
}

// WebSocketConfig содержит настройки live-ленты результатов
type WebSocketConfig struct {
	ClientSendBuffer int `mapstructure:"client_send_buffer"`
	PingInterval     int `mapstructure:"ping_interval"` // секунды
	PongWait         int `mapstructure:"pong_wait"`     // секунды
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// MigrateURL формирует URL подключения в формате, который понимает golang-migrate
func (d *DatabaseConfig) MigrateURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

func setDefaults(vip *viper.Viper) {
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.read_timeout", 15)
	vip.SetDefault("server.write_timeout", 15)
	vip.SetDefault("server.allowed_origins", []string{"*"})
	vip.SetDefault("server.run_migrations", true)

	vip.SetDefault("database.host", "localhost")
	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.user", "postgres")
	vip.SetDefault("database.dbname", "online_quiz_system")
	vip.SetDefault("database.sslmode", "disable")

	vip.SetDefault("redis.enabled", false)
	vip.SetDefault("redis.mode", "single")
	vip.SetDefault("redis.addr", "localhost:6379")

	vip.SetDefault("cache.quiz_ttl_seconds", 300)

	vip.SetDefault("rate_limit.max_requests", 5)
	vip.SetDefault("rate_limit.window_seconds", 60)

	vip.SetDefault("bootstrap.admin_username", "admin")
	vip.SetDefault("bootstrap.admin_password", "admin123")

	vip.SetDefault("websocket.client_send_buffer", 32)
	vip.SetDefault("websocket.ping_interval", 30)
	vip.SetDefault("websocket.pong_wait", 60)
}

// Load загружает конфигурацию: .env, затем файл конфигурации, затем переменные окружения
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[Config] Не удалось прочитать .env: %v", err)
	}

	vip := viper.New() // Отдельный экземпляр, без глобального состояния
	setDefaults(vip)

	// Переменные окружения привязываем явно
	vip.BindEnv("server.port", "SERVER_PORT")
	vip.BindEnv("server.allowed_origins", "SERVER_ALLOWED_ORIGINS")
	vip.BindEnv("server.run_migrations", "SERVER_RUN_MIGRATIONS")

	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	vip.BindEnv("redis.enabled", "REDIS_ENABLED")
	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	vip.BindEnv("cache.quiz_ttl_seconds", "CACHE_QUIZ_TTL_SECONDS")

	vip.BindEnv("bootstrap.admin_username", "BOOTSTRAP_ADMIN_USERNAME")
	vip.BindEnv("bootstrap.admin_password", "BOOTSTRAP_ADMIN_PASSWORD")

	if configPath != "" {
		vip.SetConfigFile(configPath)
		// Файла может не быть: тогда работают env и значения по умолчанию
		if err := vip.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
				log.Printf("[Config] Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("[Config] Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("[Config] Database: %s@%s:%s/%s (sslmode=%s)",
			cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName, cfg.Database.SSLMode)
		log.Printf("[Config] Redis enabled: %t, mode: %s", cfg.Redis.Enabled, cfg.Redis.Mode)
		log.Printf("[Config] Server port: %s", cfg.Server.Port)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		return fmt.Errorf("database configuration (host, dbname, user) is incomplete in config (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}
	if os.Getenv("GIN_MODE") == "release" && c.Database.Password == "" {
		return fmt.Errorf("database password is required in release mode (check DATABASE_PASSWORD env var)")
	}
	if c.Redis.Enabled && len(c.Redis.Addrs) == 0 && c.Redis.Addr == "" {
		return fmt.Errorf("redis is enabled but no address is configured (check REDIS_ADDR or REDIS_ADDRS env vars)")
	}
	return nil
}
