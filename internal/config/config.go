package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config представляет полную конфигурацию приложения
type Config struct {
	Logs        LogsConfig        `toml:"logs"`
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Redis       RedisConfig       `toml:"redis"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Telegram    TelegramConfig    `toml:"telegram"`
	InfoClinica InfoClinicaConfig `toml:"infoclinica"`
	PatientsAPI PatientsAPIConfig `toml:"patients_api"`
	Booking     BookingConfig     `toml:"booking"`
	Session     SessionConfig     `toml:"session"`
	Worker      WorkerConfig      `toml:"worker"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// ServerConfig содержит настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// RedisConfig хранилище сессий диалога и кэш справочников
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type TelegramConfig struct {
	BotToken   string `toml:"bot_token"`
	WebhookURL string `toml:"webhook_url"` // Опционально для production
}

// InfoClinicaConfig настройки МИС Инфоклиника
type InfoClinicaConfig struct {
	BaseURL   string `toml:"base_url"`
	Timeout   int    `toml:"timeout"` // в секундах
	Cookies   string `toml:"cookies"` // сырая строка Cookie для анонимных запросов
	UserAgent string `toml:"user_agent"`
}

// PatientsAPIConfig API регистрации пациентов (отдельный сервис с JWT)
type PatientsAPIConfig struct {
	URL      string `toml:"url"`
	Login    string `toml:"login"`
	Password string `toml:"password"`
	Timeout  int    `toml:"timeout"`   // в секундах
	TokenTTL int    `toml:"token_ttl"` // в секундах
}

// BookingConfig параметры мастера записи
type BookingConfig struct {
	BranchesPerPage    int `toml:"branches_per_page"`
	DepartmentsPerPage int `toml:"departments_per_page"`
	DoctorsPerPage     int `toml:"doctors_per_page"`
	DaysAhead          int `toml:"days_ahead"`
	SlotMinutes        int `toml:"slot_minutes"`
	OnlineMode         int `toml:"online_mode"`
	RecordsDaysAhead   int `toml:"records_days_ahead"`
	RecordsPageLength  int `toml:"records_page_length"`
}

type SessionConfig struct {
	TTL int `toml:"ttl"` // в секундах
}

type WorkerConfig struct {
	DirectoryRefreshInterval int `toml:"directory_refresh_interval"` // в секундах
	DirectoryCacheTTL        int `toml:"directory_cache_ttl"`        // в секундах
}

// DSN формирует строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// URL строка подключения в формате postgres:// (для мигратора)
func (d DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}

// Load загружает конфигурацию из TOML файла с поддержкой переменных окружения
func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode TOML config: %w", err)
	}

	overrideFromEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// overrideFromEnv переопределяет значения из переменных окружения
func overrideFromEnv(cfg *Config) {
	// Database
	envString("DB_HOST", &cfg.Database.Host)
	envInt("DB_PORT", &cfg.Database.Port)
	envString("DB_USER", &cfg.Database.User)
	envString("DB_PASSWORD", &cfg.Database.Password)
	envString("DB_NAME", &cfg.Database.DBName)
	envString("DB_SSLMODE", &cfg.Database.SSLMode)

	// Redis
	envString("REDIS_ADDR", &cfg.Redis.Addr)
	envString("REDIS_PASSWORD", &cfg.Redis.Password)
	envInt("REDIS_DB", &cfg.Redis.DB)

	envInt("HTTP_PORT", &cfg.Server.HTTPPort)

	envString("LOG_LEVEL", &cfg.Logs.Level)
	envString("LOG_FILE", &cfg.Logs.File)

	// Metrics
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = enabled
		}
	}
	envString("METRICS_PATH", &cfg.Metrics.Path)
	envString("METRICS_SERVICE_NAME", &cfg.Metrics.ServiceName)

	// Telegram
	envString("TELEGRAM_BOT_TOKEN", &cfg.Telegram.BotToken)
	envString("TELEGRAM_WEBHOOK_URL", &cfg.Telegram.WebhookURL)

	// InfoClinica
	envString("INFOCLINICA_BASE_URL", &cfg.InfoClinica.BaseURL)
	envInt("INFOCLINICA_TIMEOUT_SECONDS", &cfg.InfoClinica.Timeout)
	envString("INFOCLINICA_COOKIES", &cfg.InfoClinica.Cookies)

	// Patients API
	envString("INFOCLINICA_PATIENTS_API_URL", &cfg.PatientsAPI.URL)
	envString("INFOCLINICA_PATIENTS_API_LOGIN", &cfg.PatientsAPI.Login)
	envString("INFOCLINICA_PATIENTS_API_PASSWORD", &cfg.PatientsAPI.Password)
	envInt("INFOCLINICA_PATIENTS_API_TIMEOUT_SECONDS", &cfg.PatientsAPI.Timeout)

	envInt("SESSION_TTL", &cfg.Session.TTL)
}

// validate проверяет корректность конфигурации и проставляет значения по умолчанию
func validate(cfg *Config) error {
	if cfg.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if cfg.Database.Port <= 0 || cfg.Database.Port > 65535 {
		return fmt.Errorf("database port must be between 1 and 65535")
	}
	if cfg.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if cfg.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}

	if cfg.Server.HTTPPort <= 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("HTTP port must be between 1 and 65535")
	}

	if cfg.Telegram.BotToken == "" {
		return fmt.Errorf("telegram bot token is required")
	}

	if cfg.InfoClinica.BaseURL == "" {
		return fmt.Errorf("infoclinica base_url is required")
	}
	if cfg.PatientsAPI.URL == "" {
		return fmt.Errorf("patients_api url is required")
	}

	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "info"
	}
	if cfg.Logs.File == "" {
		cfg.Logs.File = "./logs/app.log"
	}

	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}

	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 300 // 5 minutes
	}

	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "clinicbot"
	}

	if cfg.InfoClinica.Timeout == 0 {
		cfg.InfoClinica.Timeout = 30
	}
	if cfg.PatientsAPI.Timeout == 0 {
		cfg.PatientsAPI.Timeout = 30
	}
	if cfg.PatientsAPI.TokenTTL == 0 {
		cfg.PatientsAPI.TokenTTL = 600
	}

	if cfg.Booking.BranchesPerPage <= 0 {
		cfg.Booking.BranchesPerPage = 5
	}
	if cfg.Booking.DepartmentsPerPage <= 0 {
		cfg.Booking.DepartmentsPerPage = 5
	}
	if cfg.Booking.DoctorsPerPage <= 0 {
		cfg.Booking.DoctorsPerPage = 5
	}
	if cfg.Booking.DaysAhead <= 0 {
		cfg.Booking.DaysAhead = 14
	}
	if cfg.Booking.SlotMinutes <= 0 {
		cfg.Booking.SlotMinutes = 30
	}
	if cfg.Booking.RecordsDaysAhead <= 0 {
		cfg.Booking.RecordsDaysAhead = 90
	}
	if cfg.Booking.RecordsPageLength <= 0 {
		cfg.Booking.RecordsPageLength = 100
	}

	if cfg.Session.TTL == 0 {
		cfg.Session.TTL = 86400 // сутки
	}

	if cfg.Worker.DirectoryRefreshInterval == 0 {
		cfg.Worker.DirectoryRefreshInterval = 900
	}
	if cfg.Worker.DirectoryCacheTTL == 0 {
		cfg.Worker.DirectoryCacheTTL = 3600
	}

	return nil
}
