package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/equiclub/EQC-BookingService/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Catalog  CatalogConfig  `toml:"catalog_service"`
	Mailer   MailerConfig   `toml:"mailer"`
	Jobs     JobsConfig     `toml:"jobs"`
	Policy   PolicyConfig   `toml:"booking_policy"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
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
	MigrationsDir   string `toml:"migrations_dir"`
}

// DSN возвращает строку подключения
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CatalogConfig настройки клиента каталога услуг (таймаут в секундах)
type CatalogConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// MailerConfig настройки отправки писем через SendGrid
type MailerConfig struct {
	Enabled   bool   `toml:"enabled"`
	APIKey    string `toml:"api_key"`
	FromEmail string `toml:"from_email"`
	FromName  string `toml:"from_name"`
}

// JobsConfig cron-расписания фоновых задач
type JobsConfig struct {
	Enabled          bool   `toml:"enabled"`
	PenaltySweepSpec string `toml:"penalty_sweep_spec"`
	ReminderSpec     string `toml:"reminder_spec"`
}

// PolicyConfig бизнес-константы бронирования
// Нулевые значения заменяются дефолтами из domain
type PolicyConfig struct {
	MaxSpotsPerSlot     int     `toml:"max_spots_per_slot"`
	DebtBlockThreshold  float64 `toml:"debt_block_threshold"`
	PenaltyGraceDay     int     `toml:"penalty_grace_day"`
	PenaltyTier1Amount  float64 `toml:"penalty_tier1_amount"`
	PenaltyTier1LastDay int     `toml:"penalty_tier1_last_day"`
	PenaltyTier2Amount  float64 `toml:"penalty_tier2_amount"`
}

// ToDomain конвертирует конфиг политики в доменную модель с подстановкой дефолтов
func (p PolicyConfig) ToDomain() domain.BookingPolicy {
	policy := domain.DefaultBookingPolicy()

	if p.MaxSpotsPerSlot > 0 {
		policy.MaxSpotsPerSlot = p.MaxSpotsPerSlot
	}
	if p.DebtBlockThreshold > 0 {
		policy.DebtBlockThreshold = p.DebtBlockThreshold
	}
	if p.PenaltyGraceDay > 0 {
		policy.PenaltyGraceDay = p.PenaltyGraceDay
	}
	if p.PenaltyTier1Amount > 0 {
		policy.PenaltyTier1Amount = p.PenaltyTier1Amount
	}
	if p.PenaltyTier1LastDay > 0 {
		policy.PenaltyTier1LastDay = p.PenaltyTier1LastDay
	}
	if p.PenaltyTier2Amount > 0 {
		policy.PenaltyTier2Amount = p.PenaltyTier2Amount
	}

	return policy
}

// Load читает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Database.MigrationsDir == "" {
		c.Database.MigrationsDir = "migrations"
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "eqc-booking-service"
	}

	if c.Catalog.Timeout == 0 {
		c.Catalog.Timeout = 5
	}

	if c.Jobs.PenaltySweepSpec == "" {
		// Каждый день в 03:00
		c.Jobs.PenaltySweepSpec = "0 3 * * *"
	}
	if c.Jobs.ReminderSpec == "" {
		// Каждый день в 08:00
		c.Jobs.ReminderSpec = "0 8 * * *"
	}
}

func (c *Config) validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("config: database.user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}
	if c.Catalog.URL == "" {
		return fmt.Errorf("config: catalog_service.url is required")
	}
	if c.Mailer.Enabled && c.Mailer.APIKey == "" {
		return fmt.Errorf("config: mailer.api_key is required when mailer is enabled")
	}
	if c.Mailer.Enabled && c.Mailer.FromEmail == "" {
		return fmt.Errorf("config: mailer.from_email is required when mailer is enabled")
	}
	return nil
}
