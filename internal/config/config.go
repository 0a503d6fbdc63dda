package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/tablebook/reservation-service/internal/domain"
	"github.com/tablebook/reservation-service/pkg/types"
)

// Config конфигурация сервиса, загружается один раз при старте
// и не изменяется в рантайме
type Config struct {
	Server    Server    `toml:"server"`
	Database  Database  `toml:"database"`
	Logs      Logs      `toml:"logs"`
	Metrics   Metrics   `toml:"metrics"`
	NATS      NATS      `toml:"nats"`
	Venue     Venue     `toml:"venue"`
	Operators Operators `toml:"operators"`
	Cleanup   Cleanup   `toml:"cleanup"`
}

// Server настройки HTTP сервера
type Server struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// Database настройки подключения к PostgreSQL
type Database struct {
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

// DSN возвращает строку подключения для lib/pq
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Logs настройки логирования
type Logs struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Metrics настройки Prometheus метрик
type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// NATS настройки публикации уведомлений
// При Enabled = false уведомления уходят только в лог
type NATS struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Subject string `toml:"subject"`
}

// Venue параметры заведения: часы работы, интервал слотов, зоны
type Venue struct {
	OpenTime            string       `toml:"open_time"`
	CloseTime           string       `toml:"close_time"`
	LastBookingTime     string       `toml:"last_booking_time"`
	SlotIntervalMinutes int          `toml:"slot_interval_minutes"`
	LookAheadDays       int          `toml:"look_ahead_days"`
	MaxPartySize        int          `toml:"max_party_size"`
	Zones               []VenueZone  `toml:"zones"`
}

// VenueZone зона заведения со своим списком столиков
type VenueZone struct {
	ID     string `toml:"id"`
	Name   string `toml:"name"`
	Tables []int  `toml:"tables"`
}

// Operators статический список операторов
type Operators struct {
	IDs []int64 `toml:"ids"`
}

// Cleanup настройки фоновой очистки просроченных бронирований
type Cleanup struct {
	IntervalSeconds int `toml:"interval_seconds"`
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// VenueConfig конвертирует секцию [venue] в доменную конфигурацию
func (c *Config) VenueConfig() domain.VenueConfig {
	zones := make([]domain.Zone, 0, len(c.Venue.Zones))
	for _, z := range c.Venue.Zones {
		zones = append(zones, domain.Zone{
			ID:     z.ID,
			Name:   z.Name,
			Tables: append([]int(nil), z.Tables...),
		})
	}

	return domain.VenueConfig{
		OpenTime:            types.TimeString(c.Venue.OpenTime),
		CloseTime:           types.TimeString(c.Venue.CloseTime),
		LastBookingTime:     types.TimeString(c.Venue.LastBookingTime),
		SlotIntervalMinutes: c.Venue.SlotIntervalMinutes,
		LookAheadDays:       c.Venue.LookAheadDays,
		MaxPartySize:        c.Venue.MaxPartySize,
		Zones:               zones,
	}
}

// IsOperator проверяет, входит ли пользователь в статический список операторов
func (c *Config) IsOperator(requesterID int64) bool {
	for _, id := range c.Operators.IDs {
		if id == requesterID {
			return true
		}
	}
	return false
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "info"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.NATS.Subject == "" {
		cfg.NATS.Subject = "reservations.status"
	}
	if cfg.Venue.SlotIntervalMinutes == 0 {
		cfg.Venue.SlotIntervalMinutes = domain.DefaultSlotIntervalMinutes
	}
	if cfg.Venue.LookAheadDays == 0 {
		cfg.Venue.LookAheadDays = domain.DefaultLookAheadDays
	}
	if cfg.Venue.MaxPartySize == 0 {
		cfg.Venue.MaxPartySize = domain.DefaultMaxPartySize
	}
	if cfg.Cleanup.IntervalSeconds == 0 {
		cfg.Cleanup.IntervalSeconds = 60
	}
}

func validate(cfg *Config) error {
	for _, field := range []struct {
		name  string
		value string
	}{
		{"venue.open_time", cfg.Venue.OpenTime},
		{"venue.close_time", cfg.Venue.CloseTime},
		{"venue.last_booking_time", cfg.Venue.LastBookingTime},
	} {
		if err := types.TimeString(field.value).Validate(); err != nil {
			return fmt.Errorf("config: %s: %w", field.name, err)
		}
	}

	open := types.TimeString(cfg.Venue.OpenTime)
	last := types.TimeString(cfg.Venue.LastBookingTime)
	closeTime := types.TimeString(cfg.Venue.CloseTime)

	if !open.IsBefore(closeTime) {
		return fmt.Errorf("config: venue.open_time must be before venue.close_time")
	}
	if last.IsAfter(closeTime) {
		return fmt.Errorf("config: venue.last_booking_time must not be after venue.close_time")
	}
	if cfg.Venue.SlotIntervalMinutes <= 0 {
		return fmt.Errorf("config: venue.slot_interval_minutes must be positive")
	}
	if len(cfg.Venue.Zones) == 0 {
		return fmt.Errorf("config: at least one venue zone is required")
	}

	seen := make(map[string]struct{}, len(cfg.Venue.Zones))
	for _, z := range cfg.Venue.Zones {
		if z.ID == "" {
			return fmt.Errorf("config: zone id must not be empty")
		}
		if _, ok := seen[z.ID]; ok {
			return fmt.Errorf("config: duplicate zone id %q", z.ID)
		}
		seen[z.ID] = struct{}{}
		if len(z.Tables) == 0 {
			return fmt.Errorf("config: zone %q has no tables", z.ID)
		}
	}

	return nil
}
