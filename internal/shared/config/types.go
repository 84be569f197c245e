package config

import (
	"fmt"
	"os"
	"path/filepath"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`

	// MessagesPerMinute caps sends per user; enforced only when Redis is enabled.
	MessagesPerMinute int `mapstructure:"messages_per_minute"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig selects one of the supported gorm dialectors.
// Driver is one of "postgres", "mysql" or "sqlite"; for sqlite, Database is the file path.
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	switch d.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.Username, d.Password, d.Host, d.Port, d.Database)
	case "sqlite":
		return d.Database
	default:
		sslMode := d.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			d.Host, d.Port, d.Username, d.Password, d.Database, sslMode)
	}
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// RealtimeConfig tunes the websocket change feed.
type RealtimeConfig struct {
	ChannelPrefix    string `mapstructure:"channel_prefix"`
	SubscriberBuffer int    `mapstructure:"subscriber_buffer"`
	PingSeconds      int    `mapstructure:"ping_seconds"`
}

type NotificationsConfig struct {
	// OnMessage creates a cabinet_message notification for every recipient of a sent message.
	OnMessage bool `mapstructure:"on_message"`
}

// PermissionConfig holds casbin policy lines in the "p, role, object, action" form.
type PermissionConfig struct {
	Policies []string `mapstructure:"policies"`
}

// ClientConfig drives the `inbox` sub-command.
type ClientConfig struct {
	APIBaseURL        string `mapstructure:"api_base_url"`
	Token             string `mapstructure:"token"`
	CabinetID         string `mapstructure:"cabinet_id"`
	StorePath         string `mapstructure:"store_path"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds"`
	ReconcileSchedule string `mapstructure:"reconcile_schedule"`
}

// GetStorePath returns the marker store location, defaulting to the user config dir.
func (c *ClientConfig) GetStorePath() string {
	if c.StorePath != "" {
		return c.StorePath
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "cabinet-inbox.db"
	}
	return filepath.Join(dir, "cabinet", "inbox.db")
}
