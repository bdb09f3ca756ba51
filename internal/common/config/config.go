// internal/common/config/config.go
package config

import "fmt"

// Storage backend selectors.
const (
	StorageBackendPostgres    = "postgres"
	StorageBackendSpreadsheet = "spreadsheet"
)

// Mail provider selectors.
const (
	MailProviderSMTP = "smtp"
	MailProviderSES  = "ses"
)

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Mail          MailConfig         `mapstructure:"mail"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StorageConfig selects and parameterizes the durable store backend.
type StorageConfig struct {
	Backend     string            `mapstructure:"backend"`
	Postgres    PostgresConfig    `mapstructure:"postgres"`
	Spreadsheet SpreadsheetConfig `mapstructure:"spreadsheet"`
}

type PostgresConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN returns the PostgreSQL connection string. An explicit URL wins over the
// discrete fields. Returns empty when neither is configured; the persistence
// gateway turns that into a configuration error before dialing.
func (p PostgresConfig) DSN() string {
	if p.URL != "" {
		return p.URL
	}
	if p.Host == "" {
		return ""
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// SpreadsheetConfig points at the legacy workbook backend: an XLSX file plus
// the sheet that rows are appended to.
type SpreadsheetConfig struct {
	Path  string `mapstructure:"path"`
	Sheet string `mapstructure:"sheet"`
}

// MailConfig selects and parameterizes the email transport.
type MailConfig struct {
	Provider  string     `mapstructure:"provider"`
	FromEmail string     `mapstructure:"from_email"`
	SMTP      SMTPConfig `mapstructure:"smtp"`
	SES       SESConfig  `mapstructure:"ses"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	UseTLS   bool   `mapstructure:"use_tls"`
}

type SESConfig struct {
	Region string `mapstructure:"region"`
}

// NotificationConfig holds the fixed recipients of adjustment notifications.
type NotificationConfig struct {
	HREmail string `mapstructure:"hr_email"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
