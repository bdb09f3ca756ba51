// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like STORAGE_BACKEND, MAIL_PROVIDER
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from the current directory or the project root.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up directories looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders in string config values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// overrideEmptyConfig applies the deployment's historical environment variable
// names when the YAML left the corresponding values empty.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Storage.Postgres.URL == "" {
		if val := os.Getenv("DATABASE_URL"); val != "" {
			cfg.Storage.Postgres.URL = val
		}
	}

	if cfg.Notifications.HREmail == "" {
		if val := os.Getenv("RH_EMAIL"); val != "" {
			cfg.Notifications.HREmail = val
		}
	}

	if cfg.Mail.FromEmail == "" {
		if val := os.Getenv("MAIL_SERVICE_USER"); val != "" {
			cfg.Mail.FromEmail = val
		}
	}
	if cfg.Mail.SMTP.Password == "" {
		if val := os.Getenv("MAIL_SERVICE_PASS"); val != "" {
			cfg.Mail.SMTP.Password = val
		}
	}
	if cfg.Mail.SMTP.Host == "" {
		if val := os.Getenv("SMTP_HOST"); val != "" {
			cfg.Mail.SMTP.Host = val
		}
	}
	if cfg.Mail.SMTP.Port == 0 {
		if val := os.Getenv("SMTP_PORT"); val != "" {
			if port, err := strconv.Atoi(val); err == nil {
				cfg.Mail.SMTP.Port = port
			}
		}
	}
	if cfg.Mail.SMTP.Username == "" {
		if val := os.Getenv("SMTP_USERNAME"); val != "" {
			cfg.Mail.SMTP.Username = val
		}
	}
	if cfg.Mail.SES.Region == "" {
		if val := os.Getenv("AWS_REGION"); val != "" {
			cfg.Mail.SES.Region = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "ponto-intake"
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"*"}
	}

	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = StorageBackendPostgres
	}
	if cfg.Storage.Postgres.SSLMode == "" {
		cfg.Storage.Postgres.SSLMode = "require"
	}
	if cfg.Storage.Spreadsheet.Sheet == "" {
		cfg.Storage.Spreadsheet.Sheet = "REGISTRO"
	}

	if cfg.Mail.Provider == "" {
		cfg.Mail.Provider = MailProviderSMTP
	}
	if cfg.Mail.SMTP.Port == 0 {
		cfg.Mail.SMTP.Port = 587
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig validates the selector fields. Connection targets and
// recipient addresses are checked per operation so that a misconfigured
// deployment still serves structured 500s instead of refusing to boot.
func validateConfig(cfg *Config) error {
	switch cfg.Storage.Backend {
	case StorageBackendPostgres, StorageBackendSpreadsheet:
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q",
			StorageBackendPostgres, StorageBackendSpreadsheet, cfg.Storage.Backend)
	}

	switch cfg.Mail.Provider {
	case MailProviderSMTP, MailProviderSES:
	default:
		return fmt.Errorf("mail.provider must be %q or %q, got %q",
			MailProviderSMTP, MailProviderSES, cfg.Mail.Provider)
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", cfg.Server.Port)
	}

	return nil
}
