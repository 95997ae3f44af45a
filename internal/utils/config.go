package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/Riboost-Studio/perfect-menu-print-dispatch/internal/model"
)

const DefaultEnvFile = ".env"

// ConfigError lists every problem found while validating the configuration.
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + strings.Join(e.Problems, "; ")
}

// LoadConfig reads envFile (if present) into the process environment and
// parses the environment into a model.Config. Variables already set in the
// environment win over the file.
func LoadConfig(envFile string) (model.Config, error) {
	var cfg model.Config
	if envFile == "" {
		envFile = DefaultEnvFile
	}

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	cfg.EnvFile = envFile
	normalize(&cfg)

	if err := ValidateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func normalize(cfg *model.Config) {
	cfg.APIURL = strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	cfg.APIToken = strings.TrimSpace(cfg.APIToken)
	cfg.RefreshToken = strings.TrimSpace(cfg.RefreshToken)
	cfg.AdminEmail = strings.TrimSpace(cfg.AdminEmail)
	cfg.AdminPassword = strings.TrimSpace(cfg.AdminPassword)
	cfg.RestaurantID = strings.TrimSpace(cfg.RestaurantID)
	cfg.DeviceID = strings.TrimSpace(cfg.DeviceID)
	cfg.Printer.IP = strings.TrimSpace(cfg.Printer.IP)
	cfg.Printer.Name = strings.TrimSpace(cfg.Printer.Name)
	cfg.Printer.Type = model.PrinterType(strings.ToLower(strings.TrimSpace(string(cfg.Printer.Type))))
}

// ValidateConfig checks the settings the daemon cannot start without.
func ValidateConfig(cfg model.Config) error {
	var problems []string

	if cfg.APIURL == "" {
		problems = append(problems, "API_URL is required")
	} else if u, err := url.Parse(cfg.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("API_URL %q is not an absolute URL", cfg.APIURL))
	}

	if cfg.APIToken == "" && !cfg.HasCredentials() {
		problems = append(problems, "API_TOKEN is required unless ADMIN_EMAIL and ADMIN_PASSWORD are set")
	}

	switch cfg.Printer.Type {
	case model.PrinterTypeThermal:
		if cfg.Printer.IP == "" && cfg.Printer.Name == "" {
			problems = append(problems, "thermal printer needs PRINTER_IP (network) or PRINTER_NAME (USB/COM)")
		}
		if cfg.Printer.IP != "" && (cfg.Printer.Port <= 0 || cfg.Printer.Port > 65535) {
			problems = append(problems, fmt.Sprintf("PRINTER_PORT %d is out of range", cfg.Printer.Port))
		}
	case model.PrinterTypeSystem:
		// PRINTER_NAME is optional, the default queue is used without it
	default:
		problems = append(problems, fmt.Sprintf("PRINTER_TYPE %q must be thermal or system", cfg.Printer.Type))
	}

	if cfg.PollingInterval <= 0 {
		problems = append(problems, "POLLING_INTERVAL must be a positive number of milliseconds")
	}
	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("HTTP_PORT %d is out of range", cfg.HTTPPort))
	}

	if len(problems) > 0 {
		return &ConfigError{Problems: problems}
	}
	return nil
}
