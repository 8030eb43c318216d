package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"

	"github.com/sangkips/label-bridge/internal/domain/enum"
	"github.com/sangkips/label-bridge/pkg/printer"
)

type Config struct {
	App       AppConfig
	Printer   PrinterConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

type AppConfig struct {
	Name string
	Env  string
	Host string
	Port string
}

// PrinterConfig describes the single label printer the bridge drives.
type PrinterConfig struct {
	Name       string
	Driver     string
	DevicePath string
	Address    string
	Rotation   enum.Rotation
	Method     enum.Transport
	JobName    string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads .env and the environment. It returns an error when a value
// cannot be parsed; run Validate for the cross-field checks.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "label-bridge")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_HOST", "127.0.0.1")
	v.SetDefault("APP_PORT", "5001")
	v.SetDefault("PRINTER_NAME", "DYMO LabelWriter 450")
	v.SetDefault("PRINTER_DRIVER", printer.DefaultType())
	v.SetDefault("PRINTER_DEVICE_PATH", "/dev/usb/lp0")
	v.SetDefault("PRINTER_ADDRESS", "")
	v.SetDefault("PRINTER_ROTATION", 90)
	v.SetDefault("PRINTER_METHOD", "GDI")
	v.SetDefault("PRINTER_JOB_NAME", "DYMO Website Print")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_METHODS", "GET,POST,OPTIONS")
	v.SetDefault("CORS_ALLOWED_HEADERS", "")
	v.SetDefault("RATE_LIMIT_REQUESTS", 30)
	v.SetDefault("RATE_LIMIT_DURATION", 60)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
}

func fromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	rotation, err := enum.ParseRotation(v.GetInt("PRINTER_ROTATION"))
	if err != nil {
		return nil, fmt.Errorf("config: PRINTER_ROTATION: %w", err)
	}
	method, err := enum.ParseTransport(v.GetString("PRINTER_METHOD"))
	if err != nil {
		return nil, fmt.Errorf("config: PRINTER_METHOD: %w", err)
	}

	return &Config{
		App: AppConfig{
			Name: v.GetString("APP_NAME"),
			Env:  v.GetString("APP_ENV"),
			Host: v.GetString("APP_HOST"),
			Port: v.GetString("APP_PORT"),
		},
		Printer: PrinterConfig{
			Name:       strings.TrimSpace(v.GetString("PRINTER_NAME")),
			Driver:     strings.ToLower(v.GetString("PRINTER_DRIVER")),
			DevicePath: v.GetString("PRINTER_DEVICE_PATH"),
			Address:    v.GetString("PRINTER_ADDRESS"),
			Rotation:   rotation,
			Method:     method,
			JobName:    v.GetString("PRINTER_JOB_NAME"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: splitList(v.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders: splitList(v.GetString("CORS_ALLOWED_HEADERS")),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: v.GetInt("RATE_LIMIT_DURATION"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}, nil
}

// Validate checks the values Load cannot check one at a time.
func (c *Config) Validate() error {
	var errs []error
	if c.Printer.Name == "" {
		errs = append(errs, errors.New("PRINTER_NAME is required"))
	}
	switch c.Printer.Driver {
	case printer.TypeWindows, printer.TypeDevice, printer.TypeNetwork, printer.TypeNone:
	default:
		errs = append(errs, fmt.Errorf("PRINTER_DRIVER %q is not one of windows, device, network, none", c.Printer.Driver))
	}
	if c.Printer.Driver == printer.TypeNetwork && c.Printer.Address == "" {
		errs = append(errs, errors.New("PRINTER_ADDRESS is required for the network driver"))
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS is required"))
	}
	if c.RateLimit.Requests <= 0 || c.RateLimit.Duration <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_REQUESTS and RATE_LIMIT_DURATION must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Addr is the listen address of the HTTP bridge.
func (c *AppConfig) Addr() string {
	return c.Host + ":" + c.Port
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
