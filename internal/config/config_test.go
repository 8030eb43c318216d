package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/label-bridge/internal/domain/enum"
	"github.com/sangkips/label-bridge/pkg/printer"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:5001", cfg.App.Addr())
	assert.Equal(t, "DYMO LabelWriter 450", cfg.Printer.Name)
	assert.Equal(t, printer.DefaultType(), cfg.Printer.Driver)
	assert.Equal(t, enum.Rotation90, cfg.Printer.Rotation)
	assert.Equal(t, enum.TransportGDI, cfg.Printer.Method)
	assert.Equal(t, "DYMO Website Print", cfg.Printer.JobName)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []string{"GET", "POST", "OPTIONS"}, cfg.CORS.AllowedMethods)
	assert.Empty(t, cfg.CORS.AllowedHeaders)
	assert.Equal(t, 30, cfg.RateLimit.Requests)
	assert.Equal(t, 60, cfg.RateLimit.Duration)
	assert.Equal(t, "info", cfg.Log.Level)

	assert.NoError(t, cfg.Validate())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("APP_PORT", "8080")
	v.Set("PRINTER_NAME", "  DYMO LabelWriter 550 ")
	v.Set("PRINTER_DRIVER", "Network")
	v.Set("PRINTER_ADDRESS", "192.168.1.40:9100")
	v.Set("PRINTER_ROTATION", "270")
	v.Set("PRINTER_METHOD", "raw")
	v.Set("CORS_ALLOWED_ORIGINS", "http://localhost:3000, http://127.0.0.1:3000")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.App.Addr())
	assert.Equal(t, "DYMO LabelWriter 550", cfg.Printer.Name)
	assert.Equal(t, printer.TypeNetwork, cfg.Printer.Driver)
	assert.Equal(t, enum.Rotation270, cfg.Printer.Rotation)
	assert.Equal(t, enum.TransportRAW, cfg.Printer.Method)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORS.AllowedOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestFromViper_RejectsBadValues(t *testing.T) {
	v := viper.New()
	v.Set("PRINTER_ROTATION", 180)
	_, err := fromViper(v)
	assert.ErrorContains(t, err, "PRINTER_ROTATION")

	v = viper.New()
	v.Set("PRINTER_METHOD", "PDF")
	_, err = fromViper(v)
	assert.ErrorContains(t, err, "PRINTER_METHOD")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := fromViper(viper.New())
		require.NoError(t, err)
		cfg.Printer.Driver = printer.TypeNone
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty printer name", func(c *Config) { c.Printer.Name = "" }, "PRINTER_NAME"},
		{"unknown driver", func(c *Config) { c.Printer.Driver = "cups" }, "PRINTER_DRIVER"},
		{"network without address", func(c *Config) { c.Printer.Driver = printer.TypeNetwork }, "PRINTER_ADDRESS"},
		{"no origins", func(c *Config) { c.CORS.AllowedOrigins = nil }, "CORS_ALLOWED_ORIGINS"},
		{"zero rate limit", func(c *Config) { c.RateLimit.Requests = 0 }, "RATE_LIMIT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}

	cfg := valid()
	cfg.Printer.Name = ""
	cfg.CORS.AllowedOrigins = nil
	err := cfg.Validate()
	assert.ErrorContains(t, err, "PRINTER_NAME")
	assert.ErrorContains(t, err, "CORS_ALLOWED_ORIGINS")
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b ,"))
}
