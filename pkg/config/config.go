// Package config loads settings from an optional key=value file and the
// environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DefaultFile is the settings file read when none is given.
const DefaultFile = "settings.env"

// Config holds every tunable of the tide clock. Defaults produce a working
// clock for St. Petersburg FL with only a console display.
type Config struct {
	// Station is the NOAA tide station to poll.
	Station int `default:"8726724"`

	// UpdateInterval is how old fetched data may get before a refetch;
	// a day change always forces one.
	UpdateInterval time.Duration `split_words:"true" default:"1h"`
	// TickInterval is how often the loop wakes to check the clock.
	TickInterval time.Duration `split_words:"true" default:"30s"`

	// TimezoneOffset is the station's UTC offset in hours. Leave unset to
	// use the system time zone.
	TimezoneOffset *int   `split_words:"true"`
	NTPServer      string `envconfig:"NTP_SERVER" default:"time.google.com"`
	NTPSync        bool   `envconfig:"NTP_SYNC" default:"true"`

	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel string `split_words:"true" default:"info"`

	// RenderMode is "bars" or "dots"; ColorScheme is "clock" or "levels".
	RenderMode  string `split_words:"true" default:"bars"`
	ColorScheme string `split_words:"true" default:"clock"`

	DBPath string `envconfig:"DB_PATH" default:"tideclock.db"`

	// Lat and Lon locate the station for sunrise/sunset.
	Lat float64 `default:"27.7606"`
	Lon float64 `default:"-82.6269"`

	Console bool       `default:"true"`
	MQTT    MQTTConfig `split_words:"true"`

	// HTTP client retry knobs for the NOAA API.
	RetryCount   int           `split_words:"true" default:"3"`
	RetryWait    time.Duration `split_words:"true" default:"2s"`
	RetryMaxWait time.Duration `split_words:"true" default:"30s"`
	FetchTimeout time.Duration `split_words:"true" default:"30s"`

	// MaxFailures is the consecutive fetch failure count that enters safe
	// mode.
	MaxFailures int `split_words:"true" default:"5"`
}

// MQTTConfig configures publishing frames to the LED hardware's broker.
type MQTTConfig struct {
	Enabled     bool
	Broker      string
	Username    string
	Password    string
	TopicPrefix string `split_words:"true" default:"tideclock"`
}

// Load reads the settings file if it exists, then the environment, then
// validates.
func Load(file string) (*Config, error) {
	if file == "" {
		file = DefaultFile
	}
	if _, err := os.Stat(file); err == nil {
		if err := godotenv.Load(file); err != nil {
			return nil, fmt.Errorf("can't load settings file %s: %w", file, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("can't process environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Station <= 0 {
		return fmt.Errorf("STATION must be a positive station id, got %d", c.Station)
	}
	if c.RenderMode != "bars" && c.RenderMode != "dots" {
		return fmt.Errorf("RENDER_MODE must be bars or dots, got %q", c.RenderMode)
	}
	if c.ColorScheme != "clock" && c.ColorScheme != "levels" {
		return fmt.Errorf("COLOR_SCHEME must be clock or levels, got %q", c.ColorScheme)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("TICK_INTERVAL must be positive, got %s", c.TickInterval)
	}
	if c.UpdateInterval < c.TickInterval {
		return fmt.Errorf("UPDATE_INTERVAL %s shorter than TICK_INTERVAL %s", c.UpdateInterval, c.TickInterval)
	}
	if c.MQTT.Enabled && c.MQTT.Broker == "" {
		return fmt.Errorf("MQTT_BROKER is required when MQTT_ENABLED is true")
	}
	if c.MaxFailures < 1 {
		return fmt.Errorf("MAX_FAILURES must be at least 1, got %d", c.MaxFailures)
	}
	return nil
}

// Location resolves the configured timezone offset, falling back to the
// system's local zone.
func (c *Config) Location() *time.Location {
	if c.TimezoneOffset == nil {
		return time.Local
	}
	return time.FixedZone("LST", *c.TimezoneOffset*60*60)
}
