package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Device   DeviceConfig   `yaml:"device"`
	WiFi     WiFiConfig     `yaml:"wifi"`
	Store    StoreConfig    `yaml:"store"`
	Sampling SamplingConfig `yaml:"sampling"`
	Hardware HardwareConfig `yaml:"hardware"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type DeviceConfig struct {
	ID string `yaml:"id"`
}

type WiFiConfig struct {
	SSID     string `yaml:"ssid"`
	Password string `yaml:"password"`
}

type StoreConfig struct {
	// Backend selects the sync target: "rtdb" or "postgres".
	Backend  string         `yaml:"backend"`
	RTDB     RTDBConfig     `yaml:"rtdb"`
	Postgres PostgresConfig `yaml:"postgres"`
}

type RTDBConfig struct {
	DatabaseURL string        `yaml:"database_url"`
	Secret      string        `yaml:"database_secret"`
	Timeout     time.Duration `yaml:"timeout"`
}

type PostgresConfig struct {
	ConnString string `yaml:"conn_string"`
	Table      string `yaml:"table"`
}

type SamplingConfig struct {
	Interval time.Duration `yaml:"interval"`
	Gas      GasConfig     `yaml:"gas"`
}

type GasConfig struct {
	RawMin int     `yaml:"raw_min"`
	RawMax int     `yaml:"raw_max"`
	PPMMin float64 `yaml:"ppm_min"`
	PPMMax float64 `yaml:"ppm_max"`
}

type HardwareConfig struct {
	// Simulated swaps the periph.io drivers for deterministic
	// stand-ins so the node runs without sensors attached.
	Simulated  bool   `yaml:"simulated"`
	I2CBus     string `yaml:"i2c_bus"`
	ThermoAddr uint16 `yaml:"thermo_addr"`
	ADCChannel int    `yaml:"adc_channel"`
	MotionPin  string `yaml:"motion_pin"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) ApplyDefaults() {
	if c.Store.Backend == "" {
		c.Store.Backend = "rtdb"
	}
	if c.Store.RTDB.Timeout == 0 {
		c.Store.RTDB.Timeout = 10 * time.Second
	}
	if c.Store.Postgres.Table == "" {
		c.Store.Postgres.Table = "readings"
	}
	if c.Sampling.Interval == 0 {
		c.Sampling.Interval = 30 * time.Second
	}
	if c.Sampling.Gas.RawMax == 0 {
		c.Sampling.Gas.RawMax = 4095
	}
	if c.Sampling.Gas.PPMMin == 0 {
		c.Sampling.Gas.PPMMin = 200
	}
	if c.Sampling.Gas.PPMMax == 0 {
		c.Sampling.Gas.PPMMax = 1000
	}
	if c.Hardware.ThermoAddr == 0 {
		c.Hardware.ThermoAddr = 0x76
	}
	if c.Hardware.MotionPin == "" {
		c.Hardware.MotionPin = "GPIO27"
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = ":9100"
	}
}

func (c *Config) Validate() error {
	if c.Device.ID == "" {
		return fmt.Errorf("device.id is required")
	}
	switch c.Store.Backend {
	case "rtdb":
		if c.Store.RTDB.DatabaseURL == "" {
			return fmt.Errorf("store.rtdb.database_url is required")
		}
	case "postgres":
		if c.Store.Postgres.ConnString == "" {
			return fmt.Errorf("store.postgres.conn_string is required")
		}
	default:
		return fmt.Errorf("store.backend must be rtdb or postgres, got %q", c.Store.Backend)
	}
	if c.Sampling.Interval < 0 {
		return fmt.Errorf("sampling.interval must be positive")
	}
	if c.Sampling.Gas.RawMax <= c.Sampling.Gas.RawMin {
		return fmt.Errorf("sampling.gas raw range is empty")
	}
	if c.Sampling.Gas.PPMMax <= c.Sampling.Gas.PPMMin {
		return fmt.Errorf("sampling.gas ppm range is empty")
	}
	return nil
}
