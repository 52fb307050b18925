package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Backend struct {
		Type         string        `yaml:"type"`
		BatchSize    int           `yaml:"batch_size"`
		BatchTimeout time.Duration `yaml:"batch_timeout"`
	} `yaml:"backend"`
	Kafka struct {
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
		Consumer struct {
			GroupID    string        `yaml:"group_id"`
			Workers    int           `yaml:"workers"`
			BufferSize int           `yaml:"buffer_size"`
			RetryMax   int           `yaml:"retry_max"`
			BackoffMin time.Duration `yaml:"backoff_min"`
			BackoffMax time.Duration `yaml:"backoff_max"`
			DLQTopic   string        `yaml:"dlq_topic"`
			MinBytes   int           `yaml:"min_bytes"`
			MaxBytes   int           `yaml:"max_bytes"`
		} `yaml:"consumer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Sensors struct {
		Enabled        bool          `yaml:"enabled"`
		Token          string        `yaml:"token"`
		WebSocketURL   string        `yaml:"websocket_url"`
		Fields         []string      `yaml:"fields"`
		ReconnectDelay time.Duration `yaml:"reconnect_delay"`
		PingInterval   time.Duration `yaml:"ping_interval"`
	} `yaml:"sensors"`
	Weather struct {
		APIKey     string        `yaml:"api_key"`
		BaseURL    string        `yaml:"base_url"`
		Lat        float64       `yaml:"lat"`
		Lon        float64       `yaml:"lon"`
		SamplePath string        `yaml:"sample_path"`
		CacheTTL   time.Duration `yaml:"cache_ttl"`
	} `yaml:"weather"`
	Mandi struct {
		APIKey     string        `yaml:"api_key"`
		BaseURL    string        `yaml:"base_url"`
		Limit      int           `yaml:"limit"`
		RatePerMin float64       `yaml:"rate_per_min"`
		SamplePath string        `yaml:"sample_path"`
		CacheTTL   time.Duration `yaml:"cache_ttl"`
	} `yaml:"mandi"`
	Classifier struct {
		Endpoint      string        `yaml:"endpoint"`
		APIKey        string        `yaml:"api_key"`
		CacheTTL      time.Duration `yaml:"cache_ttl"`
		MinImageBytes int           `yaml:"min_image_bytes"`
	} `yaml:"classifier"`
	Irrigation struct {
		FallbackThresholdPct float64 `yaml:"fallback_threshold_pct"`
		LowRainMm            float64 `yaml:"low_rain_mm"`
		RainWindowDays       int     `yaml:"rain_window_days"`
		ETLossMinPct         float64 `yaml:"et_loss_min_pct"`
		ETLossMaxPct         float64 `yaml:"et_loss_max_pct"`
		RainAbsorption       float64 `yaml:"rain_absorption"`
		BoostPct             float64 `yaml:"boost_pct"`
		ScheduleDays         int     `yaml:"schedule_days"`
	} `yaml:"irrigation"`
	Carbon struct {
		UreaFactor        float64 `yaml:"urea_factor"`
		DAPFactor         float64 `yaml:"dap_factor"`
		TractorFactor     float64 `yaml:"tractor_factor"`
		PumpFactor        float64 `yaml:"pump_factor"`
		DieselFactor      float64 `yaml:"diesel_factor"`
		ElectricityFactor float64 `yaml:"electricity_factor"`
		LowThreshold      float64 `yaml:"low_threshold"`
		MediumThreshold   float64 `yaml:"medium_threshold"`
		BenchmarkBandPct  float64 `yaml:"benchmark_band_pct"`
	} `yaml:"carbon"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("GATEWAY_TOKEN"); v != "" {
		c.Sensors.Token = v
	}
	if v := os.Getenv("FIELDS"); v != "" {
		c.Sensors.Fields = strings.Split(v, ",")
	}
	if v := os.Getenv("BACKEND"); v != "" {
		c.Backend.Type = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("OPENWEATHER_API_KEY"); v != "" {
		c.Weather.APIKey = v
	}
	if v := os.Getenv("DATA_GOV_API_KEY"); v != "" {
		c.Mandi.APIKey = v
	}
	if v := os.Getenv("CLASSIFIER_API_KEY"); v != "" {
		c.Classifier.APIKey = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Redis.Host = v
		c.Redis.Enabled = true
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Backend.Type == "" {
		return fmt.Errorf("backend.type is required")
	}
	if c.Backend.Type != "kafka" && c.Backend.Type != "clickhouse" {
		return fmt.Errorf("backend.type must be 'kafka' or 'clickhouse', got '%s'", c.Backend.Type)
	}
	if c.Sensors.Enabled {
		if len(c.Sensors.Fields) == 0 {
			return fmt.Errorf("sensors.fields cannot be empty when sensors are enabled")
		}
		if c.Sensors.Token == "" {
			return fmt.Errorf("sensors.token is required when sensors are enabled")
		}
	}
	return nil
}
