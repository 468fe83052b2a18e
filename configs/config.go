package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type SeedProduct struct {
	ID          string `koanf:"id"`
	Name        string `koanf:"name"`
	Description string `koanf:"description"`
	Price       string `koanf:"price"` // decimal string, parsed at bootstrap
	Stock       int    `koanf:"stock"`
}

type Config struct {
	App struct {
		Name     string `koanf:"name"`
		HTTPAddr string `koanf:"http_addr"`
		LogLevel string `koanf:"log_level"`
		LogFile  string `koanf:"log_file"`
	} `koanf:"app"`

	HTTP struct {
		ReadTimeout  time.Duration `koanf:"read_timeout"`
		WriteTimeout time.Duration `koanf:"write_timeout"`
		IdleTimeout  time.Duration `koanf:"idle_timeout"`
	} `koanf:"http"`

	// Redis is optional; empty addr selects the in-process idempotency store.
	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
	} `koanf:"redis"`

	Idempotency struct {
		TTL time.Duration `koanf:"ttl"`
	} `koanf:"idempotency"`

	// Kafka is optional; no brokers disables events and the fulfillment
	// consumer.
	Kafka struct {
		Brokers          []string `koanf:"brokers"`
		EventsTopic      string   `koanf:"events_topic"`
		FulfillmentTopic string   `koanf:"fulfillment_topic"`
		GroupID          string   `koanf:"group_id"`
	} `koanf:"kafka"`

	Catalog struct {
		Seed []SeedProduct `koanf:"seed"`
	} `koanf:"catalog"`
}

func Load(pathDir, envName string) (Config, error) {
	k := koanf.New(".")
	// 1) base
	if err := k.Load(file.Provider(fmt.Sprintf("%s/base.yaml", pathDir)), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load base: %w", err)
	}

	// 2) env override (dev/staging/prod). Optional: allow missing for local runs.
	_ = k.Load(file.Provider(fmt.Sprintf("%s/%s.yaml", pathDir, envName)), yaml.Parser())

	// 3) environment variables override (prefix ORDERAPI_, nested with __)
	// e.g. ORDERAPI_APP__HTTP_ADDR, ORDERAPI_REDIS__ADDR
	if err := k.Load(env.Provider("ORDERAPI_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "ORDERAPI_")
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.App.HTTPAddr == "" {
		return fmt.Errorf("app.http_addr required")
	}
	if c.Idempotency.TTL <= 0 {
		return fmt.Errorf("idempotency.ttl must be positive")
	}
	if len(c.Kafka.Brokers) > 0 {
		if c.Kafka.EventsTopic == "" {
			return fmt.Errorf("kafka.events_topic required when brokers are set")
		}
		if c.Kafka.FulfillmentTopic == "" {
			return fmt.Errorf("kafka.fulfillment_topic required when brokers are set")
		}
		if c.Kafka.GroupID == "" {
			return fmt.Errorf("kafka.group_id required when brokers are set")
		}
	}
	for i, p := range c.Catalog.Seed {
		if p.ID == "" || p.Name == "" {
			return fmt.Errorf("catalog.seed[%d]: id and name required", i)
		}
	}
	return nil
}
