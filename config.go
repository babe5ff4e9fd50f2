package main

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"github.com/vennekilde/go-ordmap/ordmap"
)

type Config struct {
	AMQP AMQPConfig `yaml:"amqp"`
	Log  LogConfig  `yaml:"log"`
	Map  MapConfig  `yaml:"map"`
}

type AMQPConfig struct {
	Addr         string        `yaml:"addr" env:"AMQP_ADDR" env-default:"amqp://localhost:5672" env-description:"Socket address of the AMQP broker"`
	User         string        `yaml:"user" env:"AMQP_USER" env-default:"admin" env-description:"SASL plain user"`
	Pass         string        `yaml:"pass" env:"AMQP_PASS" env-default:"admin" env-description:"SASL plain password"`
	Queue        string        `yaml:"queue" env:"AMQP_QUEUE" env-default:"ordmap.entries" env-description:"Queue entries are published to and consumed from"`
	SendTimeout  time.Duration `yaml:"send_timeout" env:"AMQP_SEND_TIMEOUT" env-default:"15s" env-description:"Timeout of a single send"`
	DrainTimeout time.Duration `yaml:"drain_timeout" env:"AMQP_DRAIN_TIMEOUT" env-default:"3s" env-description:"Consume stops after the queue was idle this long"`
}

type LogConfig struct {
	Level   string `yaml:"level" env:"LOG_LEVEL" env-default:"info" env-description:"Defines logger's log level"`
	Encoder string `yaml:"encoder" env:"LOG_LEVEL_FORMAT" env-default:"capitalColor" env-description:"Log level encoder: capitalColor, capital or lowercase"`
	Format  string `yaml:"format" env:"LOG_FORMAT" env-default:"console" env-description:"Log encoding: console or json"`
}

type MapConfig struct {
	KeyGrowth       string `yaml:"key_growth" env:"MAP_KEY_GROWTH" env-default:"doubling" env-description:"Key buffer growth: doubling or fixed"`
	GrowthIncrement int    `yaml:"growth_increment" env:"MAP_GROWTH_INCREMENT" env-default:"10" env-description:"Bytes added per exhaustion with fixed growth"`
	Budget          int    `yaml:"budget" env:"MAP_BUDGET" env-default:"0" env-description:"Bytes a map may reserve, 0 is unlimited"`
}

// LoadConfig reads the yaml file at path, if any, and the environment.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("could not read config %s: %w", path, err)
		}
		return cfg, nil
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("could not read config from env: %w", err)
	}
	return cfg, nil
}

// MapOptions turns the map config into options for ordmap.New.
func (c MapConfig) MapOptions(logger *zap.Logger) ([]ordmap.Option, error) {
	opts := []ordmap.Option{ordmap.WithLogger(logger)}

	switch c.KeyGrowth {
	case "", "doubling":
		opts = append(opts, ordmap.WithGrowth(ordmap.DoublingGrowth()))
	case "fixed":
		if c.GrowthIncrement < 1 {
			return nil, fmt.Errorf("growth increment must be positive, got %d", c.GrowthIncrement)
		}
		opts = append(opts, ordmap.WithGrowth(ordmap.FixedGrowth(c.GrowthIncrement)))
	default:
		return nil, fmt.Errorf("unknown key growth %q", c.KeyGrowth)
	}

	switch {
	case c.Budget < 0:
		return nil, fmt.Errorf("budget must not be negative, got %d", c.Budget)
	case c.Budget > 0:
		opts = append(opts, ordmap.WithAllocator(ordmap.NewBudget(c.Budget)))
	}
	return opts, nil
}
