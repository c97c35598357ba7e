// Package config loads the critters configuration: built-in defaults,
// an optional config file (any format viper reads) and CRITTERS_* environment
// variables, in increasing precedence. Nested keys map to env names with
// underscores, e.g. server.addr → CRITTERS_SERVER_ADDR.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/critters/grid"
	"github.com/katalvlaran/critters/squirrel"
	"github.com/katalvlaran/critters/turtle"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "CRITTERS"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Turtle   TurtleConfig   `mapstructure:"turtle"`
	Squirrel SquirrelConfig `mapstructure:"squirrel"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	LocalCORS       bool          `mapstructure:"local_cors"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type TurtleConfig struct {
	Matrix    [][]int       `mapstructure:"matrix"`
	StepDelay time.Duration `mapstructure:"step_delay"`
}

// Grid builds the configured matrix.
func (c TurtleConfig) Grid() (*grid.Grid, error) {
	return grid.New(c.Matrix)
}

type SquirrelConfig struct {
	Input     string        `mapstructure:"input"`
	StepDelay time.Duration `mapstructure:"step_delay"`
	Workers   int           `mapstructure:"workers"`

	squirrel.Policy `mapstructure:",squash"`
}

// ParsedInput splits the configured raw input line.
func (c SquirrelConfig) ParsedInput() (squirrel.Input, error) {
	return squirrel.ParseInput(c.Input)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.local_cors", false)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	v.SetDefault("turtle.matrix", turtle.DefaultMatrix)
	v.SetDefault("turtle.step_delay", 500*time.Millisecond)

	p := squirrel.DefaultPolicy()
	v.SetDefault("squirrel.input", squirrel.DefaultInput)
	v.SetDefault("squirrel.step_delay", 500*time.Millisecond)
	v.SetDefault("squirrel.workers", 4)
	v.SetDefault("squirrel.max_depth", p.MaxDepth)
	v.SetDefault("squirrel.min_capacity", p.MinCapacity)
	v.SetDefault("squirrel.max_capacity", p.MaxCapacity)
	v.SetDefault("squirrel.ceiling", p.Ceiling)
}

// Load reads the configuration. An empty path skips the file layer.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(err)
	}

	return cfg
}

// Validate checks every section.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is empty", ErrInvalid)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	if _, err := c.Turtle.Grid(); err != nil {
		return fmt.Errorf("%w: turtle.matrix: %v", ErrInvalid, err)
	}
	if c.Turtle.StepDelay <= 0 || c.Squirrel.StepDelay <= 0 {
		return fmt.Errorf("%w: step delays must be positive", ErrInvalid)
	}
	if _, err := c.Squirrel.ParsedInput(); err != nil {
		return fmt.Errorf("%w: squirrel.input: %v", ErrInvalid, err)
	}
	if c.Squirrel.Workers < 1 {
		return fmt.Errorf("%w: squirrel.workers must be at least 1", ErrInvalid)
	}
	p := c.Squirrel.Policy
	if p.MaxDepth < 1 || p.MinCapacity < 1 || p.MinCapacity > p.MaxCapacity || p.Ceiling < 1 {
		return fmt.Errorf("%w: squirrel policy %+v", ErrInvalid, p)
	}

	return nil
}
