// Package config loads modinv settings from defaults, a config file,
// MODINV_* environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Run modes.
const (
	ModeREPL  = "repl"
	ModeServe = "serve"
)

// EnvPrefix prefixes every environment override, e.g. MODINV_LOGGING_LEVEL.
const EnvPrefix = "MODINV"

// ErrInvalidMode is returned for a mode other than ModeREPL or ModeServe.
var ErrInvalidMode = errors.New("invalid mode")

// Config is the complete configuration of the modinv binary.
type Config struct {
	Mode    string        `mapstructure:"mode"`
	REPL    REPLConfig    `mapstructure:"repl"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// REPLConfig configures the interactive loop. A MaxLineLength of zero
// selects the loop's built-in limit.
type REPLConfig struct {
	Banner        bool `mapstructure:"banner"`
	MaxLineLength int  `mapstructure:"max_line_length"`
}

// ServerConfig configures the HTTP server; Mode is the gin mode.
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// LoggingConfig selects the level, encoding and destination of logs.
type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

// Addr returns the listen address for the HTTP server.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// flag name -> config key
var flagKeys = map[string]string{
	"mode":      "mode",
	"banner":    "repl.banner",
	"port":      "server.port",
	"log-level": "logging.level",
}

// Flags returns the command line flags understood by LoadFlags.
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "path to a config file (toml, yaml or json)")
	fs.String("mode", ModeREPL, "run mode: repl or serve")
	fs.Bool("banner", true, "print the usage banner when the repl starts")
	fs.Int("port", 8080, "HTTP port in serve mode")
	fs.String("log-level", "warn", "log level: debug, info, warn, error or fatal")
	return fs
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("mode", ModeREPL)
	v.SetDefault("repl.banner", true)
	v.SetDefault("repl.max_line_length", 1<<20)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	// stdout belongs to the repl transcript
	v.SetDefault("logging.output", "stderr")
	v.SetDefault("logging.file_path", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig loads the configuration from defaults, the file at path (skipped
// when path is empty) and MODINV_* environment variables, in increasing order
// of precedence.
func LoadConfig(path string) (*Config, error) {
	return load(newViper(), path)
}

// LoadFlags is like LoadConfig but also applies flags set on fs, which must
// come from Flags and have been parsed. The file path is taken from --config.
func LoadFlags(fs *pflag.FlagSet) (*Config, error) {
	v := newViper()
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, fmt.Errorf("binding flag %q: %w", name, err)
		}
	}
	path, err := fs.GetString("config")
	if err != nil {
		return nil, err
	}
	return load(v, path)
}

func load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate reports settings no component can run with.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeREPL, ModeServe:
	default:
		return fmt.Errorf("%w %q: want %q or %q", ErrInvalidMode, c.Mode, ModeREPL, ModeServe)
	}
	if c.Mode != ModeServe {
		return nil
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unknown server mode %q", c.Server.Mode)
	}
	return nil
}
