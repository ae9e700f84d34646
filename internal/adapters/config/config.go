package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	envPrefix  = "ACTIND"
	appDir     = "actind"
)

// Config holds all application configuration.
type Config struct {
	State    StateConfig    `mapstructure:"state"`
	Review   ReviewConfig   `mapstructure:"review"`
	Restart  RestartConfig  `mapstructure:"restart"`
	Log      LogConfig      `mapstructure:"log"`
	Resolver ResolverConfig `mapstructure:"resolver"`
}

type StateConfig struct {
	Path string `mapstructure:"path"`
}

// ReviewConfig controls where error reports go. An empty Dir writes them to stderr.
type ReviewConfig struct {
	Dir string `mapstructure:"dir"`
}

type RestartConfig struct {
	Command []string `mapstructure:"command"`
}

// LogConfig holds logging configuration. An empty File disables logging.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

type ResolverConfig struct {
	IdleFallsThrough bool `mapstructure:"idle_falls_through"`
}

// Dir returns the directory holding config.toml and the default state file.
func Dir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appDir), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", appDir), nil
}

// Load reads config.toml from the config directory into v, applies defaults
// and ACTIND_* environment overrides, and decodes the result. A missing
// config file is not an error.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	dir, err := Dir()
	if err != nil {
		return Config{}, err
	}

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(dir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("state.path", filepath.Join(dir, "state.toml"))
	v.SetDefault("review.dir", "")
	v.SetDefault("restart.command", []string{})
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "INFO")
	v.SetDefault("resolver.idle_falls_through", false)

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	cfg.State.Path = expandHome(cfg.State.Path)
	cfg.Review.Dir = expandHome(cfg.Review.Dir)
	cfg.Log.File = expandHome(cfg.Log.File)
	return cfg, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
