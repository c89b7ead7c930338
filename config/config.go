// Package config loads keyer settings from defaults, an optional TOML
// file, IAMBIC_ environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Audio AudioConfig
	UI    UIConfig
	Log   LogConfig
}

// AudioConfig holds output device settings.
type AudioConfig struct {
	SampleRate int     `mapstructure:"sample_rate"`
	BufferMS   int     `mapstructure:"buffer_ms"`
	Gain       float64 `mapstructure:"gain"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Lang string `mapstructure:"lang"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Debug bool `mapstructure:"debug"`
}

// Buffer returns the output buffer length.
func (a AudioConfig) Buffer() time.Duration {
	return time.Duration(a.BufferMS) * time.Millisecond
}

// Flags returns the command-line flags understood by Load.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("iambic", pflag.ContinueOnError)
	fs.String("config", "", "path to a TOML config file")
	fs.Bool("debug", false, "log every keyer iteration")
	fs.String("lang", "", "UI language (en, pt, es, ru)")
	fs.Int("sample-rate", 0, "audio sample rate in Hz")
	return fs
}

// Load reads configuration. fs may be nil; otherwise it must come from
// Flags and already be parsed.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetDefault("audio.sample_rate", 44100)
	v.SetDefault("audio.buffer_ms", 20)
	v.SetDefault("audio.gain", 0.0)
	v.SetDefault("ui.lang", "")
	v.SetDefault("log.debug", false)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("IAMBIC_CONFIG")
	if fs != nil {
		if path, _ := fs.GetString("config"); path != "" {
			cfgPath = path
		}
	}
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "iambic"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("IAMBIC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for key, flag := range map[string]string{
			"log.debug":         "debug",
			"ui.lang":           "lang",
			"audio.sample_rate": "sample-rate",
		} {
			if f := fs.Lookup(flag); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", flag, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the audio device cannot use.
func (c Config) Validate() error {
	if c.Audio.SampleRate < 8000 || c.Audio.SampleRate > 192000 {
		return fmt.Errorf("audio.sample_rate %d out of range 8000-192000", c.Audio.SampleRate)
	}
	if c.Audio.BufferMS < 1 || c.Audio.BufferMS > 1000 {
		return fmt.Errorf("audio.buffer_ms %d out of range 1-1000", c.Audio.BufferMS)
	}
	return nil
}
