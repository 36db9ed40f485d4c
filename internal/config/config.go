// Package config provides configuration management for holodeck.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Narration providers.
const (
	ProviderOpenAI = "openai"
	ProviderDaemon = "daemon"
	ProviderNone   = "none"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all application configuration
type Config struct {
	Narration NarrationConfig `mapstructure:"narration"`
	Audio     AudioConfig     `mapstructure:"audio"`
	Lesson    LessonConfig    `mapstructure:"lesson"`
	Content   ContentConfig   `mapstructure:"content"`
	Log       LogConfig       `mapstructure:"log"`
}

// NarrationConfig configures speech synthesis
type NarrationConfig struct {
	Provider     string        `mapstructure:"provider"` // openai, daemon, none
	Voice        string        `mapstructure:"voice"`
	Speed        float64       `mapstructure:"speed"`
	Model        string        `mapstructure:"model"`
	Endpoint     string        `mapstructure:"endpoint"`
	APIKey       string        `mapstructure:"api_key"`
	SocketPath   string        `mapstructure:"socket_path"`
	Timeout      time.Duration `mapstructure:"timeout"`
	CacheEnabled bool          `mapstructure:"cache_enabled"`
	CachePath    string        `mapstructure:"cache_path"`
}

// AudioConfig configures playback
type AudioConfig struct {
	SampleRate int     `mapstructure:"sample_rate"`
	Volume     float64 `mapstructure:"volume"` // 0-1
}

// LessonConfig configures session pacing
type LessonConfig struct {
	GraceDelay    time.Duration `mapstructure:"grace_delay"`
	FeedbackDelay time.Duration `mapstructure:"feedback_delay"`
}

// ContentConfig selects the module catalog
type ContentConfig struct {
	Path string `mapstructure:"path"` // empty for the built-in modules
}

// LogConfig configures the log file
type LogConfig struct {
	Dir   string `mapstructure:"dir"`
	Level string `mapstructure:"level"`
}

// Dir returns the holodeck home directory.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".holodeck")
}

// Default returns sensible default configuration
func Default() *Config {
	return &Config{
		Narration: NarrationConfig{
			Provider:     ProviderOpenAI,
			Voice:        "nova",
			Speed:        1.0,
			Model:        "tts-1",
			Endpoint:     "https://api.openai.com",
			Timeout:      30 * time.Second,
			CacheEnabled: true,
			CachePath:    filepath.Join(Dir(), "narration.sqlite"),
		},
		Audio: AudioConfig{
			SampleRate: 44100,
			Volume:     1.0,
		},
		Lesson: LessonConfig{
			GraceDelay:    1200 * time.Millisecond,
			FeedbackDelay: 2 * time.Second,
		},
		Log: LogConfig{
			Dir:   filepath.Join(Dir(), "logs"),
			Level: "info",
		},
	}
}

// Load reads configuration from path (or config.yaml in the holodeck
// directory and the working directory when path is empty) and from
// HOLODECK_ environment variables. A missing default file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("HOLODECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("narration.provider", d.Narration.Provider)
	v.SetDefault("narration.voice", d.Narration.Voice)
	v.SetDefault("narration.speed", d.Narration.Speed)
	v.SetDefault("narration.model", d.Narration.Model)
	v.SetDefault("narration.endpoint", d.Narration.Endpoint)
	v.SetDefault("narration.api_key", d.Narration.APIKey)
	v.SetDefault("narration.socket_path", d.Narration.SocketPath)
	v.SetDefault("narration.timeout", d.Narration.Timeout)
	v.SetDefault("narration.cache_enabled", d.Narration.CacheEnabled)
	v.SetDefault("narration.cache_path", d.Narration.CachePath)
	v.SetDefault("audio.sample_rate", d.Audio.SampleRate)
	v.SetDefault("audio.volume", d.Audio.Volume)
	v.SetDefault("lesson.grace_delay", d.Lesson.GraceDelay)
	v.SetDefault("lesson.feedback_delay", d.Lesson.FeedbackDelay)
	v.SetDefault("content.path", d.Content.Path)
	v.SetDefault("log.dir", d.Log.Dir)
	v.SetDefault("log.level", d.Log.Level)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch c.Narration.Provider {
	case ProviderOpenAI, ProviderDaemon, ProviderNone:
	default:
		return fmt.Errorf("%w: narration.provider %q (want openai, daemon or none)", ErrInvalid, c.Narration.Provider)
	}
	if c.Narration.Speed < 0.25 || c.Narration.Speed > 4 {
		return fmt.Errorf("%w: narration.speed %g outside 0.25-4", ErrInvalid, c.Narration.Speed)
	}
	if c.Narration.Timeout <= 0 {
		return fmt.Errorf("%w: narration.timeout must be positive", ErrInvalid)
	}
	if c.Narration.CacheEnabled && c.Narration.CachePath == "" {
		return fmt.Errorf("%w: narration.cache_path is empty", ErrInvalid)
	}
	if c.Audio.SampleRate < 8000 || c.Audio.SampleRate > 192000 {
		return fmt.Errorf("%w: audio.sample_rate %d", ErrInvalid, c.Audio.SampleRate)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio.volume %g outside 0-1", ErrInvalid, c.Audio.Volume)
	}
	if c.Lesson.GraceDelay < 0 || c.Lesson.FeedbackDelay < 0 {
		return fmt.Errorf("%w: lesson delays must not be negative", ErrInvalid)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}
