package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/louisiaegerv/runescapeOSRS-autoclicker/pkg/paths"
)

// Config is the full application configuration, loaded from an optional
// config.yaml plus OSRSCLICKER_* environment variables.
type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	Hotkeys  HotkeysConfig  `mapstructure:"hotkeys" yaml:"hotkeys"`
	Engine   EngineConfig   `mapstructure:"engine" yaml:"engine"`
	Profiles ProfilesConfig `mapstructure:"profiles" yaml:"profiles"`
}

// LoggerConfig mirrors the zap/lumberjack setup in internal/observability.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"` // "console" or "json"
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"` // empty disables the file sink
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"` // megabytes
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"` // days
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// HotkeysConfig names the global hotkeys in gohook key-name form.
type HotkeysConfig struct {
	Capture string   `mapstructure:"capture" yaml:"capture"`
	Start   string   `mapstructure:"start" yaml:"start"`
	Stop    string   `mapstructure:"stop" yaml:"stop"`
	Exit    []string `mapstructure:"exit" yaml:"exit"`
}

// EngineConfig holds the click-loop toggles.
type EngineConfig struct {
	VerifyPosition bool `mapstructure:"verify_position" yaml:"verify_position"`
	Debug          bool `mapstructure:"debug" yaml:"debug"`
}

// ProfilesConfig locates the saved-profile directory.
type ProfilesConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// SetDefaults installs the default value for every key so a bare run
// with no config file behaves sensibly.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "osrs-autoclicker")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", false)

	v.SetDefault("hotkeys.capture", "f6")
	v.SetDefault("hotkeys.start", "f7")
	v.SetDefault("hotkeys.stop", "f8")
	v.SetDefault("hotkeys.exit", []string{"f9", "esc"})

	v.SetDefault("engine.verify_position", true)
	v.SetDefault("engine.debug", false)

	v.SetDefault("profiles.dir", paths.ProfilesDir())
}

// NewDefaultConfig returns a Config populated purely from defaults.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Cannot happen with defaults only.
		panic(fmt.Sprintf("unmarshal default config: %v", err))
	}
	return &cfg
}

// Validate checks for required fields and sane values.
func (c *Config) Validate() error {
	if c.Hotkeys.Capture == "" || c.Hotkeys.Start == "" || c.Hotkeys.Stop == "" {
		return fmt.Errorf("hotkeys.capture, hotkeys.start and hotkeys.stop must all be set")
	}
	if len(c.Hotkeys.Exit) == 0 {
		return fmt.Errorf("hotkeys.exit needs at least one key")
	}
	if c.Profiles.Dir == "" {
		return fmt.Errorf("profiles.dir must not be empty")
	}
	return nil
}
