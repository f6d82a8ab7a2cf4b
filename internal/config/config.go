// File: internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the entire application configuration. It is constructed once
// at startup, validated, and passed into the orchestrator; nothing mutates
// it afterwards.
type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	Form    FormConfig    `mapstructure:"form" yaml:"form"`
	Browser BrowserConfig `mapstructure:"browser" yaml:"browser"`
	Network NetworkConfig `mapstructure:"network" yaml:"network"`
	Typing  TypingConfig  `mapstructure:"typing" yaml:"typing"`
	Pacing  PacingConfig  `mapstructure:"pacing" yaml:"pacing"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// FormConfig identifies the target document and the outer loop size.
type FormConfig struct {
	// URL of the rendered form. Required; absence is a fatal startup error.
	URL string `mapstructure:"url" yaml:"url"`
	// Passes is the number of independent scan-fill-submit cycles.
	Passes int `mapstructure:"passes" yaml:"passes"`
}

// BrowserConfig holds settings for the headless browser instance.
type BrowserConfig struct {
	Headless       bool     `mapstructure:"headless" yaml:"headless"`
	Args           []string `mapstructure:"args" yaml:"args"`
	ViewportWidth  int      `mapstructure:"viewport_width" yaml:"viewport_width"`
	ViewportHeight int      `mapstructure:"viewport_height" yaml:"viewport_height"`
}

// NetworkConfig tunes navigation behavior. The navigation timeout is the
// only hard timeout in the engine; everything past page load is paced, not
// bounded.
type NetworkConfig struct {
	NavigationTimeout time.Duration `mapstructure:"navigation_timeout" yaml:"navigation_timeout"`
}

// TypingConfig bounds the per-character delay of simulated keystrokes.
type TypingConfig struct {
	MinDelay time.Duration `mapstructure:"min_delay" yaml:"min_delay"`
	MaxDelay time.Duration `mapstructure:"max_delay" yaml:"max_delay"`
}

// PacingConfig bounds the randomized delays between engine actions. Each
// pair is a [min,max] window sampled uniformly by the pacing provider.
type PacingConfig struct {
	// Disabled turns every pause into a no-op. Used by tests.
	Disabled bool `mapstructure:"disabled" yaml:"disabled"`

	PostNavigateMin time.Duration `mapstructure:"post_navigate_min" yaml:"post_navigate_min"`
	PostNavigateMax time.Duration `mapstructure:"post_navigate_max" yaml:"post_navigate_max"`
	PreActionMin    time.Duration `mapstructure:"pre_action_min" yaml:"pre_action_min"`
	PreActionMax    time.Duration `mapstructure:"pre_action_max" yaml:"pre_action_max"`
	PostClickMin    time.Duration `mapstructure:"post_click_min" yaml:"post_click_min"`
	PostClickMax    time.Duration `mapstructure:"post_click_max" yaml:"post_click_max"`
	MultiClickMin   time.Duration `mapstructure:"multi_click_min" yaml:"multi_click_min"`
	MultiClickMax   time.Duration `mapstructure:"multi_click_max" yaml:"multi_click_max"`
	PreSubmitMin    time.Duration `mapstructure:"pre_submit_min" yaml:"pre_submit_min"`
	PreSubmitMax    time.Duration `mapstructure:"pre_submit_max" yaml:"pre_submit_max"`
	ConfirmWaitMin  time.Duration `mapstructure:"confirm_wait_min" yaml:"confirm_wait_min"`
	ConfirmWaitMax  time.Duration `mapstructure:"confirm_wait_max" yaml:"confirm_wait_max"`
	PassGapMin      time.Duration `mapstructure:"pass_gap_min" yaml:"pass_gap_min"`
	PassGapMax      time.Duration `mapstructure:"pass_gap_max" yaml:"pass_gap_max"`
}

// SetDefaults initializes default values for all configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "formfiller")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// -- Form --
	v.SetDefault("form.passes", 10)

	// -- Browser --
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.viewport_width", 1200)
	v.SetDefault("browser.viewport_height", 900)

	// -- Network --
	v.SetDefault("network.navigation_timeout", "60s")

	// -- Typing --
	v.SetDefault("typing.min_delay", "30ms")
	v.SetDefault("typing.max_delay", "140ms")

	// -- Pacing --
	v.SetDefault("pacing.disabled", false)
	v.SetDefault("pacing.post_navigate_min", "700ms")
	v.SetDefault("pacing.post_navigate_max", "2s")
	v.SetDefault("pacing.pre_action_min", "400ms")
	v.SetDefault("pacing.pre_action_max", "1200ms")
	v.SetDefault("pacing.post_click_min", "120ms")
	v.SetDefault("pacing.post_click_max", "400ms")
	v.SetDefault("pacing.multi_click_min", "140ms")
	v.SetDefault("pacing.multi_click_max", "500ms")
	v.SetDefault("pacing.pre_submit_min", "900ms")
	v.SetDefault("pacing.pre_submit_max", "2s")
	v.SetDefault("pacing.confirm_wait_min", "1200ms")
	v.SetDefault("pacing.confirm_wait_max", "2600ms")
	v.SetDefault("pacing.pass_gap_min", "3s")
	v.SetDefault("pacing.pass_gap_max", "8s")
}

// NewDefaultConfig creates a configuration struct populated with defaults.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Cannot happen with defaults, but fail loudly if it does.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// NewConfigFromViper creates a validated configuration from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
// A validation failure here is the only process-fatal error condition.
func (c *Config) Validate() error {
	if c.Form.URL == "" {
		return fmt.Errorf("form.url is a required configuration field")
	}
	if c.Form.Passes <= 0 {
		return fmt.Errorf("form.passes must be a positive integer")
	}
	if c.Typing.MinDelay < 0 || c.Typing.MaxDelay < c.Typing.MinDelay {
		return fmt.Errorf("typing delays must satisfy 0 <= min_delay <= max_delay")
	}
	if c.Network.NavigationTimeout <= 0 {
		return fmt.Errorf("network.navigation_timeout must be a positive duration")
	}
	if err := c.Pacing.Validate(); err != nil {
		return fmt.Errorf("pacing configuration invalid: %w", err)
	}
	return nil
}

// Validate checks every pacing window for ordering.
func (p *PacingConfig) Validate() error {
	windows := []struct {
		name     string
		min, max time.Duration
	}{
		{"post_navigate", p.PostNavigateMin, p.PostNavigateMax},
		{"pre_action", p.PreActionMin, p.PreActionMax},
		{"post_click", p.PostClickMin, p.PostClickMax},
		{"multi_click", p.MultiClickMin, p.MultiClickMax},
		{"pre_submit", p.PreSubmitMin, p.PreSubmitMax},
		{"confirm_wait", p.ConfirmWaitMin, p.ConfirmWaitMax},
		{"pass_gap", p.PassGapMin, p.PassGapMax},
	}
	for _, w := range windows {
		if w.min < 0 || w.max < w.min {
			return fmt.Errorf("pacing.%s window must satisfy 0 <= min <= max", w.name)
		}
	}
	return nil
}
