// Package config loads and validates the monitor's settings. Values come
// from an optional YAML file overridden by environment variables; missing
// required credentials fail startup before any browser is launched.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults match the original deployment values.
const (
	DefaultCheckInterval  = 30 * time.Second
	DefaultWaitTimeout    = 10 * time.Second
	DefaultLoginMaxWait   = 300 * time.Second
	DefaultConfirmTimeout = 120 * time.Second
	DefaultSoundFrequency = 2500  // Hz
	DefaultSoundDuration  = 10000 // milliseconds
)

// Config carries every tunable of the monitor.
type Config struct {
	// CheckInterval is the floor duration of one monitoring cycle.
	CheckInterval time.Duration

	// SoundFrequency is the alert tone frequency in Hz.
	SoundFrequency int

	// SoundDuration is the alert tone duration in milliseconds.
	SoundDuration int

	// WaitTimeout bounds each individual element wait.
	WaitTimeout time.Duration

	// LoginMaxWait bounds the whole post-login readiness wait.
	LoginMaxWait time.Duration

	// ConfirmTimeout bounds the manual-confirmation fallback after a
	// readiness timeout. Zero disables the fallback.
	ConfirmTimeout time.Duration

	// Credentials and entry URL; all three are required.
	Username  string
	Password  string
	LoginPage string
}

// fileConfig mirrors Config for the optional YAML file. Pointers
// distinguish "absent" from zero values.
type fileConfig struct {
	CheckInterval  *int    `yaml:"check_interval"`
	SoundFrequency *int    `yaml:"sound_frequency"`
	SoundDuration  *int    `yaml:"sound_duration"`
	WaitTimeout    *int    `yaml:"wait_timeout"`
	LoginMaxWait   *int    `yaml:"login_max_wait"`
	ConfirmTimeout *int    `yaml:"confirm_timeout"`
	Username       *string `yaml:"username"`
	Password       *string `yaml:"password"`
	LoginPage      *string `yaml:"login_page"`
}

// Load builds the configuration: defaults, then the YAML file at path
// (if non-empty), then environment variables. It returns an error
// enumerating every missing required setting.
func Load(path string) (*Config, error) {
	cfg := &Config{
		CheckInterval:  DefaultCheckInterval,
		SoundFrequency: DefaultSoundFrequency,
		SoundDuration:  DefaultSoundDuration,
		WaitTimeout:    DefaultWaitTimeout,
		LoginMaxWait:   DefaultLoginMaxWait,
		ConfirmTimeout: DefaultConfirmTimeout,
	}

	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.CheckInterval != nil {
		c.CheckInterval = time.Duration(*fc.CheckInterval) * time.Second
	}
	if fc.SoundFrequency != nil {
		c.SoundFrequency = *fc.SoundFrequency
	}
	if fc.SoundDuration != nil {
		c.SoundDuration = *fc.SoundDuration
	}
	if fc.WaitTimeout != nil {
		c.WaitTimeout = time.Duration(*fc.WaitTimeout) * time.Second
	}
	if fc.LoginMaxWait != nil {
		c.LoginMaxWait = time.Duration(*fc.LoginMaxWait) * time.Second
	}
	if fc.ConfirmTimeout != nil {
		c.ConfirmTimeout = time.Duration(*fc.ConfirmTimeout) * time.Second
	}
	if fc.Username != nil {
		c.Username = *fc.Username
	}
	if fc.Password != nil {
		c.Password = *fc.Password
	}
	if fc.LoginPage != nil {
		c.LoginPage = *fc.LoginPage
	}
	return nil
}

func (c *Config) applyEnv() error {
	seconds := []struct {
		key string
		dst *time.Duration
	}{
		{"CHECK_INTERVAL", &c.CheckInterval},
		{"WAIT_TIMEOUT", &c.WaitTimeout},
		{"LOGIN_MAX_WAIT", &c.LoginMaxWait},
		{"CONFIRM_TIMEOUT", &c.ConfirmTimeout},
	}
	for _, s := range seconds {
		if err := envSeconds(s.key, s.dst); err != nil {
			return err
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"SOUND_FREQUENCY", &c.SoundFrequency},
		{"SOUND_DURATION", &c.SoundDuration},
	}
	for _, i := range ints {
		if err := envInt(i.key, i.dst); err != nil {
			return err
		}
	}

	envString("USERNAME_LSF", &c.Username)
	envString("PASSWORD_LSF", &c.Password)
	envString("LSF_LOGIN_PAGE", &c.LoginPage)
	return nil
}

func (c *Config) validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"USERNAME_LSF", c.Username},
		{"PASSWORD_LSF", c.Password},
		{"LSF_LOGIN_PAGE", c.LoginPage},
	}

	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

func envSeconds(key string, dst *time.Duration) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fmt.Errorf("%s must be a non-negative number of seconds, got %q", key, raw)
	}
	*dst = time.Duration(n) * time.Second
	return nil
}

func envInt(key string, dst *int) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fmt.Errorf("%s must be a non-negative integer, got %q", key, raw)
	}
	*dst = n
	return nil
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
