// Package config loads runtime settings from configs/config.yml, RADIORECON_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "RADIORECON"

// Radio backends.
const (
	BackendSim     = "sim"
	BackendLinux   = "linux"
	BackendCapture = "capture"
)

// DefaultKeywords are matched case-sensitively against SSIDs, in order.
var DefaultKeywords = []string{
	"LED", "Cisco", "TF-", "School", "WiFi", "Guest", "Public",
	"Free", "Open", "Kab", "Internet", "Admin", "Router",
}

// DefaultPasswords are tried in order against every target.
var DefaultPasswords = []string{
	"12345678", "password", "qwerty", "admin", "11111111",
	"00000000", "gost", "1qazxsw2", "1234567890",
}

type Config struct {
	Port        string
	CORSOrigins []string
	DBPath      string

	LogLevel       string
	GeneralLog     string
	CredentialLog  string
	RadioBackend   string
	RadioInterface string
	CaptureFile    string

	Keywords    []string
	Passwords   []string
	BLESeconds  int
	Interval    time.Duration
	SigningKey  string
	TokenTTL    time.Duration
	NotifyReady bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("cors.origins", []string{})
	v.SetDefault("db.path", "radiorecon.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.general_path", "log.txt")
	v.SetDefault("log.credential_path", "passwords.txt")
	v.SetDefault("radio.backend", BackendSim)
	v.SetDefault("radio.interface", "wlan0")
	v.SetDefault("radio.capture_file", "")
	v.SetDefault("targets.keywords", DefaultKeywords)
	v.SetDefault("targets.passwords", DefaultPasswords)
	v.SetDefault("ble.duration_seconds", 5)
	v.SetDefault("cycle.interval", "30s")
	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", "1h")
	v.SetDefault("systemd.notify", true)
}

// New returns a viper instance with defaults, env binding and the config
// file search path registered. Flags are bound by the caller.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("configs")
	v.AddConfigPath(".")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags maps command-line flags onto config keys, e.g. {"port": "port"}.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		f := flags.Lookup(name)
		if f == nil {
			return fmt.Errorf("bind flag %q: not defined", name)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %q: %w", name, err)
		}
	}
	return nil
}

// Load reads the config file if present and returns the validated settings.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		Port:           v.GetString("port"),
		CORSOrigins:    v.GetStringSlice("cors.origins"),
		DBPath:         v.GetString("db.path"),
		LogLevel:       strings.ToLower(v.GetString("log.level")),
		GeneralLog:     v.GetString("log.general_path"),
		CredentialLog:  v.GetString("log.credential_path"),
		RadioBackend:   strings.ToLower(v.GetString("radio.backend")),
		RadioInterface: v.GetString("radio.interface"),
		CaptureFile:    v.GetString("radio.capture_file"),
		Keywords:       v.GetStringSlice("targets.keywords"),
		Passwords:      v.GetStringSlice("targets.passwords"),
		BLESeconds:     v.GetInt("ble.duration_seconds"),
		Interval:       v.GetDuration("cycle.interval"),
		SigningKey:     v.GetString("auth.signing_key"),
		TokenTTL:       v.GetDuration("auth.token_ttl"),
		NotifyReady:    v.GetBool("systemd.notify"),
	}
	return cfg, cfg.Validate()
}

var (
	errNoKeywords  = errors.New("targets.keywords must not be empty")
	errBadKeyword  = errors.New("targets.keywords must not contain empty entries")
	errBLEDuration = errors.New("ble.duration_seconds must be positive")
	errInterval    = errors.New("cycle.interval must be positive")
	errBackend     = errors.New("radio.backend must be one of sim, linux, capture")
	errCapture     = errors.New("radio.capture_file is required for the capture backend")
)

func (c Config) Validate() error {
	if len(c.Keywords) == 0 {
		return errNoKeywords
	}
	for _, k := range c.Keywords {
		if k == "" {
			return errBadKeyword
		}
	}
	if c.BLESeconds <= 0 {
		return errBLEDuration
	}
	if c.Interval <= 0 {
		return errInterval
	}
	switch c.RadioBackend {
	case BackendSim, BackendLinux:
	case BackendCapture:
		if c.CaptureFile == "" {
			return errCapture
		}
	default:
		return fmt.Errorf("%w, got %q", errBackend, c.RadioBackend)
	}
	return nil
}
