// Package config loads the settings shared by the CLI and the HTTP adapter
// from an optional file and PARAM_BINDER_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"param-binder/binding"
	"param-binder/primitive"
)

// EnvPrefix prefixes every environment variable, e.g. PARAM_BINDER_LOG_LEVEL.
const EnvPrefix = "PARAM_BINDER"

// Config is the root configuration.
type Config struct {
	Schema  string        `mapstructure:"schema"`
	Root    string        `mapstructure:"root"`
	Log     LogConfig     `mapstructure:"log"`
	Binding BindingConfig `mapstructure:"binding"`
	HTTP    HTTPConfig    `mapstructure:"http"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// BindingConfig configures the binder.
type BindingConfig struct {
	MaxIndex     int      `mapstructure:"max_index"`
	MaxValueSize string   `mapstructure:"max_value_size"` // e.g. "64KiB", empty for no limit
	DateLayouts  []string `mapstructure:"date_layouts"`
	Location     string   `mapstructure:"location"`
	Categories   []string `mapstructure:"categories"`
	Ignore       []string `mapstructure:"ignore"`
}

// HTTPConfig configures the HTTP adapter.
type HTTPConfig struct {
	Addr         string        `mapstructure:"addr"`
	FailOnError  bool          `mapstructure:"fail_on_error"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	BodyLimit    string        `mapstructure:"body_limit"`
	ResultLocals string        `mapstructure:"result_locals"`
}

var defaults = map[string]any{
	"schema":                 "",
	"root":                   "",
	"log.level":              "info",
	"log.development":        true,
	"binding.max_index":      binding.DefaultMaxIndex,
	"binding.max_value_size": "",
	"binding.date_layouts":   primitive.DefaultLayouts,
	"binding.location":       "UTC",
	"binding.categories":     []string{},
	"binding.ignore":         binding.DefaultIgnored,
	"http.addr":              ":8080",
	"http.fail_on_error":     false,
	"http.read_timeout":      "10s",
	"http.body_limit":        "4MiB",
	"http.result_locals":     "binding",
}

// Load reads the configuration. path may be empty, in which case only
// defaults and the environment are used.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		Result: &cfg,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, nil
}

// ValueSizeBytes parses MaxValueSize. An empty value means no limit.
func (b BindingConfig) ValueSizeBytes() (int, error) {
	return parseSize(b.MaxValueSize)
}

// PrimitiveOptions builds the options of the default converters.
func (b BindingConfig) PrimitiveOptions() (primitive.Options, error) {
	opts := primitive.DefaultOptions()

	categories, err := primitive.ParseCategories(b.Categories)
	if err != nil {
		return opts, err
	}

	opts.Categories = categories

	if len(b.DateLayouts) > 0 {
		opts.Layouts = b.DateLayouts
	}

	if b.Location != "" {
		loc, err := time.LoadLocation(b.Location)
		if err != nil {
			return opts, fmt.Errorf("invalid location %q: %w", b.Location, err)
		}

		opts.Location = loc
	}

	return opts, nil
}

// BinderConfig turns the binding section into a binding.Config.
func (b BindingConfig) BinderConfig(logger *zap.Logger) (binding.Config, error) {
	opts, err := b.PrimitiveOptions()
	if err != nil {
		return binding.Config{}, err
	}

	size, err := b.ValueSizeBytes()
	if err != nil {
		return binding.Config{}, err
	}

	cfg := binding.DefaultConfig()
	cfg.Logger = logger
	cfg.Primitive = opts
	cfg.MaxIndex = b.MaxIndex
	cfg.MaxValueSize = size

	if b.Ignore != nil {
		cfg.Ignore = b.Ignore
	}

	return cfg, nil
}

// BodyLimitBytes parses BodyLimit. An empty value means the fiber default.
func (h HTTPConfig) BodyLimitBytes() (int, error) {
	return parseSize(h.BodyLimit)
}

func parseSize(s string) (int, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}

	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}

	return int(n), nil
}
