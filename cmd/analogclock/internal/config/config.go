package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	uberconfig "go.uber.org/config"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/analogclock/pkg/animation"
	clockerrors "github.com/go-drift/analogclock/pkg/errors"
	"github.com/go-drift/analogclock/pkg/logger"
	"github.com/go-drift/analogclock/pkg/theme"
)

// DefaultFile is the config file picked up from the working directory when
// no --config flag is given.
const DefaultFile = "analogclock.yaml"

// CurrentVersion is the config schema version written by init.
const CurrentVersion = "v1.0.0"

// Config represents analogclock.yaml.
type Config struct {
	Version string        `yaml:"version" validate:"required"`
	Logger  logger.Config `yaml:"logger"`
	Clock   ClockConfig   `yaml:"clock"`
	Engine  EngineConfig  `yaml:"engine"`
	Face    FaceConfig    `yaml:"face"`
	Output  OutputConfig  `yaml:"output"`
}

// ClockConfig selects the time source.
type ClockConfig struct {
	// Location is an IANA zone name, "Local" or "UTC".
	Location string    `yaml:"location" validate:"required"`
	NTP      NTPConfig `yaml:"ntp"`
}

// NTPConfig enables NTP-corrected time when Server is set.
type NTPConfig struct {
	Server   string        `yaml:"server,omitempty"`
	Interval time.Duration `yaml:"interval,omitempty" validate:"gte=0"`
	Timeout  time.Duration `yaml:"timeout,omitempty" validate:"gte=0"`
}

// EngineConfig contains refresh loop settings.
type EngineConfig struct {
	FPS int `yaml:"fps" validate:"gte=1,lte=240"`
	// StatsInterval controls how often frame timings are logged. Zero disables.
	StatsInterval time.Duration `yaml:"stats_interval,omitempty" validate:"gte=0"`
	// DebugAddr enables the HTTP inspection server, e.g. "127.0.0.1:9090".
	DebugAddr string `yaml:"debug_addr,omitempty"`
}

// FaceConfig describes the rendered clock face.
type FaceConfig struct {
	Width     float64         `yaml:"width" validate:"gte=0"`
	Height    float64         `yaml:"height" validate:"gte=0"`
	Theme     string          `yaml:"theme" validate:"required"`
	Label     string          `yaml:"label,omitempty"`
	Overrides theme.Overrides `yaml:"colors,omitempty"`
}

// OutputConfig controls where presented frames are written.
type OutputConfig struct {
	Path               string  `yaml:"path" validate:"required"`
	Format             string  `yaml:"format,omitempty" validate:"oneof=png svg"`
	MaxWritesPerSecond float64 `yaml:"max_writes_per_second" validate:"gte=0"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from the given YAML files, merged in order with
// later files overriding earlier ones, then applies defaults and validates.
// With no files the defaults are returned.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		return Default(), nil
	}

	opts := make([]uberconfig.YAMLOption, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			return nil, fmt.Errorf("config file %s: %w", f, err)
		}
		opts = append(opts, uberconfig.File(f))
	}

	provider, err := uberconfig.NewYAML(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	var cfg Config
	if err := provider.Get(uberconfig.Root).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOptional loads files, or DefaultFile from dir when files is empty and
// that file exists.
func LoadOptional(dir string, files []string) (*Config, error) {
	if len(files) > 0 {
		return Load(files...)
	}
	path := filepath.Join(dir, DefaultFile)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to stat %s: %w", DefaultFile, err)
	}
	return Load(path)
}

func (c *Config) applyDefaults() {
	if c.Version == "" {
		c.Version = CurrentVersion
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if len(c.Logger.OutputPaths) == 0 {
		c.Logger.OutputPaths = []string{"stderr"}
	}
	if c.Clock.Location == "" {
		c.Clock.Location = "Local"
	}
	if c.Clock.NTP.Server != "" {
		if c.Clock.NTP.Interval == 0 {
			c.Clock.NTP.Interval = animation.DefaultNTPInterval
		}
		if c.Clock.NTP.Timeout == 0 {
			c.Clock.NTP.Timeout = animation.DefaultNTPTimeout
		}
	}
	if c.Engine.FPS == 0 {
		c.Engine.FPS = 60
	}
	if c.Face.Width == 0 {
		c.Face.Width = 300
	}
	if c.Face.Height == 0 {
		c.Face.Height = 300
	}
	if c.Face.Theme == "" {
		c.Face.Theme = "light"
	}
	if c.Output.Path == "" {
		c.Output.Path = "clock.png"
	}
	if c.Output.Format == "" {
		c.Output.Format = FormatFromPath(c.Output.Path)
	}
	if c.Output.MaxWritesPerSecond == 0 {
		c.Output.MaxWritesPerSecond = 1
	}
}

// Validate checks the resolved configuration. Failures are reported as
// config-kind clock errors.
func (c *Config) Validate() error {
	if err := c.validate(); err != nil {
		return &clockerrors.ClockError{
			Op:        "config.Validate",
			Kind:      clockerrors.KindConfig,
			Err:       err,
			Timestamp: time.Now(),
		}
	}
	return nil
}

func (c *Config) validate() error {
	if err := structValidator.Struct(c); err != nil {
		return structError(err)
	}
	if !semver.IsValid(c.Version) {
		return fmt.Errorf("version %q is not a semantic version (e.g. %s)", c.Version, CurrentVersion)
	}
	if major := semver.Major(c.Version); major != semver.Major(CurrentVersion) {
		return fmt.Errorf("unsupported config version %s (want %s.x.x)", c.Version, semver.Major(CurrentVersion))
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.Theme(); err != nil {
		return err
	}
	return nil
}

var structValidator = validator.New()

func init() {
	// Report yaml keys rather than Go field names.
	structValidator.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// structError flattens validator output into a single error listing every
// failing field.
func structError(err error) error {
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("unable to validate config: %w", err)
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		// Namespace starts with the root type name.
		_, field, _ := strings.Cut(fe.Namespace(), ".")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s (got %v)", field, fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s is %s", field, fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// Location resolves Clock.Location.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Clock.Location)
	if err != nil {
		return nil, fmt.Errorf("clock.location: %w", err)
	}
	return loc, nil
}

// Theme resolves the named theme with color overrides and label applied.
func (c *Config) Theme() (*theme.ThemeData, error) {
	th, err := theme.Named(c.Face.Theme)
	if err != nil {
		return nil, fmt.Errorf("face.theme: %w", err)
	}
	th, err = th.WithOverrides(c.Face.Overrides)
	if err != nil {
		return nil, fmt.Errorf("face.colors: %w", err)
	}
	if c.Face.Label != "" {
		th.Label = c.Face.Label
	}
	return th, nil
}

// FormatFromPath guesses the output format from a file extension.
func FormatFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return "svg"
	}
	return "png"
}

// Write stores cfg as YAML at path. Existing files are kept unless force is set.
func Write(path string, cfg *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
