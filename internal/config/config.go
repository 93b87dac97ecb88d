package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/fakeyudi/storydemon/internal/demon"
	"github.com/fakeyudi/storydemon/internal/log"
)

// EnvPrefix prefixes environment overrides: demon.min_delay is read from
// STORYDEMON_DEMON_MIN_DELAY.
const EnvPrefix = "STORYDEMON"

// Config holds all configurable storydemon settings.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Demon   DemonConfig   `mapstructure:"demon"`
	Game    GameConfig    `mapstructure:"game"`
	Log     LogConfig     `mapstructure:"log"`
}

type StorageConfig struct {
	Backend string `mapstructure:"backend"` // "file" | "sqlite" | "memory"
	Dir     string `mapstructure:"dir"`     // "" = XDG data directory
}

// DemonConfig tunes the spawn scheduler. Padding and AvoidRadius are in
// terminal cells.
type DemonConfig struct {
	MinDelay           time.Duration `mapstructure:"min_delay"`
	MaxDelay           time.Duration `mapstructure:"max_delay"`
	MinDelayFloor      time.Duration `mapstructure:"min_delay_floor"`
	MaxDelayFloor      time.Duration `mapstructure:"max_delay_floor"`
	ReductionPerWord   time.Duration `mapstructure:"reduction_per_word"`
	Padding            float64       `mapstructure:"padding"`
	AvoidRadius        float64       `mapstructure:"avoid_radius"`
	PlacementAttempts  int           `mapstructure:"placement_attempts"`
	CursorRestoreDelay time.Duration `mapstructure:"cursor_restore_delay"`
	Comments           []string      `mapstructure:"comments"`
}

type GameConfig struct {
	AutosaveInterval time.Duration `mapstructure:"autosave_interval"`
	CopyFeedback     time.Duration `mapstructure:"copy_feedback"`
	ToastDuration    time.Duration `mapstructure:"toast_duration"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // "" = storydemon.log in the data directory
}

// Defaults returns sensible default configuration values.
func Defaults() Config {
	d := demon.DefaultConfig()
	return Config{
		Storage: StorageConfig{Backend: "file"},
		Demon: DemonConfig{
			MinDelay:           d.MinDelay,
			MaxDelay:           d.MaxDelay,
			MinDelayFloor:      d.MinDelayFloor,
			MaxDelayFloor:      d.MaxDelayFloor,
			ReductionPerWord:   d.ReductionPerWord,
			Padding:            2,
			AvoidRadius:        1,
			PlacementAttempts:  d.PlacementAttempts,
			CursorRestoreDelay: d.CursorRestoreDelay,
		},
		Game: GameConfig{
			AutosaveInterval: 30 * time.Second,
			CopyFeedback:     2 * time.Second,
			ToastDuration:    4 * time.Second,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Scheduler converts the demon section into scheduler tunables.
func (d DemonConfig) Scheduler() demon.Config {
	return demon.Config{
		MinDelay:           d.MinDelay,
		MaxDelay:           d.MaxDelay,
		MinDelayFloor:      d.MinDelayFloor,
		MaxDelayFloor:      d.MaxDelayFloor,
		ReductionPerWord:   d.ReductionPerWord,
		Padding:            d.Padding,
		AvoidRadius:        d.AvoidRadius,
		PlacementAttempts:  d.PlacementAttempts,
		CursorRestoreDelay: d.CursorRestoreDelay,
		Comments:           d.Comments,
	}
}

// Dir returns the storydemon config directory:
// $XDG_CONFIG_HOME/storydemon or ~/.config/storydemon.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "storydemon"), nil
}

// DefaultPath returns the config file used when no --config flag is given.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the TOML file at path over the defaults and applies STORYDEMON_*
// environment overrides on top. A missing file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Defaults())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, &ParseError{Path: path, Err: err}
		}
		log.Debug("no config file at %s, using defaults", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, &ParseError{Path: path, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, &ParseError{Path: path, Err: err}
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.dir", d.Storage.Dir)

	v.SetDefault("demon.min_delay", d.Demon.MinDelay)
	v.SetDefault("demon.max_delay", d.Demon.MaxDelay)
	v.SetDefault("demon.min_delay_floor", d.Demon.MinDelayFloor)
	v.SetDefault("demon.max_delay_floor", d.Demon.MaxDelayFloor)
	v.SetDefault("demon.reduction_per_word", d.Demon.ReductionPerWord)
	v.SetDefault("demon.padding", d.Demon.Padding)
	v.SetDefault("demon.avoid_radius", d.Demon.AvoidRadius)
	v.SetDefault("demon.placement_attempts", d.Demon.PlacementAttempts)
	v.SetDefault("demon.cursor_restore_delay", d.Demon.CursorRestoreDelay)
	v.SetDefault("demon.comments", d.Demon.Comments)

	v.SetDefault("game.autosave_interval", d.Game.AutosaveInterval)
	v.SetDefault("game.copy_feedback", d.Game.CopyFeedback)
	v.SetDefault("game.toast_duration", d.Game.ToastDuration)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}

// Validate rejects settings the scheduler or storage cannot work with.
func (c Config) Validate() error {
	var errs []error
	switch c.Storage.Backend {
	case "file", "sqlite", "memory":
	default:
		errs = append(errs, fmt.Errorf("storage.backend: unknown backend %q", c.Storage.Backend))
	}

	d := c.Demon
	if d.MinDelayFloor <= 0 || d.MaxDelayFloor <= 0 {
		errs = append(errs, errors.New("demon: delay floors must be positive"))
	}
	if d.MinDelay > d.MaxDelay {
		errs = append(errs, errors.New("demon.min_delay must not exceed demon.max_delay"))
	}
	if d.MinDelayFloor > d.MaxDelayFloor {
		errs = append(errs, errors.New("demon.min_delay_floor must not exceed demon.max_delay_floor"))
	}
	if d.ReductionPerWord < 0 || d.CursorRestoreDelay < 0 {
		errs = append(errs, errors.New("demon: durations must not be negative"))
	}
	if d.Padding < 0 || d.AvoidRadius < 0 || d.PlacementAttempts < 0 {
		errs = append(errs, errors.New("demon: padding, avoid_radius and placement_attempts must not be negative"))
	}

	if c.Game.AutosaveInterval <= 0 || c.Game.CopyFeedback <= 0 || c.Game.ToastDuration <= 0 {
		errs = append(errs, errors.New("game: intervals must be positive"))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

// Render encodes cfg as a TOML document suitable for config.toml.
func Render(cfg Config) ([]byte, error) {
	comments := cfg.Demon.Comments
	if comments == nil {
		comments = []string{}
	}
	doc := map[string]any{
		"storage": map[string]any{
			"backend": cfg.Storage.Backend,
			"dir":     cfg.Storage.Dir,
		},
		"demon": map[string]any{
			"min_delay":            cfg.Demon.MinDelay.String(),
			"max_delay":            cfg.Demon.MaxDelay.String(),
			"min_delay_floor":      cfg.Demon.MinDelayFloor.String(),
			"max_delay_floor":      cfg.Demon.MaxDelayFloor.String(),
			"reduction_per_word":   cfg.Demon.ReductionPerWord.String(),
			"padding":              cfg.Demon.Padding,
			"avoid_radius":         cfg.Demon.AvoidRadius,
			"placement_attempts":   cfg.Demon.PlacementAttempts,
			"cursor_restore_delay": cfg.Demon.CursorRestoreDelay.String(),
			"comments":             comments,
		},
		"game": map[string]any{
			"autosave_interval": cfg.Game.AutosaveInterval.String(),
			"copy_feedback":     cfg.Game.CopyFeedback.String(),
			"toast_duration":    cfg.Game.ToastDuration.String(),
		},
		"log": map[string]any{
			"level": cfg.Log.Level,
			"file":  cfg.Log.File,
		},
	}
	data, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}

// ParseError is returned when a config file exists but cannot be parsed or
// holds invalid values.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
