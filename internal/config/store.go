package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/flow/internal/constants"
	flowerrors "github.com/mrz1836/flow/internal/errors"
	"github.com/mrz1836/flow/internal/flock"
	"github.com/mrz1836/flow/internal/fsops"
)

const (
	settingsDirPerm  = 0o750
	settingsFilePerm = 0o600
)

// newViperInstance creates a Viper instance with Flow's defaults and FLOW_*
// environment overrides applied.
func newViperInstance() *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")
	v.SetDefault(constants.SettingsKeyDevelopmentFolder, constants.DefaultDevelopmentFolder)
	v.SetDefault(constants.SettingsKeyPreferredEditor, constants.DefaultEditor)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads settings from the settings file, creating the file with defaults
// when absent. Environment variables (FLOW_* prefix) override file values.
//
// A file that cannot be parsed falls back to defaults with a warning rather
// than an error, so one corrupt write never blocks every later run.
func Load(ctx context.Context) (*Settings, error) {
	path, err := SettingsPath()
	if err != nil {
		return nil, err
	}

	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		if err = Save(ctx, DefaultSettings()); err != nil {
			return nil, err
		}
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()

	v := newViperInstance()
	v.SetConfigFile(path)
	if err = v.ReadInConfig(); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("settings file unreadable, using defaults")
		return DefaultSettings(), nil
	}

	var s Settings
	if err = v.Unmarshal(&s); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("settings file malformed, using defaults")
		return DefaultSettings(), nil
	}
	if err = Validate(&s); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("settings invalid, using defaults")
		return DefaultSettings(), nil
	}

	logger.Debug().
		Str(constants.SettingsKeyDevelopmentFolder, s.DevelopmentFolder).
		Str(constants.SettingsKeyPreferredEditor, s.PreferredEditor).
		Msg("settings loaded")

	return &s, nil
}

// Save persists the whole settings object under an exclusive file lock.
// The write is atomic so a concurrent reader never observes a partial file.
func Save(ctx context.Context, s *Settings) error {
	if err := Validate(s); err != nil {
		return err
	}

	path, err := SettingsPath()
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(path), settingsDirPerm); err != nil {
		return flowerrors.Wrap(err, "create flow home")
	}

	lock, err := flock.Acquire(ctx, path+".lock", constants.LockTimeout)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return flowerrors.Wrap(err, "encode settings")
	}
	data = append(data, '\n')

	return fsops.AtomicWrite(path, data, settingsFilePerm)
}

// Update loads the current settings, applies key=value, and persists the
// merged whole. Fields other than key keep their stored values.
func Update(ctx context.Context, key, value string) (*Settings, error) {
	s, err := Load(ctx)
	if err != nil {
		return nil, err
	}
	if err = s.Set(key, value); err != nil {
		return nil, err
	}
	if err = Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// AsMap returns the settings as a map keyed by the settings file key names.
// Structured output formats render from this.
func (s *Settings) AsMap() (map[string]any, error) {
	var out map[string]any
	if err := mapstructure.Decode(s, &out); err != nil {
		return nil, flowerrors.Wrap(err, "encode settings")
	}
	return out, nil
}
