package config

import (
	"path/filepath"

	"github.com/mrz1836/flow/internal/constants"
	flowerrors "github.com/mrz1836/flow/internal/errors"
	"github.com/mrz1836/flow/internal/fsops"
)

// Settings holds Flow's persisted user preferences.
type Settings struct {
	// DevelopmentFolder is the directory new projects are created under.
	// A leading ~ is expanded at use, not at rest.
	DevelopmentFolder string `json:"development_folder" mapstructure:"development_folder"`

	// PreferredEditor is the editor command launched on the project
	// directory after a successful run.
	PreferredEditor string `json:"preferred_editor" mapstructure:"preferred_editor"`
}

// DefaultSettings returns the settings written on first use.
func DefaultSettings() *Settings {
	return &Settings{
		DevelopmentFolder: constants.DefaultDevelopmentFolder,
		PreferredEditor:   constants.DefaultEditor,
	}
}

// Validate checks the settings for unusable values.
func Validate(s *Settings) error {
	if s == nil {
		return flowerrors.ErrSettingsInvalid
	}
	if s.DevelopmentFolder == "" {
		return flowerrors.Wrap(flowerrors.ErrSettingsInvalid, "development_folder must not be empty")
	}
	if s.PreferredEditor == "" {
		return flowerrors.Wrap(flowerrors.ErrSettingsInvalid, "preferred_editor must not be empty")
	}
	return nil
}

// Keys returns the settings keys accepted by Get and Set, in display order.
func Keys() []string {
	return []string{
		constants.SettingsKeyDevelopmentFolder,
		constants.SettingsKeyPreferredEditor,
	}
}

// Get returns the value for a settings key.
func (s *Settings) Get(key string) (string, error) {
	switch key {
	case constants.SettingsKeyDevelopmentFolder:
		return s.DevelopmentFolder, nil
	case constants.SettingsKeyPreferredEditor:
		return s.PreferredEditor, nil
	default:
		return "", flowerrors.Wrapf(flowerrors.ErrUnknownSettingsKey, "%q", key)
	}
}

// Set updates the value for a settings key. Empty values are rejected so a
// typo cannot wipe a setting.
func (s *Settings) Set(key, value string) error {
	if value == "" {
		return flowerrors.Wrapf(flowerrors.ErrEmptyValue, "setting %q", key)
	}

	switch key {
	case constants.SettingsKeyDevelopmentFolder:
		s.DevelopmentFolder = value
	case constants.SettingsKeyPreferredEditor:
		s.PreferredEditor = value
	default:
		return flowerrors.Wrapf(flowerrors.ErrUnknownSettingsKey, "%q", key)
	}
	return nil
}

// TargetDir resolves the absolute directory a project with the given name
// would be generated into: the expanded development folder joined with the
// project name.
func (s *Settings) TargetDir(projectName string) (string, error) {
	devFolder, err := fsops.ExpandHome(s.DevelopmentFolder)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(devFolder) {
		devFolder, err = filepath.Abs(devFolder)
		if err != nil {
			return "", flowerrors.Wrap(err, "resolve development folder")
		}
	}
	return filepath.Join(devFolder, projectName), nil
}
