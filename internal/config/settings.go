package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// HolidaySettings selects the holiday calendar used to colour events.
type HolidaySettings struct {
	// Area is a built-in calendar ("jp" or "none").
	Area string `yaml:"area"`
	// Feeds lists extra iCalendar sources (local paths or http(s) URLs)
	// whose events are treated as holidays.
	Feeds []string `yaml:"feeds,omitempty"`
	// Refresh is the cron schedule on which feeds are reloaded.
	Refresh string `yaml:"refresh,omitempty"`
}

// Settings is the user-editable configuration persisted as YAML.
type Settings struct {
	// Port is the local HTTP port for the scene API and calendar feed.
	Port string `yaml:"port"`

	// Language is the UI language (ISO 639-1).
	Language string `yaml:"language"`

	// People seeds every new session.
	People []string `yaml:"people"`

	Holidays HolidaySettings `yaml:"holidays"`

	// ContactsURL optionally points to a vCard file or URL imported as people at startup.
	ContactsURL string `yaml:"contacts_url,omitempty"`

	// AuthUser enables HTTP basic auth; the password is read from the OS keyring.
	AuthUser string `yaml:"auth_user,omitempty"`
}

// DefaultSettings returns the in-memory defaults.
func DefaultSettings() *Settings {
	people := make([]string, len(DefaultPeople))
	copy(people, DefaultPeople)
	return &Settings{
		Port:     DefaultPort,
		Language: DefaultLanguage,
		People:   people,
		Holidays: HolidaySettings{Area: DefaultHolidayArea, Refresh: DefaultHolidayRefresh},
	}
}

// Normalize fills in missing values so that partially-filled files still work.
func (s *Settings) Normalize() {
	if s.Port == "" {
		s.Port = DefaultPort
	}
	if !isSupportedLanguage(s.Language) {
		s.Language = DefaultLanguage
	}
	switch s.Holidays.Area {
	case HolidayAreaJapan, HolidayAreaNone:
	default:
		s.Holidays.Area = DefaultHolidayArea
	}
	if strings.TrimSpace(s.Holidays.Refresh) == "" {
		s.Holidays.Refresh = DefaultHolidayRefresh
	}

	// Drop blanks and duplicates while keeping the declared order.
	seen := make(map[string]bool, len(s.People))
	people := make([]string, 0, len(s.People))
	for _, p := range s.People {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		people = append(people, p)
	}
	s.People = people
}

func isSupportedLanguage(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// DefaultSettingsPath returns <user config dir>/<AppID>/settings.yaml.
func DefaultSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrConfigDir, err)
	}
	return filepath.Join(dir, AppID, SettingsFileName), nil
}

// LoadSettings reads the YAML settings file at path.
//
// A missing file is created with defaults (0600) and the defaults are returned.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		return nil, errors.New(ErrSettingsPath)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Info(MsgSettingsCreate,
				LogKeyComponent, CompSettings,
				LogKeyPath, path)
			s := DefaultSettings()
			if err := SaveSettings(path, s); err != nil {
				// Defaults are still usable; let the caller decide.
				return s, err
			}
			return s, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrSettingsLoad, err)
	}

	s := DefaultSettings()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSettingsLoad, err)
	}
	s.Normalize()
	return s, nil
}

// SaveSettings writes s to path atomically (temp file + rename) with 0600 permissions.
func SaveSettings(path string, s *Settings) error {
	if path == "" {
		return errors.New(ErrSettingsPath)
	}
	if s == nil {
		return errors.New(ErrSettingsNil)
	}
	s.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DirPermUserRWX); err != nil {
		return fmt.Errorf("%s: %w", ErrCreateDir, err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsSave, err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.tmp")
	if err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsSave, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", ErrSettingsSave, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", ErrSettingsSave, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsSave, err)
	}
	if err := os.Chmod(tmpName, FilePermUserRW); err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsSave, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsSave, err)
	}
	return nil
}
