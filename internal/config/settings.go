package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Settings holds the user-tunable runtime configuration.
// Values come from a YAML file (via -config or CONFIG_PATH) with environment
// overrides; when no file is given, defaults plus environment apply.
type Settings struct {
	// Language selects the message catalogue for user-facing output (ISO 639-1).
	Language string `yaml:"language" env:"ASSISTANT_LANG" env-default:"en"`

	// ServerPort is the localhost port for the iCalendar feed (-serve).
	ServerPort string `yaml:"server_port" env:"ASSISTANT_SERVER_PORT" env-default:"18080"`

	// Source describes the default vCard origin for the import command.
	Source SourceSettings `yaml:"source"`
}

// SourceSettings describes where vCards are imported from.
type SourceSettings struct {
	// Mode is SourceModeLocal or SourceModeWeb.
	Mode string `yaml:"mode" env:"ASSISTANT_SOURCE_MODE" env-default:"local"`

	// LocalPath is the path to a .vcf file (local mode).
	LocalPath string `yaml:"local_path" env:"ASSISTANT_SOURCE_PATH"`

	// WebURL is a CardDAV or WebDAV URL (web mode).
	WebURL string `yaml:"web_url" env:"ASSISTANT_SOURCE_URL"`

	// WebUser is the HTTP Basic Auth username. The matching password is
	// resolved from the system keyring, falling back to ASSISTANT_SOURCE_PASS.
	WebUser string `yaml:"web_user" env:"ASSISTANT_SOURCE_USER"`
	WebPass string `yaml:"web_pass" env:"ASSISTANT_SOURCE_PASS"`
}

// LoadSettings reads the settings file at path, or environment-only defaults
// when path is empty. A missing explicit file is an error; defaults are not.
func LoadSettings(path string) (*Settings, error) {
	var s Settings

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	if path == "" {
		if err := cleanenv.ReadEnv(&s); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrSettingsRead, err)
		}
		return &s, nil
	}

	if err := cleanenv.ReadConfig(path, &s); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSettingsRead, err)
	}

	slog.Debug(MsgSettingsLoad,
		LogKeyComponent, CompConfig,
		LogKeyFile, path,
		LogKeyLang, s.Language,
	)
	return &s, nil
}
