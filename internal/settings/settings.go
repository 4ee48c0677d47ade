package settings

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// IMPOSTERD_LOG_LEVEL=debug.
const EnvPrefix = "IMPOSTERD_"

// DefaultAdminPort is where the Admin API listens unless overridden.
const DefaultAdminPort = 2525

// Settings are the server-level options, as opposed to per-imposter config.
type Settings struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"omitempty,oneof=debug info warn error"`

	// LogFormat is text or json.
	LogFormat string `koanf:"log_format" validate:"omitempty,oneof=text json"`

	// AdminPort is the Admin API listen port.
	AdminPort int `koanf:"admin_port" validate:"min=0,max=65535"`

	// ConfigFile points to an imposter collection file to load at startup.
	ConfigFile string `koanf:"config_file"`

	// ConfigDir points to a directory tree of collection files.
	ConfigDir string `koanf:"config_dir"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		LogLevel:  "info",
		LogFormat: "text",
		AdminPort: DefaultAdminPort,
	}
}

// Load builds the settings from defaults, an optional YAML file, and
// IMPOSTERD_* environment variables, in increasing precedence.
// A missing file at path is an error; an empty path skips the file layer.
func Load(path string) (*Settings, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("settings file %s: %w", path, err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load settings %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	s := Default()
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(&s); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &s, nil
}
