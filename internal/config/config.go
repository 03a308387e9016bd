// Package config holds the settings of the po-converter command.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
)

// Config is the command configuration. Values from the YAML file are
// overridden by command line options.
type Config struct {
	// LocalesDir holds <domain>.pot and one <locale>/<domain>.po per locale.
	LocalesDir string `yaml:"locales_dir"`
	Domain     string `yaml:"domain"`
	// AndroidResDir is the res directory holding values/strings.xml.
	AndroidResDir string `yaml:"android_res_dir"`
	// Locales limits status reports to these locales.
	Locales []string `yaml:"locales"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Template struct {
		PackageName      string `yaml:"package_name"`
		MsgidBugsAddress string `yaml:"msgid_bugs_address"`
		PluralForms      string `yaml:"plural_forms"`
	} `yaml:"template"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	var cfg Config
	cfg.setDefaults()
	return cfg
}

func (cfg *Config) setDefaults() {
	if cfg.Domain == "" {
		cfg.Domain = "messages"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Template.PluralForms == "" {
		cfg.Template.PluralForms = "nplurals=2; plural=(n != 1);"
	}
}

// Load reads the YAML file at path. Settings the file leaves out keep
// their default value, and a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Info().
			Str("path", path).
			Msg("No YAML configuration file found, skipping")

		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}

	cfg = Config{}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse YAML from %s: %w", path, err)
	}
	cfg.setDefaults()

	log.Debug().
		Str("path", path).
		Msg("Loaded configuration")

	return cfg, nil
}

// Validate checks the settings every command needs.
func (cfg Config) Validate() error {
	if cfg.LocalesDir == "" {
		return errors.New("locales directory is not set")
	}
	if cfg.Domain == "" {
		return errors.New("domain is not set")
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", cfg.Log.Level)
	}
	return nil
}
