package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/gryla-project/gryla-go/pkg/gryla"
	"github.com/gryla-project/gryla-go/pkg/gryla/wikiapi"
)

// Config file names searched in the working directory.
const (
	configFileName    = "gryla.yaml"
	configFileNameAlt = "gryla.yml"
)

// Config is the CLI configuration.
type Config struct {
	API struct {
		// BaseURL is the MediaWiki API endpoint.
		BaseURL string `koanf:"base_url"`
		// TimeoutSeconds bounds one revision fetch.
		TimeoutSeconds int `koanf:"timeout_seconds"`
	} `koanf:"api"`
	// MaxDepth limits field nesting; zero keeps the library default.
	MaxDepth int `koanf:"max_depth"`
	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
	// Dialect overrides the wiki dialect tables.
	Dialect gryla.Dialect `koanf:"dialect"`
}

func defaultConfigMap() map[string]interface{} {
	d := gryla.DefaultDialect()
	return map[string]interface{}{
		"api.base_url":              wikiapi.DefaultBaseURL,
		"api.timeout_seconds":       30,
		"max_depth":                 0,
		"verbose":                   false,
		"dialect.states":            d.States,
		"dialect.ignored":           d.Ignored,
		"dialect.directions":        d.Directions,
		"dialect.no_fields_marker":  d.NoFieldsMarker,
		"dialect.packet_id_header":  d.PacketIDHeader,
		"dialect.field_name_header": d.FieldNameHeader,
		"dialect.field_type_header": d.FieldTypeHeader,
	}
}

func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{configFileName, configFileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// loadConfig loads configuration with precedence (highest to lowest):
// flags > GRYLA_ environment variables > config file > defaults.
func loadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultConfigMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(cfgFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// GRYLA_MAX_DEPTH -> max_depth, GRYLA_API__BASE_URL -> api.base_url
	if err := k.Load(env.Provider("GRYLA_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "GRYLA_"))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			switch f.Name {
			case "api-url":
				return "api.base_url", posflag.FlagVal(flags, f)
			case "timeout":
				return "api.timeout_seconds", posflag.FlagVal(flags, f)
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}
