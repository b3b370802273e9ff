// Package config loads the project configuration from catpage.yaml, the
// environment (CATPAGE_*) and command line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/itsmostafa/catpage/internal/category"
	"github.com/itsmostafa/catpage/internal/expr"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CATPAGE"

// Config is the project configuration.
type Config struct {
	ContentDir      string        `mapstructure:"contentDir"`
	CategoriesDir   string        `mapstructure:"categoriesDir"`
	OutputDir       string        `mapstructure:"outputDir"`
	Manifest        string        `mapstructure:"manifest"`
	Policy          string        `mapstructure:"policy"`
	DefaultPath     string        `mapstructure:"defaultPath"`
	ExcludePrefixes []string      `mapstructure:"excludePrefixes"`
	Extensions      []string      `mapstructure:"extensions"`
	Only            []string      `mapstructure:"only"`
	ExprTimeout     time.Duration `mapstructure:"exprTimeout"`
}

// FlagKeys maps command line flag names to config keys.
var FlagKeys = map[string]string{
	"content":      "contentDir",
	"categories":   "categoriesDir",
	"out":          "outputDir",
	"manifest":     "manifest",
	"policy":       "policy",
	"only":         "only",
	"expr-timeout": "exprTimeout",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("contentDir", "content")
	v.SetDefault("categoriesDir", "categories")
	v.SetDefault("outputDir", "public")
	v.SetDefault("manifest", "manifest.json")
	v.SetDefault("policy", category.PolicyUnrestricted.String())
	v.SetDefault("defaultPath", category.DefaultPath)
	v.SetDefault("excludePrefixes", category.DefaultExcludePrefixes)
	v.SetDefault("extensions", []string{".md", ".markdown", ".html"})
	v.SetDefault("only", []string{})
	v.SetDefault("exprTimeout", expr.DefaultTimeout)
}

// Load reads the configuration. An empty file searches the working directory
// for catpage.yaml and tolerates its absence; a named file must exist. Flags
// that were set on the command line override everything else. It returns the
// config file used, if any.
func Load(file string, flags *pflag.FlagSet) (Config, string, error) {
	v := viper.New()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("catpage")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if flags != nil {
		for name, key := range FlagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, "", fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, "", fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, "", err
	}

	return cfg, v.ConfigFileUsed(), nil
}

// Validate checks values that can not be caught by decoding.
func (c Config) Validate() error {
	if _, err := category.ParsePolicy(c.Policy); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.ContentDir == "" {
		return errors.New("invalid config: contentDir is empty")
	}
	if c.Manifest == "" {
		return errors.New("invalid config: manifest is empty")
	}
	return nil
}

// ManifestPath is the manifest file inside the output directory.
func (c Config) ManifestPath() string {
	return filepath.Join(c.OutputDir, c.Manifest)
}

// BuildOptions converts the project settings into engine options.
func (c Config) BuildOptions(fragments map[string]category.Fragment) category.Options {
	policy, _ := category.ParsePolicy(c.Policy)
	return category.Options{
		Fragments:       fragments,
		Policy:          policy,
		DefaultPath:     c.DefaultPath,
		ExcludePrefixes: c.ExcludePrefixes,
		Only:            c.Only,
	}
}
