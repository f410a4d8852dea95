package config

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the single configuration structure for an analysis run. It
// replaces the scattered flag constants of earlier script-style versions.
type Config struct {
	DataFile   string `mapstructure:"data_file" yaml:"data_file"`
	Delimiter  string `mapstructure:"delimiter" yaml:"delimiter"`
	ShowPlots  bool   `mapstructure:"show_plots" yaml:"show_plots"`
	SavePlots  bool   `mapstructure:"save_plots" yaml:"save_plots"`
	SaveTables bool   `mapstructure:"save_tables" yaml:"save_tables"`
	OutputDir  string `mapstructure:"output_dir" yaml:"output_dir"`
	Format     string `mapstructure:"format" yaml:"format"`
}

// Default returns the built-in configuration: the UCI maths dataset with
// its semicolon delimiter, text report only, no exports.
func Default() Config {
	return Config{
		DataFile:  "student-mat.csv",
		Delimiter: ";",
		OutputDir: ".",
		Format:    "text",
	}
}

// Load loads configuration with precedence flags > env (STUDENTQA_*) >
// config file > defaults. A missing config file is not an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("STUDENTQA")
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("data_file", def.DataFile)
	v.SetDefault("delimiter", def.Delimiter)
	v.SetDefault("show_plots", def.ShowPlots)
	v.SetDefault("save_plots", def.SavePlots)
	v.SetDefault("save_tables", def.SaveTables)
	v.SetDefault("output_dir", def.OutputDir)
	v.SetDefault("format", def.Format)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".studentqa"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if _, err := c.DelimiterRune(); err != nil {
		return nil, err
	}
	switch c.Format {
	case "text", "yaml":
	default:
		return nil, fmt.Errorf("unknown report format %q", c.Format)
	}
	return &c, nil
}

// Save writes the configuration to cfgFile, or to
// ~/.studentqa/config.yaml when cfgFile is empty.
func Save(c *Config, cfgFile string) (string, error) {
	path := cfgFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".studentqa")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}

// DelimiterRune validates the configured delimiter is a single rune.
func (c *Config) DelimiterRune() (rune, error) {
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", c.Delimiter)
	}
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r, nil
}
