package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
//
// The circadian window hours are explicit configuration threaded into the
// variability engine; the core never consults process-wide state.
type Global struct {
	DayStart   int `mapstructure:"day_start" yaml:"day_start"`
	DayEnd     int `mapstructure:"day_end" yaml:"day_end"`
	NightStart int `mapstructure:"night_start" yaml:"night_start"`
	NightEnd   int `mapstructure:"night_end" yaml:"night_end"`

	MaxRows    int `mapstructure:"max_rows" yaml:"max_rows"`
	SampleRows int `mapstructure:"sample_rows" yaml:"sample_rows"`
	Workers    int `mapstructure:"workers" yaml:"workers"`

	OutputFormat       string `mapstructure:"output_format" yaml:"output_format"`
	DecimalSeparator   string `mapstructure:"decimal_separator" yaml:"decimal_separator"`
	ThousandsSeparator string `mapstructure:"thousands_separator" yaml:"thousands_separator"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.bpvar/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".bpvar")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	// Optional .env bootstrap so BPVAR_* vars can live next to the data.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("BPVAR")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("day_start", 8)
	v.SetDefault("day_end", 22)
	v.SetDefault("night_start", 0)
	v.SetDefault("night_end", 6)
	v.SetDefault("max_rows", 100000)
	v.SetDefault("sample_rows", 10)
	v.SetDefault("workers", 4)
	v.SetDefault("output_format", "markdown")
	v.SetDefault("decimal_separator", "")
	v.SetDefault("thousands_separator", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".bpvar")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validateWindows(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Global) validateWindows() error {
	if c.DayStart < 0 || c.DayEnd > 24 || c.DayStart >= c.DayEnd {
		return fmt.Errorf("invalid day window [%d,%d)", c.DayStart, c.DayEnd)
	}
	if c.NightStart < 0 || c.NightEnd > 24 || c.NightStart >= c.NightEnd {
		return fmt.Errorf("invalid night window [%d,%d)", c.NightStart, c.NightEnd)
	}
	return nil
}
