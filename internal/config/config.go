// Package config defines the toolkit's CLI-wide settings, bound from
// flags, environment variables, and an optional config file by viper.
package config

// Config holds settings shared across every ybarc subcommand.
type Config struct {
	Verbose      bool   `mapstructure:"verbose"`
	LogLevel     string `mapstructure:"log_level"`
	LogOutputDir string `mapstructure:"log_output_dir"`
	KeysFile     string `mapstructure:"keys_file"`
}

// Default returns the settings used when neither a config file, an
// environment variable, nor a flag supplies a value.
func Default() Config {
	return Config{
		LogLevel: "info",
		KeysFile: "gamekeys.json",
	}
}
