package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sumireworks/ybarc/internal/config"
	"github.com/sumireworks/ybarc/internal/logging"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "ybarc",
	Short: "Tools for visual-novel archive and image assets",
	Long: `ybarc provides utilities for working with visual-novel engine asset files.

Supported operations:
  - Extract and repack the engine's v1/v2/v3 asset archives
  - Decode and encode the engine's YB image format to/from PNG`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		return logging.Setup(cfg.LogLevel, cfg.LogOutputDir)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-output-dir", "", "directory to write log files (if set, logs go to both stdout and file)")
	rootCmd.PersistentFlags().Bool("verbose", false, "print verbose progress information")
	rootCmd.PersistentFlags().String("keys-file", "gamekeys.json", "path to the gamekeys catalogue")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_output_dir", rootCmd.PersistentFlags().Lookup("log-output-dir"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("keys_file", rootCmd.PersistentFlags().Lookup("keys-file"))
}

// initConfig reads a config file and environment variables, following
// the same explicit-file / home-dir / env / flag precedence chain
// mintyparse establishes with its own cobra.OnInitialize hook.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "ybarc"))
		}
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("YBARC")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "using config file: %s\n", viper.ConfigFileUsed())
	}
}
