// Package config wires viper: config file search path, OCTOTUBE_* environment
// variables, and bindings for the root command's persistent flags.
package config

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"octotube/internal/dirs"
)

// Init is non-fatal: a missing or malformed config file never blocks startup.
func Init(root *cobra.Command) error {
	if cfgDir, err := dirs.ConfigDir(); err == nil {
		_ = dirs.Ensure(cfgDir)
		viper.AddConfigPath(cfgDir)
	}
	viper.SetConfigName("config") // supports config.{yaml|yml|json|toml}

	viper.SetEnvPrefix("OCTOTUBE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	_ = viper.BindPFlag("out_dir", root.PersistentFlags().Lookup("out-dir"))
	_ = viper.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("ffmpeg_path", root.PersistentFlags().Lookup("ffmpeg-path"))
	_ = viper.BindPFlag("jobs", root.PersistentFlags().Lookup("jobs"))
	_ = viper.BindPFlag("concurrent", root.PersistentFlags().Lookup("concurrent"))
	_ = viper.BindPFlag("no_ui", root.PersistentFlags().Lookup("no-ui"))

	_ = viper.ReadInConfig()
	return nil
}
