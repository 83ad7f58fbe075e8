// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the folio CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/folio/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the folio CLI.
var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Bind a folder of images into a single PDF",
	Long: `folio merges the images of a directory into one PDF document, one image per
page. Page dimensions derive from each image's pixel size and DPI metadata;
images without usable metadata are sized with a configurable fallback DPI.

Supported input formats: JPEG, PNG, WebP, TIFF, and BMP. Pages follow the
natural alphanumeric order of the file names, so img2 comes before img10.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./folio.yaml or ~/.config/folio/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("folio")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "folio"))
		}
	}

	viper.SetEnvPrefix("FOLIO")
	viper.AutomaticEnv()
	viper.SetDefault("fallback_dpi", types.DefaultDPI)
	viper.SetDefault("history_dir", defaultHistoryDir())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// defaultHistoryDir places the conversion log under the user's data
// directory, falling back to the working directory when home is unknown.
func defaultHistoryDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".folio"
	}
	return filepath.Join(home, ".local", "share", "folio")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
