// Package cmd provides the pagesmith command-line interface.
//
// Configuration sources, in precedence order: command-line flags, then
// PAGESMITH_ prefixed environment variables, then the .pagesmith.yml
// configuration file.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pagesmith",
	Short: "A static HTML build engine for parameterized templates and JSON data",
	Long: `Pagesmith renders parameterized HTML templates against JSON data sources
into static, minified HTML artifacts, with sandboxed file management for
the template, data, and output trees.

Quick Start:
  pagesmith init                  Scaffold a new project
  pagesmith build                 Build one page
  pagesmith batch                 Build one page per JSON file in a folder
  pagesmith serve                 Start the HTTP API with live reload`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	bindRootFlags(rootCmd.PersistentFlags())
}

// initConfig initializes viper with the config file and environment
// overrides. A missing config file is not an error; defaults apply.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("PAGESMITH_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".pagesmith")
	}

	viper.SetEnvPrefix("PAGESMITH")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
