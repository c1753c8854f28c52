package cmd

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// bindRootFlags registers the persistent flags shared by every command and
// binds them into viper so flags override config-file values.
func bindRootFlags(fs *pflag.FlagSet) {
	fs.StringVar(&cfgFile, "config", "", "config file (default is .pagesmith.yml, can also use PAGESMITH_CONFIG_FILE env var)")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	fs.String("log-format", "text", "log format (text, json)")
	fs.String("templates-root", "", "template root directory")
	fs.String("data-root", "", "data root directory")
	fs.String("output-root", "", "output root directory")

	_ = viper.BindPFlag("logging.level", fs.Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", fs.Lookup("log-format"))
	_ = viper.BindPFlag("roots.templates", fs.Lookup("templates-root"))
	_ = viper.BindPFlag("roots.data", fs.Lookup("data-root"))
	_ = viper.BindPFlag("roots.output", fs.Lookup("output-root"))
}
