package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagesmith/pagesmith/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage pagesmith configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .pagesmith.yml",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().String("file", ".pagesmith.yml", "path to write the config file to")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
