package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagesmith/pagesmith/internal/logging"
	"github.com/pagesmith/pagesmith/internal/scaffold"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Scaffold a new pagesmith project",
	Long: `Init creates the template, data, and output roots with a working
sample page and a default configuration file. Existing files are never
overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("name", "", "project name used in sample content (default: directory name)")
	initCmd.Flags().Bool("no-config", false, "skip writing .pagesmith.yml")

	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	name, _ := cmd.Flags().GetString("name")
	noConfig, _ := cmd.Flags().GetBool("no-config")

	logger := logging.NewLogger(&logging.Config{Level: "info", Format: "text"})

	err := scaffold.New(logger).Generate(cmd.Context(), scaffold.Options{
		Dir:        dir,
		Name:       name,
		WithConfig: !noConfig,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Project ready in %s. Try:\n\n", dir)
	fmt.Fprintln(cmd.OutOrStdout(), "  pagesmith build -t pages/hello.html.tmpl -d pages/hello.json -o hello")

	return nil
}
