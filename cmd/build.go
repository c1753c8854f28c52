package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pagesmith/pagesmith/internal/build"
	"github.com/pagesmith/pagesmith/internal/datasource"
)

var buildCmd = &cobra.Command{
	Use:     "build",
	Aliases: []string{"b"},
	Short:   "Build one page from a template and data sources",
	Long: `Build renders a single template against one or more JSON data sources
and writes the minified artifact under the output root.

Data sources are given as "file.json" or "file.json:key" and merge in
listed order; later sources override earlier ones key-by-key.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringP("template", "t", "", "template path relative to the template root (required)")
	buildCmd.Flags().StringArrayP("data", "d", nil, `data source "file.json" or "file.json:key" (repeatable)`)
	buildCmd.Flags().StringP("output", "o", "", "output path relative to the output root (required)")
	_ = buildCmd.MarkFlagRequired("template")
	_ = buildCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	e, err := newEngine()
	if err != nil {
		return err
	}

	templatePath, _ := cmd.Flags().GetString("template")
	outputName, _ := cmd.Flags().GetString("output")
	dataArgs, _ := cmd.Flags().GetStringArray("data")

	result, err := e.orch.Build(cmd.Context(), build.Request{
		TemplatePath: templatePath,
		DataSources:  parseDataSources(dataArgs),
		OutputName:   outputName,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Path)

	return nil
}

// parseDataSources splits "file.json:key" arguments into specs. Only the
// last colon separates the key, so filenames containing colons elsewhere
// still need none.
func parseDataSources(args []string) []datasource.Spec {
	specs := make([]datasource.Spec, 0, len(args))
	for _, arg := range args {
		if idx := strings.LastIndex(arg, ":"); idx >= 0 {
			specs = append(specs, datasource.Spec{Filename: arg[:idx], Key: arg[idx+1:]})
			continue
		}
		specs = append(specs, datasource.Spec{Filename: arg})
	}

	return specs
}
