package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagesmith/pagesmith/internal/build"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Build one page per JSON file in a data folder",
	Long: `Batch applies one template to every JSON file in a folder under the
data root, producing one artifact per file at <output-base>/<name>.

Individual file failures are reported but never abort the remaining
files; the command exits non-zero only when the folder itself cannot be
read.`,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringP("template", "t", "", "template path relative to the template root (required)")
	batchCmd.Flags().StringP("data-folder", "f", "", "folder of JSON files relative to the data root (required)")
	batchCmd.Flags().StringP("output-base", "o", "", "base output path relative to the output root")
	_ = batchCmd.MarkFlagRequired("template")
	_ = batchCmd.MarkFlagRequired("data-folder")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	e, err := newEngine()
	if err != nil {
		return err
	}

	templatePath, _ := cmd.Flags().GetString("template")
	dataFolder, _ := cmd.Flags().GetString("data-folder")
	outputBase, _ := cmd.Flags().GetString("output-base")

	results, err := e.orch.BuildAll(cmd.Context(), build.BatchRequest{
		TemplatePath: templatePath,
		DataFolder:   dataFolder,
		OutputBase:   outputBase,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, item := range results {
		if item.Status == build.StatusSuccess {
			fmt.Fprintf(out, "ok    %s -> %s\n", item.File, item.Path)
		} else {
			fmt.Fprintf(out, "error %s: %s\n", item.File, item.Error)
		}
	}

	return nil
}
