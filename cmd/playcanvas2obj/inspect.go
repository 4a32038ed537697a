package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/playcanvas2obj/internal/convert"
	"github.com/pdiddy/playcanvas2obj/internal/report"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect INPUT",
	Short: "Validate a model and print a YAML summary",
	Long: `Inspect loads and validates a model exactly as a conversion would, then
prints vertex, normal, and face counts and the bounding box as YAML instead
of writing OBJ.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().Bool("refresh", false, "fetch URLs even when cached")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	refresh, _ := cmd.Flags().GetBool("refresh")

	loader, closeLoader, err := newLoader(cfg, refresh, statusWriter(cmd))
	if err != nil {
		return err
	}
	defer closeLoader()

	doc, err := loader.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	res, err := convert.Inspect(doc)
	if err != nil {
		return err
	}
	return report.Encode(cmd.OutOrStdout(), report.Build(args[0], res.Mesh))
}
