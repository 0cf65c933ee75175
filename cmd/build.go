package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"folder-gallery/pkg/models"
	"folder-gallery/pkg/services"
)

// newBuildCmd creates a new command for generating the site on disk
func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Generate the site",
		Long:  `Generate gallery and index pages for the source directory into the destination directory. Existing pages are overwritten.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd)
		},
	}
}

// runBuild generates the site into the destination root
func runBuild(cmd *cobra.Command) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := newLogger(cfg)
	defer logger.Sync()

	cfg.PrintBuildStartMessage(cmd.OutOrStdout())
	site := services.NewSite(cfg, services.NewDiskSink(), logger)
	report, err := site.Build()
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), report)
	return nil
}

// printSummary displays how many pages a build produced
func printSummary(out io.Writer, report models.Report) {
	galleries, indexes := 0, 0
	for _, page := range report.Pages {
		switch page.Kind {
		case models.PageGallery:
			galleries++
		case models.PageIndex:
			indexes++
		}
	}

	fmt.Fprintf(out, "Generated %d pages (%d galleries, %d indexes)\n", len(report.Pages), galleries, indexes)
	if len(report.Skipped) > 0 {
		fmt.Fprintf(out, "Skipped %d empty directories\n", len(report.Skipped))
	}
	if report.Root != nil {
		fmt.Fprintf(out, "Entry point: %s\n", report.Root.Target)
	}
}
