package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"
	"go.uber.org/zap"

	"folder-gallery/pkg/config"
	"folder-gallery/pkg/models"
	"folder-gallery/pkg/services"
)

// newPlanCmd creates a new command for previewing the generated pages
func newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show the pages a build would generate",
		Long:  `Walk the source directory without writing anything and print the pages a build would generate as a tree.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logger := newLogger(cfg)
			defer logger.Sync()

			plan, report, err := planSite(cfg, logger)
			if err != nil {
				return err
			}

			tree, err := planTree(cfg, plan, report)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), tree.String())
			printSummary(cmd.OutOrStdout(), report)
			return nil
		},
	}
}

// planSite runs a build that only records its output
func planSite(cfg *config.Config, logger *zap.Logger) (*services.PlanSink, models.Report, error) {
	plan := services.NewPlanSink()
	report, err := services.NewSite(cfg, plan, logger).Build()
	return plan, report, err
}

// planTree lays out the recorded directories and pages under the destination root
func planTree(cfg *config.Config, plan *services.PlanSink, report models.Report) (treeprint.Tree, error) {
	mapper := services.NewMapper(cfg)
	tree := treeprint.NewWithRoot(cfg.DestinationName)
	branches := map[string]treeprint.Tree{".": tree}

	// Dirs are sorted, so a parent is always added before its children.
	for _, dir := range plan.Dirs() {
		rel, err := mapper.RelativePath(dir)
		if err != nil {
			return nil, err
		}
		if rel == "." {
			continue
		}
		parent, ok := branches[filepath.Dir(rel)]
		if !ok {
			parent = tree
		}
		branches[rel] = parent.AddBranch(filepath.Base(rel))
	}

	pages := make(map[string]models.Page, len(report.Pages))
	for _, page := range report.Pages {
		pages[page.Path] = page
	}

	for _, file := range plan.Files() {
		rel, err := mapper.RelativePath(file)
		if err != nil {
			return nil, err
		}
		branch, ok := branches[filepath.Dir(rel)]
		if !ok {
			branch = tree
		}
		branch.AddNode(describePage(filepath.Base(rel), pages[file]))
	}

	return tree, nil
}

func describePage(name string, page models.Page) string {
	switch page.Kind {
	case models.PageGallery:
		return fmt.Sprintf("%s (pictures: %d)", name, len(page.Pictures))
	case models.PageIndex:
		return fmt.Sprintf("%s (links: %d)", name, len(page.Links))
	default:
		return name
	}
}
