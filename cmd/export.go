package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// newExportCmd creates a new command for exporting the site plan
func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [format]",
		Short: "Export the site plan",
		Long:  `Export the pages a build would generate, with their links and pictures, in the specified format. Currently supported formats: json.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := "json"
			if len(args) > 0 {
				format = args[0]
			}
			if format != "json" {
				return fmt.Errorf("unsupported export format: %s (supported formats: json)", format)
			}

			cfg, err := LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logger := newLogger(cfg)
			defer logger.Sync()

			_, report, err := planSite(cfg, logger)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("error marshaling data: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
