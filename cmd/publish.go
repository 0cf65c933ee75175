package cmd

import (
	"fmt"

	"cloud.google.com/go/storage"
	"github.com/spf13/cobra"

	"folder-gallery/pkg/services"
)

// newPublishCmd creates a new command for uploading the generated pages to a bucket
func newPublishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Generate the site into a Cloud Storage bucket",
		Long: `Generate gallery and index pages and upload them to the configured Cloud Storage bucket,
under the destination directory name. Pictures are not uploaded; pages keep referencing them by their local path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if err := cfg.RequireBucket(); err != nil {
				return err
			}
			logger := newLogger(cfg)
			defer logger.Sync()

			ctx := cmd.Context()
			client, err := storage.NewClient(ctx)
			if err != nil {
				return fmt.Errorf("failed to create storage client: %w", err)
			}
			defer func() {
				if err := client.Close(); err != nil {
					logger.Sugar().Warnf("error closing storage client: %v", err)
				}
			}()

			sink := services.NewBucketSink(ctx, client.Bucket(cfg.BucketName), services.NewMapper(cfg), cfg.DestinationName)
			report, err := services.NewSite(cfg, sink, logger).Build()
			if err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), report)
			fmt.Fprintf(cmd.OutOrStdout(), "Published to gs://%s/%s\n", cfg.BucketName, cfg.DestinationName)
			return nil
		},
	}
}
