package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"github.com/spf13/cobra"

	"folder-gallery/pkg/services"
)

// newListPublishedCmd creates a new command for listing pages stored in the bucket
func newListPublishedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-published",
		Short: "List published pages",
		Long:  `List the pages stored in the configured Cloud Storage bucket under the destination directory name, with their sizes.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if err := cfg.RequireBucket(); err != nil {
				return err
			}

			// Create a context with timeout
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			client, err := storage.NewClient(ctx)
			if err != nil {
				return fmt.Errorf("failed to create storage client: %w", err)
			}
			defer client.Close()

			objects, err := services.ListPublished(ctx, client.Bucket(cfg.BucketName), cfg.DestinationName)
			if err != nil {
				return err
			}

			listPublished(cmd.OutOrStdout(), cfg.BucketName, objects)
			return nil
		},
	}
}

// listPublished displays the published pages and their total size
func listPublished(out io.Writer, bucket string, objects []services.PublishedObject) {
	fmt.Fprintf(out, "Published pages in gs://%s:\n", bucket)
	fmt.Fprintln(out, "===============")

	var total int64
	for _, obj := range objects {
		fmt.Fprintf(out, "  - %s (%s)\n", obj.Name, formatSize(obj.Size))
		total += obj.Size
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Total: %d pages, %s\n", len(objects), formatSize(total))
}

// formatSize converts bytes to a human-readable format
func formatSize(bytes int64) string {
	const (
		B  int64 = 1
		KB       = B * 1024
		MB       = KB * 1024
		GB       = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
