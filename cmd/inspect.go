package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"folder-gallery/pkg/models"
	"folder-gallery/pkg/services"
)

// newInspectCmd creates a new command for showing how one directory is classified
func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [dir]",
		Short: "Show how a directory is classified",
		Long:  `Show the pictures, text files and subdirectories found directly inside a directory, and where its pages would be written. Defaults to the source directory.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logger := newLogger(cfg)
			defer logger.Sync()

			dir := cfg.SourceRoot
			if len(args) > 0 {
				if dir, err = filepath.Abs(args[0]); err != nil {
					return err
				}
			}

			classifier := services.NewClassifier(services.OSFileSystem{}, logger, cfg.DestinationRoot)
			directory, err := classifier.Classify(dir)
			if err != nil {
				return err
			}
			dest, err := services.NewMapper(cfg).DestinationPath(dir)
			if err != nil {
				return err
			}

			showDirectory(cmd.OutOrStdout(), directory, dest)
			return nil
		},
	}
}

// showDirectory displays the classification of a single directory
func showDirectory(out io.Writer, directory models.SourceDirectory, dest string) {
	fmt.Fprintf(out, "Directory: %s\n", directory.Path)
	fmt.Fprintf(out, "Output: %s\n", dest)
	fmt.Fprintln(out, "================")

	section := func(title string, paths []string) {
		fmt.Fprintf(out, "%s: %d\n", title, len(paths))
		for i, path := range paths {
			fmt.Fprintf(out, "%d. %s\n", i+1, filepath.Base(path))
		}
		fmt.Fprintln(out)
	}

	section("Pictures", directory.Pictures)
	section("Texts", directory.Texts)
	section("Subdirectories", directory.Subdirectories)

	if directory.Empty() {
		fmt.Fprintln(out, "Nothing in directory")
	}
}
