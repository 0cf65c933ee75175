package cmd

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"folder-gallery/pkg/config"
)

// Configuration flags
var (
	sourceDir  string
	destName   string
	bucketName string
	verbose    bool
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "folder-gallery",
		Short: "Folder Gallery turns a directory of pictures into browsable HTML pages",
		Long: `Folder Gallery walks a directory tree and writes a mirrored tree of static HTML pages
into _site: one gallery page per directory with pictures, and index pages linking them together.
Run without a command to build the site for the current directory.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd)
		},
	}

	// Define persistent flags that will be available for all commands
	rootCmd.PersistentFlags().StringVarP(&sourceDir, "source", "s", "", "Set the GALLERY_SOURCE directory (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&destName, "dest-name", "d", "", "Set the GALLERY_DEST_NAME output directory (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&bucketName, "bucket", "b", "", "Set the GALLERY_BUCKET used for publishing (overrides environment variable)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// Add commands to root
	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newPlanCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newPublishCmd())
	rootCmd.AddCommand(newListPublishedCmd())

	return rootCmd
}

// LoadConfig loads configuration with respect to command line flags
func LoadConfig() (*config.Config, error) {
	// Set environment variables from flags if provided
	if sourceDir != "" {
		os.Setenv("GALLERY_SOURCE", sourceDir)
	}

	if destName != "" {
		os.Setenv("GALLERY_DEST_NAME", destName)
	}

	if bucketName != "" {
		os.Setenv("GALLERY_BUCKET", bucketName)
	}

	if verbose {
		os.Setenv("GALLERY_VERBOSE", strconv.FormatBool(verbose))
	}

	// Load configuration from environment variables (potentially set above)
	return config.Load()
}

// newLogger builds the console logger used by every command
func newLogger(cfg *config.Config) *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.RFC3339TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.EncodeDuration = zapcore.StringDurationEncoder

	level := zapcore.InfoLevel
	if cfg.Verbose {
		level = zapcore.DebugLevel
	}

	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(os.Stderr),
		level,
	))
}
