package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/efronlicht/enve"
)

// DefaultDestinationName is the output directory created inside the source root
const DefaultDestinationName = "_site"

// Config holds all configuration for the application
type Config struct {
	SourceRoot      string
	DestinationName string
	DestinationRoot string
	BucketName      string
	Verbose         bool
}

// ErrSourceNotDirectory is returned when the source root does not exist or is not a directory
var ErrSourceNotDirectory = errors.New("source root is not a directory")

// ErrInvalidDestinationName is returned when GALLERY_DEST_NAME is not a single path element
var ErrInvalidDestinationName = errors.New("destination name must be a single path element")

// ErrBucketNameNotSet is returned when the GALLERY_BUCKET environment variable is not set
var ErrBucketNameNotSet = errors.New("GALLERY_BUCKET environment variable not set")

// Load loads configuration from environment variables
func Load() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	return New(
		enve.StringOr("GALLERY_SOURCE", wd),
		enve.StringOr("GALLERY_DEST_NAME", DefaultDestinationName),
		os.Getenv("GALLERY_BUCKET"),
		enve.BoolOr("GALLERY_VERBOSE", false),
	)
}

// New validates the given settings and derives the destination root.
func New(source, destName, bucket string, verbose bool) (*Config, error) {
	abs, err := filepath.Abs(source)
	if err != nil {
		return nil, fmt.Errorf("resolve source root %s: %w", source, err)
	}

	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotDirectory, abs)
	}

	if !validDestinationName(destName) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDestinationName, destName)
	}

	return &Config{
		SourceRoot:      abs,
		DestinationName: destName,
		DestinationRoot: filepath.Join(abs, destName),
		BucketName:      bucket,
		Verbose:         verbose,
	}, nil
}

func validDestinationName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}

// RequireBucket reports whether a bucket is configured for publishing
func (c *Config) RequireBucket() error {
	if c.BucketName == "" {
		return ErrBucketNameNotSet
	}
	return nil
}

// PrintBuildStartMessage prints a message when a build starts
func (c *Config) PrintBuildStartMessage(out io.Writer) {
	fmt.Fprintf(out, "Source: %s\n", c.SourceRoot)
	fmt.Fprintf(out, "Output: %s\n", c.DestinationRoot)
}
