package services

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"folder-gallery/pkg/config"
)

// ErrOutsideSource is returned when a path does not live under the source root
var ErrOutsideSource = errors.New("path is outside the source root")

// Mapper rebases source paths under the destination root
type Mapper struct {
	sourceRoot      string
	destinationRoot string
}

// NewMapper creates a Mapper for the configured roots
func NewMapper(cfg *config.Config) Mapper {
	return Mapper{
		sourceRoot:      cfg.SourceRoot,
		destinationRoot: cfg.DestinationRoot,
	}
}

// DestinationPath returns where the output for sourcePath lives.
// For example /photos/trip maps to /photos/_site/trip.
func (m Mapper) DestinationPath(sourcePath string) (string, error) {
	rel, err := relativeInside(m.sourceRoot, sourcePath)
	if err != nil {
		return "", err
	}
	return filepath.Join(m.destinationRoot, rel), nil
}

// RelativePath returns destPath relative to the destination root
func (m Mapper) RelativePath(destPath string) (string, error) {
	return relativeInside(m.destinationRoot, destPath)
}

func relativeInside(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", errors.Wrapf(err, "relative path of %s", path)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Wrapf(ErrOutsideSource, "%s is not under %s", path, root)
	}
	return rel, nil
}
