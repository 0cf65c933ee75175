package services

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"folder-gallery/pkg/models"
)

// Allowed Extensions
var (
	pictureExtensions = []string{".jpg", ".png"}
	textExtensions    = []string{".txt"}
)

// FileSystem abstracts the directory reads the classifier needs
type FileSystem interface {
	ReadDir(name string) ([]fs.DirEntry, error)
	Stat(name string) (fs.FileInfo, error)
}

// OSFileSystem implements FileSystem using the local OS filesystem.
type OSFileSystem struct{}

func (OSFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

func (OSFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// Classifier sorts the direct children of a directory into pictures, texts and subdirectories
type Classifier struct {
	fs      FileSystem
	exclude map[string]struct{}
	logger  *zap.Logger
}

// NewClassifier creates a Classifier. Directories listed in exclude are never
// reported as subdirectories.
func NewClassifier(filesystem FileSystem, logger *zap.Logger, exclude ...string) *Classifier {
	if filesystem == nil {
		filesystem = OSFileSystem{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	excludeSet := make(map[string]struct{}, len(exclude))
	for _, dir := range exclude {
		excludeSet[filepath.Clean(dir)] = struct{}{}
	}

	return &Classifier{
		fs:      filesystem,
		exclude: excludeSet,
		logger:  logger,
	}
}

// Classify lists dir once, without descending into subdirectories
func (c *Classifier) Classify(dir string) (models.SourceDirectory, error) {
	result := models.SourceDirectory{Path: dir}

	entries, err := c.fs.ReadDir(dir)
	if err != nil {
		return result, errors.Wrapf(err, "read directory %s", dir)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		mode := entry.Type()
		if mode&fs.ModeSymlink != 0 {
			info, err := c.fs.Stat(path)
			if err != nil {
				c.logger.Debug("Skipping unresolvable symlink", zap.String("path", path), zap.Error(err))
				continue
			}
			mode = info.Mode().Type()
		}

		switch {
		case mode.IsDir():
			if _, skip := c.exclude[filepath.Clean(path)]; skip {
				continue
			}
			result.Subdirectories = append(result.Subdirectories, path)
		case mode.IsRegular():
			ext := filepath.Ext(entry.Name())
			if hasExtension(ext, pictureExtensions) {
				result.Pictures = append(result.Pictures, path)
			} else if hasExtension(ext, textExtensions) {
				result.Texts = append(result.Texts, path)
			}
		}
	}

	sortByName(result.Pictures)
	sortByName(result.Texts)
	sortByName(result.Subdirectories)

	return result, nil
}

// hasExtension matches case-sensitively, so photo.JPG is not a picture
func hasExtension(ext string, allowed []string) bool {
	for _, candidate := range allowed {
		if ext == candidate {
			return true
		}
	}
	return false
}
