package services

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

// Sink receives the directories and pages a build produces
type Sink interface {
	// EnsureDir creates path and any missing parents; it is a no-op when path exists.
	EnsureDir(path string) error
	// WriteFile replaces the file at path with data.
	WriteFile(path string, data []byte) error
}

// DiskSink writes pages to the local filesystem
type DiskSink struct {
	DirPerm  os.FileMode
	FilePerm os.FileMode
}

// NewDiskSink creates a DiskSink with 0755 directories and 0644 files
func NewDiskSink() DiskSink {
	return DiskSink{DirPerm: 0o755, FilePerm: 0o644}
}

func (s DiskSink) EnsureDir(path string) error {
	info, err := os.Lstat(path)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return errors.Errorf("cannot create directory %s: a file is in the way", path)
	case os.IsNotExist(err):
		if err := os.MkdirAll(path, s.DirPerm); err != nil {
			return errors.Wrapf(err, "mkdir %s", path)
		}
		return nil
	default:
		return errors.Wrapf(err, "stat %s", path)
	}
}

func (s DiskSink) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, s.FilePerm)
}

// PlanSink records what a build would write without touching the filesystem.
// It is not safe for concurrent use.
type PlanSink struct {
	dirs  map[string]struct{}
	files map[string][]byte
}

// NewPlanSink creates an empty PlanSink
func NewPlanSink() *PlanSink {
	return &PlanSink{
		dirs:  make(map[string]struct{}),
		files: make(map[string][]byte),
	}
}

func (s *PlanSink) EnsureDir(path string) error {
	s.dirs[filepath.Clean(path)] = struct{}{}
	return nil
}

func (s *PlanSink) WriteFile(path string, data []byte) error {
	path = filepath.Clean(path)

	if _, ok := s.dirs[filepath.Dir(path)]; !ok {
		return errors.Errorf("write %s: directory was never ensured", path)
	}
	s.files[path] = append([]byte(nil), data...)
	return nil
}

// Dirs returns the ensured directories in sorted order
func (s *PlanSink) Dirs() []string {
	dirs := make([]string, 0, len(s.dirs))
	for dir := range s.dirs {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

// Files returns the written file paths in sorted order
func (s *PlanSink) Files() []string {
	files := make([]string, 0, len(s.files))
	for file := range s.files {
		files = append(files, file)
	}
	sort.Strings(files)
	return files
}

// File returns the content recorded for path
func (s *PlanSink) File(path string) ([]byte, bool) {
	data, ok := s.files[filepath.Clean(path)]
	return data, ok
}
