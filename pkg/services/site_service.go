package services

import (
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"folder-gallery/pkg/config"
	"folder-gallery/pkg/models"
)

// Site walks the source tree and generates its mirrored pages
type Site struct {
	config     *config.Config
	mapper     Mapper
	classifier *Classifier
	renderer   *Renderer
	sink       Sink
	logger     *zap.Logger

	// real paths of the directories on the current recursion path
	ancestors map[string]struct{}
	report    models.Report
}

// NewSite creates a Site that writes through sink
func NewSite(cfg *config.Config, sink Sink, logger *zap.Logger) *Site {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Site{
		config:     cfg,
		mapper:     NewMapper(cfg),
		classifier: NewClassifier(OSFileSystem{}, logger, cfg.DestinationRoot),
		renderer:   NewRenderer(sink),
		sink:       sink,
		logger:     logger,
		ancestors:  make(map[string]struct{}),
	}
}

// Build processes the whole source tree. The root always gets an index page.
func (s *Site) Build() (models.Report, error) {
	s.ancestors = make(map[string]struct{})
	s.report = models.Report{}

	s.logger.Debug("Building site", zap.String("source", s.config.SourceRoot), zap.String("destination", s.config.DestinationRoot))

	root, err := s.Process(s.config.SourceRoot)
	if err != nil {
		return s.report, err
	}
	s.report.Root = root

	s.logger.Debug("Site built", zap.Int("pages", len(s.report.Pages)), zap.Int("skipped", len(s.report.Skipped)))
	return s.report, nil
}

// Process generates the pages for dir and its subdirectories and returns the
// link that represents dir to its parent, or nil when there is nothing to link.
func (s *Site) Process(dir string) (*models.Link, error) {
	dir = filepath.Clean(dir)

	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", dir)
	}
	if !s.enter(resolved) {
		s.logger.Warn("Directory is its own ancestor, skipping symlink cycle", zap.String("path", dir), zap.String("target", resolved))
		return nil, nil
	}
	defer s.leave(resolved)

	directory, err := s.classifier.Classify(dir)
	if err != nil {
		return nil, err
	}

	isRoot := dir == filepath.Clean(s.config.SourceRoot)

	if directory.Empty() {
		s.logger.Info("Nothing in directory", zap.String("path", dir))
		// The root index is the entry point and exists even for an empty tree.
		if !isRoot {
			s.report.Skipped = append(s.report.Skipped, dir)
			return nil, nil
		}
	}

	dest, err := s.mapper.DestinationPath(dir)
	if err != nil {
		return nil, err
	}
	if err := s.sink.EnsureDir(dest); err != nil {
		return nil, err
	}

	var links []models.Link

	if len(directory.Pictures) > 0 {
		link, err := s.renderer.WriteGallery(dest, directory.Pictures)
		if err != nil {
			return nil, err
		}
		s.record(models.Page{Kind: models.PageGallery, Path: link.Target, Pictures: directory.Pictures})
		links = append(links, link)
	}

	// Text files are classified but have no page yet.
	if len(directory.Texts) > 0 {
		s.logger.Debug("Ignoring text files", zap.String("path", dir), zap.Int("count", len(directory.Texts)))
	}

	for _, sub := range directory.Subdirectories {
		link, err := s.Process(sub)
		if err != nil {
			return nil, err
		}
		if link != nil {
			links = append(links, *link)
		}
	}

	if !isRoot {
		switch len(links) {
		case 0:
			return nil, nil
		case 1:
			return &links[0], nil
		}
	}

	link, err := s.renderer.WriteIndex(dest, links)
	if err != nil {
		return nil, err
	}
	s.record(models.Page{Kind: models.PageIndex, Path: link.Target, Links: links})
	return &link, nil
}

// enter reports false when resolved is already being processed higher up the tree
func (s *Site) enter(resolved string) bool {
	if s.ancestors == nil {
		s.ancestors = make(map[string]struct{})
	}
	if _, ok := s.ancestors[resolved]; ok {
		return false
	}
	s.ancestors[resolved] = struct{}{}
	return true
}

func (s *Site) leave(resolved string) {
	delete(s.ancestors, resolved)
}

func (s *Site) record(page models.Page) {
	s.report.Pages = append(s.report.Pages, page)
}
