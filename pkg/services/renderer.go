package services

import (
	"bytes"
	"embed"
	"html/template"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/eknkc/pug"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"

	"folder-gallery/pkg/models"
)

const (
	gallerySuffix = "_pic.html"
	indexSuffix   = "_index.html"
	textSuffix    = "_txt.html"
)

//go:embed views/*.pug
var views embed.FS

// ErrTextNotSupported is returned when a text file is asked to render
var ErrTextNotSupported = errors.New("text pages are not supported yet")

// Artifact is something the renderer can turn into a page
type Artifact interface {
	Kind() models.PageKind
	Suffix() string
	Render(r *Renderer, title string) ([]byte, error)
}

// GalleryArtifact shows every picture of a directory on one page
type GalleryArtifact struct {
	Pictures []string
}

func (GalleryArtifact) Kind() models.PageKind { return models.PageGallery }
func (GalleryArtifact) Suffix() string        { return gallerySuffix }

func (a GalleryArtifact) Render(r *Renderer, title string) ([]byte, error) {
	return r.RenderGallery(title, a.Pictures)
}

// IndexArtifact links the pages collected for a directory
type IndexArtifact struct {
	Links []models.Link
}

func (IndexArtifact) Kind() models.PageKind { return models.PageIndex }
func (IndexArtifact) Suffix() string        { return indexSuffix }

func (a IndexArtifact) Render(r *Renderer, title string) ([]byte, error) {
	return r.RenderIndex(title, a.Links)
}

// TextArtifact would render a single text file
type TextArtifact struct {
	Path string
}

func (TextArtifact) Kind() models.PageKind { return models.PageText }
func (TextArtifact) Suffix() string        { return textSuffix }

func (a TextArtifact) Render(r *Renderer, title string) ([]byte, error) {
	return r.RenderText(title, a.Path)
}

type galleryView struct {
	Title    string
	Pictures []template.URL
}

type indexEntry struct {
	Name string
	Href template.URL
}

type indexView struct {
	Title string
	Links []indexEntry
}

// Renderer turns artifacts into HTML and writes them through a Sink
type Renderer struct {
	sink      Sink
	templates *cache.Cache
}

// NewRenderer creates a Renderer writing to sink
func NewRenderer(sink Sink) *Renderer {
	return &Renderer{
		sink:      sink,
		templates: cache.New(cache.NoExpiration, 0),
	}
}

// FileURL returns a file:/// reference to an absolute local path
func FileURL(path string) string {
	slashed := filepath.ToSlash(path)
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed
	}
	u := url.URL{Scheme: "file", Path: slashed}
	return u.String()
}

// RenderGallery embeds one image per picture, in the given order
func (r *Renderer) RenderGallery(title string, pictures []string) ([]byte, error) {
	view := galleryView{Title: title, Pictures: make([]template.URL, 0, len(pictures))}
	for _, picture := range pictures {
		view.Pictures = append(view.Pictures, template.URL(FileURL(picture)))
	}
	return r.execute("gallery", view)
}

// RenderIndex emits one hyperlink per link, in the given order
func (r *Renderer) RenderIndex(title string, links []models.Link) ([]byte, error) {
	view := indexView{Title: title, Links: make([]indexEntry, 0, len(links))}
	for _, link := range links {
		view.Links = append(view.Links, indexEntry{Name: link.Name, Href: template.URL(FileURL(link.Target))})
	}
	return r.execute("index", view)
}

// RenderText is a placeholder for text file pages
func (r *Renderer) RenderText(title, path string) ([]byte, error) {
	return nil, errors.Wrapf(ErrTextNotSupported, "render %s", path)
}

// Write renders the artifact into destDir and returns a link to the new page.
// The page is named after destDir and overwrites any previous version.
func (r *Renderer) Write(destDir string, artifact Artifact) (models.Link, error) {
	filename := filepath.Base(destDir) + artifact.Suffix()
	target := filepath.Join(destDir, filename)

	html, err := artifact.Render(r, filename)
	if err != nil {
		return models.Link{}, err
	}
	if err := r.sink.WriteFile(target, html); err != nil {
		return models.Link{}, errors.Wrapf(err, "write %s", target)
	}
	return models.Link{Name: filename, Target: target}, nil
}

// WriteGallery writes <dir>_pic.html into destDir
func (r *Renderer) WriteGallery(destDir string, pictures []string) (models.Link, error) {
	return r.Write(destDir, GalleryArtifact{Pictures: pictures})
}

// WriteIndex writes <dir>_index.html into destDir
func (r *Renderer) WriteIndex(destDir string, links []models.Link) (models.Link, error) {
	return r.Write(destDir, IndexArtifact{Links: links})
}

func (r *Renderer) execute(name string, data any) ([]byte, error) {
	tmpl, err := r.template(name)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrapf(err, "execute %s template", name)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) template(name string) (*template.Template, error) {
	if cached, found := r.templates.Get(name); found {
		return cached.(*template.Template), nil
	}

	source, err := views.ReadFile("views/" + name + ".pug")
	if err != nil {
		return nil, errors.Wrapf(err, "read %s template", name)
	}
	tmpl, err := pug.CompileString(string(source), pug.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "compile %s template", name)
	}

	r.templates.Set(name, tmpl, cache.NoExpiration)
	return tmpl, nil
}
