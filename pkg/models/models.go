package models

// Link points at a generated page
type Link struct {
	Name   string `json:"name"`
	Target string `json:"target"`
}

// SourceDirectory holds the direct children of a source directory, grouped by kind
type SourceDirectory struct {
	Path           string   `json:"path"`
	Pictures       []string `json:"pictures"`
	Texts          []string `json:"texts"`
	Subdirectories []string `json:"subdirectories"`
}

// Empty reports whether the directory has nothing to process
func (d SourceDirectory) Empty() bool {
	return len(d.Pictures) == 0 && len(d.Texts) == 0 && len(d.Subdirectories) == 0
}

// PageKind identifies what a generated page shows
type PageKind string

const (
	PageGallery PageKind = "gallery"
	PageIndex   PageKind = "index"
	PageText    PageKind = "text"
)

// Page represents a generated HTML page
type Page struct {
	Kind     PageKind `json:"kind"`
	Path     string   `json:"path"`
	Pictures []string `json:"pictures,omitempty"`
	Links    []Link   `json:"links,omitempty"`
}

// Report summarizes a site build
type Report struct {
	Root    *Link    `json:"root,omitempty"`
	Pages   []Page   `json:"pages"`
	Skipped []string `json:"skipped"`
}
