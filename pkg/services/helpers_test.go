package services

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"folder-gallery/pkg/config"
)

// writeTree creates the given files (relative, slash separated) under root.
// Names ending in "/" create empty directories.
func writeTree(t *testing.T, root string, names ...string) {
	t.Helper()

	for _, name := range names {
		path := filepath.Join(root, filepath.FromSlash(name))
		if name[len(name)-1] == '/' {
			if err := os.MkdirAll(path, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", path, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(name), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
}

func newTestConfig(t *testing.T, root string) *config.Config {
	t.Helper()

	cfg, err := config.New(root, config.DefaultDestinationName, "", false)
	if err != nil {
		t.Fatalf("config.New failed: %v", err)
	}
	return cfg
}

func newTestSite(t *testing.T, root string, sink Sink) (*Site, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	return NewSite(newTestConfig(t, root), sink, zap.New(core)), logs
}

func parseHTML(t *testing.T, data []byte) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func readPage(t *testing.T, path string) *goquery.Document {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read page %s: %v", path, err)
	}
	return parseHTML(t, data)
}

func attrs(doc *goquery.Document, selector, attr string) []string {
	var values []string
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		value, _ := sel.Attr(attr)
		values = append(values, value)
	})
	return values
}

func texts(doc *goquery.Document, selector string) []string {
	var values []string
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		values = append(values, sel.Text())
	})
	return values
}

func assertExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
}

func assertMissing(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be absent, got %v", path, err)
	}
}

func assertStrings(t *testing.T, got, want []string) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("expected %d values %v, got %d %v", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("value %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

// snapshot returns every file below root keyed by its relative path
func snapshot(t *testing.T, root string) map[string][]byte {
	t.Helper()

	files := make(map[string][]byte)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[rel] = data
		return nil
	})
	if err != nil {
		t.Fatalf("snapshot %s: %v", root, err)
	}
	return files
}
