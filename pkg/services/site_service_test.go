package services

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestProcessEmptyDirectoryReturnsNil(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "empty/")

	site, logs := newTestSite(t, root, NewDiskSink())
	empty := filepath.Join(root, "empty")

	link, err := site.Process(empty)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if link != nil {
		t.Fatalf("expected no link, got %+v", *link)
	}
	assertMissing(t, filepath.Join(root, "_site", "empty"))

	entries := logs.FilterMessage("Nothing in directory").All()
	if len(entries) != 1 {
		t.Fatalf("expected one skip message, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["path"]; got != empty {
		t.Fatalf("expected skip message for %s, got %v", empty, got)
	}
}

func TestProcessSinglePictureCollapsesToGallery(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "trip/a.jpg")

	site, _ := newTestSite(t, root, NewDiskSink())

	link, err := site.Process(filepath.Join(root, "trip"))
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if link == nil {
		t.Fatal("expected a link")
	}

	gallery := filepath.Join(root, "_site", "trip", "trip_pic.html")
	if link.Name != "trip_pic.html" || link.Target != gallery {
		t.Fatalf("unexpected link %+v", *link)
	}
	assertExists(t, gallery)
	assertMissing(t, filepath.Join(root, "_site", "trip", "trip_index.html"))
}

func TestProcessSingleSubdirectoryPassesLinkThrough(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "outer/inner/a.png")

	site, _ := newTestSite(t, root, NewDiskSink())

	link, err := site.Process(filepath.Join(root, "outer"))
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if link == nil {
		t.Fatal("expected a link")
	}

	want := filepath.Join(root, "_site", "outer", "inner", "inner_pic.html")
	if link.Name != "inner_pic.html" || link.Target != want {
		t.Fatalf("expected the inner gallery link, got %+v", *link)
	}
	assertMissing(t, filepath.Join(root, "_site", "outer", "outer_index.html"))
}

func TestBuildIndexesGalleryThenSubdirectories(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"trip/a.jpg",
		"trip/day10/c.png",
		"trip/day2/b.jpg",
		"trip/nothing/",
	)

	site, _ := newTestSite(t, root, NewDiskSink())
	if _, err := site.Build(); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	dest := filepath.Join(root, "_site", "trip")
	doc := readPage(t, filepath.Join(dest, "trip_index.html"))

	assertStrings(t, attrs(doc, "a", "href"), []string{
		FileURL(filepath.Join(dest, "trip_pic.html")),
		FileURL(filepath.Join(dest, "day2", "day2_pic.html")),
		FileURL(filepath.Join(dest, "day10", "day10_pic.html")),
	})

	assertStrings(t, texts(doc, "p > a"), []string{"trip_pic.html", "day2_pic.html", "day10_pic.html"})

	if got := doc.Find("title").Text(); got != "trip_index.html" {
		t.Fatalf("unexpected title %q", got)
	}
	assertMissing(t, filepath.Join(dest, "nothing"))
}

func TestBuildRootAlwaysGetsIndex(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "only/a.jpg")

	site, _ := newTestSite(t, root, NewDiskSink())
	report, err := site.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	index := filepath.Join(root, "_site", "_site_index.html")
	if report.Root == nil || report.Root.Target != index {
		t.Fatalf("expected root link to %s, got %+v", index, report.Root)
	}

	doc := readPage(t, index)
	assertStrings(t, attrs(doc, "a", "href"), []string{
		FileURL(filepath.Join(root, "_site", "only", "only_pic.html")),
	})
}

func TestBuildEmptyRootWritesEmptyIndex(t *testing.T) {
	root := t.TempDir()

	site, logs := newTestSite(t, root, NewDiskSink())
	report, err := site.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	doc := readPage(t, filepath.Join(root, "_site", "_site_index.html"))
	if n := doc.Find("a").Length(); n != 0 {
		t.Fatalf("expected no links, got %d", n)
	}
	if len(report.Pages) != 1 {
		t.Fatalf("expected only the root index, got %+v", report.Pages)
	}
	if logs.FilterMessage("Nothing in directory").Len() != 1 {
		t.Fatal("expected the empty root to be reported")
	}
	if len(report.Skipped) != 0 {
		t.Fatalf("the root produced a page and should not count as skipped, got %v", report.Skipped)
	}
}

func TestBuildCountsSkippedSubdirectories(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.jpg", "empty/")

	site, _ := newTestSite(t, root, NewDiskSink())
	report, err := site.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	assertStrings(t, report.Skipped, []string{filepath.Join(root, "empty")})
}

func TestBuildPicturesAndTextOnlySubdirectory(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.jpg", "b.png", "sub/c.txt")

	site, _ := newTestSite(t, root, NewDiskSink())
	if _, err := site.Build(); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	dest := filepath.Join(root, "_site")
	gallery := readPage(t, filepath.Join(dest, "_site_pic.html"))
	assertStrings(t, attrs(gallery, "img", "src"), []string{
		FileURL(filepath.Join(root, "a.jpg")),
		FileURL(filepath.Join(root, "b.png")),
	})

	index := readPage(t, filepath.Join(dest, "_site_index.html"))
	assertStrings(t, attrs(index, "a", "href"), []string{
		FileURL(filepath.Join(dest, "_site_pic.html")),
	})

	// The text-only directory is mirrored but contributes no page.
	assertExists(t, filepath.Join(dest, "sub"))
	assertMissing(t, filepath.Join(dest, "sub", "sub_index.html"))
}

func TestBuildIsIdempotent(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"a.jpg",
		"album/1.jpg",
		"album/2.png",
		"album/more/3.jpg",
		"notes/n.txt",
		"other/x.png",
	)

	site, _ := newTestSite(t, root, NewDiskSink())
	if _, err := site.Build(); err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	first := snapshot(t, filepath.Join(root, "_site"))

	if _, err := site.Build(); err != nil {
		t.Fatalf("second Build failed: %v", err)
	}
	second := snapshot(t, filepath.Join(root, "_site"))

	if len(first) != len(second) {
		t.Fatalf("expected %d files after second build, got %d", len(first), len(second))
	}
	for name, data := range first {
		if !bytes.Equal(data, second[name]) {
			t.Fatalf("file %s changed between builds", name)
		}
	}
}

func TestBuildDoesNotIndexOwnOutput(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.jpg", "_site/stale/old.jpg")

	site, _ := newTestSite(t, root, NewDiskSink())
	report, err := site.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for _, page := range report.Pages {
		if filepath.Dir(page.Path) != filepath.Join(root, "_site") {
			t.Fatalf("unexpected page outside the root output: %s", page.Path)
		}
	}
	assertMissing(t, filepath.Join(root, "_site", "_site"))
}

func TestBuildStopsAtSymlinkCycle(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.jpg", "sub/b.jpg")
	if err := os.Symlink(root, filepath.Join(root, "sub", "loop")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	site, logs := newTestSite(t, root, NewDiskSink())
	if _, err := site.Build(); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if logs.FilterMessage("Directory is its own ancestor, skipping symlink cycle").Len() != 1 {
		t.Fatal("expected the cycle to be reported once")
	}
	assertExists(t, filepath.Join(root, "_site", "sub", "sub_pic.html"))
	assertMissing(t, filepath.Join(root, "_site", "sub", "loop"))
}

func TestBuildFollowsSymlinkToSibling(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "b/x.jpg", "c/y.jpg")
	if err := os.Symlink(filepath.Join(root, "b"), filepath.Join(root, "a")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	site, logs := newTestSite(t, root, NewDiskSink())
	if _, err := site.Build(); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	dest := filepath.Join(root, "_site")
	assertExists(t, filepath.Join(dest, "a", "a_pic.html"))
	assertExists(t, filepath.Join(dest, "b", "b_pic.html"))
	assertExists(t, filepath.Join(dest, "c", "c_pic.html"))
	if n := logs.FilterMessage("Directory is its own ancestor, skipping symlink cycle").Len(); n != 0 {
		t.Fatalf("expected no cycle warnings, got %d", n)
	}

	index := readPage(t, filepath.Join(dest, "_site_index.html"))
	assertStrings(t, texts(index, "p > a"), []string{"a_pic.html", "b_pic.html", "c_pic.html"})
}

func TestProcessNonRootWithTwoSubdirectoriesWritesIndex(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "trip/x/a.jpg", "trip/y/b.jpg")

	site, _ := newTestSite(t, root, NewDiskSink())
	link, err := site.Process(filepath.Join(root, "trip"))
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	dest := filepath.Join(root, "_site", "trip")
	index := filepath.Join(dest, "trip_index.html")
	if link == nil || link.Name != "trip_index.html" || link.Target != index {
		t.Fatalf("expected a link to %s, got %+v", index, link)
	}
	assertMissing(t, filepath.Join(dest, "trip_pic.html"))

	doc := readPage(t, index)
	assertStrings(t, attrs(doc, "p > a", "href"), []string{
		FileURL(filepath.Join(dest, "x", "x_pic.html")),
		FileURL(filepath.Join(dest, "y", "y_pic.html")),
	})
	assertStrings(t, texts(doc, "p > a"), []string{"x_pic.html", "y_pic.html"})
}

func TestProcessMissingDirectoryFails(t *testing.T) {
	root := t.TempDir()

	site, _ := newTestSite(t, root, NewDiskSink())
	if _, err := site.Process(filepath.Join(root, "missing")); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}

func TestBuildWithPlanSinkLeavesDiskUntouched(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.jpg", "x/b.jpg", "y/c.jpg")

	plan := NewPlanSink()
	site, _ := newTestSite(t, root, plan)
	report, err := site.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	assertMissing(t, filepath.Join(root, "_site"))

	dest := filepath.Join(root, "_site")
	assertStrings(t, plan.Files(), []string{
		filepath.Join(dest, "_site_index.html"),
		filepath.Join(dest, "_site_pic.html"),
		filepath.Join(dest, "x", "x_pic.html"),
		filepath.Join(dest, "y", "y_pic.html"),
	})
	if len(report.Pages) != 4 {
		t.Fatalf("expected 4 pages, got %d", len(report.Pages))
	}

	data, ok := plan.File(filepath.Join(dest, "_site_index.html"))
	if !ok {
		t.Fatal("root index was not recorded")
	}
	if n := parseHTML(t, data).Find("a").Length(); n != 3 {
		t.Fatalf("expected 3 root links, got %d", n)
	}
}
