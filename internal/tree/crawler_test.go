package tree_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndreJorgeSenaiBA/Repox/internal/catalog"
	"github.com/AndreJorgeSenaiBA/Repox/internal/github"
	"github.com/AndreJorgeSenaiBA/Repox/internal/tree"
)

func file(path string) tree.File {
	name := path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			name = path[i+1:]
			break
		}
	}
	return tree.File{Name: name, Path: path, Size: 1, SHA: "sha-" + path}
}

func dir(path string) tree.Dir {
	return tree.Dir{Name: path, Path: path}
}

func paths(files []tree.File) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

func TestCrawl_FlatAndNested(t *testing.T) {
	lister := github.NewInMem()
	lister.SetDir("", dir("dirA"), file("file1.png"))
	lister.SetDir("dirA", file("dirA/file2.txt"))

	crawler := tree.NewCrawler(lister, catalog.DefaultTable(), nil)
	files, err := crawler.Crawl(context.Background(), "")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"file1.png", "dirA/file2.txt"}, paths(files))
	assert.Equal(t, []string{"", "dirA"}, lister.Calls())
}

func TestCrawl_DepthFirstContiguity(t *testing.T) {
	lister := github.NewInMem()
	lister.SetDir("",
		file("top.md"),
		dir("alice"),
		file("middle.png"),
		dir("bob"),
		file("last.csv"),
	)
	lister.SetDir("alice", file("alice/a1.mp4"), dir("alice/deep"), file("alice/a2.jpg"))
	lister.SetDir("alice/deep", file("alice/deep/d1.go"), dir("alice/deep/deeper"))
	lister.SetDir("alice/deep/deeper", file("alice/deep/deeper/x.py"))
	lister.SetDir("bob", file("bob/b1.pdf"))

	crawler := tree.NewCrawler(lister, catalog.DefaultTable(), nil)
	files, err := crawler.Crawl(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"top.md",
		"alice/a1.mp4",
		"alice/deep/d1.go",
		"alice/deep/deeper/x.py",
		"alice/a2.jpg",
		"middle.png",
		"bob/b1.pdf",
		"last.csv",
	}, paths(files))
	assert.Equal(t, []string{"", "alice", "alice/deep", "alice/deep/deeper", "bob"}, lister.Calls())
}

func TestCrawl_FiltersFilesButNotDirectories(t *testing.T) {
	lister := github.NewInMem()
	lister.SetDir("",
		file("archive.zip"),
		file("LICENSE"),
		file("Makefile"),
		dir("node_modules.zip"),
	)
	lister.SetDir("node_modules.zip", file("node_modules.zip/README"), file("node_modules.zip/blob.bin"))

	crawler := tree.NewCrawler(lister, catalog.DefaultTable(), nil)
	files, err := crawler.Crawl(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"LICENSE", "Makefile", "node_modules.zip/README"}, paths(files))
}

func TestCrawl_EmptyTree(t *testing.T) {
	lister := github.NewInMem()

	crawler := tree.NewCrawler(lister, catalog.DefaultTable(), nil)
	files, err := crawler.Crawl(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestCrawl_CustomRoot(t *testing.T) {
	lister := github.NewInMem()
	lister.SetDir("gallery", file("gallery/a.png"))

	crawler := tree.NewCrawler(lister, catalog.DefaultTable(), nil)
	files, err := crawler.Crawl(context.Background(), "gallery")
	require.NoError(t, err)
	assert.Equal(t, []string{"gallery/a.png"}, paths(files))
}

func TestCrawl_FailFast(t *testing.T) {
	lister := github.NewInMem()
	lister.SetDir("", file("a.png"), dir("broken"), dir("never"))
	lister.SetDir("never", file("never/b.png"))
	lister.FailWith("broken", &tree.RemoteListingError{Path: "broken", StatusCode: 500, Status: "Internal Server Error"})

	crawler := tree.NewCrawler(lister, catalog.DefaultTable(), nil)
	files, err := crawler.Crawl(context.Background(), "")

	require.Error(t, err)
	assert.Nil(t, files)

	var listingErr *tree.RemoteListingError
	require.True(t, errors.As(err, &listingErr))
	assert.Equal(t, 500, listingErr.StatusCode)
	assert.Equal(t, []string{"", "broken"}, lister.Calls())
}

func TestCrawl_DeepFailureAbortsWholeCrawl(t *testing.T) {
	lister := github.NewInMem()
	lister.SetDir("", dir("a"), file("root.png"))
	lister.SetDir("a", dir("a/b"), file("a/one.png"))
	lister.SetDir("a/b", dir("a/b/c"))
	lister.FailWith("a/b/c", &tree.UnexpectedShapeError{Path: "a/b/c"})

	crawler := tree.NewCrawler(lister, catalog.DefaultTable(), nil)
	files, err := crawler.Crawl(context.Background(), "")

	assert.Nil(t, files)
	var shapeErr *tree.UnexpectedShapeError
	assert.True(t, errors.As(err, &shapeErr))
}

func TestCrawl_RootFailure(t *testing.T) {
	lister := github.NewInMem()
	lister.FailWith("", errors.New("connection refused"))

	crawler := tree.NewCrawler(lister, catalog.DefaultTable(), nil)
	_, err := crawler.Crawl(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestErrorMessages(t *testing.T) {
	listingErr := &tree.RemoteListingError{Path: "x", StatusCode: 404, Status: "Not Found"}
	assert.Equal(t, "GitHub error (404): Not Found", listingErr.Error())

	inner := errors.New("bad json")
	shapeErr := &tree.UnexpectedShapeError{Path: "x", Err: inner}
	assert.Contains(t, shapeErr.Error(), `"x"`)
	assert.ErrorIs(t, shapeErr, inner)
}
