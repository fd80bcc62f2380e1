package tree

import (
	"context"
	"fmt"
	"log/slog"
)

// Crawler walks a repository tree one directory listing at a time
type Crawler struct {
	lister   Lister
	acceptor Acceptor
	log      *slog.Logger
}

// NewCrawler creates a crawler. A nil logger discards output.
func NewCrawler(lister Lister, acceptor Acceptor, log *slog.Logger) *Crawler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Crawler{
		lister:   lister,
		acceptor: acceptor,
		log:      log,
	}
}

// frame is a listed directory whose entries are partly consumed
type frame struct {
	entries []Entry
	next    int
}

// Crawl returns every accepted file below root, depth-first.
//
// Entries are visited in listing order. A subdirectory is listed as soon as it
// is reached and its frame goes on top of the stack, so all of its files come
// out before the next sibling of that subdirectory. The first listing error
// aborts the crawl.
func (c *Crawler) Crawl(ctx context.Context, root string) ([]File, error) {
	entries, err := c.lister.List(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", root, err)
	}

	var files []File
	stack := []*frame{{entries: entries}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next >= len(top.entries) {
			stack = stack[:len(stack)-1]
			continue
		}

		entry := top.entries[top.next]
		top.next++

		switch e := entry.(type) {
		case File:
			if c.acceptor.Accepts(e.Name) {
				files = append(files, e)
			}
		case Dir:
			c.log.Debug("exploring directory", "path", e.Path)

			children, err := c.lister.List(ctx, e.Path)
			if err != nil {
				return nil, fmt.Errorf("list %q: %w", e.Path, err)
			}
			stack = append(stack, &frame{entries: children})
		}
	}

	c.log.Info("crawl finished", "root", root, "files", len(files))
	return files, nil
}
