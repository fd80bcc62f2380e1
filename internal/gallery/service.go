package gallery

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/AndreJorgeSenaiBA/Repox/internal/catalog"
	"github.com/AndreJorgeSenaiBA/Repox/internal/telemetry"
	"github.com/AndreJorgeSenaiBA/Repox/internal/tree"
)

// Options tune a Service. The zero value crawls from the repository root
// with no deadline.
type Options struct {
	Root        string
	Timeout     time.Duration
	Now         func() time.Time
	Instruments *telemetry.Instruments
}

// Service produces the gallery catalog. It keeps no state between calls.
type Service struct {
	crawler *tree.Crawler
	table   *catalog.Table
	opts    Options
	log     *slog.Logger
}

// NewService creates a catalog service over lister
func NewService(lister tree.Lister, table *catalog.Table, opts Options, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Instruments != nil {
		lister = opts.Instruments.TraceLister(lister)
	}

	return &Service{
		crawler: tree.NewCrawler(lister, table, log),
		table:   table,
		opts:    opts,
		log:     log,
	}
}

// Catalog crawls the repository and returns its records and their summary.
// Any listing failure fails the whole call with no records.
func (s *Service) Catalog(ctx context.Context) ([]FileRecord, Stats, error) {
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	if s.opts.Instruments != nil {
		ctx, _ = s.opts.Instruments.StartCrawl(ctx, s.opts.Root)
	}

	s.log.Info("fetching repository structure", "root", s.opts.Root)

	files, err := s.crawler.Crawl(ctx, s.opts.Root)
	if err != nil {
		s.endCrawl(ctx, start, nil, err)
		return nil, Stats{}, fmt.Errorf("crawl repository: %w", err)
	}

	records := Build(files, s.table, s.opts.Now())
	stats := Aggregate(records)
	stats.Log(s.log)

	s.endCrawl(ctx, start, stats.CategoryCounts(), nil)
	return records, stats, nil
}

func (s *Service) endCrawl(ctx context.Context, start time.Time, categories map[string]int, err error) {
	if s.opts.Instruments == nil {
		return
	}
	s.opts.Instruments.EndCrawl(ctx, time.Since(start), categories, err)
}
