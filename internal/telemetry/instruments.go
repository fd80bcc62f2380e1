package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/AndreJorgeSenaiBA/Repox/internal/tree"
)

const instrumentationName = "github.com/AndreJorgeSenaiBA/Repox"

// Instruments are the spans and metrics recorded around a catalog crawl.
// They come from the global providers, so they are noops until New has
// registered real ones.
type Instruments struct {
	tracer        trace.Tracer
	listings      metric.Int64Counter
	files         metric.Int64Counter
	crawlDuration metric.Float64Histogram
}

// NewInstruments creates the catalog instruments
func NewInstruments() (*Instruments, error) {
	meter := otel.Meter(instrumentationName)

	listings, err := meter.Int64Counter("repox.github.listings",
		metric.WithDescription("Directory listing requests sent to the contents API"))
	if err != nil {
		return nil, err
	}
	files, err := meter.Int64Counter("repox.catalog.files",
		metric.WithDescription("Files returned by catalog crawls, by category"))
	if err != nil {
		return nil, err
	}
	crawlDuration, err := meter.Float64Histogram("repox.crawl.duration",
		metric.WithDescription("Wall time of a full repository crawl"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return &Instruments{
		tracer:        otel.Tracer(instrumentationName),
		listings:      listings,
		files:         files,
		crawlDuration: crawlDuration,
	}, nil
}

// StartCrawl opens the span covering one catalog request
func (i *Instruments) StartCrawl(ctx context.Context, root string) (context.Context, trace.Span) {
	return i.tracer.Start(ctx, "catalog.crawl", trace.WithAttributes(attribute.String("repox.root", root)))
}

// EndCrawl records the outcome of a crawl and closes the span StartCrawl put
// in ctx
func (i *Instruments) EndCrawl(ctx context.Context, elapsed time.Duration, categories map[string]int, err error) {
	span := trace.SpanFromContext(ctx)
	outcome := "ok"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	i.crawlDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attribute.String("outcome", outcome)))

	for category, n := range categories {
		i.files.Add(ctx, int64(n), metric.WithAttributes(attribute.String("category", category)))
	}
	span.End()
}

// TraceLister wraps a lister so every listing gets a span and is counted
func (i *Instruments) TraceLister(next tree.Lister) tree.Lister {
	return &tracedLister{next: next, inst: i}
}

type tracedLister struct {
	next tree.Lister
	inst *Instruments
}

func (l *tracedLister) List(ctx context.Context, path string) ([]tree.Entry, error) {
	ctx, span := l.inst.tracer.Start(ctx, "github.list", trace.WithAttributes(attribute.String("repox.path", path)))
	defer span.End()

	entries, err := l.next.List(ctx, path)

	outcome := "ok"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("repox.entries", len(entries)))
	}
	l.inst.listings.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))

	return entries, err
}
