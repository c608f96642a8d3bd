// Package iopopulate implements the Populator interface. It drains
// record sources into the database inside a single transaction.
package iopopulate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/civicdata/legisdb/internal/iometrics"
	legisdb "github.com/civicdata/legisdb/pkg"
	"github.com/civicdata/legisdb/pkg/config"
	"github.com/civicdata/legisdb/pkg/db"
	"github.com/civicdata/legisdb/pkg/record"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// logEvery is the number of records between progress log entries.
const logEvery = 500

// populator implements the Populator interface.
type populator struct {
	cfg      *config.Config
	operator db.Operator
}

// New creates a new Populator.
func New(cfg *config.Config, op db.Operator) legisdb.Populator {
	return &populator{cfg: cfg, operator: op}
}

// item is a record or a skippable source error on its way to the loader.
type item struct {
	rec record.RawRecord
	err error
}

// Populate loads all records of the sources in one transaction.
// Records with source-shape errors are skipped and counted. Any other
// error rolls the whole run back.
func (p *populator) Populate(
	ctx context.Context,
	sources ...record.Source,
) (*legisdb.Summary, error) {
	if p.operator.DB() == nil {
		return nil, NotConnectedError()
	}
	if len(sources) == 0 {
		return nil, NoSourcesError()
	}

	ok, err := p.operator.HasTables(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, EmptyDatabaseError()
	}

	startTime := time.Now()
	sum := &legisdb.Summary{RunID: uuid.NewString()}
	for _, src := range sources {
		sum.Total += src.Len()
	}
	slog.Info("Starting database population",
		"run_id", sum.RunID,
		"sources", len(sources),
		"records", sum.Total,
	)

	sess, err := p.operator.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = sess.Rollback() }()

	bar := pb.Full.Start(sum.Total)
	bar.Set("prefix", "Loading legislators: ")
	bar.Set(pb.CleanOnFinish, true)

	ld := newLoader(sess, sum)
	chIn := make(chan item)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(chIn)
		return drainSources(gctx, sources, chIn)
	})

	g.Go(func() error {
		var count int
		for it := range chIn {
			bar.Increment()
			count++
			if count%logEvery == 0 {
				slog.Info("Loading records",
					"run_id", sum.RunID,
					"records", count,
					"total", sum.Total,
				)
			}
			if it.err != nil {
				ld.skip(it.err)
				continue
			}
			if err := ld.load(gctx, it.rec); err != nil {
				return err
			}
		}
		return nil
	})

	err = g.Wait()
	bar.Finish()
	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return nil, CancelledError(err)
		}
		slog.Error("Population failed, rolling back",
			"run_id", sum.RunID, "error", err)
		return nil, err
	}

	if err = sess.Commit(); err != nil {
		return nil, CommitError(err)
	}
	sum.Duration = time.Since(startTime)

	p.report(sum)
	p.writeMetrics(sum)
	return sum, nil
}

// drainSources sends the records of every source to chIn, one source
// after another.
func drainSources(
	ctx context.Context,
	sources []record.Source,
	chIn chan<- item,
) error {
	for _, src := range sources {
		slog.Info("Reading source", "source", src.Name(), "records", src.Len())
		for {
			rec, err := src.Next(ctx)
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil && !errors.Is(err, record.ErrSourceShape) {
				if errors.Is(err, context.Canceled) {
					return err
				}
				return SourceError(src.Name(), err)
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case chIn <- item{rec: rec, err: err}:
			}
		}
	}
	return nil
}

func (p *populator) report(sum *legisdb.Summary) {
	elapsed := gnfmt.TimeString(sum.Duration.Seconds())
	slog.Info("Population complete",
		"run_id", sum.RunID,
		"total", sum.Total,
		"processed", sum.Processed,
		"skipped", sum.Skipped,
		"legislators_inserted", sum.LegislatorsInserted,
		"legislators_matched", sum.LegislatorsMatched,
		"terms_inserted", sum.TermsInserted,
		"terms_existing", sum.TermsExisting,
		"terms_rejected", sum.TermsRejected,
		"terms_no_context", sum.TermsNoContext,
		"duration", elapsed,
	)

	gn.Info(`Population complete
Records: %s processed, %s skipped.
Legislators: %s new, %s matched.
Terms: %s new, %s existing, %s rejected, %s without context.
Elapsed time: <em>%s</em>`,
		humanize.Comma(int64(sum.Processed)),
		humanize.Comma(int64(sum.Skipped)),
		humanize.Comma(int64(sum.LegislatorsInserted)),
		humanize.Comma(int64(sum.LegislatorsMatched)),
		humanize.Comma(int64(sum.TermsInserted)),
		humanize.Comma(int64(sum.TermsExisting)),
		humanize.Comma(int64(sum.TermsRejected)),
		humanize.Comma(int64(sum.TermsNoContext)),
		elapsed,
	)
}

// writeMetrics exports the summary when a metrics file is configured.
// The data is already committed, so a failure here is only reported.
func (p *populator) writeMetrics(sum *legisdb.Summary) {
	path := p.cfg.Populate.MetricsFile
	if path == "" {
		return
	}
	if err := iometrics.WriteTextfile(path, sum); err != nil {
		slog.Error("Cannot write metrics", "path", path, "error", err)
		gn.Warn("Cannot write metrics to <em>%s</em>", path)
		return
	}
	slog.Info("Metrics written", "path", path)
}
