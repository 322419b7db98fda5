package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/couchcryptid/tidytable/internal/observability"
	"github.com/couchcryptid/tidytable/internal/rules"
	"github.com/couchcryptid/tidytable/internal/table"
)

// Source produces the initial raw table (see package source).
type Source interface {
	Extract(ctx context.Context) (*table.Table, error)
	Describe() string
}

// Sink persists the final tidy table (see package sink).
type Sink interface {
	Load(ctx context.Context, t *table.Table) error
	Describe() string
}

// Pipeline runs one source through an ordered rule list and optionally into
// a sink. Each stage owns the table exclusively until it returns the next
// one; a run is a single linear traversal with no retained state, so runs
// are independent and idempotent given the same input.
type Pipeline struct {
	name    string
	source  Source
	rules   []rules.Rule
	sink    Sink
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Pipeline. Pass a nil sink to only return the tidy table to
// the caller (the downstream reporting path).
func New(name string, src Source, ruleList []rules.Rule, snk Sink, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		name:    name,
		source:  src,
		rules:   ruleList,
		sink:    snk,
		logger:  logger,
		metrics: metrics,
	}
}

// Run executes extract, transform, and load once, returning the tidy table.
// SourceError, SchemaError, and SinkError abort immediately; with an atomic
// sink no partial output file survives a failed run.
func (p *Pipeline) Run(ctx context.Context) (*table.Table, error) {
	logger := p.logger.With("pipeline", p.name, "run_id", uuid.NewString())
	start := clock.Now()

	logger.Info("run started", "source", p.source.Describe(), "rules", len(p.rules))

	tbl, err := p.source.Extract(ctx)
	if err != nil {
		return nil, p.fail(logger, fmt.Errorf("extract: %w", err))
	}
	p.metrics.RowsExtracted.Add(float64(tbl.NumRows()))
	logger.Debug("extracted", "rows", tbl.NumRows(), "columns", tbl.NumCols())

	for i, r := range p.rules {
		next, err := r.Apply(tbl)
		if err != nil {
			return nil, p.fail(logger, fmt.Errorf("step %d (%s): %w", i+1, r.Name(), err))
		}
		p.metrics.RuleApplications.WithLabelValues(r.Name()).Inc()
		logger.Debug("rule applied",
			"step", i+1,
			"rule", r.Name(),
			"rows_in", tbl.NumRows(),
			"rows_out", next.NumRows(),
		)
		tbl = next
	}

	if p.sink != nil {
		if err := p.sink.Load(ctx, tbl); err != nil {
			return nil, p.fail(logger, fmt.Errorf("load: %w", err))
		}
		p.metrics.RowsLoaded.Add(float64(tbl.NumRows()))
		logger.Info("loaded", "sink", p.sink.Describe(), "rows", tbl.NumRows())
	}

	p.metrics.RunDuration.Observe(clock.Since(start).Seconds())
	p.metrics.PipelineRuns.WithLabelValues("success").Inc()
	logger.Info("run complete", "rows", tbl.NumRows(), "duration", clock.Since(start))
	return tbl, nil
}

func (p *Pipeline) fail(logger *slog.Logger, err error) error {
	p.metrics.PipelineRuns.WithLabelValues("error").Inc()
	logger.Error("run failed", "error", err)
	return err
}

// ConversionReporter returns a coercion failure callback that logs each
// recovered cell and counts it, for wiring into rules.CoerceType.
func ConversionReporter(logger *slog.Logger, metrics *observability.Metrics) rules.FailureFunc {
	return func(column string, row int, raw string) {
		metrics.ConversionErrors.Inc()
		logger.Warn("cell coercion failed, recorded as missing",
			"column", column,
			"row", row,
			"value", raw,
		)
	}
}
