// Package apply connects stylesheet retrieval, cursor generation and output
// sinks into complete runs.
package apply

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"curgen/common"
	"curgen/cursor"
	"curgen/output"
	"curgen/source"
)

const (
	// DefaultApplyDelay lets page styles settle before processing all
	// elements.
	DefaultApplyDelay = 200 * time.Millisecond
	// DefaultSelectDelay keeps selector runs from overlapping with all
	// elements run started at the same time.
	DefaultSelectDelay = time.Second
)

// Params of a single run. Zero Delay selects default, negative disables
// waiting.
type Params struct {
	Source    string
	Selectors string
	Size      common.SizeTier
	Color     string
	Delay     time.Duration
	Catalog   *cursor.Catalog
	Semantic  bool
}

// Outcome describes successful run.
type Outcome struct {
	ID       uuid.UUID
	Location source.Location
	CSS      []byte
	Result   *cursor.Result
	Output   output.Output
	// Written is false when there was nothing to write.
	Written bool
}

// Applier runs complete pipeline. It keeps no per-run state and may be used
// concurrently.
type Applier struct {
	log     *zap.Logger
	fetcher *source.Fetcher
	gen     *cursor.Generator
	sink    output.Sink
}

func New(fetcher *source.Fetcher, sink output.Sink, log *zap.Logger) *Applier {
	if log == nil {
		log = zap.NewNop()
	}
	if fetcher == nil {
		fetcher = source.NewFetcher(source.Options{}, log)
	}
	return &Applier{
		log:     log,
		fetcher: fetcher,
		gen:     cursor.NewGenerator(log),
		sink:    sink,
	}
}

// Apply generates cursor rules for all elements of the stylesheet: semantic
// tags (when requested) and every rule declaring a cursor.
func (a *Applier) Apply(ctx context.Context, p Params) (*Outcome, error) {
	if strings.TrimSpace(p.Selectors) != "" {
		a.log.Warn("Selectors are ignored when processing all elements", zap.String("selectors", p.Selectors))
	}
	return a.run(ctx, p, cursor.MatchAll(), DefaultApplyDelay)
}

// ApplySelectors generates cursor rules only for rules whose selectors
// contain one of comma separated class or id selectors.
func (a *Applier) ApplySelectors(ctx context.Context, p Params) (*Outcome, error) {
	scope, err := cursor.ParseScope(p.Selectors, false)
	if err != nil {
		return nil, err
	}
	return a.run(ctx, p, scope, DefaultSelectDelay)
}

func (a *Applier) run(ctx context.Context, p Params, scope cursor.Scope, delay time.Duration) (*Outcome, error) {
	if p.Delay != 0 {
		delay = p.Delay
	}
	if a.sink == nil {
		return nil, errors.New("no output has been specified")
	}

	loc, err := source.Resolve(p.Source)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("unable to generate invocation id: %w", err)
	}
	log := a.log.With(zap.Stringer("invocation", id))

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	log.Info("Processing starting", zap.Stringer("source", loc), zap.Stringer("scope", scope),
		zap.Stringer("size", p.Size), zap.String("color", p.Color))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	data, err := a.fetcher.Fetch(ctx, loc)
	if err != nil {
		return nil, err
	}

	res, err := a.gen.Generate(ctx, cursor.Request{
		Source:   loc.String(),
		CSS:      data,
		Scope:    scope,
		Size:     p.Size,
		Color:    p.Color,
		Catalog:  p.Catalog,
		Semantic: p.Semantic,
	})
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{ID: id, Location: loc, CSS: data, Result: res}
	if !scope.All && res.Empty() {
		log.Warn("No rules with cursor were found for selectors, nothing to write",
			zap.Stringer("source", loc), zap.Stringer("scope", scope))
		return outcome, nil
	}

	outcome.Output = output.Output{
		Text:        res.Text,
		AllElements: scope.All,
		Source:      loc,
		Size:        p.Size.String(),
		Color:       p.Color,
	}
	if err := a.sink.Write(ctx, outcome.Output); err != nil {
		return nil, err
	}
	outcome.Written = true
	return outcome, nil
}
