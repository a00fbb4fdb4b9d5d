// Package app provides the reconciliation engine that wires producers,
// normalization, identity resolution, merging, scoring, and
// aggregation into one run.
package app

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/grdn/statfuse/internal/adapters/feed"
	"github.com/grdn/statfuse/internal/adapters/repository"
	"github.com/grdn/statfuse/internal/adapters/source"
	"github.com/grdn/statfuse/internal/domain/aggregate"
	"github.com/grdn/statfuse/internal/domain/identity"
	"github.com/grdn/statfuse/internal/domain/merge"
	"github.com/grdn/statfuse/internal/domain/model"
	"github.com/grdn/statfuse/internal/domain/normalize"
	"github.com/grdn/statfuse/internal/domain/schema"
	"github.com/grdn/statfuse/internal/domain/scoring"
	"github.com/grdn/statfuse/pkg/logger"
	"github.com/grdn/statfuse/pkg/metrics"
)

// Result is a run's output: merged rows, per-player histories, the
// window-filter survivors, and every accumulated diagnostic. Partial
// failures live in Diagnostics; only structural errors abort a run.
type Result struct {
	Seasons     []int
	Tables      []model.TableType
	Merged      []model.MergedSeasonRecord
	Histories   []model.PlayerHistory
	Qualified   []model.PlayerHistory
	Diagnostics model.Diagnostics
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithProducers registers the raw row producers.
func WithProducers(producers ...source.Producer) Option {
	return func(e *Engine) {
		e.producers = append(e.producers, producers...)
	}
}

// WithSeasons sets the requested seasons. Order does not matter.
func WithSeasons(years ...int) Option {
	return func(e *Engine) {
		e.seasons = append([]int{}, years...)
	}
}

// WithSeasonRange sets an inclusive season range; start and end may be
// given in either order.
func WithSeasonRange(start, end int) Option {
	return func(e *Engine) {
		if start > end {
			start, end = end, start
		}
		e.seasons = e.seasons[:0]
		for y := start; y <= end; y++ {
			e.seasons = append(e.seasons, y)
		}
	}
}

// WithTables restricts the run to the given categories. Default is the
// comprehensive join over every category the producers serve.
func WithTables(tables ...model.TableType) Option {
	return func(e *Engine) {
		e.tables = append([]model.TableType{}, tables...)
	}
}

// WithScoringRule overrides the scoring weight table.
func WithScoringRule(rule scoring.Rule) Option {
	return func(e *Engine) {
		if len(rule) > 0 {
			e.calc = scoring.NewCalculator(scoring.WithRule(rule))
		}
	}
}

// WithThreshold enables the trailing-window qualification filter.
func WithThreshold(t aggregate.Threshold) Option {
	return func(e *Engine) {
		e.threshold = t
	}
}

// WithMerger overrides the merger, e.g. to change primary sources.
func WithMerger(m *merge.Merger) Option {
	return func(e *Engine) {
		if m != nil {
			e.merger = m
		}
	}
}

// WithStore sets the backing history store.
func WithStore(s repository.Store) Option {
	return func(e *Engine) {
		if s != nil {
			e.store = s
		}
	}
}

// WithWorkerCount sets the number of fetch workers.
func WithWorkerCount(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workerCount = n
		}
	}
}

// WithQueueSize bounds the fetch result buffer.
func WithQueueSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.queueSize = n
		}
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Engine coordinates one reconciliation run. Fetching is concurrent;
// everything after the fetch — normalization, identity binding,
// merging, scoring — happens on the collector goroutine so the
// resolver's source key map has a single writer.
type Engine struct {
	producers []source.Producer
	seasons   []int
	tables    []model.TableType
	threshold aggregate.Threshold

	store      repository.Store
	resolver   *identity.Resolver
	merger     *merge.Merger
	calc       *scoring.Calculator
	normalizer *normalize.Normalizer

	workerCount int
	queueSize   int
	logger      logger.Logger
}

// New constructs an Engine with default components, then options.
func New(opts ...Option) *Engine {
	e := &Engine{
		store:       repository.NewMemStore(),
		resolver:    identity.NewResolver(),
		merger:      merge.New(),
		calc:        scoring.NewCalculator(),
		normalizer:  normalize.New(),
		workerCount: 4,
		queueSize:   64,
		logger:      logger.Named("engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type bucketKey struct {
	id     model.PlayerID
	season int
}

// Run executes the pipeline and returns the result with accumulated
// diagnostics. Only structural configuration problems return an error.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	if err := e.validate(); err != nil {
		return nil, err
	}

	seasons := normalizeSeasons(e.seasons)
	tables := e.runTables()
	jobs := e.buildJobs(seasons, tables)

	e.logger.Info(ctx, "starting run",
		logger.Int("seasons", len(seasons)),
		logger.Int("tables", len(tables)),
		logger.Int("jobs", len(jobs)),
	)

	pool := feed.NewPool(e.producers,
		feed.WithWorkerCount(e.workerCount),
		feed.WithQueueSize(e.queueSize),
		feed.WithLogger(e.logger.Named("feed")),
	)

	var diags model.Diagnostics
	buckets := make(map[bucketKey][]model.NormalizedStatRecord)

	// Single collector: all resolver binds happen on this goroutine.
	for res := range pool.Fetch(ctx, jobs) {
		if res.Err != nil {
			diags.Add(model.Diagnostic{
				Kind:   model.DiagFetchFailed,
				Source: res.Job.Source,
				Table:  res.Job.Table,
				Season: res.Job.Season,
				Err:    res.Err,
			})
			continue
		}
		for _, row := range res.Rows {
			e.collectRow(ctx, row, buckets, &diags)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	merged := e.mergeBuckets(ctx, buckets, &diags)

	histories, err := e.store.Histories(ctx)
	if err != nil {
		return nil, fmt.Errorf("read histories: %w", err)
	}

	result := &Result{
		Seasons:     seasons,
		Tables:      tables,
		Merged:      merged,
		Histories:   histories,
		Diagnostics: diags,
	}
	if e.threshold.Window > 0 {
		maxSeason := seasons[len(seasons)-1]
		result.Qualified = aggregate.FilterWindow(histories, e.threshold, maxSeason)
	}

	e.logger.Info(ctx, "run complete",
		logger.Int("players", len(histories)),
		logger.Int("mergedRecords", len(merged)),
		logger.Int("diagnostics", len(diags)),
	)
	return result, nil
}

func (e *Engine) validate() error {
	if len(e.producers) == 0 {
		return ErrNoProducers
	}
	if len(e.seasons) == 0 {
		return ErrEmptySeasonRange
	}
	for _, t := range e.tables {
		if !schema.Known(t) {
			return fmt.Errorf("%w: %s", ErrUnknownTableType, t)
		}
	}
	if e.threshold.Window > len(normalizeSeasons(e.seasons)) {
		return fmt.Errorf("%w: window %d exceeds requested seasons", ErrEmptySeasonRange, e.threshold.Window)
	}
	return nil
}

// runTables resolves the requested categories; with none given, every
// category any registered producer serves.
func (e *Engine) runTables() []model.TableType {
	if len(e.tables) > 0 {
		return e.tables
	}
	seen := make(map[model.TableType]bool)
	var out []model.TableType
	for _, t := range schema.MergeOrder() {
		for _, prod := range e.producers {
			if _, ok := schema.Lookup(prod.Source(), t); ok && !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out
}

func (e *Engine) buildJobs(seasons []int, tables []model.TableType) []feed.Job {
	registered := make(map[model.Source]bool, len(e.producers))
	for _, prod := range e.producers {
		registered[prod.Source()] = true
	}
	var jobs []feed.Job
	for _, season := range seasons {
		for _, table := range tables {
			for _, src := range schema.Sources(table) {
				if registered[src] {
					jobs = append(jobs, feed.Job{Source: src, Table: table, Season: season})
				}
			}
		}
	}
	return jobs
}

// collectRow normalizes and identity-binds one raw row, bucketing the
// record under its canonical (player, season).
func (e *Engine) collectRow(ctx context.Context, row model.RawRow, buckets map[bucketKey][]model.NormalizedStatRecord, diags *model.Diagnostics) {
	rec, err := e.normalizer.Normalize(row)
	if err != nil {
		metrics.RecordRowDropped(string(row.Source), string(row.Table))
		diags.Add(model.Diagnostic{
			Kind:   model.DiagRowDropped,
			Source: row.Source,
			Table:  row.Table,
			Season: row.Season,
			Err:    err,
		})
		return
	}

	known := e.resolver.Count()
	id, err := e.resolver.Resolve(identity.Observation{
		Source:   rec.Source,
		NativeID: rec.NativeID,
		Name:     rec.Name,
		Team:     rec.Team,
		Season:   rec.Season,
	})
	if err != nil {
		if errors.Is(err, identity.ErrAmbiguousIdentity) {
			metrics.RecordIdentityAmbiguous()
		}
		diags.Add(model.Diagnostic{
			Kind:   model.DiagAmbiguousIdentity,
			Source: rec.Source,
			Table:  rec.Table,
			Season: rec.Season,
			Player: rec.Name,
			Err:    err,
		})
		e.logger.Warn(ctx, "identity resolution failed",
			logger.String("player", rec.Name),
			logger.String("source", string(rec.Source)),
			logger.Error(err),
		)
		return
	}
	if e.resolver.Count() > known {
		metrics.RecordIdentityMinted()
	} else {
		metrics.RecordIdentityBound()
	}

	key := bucketKey{id: id, season: rec.Season}
	buckets[key] = append(buckets[key], rec)
}

// mergeBuckets merges, scores, and stores every (player, season)
// bucket, returning the merged rows sorted by season then name.
func (e *Engine) mergeBuckets(ctx context.Context, buckets map[bucketKey][]model.NormalizedStatRecord, diags *model.Diagnostics) []model.MergedSeasonRecord {
	keys := make([]bucketKey, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].season != keys[j].season {
			return keys[i].season < keys[j].season
		}
		return keys[i].id < keys[j].id
	})

	merged := make([]model.MergedSeasonRecord, 0, len(keys))
	for _, key := range keys {
		rec, mergeDiags := e.merger.Merge(key.id, key.season, buckets[key])
		for range mergeDiags {
			metrics.RecordBackfillGap()
		}
		diags.Merge(mergeDiags)

		total, scoreDiags := e.calc.Score(rec)
		for range scoreDiags {
			metrics.RecordRuleFieldMiss()
		}
		diags.Merge(scoreDiags)
		rec.FantasyPoints = total

		if err := e.store.PutSeason(ctx, rec); err != nil {
			e.logger.Error(ctx, "store write failed",
				logger.String("player", rec.Name),
				logger.Int("season", rec.Season),
				logger.Error(err),
			)
			continue
		}
		metrics.RecordMergedRecord()
		merged = append(merged, rec)
	}

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Season != merged[j].Season {
			return merged[i].Season < merged[j].Season
		}
		return merged[i].Name < merged[j].Name
	})
	return merged
}

func normalizeSeasons(years []int) []int {
	seen := make(map[int]bool, len(years))
	out := make([]int, 0, len(years))
	for _, y := range years {
		if !seen[y] {
			seen[y] = true
			out = append(out, y)
		}
	}
	sort.Ints(out)
	return out
}
