// Package feed fans table-fetch jobs out to a worker pool. Fetching is
// the only concurrent stage: workers produce raw rows per (source,
// season, table) job, and a single collector drains results so that
// identity registration downstream stays single-writer.
package feed

import (
	"context"
	"sync"
	"time"

	"github.com/grdn/statfuse/internal/adapters/source"
	"github.com/grdn/statfuse/internal/domain/model"
	"github.com/grdn/statfuse/pkg/logger"
	"github.com/grdn/statfuse/pkg/metrics"
)

// Default pool configuration constants.
const (
	defaultWorkerCount = 4
	defaultQueueSize   = 64
)

// Job names one table fetch.
type Job struct {
	Source model.Source
	Table  model.TableType
	Season int
}

// Result carries one job's rows or its failure. A failed fetch never
// aborts the run; the caller records it and moves on.
type Result struct {
	Job  Job
	Rows []model.RawRow
	Err  error
}

// Option applies a configuration option to the Pool.
type Option func(*Pool)

// WithWorkerCount sets the number of fetch workers.
func WithWorkerCount(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithQueueSize bounds the result buffer.
func WithQueueSize(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.queueSize = n
		}
	}
}

// WithLogger sets a custom logger for the pool.
func WithLogger(l logger.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}

// Pool runs fetch jobs against registered producers.
type Pool struct {
	producers map[model.Source]source.Producer
	workers   int
	queueSize int
	logger    logger.Logger
}

// NewPool creates a pool over the given producers with configuration
// options.
func NewPool(producers []source.Producer, opts ...Option) *Pool {
	p := &Pool{
		producers: make(map[model.Source]source.Producer, len(producers)),
		workers:   defaultWorkerCount,
		queueSize: defaultQueueSize,
		logger:    logger.Named("feed"),
	}
	for _, prod := range producers {
		p.producers[prod.Source()] = prod
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Fetch runs all jobs and streams results. The channel closes when
// every job has completed or ctx is canceled.
func (p *Pool) Fetch(ctx context.Context, jobs []Job) <-chan Result {
	jobCh := make(chan Job)
	resultCh := make(chan Result, p.queueSize)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.run(ctx, jobCh, resultCh)
		}()
	}

	go func() {
		defer close(jobCh)
		for _, job := range jobs {
			select {
			case <-ctx.Done():
				return
			case jobCh <- job:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	return resultCh
}

func (p *Pool) run(ctx context.Context, jobs <-chan Job, results chan<- Result) {
	for job := range jobs {
		prod, ok := p.producers[job.Source]
		if !ok {
			// Job list is built from the schema registry; a missing
			// producer means the run was configured without that site.
			continue
		}

		start := time.Now()
		rows, err := prod.Produce(ctx, job.Season, job.Table)
		metrics.ObserveFetchLatency(time.Since(start).Seconds())

		if err != nil {
			p.logger.Warn(ctx, "table fetch failed",
				logger.String("source", string(job.Source)),
				logger.String("table", string(job.Table)),
				logger.Int("season", job.Season),
				logger.Error(err),
			)
		} else {
			metrics.RecordRowsScraped(string(job.Source), string(job.Table), len(rows))
			p.logger.Debug(ctx, "table fetched",
				logger.String("source", string(job.Source)),
				logger.String("table", string(job.Table)),
				logger.Int("season", job.Season),
				logger.Int("rows", len(rows)),
			)
		}

		select {
		case <-ctx.Done():
			return
		case results <- Result{Job: job, Rows: rows, Err: err}:
		}
	}
}
