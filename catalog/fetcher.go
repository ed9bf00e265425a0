package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"storefeed/go/shopify/adminapi/types"
)

const (
	DefaultPollInterval = time.Second
	DefaultPollTimeout  = 5 * time.Minute
)

// Fetcher issues one request at a time. The limiter paces requests made with
// the same credentials and may be shared between fetchers.
type Fetcher struct {
	limiter *rate.Limiter
	logger  zerolog.Logger
}

type Option func(*Fetcher)

// WithLimiter replaces the default pacing. A nil limiter disables pacing.
func WithLimiter(limiter *rate.Limiter) Option {
	return func(f *Fetcher) {
		f.limiter = limiter
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		limiter: rate.NewLimiter(rate.Limit(2), 4),
		logger:  log.With().Str("component", "catalog").Logger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Fetcher) wait(ctx context.Context) error {
	if f.limiter == nil {
		return ctx.Err()
	}
	return f.limiter.Wait(ctx)
}

// FetchByPaging follows continuation tokens until a page comes back without
// one. Any failing page discards everything fetched so far.
func (f *Fetcher) FetchByPaging(ctx context.Context, pager Pager, pageSize int, fields []string) ([]types.Product, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("page size must be positive, got %d", pageSize)
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	records := []types.Product{}
	token := ""
	for page := 0; ; page++ {
		if err := f.wait(ctx); err != nil {
			return nil, &FetchError{Page: page, Err: err}
		}
		result, err := pager.FetchPage(ctx, PageRequest{Token: token, Size: pageSize, Fields: fields})
		if err != nil {
			return nil, &FetchError{Page: page, Err: err}
		}
		if result == nil {
			return nil, &FetchError{Page: page, Err: errors.New("empty page result")}
		}
		for i := range result.Records {
			result.Records[i].EnsureChildren()
		}
		records = append(records, result.Records...)
		f.logger.Debug().Int("page", page).Int("records", len(result.Records)).Int("total", len(records)).Msg("Fetched catalog page")

		if result.Next == "" {
			return records, nil
		}
		if result.Next == token {
			return nil, &FetchError{Page: page, Err: fmt.Errorf("continuation token %q returned twice", token)}
		}
		token = result.Next
	}
}

// FetchByBulkExport submits exportQuery, polls the job every pollInterval
// until it is terminal, then downloads and groups the JSON Lines result.
// A zero pollInterval polls back to back. Polling never outlasts pollTimeout,
// counted from the submission.
func (f *Fetcher) FetchByBulkExport(ctx context.Context, exporter BulkExporter, exportQuery string, pollInterval time.Duration, pollTimeout time.Duration) ([]types.Product, error) {
	if pollInterval < 0 {
		pollInterval = DefaultPollInterval
	}
	if pollTimeout <= 0 {
		pollTimeout = DefaultPollTimeout
	}

	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	job, err := exporter.Submit(ctx, exportQuery)
	if err != nil {
		return nil, fmt.Errorf("error submitting bulk export:\n>>> %w", err)
	}
	if job == nil {
		return nil, errors.New("bulk export submitted without a job")
	}
	f.logger.Info().Str("job", job.Id).Str("status", string(job.Status)).Msg("Submitted bulk export")

	started := time.Now()
	pollCtx, cancel := context.WithDeadline(ctx, started.Add(pollTimeout))
	defer cancel()
	// errors raised while the caller's ctx is still live come from the poll deadline
	timedOut := func(err error) error {
		if ctx.Err() != nil {
			return err
		}
		return &FetchTimeoutError{JobId: job.Id, Status: job.Status, Timeout: pollTimeout}
	}

	for !job.Status.Terminal() {
		if err := sleep(pollCtx, pollInterval); err != nil {
			return nil, timedOut(err)
		}
		if err := f.wait(pollCtx); err != nil {
			return nil, timedOut(err)
		}
		next, err := exporter.Status(pollCtx, job.Id)
		if err != nil {
			err = fmt.Errorf("error polling bulk export %s:\n>>> %w", job.Id, err)
			if pollCtx.Err() != nil {
				return nil, timedOut(err)
			}
			return nil, err
		}
		if next == nil {
			return nil, fmt.Errorf("bulk export %s polled without a job", job.Id)
		}
		job = next
		f.logger.Debug().Str("job", job.Id).Str("status", string(job.Status)).Msg("Polled bulk export")
	}

	if job.Status == BulkFailed {
		return nil, &BulkExportError{JobId: job.Id, Code: job.ErrorCode}
	}
	if job.ResultURL == "" {
		return []types.Product{}, nil
	}

	body, err := exporter.Download(ctx, job.ResultURL)
	if err != nil {
		return nil, fmt.Errorf("error downloading bulk export %s:\n>>> %w", job.Id, err)
	}
	defer body.Close()

	records, err := GroupBulkResult(body)
	if err != nil {
		return nil, err
	}
	f.logger.Info().Str("job", job.Id).Int("records", len(records)).Dur("elapsed", time.Since(started)).Msg("Grouped bulk export")
	return records, nil
}

// sleep waits d, or returns the context error once ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
