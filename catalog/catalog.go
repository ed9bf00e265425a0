// Package catalog retrieves the complete product catalog from the admin API,
// either by cursor paging or by a bulk export, and hands the flattened records
// to a transform step.
package catalog

import (
	"context"
	"io"

	"storefeed/go/shopify/adminapi/types"
)

const MaxPageSize = 250

type PageRequest struct {
	// Token is opaque and round-tripped unmodified. Empty on the first request.
	Token  string
	Size   int
	Fields []string
}

type Page struct {
	Records []types.Product
	// Next is empty on the last page.
	Next string
}

type Pager interface {
	FetchPage(ctx context.Context, request PageRequest) (*Page, error)
}

type BulkStatus string

const (
	BulkPending   BulkStatus = "pending"
	BulkRunning   BulkStatus = "running"
	BulkCompleted BulkStatus = "completed"
	BulkFailed    BulkStatus = "failed"
)

func (s BulkStatus) Terminal() bool {
	return s == BulkCompleted || s == BulkFailed
}

type BulkJob struct {
	Id        string
	Status    BulkStatus
	ErrorCode string
	// ResultURL is only set once the job completed. Completed jobs without
	// matching objects have no result.
	ResultURL string
}

type BulkExporter interface {
	Submit(ctx context.Context, exportQuery string) (*BulkJob, error)
	Status(ctx context.Context, jobId string) (*BulkJob, error)
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}

// Strategy fetches the whole catalog one way or another.
type Strategy func(ctx context.Context) ([]types.Product, error)

// Transform runs strategy and hands the records to transform. Nothing reaches
// transform when fetching fails.
func Transform[T any](ctx context.Context, strategy Strategy, transform func([]types.Product) (T, error)) (T, error) {
	records, err := strategy(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	return transform(records)
}
