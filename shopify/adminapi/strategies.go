package adminapi

import (
	"context"
	"fmt"
	"time"

	"storefeed/go/catalog"
	"storefeed/go/shopify/adminapi/queries"
	"storefeed/go/shopify/adminapi/types"
)

const (
	StrategyPaging = "paging"
	StrategyREST   = "rest"
	StrategyBulk   = "bulk"
)

// RESTFeedFields is the products.json selection the feeds need.
var RESTFeedFields = []string{"id", "title", "handle", "variants", "images", "body_html", "vendor", "product_type", "status", "options", "tags", "created_at"}

type StrategyOptions struct {
	// PageSize defaults to the largest page the strategy can request.
	PageSize int
	// Fields only applies to the REST strategy.
	Fields []string
	// Search only applies to the paging strategy.
	Search       string
	PollInterval time.Duration
	PollTimeout  time.Duration
}

// CatalogStrategy binds one of the fetcher's two algorithms to a Shopify transport.
func CatalogStrategy(client *Client, fetcher *catalog.Fetcher, name string, opts StrategyOptions) (catalog.Strategy, error) {
	switch name {
	case StrategyPaging:
		pager := &ProductPager{Client: client, Search: opts.Search}
		pageSize := pageSizeOr(opts.PageSize, queries.ProductsPageSize)
		return func(ctx context.Context) ([]types.Product, error) {
			return fetcher.FetchByPaging(ctx, pager, pageSize, nil)
		}, nil
	case StrategyREST:
		pager := &RESTProductPager{Client: client}
		pageSize := pageSizeOr(opts.PageSize, catalog.MaxPageSize)
		fields := opts.Fields
		if len(fields) == 0 {
			fields = RESTFeedFields
		}
		return func(ctx context.Context) ([]types.Product, error) {
			return fetcher.FetchByPaging(ctx, pager, pageSize, fields)
		}, nil
	case StrategyBulk:
		exporter := &BulkOperations{Client: client}
		return func(ctx context.Context) ([]types.Product, error) {
			return fetcher.FetchByBulkExport(ctx, exporter, queries.BulkProductExport, opts.PollInterval, opts.PollTimeout)
		}, nil
	}
	return nil, fmt.Errorf("unknown catalog strategy %q, expected %s, %s or %s", name, StrategyPaging, StrategyREST, StrategyBulk)
}

func pageSizeOr(pageSize int, fallback int) int {
	if pageSize <= 0 {
		return fallback
	}
	return pageSize
}
