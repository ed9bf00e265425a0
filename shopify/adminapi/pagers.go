package adminapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"storefeed/go/app"
	"storefeed/go/catalog"
	"storefeed/go/helpers"
	"storefeed/go/shopify/adminapi/types"
)

// ProductPager pages through products with GraphQL cursors. The selection is
// fixed by the ProductFields fragment, so PageRequest.Fields is not used.
type ProductPager struct {
	Client *Client
	// Search is a products search query such as "status:active".
	Search string
}

func (p *ProductPager) FetchPage(ctx context.Context, request catalog.PageRequest) (*catalog.Page, error) {
	edges, err := p.Client.ProductsPage(ctx, request.Size, request.Token, p.Search)
	if err != nil {
		return nil, err
	}
	page := &catalog.Page{Records: make([]types.Product, edges.Length())}
	for i, node := range edges.Iter {
		page.Records[i] = node.Flatten()
	}
	if cursor := edges.NextCursor(); cursor != nil {
		page.Next = *cursor
	}
	return page, nil
}

// RESTProductPager pages through products.json following the Link header.
type RESTProductPager struct {
	Client *Client
	// Status filters the first request only, Shopify rejects filters next to page_info.
	Status string
}

func (p *RESTProductPager) FetchPage(ctx context.Context, request catalog.PageRequest) (*catalog.Page, error) {
	query := url.Values{"limit": {strconv.Itoa(request.Size)}}
	if len(request.Fields) > 0 {
		query.Set("fields", strings.Join(request.Fields, ","))
	}
	if request.Token != "" {
		query.Set("page_info", request.Token)
	} else if p.Status != "" {
		query.Set("status", p.Status)
	}
	resp, err := p.Client.REST(ctx, http.MethodGet, "products.json", query, nil)
	if err != nil {
		return nil, err
	}
	var products types.RESTProducts
	if err := resp.Decode(&products); err != nil {
		return nil, err
	}
	page := &catalog.Page{
		Records: make([]types.Product, len(products.Products)),
		Next:    resp.NextPageInfo,
	}
	for i := range products.Products {
		page.Records[i] = products.Products[i].ToProduct()
	}
	return page, nil
}

// BulkOperations drives bulkOperationRunQuery jobs.
type BulkOperations struct {
	Client *Client
}

var bulkStatuses = map[string]catalog.BulkStatus{
	"CREATED":   catalog.BulkPending,
	"RUNNING":   catalog.BulkRunning,
	"CANCELING": catalog.BulkRunning,
	"COMPLETED": catalog.BulkCompleted,
	"FAILED":    catalog.BulkFailed,
	"CANCELED":  catalog.BulkFailed,
	"EXPIRED":   catalog.BulkFailed,
}

func bulkJob(operation *types.BulkOperation) (*catalog.BulkJob, error) {
	status, ok := bulkStatuses[operation.Status]
	if !ok {
		return nil, fmt.Errorf("unknown bulk operation status %q for %s", operation.Status, operation.Id)
	}
	job := &catalog.BulkJob{Id: operation.Id, Status: status}
	if operation.ErrorCode != nil {
		job.ErrorCode = *operation.ErrorCode
	} else if status == catalog.BulkFailed {
		job.ErrorCode = operation.Status
	}
	if status == catalog.BulkCompleted && operation.Url != nil {
		job.ResultURL = *operation.Url
	}
	return job, nil
}

func (b *BulkOperations) Submit(ctx context.Context, exportQuery string) (*catalog.BulkJob, error) {
	run, err := b.Client.RunBulkQuery(ctx, exportQuery)
	if err != nil {
		return nil, err
	}
	if err := CheckUserErrors("bulkOperationRunQuery", run.UserErrors); err != nil {
		return nil, err
	}
	if run.BulkOperation == nil {
		return nil, fmt.Errorf("no bulk operation returned by bulkOperationRunQuery")
	}
	return bulkJob(run.BulkOperation)
}

func (b *BulkOperations) Status(ctx context.Context, jobId string) (*catalog.BulkJob, error) {
	operation, err := b.Client.BulkOperationById(ctx, jobId)
	if err != nil {
		return nil, err
	}
	return bulkJob(operation)
}

func (b *BulkOperations) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	download, _ := app.GetCacheValue(ctx, []any{"Shopify", "Download"}, helpers.DownloadFunc(helpers.Download))
	return download(ctx, url)
}
