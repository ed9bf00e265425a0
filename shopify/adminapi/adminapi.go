package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"storefeed/go/app"
	"storefeed/go/helpers"
	"storefeed/go/shopify"
	"storefeed/go/shopify/adminapi/queries"
	"storefeed/go/shopify/adminapi/types"
)

const accessTokenHeader = "X-Shopify-Access-Token"

var ErrEmptyResult = errors.New("empty result")

// Client carries the credentials of one shop. Transports are looked up in the
// request cache on every call and default to the helpers package.
type Client struct {
	config shopify.Config
}

func NewClient(cfg shopify.Config) *Client {
	return &Client{config: cfg}
}

func (c *Client) Config() shopify.Config {
	return c.config
}

func (c *Client) checkConfig() error {
	if c == nil || c.config.HostName == "" || c.config.AccessToken == "" {
		return fmt.Errorf("missing necessary configuration for Shopify Admin API call:\n>>> %w", shopify.ErrMissingCredentials)
	}
	return nil
}

type UserErrors []types.UserError

func (e UserErrors) Error() string {
	messages := make([]string, len(e))
	for i, userError := range e {
		if len(userError.Field) > 0 {
			messages[i] = fmt.Sprintf("%s: %s", strings.Join(userError.Field, "."), userError.Message)
		} else {
			messages[i] = userError.Message
		}
	}
	return strings.Join(messages, "; ")
}

func CheckUserErrors(operation string, userErrors []types.UserError) error {
	if len(userErrors) == 0 {
		return nil
	}
	return fmt.Errorf("user errors in Shopify Admin API %s:\n>>> %w", operation, UserErrors(userErrors))
}

type Query[T any] struct {
	Client *Client
}

func (f *Query[T]) CallGeneric(ctx context.Context, query queries.ShopifyQuery, variables map[string]any) (any, error) {
	if err := f.Client.checkConfig(); err != nil {
		return nil, err
	}
	cfg := f.Client.config
	graphQLQuery, _ := app.GetCacheValue(ctx, []any{"Shopify", "GraphQLQuery"}, helpers.GraphQLQueryFunc(helpers.GraphQLQuery))
	resp, err := graphQLQuery(ctx, cfg.GraphQLURL(), accessTokenHeader, cfg.AccessToken, query.Query, variables)
	if err != nil {
		return nil, err
	}
	respMap, ok := resp.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid Shopify Admin API query response, expected map, got: %v", resp)
	}
	if _, foundErrors := respMap["errors"]; foundErrors {
		return nil, fmt.Errorf("errors in Shopify Admin API query response: %v", respMap)
	}
	data, dataOk := respMap["data"].(map[string]any)
	if !dataOk {
		return nil, fmt.Errorf("data map not found in Shopify Admin API query response: %v", respMap)
	}
	resultData, resultFound := data[query.ResultKey]
	if !resultFound {
		return nil, fmt.Errorf("result key not found in Shopify Admin API query response (%v): %v", query.ResultKey, respMap)
	}
	if resultData == nil {
		return nil, fmt.Errorf("empty response from Shopify Admin API query response (%v):\n>>> %w", query.ResultKey, ErrEmptyResult)
	}
	return resultData, nil
}

func (f *Query[T]) Call(ctx context.Context, query queries.ShopifyQuery, variables map[string]any) (*T, error) {
	resultAny, err := f.CallGeneric(ctx, query, variables)
	if err != nil {
		return nil, err
	}
	resultJson, err := json.Marshal(resultAny)
	if err != nil {
		return nil, fmt.Errorf("error re-marshalling result from Shopify Admin API query response:\n>>> %v\n>>> %w", resultAny, err)
	}
	var result T
	decoder := json.NewDecoder(bytes.NewReader(resultJson))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&result); err != nil {
		return nil, fmt.Errorf("error decoding result into struct from Shopify Admin API query response:\n>>> %v\n>>> %w", string(resultJson), err)
	}
	return &result, nil
}

type RESTResponse struct {
	StatusCode int
	Body       []byte
	// NextPageInfo is the page_info of the rel="next" Link, empty on the last page.
	NextPageInfo string
}

func (r *RESTResponse) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("error decoding Shopify Admin REST response:\n>>> %s\n>>> %w", r.Body, err)
	}
	return nil
}

func (c *Client) REST(ctx context.Context, method string, path string, query url.Values, body any) (*RESTResponse, error) {
	if err := c.checkConfig(); err != nil {
		return nil, err
	}
	target := c.config.RESTURL(path)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	restRequest, _ := app.GetCacheValue(ctx, []any{"Shopify", "RESTRequest"}, helpers.RESTRequestFunc(helpers.RESTRequest))
	resp, err := restRequest(ctx, method, target, accessTokenHeader, c.config.AccessToken, body)
	if err != nil {
		return nil, err
	}
	return &RESTResponse{
		StatusCode:   resp.StatusCode,
		Body:         resp.Body,
		NextPageInfo: nextPageInfo(resp.Header),
	}, nil
}

// nextPageInfo reads `<https://...&page_info=abc>; rel="next"` from the Link header.
func nextPageInfo(header http.Header) string {
	for _, link := range header.Values("Link") {
		for _, part := range strings.Split(link, ",") {
			segments := strings.Split(part, ";")
			if len(segments) < 2 {
				continue
			}
			isNext := false
			for _, param := range segments[1:] {
				if strings.ReplaceAll(strings.TrimSpace(param), " ", "") == `rel="next"` {
					isNext = true
				}
			}
			if !isNext {
				continue
			}
			target, err := url.Parse(strings.Trim(strings.TrimSpace(segments[0]), "<>"))
			if err != nil {
				continue
			}
			return target.Query().Get("page_info")
		}
	}
	return ""
}

// CATALOG

func (c *Client) ProductsPage(ctx context.Context, first int, after string, search string) (*types.Edges[types.ProductNode], error) {
	variables := map[string]any{"first": first}
	if after != "" {
		variables["after"] = after
	}
	if search != "" {
		variables["query"] = search
	}
	return (&Query[types.Edges[types.ProductNode]]{Client: c}).Call(ctx, queries.ProductsPage, variables)
}

func (c *Client) RunBulkQuery(ctx context.Context, query string) (*types.BulkOperationRunQuery, error) {
	return (&Query[types.BulkOperationRunQuery]{Client: c}).Call(ctx, queries.BulkOperationRunQuery, map[string]any{"query": query})
}

func (c *Client) BulkOperationById(ctx context.Context, id string) (*types.BulkOperation, error) {
	return (&Query[types.BulkOperation]{Client: c}).Call(ctx, queries.BulkOperationById, map[string]any{"id": id})
}

// DISCOUNTS

func (c *Client) DiscountCodeNodes(ctx context.Context, search string) (*types.Edges[types.DiscountCodeNode], error) {
	return (&Query[types.Edges[types.DiscountCodeNode]]{Client: c}).Call(ctx, queries.DiscountCodeNodes, map[string]any{"query": search})
}

// METAFIELDS, METAOBJECTS

type MetafieldDefinitionFilter struct {
	OwnerType        string
	Namespace        string
	Key              string
	ConstraintStatus string
}

func (c *Client) MetafieldDefinitions(ctx context.Context, filter MetafieldDefinitionFilter, first int, after string) (*types.Edges[types.MetafieldDefinition], error) {
	variables := map[string]any{
		"first":     first,
		"ownerType": filter.OwnerType,
	}
	if after != "" {
		variables["after"] = after
	}
	if filter.Namespace != "" {
		variables["namespace"] = filter.Namespace
	}
	if filter.Key != "" {
		variables["key"] = filter.Key
	}
	if filter.ConstraintStatus != "" {
		variables["constraintStatus"] = filter.ConstraintStatus
	}
	return (&Query[types.Edges[types.MetafieldDefinition]]{Client: c}).Call(ctx, queries.MetafieldDefinitions, variables)
}

func (c *Client) CreateMetafieldDefinition(ctx context.Context, definition map[string]any) (*types.MetafieldDefinitionCreate, error) {
	return (&Query[types.MetafieldDefinitionCreate]{Client: c}).Call(ctx, queries.MetafieldDefinitionCreate, map[string]any{"definition": definition})
}

func (c *Client) DeleteMetafieldDefinition(ctx context.Context, id string) (*types.MetafieldDefinitionDelete, error) {
	return (&Query[types.MetafieldDefinitionDelete]{Client: c}).Call(ctx, queries.MetafieldDefinitionDelete, map[string]any{
		"id":                            id,
		"deleteAllAssociatedMetafields": true,
	})
}

func (c *Client) SetMetafields(ctx context.Context, metafields []map[string]any) (*types.MetafieldsSet, error) {
	return (&Query[types.MetafieldsSet]{Client: c}).Call(ctx, queries.MetafieldsSet, map[string]any{"metafields": metafields})
}

func (c *Client) MetaobjectDefinitionsByType(ctx context.Context, metaobjectType string) (*types.Edges[types.MetaobjectDefinition], error) {
	return (&Query[types.Edges[types.MetaobjectDefinition]]{Client: c}).Call(ctx, queries.MetaobjectDefinitionsByType, map[string]any{"type": metaobjectType})
}

func (c *Client) CreateMetaobjectDefinition(ctx context.Context, definition map[string]any) (*types.MetaobjectDefinitionCreate, error) {
	return (&Query[types.MetaobjectDefinitionCreate]{Client: c}).Call(ctx, queries.MetaobjectDefinitionCreate, map[string]any{"definition": definition})
}

func (c *Client) CreateMetaobject(ctx context.Context, metaobject map[string]any) (*types.MetaobjectCreate, error) {
	return (&Query[types.MetaobjectCreate]{Client: c}).Call(ctx, queries.MetaobjectCreate, map[string]any{"metaobject": metaobject})
}

func (c *Client) ShopMetafield(ctx context.Context, namespace string, key string) (*types.Shop, error) {
	return (&Query[types.Shop]{Client: c}).Call(ctx, queries.ShopMetafield, map[string]any{"namespace": namespace, "key": key})
}

// ORDERS

func (c *Client) OrderById(ctx context.Context, id string) (*types.Order, error) {
	return (&Query[types.Order]{Client: c}).Call(ctx, queries.Order, map[string]any{"id": shopify.ToGid("Order", id)})
}
