// Package metafields maintains the custom metafield definitions of the shop.
package metafields

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"storefeed/go/logging"
	"storefeed/go/shopify/adminapi"
	"storefeed/go/shopify/adminapi/types"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	Namespace = "custom"

	OwnerProduct        = "PRODUCT"
	OwnerProductVariant = "PRODUCTVARIANT"
	OwnerShop           = "SHOP"

	pageSize          = 250
	deleteConcurrency = 4
)

var createInterval = 100 * time.Millisecond

func ListDefinitions(ctx context.Context, client *adminapi.Client, ownerType string, namespace string) ([]types.MetafieldDefinition, error) {
	return listDefinitions(ctx, client, adminapi.MetafieldDefinitionFilter{OwnerType: ownerType, Namespace: namespace})
}

func listDefinitions(ctx context.Context, client *adminapi.Client, filter adminapi.MetafieldDefinitionFilter) ([]types.MetafieldDefinition, error) {
	definitions := []types.MetafieldDefinition{}
	after := ""
	for page := 0; ; page++ {
		edges, err := client.MetafieldDefinitions(ctx, filter, pageSize, after)
		if err != nil {
			return nil, fmt.Errorf("error listing %s metafield definitions (page %d):\n>>> %w", filter.OwnerType, page, err)
		}
		definitions = append(definitions, edges.Nodes()...)
		next := edges.NextCursor()
		if next == nil || *next == after {
			return definitions, nil
		}
		after = *next
	}
}

type DeleteResult struct {
	Total      int                         `json:"totalMetafields"`
	Deleted    []types.MetafieldDefinition `json:"deleted"`
	UserErrors []types.UserError           `json:"userErrors,omitempty"`
}

// DeleteOrphaned removes every unconstrained custom PRODUCT definition whose
// name is not protected, together with the values stored under it.
func DeleteOrphaned(ctx context.Context, client *adminapi.Client, protectedNames []string) (*DeleteResult, error) {
	definitions, err := listDefinitions(ctx, client, adminapi.MetafieldDefinitionFilter{
		OwnerType:        OwnerProduct,
		Namespace:        Namespace,
		ConstraintStatus: "UNCONSTRAINED_ONLY",
	})
	if err != nil {
		return nil, err
	}

	candidates := []types.MetafieldDefinition{}
	total := 0
	for _, definition := range definitions {
		if definition.Namespace != Namespace {
			continue
		}
		total++
		if !slices.Contains(protectedNames, definition.Name) {
			candidates = append(candidates, definition)
		}
	}

	deleted := make([]bool, len(candidates))
	var mu sync.Mutex
	userErrors := []types.UserError{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(deleteConcurrency)
	for i, definition := range candidates {
		g.Go(func() error {
			response, err := client.DeleteMetafieldDefinition(gctx, definition.Id)
			if err != nil {
				return fmt.Errorf("error deleting metafield definition %s (%s):\n>>> %w", definition.Key, definition.Id, err)
			}
			if response.DeletedDefinitionId != nil {
				deleted[i] = true
				return nil
			}
			mu.Lock()
			userErrors = append(userErrors, response.UserErrors...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &DeleteResult{Total: total, Deleted: []types.MetafieldDefinition{}, UserErrors: userErrors}
	for i, definition := range candidates {
		if deleted[i] {
			result.Deleted = append(result.Deleted, definition)
		}
	}
	logger := logging.NewLogger("metafields")
	logger.Info().Int("total", total).Int("deleted", len(result.Deleted)).Int("userErrors", len(userErrors)).Msg("orphaned metafield definitions processed")
	return result, nil
}

type Result struct {
	Metafield string            `json:"metafield"`
	Success   bool              `json:"success"`
	Errors    []types.UserError `json:"errors"`
}

// CreateDefinitions creates the definitions one after the other. A definition
// rejected by Shopify, for example because its key is taken, is reported in
// its Result and does not stop the run.
func CreateDefinitions(ctx context.Context, client *adminapi.Client, definitions []Definition, ownerType string) ([]Result, error) {
	logger := logging.NewLogger("metafields")
	limiter := rate.NewLimiter(rate.Every(createInterval), 1)
	results := make([]Result, 0, len(definitions))
	for _, definition := range definitions {
		if err := limiter.Wait(ctx); err != nil {
			return results, err
		}
		response, err := client.CreateMetafieldDefinition(ctx, map[string]any{
			"name":      definition.Name,
			"namespace": Namespace,
			"key":       definition.Key,
			"type":      definition.Type,
			"ownerType": ownerType,
			"access":    map[string]any{"storefront": "PUBLIC_READ"},
		})
		if err != nil {
			return results, fmt.Errorf("error creating metafield definition %s:\n>>> %w", definition.Key, err)
		}
		result := Result{Metafield: definition.Name, Success: len(response.UserErrors) == 0, Errors: response.UserErrors}
		if result.Errors == nil {
			result.Errors = []types.UserError{}
		}
		if !result.Success {
			logger.Warn().Str("key", definition.Key).Err(adminapi.UserErrors(response.UserErrors)).Msg("metafield definition not created")
		}
		results = append(results, result)
	}
	return results, nil
}
