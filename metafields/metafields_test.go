package metafields

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"storefeed/go/app"
	"storefeed/go/helpers"
	"storefeed/go/shopify"
	"storefeed/go/shopify/adminapi"
)

var testConfig = shopify.Config{HostName: "shop.myshopify.com", AccessToken: "T", APIVersion: "2025-04"}

func definitionNode(i int, name string) map[string]any {
	return map[string]any{
		"id":        fmt.Sprintf("gid://shopify/MetafieldDefinition/%d", i),
		"name":      name,
		"namespace": "custom",
		"key":       strings.ToLower(strings.ReplaceAll(name, " ", "_")),
		"ownerType": "PRODUCT",
		"type":      map[string]any{"name": "single_line_text_field"},
	}
}

func definitionsPage(nodes []map[string]any, next string) map[string]any {
	edges := []any{}
	for _, node := range nodes {
		edges = append(edges, map[string]any{"cursor": node["id"], "node": node})
	}
	pageInfo := map[string]any{"hasNextPage": next != "", "endCursor": nil}
	if next != "" {
		pageInfo["endCursor"] = next
	}
	return map[string]any{"data": map[string]any{"metafieldDefinitions": map[string]any{"edges": edges, "pageInfo": pageInfo}}}
}

func TestListDefinitions_Pages(t *testing.T) {
	var afters []any
	graphQLQuery := func(_ context.Context, _ string, _ string, _ string, _ string, v map[string]any) (any, error) {
		afters = append(afters, v["after"])
		if v["after"] == nil {
			return definitionsPage([]map[string]any{definitionNode(1, "Marke")}, "c1"), nil
		}
		return definitionsPage([]map[string]any{definitionNode(2, "Hersteller")}, ""), nil
	}
	ctx := app.ContextWithCache(context.Background())
	defer app.SetCacheValue(ctx, []any{"Shopify", "GraphQLQuery"}, helpers.GraphQLQueryFunc(graphQLQuery))()

	definitions, err := ListDefinitions(ctx, adminapi.NewClient(testConfig), OwnerProduct, Namespace)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(definitions) != 2 || definitions[1].Name != "Hersteller" {
		t.Fatalf("Unexpected definitions: %+v", definitions)
	}
	if len(afters) != 2 || afters[1] != "c1" {
		t.Fatalf("Unexpected cursors: %v", afters)
	}
}

func TestDeleteOrphaned(t *testing.T) {
	nodes := []map[string]any{
		definitionNode(1, "3D Viewer"),
		definitionNode(2, "Alt Eins"),
		definitionNode(3, "Alt Zwei"),
		definitionNode(4, "Produktdetails"),
		definitionNode(5, "Gesperrt"),
	}
	for i := 6; i < 16; i++ {
		nodes = append(nodes, definitionNode(i, fmt.Sprintf("Alt %d", i)))
	}

	var running, maxRunning atomic.Int32
	var mu sync.Mutex
	deletedIds := map[string]bool{}
	var listVariables map[string]any
	graphQLQuery := func(_ context.Context, _ string, _ string, _ string, query string, v map[string]any) (any, error) {
		if strings.Contains(query, "metafieldDefinitionDelete(") {
			current := running.Add(1)
			defer running.Add(-1)
			for {
				seen := maxRunning.Load()
				if current <= seen || maxRunning.CompareAndSwap(seen, current) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			if v["deleteAllAssociatedMetafields"] != true {
				return nil, fmt.Errorf("associated metafields must be deleted")
			}
			id := v["id"].(string)
			if id == "gid://shopify/MetafieldDefinition/5" {
				return map[string]any{"data": map[string]any{"metafieldDefinitionDelete": map[string]any{
					"deletedDefinitionId": nil,
					"userErrors":          []any{map[string]any{"field": []any{"id"}, "message": "Definition is locked", "code": "DISALLOWED"}},
				}}}, nil
			}
			mu.Lock()
			deletedIds[id] = true
			mu.Unlock()
			return map[string]any{"data": map[string]any{"metafieldDefinitionDelete": map[string]any{
				"deletedDefinitionId": id,
				"userErrors":          []any{},
			}}}, nil
		}
		listVariables = v
		return definitionsPage(nodes, ""), nil
	}
	ctx := app.ContextWithCache(context.Background())
	defer app.SetCacheValue(ctx, []any{"Shopify", "GraphQLQuery"}, helpers.GraphQLQueryFunc(graphQLQuery))()

	result, err := DeleteOrphaned(ctx, adminapi.NewClient(testConfig), ProtectedNames)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if listVariables["ownerType"] != "PRODUCT" || listVariables["namespace"] != "custom" || listVariables["constraintStatus"] != "UNCONSTRAINED_ONLY" {
		t.Fatalf("Unexpected list variables: %v", listVariables)
	}
	if result.Total != 15 || len(result.Deleted) != 12 || len(result.UserErrors) != 1 {
		t.Fatalf("Unexpected result: total=%d deleted=%d errors=%v", result.Total, len(result.Deleted), result.UserErrors)
	}
	if deletedIds["gid://shopify/MetafieldDefinition/1"] || deletedIds["gid://shopify/MetafieldDefinition/4"] {
		t.Fatalf("Protected definitions were deleted: %v", deletedIds)
	}
	if result.Deleted[0].Name != "Alt Eins" || result.Deleted[1].Name != "Alt Zwei" {
		t.Fatalf("Expected listing order to be kept, got %+v", result.Deleted[:2])
	}
	if maxRunning.Load() > deleteConcurrency {
		t.Fatalf("Expected at most %d concurrent deletions, got %d", deleteConcurrency, maxRunning.Load())
	}
}

func TestDeleteOrphaned_TransportError(t *testing.T) {
	graphQLQuery := func(_ context.Context, _ string, _ string, _ string, query string, _ map[string]any) (any, error) {
		if strings.Contains(query, "metafieldDefinitionDelete(") {
			return nil, fmt.Errorf("connection reset")
		}
		return definitionsPage([]map[string]any{definitionNode(2, "Alt")}, ""), nil
	}
	ctx := app.ContextWithCache(context.Background())
	defer app.SetCacheValue(ctx, []any{"Shopify", "GraphQLQuery"}, helpers.GraphQLQueryFunc(graphQLQuery))()

	if _, err := DeleteOrphaned(ctx, adminapi.NewClient(testConfig), ProtectedNames); err == nil || !strings.Contains(err.Error(), "connection reset") {
		t.Fatalf("Expected transport error, got %v", err)
	}
}

func TestCreateDefinitions(t *testing.T) {
	defer func(interval time.Duration) { createInterval = interval }(createInterval)
	createInterval = 0

	var received []map[string]any
	graphQLQuery := func(_ context.Context, _ string, _ string, _ string, _ string, v map[string]any) (any, error) {
		definition := v["definition"].(map[string]any)
		received = append(received, definition)
		if definition["key"] == "marke" {
			return map[string]any{"data": map[string]any{"metafieldDefinitionCreate": map[string]any{
				"createdDefinition": nil,
				"userErrors":        []any{map[string]any{"field": []any{"definition", "key"}, "message": "Key is in use", "code": "TAKEN"}},
			}}}, nil
		}
		return map[string]any{"data": map[string]any{"metafieldDefinitionCreate": map[string]any{
			"createdDefinition": map[string]any{"id": "gid://shopify/MetafieldDefinition/9", "name": definition["name"], "namespace": "custom", "key": definition["key"], "type": map[string]any{"name": definition["type"]}},
			"userErrors":        []any{},
		}}}, nil
	}
	ctx := app.ContextWithCache(context.Background())
	defer app.SetCacheValue(ctx, []any{"Shopify", "GraphQLQuery"}, helpers.GraphQLQueryFunc(graphQLQuery))()

	results, err := CreateDefinitions(ctx, adminapi.NewClient(testConfig), GeneralDefinitions[:5], OwnerProductVariant)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(results) != 5 || len(received) != 5 {
		t.Fatalf("Expected 5 results, got %+v", results)
	}
	for _, result := range results {
		if result.Metafield == "Marke" {
			if result.Success || len(result.Errors) != 1 || *result.Errors[0].Code != "TAKEN" {
				t.Fatalf("Unexpected result for Marke: %+v", result)
			}
		} else if !result.Success || result.Errors == nil {
			t.Fatalf("Unexpected result: %+v", result)
		}
	}
	first := received[0]
	if first["ownerType"] != "PRODUCTVARIANT" || first["namespace"] != "custom" || first["access"].(map[string]any)["storefront"] != "PUBLIC_READ" {
		t.Fatalf("Unexpected definition input: %v", first)
	}
}

func TestGeneralDefinitions_UniqueKeys(t *testing.T) {
	seen := map[string]bool{}
	for _, definition := range GeneralDefinitions {
		if seen[definition.Key] {
			t.Fatalf("Duplicate key %s", definition.Key)
		}
		seen[definition.Key] = true
		if !strings.HasSuffix(definition.Type, "_field") && !strings.HasPrefix(definition.Type, "number_") {
			t.Fatalf("Unexpected type %s for %s", definition.Type, definition.Key)
		}
	}
}
