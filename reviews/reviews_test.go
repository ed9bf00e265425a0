package reviews

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"storefeed/go/app"
	"storefeed/go/helpers"
	"storefeed/go/shopify"
	"storefeed/go/shopify/adminapi"
)

var testConfig = shopify.Config{HostName: "shop.myshopify.com", AccessToken: "T", APIVersion: "2025-04"}

var operationName = regexp.MustCompile(`(?m)^(?:query|mutation) (\w+)`)

type fakeShop struct {
	metaobjectDefinitions int
	listDefinitions       int
	listValue             any
	calls                 []string
	variables             map[string]map[string]any
}

func (f *fakeShop) query(_ context.Context, _ string, _ string, _ string, query string, v map[string]any) (any, error) {
	name := operationName.FindStringSubmatch(query)[1]
	f.calls = append(f.calls, name)
	f.variables[name] = v
	var result map[string]any
	switch name {
	case "MetaobjectDefinitionsByType":
		edges := []any{}
		for range f.metaobjectDefinitions {
			edges = append(edges, map[string]any{"node": map[string]any{"id": "gid://shopify/MetaobjectDefinition/1", "type": "review", "name": "Review"}})
		}
		result = map[string]any{"metaobjectDefinitions": map[string]any{"edges": edges}}
	case "MetaobjectDefinitionCreate":
		f.metaobjectDefinitions++
		result = map[string]any{"metaobjectDefinitionCreate": map[string]any{
			"metaobjectDefinition": map[string]any{"id": "gid://shopify/MetaobjectDefinition/1", "type": "review", "name": "Review"},
			"userErrors":           []any{},
		}}
	case "MetafieldDefinitions":
		edges := []any{}
		for range f.listDefinitions {
			edges = append(edges, map[string]any{"node": map[string]any{"id": "gid://shopify/MetafieldDefinition/1", "name": "Bewertungen", "namespace": "custom", "key": "bewertungen"}})
		}
		result = map[string]any{"metafieldDefinitions": map[string]any{"edges": edges, "pageInfo": map[string]any{"hasNextPage": false}}}
	case "MetafieldDefinitionCreate":
		f.listDefinitions++
		result = map[string]any{"metafieldDefinitionCreate": map[string]any{
			"createdDefinition": map[string]any{"id": "gid://shopify/MetafieldDefinition/1", "name": "Bewertungen", "namespace": "custom", "key": "bewertungen"},
			"userErrors":        []any{},
		}}
	case "MetaobjectCreate":
		result = map[string]any{"metaobjectCreate": map[string]any{
			"metaobject": map[string]any{"id": "gid://shopify/Metaobject/99", "handle": v["metaobject"].(map[string]any)["handle"]},
			"userErrors": []any{},
		}}
	case "ShopMetafield":
		var metafield any
		if f.listValue != nil {
			metafield = map[string]any{"id": "gid://shopify/Metafield/5", "namespace": "custom", "key": "bewertungen", "value": f.listValue, "type": "list.metaobject_reference"}
		}
		result = map[string]any{"shop": map[string]any{"id": "gid://shopify/Shop/1", "metafield": metafield}}
	case "MetafieldsSet":
		metafield := v["metafields"].([]map[string]any)[0]
		f.listValue = metafield["value"]
		result = map[string]any{"metafieldsSet": map[string]any{"metafields": []any{}, "userErrors": []any{}}}
	}
	return map[string]any{"data": result}, nil
}

func withFakeShop(t *testing.T, shop *fakeShop) context.Context {
	t.Helper()
	shop.variables = map[string]map[string]any{}
	ctx := app.ContextWithCache(context.Background())
	t.Cleanup(app.SetCacheValue(ctx, []any{"Shopify", "GraphQLQuery"}, helpers.GraphQLQueryFunc(shop.query)))
	return ctx
}

func TestInput_Validate(t *testing.T) {
	tests := []struct {
		Title   string
		Body    string
		Rating  int
		IsError bool
	}{
		{"Numeric ids", `{"product_id": 123, "name": "Eva", "rating": 5, "comment": "Gut"}`, 5, false},
		{"String rating", `{"product_id": "gid://shopify/Product/1", "name": "Eva", "rating": "3", "comment": "Gut"}`, 3, false},
		{"Missing comment", `{"product_id": 1, "name": "Eva", "rating": 4}`, 0, true},
		{"Missing product", `{"name": "Eva", "rating": 4, "comment": "Gut"}`, 0, true},
		{"Rating too high", `{"product_id": 1, "name": "Eva", "rating": 6, "comment": "Gut"}`, 0, true},
		{"Rating zero", `{"product_id": 1, "name": "Eva", "rating": 0, "comment": "Gut"}`, 0, true},
		{"Rating not a number", `{"product_id": 1, "name": "Eva", "rating": "gut", "comment": "Gut"}`, 0, true},
	}
	for _, test := range tests {
		t.Run(test.Title, func(t *testing.T) {
			var input Input
			if err := json.Unmarshal([]byte(test.Body), &input); err != nil {
				t.Fatalf("Unexpected decode error: %v", err)
			}
			rating, err := input.Validate()
			if test.IsError {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("Expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil || rating != test.Rating {
				t.Fatalf("Expected rating %d, got %d (%v)", test.Rating, rating, err)
			}
		})
	}
}

func TestCreate_FirstReview(t *testing.T) {
	defer func(f func() time.Time) { now = f }(now)
	now = func() time.Time { return time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC) }

	shop := &fakeShop{}
	ctx := withFakeShop(t, shop)
	created, err := Create(ctx, adminapi.NewClient(testConfig), Input{ProductId: "42", Name: "Eva", Rating: "5", Comment: "Sehr bequem"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !created.Success || created.ReviewId != "gid://shopify/Metaobject/99" || created.Message != CreatedMessage {
		t.Fatalf("Unexpected result: %+v", created)
	}
	expected := "MetaobjectDefinitionsByType,MetaobjectDefinitionCreate,MetafieldDefinitions,MetafieldDefinitionCreate,MetaobjectCreate,ShopMetafield,MetafieldsSet"
	if strings.Join(shop.calls, ",") != expected {
		t.Fatalf("Unexpected calls: %v", shop.calls)
	}

	metaobject := shop.variables["MetaobjectCreate"]["metaobject"].(map[string]any)
	if !strings.HasPrefix(metaobject["handle"].(string), "review-1741082400000-") || len(metaobject["handle"].(string)) != len("review-1741082400000-")+9 {
		t.Fatalf("Unexpected handle %v", metaobject["handle"])
	}
	fields := map[string]any{}
	for _, field := range metaobject["fields"].([]map[string]any) {
		fields[field["key"].(string)] = field["value"]
	}
	if fields["produkt"] != "gid://shopify/Product/42" || fields["published"] != "false" || fields["verifizierter_kaeufer"] != "false" || fields["datum"] != "2025-03-04" || fields["rating"] != "5" {
		t.Fatalf("Unexpected fields: %v", fields)
	}
	set := shop.variables["MetafieldsSet"]["metafields"].([]map[string]any)[0]
	if set["ownerId"] != "gid://shopify/Shop/1" || set["value"] != `["gid://shopify/Metaobject/99"]` || set["type"] != "list.metaobject_reference" {
		t.Fatalf("Unexpected metafieldsSet input: %v", set)
	}
}

func TestCreate_AppendsToExistingList(t *testing.T) {
	shop := &fakeShop{metaobjectDefinitions: 1, listDefinitions: 1, listValue: `["gid://shopify/Metaobject/1"]`}
	ctx := withFakeShop(t, shop)
	if _, err := Create(ctx, adminapi.NewClient(testConfig), Input{ProductId: "1", Name: "Eva", Rating: "4", Comment: "Ok"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, call := range shop.calls {
		if strings.HasSuffix(call, "DefinitionCreate") {
			t.Fatalf("Existing definitions must not be recreated: %v", shop.calls)
		}
	}
	ids, err := List(ctx, adminapi.NewClient(testConfig))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(ids) != 2 || ids[0] != "gid://shopify/Metaobject/1" || ids[1] != "gid://shopify/Metaobject/99" {
		t.Fatalf("Unexpected list: %v", ids)
	}
}

func TestCreate_InvalidInputMakesNoCalls(t *testing.T) {
	shop := &fakeShop{}
	ctx := withFakeShop(t, shop)
	_, err := Create(ctx, adminapi.NewClient(testConfig), Input{ProductId: "1", Name: "Eva", Rating: "9", Comment: "Ok"})
	if !errors.Is(err, ErrInvalidInput) || len(shop.calls) != 0 {
		t.Fatalf("Expected ErrInvalidInput without calls, got %v and %v", err, shop.calls)
	}
}

func TestList(t *testing.T) {
	tests := []struct {
		Title    string
		Value    any
		Expected int
		IsError  bool
	}{
		{"No metafield", nil, 0, false},
		{"Empty value", "", 0, false},
		{"Two reviews", `["gid://shopify/Metaobject/1","gid://shopify/Metaobject/2"]`, 2, false},
		{"Broken value", `not json`, 0, true},
	}
	for _, test := range tests {
		t.Run(test.Title, func(t *testing.T) {
			ctx := withFakeShop(t, &fakeShop{listValue: test.Value})
			ids, err := List(ctx, adminapi.NewClient(testConfig))
			if test.IsError {
				if err == nil {
					t.Fatalf("Expected error")
				}
				return
			}
			if err != nil || len(ids) != test.Expected || ids == nil {
				t.Fatalf("Expected %d ids, got %v (%v)", test.Expected, ids, err)
			}
		})
	}
}
