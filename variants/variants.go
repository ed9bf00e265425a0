// Package variants creates throwaway product variants that carry a price
// computed by the storefront configurator.
package variants

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"storefeed/go/helpers"
	"storefeed/go/logging"
	"storefeed/go/shopify"
	"storefeed/go/shopify/adminapi"
	"storefeed/go/shopify/adminapi/types"
)

var ErrMissingItems = errors.New("missing items in payload")

var now = time.Now

type Item struct {
	// Id is the product the variant is added to.
	Id helpers.FlexString `json:"id"`
	// Price in cents.
	Price      float64        `json:"price"`
	Properties map[string]any `json:"properties"`
}

type Request struct {
	Items []Item `json:"items"`
}

// First returns the only item the checkout flow sends.
func (r Request) First() (Item, error) {
	if len(r.Items) == 0 || r.Items[0].Id == "" {
		return Item{}, ErrMissingItems
	}
	return r.Items[0], nil
}

type Created struct {
	Ok         bool           `json:"ok"`
	VariantId  int64          `json:"variantId"`
	Price      float64        `json:"price"`
	Properties map[string]any `json:"properties"`
}

// FormatPrice turns cents into the decimal string the REST API expects.
func FormatPrice(cents float64) string {
	return strconv.FormatFloat(cents/100, 'f', 2, 64)
}

func CreateDynamic(ctx context.Context, client *adminapi.Client, item Item) (*Created, error) {
	if item.Id == "" {
		return nil, ErrMissingItems
	}
	properties := item.Properties
	if properties == nil {
		properties = map[string]any{}
	}
	propertiesJson, err := json.Marshal(properties)
	if err != nil {
		return nil, fmt.Errorf("error encoding variant properties:\n>>> %w", err)
	}

	title := optionTitle()
	productId := shopify.NumericId(string(item.Id))
	response, err := client.REST(ctx, http.MethodPost, "products/"+productId+"/variants.json", nil, map[string]any{
		"variant": map[string]any{
			"option1":              title,
			"price":                FormatPrice(item.Price),
			"sku":                  "srv_" + title,
			"inventory_management": nil,
			"inventory_policy":     "continue",
			"fulfillment_service":  "manual",
			"requires_shipping":    false,
			"metafields": []map[string]any{
				{"namespace": "custom", "key": "dynamic", "value": "true", "type": "boolean"},
				{"namespace": "custom", "key": "json_properties", "value": string(propertiesJson), "type": "single_line_text_field"},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error creating dynamic variant on product %s:\n>>> %w", productId, err)
	}
	var created types.RESTVariantEnvelope
	if err := response.Decode(&created); err != nil {
		return nil, err
	}
	variant := created.Variant
	if variant.Id == 0 {
		return nil, fmt.Errorf("variant missing from Shopify response: %s", response.Body)
	}

	// creation ignores inventory_management, it has to be cleared again
	variantId := strconv.FormatInt(variant.Id, 10)
	if _, err := client.REST(ctx, http.MethodPut, "variants/"+variantId+".json", nil, map[string]any{
		"variant": map[string]any{
			"id":                   variant.Id,
			"inventory_management": nil,
			"inventory_policy":     "continue",
		},
	}); err != nil {
		return nil, fmt.Errorf("error updating inventory settings of variant %s:\n>>> %w", variantId, err)
	}

	logger := logging.NewLogger("variants")
	locationId := client.Config().LocationId
	if locationId == 0 {
		logger.Warn().Str("variantId", variantId).Msg("no location configured, inventory item not connected")
	} else if _, err := client.REST(ctx, http.MethodPost, "inventory_levels/connect.json", nil, map[string]any{
		"location_id":       locationId,
		"inventory_item_id": variant.InventoryItemId,
	}); err != nil {
		return nil, fmt.Errorf("error connecting inventory item %d to location %d:\n>>> %w", variant.InventoryItemId, locationId, err)
	}

	logger.Info().Str("productId", productId).Str("variantId", variantId).Str("price", FormatPrice(item.Price)).Msg("dynamic variant created")
	return &Created{Ok: true, VariantId: variant.Id, Price: item.Price, Properties: properties}, nil
}

// optionTitle returns dynamic_<unix ms>_<random base36>, unique per variant.
func optionTitle() string {
	return "dynamic_" + strconv.FormatInt(now().UnixMilli(), 10) + "_" + strconv.FormatUint(rand.Uint64(), 36)
}
