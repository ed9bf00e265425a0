// Package duplicates finds active products sharing a variant SKU.
package duplicates

import (
	"encoding/json"
	"errors"

	"storefeed/go/shopify"
	"storefeed/go/shopify/adminapi/types"
)

// Fields is the REST field selection the report needs.
var Fields = []string{"id", "title", "variants", "created_at", "status"}

var ErrNoProducts = errors.New("no products found")

type Report struct {
	Count              int           `json:"count"`
	ProductIdsToDelete []json.Number `json:"productIdsToDelete"`
}

// Find marks, for every SKU carried by more than one active product, the
// oldest of those products. SKUs are visited in catalog order and ties keep
// the product seen first.
func Find(products []types.Product) (Report, error) {
	if len(products) == 0 {
		return Report{}, ErrNoProducts
	}

	var skus []string
	bySku := map[string][]*types.Product{}
	for p := range products {
		product := &products[p]
		if !product.IsActive() {
			continue
		}
		for _, variant := range product.Variants {
			if variant.Sku == "" {
				continue
			}
			owners, seen := bySku[variant.Sku]
			if !seen {
				skus = append(skus, variant.Sku)
			}
			if len(owners) > 0 && owners[len(owners)-1].Id == product.Id {
				continue
			}
			bySku[variant.Sku] = append(owners, product)
		}
	}

	report := Report{ProductIdsToDelete: []json.Number{}}
	marked := map[string]bool{}
	for _, sku := range skus {
		owners := bySku[sku]
		if len(owners) < 2 {
			continue
		}
		oldest := owners[0]
		for _, owner := range owners[1:] {
			if owner.CreatedAt.Before(oldest.CreatedAt) {
				oldest = owner
			}
		}
		if marked[oldest.Id] {
			continue
		}
		marked[oldest.Id] = true
		report.ProductIdsToDelete = append(report.ProductIdsToDelete, json.Number(shopify.NumericId(oldest.Id)))
	}
	report.Count = len(report.ProductIdsToDelete)
	return report, nil
}
