// Package discounts resolves a discount code into the flat description the
// storefront cart widget consumes.
package discounts

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"storefeed/go/shopify"
	"storefeed/go/shopify/adminapi"
	"storefeed/go/shopify/adminapi/types"
)

var ErrNotFound = errors.New("discount code not found")

const (
	TypePercentage   = "percentage"
	TypeFixedAmount  = "fixed_amount"
	TypeFreeShipping = "free_shipping"

	AppliesToAll         = "all"
	AppliesToProducts    = "specific_products"
	AppliesToCollections = "specific_collections"
)

type Info struct {
	Code               string     `json:"code"`
	Title              string     `json:"title"`
	Status             string     `json:"status"`
	StartsAt           *time.Time `json:"startsAt"`
	EndsAt             *time.Time `json:"endsAt"`
	Valid              bool       `json:"valid"`
	UsageLimit         *int       `json:"usageLimit"`
	Type               string     `json:"type,omitempty"`
	Value              *float64   `json:"value,omitempty"`
	MinimumQuantity    string     `json:"minimumQuantity,omitempty"`
	MinimumSubtotal    *float64   `json:"minimumSubtotal,omitempty"`
	AppliesTo          string     `json:"appliesTo"`
	ProductIds         []string   `json:"productIds,omitempty"`
	ProductHandles     []string   `json:"productHandles,omitempty"`
	ProductTitles      []string   `json:"productTitles,omitempty"`
	CollectionIds      []string   `json:"collectionIds,omitempty"`
	CollectionHandles  []string   `json:"collectionHandles,omitempty"`
	RequiresProductIds []string   `json:"requiresProductIds,omitempty"`
}

func Lookup(ctx context.Context, client *adminapi.Client, code string) (*Info, error) {
	nodes, err := client.DiscountCodeNodes(ctx, "code:"+code)
	if err != nil {
		return nil, fmt.Errorf("error looking up discount code %q:\n>>> %w", code, err)
	}
	if nodes.Length() == 0 {
		return nil, ErrNotFound
	}
	return Describe(code, nodes.Get(0).CodeDiscount), nil
}

// Describe flattens a code discount. Values are in hundredths: percentages
// as basis points of a whole, amounts as cents.
func Describe(code string, discount types.DiscountCode) *Info {
	info := &Info{
		Code:       code,
		Title:      discount.Title,
		Status:     discount.Status,
		StartsAt:   discount.StartsAt,
		EndsAt:     discount.EndsAt,
		Valid:      discount.Status == "ACTIVE",
		UsageLimit: discount.UsageLimit,
		AppliesTo:  AppliesToAll,
	}

	switch {
	case discount.CustomerGets != nil && discount.CustomerGets.Value != nil:
		value := discount.CustomerGets.Value
		if value.Percentage != nil {
			info.Type = TypePercentage
			info.Value = hundredths(*value.Percentage)
		} else if value.Amount != nil {
			info.Type = TypeFixedAmount
			info.Value = hundredths(value.Amount.Amount())
		}
	case discount.Typename == "DiscountCodeFreeShipping":
		info.Type = TypeFreeShipping
		info.Value = hundredths(0)
	}

	if minimum := discount.MinimumRequirement; minimum != nil {
		if minimum.GreaterThanOrEqualToQuantity != nil {
			info.MinimumQuantity = *minimum.GreaterThanOrEqualToQuantity
		}
		if minimum.GreaterThanOrEqualToSubtotal != nil {
			info.MinimumSubtotal = hundredths(minimum.GreaterThanOrEqualToSubtotal.Amount())
		}
	}

	if discount.CustomerGets != nil && discount.CustomerGets.Items != nil {
		items := discount.CustomerGets.Items
		switch {
		case items.AllItems != nil && *items.AllItems:
		case items.Products != nil:
			info.AppliesTo = AppliesToProducts
			info.ProductIds, info.ProductHandles, info.ProductTitles = []string{}, []string{}, []string{}
			for _, product := range items.Products.Iter {
				info.ProductIds = append(info.ProductIds, shopify.NumericId(product.Id))
				info.ProductHandles = append(info.ProductHandles, product.Handle)
				info.ProductTitles = append(info.ProductTitles, product.Title)
			}
		case items.Collections != nil:
			info.AppliesTo = AppliesToCollections
			info.CollectionIds, info.CollectionHandles = []string{}, []string{}
			for _, collection := range items.Collections.Iter {
				info.CollectionIds = append(info.CollectionIds, shopify.NumericId(collection.Id))
				info.CollectionHandles = append(info.CollectionHandles, collection.Handle)
			}
		}
	}

	if buys := discount.CustomerBuys; buys != nil && buys.Items != nil && buys.Items.Products != nil {
		for _, product := range buys.Items.Products.Iter {
			info.RequiresProductIds = append(info.RequiresProductIds, shopify.NumericId(product.Id))
		}
	}
	return info
}

// hundredths scales by 100 and keeps four decimals, so 0.15 gives 15 and not 15.000000000000002.
func hundredths(v float64) *float64 {
	scaled := math.Round(v*1e6) / 1e4
	return &scaled
}
