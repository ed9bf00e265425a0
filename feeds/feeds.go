// Package feeds renders the fetched catalog into the formats expected by
// shopping aggregators and marketplaces.
package feeds

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"storefeed/go/helpers"
	"storefeed/go/shopify"
	"storefeed/go/shopify/adminapi/types"
)

type Options struct {
	// ShopDomain is the public storefront, e.g. "https://erides.de".
	ShopDomain         string
	Currency           string
	ChannelTitle       string
	ChannelDescription string
	VATRate            float64
	PlaceholderImage   string
	// Categories maps a product type to a Google product category id.
	Categories       map[string]string
	FallbackCategory string
}

var DefaultCategories = map[string]string{
	"Tische":              "6362",
	"Sitzmöbel":           "6356",
	"Seniorenmöbel":       "6356",
	"Möbel":               "635",
	"Lampen und Leuchten": "419",
	"Betten":              "291",
	"Teppiche":            "696",
}

func DefaultOptions(shopDomain string) Options {
	return Options{
		ShopDomain:         strings.TrimSuffix(shopDomain, "/"),
		Currency:           "EUR",
		ChannelTitle:       "Google Shopping Feed",
		ChannelDescription: "Google Merchant Center Product Feed",
		VATRate:            0.19,
		PlaceholderImage:   "https://via.placeholder.com/150",
		Categories:         DefaultCategories,
		FallbackCategory:   "635",
	}
}

var (
	htmlTags   = regexp.MustCompile(`<[^>]*>`)
	whitespace = regexp.MustCompile(`\s+`)
)

func stripHtml(html string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(htmlTags.ReplaceAllString(html, ""), " "))
}

func formatPrice(amount float64, currency string) string {
	return strconv.FormatFloat(amount, 'f', 2, 64) + " " + currency
}

// formatNumber prints the shortest representation, 99.90 becomes "99.9".
func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func (o Options) productLink(product *types.Product) string {
	return o.ShopDomain + "/products/" + product.Handle
}

func (o Options) variantLink(product *types.Product, variant *types.Variant) string {
	return o.productLink(product) + "?variant=" + shopify.NumericId(variant.Id)
}

func variantTitle(product *types.Product, variant *types.Variant) string {
	if variant.IsDefault() {
		return product.Title
	}
	return product.Title + " - " + variant.Title
}

// optionValue finds the selected option whose name matches one of names,
// ignoring case and accents.
func optionValue(variant *types.Variant, names ...string) string {
	for _, option := range variant.SelectedOptions {
		found, err := helpers.StringInSlice(option.Name, names)
		if err == nil && found {
			return option.Value
		}
	}
	return ""
}

func firstImage(product *types.Product) string {
	if len(product.Images) > 0 {
		return product.Images[0].Url
	}
	return ""
}

func variantImage(product *types.Product, variant *types.Variant) string {
	if variant.Image != nil && variant.Image.Url != "" {
		return variant.Image.Url
	}
	return firstImage(product)
}

var weightUnits = map[string]string{
	"KILOGRAMS": "kg",
	"GRAMS":     "g",
	"POUNDS":    "lb",
	"OUNCES":    "oz",
}

func shippingWeight(variant *types.Variant) string {
	if variant.InventoryItem == nil || variant.InventoryItem.Measurement == nil || variant.InventoryItem.Measurement.Weight == nil {
		return ""
	}
	weight := variant.InventoryItem.Measurement.Weight
	if weight.Value <= 0 {
		return ""
	}
	unit, ok := weightUnits[weight.Unit]
	if !ok {
		unit = "kg"
	}
	return formatNumber(weight.Value) + " " + unit
}

// metafieldValues decodes JSON metafield values, keeping the raw text when it is not JSON.
func metafieldValues(metafields []types.Metafield, into map[string]any) map[string]any {
	if into == nil {
		into = map[string]any{}
	}
	for _, metafield := range metafields {
		var value any
		if err := json.Unmarshal([]byte(metafield.Value), &value); err != nil {
			value = metafield.Value
		}
		into[metafield.FullKey()] = value
	}
	return into
}

func stringifyValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return formatNumber(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
}

// deliveryTime turns a lieferzeit of n days into "n-1 - n+1 Werktage".
func deliveryTime(value any) string {
	var days int
	switch v := value.(type) {
	case float64:
		days = int(v)
	case string:
		digits := strings.TrimSpace(v)
		end := 0
		for end < len(digits) && digits[end] >= '0' && digits[end] <= '9' {
			end++
		}
		days, _ = strconv.Atoi(digits[:end])
	}
	if days <= 0 {
		return ""
	}
	return strconv.Itoa(days-1) + " - " + strconv.Itoa(days+1) + " Werktage"
}

// shippingCosts accepts money metafields ({"amount": "4.90", ...}) and plain values.
func shippingCosts(value any) string {
	if money, ok := value.(map[string]any); ok {
		return stringifyValue(money["amount"])
	}
	return stringifyValue(value)
}
