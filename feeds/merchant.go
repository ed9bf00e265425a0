package feeds

import (
	"encoding/json"
	"encoding/xml"
	"fmt"

	"storefeed/go/shopify"
	"storefeed/go/shopify/adminapi/types"
)

type MerchantPrice struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// MerchantItem follows the Content API product resource.
type MerchantItem struct {
	OfferId               string        `json:"offerId"`
	Title                 string        `json:"title"`
	Description           string        `json:"description"`
	Link                  string        `json:"link"`
	ImageLink             string        `json:"imageLink"`
	Price                 MerchantPrice `json:"price"`
	Availability          string        `json:"availability"`
	Condition             string        `json:"condition"`
	Brand                 string        `json:"brand"`
	GoogleProductCategory string        `json:"googleProductCategory"`
	ItemGroupId           string        `json:"itemGroupId"`
	Gtin                  string        `json:"gtin,omitempty"`
	Size                  string        `json:"size,omitempty"`
	Color                 string        `json:"color,omitempty"`
	Pattern               string        `json:"pattern,omitempty"`
	Material              string        `json:"material,omitempty"`
}

func (o Options) category(productType string) string {
	if category, ok := o.Categories[productType]; ok {
		return category
	}
	return o.FallbackCategory
}

// MerchantItems includes every product; inactive ones are marked out of stock.
func MerchantItems(products []types.Product, opts Options) []MerchantItem {
	items := []MerchantItem{}
	for p := range products {
		product := &products[p]
		description := stripHtml(product.DescriptionHtml)
		if description == "" {
			description = "Keine Beschreibung verfügbar"
		}
		imageLink := firstImage(product)
		if imageLink == "" {
			imageLink = opts.PlaceholderImage
		}
		brand := product.Vendor
		if brand == "" {
			brand = "Unbekannt"
		}
		for v := range product.Variants {
			variant := &product.Variants[v]
			availability := "outOfStock"
			if product.IsActive() && variant.InventoryQuantity != nil && *variant.InventoryQuantity > 0 {
				availability = "inStock"
			}
			item := MerchantItem{
				OfferId:               shopify.NumericId(variant.Id),
				Title:                 variantTitle(product, variant),
				Description:           description,
				Link:                  opts.variantLink(product, variant),
				ImageLink:             imageLink,
				Price:                 MerchantPrice{Value: variant.Price, Currency: opts.Currency},
				Availability:          availability,
				Condition:             "new",
				Brand:                 brand,
				GoogleProductCategory: opts.category(product.ProductType),
				ItemGroupId:           shopify.NumericId(product.Id),
				Size:                  optionValue(variant, "Size", "Größe"),
				Color:                 optionValue(variant, "Color", "Farbe"),
				Material:              optionValue(variant, "Material"),
			}
			if variant.Barcode != nil {
				item.Gtin = *variant.Barcode
			}
			if product.ProductType == "Teppiche" {
				item.Pattern = optionValue(variant, "Muster", "Pattern")
			}
			items = append(items, item)
		}
	}
	return items
}

func MerchantJSON(products []types.Product, opts Options) ([]byte, error) {
	body, err := json.Marshal(MerchantItems(products, opts))
	if err != nil {
		return nil, fmt.Errorf("error marshalling merchant items:\n>>> %w", err)
	}
	return body, nil
}

type merchantRSS struct {
	XMLName   xml.Name        `xml:"rss"`
	Namespace string          `xml:"xmlns:g,attr"`
	Version   string          `xml:"version,attr"`
	Channel   merchantChannel `xml:"channel"`
}

type merchantChannel struct {
	Items []merchantXMLItem `xml:"item"`
}

type merchantXMLItem struct {
	Id                    string `xml:"g:id"`
	ItemGroupId           string `xml:"g:item_group_id"`
	Title                 string `xml:"title"`
	Description           string `xml:"description"`
	Price                 string `xml:"g:price"`
	Availability          string `xml:"g:availability"`
	Condition             string `xml:"g:condition"`
	ImageLink             string `xml:"g:image_link"`
	Link                  string `xml:"link"`
	Brand                 string `xml:"g:brand"`
	GoogleProductCategory string `xml:"g:google_product_category"`
	Gtin                  string `xml:"g:gtin,omitempty"`
	Size                  string `xml:"g:size,omitempty"`
	Color                 string `xml:"g:color,omitempty"`
	Pattern               string `xml:"g:pattern,omitempty"`
	Material              string `xml:"g:material,omitempty"`
}

var merchantXMLAvailability = map[string]string{
	"inStock":    "in stock",
	"outOfStock": "out of stock",
}

func MerchantXML(products []types.Product, opts Options) ([]byte, error) {
	items := MerchantItems(products, opts)
	feed := merchantRSS{
		Namespace: googleNamespace,
		Version:   "2.0",
		Channel:   merchantChannel{Items: make([]merchantXMLItem, len(items))},
	}
	for i, item := range items {
		feed.Channel.Items[i] = merchantXMLItem{
			Id:                    item.OfferId,
			ItemGroupId:           item.ItemGroupId,
			Title:                 item.Title,
			Description:           item.Description,
			Price:                 item.Price.Value + " " + item.Price.Currency,
			Availability:          merchantXMLAvailability[item.Availability],
			Condition:             item.Condition,
			ImageLink:             item.ImageLink,
			Link:                  item.Link,
			Brand:                 item.Brand,
			GoogleProductCategory: item.GoogleProductCategory,
			Gtin:                  item.Gtin,
			Size:                  item.Size,
			Color:                 item.Color,
			Pattern:               item.Pattern,
			Material:              item.Material,
		}
	}
	return marshalXML(feed)
}
