package feeds

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"storefeed/go/shopify"
	"storefeed/go/shopify/adminapi/types"
)

const googleNamespace = "http://base.google.com/ns/1.0"

type googleRSS struct {
	XMLName   xml.Name      `xml:"rss"`
	Version   string        `xml:"version,attr"`
	Namespace string        `xml:"xmlns:g,attr"`
	Channel   googleChannel `xml:"channel"`
}

type googleChannel struct {
	Title       string       `xml:"title"`
	Link        string       `xml:"link"`
	Description string       `xml:"description"`
	Items       []GoogleItem `xml:"item"`
}

type GoogleItem struct {
	Id                   string   `xml:"g:id"`
	Title                string   `xml:"g:title"`
	Description          string   `xml:"g:description"`
	Link                 string   `xml:"g:link"`
	ImageLink            string   `xml:"g:image_link"`
	Availability         string   `xml:"g:availability"`
	Price                string   `xml:"g:price"`
	Brand                string   `xml:"g:brand"`
	Condition            string   `xml:"g:condition"`
	ItemGroupId          string   `xml:"g:item_group_id"`
	SalePrice            string   `xml:"g:sale_price,omitempty"`
	Gtin                 string   `xml:"g:gtin,omitempty"`
	IdentifierExists     string   `xml:"g:identifier_exists,omitempty"`
	ProductType          string   `xml:"g:product_type,omitempty"`
	Color                string   `xml:"g:color,omitempty"`
	Size                 string   `xml:"g:size,omitempty"`
	Material             string   `xml:"g:material,omitempty"`
	ShippingWeight       string   `xml:"g:shipping_weight,omitempty"`
	AdditionalImageLinks []string `xml:"g:additional_image_link"`
}

func googleAvailability(product *types.Product, variant *types.Variant) string {
	if !product.IsActive() {
		return "out_of_stock"
	}
	if !variant.Tracked() {
		return "in_stock"
	}
	if variant.InventoryQuantity != nil && *variant.InventoryQuantity > 0 {
		return "in_stock"
	}
	return "out_of_stock"
}

func GoogleItems(products []types.Product, opts Options) []GoogleItem {
	items := []GoogleItem{}
	for p := range products {
		product := &products[p]
		if !product.IsActive() {
			continue
		}
		productId := shopify.NumericId(product.Id)
		for v := range product.Variants {
			variant := &product.Variants[v]
			item := GoogleItem{
				Id:           variant.Sku,
				Title:        variantTitle(product, variant),
				Description:  stripHtml(product.DescriptionHtml),
				Link:         opts.productLink(product),
				ImageLink:    firstImage(product),
				Availability: googleAvailability(product, variant),
				Price:        formatPrice(variant.PriceAmount(), opts.Currency),
				Brand:        product.Vendor,
				Condition:    "new",
				ItemGroupId:  productId,
				ProductType:  product.ProductType,
				Color:        optionValue(variant, "Color", "Farbe"),
				Size:         optionValue(variant, "Size", "Größe"),
				Material:     optionValue(variant, "Material"),
			}
			if item.Id == "" {
				item.Id = fmt.Sprintf("shopify_%s_%s", productId, shopify.NumericId(variant.Id))
			}
			if compareAt := variant.CompareAtAmount(); compareAt > variant.PriceAmount() {
				item.SalePrice = item.Price
				item.Price = formatPrice(compareAt, opts.Currency)
			}
			if variant.Barcode != nil && *variant.Barcode != "" {
				item.Gtin = *variant.Barcode
			} else {
				item.IdentifierExists = "false"
			}
			item.ShippingWeight = shippingWeight(variant)
			for _, image := range product.Images[min(1, len(product.Images)):] {
				item.AdditionalImageLinks = append(item.AdditionalImageLinks, image.Url)
			}
			items = append(items, item)
		}
	}
	return items
}

// GoogleShoppingXML renders an RSS 2.0 feed with one item per variant of every active product.
func GoogleShoppingXML(products []types.Product, opts Options) ([]byte, error) {
	feed := googleRSS{
		Version:   "2.0",
		Namespace: googleNamespace,
		Channel: googleChannel{
			Title:       opts.ChannelTitle,
			Link:        opts.ShopDomain,
			Description: opts.ChannelDescription,
			Items:       GoogleItems(products, opts),
		},
	}
	return marshalXML(feed)
}

func marshalXML(v any) ([]byte, error) {
	body, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error marshalling feed XML:\n>>> %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

// ErrorXML is the body served by XML routes when the feed cannot be built.
func ErrorXML(err error) []byte {
	var buffer bytes.Buffer
	buffer.WriteString(`<?xml version="1.0"?><error>`)
	xml.EscapeText(&buffer, []byte(err.Error()))
	buffer.WriteString(`</error>`)
	return buffer.Bytes()
}
