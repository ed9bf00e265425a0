package types

import (
	"strconv"
	"strings"
	"time"
)

type RESTOption struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

type RESTImage struct {
	Id  int64   `json:"id"`
	Src string  `json:"src"`
	Alt *string `json:"alt"`
}

type RESTVariant struct {
	Id                  int64   `json:"id"`
	ProductId           int64   `json:"product_id"`
	Title               string  `json:"title"`
	Sku                 string  `json:"sku"`
	Barcode             *string `json:"barcode"`
	Price               string  `json:"price"`
	CompareAtPrice      *string `json:"compare_at_price"`
	InventoryManagement *string `json:"inventory_management"`
	InventoryPolicy     string  `json:"inventory_policy"`
	InventoryQuantity   int     `json:"inventory_quantity"`
	InventoryItemId     int64   `json:"inventory_item_id"`
	Option1             *string `json:"option1"`
	Option2             *string `json:"option2"`
	Option3             *string `json:"option3"`
	Weight              float64 `json:"weight"`
	WeightUnit          string  `json:"weight_unit"`
	ImageId             *int64  `json:"image_id"`
}

type RESTProduct struct {
	Id          int64         `json:"id"`
	Title       string        `json:"title"`
	Handle      string        `json:"handle"`
	BodyHtml    *string       `json:"body_html"`
	Vendor      string        `json:"vendor"`
	ProductType string        `json:"product_type"`
	Status      string        `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	Tags        string        `json:"tags"`
	Options     []RESTOption  `json:"options"`
	Variants    []RESTVariant `json:"variants"`
	Images      []RESTImage   `json:"images"`
}

type RESTProducts struct {
	Products []RESTProduct `json:"products"`
}

var restWeightUnits = map[string]string{
	"kg": "KILOGRAMS",
	"g":  "GRAMS",
	"lb": "POUNDS",
	"oz": "OUNCES",
}

func restGid(resourceType string, id int64) string {
	return "gid://shopify/" + resourceType + "/" + strconv.FormatInt(id, 10)
}

// ToProduct converts the REST representation into the flattened GraphQL-shaped record.
func (p *RESTProduct) ToProduct() Product {
	product := Product{
		Id:          restGid("Product", p.Id),
		Title:       p.Title,
		Handle:      p.Handle,
		Vendor:      p.Vendor,
		ProductType: p.ProductType,
		Status:      strings.ToUpper(p.Status),
		CreatedAt:   p.CreatedAt,
		Options:     make([]ProductOption, len(p.Options)),
		Images:      make([]Image, len(p.Images)),
		Variants:    make([]Variant, len(p.Variants)),
		Metafields:  []Metafield{},
	}
	if p.BodyHtml != nil {
		product.DescriptionHtml = *p.BodyHtml
	}
	for _, tag := range strings.Split(p.Tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			product.Tags = append(product.Tags, tag)
		}
	}
	for i, option := range p.Options {
		product.Options[i] = ProductOption{Name: option.Name, Position: option.Position}
	}
	images := make(map[int64]Image, len(p.Images))
	for i, image := range p.Images {
		id := restGid("ProductImage", image.Id)
		product.Images[i] = Image{Id: &id, Url: image.Src, AltText: image.Alt}
		images[image.Id] = product.Images[i]
	}
	for i := range p.Variants {
		product.Variants[i] = p.Variants[i].toVariant(p.Options, images)
	}
	return product
}

func (v *RESTVariant) toVariant(options []RESTOption, images map[int64]Image) Variant {
	tracked := v.InventoryManagement != nil && *v.InventoryManagement != ""
	quantity := v.InventoryQuantity
	itemId := restGid("InventoryItem", v.InventoryItemId)
	variant := Variant{
		Id:                restGid("ProductVariant", v.Id),
		Title:             v.Title,
		Sku:               v.Sku,
		Barcode:           v.Barcode,
		Price:             v.Price,
		CompareAtPrice:    v.CompareAtPrice,
		AvailableForSale:  !tracked || quantity > 0 || v.InventoryPolicy == "continue",
		InventoryQuantity: &quantity,
		InventoryPolicy:   strings.ToUpper(v.InventoryPolicy),
		InventoryItem: &InventoryItem{
			Id:      &itemId,
			Tracked: tracked,
		},
		SelectedOptions: []SelectedOption{},
		Metafields:      []Metafield{},
	}
	if unit, ok := restWeightUnits[v.WeightUnit]; ok {
		variant.InventoryItem.Measurement = &Measurement{Weight: &Weight{Unit: unit, Value: v.Weight}}
	}
	if v.ImageId != nil {
		if image, ok := images[*v.ImageId]; ok {
			variant.Image = &image
		}
	}
	values := []*string{v.Option1, v.Option2, v.Option3}
	for _, option := range options {
		if option.Position < 1 || option.Position > len(values) || values[option.Position-1] == nil {
			continue
		}
		variant.SelectedOptions = append(variant.SelectedOptions, SelectedOption{
			Name:  option.Name,
			Value: *values[option.Position-1],
		})
	}
	return variant
}

type RESTVariantEnvelope struct {
	Variant RESTVariant `json:"variant"`
}
