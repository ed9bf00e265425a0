package types

import (
	"strconv"
	"time"
)

type PageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

type Edges[T any] struct {
	Edges    []Edge[T] `json:"edges"`
	PageInfo *PageInfo `json:"pageInfo,omitempty"`
}

func (e *Edges[T]) Length() int {
	return len(e.Edges)
}
func (e *Edges[T]) Get(i int) *T {
	return &e.Edges[i].Node
}
func (e *Edges[T]) GetCursor(i int) *string {
	return e.Edges[i].Cursor
}
func (e *Edges[T]) Iter(yield func(int, *T) bool) {
	for i := range e.Edges {
		if !yield(i, &e.Edges[i].Node) {
			return
		}
	}
}

// Nodes copies the edge nodes into a slice, never nil.
func (e *Edges[T]) Nodes() []T {
	nodes := make([]T, len(e.Edges))
	for i, edge := range e.Edges {
		nodes[i] = edge.Node
	}
	return nodes
}

// NextCursor is the continuation token of the connection, nil on the last page.
func (e *Edges[T]) NextCursor() *string {
	if e.PageInfo == nil || !e.PageInfo.HasNextPage {
		return nil
	}
	if e.PageInfo.EndCursor != nil {
		return e.PageInfo.EndCursor
	}
	if n := len(e.Edges); n > 0 {
		return e.Edges[n-1].Cursor
	}
	return nil
}

type Edge[T any] struct {
	Cursor *string `json:"cursor,omitempty"`
	Node   T       `json:"node"`
}

type Identifiable struct {
	Id *string `json:"id"`
}

type Reference struct {
	Id     string `json:"id"`
	Title  string `json:"title,omitempty"`
	Handle string `json:"handle,omitempty"`
}

type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
	Code    *string  `json:"code,omitempty"`
}

type Money struct {
	AmountString string `json:"amount"`
	CurrencyCode string `json:"currencyCode,omitempty"`
}

func (m *Money) Amount() float64 {
	if m.AmountString != "" {
		amount, _ := strconv.ParseFloat(m.AmountString, 64)
		return amount
	}
	return 0.0
}

// CATALOG

type Metafield struct {
	Id        *string `json:"id,omitempty"`
	Namespace string  `json:"namespace"`
	Key       string  `json:"key"`
	Value     string  `json:"value"`
	Type      string  `json:"type,omitempty"`
}

func (m *Metafield) FullKey() string {
	return m.Namespace + "." + m.Key
}

type Image struct {
	Id      *string `json:"id,omitempty"`
	Url     string  `json:"url"`
	AltText *string `json:"altText"`
}

type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type ProductOption struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

type Weight struct {
	Unit  string  `json:"unit"`
	Value float64 `json:"value"`
}

type Measurement struct {
	Weight *Weight `json:"weight"`
}

type InventoryItem struct {
	Id          *string      `json:"id,omitempty"`
	Tracked     bool         `json:"tracked"`
	Measurement *Measurement `json:"measurement,omitempty"`
}

// Variant is a flattened variant: its metafields are already attached.
type Variant struct {
	Id                string           `json:"id"`
	Title             string           `json:"title"`
	Sku               string           `json:"sku"`
	Barcode           *string          `json:"barcode"`
	Price             string           `json:"price"`
	CompareAtPrice    *string          `json:"compareAtPrice"`
	AvailableForSale  bool             `json:"availableForSale"`
	InventoryQuantity *int             `json:"inventoryQuantity"`
	InventoryPolicy   string           `json:"inventoryPolicy,omitempty"`
	InventoryItem     *InventoryItem   `json:"inventoryItem,omitempty"`
	SelectedOptions   []SelectedOption `json:"selectedOptions"`
	Image             *Image           `json:"image"`
	Metafields        []Metafield      `json:"metafields,omitempty"`
}

func (v *Variant) PriceAmount() float64 {
	price, _ := strconv.ParseFloat(v.Price, 64)
	return price
}

func (v *Variant) CompareAtAmount() float64 {
	if v.CompareAtPrice == nil {
		return 0
	}
	price, _ := strconv.ParseFloat(*v.CompareAtPrice, 64)
	return price
}

func (v *Variant) Tracked() bool {
	return v.InventoryItem != nil && v.InventoryItem.Tracked
}

func (v *Variant) IsDefault() bool {
	return v.Title == "Default Title"
}

// Product is the flattened catalog record handed to the feed renderers.
type Product struct {
	Id              string          `json:"id"`
	Title           string          `json:"title"`
	Handle          string          `json:"handle"`
	Vendor          string          `json:"vendor"`
	ProductType     string          `json:"productType"`
	DescriptionHtml string          `json:"descriptionHtml"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	Tags            []string        `json:"tags,omitempty"`
	Options         []ProductOption `json:"options,omitempty"`
	Images          []Image         `json:"images,omitempty"`
	Variants        []Variant       `json:"variants,omitempty"`
	Metafields      []Metafield     `json:"metafields,omitempty"`
}

func (p *Product) IsActive() bool {
	return p.Status == "ACTIVE" || p.Status == "active"
}

// EnsureChildren replaces nil child slices with empty ones.
func (p *Product) EnsureChildren() {
	if p.Images == nil {
		p.Images = []Image{}
	}
	if p.Variants == nil {
		p.Variants = []Variant{}
	}
	if p.Metafields == nil {
		p.Metafields = []Metafield{}
	}
	for i := range p.Variants {
		if p.Variants[i].Metafields == nil {
			p.Variants[i].Metafields = []Metafield{}
		}
	}
}

// VariantNode is the paged GraphQL shape; the outer Metafields shadows Variant.Metafields.
type VariantNode struct {
	Variant
	Metafields *Edges[Metafield] `json:"metafields,omitempty"`
}

func (n *VariantNode) Flatten() Variant {
	variant := n.Variant
	variant.Metafields = []Metafield{}
	if n.Metafields != nil {
		variant.Metafields = n.Metafields.Nodes()
	}
	return variant
}

// ProductNode is the paged GraphQL shape with nested connections.
type ProductNode struct {
	Product
	Images     *Edges[Image]       `json:"images,omitempty"`
	Variants   *Edges[VariantNode] `json:"variants,omitempty"`
	Metafields *Edges[Metafield]   `json:"metafields,omitempty"`
}

func (n *ProductNode) Flatten() Product {
	product := n.Product
	product.Images, product.Variants, product.Metafields = nil, nil, nil
	if n.Images != nil {
		product.Images = n.Images.Nodes()
	}
	if n.Variants != nil {
		product.Variants = make([]Variant, n.Variants.Length())
		for i, variant := range n.Variants.Iter {
			product.Variants[i] = variant.Flatten()
		}
	}
	if n.Metafields != nil {
		product.Metafields = n.Metafields.Nodes()
	}
	product.EnsureChildren()
	return product
}

// BULK OPERATIONS

type BulkOperation struct {
	Id             string  `json:"id"`
	Status         string  `json:"status"`
	ErrorCode      *string `json:"errorCode"`
	Url            *string `json:"url"`
	PartialDataUrl *string `json:"partialDataUrl"`
	ObjectCount    string  `json:"objectCount"`
}

type BulkOperationRunQuery struct {
	BulkOperation *BulkOperation `json:"bulkOperation"`
	UserErrors    []UserError    `json:"userErrors"`
}

// BulkLineHeader holds the fields every JSONL line of a bulk result may carry.
type BulkLineHeader struct {
	Id       string `json:"id"`
	ParentId string `json:"__parentId"`
	Typename string `json:"__typename"`
}

// DISCOUNTS

type DiscountRedeemCode struct {
	Code string `json:"code"`
}

type DiscountValue struct {
	Typename   string   `json:"__typename"`
	Percentage *float64 `json:"percentage,omitempty"`
	Amount     *Money   `json:"amount,omitempty"`
}

type DiscountItems struct {
	Typename    string            `json:"__typename"`
	AllItems    *bool             `json:"allItems,omitempty"`
	Products    *Edges[Reference] `json:"products,omitempty"`
	Collections *Edges[Reference] `json:"collections,omitempty"`
}

type DiscountCustomerGets struct {
	Value *DiscountValue `json:"value"`
	Items *DiscountItems `json:"items"`
}

type DiscountCustomerBuys struct {
	Items *DiscountItems `json:"items"`
}

type DiscountMinimumRequirement struct {
	Typename                     string  `json:"__typename"`
	GreaterThanOrEqualToQuantity *string `json:"greaterThanOrEqualToQuantity,omitempty"`
	GreaterThanOrEqualToSubtotal *Money  `json:"greaterThanOrEqualToSubtotal,omitempty"`
}

type DiscountCode struct {
	Typename           string                      `json:"__typename"`
	Title              string                      `json:"title"`
	Status             string                      `json:"status"`
	StartsAt           *time.Time                  `json:"startsAt"`
	EndsAt             *time.Time                  `json:"endsAt"`
	UsageLimit         *int                        `json:"usageLimit,omitempty"`
	Codes              Edges[DiscountRedeemCode]   `json:"codes"`
	CustomerGets       *DiscountCustomerGets       `json:"customerGets,omitempty"`
	CustomerBuys       *DiscountCustomerBuys       `json:"customerBuys,omitempty"`
	MinimumRequirement *DiscountMinimumRequirement `json:"minimumRequirement,omitempty"`
}

type DiscountCodeNode struct {
	Id           string       `json:"id"`
	CodeDiscount DiscountCode `json:"codeDiscount"`
}

// METAFIELDS, METAOBJECTS

type MetafieldDefinitionType struct {
	Name string `json:"name"`
}

type MetafieldDefinition struct {
	Id        string                   `json:"id"`
	Name      string                   `json:"name"`
	Namespace string                   `json:"namespace"`
	Key       string                   `json:"key"`
	OwnerType string                   `json:"ownerType,omitempty"`
	Type      *MetafieldDefinitionType `json:"type,omitempty"`
}

type MetafieldDefinitionCreate struct {
	CreatedDefinition *MetafieldDefinition `json:"createdDefinition"`
	UserErrors        []UserError          `json:"userErrors"`
}

type MetafieldDefinitionDelete struct {
	DeletedDefinitionId *string     `json:"deletedDefinitionId"`
	UserErrors          []UserError `json:"userErrors"`
}

type MetaobjectDefinition struct {
	Id   string `json:"id"`
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
}

type MetaobjectDefinitionCreate struct {
	MetaobjectDefinition *MetaobjectDefinition `json:"metaobjectDefinition"`
	UserErrors           []UserError           `json:"userErrors"`
}

type Metaobject struct {
	Id     string `json:"id"`
	Handle string `json:"handle"`
}

type MetaobjectCreate struct {
	Metaobject *Metaobject `json:"metaobject"`
	UserErrors []UserError `json:"userErrors"`
}

type MetafieldsSet struct {
	Metafields []Metafield `json:"metafields"`
	UserErrors []UserError `json:"userErrors"`
}

type Shop struct {
	Id        string     `json:"id"`
	Metafield *Metafield `json:"metafield"`
}

// ORDERS

type OrderLineItem struct {
	Title    string     `json:"title"`
	Quantity int        `json:"quantity"`
	Product  *Reference `json:"product"`
}

type Order struct {
	Id        string               `json:"id"`
	Name      string               `json:"name"`
	LineItems Edges[OrderLineItem] `json:"lineItems"`
}
