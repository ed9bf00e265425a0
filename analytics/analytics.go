// Package analytics turns Shopify order webhooks into GA4 Measurement
// Protocol purchase events.
package analytics

import (
	"os"
	"slices"
	"strconv"
	"strings"

	"storefeed/go/helpers"
)

const (
	DefaultEndpoint = "https://www.google-analytics.com/mp/collect"
	DefaultClientId = "555"
	DefaultCurrency = "EUR"

	clientIdAttribute = "ga_client_id"
)

type Config struct {
	MeasurementId string
	ApiSecret     string
	// ClientId is used when the order carries no ga_client_id note attribute.
	ClientId string
	// RequiredTag, when set, limits relaying to orders tagged with it.
	RequiredTag string
	Endpoint    string
}

func ConfigFromEnv() Config {
	cfg := Config{
		MeasurementId: os.Getenv("GA4_MEASUREMENT_ID"),
		ApiSecret:     os.Getenv("GA4_API_SECRET"),
		ClientId:      os.Getenv("GA4_CLIENT_ID"),
		RequiredTag:   os.Getenv("GA4_REQUIRED_TAG"),
		Endpoint:      DefaultEndpoint,
	}
	if cfg.ClientId == "" {
		cfg.ClientId = DefaultClientId
	}
	// GA4_ENDPOINT may point at the validation server, .../debug/mp/collect
	if endpoint := os.Getenv("GA4_ENDPOINT"); endpoint != "" {
		cfg.Endpoint = endpoint
	}
	return cfg
}

type NoteAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type OrderLineItem struct {
	Title    string `json:"title"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

// OrderWebhook is the part of the orders/create payload the relay reads.
type OrderWebhook struct {
	Id             helpers.FlexString `json:"id"`
	TotalPrice     string             `json:"total_price"`
	Currency       string             `json:"currency"`
	Tags           string             `json:"tags"`
	NoteAttributes []NoteAttribute    `json:"note_attributes"`
	LineItems      []OrderLineItem    `json:"line_items"`
}

func (o OrderWebhook) HasTag(tag string) bool {
	tags := strings.Split(o.Tags, ",")
	for i := range tags {
		tags[i] = strings.TrimSpace(tags[i])
	}
	return slices.Contains(tags, tag)
}

type Item struct {
	ItemName string  `json:"item_name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type PurchaseParams struct {
	TransactionId string  `json:"transaction_id"`
	Value         float64 `json:"value"`
	Currency      string  `json:"currency"`
	Items         []Item  `json:"items"`
}

type Event struct {
	Name   string         `json:"name"`
	Params PurchaseParams `json:"params"`
}

type Payload struct {
	ClientId string  `json:"client_id"`
	Events   []Event `json:"events"`
}

func PurchaseEvent(order OrderWebhook, defaultClientId string) Payload {
	clientId := defaultClientId
	for _, attribute := range order.NoteAttributes {
		if attribute.Name == clientIdAttribute && attribute.Value != "" {
			clientId = attribute.Value
		}
	}
	if clientId == "" {
		clientId = DefaultClientId
	}
	currency := order.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	items := make([]Item, 0, len(order.LineItems))
	for _, lineItem := range order.LineItems {
		items = append(items, Item{
			ItemName: lineItem.Title,
			Price:    parseAmount(lineItem.Price),
			Quantity: lineItem.Quantity,
		})
	}
	return Payload{
		ClientId: clientId,
		Events: []Event{{
			Name: "purchase",
			Params: PurchaseParams{
				TransactionId: string(order.Id),
				Value:         parseAmount(order.TotalPrice),
				Currency:      currency,
				Items:         items,
			},
		}},
	}
}

func parseAmount(s string) float64 {
	amount, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return amount
}
