package orders

import (
	"context"
	"errors"
	"fmt"

	"storefeed/go/shopify/adminapi"
)

var ErrNotFound = errors.New("order not found")

type Summary struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

type LineItem struct {
	ProductId *string `json:"product_id"`
	Title     *string `json:"title"`
	Quantity  int     `json:"quantity"`
}

type Details struct {
	Order     Summary    `json:"order"`
	LineItems []LineItem `json:"lineItems"`
}

// Get accepts a numeric order id or an Order gid. Line items whose product
// was deleted keep their quantity with a null product id and title.
func Get(ctx context.Context, client *adminapi.Client, orderId string) (*Details, error) {
	order, err := client.OrderById(ctx, orderId)
	if errors.Is(err, adminapi.ErrEmptyResult) {
		return nil, fmt.Errorf("order %s:\n>>> %w", orderId, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error loading order %s:\n>>> %w", orderId, err)
	}

	details := &Details{
		Order:     Summary{Id: order.Id, Name: order.Name},
		LineItems: make([]LineItem, 0, order.LineItems.Length()),
	}
	for _, item := range order.LineItems.Iter {
		lineItem := LineItem{Quantity: item.Quantity}
		if item.Product != nil {
			lineItem.ProductId = &item.Product.Id
			lineItem.Title = &item.Product.Title
		}
		details.LineItems = append(details.LineItems, lineItem)
	}
	return details, nil
}
