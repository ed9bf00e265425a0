// Package reviews stores customer product reviews as "review" metaobjects and
// keeps their ids in the shop list metafield custom.bewertungen.
package reviews

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"storefeed/go/helpers"
	"storefeed/go/logging"
	"storefeed/go/shopify"
	"storefeed/go/shopify/adminapi"
)

const (
	MetaobjectType = "review"
	Namespace      = "custom"
	ListKey        = "bewertungen"
	listType       = "list.metaobject_reference"

	CreatedMessage = "Review erfolgreich erstellt und wartet auf Freigabe"
)

var ErrInvalidInput = errors.New("missing fields")

var now = time.Now

type Input struct {
	ProductId helpers.FlexString `json:"product_id"`
	Name      string             `json:"name"`
	Rating    helpers.FlexString `json:"rating"`
	Comment   string             `json:"comment"`
}

func (i Input) Validate() (rating int, err error) {
	if strings.TrimSpace(string(i.ProductId)) == "" || strings.TrimSpace(i.Name) == "" || strings.TrimSpace(i.Comment) == "" || i.Rating == "" {
		return 0, ErrInvalidInput
	}
	rating, err = strconv.Atoi(string(i.Rating))
	if err != nil || rating < 1 || rating > 5 {
		return 0, fmt.Errorf("rating must be an integer between 1 and 5, got %q:\n>>> %w", i.Rating, ErrInvalidInput)
	}
	return rating, nil
}

type Created struct {
	Success  bool   `json:"success"`
	ReviewId string `json:"reviewId"`
	Message  string `json:"message"`
}

func Create(ctx context.Context, client *adminapi.Client, input Input) (*Created, error) {
	rating, err := input.Validate()
	if err != nil {
		return nil, err
	}
	if err := ensureMetaobjectDefinition(ctx, client); err != nil {
		return nil, err
	}
	if err := ensureListDefinition(ctx, client); err != nil {
		return nil, err
	}

	created, err := client.CreateMetaobject(ctx, map[string]any{
		"type":   MetaobjectType,
		"handle": newHandle(),
		"fields": []map[string]any{
			{"key": "name", "value": input.Name},
			{"key": "rating", "value": strconv.Itoa(rating)},
			{"key": "kommentar", "value": input.Comment},
			{"key": "produkt", "value": shopify.ToGid("Product", string(input.ProductId))},
			{"key": "published", "value": "false"},
			{"key": "verifizierter_kaeufer", "value": "false"},
			{"key": "datum", "value": now().UTC().Format(time.DateOnly)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error creating review:\n>>> %w", err)
	}
	if err := adminapi.CheckUserErrors("metaobjectCreate", created.UserErrors); err != nil {
		return nil, err
	}
	if created.Metaobject == nil {
		return nil, fmt.Errorf("review metaobject missing from Shopify response")
	}
	reviewId := created.Metaobject.Id

	if err := appendToList(ctx, client, reviewId); err != nil {
		return nil, err
	}
	logger := logging.NewLogger("reviews")
	logger.Info().Str("reviewId", reviewId).Str("productId", string(input.ProductId)).Int("rating", rating).Msg("review created")
	return &Created{Success: true, ReviewId: reviewId, Message: CreatedMessage}, nil
}

// List returns the review ids stored on the shop, oldest first.
func List(ctx context.Context, client *adminapi.Client) ([]string, error) {
	shop, err := client.ShopMetafield(ctx, Namespace, ListKey)
	if err != nil {
		return nil, fmt.Errorf("error loading reviews:\n>>> %w", err)
	}
	if shop.Metafield == nil {
		return []string{}, nil
	}
	return parseList(shop.Metafield.Value)
}

func parseList(value string) ([]string, error) {
	ids := []string{}
	if strings.TrimSpace(value) == "" {
		return ids, nil
	}
	if err := json.Unmarshal([]byte(value), &ids); err != nil {
		return nil, fmt.Errorf("invalid %s.%s value %q:\n>>> %w", Namespace, ListKey, value, err)
	}
	return ids, nil
}

func ensureMetaobjectDefinition(ctx context.Context, client *adminapi.Client) error {
	definitions, err := client.MetaobjectDefinitionsByType(ctx, MetaobjectType)
	if err != nil {
		return fmt.Errorf("error checking review metaobject definition:\n>>> %w", err)
	}
	if definitions.Length() > 0 {
		return nil
	}
	created, err := client.CreateMetaobjectDefinition(ctx, map[string]any{
		"name": "Review",
		"type": MetaobjectType,
		"fieldDefinitions": []map[string]any{
			{"key": "name", "name": "Name", "type": "single_line_text_field"},
			{"key": "rating", "name": "Bewertung", "type": "number_integer", "validations": []map[string]any{
				{"name": "min", "value": "1"},
				{"name": "max", "value": "5"},
			}},
			{"key": "kommentar", "name": "Kommentar", "type": "multi_line_text_field"},
			{"key": "produkt", "name": "Produkt", "type": "product_reference"},
			{"key": "published", "name": "Veröffentlicht", "type": "boolean"},
			{"key": "verifizierter_kaeufer", "name": "Verifizierter Käufer", "type": "boolean"},
			{"key": "datum", "name": "Datum", "type": "date"},
		},
	})
	if err != nil {
		return fmt.Errorf("error creating review metaobject definition:\n>>> %w", err)
	}
	if err := adminapi.CheckUserErrors("metaobjectDefinitionCreate", created.UserErrors); err != nil {
		return err
	}
	if created.MetaobjectDefinition == nil {
		return fmt.Errorf("review metaobject definition missing from Shopify response")
	}
	logger := logging.NewLogger("reviews")
	logger.Info().Str("id", created.MetaobjectDefinition.Id).Msg("review metaobject definition created")
	return nil
}

func ensureListDefinition(ctx context.Context, client *adminapi.Client) error {
	definitions, err := client.MetafieldDefinitions(ctx, adminapi.MetafieldDefinitionFilter{
		OwnerType: "SHOP",
		Namespace: Namespace,
		Key:       ListKey,
	}, 10, "")
	if err != nil {
		return fmt.Errorf("error checking shop review list definition:\n>>> %w", err)
	}
	if definitions.Length() > 0 {
		return nil
	}
	created, err := client.CreateMetafieldDefinition(ctx, map[string]any{
		"name":      "Bewertungen",
		"namespace": Namespace,
		"key":       ListKey,
		"type":      listType,
		"ownerType": "SHOP",
	})
	if err != nil {
		return fmt.Errorf("error creating shop review list definition:\n>>> %w", err)
	}
	if err := adminapi.CheckUserErrors("metafieldDefinitionCreate", created.UserErrors); err != nil {
		return err
	}
	if created.CreatedDefinition == nil {
		return fmt.Errorf("shop review list definition missing from Shopify response")
	}
	return nil
}

func appendToList(ctx context.Context, client *adminapi.Client, reviewId string) error {
	shop, err := client.ShopMetafield(ctx, Namespace, ListKey)
	if err != nil {
		return fmt.Errorf("error loading shop review list:\n>>> %w", err)
	}
	ids := []string{}
	if shop.Metafield != nil {
		if ids, err = parseList(shop.Metafield.Value); err != nil {
			return err
		}
	}
	ids = append(ids, reviewId)
	value, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	updated, err := client.SetMetafields(ctx, []map[string]any{{
		"namespace": Namespace,
		"key":       ListKey,
		"type":      listType,
		"value":     string(value),
		"ownerId":   shop.Id,
	}})
	if err != nil {
		return fmt.Errorf("error updating shop review list:\n>>> %w", err)
	}
	return adminapi.CheckUserErrors("metafieldsSet", updated.UserErrors)
}

// newHandle returns review-<unix ms>-<9 base36 chars>.
func newHandle() string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return fmt.Sprintf("review-%d-%s", now().UnixMilli(), suffix)
}
