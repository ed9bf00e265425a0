package catalog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"storefeed/go/shopify"
	"storefeed/go/shopify/adminapi/types"
)

type lineKind string

const (
	kindProduct   lineKind = "product"
	kindVariant   lineKind = "variant"
	kindImage     lineKind = "image"
	kindMetafield lineKind = "metafield"
)

var kindsByTypename = map[string]lineKind{
	"Product":        kindProduct,
	"ProductVariant": kindVariant,
	"ProductImage":   kindImage,
	"Image":          kindImage,
	"MediaImage":     kindImage,
	"Metafield":      kindMetafield,
}

// Shape signatures are only consulted for lines carrying neither __typename
// nor an id. A line has to match exactly one of them.
var kindsByShape = []struct {
	Kind lineKind
	Keys []string
}{
	{Kind: kindProduct, Keys: []string{"title", "handle"}},
	{Kind: kindVariant, Keys: []string{"price", "selectedOptions"}},
	{Kind: kindImage, Keys: []string{"url"}},
	{Kind: kindMetafield, Keys: []string{"namespace", "key", "value"}},
}

const maxBulkLineSize = 16 * 1024 * 1024

type bulkChild[T any] struct {
	line     int
	parentId string
	record   T
}

// GroupBulkResult reads a JSON Lines bulk result and attaches every child line
// to its parent. Children may precede their parent; a child whose parent never
// shows up fails the whole result.
func GroupBulkResult(r io.Reader) ([]types.Product, error) {
	var (
		products   []*types.Product
		productIdx = map[string]*types.Product{}
		variants   []bulkChild[*types.Variant]
		images     []bulkChild[types.Image]
		metafields []bulkChild[types.Metafield]
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxBulkLineSize)
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, &MalformedResultError{Line: line, Reason: "not a JSON object", Err: err}
		}
		var header types.BulkLineHeader
		if err := json.Unmarshal(raw, &header); err != nil {
			return nil, &MalformedResultError{Line: line, Reason: "invalid line header", Err: err}
		}
		kind, err := classify(header, fields)
		if err != nil {
			return nil, &MalformedResultError{Line: line, Reason: "unclassifiable line", Err: err}
		}
		if (kind == kindProduct) != (header.ParentId == "") {
			return nil, &MalformedResultError{Line: line, Reason: fmt.Sprintf("%s line with parent id %q", kind, header.ParentId)}
		}

		switch kind {
		case kindProduct:
			product := &types.Product{}
			if err := json.Unmarshal(raw, product); err != nil {
				return nil, &MalformedResultError{Line: line, Reason: "invalid product", Err: err}
			}
			if _, seen := productIdx[product.Id]; seen {
				return nil, &MalformedResultError{Line: line, Reason: fmt.Sprintf("duplicate product %s", product.Id)}
			}
			productIdx[product.Id] = product
			products = append(products, product)
		case kindVariant:
			variant := &types.Variant{}
			if err := json.Unmarshal(raw, variant); err != nil {
				return nil, &MalformedResultError{Line: line, Reason: "invalid variant", Err: err}
			}
			variants = append(variants, bulkChild[*types.Variant]{line: line, parentId: header.ParentId, record: variant})
		case kindImage:
			var image types.Image
			if err := json.Unmarshal(raw, &image); err != nil {
				return nil, &MalformedResultError{Line: line, Reason: "invalid image", Err: err}
			}
			images = append(images, bulkChild[types.Image]{line: line, parentId: header.ParentId, record: image})
		case kindMetafield:
			var metafield types.Metafield
			if err := json.Unmarshal(raw, &metafield); err != nil {
				return nil, &MalformedResultError{Line: line, Reason: "invalid metafield", Err: err}
			}
			metafields = append(metafields, bulkChild[types.Metafield]{line: line, parentId: header.ParentId, record: metafield})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &MalformedResultError{Line: line + 1, Reason: "unreadable line", Err: err}
	}

	// Variants are grouped first so their metafields can find them.
	variantIdx := make(map[string]*types.Variant, len(variants))
	variantsByProduct := map[string][]*types.Variant{}
	for _, child := range variants {
		if _, ok := productIdx[child.parentId]; !ok {
			return nil, &MalformedResultError{Line: child.line, Reason: fmt.Sprintf("variant parent %s not found", child.parentId)}
		}
		variantIdx[child.record.Id] = child.record
		variantsByProduct[child.parentId] = append(variantsByProduct[child.parentId], child.record)
	}
	for _, child := range images {
		product, ok := productIdx[child.parentId]
		if !ok {
			return nil, &MalformedResultError{Line: child.line, Reason: fmt.Sprintf("image parent %s not found", child.parentId)}
		}
		product.Images = append(product.Images, child.record)
	}
	for _, child := range metafields {
		if variant, ok := variantIdx[child.parentId]; ok {
			variant.Metafields = append(variant.Metafields, child.record)
			continue
		}
		product, ok := productIdx[child.parentId]
		if !ok {
			return nil, &MalformedResultError{Line: child.line, Reason: fmt.Sprintf("metafield parent %s not found", child.parentId)}
		}
		product.Metafields = append(product.Metafields, child.record)
	}

	records := make([]types.Product, len(products))
	for i, product := range products {
		for _, variant := range variantsByProduct[product.Id] {
			product.Variants = append(product.Variants, *variant)
		}
		product.EnsureChildren()
		records[i] = *product
	}
	return records, nil
}

func classify(header types.BulkLineHeader, fields map[string]json.RawMessage) (lineKind, error) {
	if header.Typename != "" {
		if kind, ok := kindsByTypename[header.Typename]; ok {
			return kind, nil
		}
		return "", fmt.Errorf("unknown __typename %q", header.Typename)
	}
	if header.Id != "" {
		resourceType, _, err := shopify.ParseGid(header.Id)
		if err != nil {
			return "", err
		}
		if kind, ok := kindsByTypename[resourceType]; ok {
			return kind, nil
		}
		return "", fmt.Errorf("unknown resource type %q", resourceType)
	}

	var matches []lineKind
	for _, shape := range kindsByShape {
		if hasAll(fields, shape.Keys) {
			matches = append(matches, shape.Kind)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("no known shape among keys %s", strings.Join(keys(fields), ","))
	default:
		kinds := make([]string, len(matches))
		for i, kind := range matches {
			kinds[i] = string(kind)
		}
		return "", fmt.Errorf("ambiguous shape, matches %s", strings.Join(kinds, ","))
	}
}

func hasAll(fields map[string]json.RawMessage, keys []string) bool {
	for _, key := range keys {
		if _, ok := fields[key]; !ok {
			return false
		}
	}
	return true
}

func keys(fields map[string]json.RawMessage) []string {
	result := make([]string, 0, len(fields))
	for key := range fields {
		result = append(result, key)
	}
	slices.Sort(result)
	return result
}
