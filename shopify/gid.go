package shopify

import (
	"fmt"
	"strings"
)

// ParseGid splits "gid://shopify/ProductVariant/123?x=y" into ("ProductVariant", "123").
func ParseGid(gid string) (resourceType string, id string, err error) {
	parts := strings.Split(gid, "/")
	if len(parts) != 5 || parts[0] != "gid:" || parts[2] != "shopify" {
		return "", "", fmt.Errorf("invalid Shopify ID: %v", gid)
	}
	id = strings.Split(parts[4], "?")[0]
	resourceType = parts[3]
	if id == "" || resourceType == "" {
		return "", "", fmt.Errorf("invalid Shopify ID: %v", gid)
	}
	return resourceType, id, nil
}

// NumericId returns the trailing id of a gid, or the input when it is not a gid.
func NumericId(gid string) string {
	if _, id, err := ParseGid(gid); err == nil {
		return id
	}
	return gid
}

// ToGid accepts either a numeric id or a gid of the given resource type.
func ToGid(resourceType string, id string) string {
	if strings.HasPrefix(id, "gid://") {
		return id
	}
	return fmt.Sprintf("gid://shopify/%s/%s", resourceType, id)
}
