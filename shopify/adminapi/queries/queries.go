package queries

// STRUCTS

type ShopifyQuery struct {
	ResultKey string
	Query     string
}

// FRAGMENTS

var metafieldFragment = `
fragment MetafieldFields on Metafield {
	namespace
	key
	value
	type
}
`

// Variant metafields only come with the bulk export.
var variantFragment = `
fragment VariantFields on ProductVariant {
	id
	title
	sku
	barcode
	price
	compareAtPrice
	availableForSale
	inventoryQuantity
	inventoryPolicy
	inventoryItem {
		id
		tracked
		measurement {
			weight {
				unit
				value
			}
		}
	}
	selectedOptions {
		name
		value
	}
	image {
		id
		url
		altText
	}
}
`

var productFragment = metafieldFragment + variantFragment + `
fragment ProductFields on Product {
	id
	title
	handle
	vendor
	productType
	descriptionHtml
	status
	createdAt
	tags
	options {
		name
		position
	}
	images(first: 10) {
		edges {
			node {
				id
				url
				altText
			}
		}
	}
	metafields(first: 25) {
		edges {
			node {
				...MetafieldFields
			}
		}
	}
	variants(first: 50) {
		edges {
			node {
				...VariantFields
			}
		}
	}
}
`

var bulkOperationFragment = `
fragment BulkOperationFields on BulkOperation {
	id
	status
	errorCode
	url
	partialDataUrl
	objectCount
}
`

var discountItemsFragment = `
fragment DiscountItemsFields on DiscountItems {
	__typename
	... on AllDiscountItems {
		allItems
	}
	... on DiscountProducts {
		products(first: 250) {
			edges {
				node {
					id
					title
					handle
				}
			}
		}
	}
	... on DiscountCollections {
		collections(first: 250) {
			edges {
				node {
					id
					title
					handle
				}
			}
		}
	}
}
`

var discountCustomerGetsFragment = discountItemsFragment + `
fragment CustomerGetsFields on DiscountCustomerGets {
	value {
		__typename
		... on DiscountPercentage {
			percentage
		}
		... on DiscountAmount {
			amount {
				amount
				currencyCode
			}
		}
	}
	items {
		...DiscountItemsFields
	}
}
`

var discountMinimumFragment = `
fragment MinimumRequirementFields on DiscountMinimumRequirement {
	__typename
	... on DiscountMinimumQuantity {
		greaterThanOrEqualToQuantity
	}
	... on DiscountMinimumSubtotal {
		greaterThanOrEqualToSubtotal {
			amount
			currencyCode
		}
	}
}
`

// CATALOG

// ProductsPageSize keeps a ProductsPage request under the 1000 point query
// cost limit: each product with its images, metafields and variants is
// estimated at 243 points.
const ProductsPageSize = 4

var ProductsPage = ShopifyQuery{
	ResultKey: "products",
	Query: productFragment + `
query ProductsPage($first: Int!, $after: String, $query: String) {
	products(first: $first, after: $after, query: $query) {
		edges {
			cursor
			node {
				...ProductFields
			}
		}
		pageInfo {
			hasNextPage
			endCursor
		}
	}
}
`,
}

// BulkProductExport is the inner query submitted to bulkOperationRunQuery.
// Every connection node selects __typename so the result lines can be grouped
// without guessing from their shape.
var BulkProductExport = `
{
	products {
		edges {
			node {
				__typename
				id
				title
				handle
				vendor
				productType
				descriptionHtml
				status
				createdAt
				tags
				options {
					name
					position
				}
				images {
					edges {
						node {
							__typename
							id
							url
							altText
						}
					}
				}
				metafields {
					edges {
						node {
							__typename
							id
							namespace
							key
							value
							type
						}
					}
				}
				variants {
					edges {
						node {
							__typename
							id
							title
							sku
							barcode
							price
							compareAtPrice
							availableForSale
							inventoryQuantity
							inventoryPolicy
							inventoryItem {
								id
								tracked
								measurement {
									weight {
										unit
										value
									}
								}
							}
							selectedOptions {
								name
								value
							}
							image {
								id
								url
								altText
							}
							metafields {
								edges {
									node {
										__typename
										id
										namespace
										key
										value
										type
									}
								}
							}
						}
					}
				}
			}
		}
	}
}
`

var BulkOperationRunQuery = ShopifyQuery{
	ResultKey: "bulkOperationRunQuery",
	Query: bulkOperationFragment + `
mutation BulkOperationRunQuery($query: String!) {
	bulkOperationRunQuery(query: $query) {
		bulkOperation {
			...BulkOperationFields
		}
		userErrors {
			field
			message
			code
		}
	}
}
`,
}

var BulkOperationById = ShopifyQuery{
	ResultKey: "node",
	Query: bulkOperationFragment + `
query BulkOperationById($id: ID!) {
	node(id: $id) {
		...BulkOperationFields
	}
}
`,
}

// DISCOUNTS

var DiscountCodeNodes = ShopifyQuery{
	ResultKey: "codeDiscountNodes",
	Query: discountCustomerGetsFragment + discountMinimumFragment + `
query DiscountCodeNodes($query: String!) {
	codeDiscountNodes(first: 1, query: $query) {
		edges {
			node {
				id
				codeDiscount {
					__typename
					... on DiscountCodeBasic {
						title
						status
						startsAt
						endsAt
						usageLimit
						codes(first: 1) {
							edges {
								node {
									code
								}
							}
						}
						customerGets {
							...CustomerGetsFields
						}
						minimumRequirement {
							...MinimumRequirementFields
						}
					}
					... on DiscountCodeBxgy {
						title
						status
						startsAt
						endsAt
						usageLimit
						codes(first: 1) {
							edges {
								node {
									code
								}
							}
						}
						customerGets {
							...CustomerGetsFields
						}
						customerBuys {
							items {
								...DiscountItemsFields
							}
						}
					}
					... on DiscountCodeFreeShipping {
						title
						status
						startsAt
						endsAt
						usageLimit
						codes(first: 1) {
							edges {
								node {
									code
								}
							}
						}
						minimumRequirement {
							...MinimumRequirementFields
						}
					}
				}
			}
		}
	}
}
`,
}

// METAFIELDS

var MetafieldDefinitions = ShopifyQuery{
	ResultKey: "metafieldDefinitions",
	Query: `
query MetafieldDefinitions($first: Int!, $after: String, $ownerType: MetafieldOwnerType!, $namespace: String, $key: String, $constraintStatus: MetafieldDefinitionConstraintStatus) {
	metafieldDefinitions(first: $first, after: $after, ownerType: $ownerType, namespace: $namespace, key: $key, constraintStatus: $constraintStatus) {
		edges {
			cursor
			node {
				id
				name
				namespace
				key
				ownerType
				type {
					name
				}
			}
		}
		pageInfo {
			hasNextPage
			endCursor
		}
	}
}
`,
}

var MetafieldDefinitionCreate = ShopifyQuery{
	ResultKey: "metafieldDefinitionCreate",
	Query: `
mutation MetafieldDefinitionCreate($definition: MetafieldDefinitionInput!) {
	metafieldDefinitionCreate(definition: $definition) {
		createdDefinition {
			id
			name
			namespace
			key
			type {
				name
			}
		}
		userErrors {
			field
			message
			code
		}
	}
}
`,
}

var MetafieldDefinitionDelete = ShopifyQuery{
	ResultKey: "metafieldDefinitionDelete",
	Query: `
mutation MetafieldDefinitionDelete($id: ID!, $deleteAllAssociatedMetafields: Boolean!) {
	metafieldDefinitionDelete(id: $id, deleteAllAssociatedMetafields: $deleteAllAssociatedMetafields) {
		deletedDefinitionId
		userErrors {
			field
			message
			code
		}
	}
}
`,
}

var MetafieldsSet = ShopifyQuery{
	ResultKey: "metafieldsSet",
	Query: `
mutation MetafieldsSet($metafields: [MetafieldsSetInput!]!) {
	metafieldsSet(metafields: $metafields) {
		metafields {
			id
			namespace
			key
			value
			type
		}
		userErrors {
			field
			message
			code
		}
	}
}
`,
}

// METAOBJECTS

var MetaobjectDefinitionsByType = ShopifyQuery{
	ResultKey: "metaobjectDefinitions",
	Query: `
query MetaobjectDefinitionsByType($type: String!) {
	metaobjectDefinitions(first: 10, type: $type) {
		edges {
			node {
				id
				type
				name
			}
		}
	}
}
`,
}

var MetaobjectDefinitionCreate = ShopifyQuery{
	ResultKey: "metaobjectDefinitionCreate",
	Query: `
mutation MetaobjectDefinitionCreate($definition: MetaobjectDefinitionCreateInput!) {
	metaobjectDefinitionCreate(definition: $definition) {
		metaobjectDefinition {
			id
			type
			name
		}
		userErrors {
			field
			message
			code
		}
	}
}
`,
}

var MetaobjectCreate = ShopifyQuery{
	ResultKey: "metaobjectCreate",
	Query: `
mutation MetaobjectCreate($metaobject: MetaobjectCreateInput!) {
	metaobjectCreate(metaobject: $metaobject) {
		metaobject {
			id
			handle
		}
		userErrors {
			field
			message
			code
		}
	}
}
`,
}

var ShopMetafield = ShopifyQuery{
	ResultKey: "shop",
	Query: `
query ShopMetafield($namespace: String!, $key: String!) {
	shop {
		id
		metafield(namespace: $namespace, key: $key) {
			id
			namespace
			key
			value
			type
		}
	}
}
`,
}

// ORDERS

var Order = ShopifyQuery{
	ResultKey: "order",
	Query: `
query Order($id: ID!) {
	order(id: $id) {
		id
		name
		lineItems(first: 50) {
			edges {
				node {
					title
					quantity
					product {
						id
						title
					}
				}
			}
		}
	}
}
`,
}
