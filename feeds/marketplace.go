package feeds

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"slices"

	"storefeed/go/shopify/adminapi/types"
)

const imageColumns = 5

var marketplaceHeader = []string{
	"Deeplink",
	"Produkt-Titel",
	"Produktbeschreibung",
	"Produktbeschreibung lang",
	"Streichpreis",
	"Preis (Brutto)",
	"Preis (Netto)",
	"Währung",
	"europäische Artikelnummer EAN",
	"Anbieter Artikelnummer AAN",
	"Hersteller",
	"Hersteller Artikelnummer HAN",
	"Produktbild-URL",
	"Vorschaubild-URL",
	"Produktkategorie",
	"Versandkosten Allgemein",
	"Versandkosten Vorkasse",
	"Versandkosten Nachnahme",
	"Versandkosten Kreditkarte",
	"Versandkosten Lastschrift",
	"Versandkosten Rechnung",
	"Versandkosten PayPal",
	"Versandkosten Sofortüberweisung",
	"Verfügbarkeit",
	"Lieferzeit",
	"Grundpreis",
	"Grundpreiseinheit",
	"Inhalt",
	"Produktbild-URL-#1",
	"Produktbild-URL-#2",
	"Produktbild-URL-#3",
	"Produktbild-URL-#4",
	"Produktbild-URL-#5",
}

type marketplaceRow struct {
	columns    []string
	metafields map[string]any
}

func buildMarketplaceRow(product *types.Product, variant *types.Variant, title string, productMetafields map[string]any, opts Options) []string {
	gross := variant.PriceAmount()
	net := round2(gross / (1 + opts.VATRate))
	image := variantImage(product, variant)
	shipping := shippingCosts(productMetafields["custom.versandkosten"])
	stock := "Nicht auf Lager"
	if variant.AvailableForSale {
		stock = "Auf Lager"
	}
	compareAt := ""
	if variant.CompareAtPrice != nil {
		compareAt = formatNumber(variant.CompareAtAmount())
	}
	barcode := ""
	if variant.Barcode != nil {
		barcode = *variant.Barcode
	}
	row := []string{
		opts.variantLink(product, variant),
		title,
		product.DescriptionHtml,
		product.DescriptionHtml,
		compareAt,
		nonZero(gross),
		nonZero(net),
		opts.Currency,
		barcode,
		variant.Sku,
		product.Vendor,
		variant.Sku,
		image,
		image,
		product.ProductType,
	}
	for range 8 {
		row = append(row, shipping)
	}
	row = append(row, stock, deliveryTime(productMetafields["custom.lieferzeit"]), "", "", "")
	for i := range imageColumns {
		if i < len(product.Images) {
			row = append(row, product.Images[i].Url)
		} else {
			row = append(row, "")
		}
	}
	return row
}

func nonZero(value float64) string {
	if value == 0 {
		return ""
	}
	return formatNumber(value)
}

func writeCSV(header []string, rows [][]string) ([]byte, error) {
	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("error writing CSV header:\n>>> %w", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("error writing CSV rows:\n>>> %w", err)
	}
	return buffer.Bytes(), nil
}

// HoodCSV writes one row per variant followed by a column for every metafield
// key found in the catalog, sorted. Variant metafields override product ones.
func HoodCSV(products []types.Product, opts Options) ([]byte, error) {
	var rows []marketplaceRow
	keys := map[string]struct{}{}
	for p := range products {
		product := &products[p]
		productMetafields := metafieldValues(product.Metafields, nil)
		simple := len(product.Variants) == 1 && product.Variants[0].IsDefault()
		for v := range product.Variants {
			variant := &product.Variants[v]
			title := product.Title
			if !simple {
				title = product.Title + " - " + variant.Title
			}
			all := metafieldValues(product.Metafields, nil)
			metafieldValues(variant.Metafields, all)
			for key := range all {
				keys[key] = struct{}{}
			}
			rows = append(rows, marketplaceRow{
				columns:    buildMarketplaceRow(product, variant, title, productMetafields, opts),
				metafields: all,
			})
		}
	}

	metafieldColumns := make([]string, 0, len(keys))
	for key := range keys {
		metafieldColumns = append(metafieldColumns, key)
	}
	slices.Sort(metafieldColumns)

	records := make([][]string, len(rows))
	for i, row := range rows {
		record := row.columns
		for _, key := range metafieldColumns {
			record = append(record, stringifyValue(row.metafields[key]))
		}
		records[i] = record
	}
	return writeCSV(append(slices.Clone(marketplaceHeader), metafieldColumns...), records)
}

// AdcellCSV writes the marketplace columns without metafield columns.
func AdcellCSV(products []types.Product, opts Options) ([]byte, error) {
	var records [][]string
	for p := range products {
		product := &products[p]
		productMetafields := metafieldValues(product.Metafields, nil)
		for v := range product.Variants {
			variant := &product.Variants[v]
			records = append(records, buildMarketplaceRow(product, variant, variantTitle(product, variant), productMetafields, opts))
		}
	}
	return writeCSV(marketplaceHeader, records)
}
