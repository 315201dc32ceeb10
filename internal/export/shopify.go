package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"regexp"
	"strings"

	"autoseo/pkg/models"
)

// ShopifyFilename is fixed; Shopify's product import expects CSV.
const ShopifyFilename = "shopify_seo_update.csv"

var shopifyHeader = []string{
	"Handle",
	"Title",
	"Body (HTML)",
	"SEO Title",
	"SEO Description",
	"Tags",
	"Image Alt Text",
}

// ToShopifyCSV maps every row onto Shopify's product import columns. Tags
// concatenate the primary and buying-intent keyword texts in order.
func ToShopifyCSV(run *models.Run) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(shopifyHeader); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}

	for _, row := range run.Rows {
		record := []string{
			handleFor(row),
			row.Input.Name(),
			row.Input["Description"],
			"", "", "", "",
		}
		if seo := row.Seo; seo != nil {
			record[3] = seo.MetaTitle
			record[4] = seo.MetaDescription
			record[5] = tagsFor(seo)
			record[6] = seo.ImageAltText
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("writing csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}
	return buf.Bytes(), nil
}

// handleFor resolves the Shopify handle: an explicit input Handle column
// wins, then the generated slug, then a slugified product name.
func handleFor(row models.Row) string {
	if h := row.Input["Handle"]; h != "" {
		return h
	}
	if row.Seo != nil && row.Seo.URLSlug != "" {
		return row.Seo.URLSlug
	}
	return Slugify(row.Input.Name())
}

func tagsFor(seo *models.SeoOutput) string {
	tags := make([]string, 0, len(seo.PrimaryKeywords)+len(seo.BuyingIntentKeywords))
	for _, k := range seo.PrimaryKeywords {
		tags = append(tags, k.Keyword)
	}
	for _, k := range seo.BuyingIntentKeywords {
		tags = append(tags, k.Keyword)
	}
	return strings.Join(tags, ", ")
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s, collapses runs of non-alphanumerics into single
// hyphens and trims leading/trailing hyphens.
func Slugify(s string) string {
	slug := nonAlphanumeric.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}
