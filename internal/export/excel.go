// Package export projects a run's rows into downloadable files. Both
// adapters are pure over a run snapshot and never feed back into processing.
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"autoseo/pkg/models"
)

const sheetName = "SEO Data"

// seoColumns is the fixed order of generated-metadata columns appended after
// the workbook's own input columns.
var seoColumns = []string{
	"metaTitle",
	"metaDescription",
	"imageAltText",
	"shortSeoDescription",
	"longSeoDescription",
	"primaryKeywords",
	"longTailKeywords",
	"buyingIntentKeywords",
	"buyerPersona",
	"urlSlug",
	"h1Title",
	"headingsSuggestions",
	"seoScore",
	"improvementTips",
}

// SpreadsheetFilename is the default timestamped download name.
func SpreadsheetFilename(now time.Time) string {
	return fmt.Sprintf("seo-generated-%s.xlsx", now.Format("2006-01-02"))
}

// ToSpreadsheet renders every row as one worksheet: the original input
// columns in upload order, then the generated metadata flattened to cell
// strings. Internal status and error fields are stripped. Rows without a
// result render empty metadata cells, so partial runs export cleanly.
func ToSpreadsheet(run *models.Run) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}

	header := make([]any, 0, len(run.Headers)+len(seoColumns))
	for _, h := range run.Headers {
		header = append(header, h)
	}
	for _, c := range seoColumns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("writing header row: %w", err)
	}

	for i, row := range run.Rows {
		values := rowValues(row, run.Headers)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("addressing row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	return f, nil
}

// rowValues flattens one row into a cell slice aligned with the export
// header order.
func rowValues(row models.Row, headers []string) []any {
	values := make([]any, 0, len(headers)+len(seoColumns))
	for _, h := range headers {
		values = append(values, row.Input[h])
	}

	seo := row.Seo
	if seo == nil {
		for range seoColumns {
			values = append(values, "")
		}
		return values
	}

	values = append(values,
		seo.MetaTitle,
		seo.MetaDescription,
		seo.ImageAltText,
		seo.ShortSeoDescription,
		seo.LongSeoDescription,
		flattenKeywords(seo.PrimaryKeywords),
		flattenKeywords(seo.LongTailKeywords),
		flattenKeywords(seo.BuyingIntentKeywords),
		seo.BuyerPersona,
		seo.URLSlug,
		seo.H1Title,
		strings.Join(seo.HeadingsSuggestions, " | "),
		strconv.Itoa(seo.SeoScore),
		seo.ImprovementTips,
	)
	return values
}

// flattenKeywords renders a keyword list as `keyword [volume, intent]`
// entries joined by ", ". Deterministic given input order.
func flattenKeywords(keywords []models.KeywordData) string {
	parts := make([]string, len(keywords))
	for i, k := range keywords {
		parts[i] = fmt.Sprintf("%s [%s, %s]", k.Keyword, k.SearchVolume, k.Intent)
	}
	return strings.Join(parts, ", ")
}
