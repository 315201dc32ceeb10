package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoseo/pkg/models"
)

func completedRow() models.Row {
	return models.Row{
		Input:  models.ProductInput{models.NameColumn: "Trail Backpack", "Brand": "Ridge"},
		Status: models.RowStatusCompleted,
		Seo: &models.SeoOutput{
			MetaTitle:           "Trail Backpack | Ridge",
			MetaDescription:     "A rugged 40L pack.",
			ImageAltText:        "Green trail backpack",
			ShortSeoDescription: "short",
			LongSeoDescription:  "long",
			PrimaryKeywords: []models.KeywordData{
				{Keyword: "trail backpack", SearchVolume: "high", Intent: "commercial"},
				{Keyword: "hiking pack", SearchVolume: "medium", Intent: "informational"},
			},
			LongTailKeywords: []models.KeywordData{
				{Keyword: "40l trail backpack waterproof", SearchVolume: "low", Intent: "commercial"},
			},
			BuyingIntentKeywords: []models.KeywordData{
				{Keyword: "buy trail backpack", SearchVolume: "low", Intent: "transactional"},
			},
			BuyerPersona:        "Weekend hiker",
			URLSlug:             "trail-backpack",
			H1Title:             "Trail Backpack",
			HeadingsSuggestions: []string{"Capacity", "Materials", "Warranty"},
			SeoScore:            88,
			ImprovementTips:     "Add alt text to gallery images.",
		},
	}
}

func TestFlattenKeywords(t *testing.T) {
	got := flattenKeywords([]models.KeywordData{
		{Keyword: "trail backpack", SearchVolume: "high", Intent: "commercial"},
		{Keyword: "hiking pack", SearchVolume: "medium", Intent: "informational"},
	})
	assert.Equal(t, "trail backpack [high, commercial], hiking pack [medium, informational]", got)

	assert.Equal(t, "", flattenKeywords(nil))
}

func TestRowValues_FlattensInColumnOrder(t *testing.T) {
	headers := []string{models.NameColumn, "Brand"}
	values := rowValues(completedRow(), headers)

	require.Len(t, values, len(headers)+len(seoColumns))
	assert.Equal(t, "Trail Backpack", values[0])
	assert.Equal(t, "Ridge", values[1])
	assert.Equal(t, "Trail Backpack | Ridge", values[2])
	assert.Equal(t, "Capacity | Materials | Warranty", values[13])
	assert.Equal(t, "88", values[14])

	// Status and error never leak into the export.
	for _, v := range values {
		assert.NotEqual(t, models.RowStatusCompleted, v)
	}
}

func TestRowValues_PendingRowRendersEmptyCells(t *testing.T) {
	row := models.Row{
		Input:  models.ProductInput{models.NameColumn: "Camp Stove"},
		Status: models.RowStatusPending,
	}

	values := rowValues(row, []string{models.NameColumn})
	require.Len(t, values, 1+len(seoColumns))
	assert.Equal(t, "Camp Stove", values[0])
	for _, v := range values[1:] {
		assert.Equal(t, "", v)
	}
}

func TestRowValues_Idempotent(t *testing.T) {
	headers := []string{models.NameColumn, "Brand"}
	row := completedRow()

	first := rowValues(row, headers)
	second := rowValues(row, headers)
	assert.Equal(t, first, second)
}

func TestToSpreadsheet_RoundTrip(t *testing.T) {
	run := models.NewRun([]string{models.NameColumn, "Brand"}, []models.ProductInput{
		{models.NameColumn: "Trail Backpack", "Brand": "Ridge"},
		{models.NameColumn: "Camp Stove"},
	})
	run.Rows[0] = completedRow()
	run.Rows[1].Status = models.RowStatusError
	run.Rows[1].ErrorMessage = "provider died"

	f, err := ToSpreadsheet(run)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, models.NameColumn, rows[0][0])
	assert.Equal(t, "metaTitle", rows[0][2])
	assert.Equal(t, "Trail Backpack | Ridge", rows[1][2])
	assert.Equal(t,
		"trail backpack [high, commercial], hiking pack [medium, informational]",
		rows[1][7])

	// The errored row exports its input but no error text anywhere.
	assert.Equal(t, "Camp Stove", rows[2][0])
	for _, cell := range rows[2] {
		assert.NotEqual(t, "provider died", cell)
	}
}

func TestSpreadsheetFilename(t *testing.T) {
	at := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "seo-generated-2025-06-15.xlsx", SpreadsheetFilename(at))
}
