// Package models contains shared data models used across the AutoSEO codebase.
package models

// Row status values. A row carries a result only when completed and an
// error message only when errored.
const (
	RowStatusPending    = "pending"
	RowStatusProcessing = "processing"
	RowStatusCompleted  = "completed"
	RowStatusError      = "error"
)

// NameColumn is the spreadsheet column holding the product's display name.
const NameColumn = "Product Name"

// ProductInput is one spreadsheet row as parsed from the uploaded workbook:
// header name -> cell value. All cells are kept as strings.
type ProductInput map[string]string

// Name returns the product's display name, or "" when the column is absent.
func (p ProductInput) Name() string {
	return p[NameColumn]
}

// KeywordData is a single keyword suggestion with its search-volume and
// intent labels. Duplicates across lists are tolerated.
type KeywordData struct {
	Keyword      string `json:"keyword"`
	SearchVolume string `json:"searchVolume"`
	Intent       string `json:"intent"`
}

// SeoOutput is the AI-generated metadata bundle for one product. The JSON
// field names are the provider response contract and must stay in sync with
// the response schema in internal/ai/prompt.
type SeoOutput struct {
	MetaTitle            string        `json:"metaTitle"`
	MetaDescription      string        `json:"metaDescription"`
	ImageAltText         string        `json:"imageAltText"`
	ShortSeoDescription  string        `json:"shortSeoDescription"`
	LongSeoDescription   string        `json:"longSeoDescription"`
	PrimaryKeywords      []KeywordData `json:"primaryKeywords"`
	LongTailKeywords     []KeywordData `json:"longTailKeywords"`
	BuyingIntentKeywords []KeywordData `json:"buyingIntentKeywords"`
	BuyerPersona         string        `json:"buyerPersona"`
	URLSlug              string        `json:"urlSlug"`
	H1Title              string        `json:"h1Title"`
	HeadingsSuggestions  []string      `json:"headingsSuggestions"`
	SeoScore             int           `json:"seoScore"`
	ImprovementTips      string        `json:"improvementTips"`
}

// Row is one work item: the parsed input fields plus processing state.
type Row struct {
	Input        ProductInput `json:"input"`
	Status       string       `json:"status"`
	Seo          *SeoOutput   `json:"seo,omitempty"`
	ErrorMessage string       `json:"error_message,omitempty"`
}
