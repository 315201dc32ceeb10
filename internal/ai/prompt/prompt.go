// Package prompt holds the fixed instruction text and response schema for SEO
// metadata generation. Both are data contracts shared by the live Gemini
// provider and the exported n8n workflow template; changing either changes
// the provider response shape and must stay in sync with models.SeoOutput.
package prompt

import (
	"encoding/json"
	"fmt"

	"autoseo/pkg/models"
)

const promptBody = `You must generate optimized SEO metadata for EACH product in the list.

Return the results as a JSON ARRAY where the order matches the input list exactly.

Input Product List:
%s

Requirements for each item:
1. Meta Title: 60-70 chars, keyword-rich.
2. Meta Description: 155-160 chars, compelling.
3. Image ALT: Descriptive, SEO friendly.
4. Short SEO Desc: 40-60 words.
5. Long SEO Desc: 150-200 words, unique.
6. Primary Keywords: 5-10 relevant keywords with search volume/intent.
7. Long-Tail Keywords: 5 specific phrases with search volume/intent.
8. URL Slug: lowercase, hyphenated.
9. H1 Title: Optimized H1.
10. Headings (H2/H3): Suggestions.
11. SEO Score: 0-100.
12. Improvement Tips: Actionable advice.
13. Buying Intent Keywords: 3-5 keywords specifically targeting transactional intent (e.g. containing words like buy, price, deal, shop, best).
14. Buyer Persona: A 1-sentence description of the ideal customer ready to buy this.

CRITICAL CONSTRAINTS (Do NOT violate):
- STRICTLY NO YEARS/DATES: Do NOT include the current year (e.g., "2024", "2025") in the Meta Title, Meta Description, or H1.
- Even if the product name implies a year (e.g. "Summer Collection"), do not add the specific year 2024/2025.
- Do NOT include specific dates, timestamps, or "Meta Date".
- Do NOT include prices or "in stock" status as these change frequently.
- Ensure content is "evergreen" (valid for a long time).`

// ForBatch renders the full instruction for one batch, embedding the products
// as pretty-printed JSON. Map keys marshal in sorted order, so the rendered
// prompt is deterministic for a given batch.
func ForBatch(products []models.ProductInput) (string, error) {
	list, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing product list: %w", err)
	}
	header := fmt.Sprintf("You are an expert SEO specialist. I will provide a list of %d products. ", len(products))
	return header + fmt.Sprintf(promptBody, list), nil
}

// WorkflowTemplate is the same instruction with the n8n input-data expression
// in place of a concrete product list. {{ JSON.stringify($json) }} refers to
// the previous node's output inside n8n.
func WorkflowTemplate() string {
	header := "You are an expert SEO specialist. I will provide a list of products. "
	return header + fmt.Sprintf(promptBody, "{{ JSON.stringify($json) }}")
}

// Schema types mirror the provider's structured-output schema language.
const (
	TypeObject  = "OBJECT"
	TypeArray   = "ARRAY"
	TypeString  = "STRING"
	TypeInteger = "INTEGER"
)

// Schema is a machine-readable constraint on the response shape.
type Schema struct {
	Type       string             `json:"type"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Items      *Schema            `json:"items,omitempty"`
	Required   []string           `json:"required,omitempty"`
}

func keywordListSchema() *Schema {
	return &Schema{
		Type: TypeArray,
		Items: &Schema{
			Type: TypeObject,
			Properties: map[string]*Schema{
				"keyword":      {Type: TypeString},
				"searchVolume": {Type: TypeString},
				"intent":       {Type: TypeString},
			},
			Required: []string{"keyword", "searchVolume", "intent"},
		},
	}
}

func itemSchema() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"metaTitle":            {Type: TypeString},
			"metaDescription":      {Type: TypeString},
			"imageAltText":         {Type: TypeString},
			"shortSeoDescription":  {Type: TypeString},
			"longSeoDescription":   {Type: TypeString},
			"primaryKeywords":      keywordListSchema(),
			"longTailKeywords":     keywordListSchema(),
			"buyingIntentKeywords": keywordListSchema(),
			"buyerPersona":         {Type: TypeString},
			"urlSlug":              {Type: TypeString},
			"h1Title":              {Type: TypeString},
			"headingsSuggestions":  {Type: TypeArray, Items: &Schema{Type: TypeString}},
			"seoScore":             {Type: TypeInteger},
			"improvementTips":      {Type: TypeString},
		},
		Required: []string{
			"metaTitle", "metaDescription", "imageAltText",
			"shortSeoDescription", "longSeoDescription", "primaryKeywords",
			"longTailKeywords", "buyingIntentKeywords", "buyerPersona",
			"urlSlug", "h1Title", "headingsSuggestions",
			"seoScore", "improvementTips",
		},
	}
}

// ResponseSchema constrains the provider response to an array of metadata
// objects, one per input product, every field required.
func ResponseSchema() *Schema {
	return &Schema{Type: TypeArray, Items: itemSchema()}
}
