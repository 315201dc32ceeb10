// Package workflow emits an importable n8n workflow definition that runs the
// same SEO enrichment outside the server: a static JSON graph embedding the
// shared prompt and response schema. Pure data generation; nothing at runtime
// depends on it.
package workflow

import (
	"encoding/json"
	"fmt"

	"autoseo/internal/ai/prompt"
)

// Filename is the fixed download name for the template.
const Filename = "autoseo-gemini-n8n-workflow.json"

// Template renders the workflow JSON: manual trigger -> sample product data
// -> Gemini HTTP request with structured JSON output. The API key is left as
// a placeholder for the user to fill in inside n8n.
func Template() ([]byte, error) {
	promptJSON, err := json.Marshal(prompt.WorkflowTemplate())
	if err != nil {
		return nil, fmt.Errorf("encoding prompt template: %w", err)
	}
	schemaJSON, err := json.Marshal(prompt.ResponseSchema())
	if err != nil {
		return nil, fmt.Errorf("encoding response schema: %w", err)
	}

	// n8n expression syntax: a leading = makes the value a JS expression
	// evaluated per item.
	contentsExpr := fmt.Sprintf(`={{ [{"parts":[{"text": %s }] }] }}`, promptJSON)
	generationExpr := fmt.Sprintf(`={{ {"response_mime_type": "application/json", "response_schema": %s } }}`, schemaJSON)

	wf := map[string]any{
		"name": "AutoSEO Gen - Gemini Flash 2.5",
		"nodes": []map[string]any{
			{
				"parameters":  map[string]any{},
				"id":          "e981250d-start-node",
				"name":        `When clicking "Execute Workflow"`,
				"type":        "n8n-nodes-base.manualTrigger",
				"typeVersion": 1,
				"position":    []int{460, 340},
			},
			{
				"parameters": map[string]any{
					"values": map[string]any{
						"string": []map[string]any{
							{
								"name":  "Product Name",
								"value": "Professional Wireless Gaming Mouse",
							},
							{
								"name":  "Description",
								"value": "High precision 20000 DPI optical sensor, RGB lighting, 7 programmable buttons, 70 hour battery life.",
							},
						},
					},
					"options": map[string]any{},
				},
				"id":          "mock-data-node",
				"name":        "Mock Product Data",
				"type":        "n8n-nodes-base.set",
				"typeVersion": 2,
				"position":    []int{680, 340},
			},
			{
				"parameters": map[string]any{
					"method":    "POST",
					"url":       "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent",
					"sendQuery": true,
					"queryParameters": map[string]any{
						"parameters": []map[string]any{
							{"name": "key", "value": "YOUR_GEMINI_API_KEY_HERE"},
						},
					},
					"sendBody":    true,
					"contentType": "json",
					"bodyParameters": map[string]any{
						"parameters": []map[string]any{
							{"name": "contents", "value": contentsExpr},
							{"name": "generationConfig", "value": generationExpr},
						},
					},
					"options": map[string]any{},
				},
				"id":          "gemini-api-node",
				"name":        "Gemini 2.5 Flash SEO",
				"type":        "n8n-nodes-base.httpRequest",
				"typeVersion": 4.1,
				"position":    []int{900, 340},
			},
		},
		"connections": map[string]any{
			`When clicking "Execute Workflow"`: map[string]any{
				"main": [][]map[string]any{
					{{"node": "Mock Product Data", "type": "main", "index": 0}},
				},
			},
			"Mock Product Data": map[string]any{
				"main": [][]map[string]any{
					{{"node": "Gemini 2.5 Flash SEO", "type": "main", "index": 0}},
				},
			},
		},
	}

	return json.MarshalIndent(wf, "", "  ")
}
