package mock

import (
	"context"
	"fmt"

	"autoseo/pkg/models"
)

// MockProvider satisfies models.SeoProvider for testing and for running the
// server without a Gemini credential (AI_PROVIDER=mock).
type MockProvider struct {
	Name_        string
	GenerateFunc func(ctx context.Context, products []models.ProductInput) ([]models.SeoOutput, error)
	Calls        int
}

func (m *MockProvider) Name() string { return m.Name_ }

func (m *MockProvider) GenerateBatch(ctx context.Context, products []models.ProductInput) ([]models.SeoOutput, error) {
	m.Calls++
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, products)
	}
	return nil, nil
}

// NewMockProvider returns a MockProvider that generates a plausible metadata
// bundle per product, marked with the product name so index alignment is
// checkable.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Name_: "mock",
		GenerateFunc: func(_ context.Context, products []models.ProductInput) ([]models.SeoOutput, error) {
			out := make([]models.SeoOutput, len(products))
			for i, p := range products {
				name := p.Name()
				if name == "" {
					name = fmt.Sprintf("product %d", i+1)
				}
				out[i] = models.SeoOutput{
					MetaTitle:           fmt.Sprintf("%s | Buy Online", name),
					MetaDescription:     fmt.Sprintf("Discover %s. Great value and fast shipping.", name),
					ImageAltText:        fmt.Sprintf("Photo of %s", name),
					ShortSeoDescription: fmt.Sprintf("Short description for %s.", name),
					LongSeoDescription:  fmt.Sprintf("Long-form description for %s, generated by the mock provider.", name),
					PrimaryKeywords: []models.KeywordData{
						{Keyword: name, SearchVolume: "high", Intent: "informational"},
					},
					LongTailKeywords: []models.KeywordData{
						{Keyword: "best " + name, SearchVolume: "medium", Intent: "commercial"},
					},
					BuyingIntentKeywords: []models.KeywordData{
						{Keyword: "buy " + name, SearchVolume: "low", Intent: "transactional"},
					},
					BuyerPersona:        fmt.Sprintf("A shopper looking for %s.", name),
					URLSlug:             "",
					H1Title:             name,
					HeadingsSuggestions: []string{"Features", "Specifications"},
					SeoScore:            85,
					ImprovementTips:     "Add more internal links.",
				}
			}
			return out, nil
		},
	}
}

// NewFailingProvider returns a MockProvider whose calls all fail with err.
func NewFailingProvider(err error) *MockProvider {
	return &MockProvider{
		Name_: "mock-failing",
		GenerateFunc: func(_ context.Context, _ []models.ProductInput) ([]models.SeoOutput, error) {
			return nil, err
		},
	}
}

// Compile-time check that MockProvider implements SeoProvider.
var _ models.SeoProvider = (*MockProvider)(nil)
