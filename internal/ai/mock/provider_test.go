package mock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoseo/internal/ai/mock"
	"autoseo/pkg/models"
)

func sampleProducts() []models.ProductInput {
	return []models.ProductInput{
		{"Product Name": "Trail Backpack", "Category": "Outdoor"},
		{"Product Name": "Camp Stove"},
	}
}

func TestNewMockProvider_Name(t *testing.T) {
	p := mock.NewMockProvider()
	assert.Equal(t, "mock", p.Name())
}

func TestNewMockProvider_OneResultPerProduct(t *testing.T) {
	p := mock.NewMockProvider()
	out, err := p.GenerateBatch(context.Background(), sampleProducts())

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Contains(t, out[0].MetaTitle, "Trail Backpack")
	assert.Contains(t, out[1].MetaTitle, "Camp Stove")
	assert.NotEmpty(t, out[0].PrimaryKeywords)
	assert.NotZero(t, out[0].SeoScore)
}

func TestNewMockProvider_UnnamedProductGetsPlaceholder(t *testing.T) {
	p := mock.NewMockProvider()
	out, err := p.GenerateBatch(context.Background(), []models.ProductInput{
		{"Category": "Misc"},
	})

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Contains(t, out[0].MetaTitle, "product 1")
}

func TestNewMockProvider_CountsCalls(t *testing.T) {
	p := mock.NewMockProvider()
	_, err := p.GenerateBatch(context.Background(), sampleProducts())
	require.NoError(t, err)
	_, err = p.GenerateBatch(context.Background(), sampleProducts())
	require.NoError(t, err)

	assert.Equal(t, 2, p.Calls)
}

func TestNewFailingProvider(t *testing.T) {
	boom := errors.New("upstream unavailable")
	p := mock.NewFailingProvider(boom)

	out, err := p.GenerateBatch(context.Background(), sampleProducts())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, out)
	assert.Equal(t, 1, p.Calls)
}
