package store

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karimelhadi/atelierbackend/models"
)

func floatPtr(f float64) *float64 { return &f }

func validProduct() models.Product {
	return models.Product{
		Name:        "Linen Summer Jacket",
		Price:       120,
		Description: "A lightweight jacket in washed linen.",
		Images:      []string{"https://cdn.example.com/jacket-front.jpg"},
		PredefinedFields: []models.PredefinedField{
			{
				Category:        "size",
				Options:         []string{"S", "M", "L"},
				SelectedOptions: []string{"M", "L"},
				IsActive:        true,
			},
		},
	}
}

func fieldNames(fields []FieldError) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}
	return names
}

func TestValidateProductAcceptsValidProduct(t *testing.T) {
	p := validProduct()
	fields := validateProduct(&p, models.DefaultFacetCatalog(), true)
	assert.Empty(t, fields)
}

func TestValidateProductRejectsDiscountNotBelowPrice(t *testing.T) {
	p := validProduct()
	p.DiscountPrice = floatPtr(120)

	fields := validateProduct(&p, models.DefaultFacetCatalog(), true)
	require.Len(t, fields, 1)
	assert.Equal(t, "discountPrice", fields[0].Field)
	assert.Equal(t, 120.0, fields[0].Value)

	p.DiscountPrice = floatPtr(119.99)
	assert.Empty(t, validateProduct(&p, models.DefaultFacetCatalog(), true))
}

func TestValidateProductCollectsOneEntryPerViolatedField(t *testing.T) {
	p := validProduct()
	p.Name = "x"
	p.Price = 0
	p.Description = "too short"
	p.Images = nil

	fields := validateProduct(&p, models.DefaultFacetCatalog(), true)
	assert.ElementsMatch(t, []string{"name", "price", "description", "images"}, fieldNames(fields))
}

// Length bounds count characters, not bytes: a 100-rune accented name is
// 200 bytes and must still pass.
func TestValidateProductLengthBoundsCountRunes(t *testing.T) {
	p := validProduct()
	p.Name = strings.Repeat("é", nameMaxLen)
	assert.Empty(t, validateProduct(&p, models.DefaultFacetCatalog(), true))

	p.Name = strings.Repeat("é", nameMaxLen+1)
	fields := validateProduct(&p, models.DefaultFacetCatalog(), true)
	require.Len(t, fields, 1)
	assert.Equal(t, "name", fields[0].Field)
}

func TestValidateProductRejectsNonHTTPImageURL(t *testing.T) {
	p := validProduct()
	p.Images = []string{"https://ok.example.com/a.jpg", "ftp://bad.example.com/b.jpg", "not-a-url"}

	fields := validateProduct(&p, models.DefaultFacetCatalog(), true)
	assert.ElementsMatch(t, []string{"images[1]", "images[2]"}, fieldNames(fields))
}

func TestValidateProductRejectsSelectedOptionOutsideGroup(t *testing.T) {
	p := validProduct()
	p.PredefinedFields = []models.PredefinedField{{
		Category:        "color",
		Options:         []string{"black", "white"},
		SelectedOptions: []string{"black", "red"},
		IsActive:        true,
	}}

	fields := validateProduct(&p, models.DefaultFacetCatalog(), true)
	require.Len(t, fields, 1)
	assert.Equal(t, "predefinedFields[0].selectedOptions", fields[0].Field)
	assert.Equal(t, "red", fields[0].Value)
}

func TestValidateProductRejectsUnknownFacetCategory(t *testing.T) {
	p := validProduct()
	p.PredefinedFields = []models.PredefinedField{{Category: "flavor"}}

	fields := validateProduct(&p, models.DefaultFacetCatalog(), true)
	require.Len(t, fields, 1)
	assert.Equal(t, "predefinedFields[0].category", fields[0].Field)
}

func TestValidateProductDynamicFieldBounds(t *testing.T) {
	longKey := make([]byte, 51)
	for i := range longKey {
		longKey[i] = 'k'
	}

	p := validProduct()
	p.DynamicFields = []models.DynamicField{
		{Key: string(longKey), Placeholder: "Your engraving"},
		{Key: "engraving", Placeholder: ""},
	}

	fields := validateProduct(&p, models.DefaultFacetCatalog(), true)
	assert.ElementsMatch(t,
		[]string{"dynamicFields[0].key", "dynamicFields[1].placeholder"},
		fieldNames(fields))
}

func TestValidateOffersCallerRangeIsTighterThanStoredRange(t *testing.T) {
	until := time.Now().Add(time.Hour)
	offers := []models.Offer{
		{Title: "Launch", Discount: 0, ValidUntil: &until, IsActive: true},
		{Title: "Clearance", Discount: 100, IsActive: true},
		{Title: "Spring", Discount: 50, IsActive: true},
	}

	// caller-supplied: 0 and 100 rejected
	fields := validateOffers(offers, true)
	assert.ElementsMatch(t, []string{"offers[0].discount", "offers[1].discount"}, fieldNames(fields))

	// stored range tolerates the full [0,100]
	assert.Empty(t, validateOffers(offers, false))
}

func TestValidateOffersRequiresTitle(t *testing.T) {
	fields := validateOffers([]models.Offer{{Title: "  ", Discount: 10}}, true)
	require.Len(t, fields, 1)
	assert.Equal(t, "offers[0].title", fields[0].Field)
}
