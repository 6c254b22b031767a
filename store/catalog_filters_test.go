package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/karimelhadi/atelierbackend/dto"
	"github.com/karimelhadi/atelierbackend/models"
)

func strPtr(s string) *string { return &s }

func TestBuildProductFilterEmptyQuery(t *testing.T) {
	filter := buildProductFilter(ProductQuery{}, time.Now())
	assert.Empty(t, filter)
}

func TestBuildProductFilterCategoryRequiresActiveFacet(t *testing.T) {
	filter := buildProductFilter(ProductQuery{Category: "color"}, time.Now())

	elem, ok := filter["predefinedFields"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, bson.M{"$elemMatch": bson.M{"category": "color", "isActive": true}}, elem)
}

func TestBuildProductFilterPriceRangeInclusive(t *testing.T) {
	filter := buildProductFilter(ProductQuery{
		MinPrice: floatPtr(10),
		MaxPrice: floatPtr(50),
	}, time.Now())

	assert.Equal(t, bson.M{"$gte": 10.0, "$lte": 50.0}, filter["price"])
}

// The legacy implementation compared discountPrice against the caller's
// minPrice. The filter here pins the corrected semantics: a product is on
// sale relative to its own price, regardless of any price criteria.
func TestBuildProductFilterOnSaleComparesAgainstOwnPrice(t *testing.T) {
	filter := buildProductFilter(ProductQuery{OnSale: true, MinPrice: floatPtr(10)}, time.Now())

	assert.Equal(t, bson.M{"$lt": bson.A{"$discountPrice", "$price"}}, filter["$expr"])
	assert.Equal(t, bson.M{"$ne": nil}, filter["discountPrice"])
}

func TestBuildProductFilterHasOffersEvaluatesAtNow(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	filter := buildProductFilter(ProductQuery{HasOffers: true}, now)

	offers, ok := filter["offers"].(bson.M)
	require.True(t, ok)
	elem, ok := offers["$elemMatch"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, true, elem["isActive"])

	or, ok := elem["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 3)
	assert.Contains(t, or, bson.M{"validUntil": bson.M{"$gt": now}})
}

func TestBuildProductFilterTextSearch(t *testing.T) {
	filter := buildProductFilter(ProductQuery{Text: "linen jacket"}, time.Now())
	assert.Equal(t, bson.M{"$search": "linen jacket"}, filter["$text"])
}

func TestBuildProductSetOnlyIncludesSuppliedFields(t *testing.T) {
	now := time.Now().UTC()
	set := buildProductSet(dto.UpdateProductDTO{
		Price:     floatPtr(99),
		Reference: strPtr("summer-campaign"),
	}, now)

	assert.Equal(t, bson.M{
		"updatedAt": now,
		"price":     99.0,
		"reference": "summer-campaign",
	}, set)
}

func TestApplyProductPatchLeavesOmittedFieldsUntouched(t *testing.T) {
	p := validProduct()
	original := p

	applyProductPatch(&p, dto.UpdateProductDTO{
		Name:          strPtr("Linen Winter Jacket"),
		DiscountPrice: floatPtr(80),
	})

	assert.Equal(t, "Linen Winter Jacket", p.Name)
	require.NotNil(t, p.DiscountPrice)
	assert.Equal(t, 80.0, *p.DiscountPrice)
	assert.Equal(t, original.Price, p.Price)
	assert.Equal(t, original.Description, p.Description)
	assert.Equal(t, original.Images, p.Images)
}

func TestApplyProductPatchReplacesNestedCollections(t *testing.T) {
	p := validProduct()

	applyProductPatch(&p, dto.UpdateProductDTO{
		Offers: &[]dto.OfferDTO{{Title: "Spring sale", Discount: 20, IsActive: true}},
	})

	require.Len(t, p.Offers, 1)
	assert.Equal(t, models.Offer{Title: "Spring sale", Discount: 20, IsActive: true}, p.Offers[0])
}

// A lone discountPrice passes patch validation, so the bulk filter must
// exclude any product whose stored price the new discount would not
// undercut.
func TestGuardPricePairLoneDiscountMatchesOnlyMoreExpensiveProducts(t *testing.T) {
	filter := bson.M{"_id": bson.M{"$in": bson.A{}}}
	guardPricePair(filter, dto.UpdateProductDTO{DiscountPrice: floatPtr(60)})

	assert.Equal(t, bson.M{"$gt": 60.0}, filter["price"])
}

func TestGuardPricePairLonePriceExcludesHigherStoredDiscounts(t *testing.T) {
	filter := bson.M{}
	guardPricePair(filter, dto.UpdateProductDTO{Price: floatPtr(50)})

	assert.Equal(t, bson.A{
		bson.M{"discountPrice": nil},
		bson.M{"discountPrice": bson.M{"$lt": 50.0}},
	}, filter["$or"])
}

func TestGuardPricePairNoopWhenBothOrNeitherTravel(t *testing.T) {
	filter := bson.M{}
	guardPricePair(filter, dto.UpdateProductDTO{})
	assert.Empty(t, filter)

	guardPricePair(filter, dto.UpdateProductDTO{Price: floatPtr(50), DiscountPrice: floatPtr(40)})
	assert.Empty(t, filter)
}

func TestValidateProductPatchCrossChecksDiscountOnlyWhenPricePresent(t *testing.T) {
	facets := models.DefaultFacetCatalog()

	// both travel together: invariant enforced
	fields := validateProductPatch(dto.UpdateProductDTO{
		Price:         floatPtr(50),
		DiscountPrice: floatPtr(60),
	}, facets)
	require.Len(t, fields, 1)
	assert.Equal(t, "patch.discountPrice", fields[0].Field)

	// lone discount: only the sign is checkable
	assert.Empty(t, validateProductPatch(dto.UpdateProductDTO{DiscountPrice: floatPtr(60)}, facets))
	fields = validateProductPatch(dto.UpdateProductDTO{DiscountPrice: floatPtr(-1)}, facets)
	require.Len(t, fields, 1)
	assert.Equal(t, "patch.discountPrice", fields[0].Field)
}
