package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/karimelhadi/atelierbackend/models"
)

func TestSnapshotPricingUsesDiscountPriceWhenPresent(t *testing.T) {
	p := &models.Product{Name: "Jacket", Price: 100, DiscountPrice: floatPtr(80)}

	name, total := SnapshotPricing(p, 3, nil)

	assert.Equal(t, "Jacket", name)
	assert.Equal(t, 240.0, total)
}

func TestSnapshotPricingFallsBackToRegularPrice(t *testing.T) {
	p := &models.Product{Name: "Jacket", Price: 100}

	_, total := SnapshotPricing(p, 2, nil)

	assert.Equal(t, 200.0, total)
}

func TestSnapshotPricingExplicitTotalWins(t *testing.T) {
	p := &models.Product{Name: "Jacket", Price: 100, DiscountPrice: floatPtr(80)}

	_, total := SnapshotPricing(p, 3, floatPtr(500))

	assert.Equal(t, 500.0, total)
}

func TestSnapshotPricingDefaultsQuantityToOne(t *testing.T) {
	p := &models.Product{Name: "Jacket", Price: 100}

	_, total := SnapshotPricing(p, 0, nil)

	assert.Equal(t, 100.0, total)
}
