package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOfferEffectiveAt(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)
	earlier := now.Add(-time.Hour)

	tests := []struct {
		name  string
		offer Offer
		want  bool
	}{
		{"active without expiry", Offer{IsActive: true}, true},
		{"active before expiry", Offer{IsActive: true, ValidUntil: &later}, true},
		{"active past expiry", Offer{IsActive: true, ValidUntil: &earlier}, false},
		{"expiry equal to now", Offer{IsActive: true, ValidUntil: &now}, false},
		{"inactive regardless of date", Offer{IsActive: false, ValidUntil: &later}, false},
		{"inactive without expiry", Offer{IsActive: false}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.offer.EffectiveAt(now))
		})
	}
}

// The same offer flips from effective to expired purely by elapsed time;
// nothing on the entity changes.
func TestOfferActivityIsReDerivedPerCall(t *testing.T) {
	until := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	offer := Offer{Title: "Summer", Discount: 20, ValidUntil: &until, IsActive: true}

	assert.True(t, offer.EffectiveAt(until.Add(-time.Second)))
	assert.False(t, offer.EffectiveAt(until.Add(time.Second)))
}

func TestProductHasEffectiveOffer(t *testing.T) {
	past := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	p := Product{Offers: []Offer{
		{IsActive: true, ValidUntil: &past},
		{IsActive: false},
	}}
	assert.False(t, p.HasEffectiveOffer(now))

	p.Offers = append(p.Offers, Offer{IsActive: true})
	assert.True(t, p.HasEffectiveOffer(now))
}

func TestProductUnitPriceAndOnSale(t *testing.T) {
	discount := 80.0
	p := Product{Price: 100, DiscountPrice: &discount}
	assert.Equal(t, 80.0, p.UnitPrice())
	assert.True(t, p.OnSale())

	p.DiscountPrice = nil
	assert.Equal(t, 100.0, p.UnitPrice())
	assert.False(t, p.OnSale())

	equal := 100.0
	p.DiscountPrice = &equal
	assert.False(t, p.OnSale())
}

func TestWithoutHiddenFields(t *testing.T) {
	p := Product{
		Name:         "Jacket",
		HiddenFields: []HiddenField{{Key: "campaign", Value: "q3-meta"}},
	}

	public := p.WithoutHiddenFields()
	assert.Nil(t, public.HiddenFields)
	assert.NotNil(t, p.HiddenFields) // original untouched
}
