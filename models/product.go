package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type DynamicField struct {
	Key         string `bson:"key" json:"key"`
	Placeholder string `bson:"placeholder" json:"placeholder"`
}

type PredefinedField struct {
	Category        string   `bson:"category" json:"category"`
	Options         []string `bson:"options" json:"options"`
	SelectedOptions []string `bson:"selectedOptions" json:"selectedOptions"`
	IsActive        bool     `bson:"isActive" json:"isActive"`
}

type Offer struct {
	Title      string     `bson:"title" json:"title"`
	Discount   int        `bson:"discount" json:"discount"`
	ValidUntil *time.Time `bson:"validUntil,omitempty" json:"validUntil,omitempty"`
	IsActive   bool       `bson:"isActive" json:"isActive"`
}

// EffectiveAt reports whether the offer is active at the given instant.
// Activity is always re-derived from validUntil at read time, never stored.
func (o Offer) EffectiveAt(now time.Time) bool {
	if !o.IsActive {
		return false
	}
	return o.ValidUntil == nil || o.ValidUntil.After(now)
}

type HiddenField struct {
	Key         string `bson:"key" json:"key"`
	Value       string `bson:"value" json:"value"`
	Description string `bson:"description" json:"description"`
}

type Product struct {
	ID               bson.ObjectID     `bson:"_id,omitempty" json:"id"`
	Name             string            `bson:"name" json:"name"`
	Slug             string            `bson:"slug" json:"slug"`
	Price            float64           `bson:"price" json:"price"`
	DiscountPrice    *float64          `bson:"discountPrice,omitempty" json:"discountPrice,omitempty"`
	Description      string            `bson:"description" json:"description"`
	Images           []string          `bson:"images" json:"images"`
	DynamicFields    []DynamicField    `bson:"dynamicFields" json:"dynamicFields"`
	PredefinedFields []PredefinedField `bson:"predefinedFields" json:"predefinedFields"`
	Offers           []Offer           `bson:"offers" json:"offers"`
	HiddenFields     []HiddenField     `bson:"hiddenFields" json:"hiddenFields,omitempty"`
	CreatedBy        bson.ObjectID     `bson:"createdBy" json:"createdBy"`
	Reference        string            `bson:"reference,omitempty" json:"reference,omitempty"`
	CreatedAt        time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// OnSale reports whether the product carries a discount price that
// actually undercuts the regular price.
func (p Product) OnSale() bool {
	return p.DiscountPrice != nil && *p.DiscountPrice < p.Price
}

// UnitPrice is the price a single unit sells for right now.
func (p Product) UnitPrice() float64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

// HasEffectiveOffer reports whether at least one offer is active at now.
func (p Product) HasEffectiveOffer(now time.Time) bool {
	for _, o := range p.Offers {
		if o.EffectiveAt(now) {
			return true
		}
	}
	return false
}

// WithoutHiddenFields returns a copy safe for public responses. Hidden
// fields carry internal campaign attribution and never reach customers.
func (p Product) WithoutHiddenFields() Product {
	p.HiddenFields = nil
	return p
}

// ProductSummary is the projected shape used by dashboards and the
// inquiry read-time join.
type ProductSummary struct {
	ID            bson.ObjectID `bson:"_id" json:"id"`
	Name          string        `bson:"name" json:"name"`
	Price         float64       `bson:"price" json:"price"`
	DiscountPrice *float64      `bson:"discountPrice,omitempty" json:"discountPrice,omitempty"`
	Images        []string      `bson:"images" json:"images"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
}
