package dto

import "time"

type DynamicFieldDTO struct {
	Key         string `json:"key"`
	Placeholder string `json:"placeholder"`
}

type PredefinedFieldDTO struct {
	Category        string   `json:"category"`
	Options         []string `json:"options"`
	SelectedOptions []string `json:"selectedOptions"`
	IsActive        bool     `json:"isActive"`
}

type OfferDTO struct {
	Title      string     `json:"title"`
	Discount   int        `json:"discount"`
	ValidUntil *time.Time `json:"validUntil,omitempty"`
	IsActive   bool       `json:"isActive"`
}

type HiddenFieldDTO struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// CreateProductDTO enforces nothing at bind time; the store validator
// owns every field rule and reports all violated fields at once.
type CreateProductDTO struct {
	Name             string                `json:"name"`
	Price            float64               `json:"price"`
	DiscountPrice    *float64              `json:"discountPrice,omitempty"`
	Description      string                `json:"description"`
	Images           []string              `json:"images"`
	DynamicFields    []DynamicFieldDTO     `json:"dynamicFields"`
	PredefinedFields *[]PredefinedFieldDTO `json:"predefinedFields,omitempty"`
	Offers           []OfferDTO            `json:"offers"`
	HiddenFields     []HiddenFieldDTO      `json:"hiddenFields"`
	Reference        string                `json:"reference"`
}

// UpdateProductDTO carries a partial patch: nil means "leave unchanged".
type UpdateProductDTO struct {
	Name             *string               `json:"name,omitempty"`
	Price            *float64              `json:"price,omitempty"`
	DiscountPrice    *float64              `json:"discountPrice,omitempty"`
	Description      *string               `json:"description,omitempty"`
	Images           *[]string             `json:"images,omitempty"`
	DynamicFields    *[]DynamicFieldDTO    `json:"dynamicFields,omitempty"`
	PredefinedFields *[]PredefinedFieldDTO `json:"predefinedFields,omitempty"`
	Offers           *[]OfferDTO           `json:"offers,omitempty"`
	HiddenFields     *[]HiddenFieldDTO     `json:"hiddenFields,omitempty"`
	Reference        *string               `json:"reference,omitempty"`
}

type CloneProductDTO struct {
	Reference *string `json:"reference,omitempty"`
}

type BulkUpdateProductsDTO struct {
	IDs   []string         `json:"ids" binding:"required,min=1"`
	Patch UpdateProductDTO `json:"patch"`
}
