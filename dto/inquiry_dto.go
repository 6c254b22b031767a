package dto

type CustomerDataDTO struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Reference string `json:"reference" binding:"required"`
}

type SelectedVariantDTO struct {
	Category string `json:"category"`
	Value    string `json:"value"`
}

type CreateInquiryDTO struct {
	ProductID        string               `json:"productId" binding:"required"`
	CustomerData     CustomerDataDTO      `json:"customerData" binding:"required"`
	Quantity         *int                 `json:"quantity,omitempty"`
	SelectedVariants []SelectedVariantDTO `json:"selectedVariants"`
	Notes            string               `json:"notes"`
	TotalPrice       *float64             `json:"totalPrice,omitempty"`
}

// UpdateInquiryDTO patches mutable fields only; id, the product snapshot
// reference and timestamps stay frozen.
type UpdateInquiryDTO struct {
	CustomerData     *CustomerDataDTO      `json:"customerData,omitempty"`
	Quantity         *int                  `json:"quantity,omitempty"`
	SelectedVariants *[]SelectedVariantDTO `json:"selectedVariants,omitempty"`
	TotalPrice       *float64              `json:"totalPrice,omitempty"`
	Status           *string               `json:"status,omitempty"`
	Notes            *string               `json:"notes,omitempty"`
}

type UpdateInquiryStatusDTO struct {
	Status string  `json:"status" binding:"required"`
	Notes  *string `json:"notes,omitempty"`
}
