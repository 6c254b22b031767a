package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type InquiryStatus string

const (
	InquiryStatusPending   InquiryStatus = "pending"
	InquiryStatusContacted InquiryStatus = "contacted"
	InquiryStatusConverted InquiryStatus = "converted"
	InquiryStatusCancelled InquiryStatus = "cancelled"
)

// ValidInquiryStatus reports whether s is one of the known statuses.
func ValidInquiryStatus(s string) bool {
	switch InquiryStatus(s) {
	case InquiryStatusPending, InquiryStatusContacted, InquiryStatusConverted, InquiryStatusCancelled:
		return true
	}
	return false
}

type CustomerData struct {
	Name      string `bson:"name" json:"name"`
	Phone     string `bson:"phone" json:"phone"`
	Reference string `bson:"reference" json:"reference"`
}

// SelectedVariant is one facet choice made by the customer. Kept as an
// ordered list of pairs so serialization stays deterministic.
type SelectedVariant struct {
	Category string `bson:"category" json:"category"`
	Value    string `bson:"value" json:"value"`
}

// OrderInquiry records a customer's request-to-purchase against one
// product. ProductID is a weak reference: the product may be edited or
// deleted later without touching the inquiry. ProductName and TotalPrice
// are snapshots frozen at creation time.
type OrderInquiry struct {
	ID               bson.ObjectID     `bson:"_id,omitempty" json:"id"`
	ProductID        bson.ObjectID     `bson:"productId" json:"productId"`
	ProductName      string            `bson:"productName" json:"productName"`
	CustomerData     CustomerData      `bson:"customerData" json:"customerData"`
	Quantity         int               `bson:"quantity" json:"quantity"`
	SelectedVariants []SelectedVariant `bson:"selectedVariants" json:"selectedVariants"`
	TotalPrice       float64           `bson:"totalPrice" json:"totalPrice"`
	Status           InquiryStatus     `bson:"status" json:"status"`
	Notes            string            `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt        time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// InquiryWithProduct joins an inquiry with the referenced product's
// display fields at read time. Product is nil when the product has been
// deleted since; the stored snapshot fields remain authoritative.
type InquiryWithProduct struct {
	OrderInquiry `bson:",inline"`
	Product      *ProductSummary `json:"product,omitempty"`
}
