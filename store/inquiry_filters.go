package store

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/karimelhadi/atelierbackend/dto"
	"github.com/karimelhadi/atelierbackend/models"
)

var phonePattern = regexp.MustCompile(`^[+]?[1-9][0-9]{0,15}$`)

const (
	customerNameMaxLen = 100
	notesMaxLen        = 1000
)

// InquiryQuery is the admin listing criteria set.
type InquiryQuery struct {
	Status    string
	ProductID string
	Phone     string
	Name      string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// buildInquiryFilter translates the criteria into a mongo filter. Phone
// and name are case-insensitive substring matches; the date range is
// inclusive on both ends.
func buildInquiryFilter(q InquiryQuery) (bson.M, error) {
	filter := bson.M{}

	if q.Status != "" {
		if !models.ValidInquiryStatus(q.Status) {
			return nil, newValidationError([]FieldError{{
				Field:    "status",
				Message:  "status must be one of pending, contacted, converted, cancelled",
				Value:    q.Status,
				Location: "query",
			}})
		}
		filter["status"] = q.Status
	}

	if q.ProductID != "" {
		oid, err := bson.ObjectIDFromHex(q.ProductID)
		if err != nil {
			return nil, newValidationError([]FieldError{{
				Field:    "productId",
				Message:  "invalid product id",
				Value:    q.ProductID,
				Location: "query",
			}})
		}
		filter["productId"] = oid
	}

	if q.Phone != "" {
		filter["customerData.phone"] = bson.M{"$regex": regexp.QuoteMeta(q.Phone), "$options": "i"}
	}
	if q.Name != "" {
		filter["customerData.name"] = bson.M{"$regex": regexp.QuoteMeta(q.Name), "$options": "i"}
	}

	createdAt := bson.M{}
	if q.StartDate != nil {
		createdAt["$gte"] = *q.StartDate
	}
	if q.EndDate != nil {
		createdAt["$lte"] = *q.EndDate
	}
	if len(createdAt) > 0 {
		filter["createdAt"] = createdAt
	}

	return filter, nil
}

func validateCustomerData(cd models.CustomerData) []FieldError {
	var fields []FieldError

	name := strings.TrimSpace(cd.Name)
	if name == "" || utf8.RuneCountInString(name) > customerNameMaxLen {
		fields = append(fields, FieldError{
			Field:   "customerData.name",
			Message: fmt.Sprintf("name is required and must be at most %d characters", customerNameMaxLen),
			Value:   cd.Name,
		})
	}

	if !phonePattern.MatchString(cd.Phone) {
		fields = append(fields, FieldError{
			Field:   "customerData.phone",
			Message: "phone must be a valid international number",
			Value:   cd.Phone,
		})
	}

	ref := strings.TrimSpace(cd.Reference)
	if ref == "" || utf8.RuneCountInString(ref) > referenceMaxLen {
		fields = append(fields, FieldError{
			Field:   "customerData.reference",
			Message: fmt.Sprintf("reference is required and must be at most %d characters", referenceMaxLen),
			Value:   cd.Reference,
		})
	}

	return fields
}

func validateInquiry(inq *models.OrderInquiry) []FieldError {
	fields := validateCustomerData(inq.CustomerData)

	if inq.Quantity < 1 {
		fields = append(fields, FieldError{
			Field:   "quantity",
			Message: "quantity must be at least 1",
			Value:   inq.Quantity,
		})
	}
	if inq.TotalPrice < 0 {
		fields = append(fields, FieldError{
			Field:   "totalPrice",
			Message: "total price cannot be negative",
			Value:   inq.TotalPrice,
		})
	}
	if !models.ValidInquiryStatus(string(inq.Status)) {
		fields = append(fields, FieldError{
			Field:   "status",
			Message: "status must be one of pending, contacted, converted, cancelled",
			Value:   string(inq.Status),
		})
	}
	if utf8.RuneCountInString(inq.Notes) > notesMaxLen {
		fields = append(fields, FieldError{
			Field:   "notes",
			Message: fmt.Sprintf("notes must be at most %d characters", notesMaxLen),
			Value:   inq.Notes,
		})
	}

	return fields
}

// applyInquiryPatch merges a partial patch into a loaded inquiry. The
// product reference and snapshot name stay frozen; an explicit totalPrice
// in the patch replaces the snapshot total.
func applyInquiryPatch(inq *models.OrderInquiry, patch dto.UpdateInquiryDTO) {
	if patch.CustomerData != nil {
		inq.CustomerData = models.CustomerData{
			Name:      patch.CustomerData.Name,
			Phone:     patch.CustomerData.Phone,
			Reference: patch.CustomerData.Reference,
		}
	}
	if patch.Quantity != nil {
		inq.Quantity = *patch.Quantity
	}
	if patch.SelectedVariants != nil {
		inq.SelectedVariants = selectedVariantsFromDTO(*patch.SelectedVariants)
	}
	if patch.TotalPrice != nil {
		inq.TotalPrice = *patch.TotalPrice
	}
	if patch.Status != nil {
		inq.Status = models.InquiryStatus(*patch.Status)
	}
	if patch.Notes != nil {
		inq.Notes = *patch.Notes
	}
}

func buildInquirySet(patch dto.UpdateInquiryDTO, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}

	if patch.CustomerData != nil {
		set["customerData"] = models.CustomerData{
			Name:      patch.CustomerData.Name,
			Phone:     patch.CustomerData.Phone,
			Reference: patch.CustomerData.Reference,
		}
	}
	if patch.Quantity != nil {
		set["quantity"] = *patch.Quantity
	}
	if patch.SelectedVariants != nil {
		set["selectedVariants"] = selectedVariantsFromDTO(*patch.SelectedVariants)
	}
	if patch.TotalPrice != nil {
		set["totalPrice"] = *patch.TotalPrice
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.Notes != nil {
		set["notes"] = *patch.Notes
	}

	return set
}

func selectedVariantsFromDTO(in []dto.SelectedVariantDTO) []models.SelectedVariant {
	out := make([]models.SelectedVariant, 0, len(in))
	for _, v := range in {
		out = append(out, models.SelectedVariant{Category: v.Category, Value: v.Value})
	}
	return out
}
