package store

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/karimelhadi/atelierbackend/dto"
	"github.com/karimelhadi/atelierbackend/models"
)

// InquiryStore records customer purchase inquiries. It depends on the
// catalog store only to read a product snapshot at creation time and to
// resolve the informational join on reads; it never holds a live
// reference to product state.
type InquiryStore struct {
	col     *mongo.Collection
	catalog *CatalogStore
}

func NewInquiryStore(col *mongo.Collection, catalog *CatalogStore) *InquiryStore {
	return &InquiryStore{col: col, catalog: catalog}
}

// Create resolves the product, freezes its name and price into the new
// inquiry, and persists it as pending. A missing product surfaces as
// NotFoundError, never masked.
func (s *InquiryStore) Create(ctx context.Context, in dto.CreateInquiryDTO) (*models.InquiryWithProduct, error) {
	product, err := s.catalog.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}

	quantity := 1
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	productName, totalPrice := SnapshotPricing(product, quantity, in.TotalPrice)

	now := time.Now().UTC()
	inquiry := models.OrderInquiry{
		ProductID:        product.ID,
		ProductName:      productName,
		CustomerData:     models.CustomerData{Name: in.CustomerData.Name, Phone: in.CustomerData.Phone, Reference: in.CustomerData.Reference},
		Quantity:         quantity,
		SelectedVariants: selectedVariantsFromDTO(in.SelectedVariants),
		TotalPrice:       totalPrice,
		Status:           models.InquiryStatusPending,
		Notes:            in.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if fields := validateInquiry(&inquiry); len(fields) > 0 {
		return nil, newValidationError(fields)
	}

	inquiry.ID = bson.NewObjectID()
	if _, err := s.col.InsertOne(ctx, inquiry); err != nil {
		return nil, err
	}

	return s.withProduct(ctx, inquiry), nil
}

// withProduct attaches the referenced product's display fields. The join
// is read-time and informational only: a deleted product simply yields a
// nil block while the stored snapshot stays intact.
func (s *InquiryStore) withProduct(ctx context.Context, inquiry models.OrderInquiry) *models.InquiryWithProduct {
	out := &models.InquiryWithProduct{OrderInquiry: inquiry}

	product, err := s.catalog.GetByID(ctx, inquiry.ProductID.Hex())
	if err != nil {
		return out
	}
	out.Product = &models.ProductSummary{
		ID:            product.ID,
		Name:          product.Name,
		Price:         product.Price,
		DiscountPrice: product.DiscountPrice,
		Images:        product.Images,
		CreatedAt:     product.CreatedAt,
	}
	return out
}

func (s *InquiryStore) GetByID(ctx context.Context, id string) (*models.InquiryWithProduct, error) {
	inquiry, err := s.getRaw(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withProduct(ctx, *inquiry), nil
}

func (s *InquiryStore) getRaw(ctx context.Context, id string) (*models.OrderInquiry, error) {
	oid, err := parseObjectID(id, "inquiry")
	if err != nil {
		return nil, err
	}

	var inquiry models.OrderInquiry
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&inquiry); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{Resource: "inquiry", ID: id}
		}
		return nil, err
	}
	return &inquiry, nil
}

func (s *InquiryStore) List(ctx context.Context, q InquiryQuery) ([]models.OrderInquiry, int64, error) {
	filter, err := buildInquiryFilter(q)
	if err != nil {
		return nil, 0, err
	}

	findOpts := options.Find().
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit)).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	inquiries := make([]models.OrderInquiry, 0)
	if err := cursor.All(ctx, &inquiries); err != nil {
		return nil, 0, err
	}

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return inquiries, total, nil
}

// Update merges the patch into the stored inquiry, revalidates against
// the same constraints as creation, then persists the supplied fields.
func (s *InquiryStore) Update(ctx context.Context, id string, patch dto.UpdateInquiryDTO) (*models.InquiryWithProduct, error) {
	inquiry, err := s.getRaw(ctx, id)
	if err != nil {
		return nil, err
	}

	applyInquiryPatch(inquiry, patch)
	if fields := validateInquiry(inquiry); len(fields) > 0 {
		return nil, newValidationError(fields)
	}

	now := time.Now().UTC()
	if _, err := s.col.UpdateByID(ctx, inquiry.ID, bson.M{"$set": buildInquirySet(patch, now)}); err != nil {
		return nil, err
	}
	inquiry.UpdatedAt = now

	return s.withProduct(ctx, *inquiry), nil
}

// UpdateStatus moves the inquiry to one of the known statuses; supplied
// notes replace the stored ones.
func (s *InquiryStore) UpdateStatus(ctx context.Context, id, status string, notes *string) (*models.InquiryWithProduct, error) {
	if !models.ValidInquiryStatus(status) {
		return nil, newValidationError([]FieldError{{
			Field:   "status",
			Message: "status must be one of pending, contacted, converted, cancelled",
			Value:   status,
		}})
	}
	if notes != nil && utf8.RuneCountInString(*notes) > notesMaxLen {
		return nil, newValidationError([]FieldError{{
			Field:   "notes",
			Message: "notes must be at most 1000 characters",
			Value:   *notes,
		}})
	}

	oid, err := parseObjectID(id, "inquiry")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	set := bson.M{"status": status, "updatedAt": now}
	if notes != nil {
		set["notes"] = *notes
	}

	res, err := s.col.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, &NotFoundError{Resource: "inquiry", ID: id}
	}

	return s.GetByID(ctx, id)
}

// Delete removes the inquiry and returns the removed document.
func (s *InquiryStore) Delete(ctx context.Context, id string) (*models.OrderInquiry, error) {
	oid, err := parseObjectID(id, "inquiry")
	if err != nil {
		return nil, err
	}

	var deleted models.OrderInquiry
	if err := s.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&deleted); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{Resource: "inquiry", ID: id}
		}
		return nil, err
	}

	return &deleted, nil
}
