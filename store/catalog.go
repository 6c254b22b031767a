// Package store owns the catalog and inquiry collections: entity
// validation, filter translation, derived statistics and the price
// snapshot taken at inquiry creation.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/karimelhadi/atelierbackend/dto"
	"github.com/karimelhadi/atelierbackend/models"
	"github.com/karimelhadi/atelierbackend/utils"
)

type CatalogStore struct {
	col    *mongo.Collection
	facets models.FacetCatalog
}

func NewCatalogStore(col *mongo.Collection, facets models.FacetCatalog) *CatalogStore {
	return &CatalogStore{col: col, facets: facets}
}

func parseObjectID(hex, resource string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(hex)
	if err != nil {
		return bson.ObjectID{}, newValidationError([]FieldError{{
			Field:    "id",
			Message:  "invalid " + resource + " id",
			Value:    hex,
			Location: "path",
		}})
	}
	return id, nil
}

func (s *CatalogStore) Create(ctx context.Context, actor models.Actor, in dto.CreateProductDTO) (*models.Product, error) {
	now := time.Now().UTC()

	product := models.Product{
		Name:          in.Name,
		Slug:          utils.GenerateSlug(in.Name),
		Price:         in.Price,
		DiscountPrice: in.DiscountPrice,
		Description:   in.Description,
		Images:        in.Images,
		DynamicFields: dynamicFieldsFromDTO(in.DynamicFields),
		Offers:        offersFromDTO(in.Offers),
		HiddenFields:  hiddenFieldsFromDTO(in.HiddenFields),
		CreatedBy:     actor.ID,
		Reference:     in.Reference,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if in.PredefinedFields != nil {
		product.PredefinedFields = predefinedFieldsFromDTO(*in.PredefinedFields)
	} else {
		product.PredefinedFields = s.facets.DefaultPredefinedFields()
	}

	if fields := validateProduct(&product, s.facets, true); len(fields) > 0 {
		return nil, newValidationError(fields)
	}

	product.ID = bson.NewObjectID()
	if _, err := s.col.InsertOne(ctx, product); err != nil {
		if isDuplicateKey(err) {
			return nil, &DuplicateError{Field: "slug"}
		}
		return nil, err
	}

	return &product, nil
}

func (s *CatalogStore) GetByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := parseObjectID(id, "product")
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{Resource: "product", ID: id}
		}
		return nil, err
	}

	return &product, nil
}

// List returns a page of products plus the total match count. When the
// query carries free text, results are ranked by text score and tie-broken
// by most recent first; otherwise most recent first.
func (s *CatalogStore) List(ctx context.Context, q ProductQuery) ([]models.Product, int64, error) {
	now := time.Now().UTC()
	filter := buildProductFilter(q, now)
	skip := int64((q.Page - 1) * q.Limit)

	findOpts := options.Find().
		SetSkip(skip).
		SetLimit(int64(q.Limit))

	if q.Text != "" {
		findOpts.
			SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}}).
			SetSort(bson.D{
				{Key: "score", Value: bson.M{"$meta": "textScore"}},
				{Key: "createdAt", Value: -1},
			})
	} else {
		findOpts.SetSort(bson.D{{Key: "createdAt", Value: -1}})
	}

	cursor, err := s.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (s *CatalogStore) authorize(actor models.Actor, p *models.Product) error {
	if actor.IsAdmin() || p.CreatedBy == actor.ID {
		return nil
	}
	return &ForbiddenError{Reason: "you do not own this product"}
}

// Update merges the patch into the stored product, revalidates the merged
// entity against the same rules as creation, then persists only the
// supplied fields.
func (s *CatalogStore) Update(ctx context.Context, actor models.Actor, id string, patch dto.UpdateProductDTO) (*models.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, product); err != nil {
		return nil, err
	}

	applyProductPatch(product, patch)
	if fields := validateProduct(product, s.facets, patch.Offers != nil); len(fields) > 0 {
		return nil, newValidationError(fields)
	}

	now := time.Now().UTC()
	set := buildProductSet(patch, now)
	if patch.Name != nil {
		product.Slug = utils.GenerateSlug(*patch.Name)
		set["slug"] = product.Slug
	}

	if _, err := s.col.UpdateByID(ctx, product.ID, bson.M{"$set": set}); err != nil {
		if isDuplicateKey(err) {
			return nil, &DuplicateError{Field: "slug"}
		}
		return nil, err
	}

	product.UpdatedAt = now
	return product, nil
}

func (s *CatalogStore) Delete(ctx context.Context, actor models.Actor, id string) error {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(actor, product); err != nil {
		return err
	}

	// Hard delete. Inquiries referencing this product keep their snapshot
	// and simply lose the read-time join.
	_, err = s.col.DeleteOne(ctx, bson.M{"_id": product.ID})
	return err
}

// cloneSlug appends the tail of the clone's id so repeated clones of the
// same product never collide on the unique slug index.
func cloneSlug(name string, id bson.ObjectID) string {
	hex := id.Hex()
	return utils.GenerateSlug(name) + "-" + hex[len(hex)-6:]
}

// Clone duplicates every field of the source product under a new identity
// owned by the cloning actor, with " (Copy)" appended to the name.
func (s *CatalogStore) Clone(ctx context.Context, actor models.Actor, id string, referenceOverride *string) (*models.Product, error) {
	source, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	clone := *source
	clone.ID = bson.NewObjectID()
	clone.Name = source.Name + " (Copy)"
	clone.Slug = cloneSlug(clone.Name, clone.ID)
	clone.CreatedBy = actor.ID
	clone.CreatedAt = now
	clone.UpdatedAt = now
	if referenceOverride != nil {
		clone.Reference = *referenceOverride
	}

	if _, err := s.col.InsertOne(ctx, clone); err != nil {
		if isDuplicateKey(err) {
			return nil, &DuplicateError{Field: "slug"}
		}
		return nil, err
	}

	return &clone, nil
}

// BulkUpdate applies the patch to every listed product the actor owns
// (admins match all). Not atomic: callers must read matched/modified as
// the only signal of partial application.
func (s *CatalogStore) BulkUpdate(ctx context.Context, actor models.Actor, ids []string, patch dto.UpdateProductDTO) (matched, modified int64, err error) {
	oids := make([]bson.ObjectID, 0, len(ids))
	var fields []FieldError
	for i, id := range ids {
		oid, perr := bson.ObjectIDFromHex(id)
		if perr != nil {
			fields = append(fields, FieldError{
				Field:   fmt.Sprintf("ids[%d]", i),
				Message: "invalid product id",
				Value:   id,
			})
			continue
		}
		oids = append(oids, oid)
	}
	fields = append(fields, validateProductPatch(patch, s.facets)...)
	if len(fields) > 0 {
		return 0, 0, newValidationError(fields)
	}

	filter := bson.M{"_id": bson.M{"$in": oids}}
	if !actor.IsAdmin() {
		filter["createdBy"] = actor.ID
	}
	guardPricePair(filter, patch)

	res, uerr := s.col.UpdateMany(ctx, filter, bson.M{"$set": buildProductSet(patch, time.Now().UTC())})
	if uerr != nil {
		return 0, 0, uerr
	}

	return res.MatchedCount, res.ModifiedCount, nil
}
