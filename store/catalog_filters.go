package store

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/karimelhadi/atelierbackend/dto"
	"github.com/karimelhadi/atelierbackend/models"
)

// ProductQuery is the criteria set accepted by list and search.
type ProductQuery struct {
	Category  string
	MinPrice  *float64
	MaxPrice  *float64
	OnSale    bool
	HasOffers bool
	Text      string
	Page      int
	Limit     int
}

// buildProductFilter translates the criteria into a mongo filter. Offer
// activity is evaluated against now on every call, never cached.
//
// onSale deliberately compares discountPrice against the product's own
// price, not against the caller's minPrice. The legacy behavior compared
// against minPrice, which made "on sale" depend on the filter itself.
func buildProductFilter(q ProductQuery, now time.Time) bson.M {
	filter := bson.M{}

	if q.Category != "" {
		filter["predefinedFields"] = bson.M{"$elemMatch": bson.M{
			"category": q.Category,
			"isActive": true,
		}}
	}

	price := bson.M{}
	if q.MinPrice != nil {
		price["$gte"] = *q.MinPrice
	}
	if q.MaxPrice != nil {
		price["$lte"] = *q.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	if q.OnSale {
		filter["discountPrice"] = bson.M{"$ne": nil}
		filter["$expr"] = bson.M{"$lt": bson.A{"$discountPrice", "$price"}}
	}

	if q.HasOffers {
		filter["offers"] = bson.M{"$elemMatch": bson.M{
			"isActive": true,
			"$or": bson.A{
				bson.M{"validUntil": bson.M{"$exists": false}},
				bson.M{"validUntil": nil},
				bson.M{"validUntil": bson.M{"$gt": now}},
			},
		}}
	}

	if q.Text != "" {
		filter["$text"] = bson.M{"$search": q.Text}
	}

	return filter
}

// buildProductSet turns a partial patch into a $set document. Only
// supplied fields appear, so concurrent updates to disjoint fields do
// not clobber each other.
func buildProductSet(patch dto.UpdateProductDTO, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}

	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.DiscountPrice != nil {
		set["discountPrice"] = *patch.DiscountPrice
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Images != nil {
		set["images"] = *patch.Images
	}
	if patch.DynamicFields != nil {
		set["dynamicFields"] = dynamicFieldsFromDTO(*patch.DynamicFields)
	}
	if patch.PredefinedFields != nil {
		set["predefinedFields"] = predefinedFieldsFromDTO(*patch.PredefinedFields)
	}
	if patch.Offers != nil {
		set["offers"] = offersFromDTO(*patch.Offers)
	}
	if patch.HiddenFields != nil {
		set["hiddenFields"] = hiddenFieldsFromDTO(*patch.HiddenFields)
	}
	if patch.Reference != nil {
		set["reference"] = *patch.Reference
	}

	return set
}

// guardPricePair narrows a bulk match filter when only one side of the
// price/discount pair travels in the patch. Products that would end up
// with discountPrice >= price fall out of the match, surfacing in the
// matched/modified counts instead of breaking the invariant.
func guardPricePair(filter bson.M, patch dto.UpdateProductDTO) {
	if patch.DiscountPrice != nil && patch.Price == nil {
		filter["price"] = bson.M{"$gt": *patch.DiscountPrice}
	}
	if patch.Price != nil && patch.DiscountPrice == nil {
		filter["$or"] = bson.A{
			bson.M{"discountPrice": nil},
			bson.M{"discountPrice": bson.M{"$lt": *patch.Price}},
		}
	}
}

// applyProductPatch merges a partial patch into a loaded product so the
// merged entity can be revalidated before anything is persisted.
func applyProductPatch(p *models.Product, patch dto.UpdateProductDTO) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.DiscountPrice != nil {
		p.DiscountPrice = patch.DiscountPrice
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Images != nil {
		p.Images = *patch.Images
	}
	if patch.DynamicFields != nil {
		p.DynamicFields = dynamicFieldsFromDTO(*patch.DynamicFields)
	}
	if patch.PredefinedFields != nil {
		p.PredefinedFields = predefinedFieldsFromDTO(*patch.PredefinedFields)
	}
	if patch.Offers != nil {
		p.Offers = offersFromDTO(*patch.Offers)
	}
	if patch.HiddenFields != nil {
		p.HiddenFields = hiddenFieldsFromDTO(*patch.HiddenFields)
	}
	if patch.Reference != nil {
		p.Reference = *patch.Reference
	}
}

func dynamicFieldsFromDTO(in []dto.DynamicFieldDTO) []models.DynamicField {
	out := make([]models.DynamicField, 0, len(in))
	for _, f := range in {
		out = append(out, models.DynamicField{Key: f.Key, Placeholder: f.Placeholder})
	}
	return out
}

func predefinedFieldsFromDTO(in []dto.PredefinedFieldDTO) []models.PredefinedField {
	out := make([]models.PredefinedField, 0, len(in))
	for _, f := range in {
		options := f.Options
		if options == nil {
			options = []string{}
		}
		selected := f.SelectedOptions
		if selected == nil {
			selected = []string{}
		}
		out = append(out, models.PredefinedField{
			Category:        f.Category,
			Options:         options,
			SelectedOptions: selected,
			IsActive:        f.IsActive,
		})
	}
	return out
}

func offersFromDTO(in []dto.OfferDTO) []models.Offer {
	out := make([]models.Offer, 0, len(in))
	for _, o := range in {
		out = append(out, models.Offer{
			Title:      o.Title,
			Discount:   o.Discount,
			ValidUntil: o.ValidUntil,
			IsActive:   o.IsActive,
		})
	}
	return out
}

func hiddenFieldsFromDTO(in []dto.HiddenFieldDTO) []models.HiddenField {
	out := make([]models.HiddenField, 0, len(in))
	for _, f := range in {
		out = append(out, models.HiddenField{Key: f.Key, Value: f.Value, Description: f.Description})
	}
	return out
}
