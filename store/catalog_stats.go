package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/karimelhadi/atelierbackend/models"
)

type FacetUsage struct {
	Category string `bson:"_id" json:"category"`
	Count    int64  `bson:"count" json:"count"`
}

type ProductStats struct {
	TotalProducts       int64                   `json:"totalProducts"`
	OnSaleCount         int64                   `json:"onSaleCount"`
	WithEffectiveOffers int64                   `json:"withEffectiveOffers"`
	FacetUsage          []FacetUsage            `json:"facetUsage"`
	RecentProducts      []models.ProductSummary `json:"recentProducts"`
}

// Stats aggregates catalog-wide numbers. Offer effectiveness is computed
// against now, so two calls straddling a validUntil boundary will differ.
func (s *CatalogStore) Stats(ctx context.Context) (*ProductStats, error) {
	now := time.Now().UTC()
	stats := &ProductStats{}

	total, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	stats.TotalProducts = total

	onSale, err := s.col.CountDocuments(ctx, bson.M{
		"discountPrice": bson.M{"$ne": nil},
		"$expr":         bson.M{"$lt": bson.A{"$discountPrice", "$price"}},
	})
	if err != nil {
		return nil, err
	}
	stats.OnSaleCount = onSale

	withOffers, err := s.col.CountDocuments(ctx, bson.M{
		"offers": bson.M{"$elemMatch": bson.M{
			"isActive": true,
			"$or": bson.A{
				bson.M{"validUntil": bson.M{"$exists": false}},
				bson.M{"validUntil": nil},
				bson.M{"validUntil": bson.M{"$gt": now}},
			},
		}},
	})
	if err != nil {
		return nil, err
	}
	stats.WithEffectiveOffers = withOffers

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$unwind", Value: "$predefinedFields"}},
		bson.D{{Key: "$match", Value: bson.M{"predefinedFields.isActive": true}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$predefinedFields.category",
			"count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"count": -1}}},
	}
	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	stats.FacetUsage = make([]FacetUsage, 0)
	if err := cursor.All(ctx, &stats.FacetUsage); err != nil {
		return nil, err
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(5).
		SetProjection(bson.M{
			"name":          1,
			"price":         1,
			"discountPrice": 1,
			"images":        1,
			"createdAt":     1,
		})
	recent, err := s.col.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, err
	}
	defer recent.Close(ctx)
	stats.RecentProducts = make([]models.ProductSummary, 0, 5)
	if err := recent.All(ctx, &stats.RecentProducts); err != nil {
		return nil, err
	}

	return stats, nil
}
