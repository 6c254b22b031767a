package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type InquiryStatusBucket struct {
	Status     string  `bson:"_id" json:"status"`
	Count      int64   `bson:"count" json:"count"`
	TotalValue float64 `bson:"totalValue" json:"totalValue"`
}

type TopInquiredProduct struct {
	ProductID    bson.ObjectID `bson:"_id" json:"productId"`
	ProductName  string        `bson:"productName" json:"productName"`
	InquiryCount int64         `bson:"inquiryCount" json:"inquiryCount"`
	TotalValue   float64       `bson:"totalValue" json:"totalValue"`
}

type InquiryStats struct {
	ByStatus        []InquiryStatusBucket `json:"byStatus"`
	TotalInquiries  int64                 `json:"totalInquiries"`
	RecentInquiries int64                 `json:"recentInquiries"`
	TopProducts     []TopInquiredProduct  `json:"topProducts"`
}

// Stats aggregates per-status counts and values, the total, the count of
// inquiries created in the last 7 days, and the 10 most inquired
// products.
func (s *InquiryStore) Stats(ctx context.Context) (*InquiryStats, error) {
	now := time.Now().UTC()
	stats := &InquiryStats{}

	statusPipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":        "$status",
			"count":      bson.M{"$sum": 1},
			"totalValue": bson.M{"$sum": "$totalPrice"},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}
	cursor, err := s.col.Aggregate(ctx, statusPipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	stats.ByStatus = make([]InquiryStatusBucket, 0)
	if err := cursor.All(ctx, &stats.ByStatus); err != nil {
		return nil, err
	}
	for _, b := range stats.ByStatus {
		stats.TotalInquiries += b.Count
	}

	recent, err := s.col.CountDocuments(ctx, bson.M{
		"createdAt": bson.M{"$gte": now.AddDate(0, 0, -7)},
	})
	if err != nil {
		return nil, err
	}
	stats.RecentInquiries = recent

	topPipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":          "$productId",
			"productName":  bson.M{"$last": "$productName"},
			"inquiryCount": bson.M{"$sum": 1},
			"totalValue":   bson.M{"$sum": "$totalPrice"},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "inquiryCount", Value: -1},
			{Key: "totalValue", Value: -1},
		}}},
		bson.D{{Key: "$limit", Value: 10}},
	}
	topCursor, err := s.col.Aggregate(ctx, topPipeline)
	if err != nil {
		return nil, err
	}
	defer topCursor.Close(ctx)
	stats.TopProducts = make([]TopInquiredProduct, 0, 10)
	if err := topCursor.All(ctx, &stats.TopProducts); err != nil {
		return nil, err
	}

	return stats, nil
}
