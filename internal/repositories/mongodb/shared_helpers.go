package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SAP-F-2025/hostel-service/internal/models"
	"github.com/SAP-F-2025/hostel-service/internal/repositories"
)

const (
	StudentsCollection = "students"
	FoodsCollection    = "foods"
	UsersCollection    = "distribution"
)

func insertAck(res *mongo.InsertOneResult) *models.InsertAck {
	return &models.InsertAck{Acknowledged: true, InsertedID: res.InsertedID}
}

func deleteAck(res *mongo.DeleteResult) *models.DeleteAck {
	return &models.DeleteAck{Acknowledged: true, DeletedCount: res.DeletedCount}
}

func updateAck(res *mongo.UpdateResult) *models.UpdateAck {
	return &models.UpdateAck{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}
}

// findOptions applies skip/limit. A zero limit leaves the cursor unbounded.
func findOptions(filters repositories.ListFilters) *options.FindOptions {
	opts := options.Find()
	if filters.Offset > 0 {
		opts.SetSkip(filters.Offset)
	}
	if filters.Limit > 0 {
		opts.SetLimit(filters.Limit)
	}
	return opts
}

// findOne decodes the first match into a new T, returning nil when there is none.
func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.D) (*T, error) {
	var out T
	err := coll.FindOne(ctx, filter).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", coll.Name(), err)
	}
	return &out, nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.D, opts *options.FindOptions) ([]*T, error) {
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	out := make([]*T, 0)
	for cursor.Next(ctx) {
		var doc T
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode %s document: %w", coll.Name(), err)
		}
		out = append(out, &doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", coll.Name(), err)
	}
	return out, nil
}
