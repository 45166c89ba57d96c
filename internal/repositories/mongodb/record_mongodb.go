package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SAP-F-2025/hostel-service/internal/models"
	"github.com/SAP-F-2025/hostel-service/internal/repositories"
)

// RecordMongoDB implements repositories.RecordRepository over one collection.
type RecordMongoDB[T any] struct {
	coll *mongo.Collection
}

func NewRecordMongoDB[T any](coll *mongo.Collection) *RecordMongoDB[T] {
	return &RecordMongoDB[T]{coll: coll}
}

func (r *RecordMongoDB[T]) Create(ctx context.Context, record *T) (*models.InsertAck, error) {
	res, err := r.coll.InsertOne(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("insert into %s: %w", r.coll.Name(), err)
	}
	return insertAck(res), nil
}

func (r *RecordMongoDB[T]) GetByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return findOne[T](ctx, r.coll, bson.D{{Key: "_id", Value: id}})
}

func (r *RecordMongoDB[T]) List(ctx context.Context, filters repositories.ListFilters) ([]*T, int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", r.coll.Name(), err)
	}

	records, err := findAll[T](ctx, r.coll, bson.D{}, findOptions(filters))
	if err != nil {
		return nil, 0, err
	}
	return records, count, nil
}

func (r *RecordMongoDB[T]) Delete(ctx context.Context, id primitive.ObjectID) (*models.DeleteAck, error) {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return nil, fmt.Errorf("delete from %s: %w", r.coll.Name(), err)
	}
	return deleteAck(res), nil
}

func (r *RecordMongoDB[T]) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.UpdateAck, error) {
	filter := bson.D{{Key: "_id", Value: id}}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: status}}}}

	res, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(false))
	if err != nil {
		return nil, fmt.Errorf("update status in %s: %w", r.coll.Name(), err)
	}
	return updateAck(res), nil
}
