package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SAP-F-2025/hostel-service/internal/models"
)

type UserMongoDB struct {
	coll *mongo.Collection
}

func NewUserMongoDB(coll *mongo.Collection) *UserMongoDB {
	return &UserMongoDB{coll: coll}
}

func (r *UserMongoDB) List(ctx context.Context) ([]*models.User, error) {
	return findAll[models.User](ctx, r.coll, bson.D{}, options.Find())
}

func (r *UserMongoDB) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, r.coll, bson.D{{Key: "email", Value: email}})
}

func (r *UserMongoDB) Create(ctx context.Context, user *models.User) (*models.InsertAck, error) {
	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return insertAck(res), nil
}

func (r *UserMongoDB) Upsert(ctx context.Context, user *models.User) (*models.UpdateAck, error) {
	fields, err := setFields(user)
	if err != nil {
		return nil, err
	}

	filter := bson.D{{Key: "email", Value: user.Email}}
	update := bson.D{{Key: "$set", Value: fields}}

	res, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return updateAck(res), nil
}

func (r *UserMongoDB) SetRole(ctx context.Context, email string, role models.UserRole) (*models.UpdateAck, error) {
	filter := bson.D{{Key: "email", Value: email}}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "role", Value: string(role)}}}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("set user role: %w", err)
	}
	return updateAck(res), nil
}

// setFields renders user as a $set document. _id is immutable and is dropped.
func setFields(user *models.User) (bson.D, error) {
	raw, err := bson.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("encode user: %w", err)
	}
	var doc bson.D
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}

	fields := make(bson.D, 0, len(doc))
	for _, e := range doc {
		if e.Key == "_id" {
			continue
		}
		fields = append(fields, e)
	}
	return fields, nil
}
