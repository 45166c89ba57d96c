package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SAP-F-2025/hostel-service/internal/models"
)

// ListFilters selects a window of a collection. Limit 0 means no limit.
type ListFilters struct {
	Offset int64
	Limit  int64
}

// RecordRepository is the id-keyed contract shared by students and foods.
type RecordRepository[T any] interface {
	Create(ctx context.Context, record *T) (*models.InsertAck, error)

	// GetByID returns nil, nil when no document has the id.
	GetByID(ctx context.Context, id primitive.ObjectID) (*T, error)

	// List returns the window selected by filters and the total collection count.
	List(ctx context.Context, filters ListFilters) ([]*T, int64, error)

	Delete(ctx context.Context, id primitive.ObjectID) (*models.DeleteAck, error)

	// UpdateStatus sets only the status field. It never inserts.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.UpdateAck, error)
}
