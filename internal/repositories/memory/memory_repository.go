package memory

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SAP-F-2025/hostel-service/internal/models"
	"github.com/SAP-F-2025/hostel-service/internal/repositories"
)

// MemoryRepository is a process-local document store with the same
// write semantics as the mongo repository. Selected with STORE_DRIVER=memory.
type MemoryRepository struct {
	students *RecordMemory[models.Student]
	foods    *RecordMemory[models.Food]
	users    *UserMemory
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		students: &RecordMemory[models.Student]{coll: &collection{}},
		foods:    &RecordMemory[models.Food]{coll: &collection{}},
		users:    &UserMemory{coll: &collection{}},
	}
}

func (r *MemoryRepository) Students() repositories.RecordRepository[models.Student] {
	return r.students
}

func (r *MemoryRepository) Foods() repositories.RecordRepository[models.Food] {
	return r.foods
}

func (r *MemoryRepository) Users() repositories.UserRepository {
	return r.users
}

func (r *MemoryRepository) Ping(ctx context.Context) error { return ctx.Err() }

func (r *MemoryRepository) Close(ctx context.Context) error { return nil }

// RecordMemory implements repositories.RecordRepository.
type RecordMemory[T any] struct {
	coll *collection
}

func (r *RecordMemory[T]) Create(ctx context.Context, record *T) (*models.InsertAck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id, err := r.coll.insert(record)
	if err != nil {
		return nil, err
	}
	return &models.InsertAck{Acknowledged: true, InsertedID: id}, nil
}

func (r *RecordMemory[T]) GetByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc := r.coll.findOne(byID(id))
	if doc == nil {
		return nil, nil
	}
	return decode[T](doc)
}

func (r *RecordMemory[T]) List(ctx context.Context, filters repositories.ListFilters) ([]*T, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	docs, total := r.coll.window(filters.Offset, filters.Limit)

	out := make([]*T, 0, len(docs))
	for _, doc := range docs {
		rec, err := decode[T](doc)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, rec)
	}
	return out, total, nil
}

func (r *RecordMemory[T]) Delete(ctx context.Context, id primitive.ObjectID) (*models.DeleteAck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &models.DeleteAck{Acknowledged: true, DeletedCount: r.coll.deleteOne(byID(id))}, nil
}

func (r *RecordMemory[T]) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.UpdateAck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matched, modified := r.coll.updateOne(byID(id), bson.D{{Key: "status", Value: status}})
	return &models.UpdateAck{Acknowledged: true, MatchedCount: matched, ModifiedCount: modified}, nil
}

// UserMemory implements repositories.UserRepository.
type UserMemory struct {
	coll *collection
}

func (r *UserMemory) List(ctx context.Context) ([]*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	docs, _ := r.coll.window(0, 0)

	out := make([]*models.User, 0, len(docs))
	for _, doc := range docs {
		u, err := decode[models.User](doc)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *UserMemory) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc := r.coll.findOne(byKey("email", email))
	if doc == nil {
		return nil, nil
	}
	return decode[models.User](doc)
}

func (r *UserMemory) Create(ctx context.Context, user *models.User) (*models.InsertAck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id, err := r.coll.insert(user)
	if err != nil {
		return nil, err
	}
	return &models.InsertAck{Acknowledged: true, InsertedID: id}, nil
}

func (r *UserMemory) Upsert(ctx context.Context, user *models.User) (*models.UpdateAck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, _, err := toDocument(user)
	if err != nil {
		return nil, fmt.Errorf("encode user: %w", err)
	}

	fields := make(bson.D, 0, len(doc))
	for _, e := range doc {
		if e.Key != "_id" {
			fields = append(fields, e)
		}
	}

	matched, modified, upserted := r.coll.upsertOne(byKey("email", user.Email), fields)
	ack := &models.UpdateAck{Acknowledged: true, MatchedCount: matched, ModifiedCount: modified}
	if upserted != nil {
		ack.UpsertedCount = 1
		ack.UpsertedID = *upserted
	}
	return ack, nil
}

func (r *UserMemory) SetRole(ctx context.Context, email string, role models.UserRole) (*models.UpdateAck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matched, modified := r.coll.updateOne(byKey("email", email), bson.D{{Key: "role", Value: string(role)}})
	return &models.UpdateAck{Acknowledged: true, MatchedCount: matched, ModifiedCount: modified}, nil
}

// RepositoryManager implements repositories.RepositoryManager for the memory store.
type RepositoryManager struct {
	repo *MemoryRepository
}

func NewRepositoryManager() repositories.RepositoryManager {
	return &RepositoryManager{}
}

func (rm *RepositoryManager) Initialize() error {
	rm.repo = NewMemoryRepository()
	return nil
}

func (rm *RepositoryManager) GetRepository() repositories.Repository {
	return rm.repo
}

func (rm *RepositoryManager) HealthCheck(ctx context.Context) error {
	if rm.repo == nil {
		return fmt.Errorf("repository not initialized")
	}
	return rm.repo.Ping(ctx)
}

func (rm *RepositoryManager) Shutdown(ctx context.Context) error {
	return nil
}
