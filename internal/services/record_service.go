package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SAP-F-2025/hostel-service/internal/events"
	"github.com/SAP-F-2025/hostel-service/internal/models"
	"github.com/SAP-F-2025/hostel-service/internal/repositories"
	"github.com/SAP-F-2025/hostel-service/internal/validator"
)

// identifiable records take the id assigned by the store
type identifiable interface {
	SetID(id primitive.ObjectID)
}

type recordService[T any] struct {
	collection string
	repo       repositories.RecordRepository[T]
	publisher  events.EventPublisher
	logger     *slog.Logger
	validator  *validator.Validator
}

func NewRecordService[T any](
	collection string,
	repo repositories.RecordRepository[T],
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) RecordService[T] {
	return &recordService[T]{
		collection: collection,
		repo:       repo,
		publisher:  publisher,
		logger:     logger.With("collection", collection),
		validator:  validator,
	}
}

func (s *recordService[T]) List(ctx context.Context, query ListQuery) ([]*T, int64, error) {
	filters := ListFiltersFor(query)

	records, count, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list %s: %w", s.collection, err)
	}
	return records, count, nil
}

func (s *recordService[T]) Create(ctx context.Context, record *T) (*models.InsertAck, error) {
	if err := s.validator.Validate(record); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	ack, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s record: %w", s.collection, err)
	}

	s.logger.InfoContext(ctx, "Record created", "id", ack.InsertedID)
	if oid, ok := ack.InsertedID.(primitive.ObjectID); ok {
		if r, ok := any(record).(identifiable); ok {
			r.SetID(oid)
		}
	}
	publishEvent(ctx, s.publisher, s.logger, events.NewEvent(events.RecordCreated, s.collection, idKey(ack.InsertedID), record))
	return ack, nil
}

func (s *recordService[T]) Get(ctx context.Context, id string) (*T, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s record: %w", s.collection, err)
	}
	return record, nil
}

func (s *recordService[T]) Delete(ctx context.Context, id string) (*models.DeleteAck, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	ack, err := s.repo.Delete(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("failed to delete %s record: %w", s.collection, err)
	}

	if ack.DeletedCount > 0 {
		s.logger.InfoContext(ctx, "Record deleted", "id", id)
		publishEvent(ctx, s.publisher, s.logger, events.NewEvent(events.RecordDeleted, s.collection, id, nil))
	}
	return ack, nil
}

func (s *recordService[T]) UpdateStatus(ctx context.Context, id string, req *StatusUpdateRequest) (*models.UpdateAck, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	ack, err := s.repo.UpdateStatus(ctx, oid, *req.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s status: %w", s.collection, err)
	}

	if ack.ModifiedCount > 0 {
		publishEvent(ctx, s.publisher, s.logger, events.NewEvent(events.RecordUpdated, s.collection, id,
			map[string]string{"status": *req.Status}))
	}
	return ack, nil
}

// ListFiltersFor turns raw page/size parameters into a skip/limit window.
// Both parse as base-10 integers; unparsable or negative values count as 0.
// Without a page the whole collection is returned.
func ListFiltersFor(query ListQuery) repositories.ListFilters {
	if query.Page == "" {
		return repositories.ListFilters{}
	}

	page := parseNonNegative(query.Page)
	size := parseNonNegative(query.Size)

	offset := page * size
	if size != 0 && page > math.MaxInt64/size {
		offset = math.MaxInt64
	}
	return repositories.ListFilters{Offset: offset, Limit: size}
}

func parseNonNegative(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

func idKey(id interface{}) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(id)
}
