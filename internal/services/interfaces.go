package services

import (
	"context"
	"io"

	"github.com/SAP-F-2025/hostel-service/internal/models"
	"github.com/SAP-F-2025/hostel-service/internal/validator"
)

// ===== REQUEST DTOs =====

type StatusUpdateRequest = validator.StatusUpdateRequest
type RoleAssignRequest = validator.RoleAssignRequest

// ListQuery carries the raw page/size query parameters. An empty Page
// selects the whole collection.
type ListQuery struct {
	Page string
	Size string
}

// ===== SERVICE INTERFACES =====

// RecordService serves the id-keyed collections (students, foods)
type RecordService[T any] interface {
	List(ctx context.Context, query ListQuery) ([]*T, int64, error)
	Create(ctx context.Context, record *T) (*models.InsertAck, error)
	Get(ctx context.Context, id string) (*T, error)
	Delete(ctx context.Context, id string) (*models.DeleteAck, error)
	UpdateStatus(ctx context.Context, id string, req *StatusUpdateRequest) (*models.UpdateAck, error)
}

// UserService serves the role distribution collection
type UserService interface {
	List(ctx context.Context) ([]*models.User, error)
	RoleFlags(ctx context.Context, email string) (models.RoleFlags, error)
	Create(ctx context.Context, user *models.User) (*models.InsertAck, error)
	Upsert(ctx context.Context, user *models.User) (*models.UpdateAck, error)
	AssignRole(ctx context.Context, req *RoleAssignRequest, role models.UserRole) (*models.UpdateAck, error)
}

// ExportService renders collections as xlsx workbooks
type ExportService interface {
	ExportStudents(ctx context.Context, w io.Writer) error
	ExportFoods(ctx context.Context, w io.Writer) error
}

// ServiceManager owns service construction and lifecycle
type ServiceManager interface {
	Students() RecordService[models.Student]
	Foods() RecordService[models.Food]
	Users() UserService
	Export() ExportService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
