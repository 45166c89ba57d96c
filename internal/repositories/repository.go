package repositories

import (
	"context"

	"github.com/SAP-F-2025/hostel-service/internal/models"
)

// Repository groups the collection repositories behind one store handle.
type Repository interface {
	Students() RecordRepository[models.Student]
	Foods() RecordRepository[models.Food]
	Users() UserRepository

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close(ctx context.Context) error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	// Initialize connects to the store and builds the repository
	Initialize() error

	// Get repository instance
	GetRepository() Repository

	// Health check for all repositories
	HealthCheck(ctx context.Context) error

	// Graceful shutdown
	Shutdown(ctx context.Context) error
}
