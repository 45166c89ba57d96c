package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/SAP-F-2025/hostel-service/internal/models"
	"github.com/SAP-F-2025/hostel-service/internal/repositories"
)

// MongoDBRepository implements the main Repository interface
type MongoDBRepository struct {
	client *mongo.Client

	// Repository instances
	students repositories.RecordRepository[models.Student]
	foods    repositories.RecordRepository[models.Food]
	users    repositories.UserRepository
}

// RepositoryConfig holds configuration for repository initialization
type RepositoryConfig struct {
	Client   *mongo.Client
	Database string
}

// NewMongoDBRepository builds every collection repository on one shared client.
func NewMongoDBRepository(config RepositoryConfig) repositories.Repository {
	db := config.Client.Database(config.Database)

	return &MongoDBRepository{
		client:   config.Client,
		students: NewRecordMongoDB[models.Student](db.Collection(StudentsCollection)),
		foods:    NewRecordMongoDB[models.Food](db.Collection(FoodsCollection)),
		users:    NewUserMongoDB(db.Collection(UsersCollection)),
	}
}

// Students returns the student repository
func (r *MongoDBRepository) Students() repositories.RecordRepository[models.Student] {
	return r.students
}

// Foods returns the food repository
func (r *MongoDBRepository) Foods() repositories.RecordRepository[models.Food] {
	return r.foods
}

// Users returns the user role repository
func (r *MongoDBRepository) Users() repositories.UserRepository {
	return r.users
}

// Ping checks the primary is reachable
func (r *MongoDBRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close disconnects the client
func (r *MongoDBRepository) Close(ctx context.Context) error {
	if err := r.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// RepositoryManager implements the RepositoryManager interface
type RepositoryManager struct {
	config RepositoryConfig
	repo   repositories.Repository
}

// NewRepositoryManager creates a new repository manager
func NewRepositoryManager(config RepositoryConfig) repositories.RepositoryManager {
	return &RepositoryManager{
		config: config,
	}
}

// Initialize verifies the connection and builds the repository
func (rm *RepositoryManager) Initialize() error {
	if rm.config.Client == nil {
		return fmt.Errorf("database client is required")
	}
	if rm.config.Database == "" {
		return fmt.Errorf("database name is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rm.config.Client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}

	rm.repo = NewMongoDBRepository(rm.config)
	return nil
}

// GetRepository returns the repository instance
func (rm *RepositoryManager) GetRepository() repositories.Repository {
	return rm.repo
}

// HealthCheck checks the health of all repository connections
func (rm *RepositoryManager) HealthCheck(ctx context.Context) error {
	if rm.repo == nil {
		return fmt.Errorf("repository not initialized")
	}
	return rm.repo.Ping(ctx)
}

// Shutdown gracefully shuts down all repository connections
func (rm *RepositoryManager) Shutdown(ctx context.Context) error {
	if rm.repo == nil {
		return nil
	}
	return rm.repo.Close(ctx)
}
