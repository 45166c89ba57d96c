package repositories

import (
	"context"

	"github.com/SAP-F-2025/hostel-service/internal/models"
)

// UserRepository is the email-keyed role distribution collection.
type UserRepository interface {
	List(ctx context.Context) ([]*models.User, error)

	// GetByEmail returns nil, nil when no document has the email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	Create(ctx context.Context, user *models.User) (*models.InsertAck, error)

	// Upsert sets every provided field on the document matching user.Email,
	// inserting it when absent.
	Upsert(ctx context.Context, user *models.User) (*models.UpdateAck, error)

	// SetRole updates role on an existing document only.
	SetRole(ctx context.Context, email string, role models.UserRole) (*models.UpdateAck, error)
}
