package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/hostel-service/internal/cache"
	"github.com/SAP-F-2025/hostel-service/internal/events"
	"github.com/SAP-F-2025/hostel-service/internal/models"
	"github.com/SAP-F-2025/hostel-service/internal/repositories"
	"github.com/SAP-F-2025/hostel-service/internal/validator"
)

const usersCollection = "distribution"

type userService struct {
	repo      repositories.UserRepository
	cache     *cache.CacheManager
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(
	repo repositories.UserRepository,
	cacheManager *cache.CacheManager,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) UserService {
	if cacheManager == nil {
		cacheManager = cache.NewCacheManager(nil, 0)
	}
	return &userService{
		repo:      repo,
		cache:     cacheManager,
		publisher: publisher,
		logger:    logger.With("collection", usersCollection),
		validator: validator,
	}
}

func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// RoleFlags reports the admin/teacher flags of email. An unknown email has
// both flags false.
func (s *userService) RoleFlags(ctx context.Context, email string) (models.RoleFlags, error) {
	var flags models.RoleFlags
	err := s.cache.Roles.CacheOrExecute(ctx, cache.RoleKey(email), &flags, s.cache.RoleTTL(), func() (interface{}, error) {
		user, err := s.repo.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		return models.RoleFlagsFor(user), nil
	})
	if err != nil {
		return models.RoleFlags{}, fmt.Errorf("failed to get role flags: %w", err)
	}
	return flags, nil
}

func (s *userService) Create(ctx context.Context, user *models.User) (*models.InsertAck, error) {
	if err := s.validator.Validate(user); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	ack, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	cache.InvalidateRoleCache(ctx, s.cache, user.Email)
	publishEvent(ctx, s.publisher, s.logger, events.NewEvent(events.RecordCreated, usersCollection, user.Email, user))
	return ack, nil
}

func (s *userService) Upsert(ctx context.Context, user *models.User) (*models.UpdateAck, error) {
	if err := s.validator.Validate(user); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	ack, err := s.repo.Upsert(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	cache.InvalidateRoleCache(ctx, s.cache, user.Email)

	eventType := events.RecordUpdated
	if ack.UpsertedCount > 0 {
		eventType = events.RecordCreated
		s.logger.InfoContext(ctx, "User inserted by upsert", "email", user.Email)
	}
	publishEvent(ctx, s.publisher, s.logger, events.NewEvent(eventType, usersCollection, user.Email, user))
	return ack, nil
}

// AssignRole sets role on an existing user. Unknown emails are left alone
// and reported through a zero matched count.
func (s *userService) AssignRole(ctx context.Context, req *RoleAssignRequest, role models.UserRole) (*models.UpdateAck, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	ack, err := s.repo.SetRole(ctx, req.Email, role)
	if err != nil {
		return nil, fmt.Errorf("failed to assign %s role: %w", role, err)
	}

	if ack.MatchedCount == 0 {
		s.logger.DebugContext(ctx, "Role assignment matched no user", "email", req.Email, "role", role)
		return ack, nil
	}

	cache.InvalidateRoleCache(ctx, s.cache, req.Email)
	if ack.ModifiedCount > 0 {
		publishEvent(ctx, s.publisher, s.logger, events.NewEvent(events.RecordUpdated, usersCollection, req.Email,
			map[string]models.UserRole{"role": role}))
	}
	return ack, nil
}
