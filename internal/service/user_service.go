package service

import (
	"context"
	"errors"
	"strings"

	"shareit/internal/database"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type UserService struct {
	db     *database.DB
	logger *zerolog.Logger
}

func NewUserService(db *database.DB, logger *zerolog.Logger) *UserService {
	return &UserService{db: db, logger: logger}
}

func (s *UserService) Create(ctx context.Context, name, email string) (*models.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, Validation("user name is required")
	}
	if strings.TrimSpace(email) == "" || !strings.Contains(email, "@") {
		return nil, Validation("a valid email is required")
	}

	exists, err := s.db.EmailExists(ctx, email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, Validation("email %s is already in use", email)
	}

	user := &models.User{Name: name, Email: email}
	if err := s.db.CreateUser(ctx, user); err != nil {
		// The unique index backstops the pre-check under concurrent signups.
		if errors.Is(err, database.ErrDuplicateEmail) {
			return nil, Validation("email %s is already in use", email)
		}
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user created")
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.db.GetUser(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, NotFound("user %d not found", id)
	}
	return user, err
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.db.GetAllUsers(ctx)
}

func (s *UserService) Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	if patch.Email != nil && (strings.TrimSpace(*patch.Email) == "" || !strings.Contains(*patch.Email, "@")) {
		return nil, Validation("a valid email is required")
	}

	user, err := s.db.UpdateUser(ctx, id, patch)
	if errors.Is(err, database.ErrNotFound) {
		return nil, NotFound("user %d not found", id)
	}
	if errors.Is(err, database.ErrDuplicateEmail) {
		return nil, Validation("email %s is already in use", *patch.Email)
	}
	return user, err
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.db.DeleteUser(ctx, id)
}
