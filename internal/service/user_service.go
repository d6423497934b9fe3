package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"garage-be/internal/models"
	"garage-be/internal/repository"
)

// UserService defines the interface for user business logic
type UserService interface {
	List(ctx context.Context) ([]models.UserResponse, error)
	Get(ctx context.Context, id int64) (*models.UserResponse, error)
	Create(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error)
	Update(ctx context.Context, id int64, patch models.UserPatch) (*models.UserResponse, error)
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	users      repository.UserRepository
	rel        *Relations
	cache      *ResponseCache
	bcryptCost int
}

// NewUserService creates a new user service
func NewUserService(users repository.UserRepository, rel *Relations, rc *ResponseCache, bcryptCost int) UserService {
	return &userService{
		users:      users,
		rel:        rel,
		cache:      rc,
		bcryptCost: bcryptCost,
	}
}

func (s *userService) List(ctx context.Context) ([]models.UserResponse, error) {
	return cached(ctx, s.cache, "users", func() ([]models.UserResponse, error) {
		users, err := s.users.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		l := s.rel.loader()
		for _, u := range users {
			if err := l.expandUser(ctx, u); err != nil {
				return nil, fmt.Errorf("failed to load user relations: %w", err)
			}
		}
		return models.SerializeUsers(users), nil
	})
}

func (s *userService) Get(ctx context.Context, id int64) (*models.UserResponse, error) {
	return cached(ctx, s.cache, fmt.Sprintf("users:%d", id), func() (*models.UserResponse, error) {
		return s.load(ctx, id)
	})
}

func (s *userService) load(ctx context.Context, id int64) (*models.UserResponse, error) {
	u, err := s.users.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.rel.loader().expandUser(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to load user relations: %w", err)
	}
	resp := models.SerializeUser(u)
	return &resp, nil
}

// Create stores a new user with a hashed password
func (s *userService) Create(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error) {
	hash, err := s.hash(*req.Password)
	if err != nil {
		return nil, err
	}

	u, err := s.users.Create(ctx, *req.Email, hash, *req.Age)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)

	return s.load(ctx, u.ID)
}

// Update applies only the fields present in patch
func (s *userService) Update(ctx context.Context, id int64, patch models.UserPatch) (*models.UserResponse, error) {
	if patch.Password != nil {
		hash, err := s.hash(*patch.Password)
		if err != nil {
			return nil, err
		}
		patch.Password = &hash
	}

	_, err := s.users.Update(ctx, id, patch)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrUserNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return nil, ErrEmailTaken
	case err != nil:
		return nil, err
	}
	s.cache.Invalidate(ctx)

	return s.load(ctx, id)
}

// Delete removes the user and its profile
func (s *userService) Delete(ctx context.Context, id int64) error {
	err := s.users.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

func (s *userService) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(prehash(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// prehash folds a password of any length into 44 bytes, under bcrypt's 72 byte limit
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
