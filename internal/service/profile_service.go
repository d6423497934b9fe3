package service

import (
	"context"
	"errors"
	"fmt"

	"garage-be/internal/models"
	"garage-be/internal/repository"
)

// ProfileService manages the single profile a user may own
type ProfileService interface {
	List(ctx context.Context) ([]models.ProfileResponse, error)
	Get(ctx context.Context, userID int64) (*models.ProfileResponse, error)
	Create(ctx context.Context, userID int64, req *models.CreateProfileRequest) (*models.ProfileResponse, error)
	Update(ctx context.Context, userID int64, patch models.ProfilePatch) (*models.ProfileResponse, error)
	Delete(ctx context.Context, userID int64) error
}

type profileService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	cache    *ResponseCache
}

func NewProfileService(users repository.UserRepository, profiles repository.ProfileRepository, rc *ResponseCache) ProfileService {
	return &profileService{users: users, profiles: profiles, cache: rc}
}

func (s *profileService) List(ctx context.Context) ([]models.ProfileResponse, error) {
	return cached(ctx, s.cache, "profiles", func() ([]models.ProfileResponse, error) {
		profiles, err := s.profiles.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		return models.SerializeProfiles(profiles), nil
	})
}

func (s *profileService) Get(ctx context.Context, userID int64) (*models.ProfileResponse, error) {
	return cached(ctx, s.cache, fmt.Sprintf("profiles:%d", userID), func() (*models.ProfileResponse, error) {
		if err := s.requireUser(ctx, userID); err != nil {
			return nil, err
		}
		p, err := s.profiles.FindByUserID(ctx, userID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		if err != nil {
			return nil, err
		}
		resp := models.SerializeProfile(p)
		return &resp, nil
	})
}

// Create fails with ErrProfileExists when the user already has one
func (s *profileService) Create(ctx context.Context, userID int64, req *models.CreateProfileRequest) (*models.ProfileResponse, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	_, err := s.profiles.FindByUserID(ctx, userID)
	if err == nil {
		return nil, ErrProfileExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	p, err := s.profiles.Create(ctx, userID, *req.Title, *req.Bio)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrProfileExists
	}
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)

	resp := models.SerializeProfile(p)
	return &resp, nil
}

func (s *profileService) Update(ctx context.Context, userID int64, patch models.ProfilePatch) (*models.ProfileResponse, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	p, err := s.profiles.Update(ctx, userID, patch)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)

	resp := models.SerializeProfile(p)
	return &resp, nil
}

func (s *profileService) Delete(ctx context.Context, userID int64) error {
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}

	err := s.profiles.DeleteByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProfileNotFound
	}
	if err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

func (s *profileService) requireUser(ctx context.Context, userID int64) error {
	_, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
