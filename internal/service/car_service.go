package service

import (
	"context"
	"errors"
	"fmt"

	"garage-be/internal/models"
	"garage-be/internal/repository"
)

// CarService defines the interface for car business logic
type CarService interface {
	List(ctx context.Context) ([]models.CarResponse, error)
	Get(ctx context.Context, id int64) (*models.CarResponse, error)
	Create(ctx context.Context, req *models.CreateCarRequest) (*models.CarResponse, error)
	CreateForUser(ctx context.Context, userID int64, req *models.CreateCarRequest) (*models.CarResponse, error)
	Update(ctx context.Context, id int64, patch models.CarPatch) (*models.CarResponse, error)
	Delete(ctx context.Context, id int64) error
}

type carService struct {
	users repository.UserRepository
	cars  repository.CarRepository
	rel   *Relations
	cache *ResponseCache
}

func NewCarService(users repository.UserRepository, cars repository.CarRepository, rel *Relations, rc *ResponseCache) CarService {
	return &carService{users: users, cars: cars, rel: rel, cache: rc}
}

func (s *carService) List(ctx context.Context) ([]models.CarResponse, error) {
	return cached(ctx, s.cache, "cars", func() ([]models.CarResponse, error) {
		cars, err := s.cars.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		l := s.rel.loader()
		for _, c := range cars {
			if err := l.expandCar(ctx, c); err != nil {
				return nil, fmt.Errorf("failed to load car relations: %w", err)
			}
		}
		return models.SerializeCars(cars), nil
	})
}

func (s *carService) Get(ctx context.Context, id int64) (*models.CarResponse, error) {
	return cached(ctx, s.cache, fmt.Sprintf("cars:%d", id), func() (*models.CarResponse, error) {
		return s.load(ctx, id)
	})
}

func (s *carService) load(ctx context.Context, id int64) (*models.CarResponse, error) {
	c, err := s.rel.loader().car(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load car: %w", err)
	}
	if c == nil {
		return nil, ErrCarNotFound
	}
	resp := models.SerializeCar(c)
	return &resp, nil
}

// Create stores a car; an owner, when given, must exist
func (s *carService) Create(ctx context.Context, req *models.CreateCarRequest) (*models.CarResponse, error) {
	if req.UserID != nil {
		if err := s.requireUser(ctx, *req.UserID); err != nil {
			return nil, err
		}
	}

	c, err := s.cars.Create(ctx, *req.Model, *req.Year, *req.Name, req.UserID)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)

	return s.load(ctx, c.ID)
}

// CreateForUser stores a car owned by userID, ignoring any user_id in the body
func (s *carService) CreateForUser(ctx context.Context, userID int64, req *models.CreateCarRequest) (*models.CarResponse, error) {
	owned := *req
	owned.UserID = &userID
	return s.Create(ctx, &owned)
}

func (s *carService) Update(ctx context.Context, id int64, patch models.CarPatch) (*models.CarResponse, error) {
	if _, err := s.cars.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}
	if patch.UserID.Valid {
		if err := s.requireUser(ctx, patch.UserID.Value); err != nil {
			return nil, err
		}
	}

	_, err := s.cars.Update(ctx, id, patch)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCarNotFound
	}
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)

	return s.load(ctx, id)
}

func (s *carService) Delete(ctx context.Context, id int64) error {
	err := s.cars.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCarNotFound
	}
	if err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

func (s *carService) requireUser(ctx context.Context, userID int64) error {
	_, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
