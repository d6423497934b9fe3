package service

import (
	"context"
	"errors"
	"fmt"

	"garage-be/internal/entities"
	"garage-be/internal/models"
	"garage-be/internal/repository"
)

// FavouriteService defines the interface for favourite business logic.
// A (user, car) pair is favourited at most once.
type FavouriteService interface {
	List(ctx context.Context) ([]models.FavouriteResponse, error)
	Get(ctx context.Context, id int64) (*models.FavouriteResponse, error)
	Create(ctx context.Context, userID, carID int64) (*models.FavouriteResponse, error)
	Update(ctx context.Context, id int64, patch models.FavouritePatch) (*models.FavouriteResponse, error)
	Delete(ctx context.Context, id int64) error
}

type favouriteService struct {
	users      repository.UserRepository
	cars       repository.CarRepository
	favourites repository.FavouriteRepository
	rel        *Relations
	cache      *ResponseCache
}

func NewFavouriteService(
	users repository.UserRepository,
	cars repository.CarRepository,
	favourites repository.FavouriteRepository,
	rel *Relations,
	rc *ResponseCache,
) FavouriteService {
	return &favouriteService{users: users, cars: cars, favourites: favourites, rel: rel, cache: rc}
}

func (s *favouriteService) List(ctx context.Context) ([]models.FavouriteResponse, error) {
	return cached(ctx, s.cache, "favourites", func() ([]models.FavouriteResponse, error) {
		favs, err := s.favourites.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		l := s.rel.loader()
		for _, f := range favs {
			if err := l.expandFavourite(ctx, f); err != nil {
				return nil, fmt.Errorf("failed to load favourite relations: %w", err)
			}
		}
		return models.SerializeFavourites(favs), nil
	})
}

func (s *favouriteService) Get(ctx context.Context, id int64) (*models.FavouriteResponse, error) {
	return cached(ctx, s.cache, fmt.Sprintf("favourites:%d", id), func() (*models.FavouriteResponse, error) {
		f, err := s.favourites.FindByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFavouriteNotFound
		}
		if err != nil {
			return nil, err
		}
		return s.serialize(ctx, f)
	})
}

// Create favourites carID for userID. Both must exist and the pair must be new.
func (s *favouriteService) Create(ctx context.Context, userID, carID int64) (*models.FavouriteResponse, error) {
	if err := s.requireRefs(ctx, userID, carID); err != nil {
		return nil, err
	}
	if err := s.requireFreePair(ctx, userID, carID, 0); err != nil {
		return nil, err
	}

	f, err := s.favourites.Create(ctx, userID, carID)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrFavouriteExists
	}
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)

	return s.serialize(ctx, f)
}

// Update re-points a favourite; the new references must exist and the
// resulting pair must not collide with another favourite
func (s *favouriteService) Update(ctx context.Context, id int64, patch models.FavouritePatch) (*models.FavouriteResponse, error) {
	current, err := s.favourites.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrFavouriteNotFound
	}
	if err != nil {
		return nil, err
	}

	userID, carID := current.UserID, current.CarID
	if patch.UserID != nil {
		userID = *patch.UserID
	}
	if patch.CarID != nil {
		carID = *patch.CarID
	}

	if patch.UserID != nil {
		if err := s.requireUser(ctx, userID); err != nil {
			return nil, err
		}
	}
	if patch.CarID != nil {
		if err := s.requireCar(ctx, carID); err != nil {
			return nil, err
		}
	}
	if err := s.requireFreePair(ctx, userID, carID, id); err != nil {
		return nil, err
	}

	f, err := s.favourites.Update(ctx, id, patch)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrFavouriteNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return nil, ErrFavouriteExists
	case err != nil:
		return nil, err
	}
	s.cache.Invalidate(ctx)

	return s.serialize(ctx, f)
}

func (s *favouriteService) Delete(ctx context.Context, id int64) error {
	err := s.favourites.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrFavouriteNotFound
	}
	if err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

func (s *favouriteService) serialize(ctx context.Context, f *entities.Favourite) (*models.FavouriteResponse, error) {
	if err := s.rel.loader().expandFavourite(ctx, f); err != nil {
		return nil, fmt.Errorf("failed to load favourite relations: %w", err)
	}
	resp := models.SerializeFavourite(f)
	return &resp, nil
}

func (s *favouriteService) requireRefs(ctx context.Context, userID, carID int64) error {
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	return s.requireCar(ctx, carID)
}

func (s *favouriteService) requireUser(ctx context.Context, userID int64) error {
	_, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

func (s *favouriteService) requireCar(ctx context.Context, carID int64) error {
	_, err := s.cars.FindByID(ctx, carID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCarNotFound
	}
	return err
}

// requireFreePair fails when another favourite (other than self) holds the pair
func (s *favouriteService) requireFreePair(ctx context.Context, userID, carID, self int64) error {
	existing, err := s.favourites.FindByPair(ctx, userID, carID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != self {
		return ErrFavouriteExists
	}
	return nil
}
