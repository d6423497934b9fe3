package service

import (
	"context"
	"errors"

	"garage-be/internal/entities"
	"garage-be/internal/repository"
)

// Relations attaches related rows to entities before they are serialized.
// Lookups are one query per relation; a missing row leaves the relation nil.
type Relations struct {
	users      repository.UserRepository
	profiles   repository.ProfileRepository
	cars       repository.CarRepository
	favourites repository.FavouriteRepository
}

func NewRelations(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	cars repository.CarRepository,
	favourites repository.FavouriteRepository,
) *Relations {
	return &Relations{users: users, profiles: profiles, cars: cars, favourites: favourites}
}

// loader memoizes lookups for the lifetime of one request
type loader struct {
	rel   *Relations
	users map[int64]*entities.User
	cars  map[int64]*entities.Car
}

func (r *Relations) loader() *loader {
	return &loader{
		rel:   r,
		users: make(map[int64]*entities.User),
		cars:  make(map[int64]*entities.Car),
	}
}

func (l *loader) user(ctx context.Context, id int64) (*entities.User, error) {
	if u, ok := l.users[id]; ok {
		return u, nil
	}
	u, err := l.rel.users.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		u, err = nil, nil
	}
	if err != nil {
		return nil, err
	}
	l.users[id] = u
	return u, nil
}

// car returns the car with its favourites and their users attached
func (l *loader) car(ctx context.Context, id int64) (*entities.Car, error) {
	if c, ok := l.cars[id]; ok {
		return c, nil
	}
	c, err := l.rel.cars.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		l.cars[id] = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := l.expandCar(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (l *loader) expandCar(ctx context.Context, c *entities.Car) error {
	l.cars[c.ID] = c

	favs, err := l.rel.favourites.FindByCarID(ctx, c.ID)
	if err != nil {
		return err
	}
	for _, fav := range favs {
		if fav.User, err = l.user(ctx, fav.UserID); err != nil {
			return err
		}
	}
	c.Favourites = favs
	return nil
}

// expandUser attaches the profile and the favourited cars
func (l *loader) expandUser(ctx context.Context, u *entities.User) error {
	l.users[u.ID] = u

	profile, err := l.rel.profiles.FindByUserID(ctx, u.ID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		u.Profile = nil
	case err != nil:
		return err
	default:
		u.Profile = profile
	}

	favs, err := l.rel.favourites.FindByUserID(ctx, u.ID)
	if err != nil {
		return err
	}
	for _, fav := range favs {
		if fav.Car, err = l.car(ctx, fav.CarID); err != nil {
			return err
		}
	}
	u.Favourites = favs
	return nil
}

func (l *loader) expandFavourite(ctx context.Context, f *entities.Favourite) error {
	var err error
	if f.User, err = l.user(ctx, f.UserID); err != nil {
		return err
	}
	if f.Car, err = l.rel.cars.FindByID(ctx, f.CarID); errors.Is(err, repository.ErrNotFound) {
		f.Car, err = nil, nil
	}
	return err
}
