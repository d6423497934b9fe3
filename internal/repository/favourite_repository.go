package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"garage-be/internal/entities"
	"garage-be/internal/models"
)

// FavouriteRepository defines the interface for favourite database operations
type FavouriteRepository interface {
	FindAll(ctx context.Context) ([]*entities.Favourite, error)
	FindByID(ctx context.Context, id int64) (*entities.Favourite, error)
	FindByUserID(ctx context.Context, userID int64) ([]*entities.Favourite, error)
	FindByCarID(ctx context.Context, carID int64) ([]*entities.Favourite, error)
	FindByPair(ctx context.Context, userID, carID int64) (*entities.Favourite, error)
	Create(ctx context.Context, userID, carID int64) (*entities.Favourite, error)
	Update(ctx context.Context, id int64, patch models.FavouritePatch) (*entities.Favourite, error)
	Delete(ctx context.Context, id int64) error
}

type favouriteRepository struct {
	db *sql.DB
}

func NewFavouriteRepository(db *sql.DB) FavouriteRepository {
	return &favouriteRepository{db: db}
}

func scanFavourite(row scanner) (*entities.Favourite, error) {
	var fav entities.Favourite
	if err := row.Scan(&fav.ID, &fav.UserID, &fav.CarID); err != nil {
		return nil, err
	}
	return &fav, nil
}

func favouriteSelect() squirrel.SelectBuilder {
	return squirrel.Select("id", "user_id", "car_id").
		From("favourites").
		OrderBy("id").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *favouriteRepository) query(ctx context.Context, b squirrel.SelectBuilder) ([]*entities.Favourite, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build favourites query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get favourites: %w", err)
	}
	defer rows.Close()

	favs := make([]*entities.Favourite, 0)
	for rows.Next() {
		fav, err := scanFavourite(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favourite: %w", err)
		}
		favs = append(favs, fav)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating favourites: %w", err)
	}

	return favs, nil
}

func (r *favouriteRepository) one(ctx context.Context, b squirrel.SelectBuilder) (*entities.Favourite, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build favourite query: %w", err)
	}

	fav, err := scanFavourite(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to find favourite: %w", mapError(err))
	}
	return fav, nil
}

func (r *favouriteRepository) FindAll(ctx context.Context) ([]*entities.Favourite, error) {
	return r.query(ctx, favouriteSelect())
}

func (r *favouriteRepository) FindByID(ctx context.Context, id int64) (*entities.Favourite, error) {
	return r.one(ctx, favouriteSelect().Where(squirrel.Eq{"id": id}))
}

func (r *favouriteRepository) FindByUserID(ctx context.Context, userID int64) ([]*entities.Favourite, error) {
	return r.query(ctx, favouriteSelect().Where(squirrel.Eq{"user_id": userID}))
}

func (r *favouriteRepository) FindByCarID(ctx context.Context, carID int64) ([]*entities.Favourite, error) {
	return r.query(ctx, favouriteSelect().Where(squirrel.Eq{"car_id": carID}))
}

func (r *favouriteRepository) FindByPair(ctx context.Context, userID, carID int64) (*entities.Favourite, error) {
	return r.one(ctx, favouriteSelect().Where(squirrel.Eq{"user_id": userID, "car_id": carID}))
}

// Create inserts a favourite; the (user_id, car_id) unique constraint turns a
// repeated pair into ErrDuplicate
func (r *favouriteRepository) Create(ctx context.Context, userID, carID int64) (*entities.Favourite, error) {
	query := `
		INSERT INTO favourites (user_id, car_id)
		VALUES ($1, $2)
		RETURNING id, user_id, car_id`

	fav, err := scanFavourite(r.db.QueryRowContext(ctx, query, userID, carID))
	if err != nil {
		return nil, fmt.Errorf("failed to create favourite: %w", mapError(err))
	}
	return fav, nil
}

func (r *favouriteRepository) Update(ctx context.Context, id int64, patch models.FavouritePatch) (*entities.Favourite, error) {
	if patch.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	q := squirrel.Update("favourites").
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, user_id, car_id").
		PlaceholderFormat(squirrel.Dollar)
	if patch.UserID != nil {
		q = q.Set("user_id", *patch.UserID)
	}
	if patch.CarID != nil {
		q = q.Set("car_id", *patch.CarID)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build favourite update: %w", err)
	}

	fav, err := scanFavourite(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to update favourite: %w", mapError(err))
	}
	return fav, nil
}

func (r *favouriteRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM favourites WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete favourite: %w", err)
	}
	return checkAffected(result)
}
