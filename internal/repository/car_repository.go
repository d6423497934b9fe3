package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"garage-be/internal/entities"
	"garage-be/internal/models"
)

// CarRepository defines the interface for car database operations
type CarRepository interface {
	FindAll(ctx context.Context) ([]*entities.Car, error)
	FindByID(ctx context.Context, id int64) (*entities.Car, error)
	Create(ctx context.Context, model string, year int, name string, userID *int64) (*entities.Car, error)
	Update(ctx context.Context, id int64, patch models.CarPatch) (*entities.Car, error)
	Delete(ctx context.Context, id int64) error
}

type carRepository struct {
	db *sql.DB
}

func NewCarRepository(db *sql.DB) CarRepository {
	return &carRepository{db: db}
}

const carColumns = "id, model, year, name, user_id"

func scanCar(row scanner) (*entities.Car, error) {
	var (
		car    entities.Car
		userID sql.NullInt64
	)
	if err := row.Scan(&car.ID, &car.Model, &car.Year, &car.Name, &userID); err != nil {
		return nil, err
	}
	if userID.Valid {
		car.UserID = &userID.Int64
	}
	return &car, nil
}

func (r *carRepository) FindAll(ctx context.Context) ([]*entities.Car, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+carColumns+` FROM cars ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get cars: %w", err)
	}
	defer rows.Close()

	cars := make([]*entities.Car, 0)
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan car: %w", err)
		}
		cars = append(cars, car)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cars: %w", err)
	}

	return cars, nil
}

func (r *carRepository) FindByID(ctx context.Context, id int64) (*entities.Car, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+carColumns+` FROM cars WHERE id = $1`, id)

	car, err := scanCar(row)
	if err != nil {
		return nil, fmt.Errorf("failed to find car: %w", mapError(err))
	}
	return car, nil
}

// Create inserts a car; userID may be nil for an unowned car
func (r *carRepository) Create(ctx context.Context, model string, year int, name string, userID *int64) (*entities.Car, error) {
	query := `
		INSERT INTO cars (model, year, name, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + carColumns

	var owner interface{}
	if userID != nil {
		owner = *userID
	}

	car, err := scanCar(r.db.QueryRowContext(ctx, query, model, year, name, owner))
	if err != nil {
		return nil, fmt.Errorf("failed to create car: %w", mapError(err))
	}
	return car, nil
}

func (r *carRepository) Update(ctx context.Context, id int64, patch models.CarPatch) (*entities.Car, error) {
	if patch.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	q := squirrel.Update("cars").
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + carColumns).
		PlaceholderFormat(squirrel.Dollar)
	if patch.Model != nil {
		q = q.Set("model", *patch.Model)
	}
	if patch.Year != nil {
		q = q.Set("year", *patch.Year)
	}
	if patch.Name != nil {
		q = q.Set("name", *patch.Name)
	}
	if patch.UserID.Set {
		q = q.Set("user_id", patch.UserID.Ptr())
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build car update: %w", err)
	}

	car, err := scanCar(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to update car: %w", mapError(err))
	}
	return car, nil
}

// Delete removes a car. Favourites pointing at it are kept and dangle.
func (r *carRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete car: %w", err)
	}
	return checkAffected(result)
}
