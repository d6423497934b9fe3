package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"garage-be/internal/entities"
	"garage-be/internal/models"
)

// UserRepository defines the interface for user database operations
type UserRepository interface {
	FindAll(ctx context.Context) ([]*entities.User, error)
	FindByID(ctx context.Context, id int64) (*entities.User, error)
	Create(ctx context.Context, email, passwordHash string, age int) (*entities.User, error)
	Update(ctx context.Context, id int64, patch models.UserPatch) (*entities.User, error)
	Delete(ctx context.Context, id int64) error
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = "id, email, password, age"

func scanUser(row scanner) (*entities.User, error) {
	var user entities.User
	if err := row.Scan(&user.ID, &user.Email, &user.Password, &user.Age); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAll returns every user ordered by id
func (r *userRepository) FindAll(ctx context.Context) ([]*entities.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	defer rows.Close()

	users := make([]*entities.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// FindByID finds a user by ID
func (r *userRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", mapError(err))
	}
	return user, nil
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, email, passwordHash string, age int) (*entities.User, error) {
	query := `
		INSERT INTO users (email, password, age)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email, passwordHash, age))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", mapError(err))
	}
	return user, nil
}

// Update overwrites only the fields set in patch. The password must already be hashed.
func (r *userRepository) Update(ctx context.Context, id int64, patch models.UserPatch) (*entities.User, error) {
	if patch.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	q := squirrel.Update("users").
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + userColumns).
		PlaceholderFormat(squirrel.Dollar)
	if patch.Email != nil {
		q = q.Set("email", *patch.Email)
	}
	if patch.Password != nil {
		q = q.Set("password", *patch.Password)
	}
	if patch.Age != nil {
		q = q.Set("age", *patch.Age)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user update: %w", err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", mapError(err))
	}
	return user, nil
}

// Delete removes the user together with its profile and detaches the cars it
// owns, all in one transaction. Favourites are left in place and dangle.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE cars SET user_id = NULL WHERE user_id = $1`, id); err != nil {
		return fmt.Errorf("failed to detach cars: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if err := checkAffected(result); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func checkAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
