package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"garage-be/internal/entities"
	"garage-be/internal/models"
)

// ProfileRepository defines the interface for profile database operations
type ProfileRepository interface {
	FindAll(ctx context.Context) ([]*entities.Profile, error)
	FindByUserID(ctx context.Context, userID int64) (*entities.Profile, error)
	Create(ctx context.Context, userID int64, title, bio string) (*entities.Profile, error)
	Update(ctx context.Context, userID int64, patch models.ProfilePatch) (*entities.Profile, error)
	DeleteByUserID(ctx context.Context, userID int64) error
}

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = "id, title, bio, user_id"

func scanProfile(row scanner) (*entities.Profile, error) {
	var (
		profile    entities.Profile
		title, bio sql.NullString
	)
	if err := row.Scan(&profile.ID, &title, &bio, &profile.UserID); err != nil {
		return nil, err
	}
	profile.Title = title.String
	profile.Bio = bio.String
	return &profile, nil
}

func (r *profileRepository) FindAll(ctx context.Context) ([]*entities.Profile, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]*entities.Profile, 0)
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profiles: %w", err)
	}

	return profiles, nil
}

// FindByUserID returns the single profile owned by a user
func (r *profileRepository) FindByUserID(ctx context.Context, userID int64) (*entities.Profile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID)

	profile, err := scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("failed to find profile: %w", mapError(err))
	}
	return profile, nil
}

// Create inserts a profile; a second profile for the same user fails with ErrDuplicate
func (r *profileRepository) Create(ctx context.Context, userID int64, title, bio string) (*entities.Profile, error) {
	query := `
		INSERT INTO profiles (title, bio, user_id)
		VALUES ($1, $2, $3)
		RETURNING ` + profileColumns

	profile, err := scanProfile(r.db.QueryRowContext(ctx, query, title, bio, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", mapError(err))
	}
	return profile, nil
}

func (r *profileRepository) Update(ctx context.Context, userID int64, patch models.ProfilePatch) (*entities.Profile, error) {
	if patch.IsEmpty() {
		return r.FindByUserID(ctx, userID)
	}

	q := squirrel.Update("profiles").
		Where(squirrel.Eq{"user_id": userID}).
		Suffix("RETURNING " + profileColumns).
		PlaceholderFormat(squirrel.Dollar)
	if patch.Title != nil {
		q = q.Set("title", *patch.Title)
	}
	if patch.Bio != nil {
		q = q.Set("bio", *patch.Bio)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build profile update: %w", err)
	}

	profile, err := scanProfile(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", mapError(err))
	}
	return profile, nil
}

func (r *profileRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return checkAffected(result)
}
