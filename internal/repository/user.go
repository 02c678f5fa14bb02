package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"weight-tracker-backend/internal/models"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and returns it with its generated ID.
func (r *UserRepository) Create(ctx context.Context, name string, createdAt time.Time) (*models.User, error) {
	query := `
		INSERT INTO users (name, created_at)
		VALUES ($1, $2)
		RETURNING id
	`
	user := &models.User{Name: name, CreatedAt: createdAt}
	err := r.db.QueryRowContext(ctx, query, name, createdAt.UnixNano()).Scan(&user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetByID retrieves a user by ID. Returns nil if the user does not exist.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, name, created_at
		FROM users
		WHERE id = $1
	`
	var (
		user      models.User
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Name, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	user.CreatedAt = time.Unix(0, createdAt)
	return &user, nil
}

// List retrieves all users ordered by ID.
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT id, name, created_at
		FROM users
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		var (
			user      models.User
			createdAt int64
		)
		if err := rows.Scan(&user.ID, &user.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		user.CreatedAt = time.Unix(0, createdAt)
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// NameExists checks if a user name is already taken
func (r *UserRepository) NameExists(ctx context.Context, name string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE name = $1)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check name existence: %w", err)
	}
	return exists, nil
}

// Delete removes a user and, explicitly, all weight records and photo rows
// owned by it, in one transaction. It returns the image paths of the deleted
// photos so the caller can remove the backing files, and whether the user
// existed at all.
func (r *UserRepository) Delete(ctx context.Context, id int64) ([]string, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `SELECT image_path FROM photos WHERE user_id = $1`, id)
	if err != nil {
		return nil, false, fmt.Errorf("failed to list photo paths: %w", err)
	}
	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			rows.Close()
			return nil, false, fmt.Errorf("failed to scan photo path: %w", err)
		}
		paths = append(paths, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("error iterating photo paths: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM weight_records WHERE user_id = $1`, id); err != nil {
		return nil, false, fmt.Errorf("failed to delete weight records: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM photos WHERE user_id = $1`, id); err != nil {
		return nil, false, fmt.Errorf("failed to delete photos: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, false, fmt.Errorf("failed to delete user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return nil, false, nil
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return paths, true, nil
}
