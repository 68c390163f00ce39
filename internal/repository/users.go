package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moviweb/moviweb/internal/domain"
)

// UsersRepository provides persistence helpers for user entities.
type UsersRepository struct {
	pool *pgxpool.Pool
}

// List returns all users ordered by username.
func (r *UsersRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, username FROM users ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Username); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// GetByID fetches a user by id.
func (r *UsersRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	var user domain.User
	err := r.pool.QueryRow(ctx, `SELECT id, username FROM users WHERE id = $1`, id).
		Scan(&user.ID, &user.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// Create registers a new user. A taken username yields ErrUsernameTaken and
// leaves no row behind.
func (r *UsersRepository) Create(ctx context.Context, username string) (domain.User, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("begin create user: %w", err)
	}
	defer tx.Rollback(ctx)

	var taken bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username,
	).Scan(&taken); err != nil {
		return domain.User{}, err
	}
	if taken {
		return domain.User{}, ErrUsernameTaken
	}

	user := domain.User{Username: username}
	err = tx.QueryRow(ctx,
		`INSERT INTO users (username) VALUES ($1) RETURNING id`, username,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, ErrUsernameTaken
		}
		return domain.User{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.User{}, fmt.Errorf("commit create user: %w", err)
	}
	return user, nil
}

// Delete removes a user and every movie they own in one transaction. Movies
// are deleted first so the cascade does not rely on the FK clause alone.
func (r *UsersRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete user: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM movies WHERE user_id = $1`, id); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete user: %w", err)
	}
	return nil
}

// isUniqueViolation matches postgres error 23505.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
