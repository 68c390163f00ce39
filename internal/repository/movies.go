package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moviweb/moviweb/internal/domain"
)

// MoviesRepository provides persistence helpers for a user's movie list.
type MoviesRepository struct {
	pool *pgxpool.Pool
}

const movieColumns = `
    id,
    user_id,
    title,
    year,
    director,
    plot,
    poster_url,
    imdb_id,
    rating,
    status,
    created_at
`

// MovieCreateParams bundles the normalized lookup fields stored on add.
type MovieCreateParams struct {
	Title     string
	Year      string
	Director  string
	Plot      string
	PosterURL *string
	IMDBID    string
}

// MovieUpdateParams carries the editable per-user fields; nil means keep the
// stored value. Validation of rating/status happens at the request boundary.
type MovieUpdateParams struct {
	Plot   *string
	Rating *int
	Status *domain.Status
}

// Empty reports whether the update would change nothing.
func (p MovieUpdateParams) Empty() bool {
	return p.Plot == nil && p.Rating == nil && p.Status == nil
}

// ListForUser returns the user's movies newest-first.
func (r *MoviesRepository) ListForUser(ctx context.Context, userID int64) ([]domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, movieColumns)
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]domain.Movie, 0)
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return movies, nil
}

// GetForUser fetches a movie iff it is owned by the given user. A movie owned
// by someone else reads as absent.
func (r *MoviesRepository) GetForUser(ctx context.Context, movieID, userID int64) (domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE id = $1 AND user_id = $2`, movieColumns)
	movie, err := scanMovie(r.pool.QueryRow(ctx, query, movieID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Movie{}, ErrNotFound
		}
		return domain.Movie{}, err
	}
	return movie, nil
}

// Add inserts a movie into the user's list unless its external id is already
// present there. The existence check and insert share one transaction.
func (r *MoviesRepository) Add(ctx context.Context, userID int64, params MovieCreateParams) (domain.Movie, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("begin add movie: %w", err)
	}
	defer tx.Rollback(ctx)

	var listed bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM movies WHERE user_id = $1 AND imdb_id = $2)`,
		userID, params.IMDBID,
	).Scan(&listed); err != nil {
		return domain.Movie{}, err
	}
	if listed {
		return domain.Movie{}, ErrMovieAlreadyListed
	}

	query := fmt.Sprintf(`
        INSERT INTO movies (user_id, title, year, director, plot, poster_url, imdb_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING %s
    `, movieColumns)

	movie, err := scanMovie(tx.QueryRow(ctx, query,
		userID, params.Title, params.Year, params.Director, params.Plot, params.PosterURL, params.IMDBID))
	if err != nil {
		return domain.Movie{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Movie{}, fmt.Errorf("commit add movie: %w", err)
	}
	return movie, nil
}

// Update applies the supplied partial fields to an owned movie and returns
// the updated row. Not found and not owned both map to ErrNotFound.
func (r *MoviesRepository) Update(ctx context.Context, movieID, userID int64, params MovieUpdateParams) (domain.Movie, error) {
	var status *string
	if params.Status != nil {
		s := string(*params.Status)
		status = &s
	}

	query := fmt.Sprintf(`
        UPDATE movies
        SET plot = COALESCE($3, plot),
            rating = COALESCE($4, rating),
            status = COALESCE($5, status)
        WHERE id = $1 AND user_id = $2
        RETURNING %s
    `, movieColumns)

	movie, err := scanMovie(r.pool.QueryRow(ctx, query, movieID, userID, params.Plot, params.Rating, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Movie{}, ErrNotFound
		}
		return domain.Movie{}, err
	}
	return movie, nil
}

// Delete removes an owned movie. Deleting an unowned or missing movie yields
// ErrNotFound without touching any row.
func (r *MoviesRepository) Delete(ctx context.Context, movieID, userID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM movies WHERE id = $1 AND user_id = $2`, movieID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountForUser reports the size of a user's list.
func (r *MoviesRepository) CountForUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM movies WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func scanMovie(row pgx.Row) (domain.Movie, error) {
	var (
		movie  domain.Movie
		status string
	)
	err := row.Scan(
		&movie.ID,
		&movie.UserID,
		&movie.Title,
		&movie.Year,
		&movie.Director,
		&movie.Plot,
		&movie.PosterURL,
		&movie.IMDBID,
		&movie.Rating,
		&status,
		&movie.CreatedAt,
	)
	if err != nil {
		return domain.Movie{}, err
	}
	movie.Status = domain.Status(status)
	return movie, nil
}
