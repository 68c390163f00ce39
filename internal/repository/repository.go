package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moviweb/moviweb/internal/store"
)

// ErrNotFound indicates the requested entity does not exist or is not owned
// by the acting user. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("repository: not found")

// ErrUsernameTaken indicates a registration conflict.
var ErrUsernameTaken = errors.New("user already exists")

// ErrMovieAlreadyListed indicates the movie's external id is already present
// in the user's list.
var ErrMovieAlreadyListed = errors.New("movie is already in your list")

// Repository aggregates all domain-specific repositories.
type Repository struct {
	Users  *UsersRepository
	Movies *MoviesRepository
}

// New constructs a Repository backed by the provided store.
func New(st *store.Store) *Repository {
	return NewWithPool(st.Pool())
}

// NewWithPool allows constructing repositories directly from a pgx pool.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{
		Users:  &UsersRepository{pool: pool},
		Movies: &MoviesRepository{pool: pool},
	}
}
