package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/moviweb/moviweb/internal/domain"
	"github.com/moviweb/moviweb/internal/omdb"
	"github.com/moviweb/moviweb/internal/repository"
)

type movieSearchRequest struct {
	Title  string `json:"title"`
	IMDBID string `json:"imdbID"`
}

type movieAddRequest struct {
	IMDBID string `json:"imdbID"`
}

type movieUpdateRequest struct {
	Plot   *string `json:"plot"`
	Rating *int    `json:"rating"`
	Status *string `json:"status"`
}

type movieResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Year      string    `json:"year"`
	Director  string    `json:"director"`
	Plot      string    `json:"plot"`
	PosterURL *string   `json:"posterUrl"`
	IMDBID    string    `json:"imdbID"`
	Rating    int       `json:"rating"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type searchResponse struct {
	Title     string  `json:"title"`
	Year      string  `json:"year"`
	Director  string  `json:"director"`
	Plot      string  `json:"plot"`
	PosterURL *string `json:"posterUrl"`
	IMDBID    string  `json:"imdbID"`
}

func toMovieResponse(movie domain.Movie) movieResponse {
	return movieResponse{
		ID:        movie.ID,
		Title:     movie.Title,
		Year:      movie.Year,
		Director:  movie.Director,
		Plot:      movie.Plot,
		PosterURL: movie.PosterURL,
		IMDBID:    movie.IMDBID,
		Rating:    movie.Rating,
		Status:    string(movie.Status),
		CreatedAt: movie.CreatedAt,
	}
}

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userID")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	movies, err := s.repo.Movies.ListForUser(r.Context(), userID)
	if err != nil {
		s.logger.Printf("list movies error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to list movies")
		return
	}

	items := make([]movieResponse, 0, len(movies))
	for _, movie := range movies {
		items = append(items, toMovieResponse(movie))
	}
	s.respondJSON(w, http.StatusOK, items)
}

// handleSearchMovie proxies a metadata lookup by title or imdb id so the user
// can confirm the match before adding it.
func (s *Server) handleSearchMovie(w http.ResponseWriter, r *http.Request) {
	if _, err := idParam(r, "userID"); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req movieSearchRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	query := omdb.Query{IMDBID: strings.TrimSpace(req.IMDBID), Title: strings.TrimSpace(req.Title)}
	if query.IMDBID == "" && query.Title == "" {
		s.respondError(w, http.StatusUnprocessableEntity, "Please enter a movie title.")
		return
	}

	record, err := s.fetchRecord(r.Context(), query)
	if err != nil {
		s.respondLookupError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, searchResponse{
		Title:     record.Title,
		Year:      record.Year,
		Director:  record.Director,
		Plot:      record.Plot,
		PosterURL: record.PosterURL(),
		IMDBID:    record.IMDBID,
	})
}

func (s *Server) handleAddMovie(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userID")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req movieAddRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	imdbID := strings.TrimSpace(req.IMDBID)
	if imdbID == "" {
		s.respondError(w, http.StatusUnprocessableEntity, "imdbID is required")
		return
	}

	if _, err := s.repo.Users.GetByID(r.Context(), userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "User not found.")
			return
		}
		s.logger.Printf("fetch user error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to add movie")
		return
	}

	record, err := s.fetchRecord(r.Context(), omdb.Query{IMDBID: imdbID})
	if err != nil {
		s.respondLookupError(w, err)
		return
	}

	movie, err := s.repo.Movies.Add(r.Context(), userID, repository.MovieCreateParams{
		Title:     record.Title,
		Year:      record.Year,
		Director:  record.Director,
		Plot:      record.Plot,
		PosterURL: record.PosterURL(),
		IMDBID:    record.IMDBID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrMovieAlreadyListed) {
			s.respondError(w, http.StatusConflict, "Movie is already in your list.")
			return
		}
		s.logger.Printf("add movie error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to add movie")
		return
	}

	s.respondJSON(w, http.StatusCreated, toMovieResponse(movie))
}

func (s *Server) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	userID, movieID, ok := s.movieParams(w, r)
	if !ok {
		return
	}

	movie, err := s.repo.Movies.GetForUser(r.Context(), movieID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "Movie not found.")
			return
		}
		s.logger.Printf("get movie error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to fetch movie")
		return
	}
	s.respondJSON(w, http.StatusOK, toMovieResponse(movie))
}

func (s *Server) handleUpdateMovie(w http.ResponseWriter, r *http.Request) {
	userID, movieID, ok := s.movieParams(w, r)
	if !ok {
		return
	}

	var req movieUpdateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	params, err := buildUpdateParams(req)
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if params.Empty() {
		s.respondError(w, http.StatusUnprocessableEntity, "No changes submitted.")
		return
	}

	movie, err := s.repo.Movies.Update(r.Context(), movieID, userID, params)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "Movie not found.")
			return
		}
		s.logger.Printf("update movie error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to update movie")
		return
	}
	s.respondJSON(w, http.StatusOK, toMovieResponse(movie))
}

func (s *Server) handleDeleteMovie(w http.ResponseWriter, r *http.Request) {
	userID, movieID, ok := s.movieParams(w, r)
	if !ok {
		return
	}

	if err := s.repo.Movies.Delete(r.Context(), movieID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "Movie not found.")
			return
		}
		s.logger.Printf("delete movie error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to delete movie")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// buildUpdateParams validates the editable fields. Rating and status are
// checked here; the repository applies whatever it is handed.
func buildUpdateParams(req movieUpdateRequest) (repository.MovieUpdateParams, error) {
	var params repository.MovieUpdateParams

	if req.Plot != nil {
		plot := strings.TrimSpace(*req.Plot)
		if plot != "" {
			params.Plot = &plot
		}
	}
	if req.Rating != nil {
		if !domain.ValidRating(*req.Rating) {
			return repository.MovieUpdateParams{}, errors.New("Rating must be between 0 and 5.")
		}
		params.Rating = req.Rating
	}
	if req.Status != nil && *req.Status != "" {
		status, err := domain.ParseStatus(*req.Status)
		if err != nil {
			return repository.MovieUpdateParams{}, errors.New("Invalid status value.")
		}
		params.Status = &status
	}
	return params, nil
}

func (s *Server) fetchRecord(ctx context.Context, query omdb.Query) (*omdb.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.OMDbTimeoutSecs)*time.Second)
	defer cancel()
	return s.lookup.Lookup(ctx, query)
}

func (s *Server) movieParams(w http.ResponseWriter, r *http.Request) (userID, movieID int64, ok bool) {
	userID, err := idParam(r, "userID")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}
	movieID, err = idParam(r, "movieID")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}
	return userID, movieID, true
}
