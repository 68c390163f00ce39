package domain

import (
	"fmt"
	"time"
)

// Status tracks where a movie sits in the user's watch flow.
type Status string

const (
	StatusPlanning Status = "Planning to Watch"
	StatusWatching Status = "Watching"
	StatusWatched  Status = "Watched"
)

// ParseStatus validates a raw status value against the fixed enumeration.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPlanning, StatusWatching, StatusWatched:
		return Status(raw), nil
	}
	return "", fmt.Errorf("invalid status %q", raw)
}

// ValidRating reports whether r is on the 0-5 scale, 0 meaning unrated.
func ValidRating(r int) bool {
	return r >= 0 && r <= 5
}

// Movie represents one entry in a user's personal list. Year is free-form
// because the upstream API returns ranges for series ("2008–2013").
type Movie struct {
	ID        int64
	UserID    int64
	Title     string
	Year      string
	Director  string
	Plot      string
	PosterURL *string
	IMDBID    string
	Rating    int
	Status    Status
	CreatedAt time.Time
}
