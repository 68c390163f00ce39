package httpserver

import (
	"testing"

	"github.com/moviweb/moviweb/internal/domain"
)

func FuzzBuildUpdateParams(f *testing.F) {
	f.Add("my review", 3, "Watched", true, true, true)
	f.Add("", 7, "Binged", false, true, true)
	f.Add("   ", 0, "", true, false, false)

	f.Fuzz(func(t *testing.T, plot string, rating int, status string, hasPlot, hasRating, hasStatus bool) {
		var req movieUpdateRequest
		if hasPlot {
			req.Plot = &plot
		}
		if hasRating {
			req.Rating = &rating
		}
		if hasStatus {
			req.Status = &status
		}

		params, err := buildUpdateParams(req)
		if err != nil {
			return
		}
		if params.Rating != nil && !domain.ValidRating(*params.Rating) {
			t.Fatalf("out-of-range rating %d passed validation", *params.Rating)
		}
		if params.Status != nil {
			if _, parseErr := domain.ParseStatus(string(*params.Status)); parseErr != nil {
				t.Fatalf("invalid status %q passed validation", *params.Status)
			}
		}
	})
}
