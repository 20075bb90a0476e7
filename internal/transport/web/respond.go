package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/XxArDy/hotels/internal/hotel"
)

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.l.LogErrorf("Could not encode response: %v", err.Error())
	}
}

// respondError maps domain errors to status codes: accumulated input errors
// and booking conflicts are the caller's fault (400, matching the original
// API's conflict mapping), a missing record is 404, anything else is 500.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	if inputErr := hotel.IsInputError(err); inputErr != nil {
		s.respondJSON(w, http.StatusBadRequest, inputErr.Fields())

		return
	}

	switch {
	case errors.Is(err, hotel.ErrBookingConflict):
		s.respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": "room is not available for the specified date range",
		})
	case errors.Is(err, hotel.ErrRoomNotFound):
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "room not found"})
	case errors.Is(err, hotel.ErrNotFound):
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	default:
		s.l.LogErrorf("Request failed: %v", err.Error())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func idParam(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

func listParams(r *http.Request) (string, hotel.SortOrder) {
	q := r.URL.Query()

	var order hotel.SortOrder

	switch q.Get("_order") {
	case "asc":
		order = hotel.SortAsc
	case "desc":
		order = hotel.SortDesc
	default:
		order = hotel.SortNone
	}

	return q.Get("_search"), order
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return false
	}

	return true
}
