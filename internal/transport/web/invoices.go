package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/XxArDy/hotels/internal/hotel"
)

func (s *Server) listInvoicesHandler(w http.ResponseWriter, r *http.Request) {
	search, order := listParams(r)

	invoices, err := s.hManager.Invoices(r.Context(), search, order)
	if err != nil {
		s.respondError(w, err)

		return
	}

	s.respondJSON(w, http.StatusOK, invoices)
}

func (s *Server) createInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	var input hotel.InvoiceInput

	if !decodeBody(w, r, &input) {
		return
	}

	invoice, err := s.hManager.CreateInvoice(r.Context(), &input)
	if err != nil {
		s.respondError(w, err)

		return
	}

	s.respondJSON(w, http.StatusCreated, invoice)
}

func (s *Server) getInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return
	}

	invoice, err := s.hManager.InvoiceByID(r.Context(), id)
	if err != nil {
		s.respondError(w, err)

		return
	}

	s.respondJSON(w, http.StatusOK, invoice)
}

func (s *Server) updateInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return
	}

	var input hotel.InvoiceInput

	if !decodeBody(w, r, &input) {
		return
	}

	invoice, err := s.hManager.UpdateInvoice(r.Context(), id, &input)
	if err != nil {
		s.respondError(w, err)

		return
	}

	s.respondJSON(w, http.StatusOK, invoice)
}

func (s *Server) deleteInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return
	}

	if err := s.hManager.DeleteInvoice(r.Context(), id); err != nil {
		s.respondError(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// availabilityHandler answers whether a room is free for a date range, e.g.
// GET /api/invoices/v1/availability?roomId=1&dateStart=...&dateEnd=...
// Dates are RFC 3339. excludeId optionally leaves one invoice out of the
// check.
func (s *Server) availabilityHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	roomID, err := strconv.Atoi(q.Get("roomId"))
	if err != nil {
		http.Error(w, "provide numeric roomId", http.StatusBadRequest)

		return
	}

	dateStart, err := time.Parse(time.RFC3339, q.Get("dateStart"))
	if err != nil {
		http.Error(w, "provide dateStart in RFC 3339 format", http.StatusBadRequest)

		return
	}

	dateEnd, err := time.Parse(time.RFC3339, q.Get("dateEnd"))
	if err != nil {
		http.Error(w, "provide dateEnd in RFC 3339 format", http.StatusBadRequest)

		return
	}

	var excludeID int
	if v := q.Get("excludeId"); v != "" {
		excludeID, err = strconv.Atoi(v)
		if err != nil {
			http.Error(w, "provide numeric excludeId", http.StatusBadRequest)

			return
		}
	}

	available, err := s.hManager.IsRoomAvailable(r.Context(), roomID, dateStart, dateEnd, excludeID)
	if err != nil {
		s.respondError(w, err)

		return
	}

	s.respondJSON(w, http.StatusOK, map[string]bool{"available": available})
}
