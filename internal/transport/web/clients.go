package web

import (
	"net/http"

	"github.com/XxArDy/hotels/internal/hotel"
)

func (s *Server) listClientsHandler(w http.ResponseWriter, r *http.Request) {
	search, order := listParams(r)

	clients, err := s.hManager.Clients(r.Context(), search, order)
	if err != nil {
		s.respondError(w, err)

		return
	}

	s.respondJSON(w, http.StatusOK, clients)
}

func (s *Server) createClientHandler(w http.ResponseWriter, r *http.Request) {
	var input hotel.ClientInput

	if !decodeBody(w, r, &input) {
		return
	}

	client, err := s.hManager.CreateClient(r.Context(), &input)
	if err != nil {
		s.respondError(w, err)

		return
	}

	s.respondJSON(w, http.StatusCreated, client)
}

func (s *Server) getClientHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return
	}

	client, err := s.hManager.ClientByID(r.Context(), id)
	if err != nil {
		s.respondError(w, err)

		return
	}

	s.respondJSON(w, http.StatusOK, client)
}

func (s *Server) updateClientHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return
	}

	var input hotel.ClientInput

	if !decodeBody(w, r, &input) {
		return
	}

	client, err := s.hManager.UpdateClient(r.Context(), id, &input)
	if err != nil {
		s.respondError(w, err)

		return
	}

	s.respondJSON(w, http.StatusOK, client)
}

func (s *Server) deleteClientHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return
	}

	if err := s.hManager.DeleteClient(r.Context(), id); err != nil {
		s.respondError(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
