package web

import (
	"net/http"

	"github.com/XxArDy/hotels/internal/hotel"
)

func (s *Server) listRoomsHandler(w http.ResponseWriter, r *http.Request) {
	search, order := listParams(r)

	rooms, err := s.hManager.Rooms(r.Context(), search, order)
	if err != nil {
		s.respondError(w, err)

		return
	}

	s.respondJSON(w, http.StatusOK, rooms)
}

func (s *Server) createRoomHandler(w http.ResponseWriter, r *http.Request) {
	var input hotel.RoomInput

	if !decodeBody(w, r, &input) {
		return
	}

	room, err := s.hManager.CreateRoom(r.Context(), &input)
	if err != nil {
		s.respondError(w, err)

		return
	}

	s.respondJSON(w, http.StatusCreated, room)
}

func (s *Server) getRoomHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return
	}

	room, err := s.hManager.RoomByID(r.Context(), id)
	if err != nil {
		s.respondError(w, err)

		return
	}

	s.respondJSON(w, http.StatusOK, room)
}

func (s *Server) updateRoomHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return
	}

	var input hotel.RoomInput

	if !decodeBody(w, r, &input) {
		return
	}

	room, err := s.hManager.UpdateRoom(r.Context(), id, &input)
	if err != nil {
		s.respondError(w, err)

		return
	}

	s.respondJSON(w, http.StatusOK, room)
}

func (s *Server) deleteRoomHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return
	}

	if err := s.hManager.DeleteRoom(r.Context(), id); err != nil {
		s.respondError(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listRoomTypesHandler(w http.ResponseWriter, r *http.Request) {
	types, err := s.hManager.RoomTypes(r.Context())
	if err != nil {
		s.respondError(w, err)

		return
	}

	s.respondJSON(w, http.StatusOK, types)
}
