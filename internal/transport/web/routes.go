package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) addRoutes(r *chi.Mux) {
	r.Use(s.loggerMiddleware(), s.recoverMiddleware())

	r.Route("/api", func(r chi.Router) {
		r.Route("/clients/v1", func(r chi.Router) {
			r.Get("/", s.listClientsHandler)
			r.Post("/", s.createClientHandler)
			r.Get("/{id}", s.getClientHandler)
			r.Put("/{id}", s.updateClientHandler)
			r.Delete("/{id}", s.deleteClientHandler)
		})

		r.Route("/rooms/v1", func(r chi.Router) {
			r.Get("/", s.listRoomsHandler)
			r.Post("/", s.createRoomHandler)
			r.Get("/{id}", s.getRoomHandler)
			r.Put("/{id}", s.updateRoomHandler)
			r.Delete("/{id}", s.deleteRoomHandler)
		})

		r.Get("/roomtypes/v1", s.listRoomTypesHandler)

		r.Route("/invoices/v1", func(r chi.Router) {
			r.Get("/", s.listInvoicesHandler)
			r.Post("/", s.createInvoiceHandler)
			r.Get("/availability", s.availabilityHandler)
			r.Get("/{id}", s.getInvoiceHandler)
			r.Put("/{id}", s.updateInvoiceHandler)
			r.Delete("/{id}", s.deleteInvoiceHandler)
		})
	})

	r.Get(s.conf.LivenessEndpoint, s.livenessHandler)
}

func (s *Server) livenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
