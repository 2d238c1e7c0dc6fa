package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/salon/internal/http/appointment"
	"github.com/MrJamesThe3rd/salon/internal/http/backup"
	"github.com/MrJamesThe3rd/salon/internal/http/client"
	"github.com/MrJamesThe3rd/salon/internal/http/finance"
	"github.com/MrJamesThe3rd/salon/internal/http/notification"
	"github.com/MrJamesThe3rd/salon/internal/http/procedure"
)

type Handlers struct {
	Clients       *client.Handler
	Procedures    *procedure.Handler
	Appointments  *appointment.Handler
	Finance       *finance.Handler
	Backup        *backup.Handler
	Notifications *notification.Handler
}

func New(h Handlers, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/clients", h.Clients.Routes)

		r.Route("/procedures", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Procedures.Routes(r)
		})

		r.Route("/appointments", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Appointments.Routes(r)
		})

		r.Route("/finance", h.Finance.Routes)
		r.Route("/backup", h.Backup.Routes)
		r.Route("/notifications", h.Notifications.Routes)
	})

	return router
}
