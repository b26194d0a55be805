package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"github.com/abhishek-kr07/quickdesk/internal/config"
	"github.com/abhishek-kr07/quickdesk/internal/handlers"
	"github.com/abhishek-kr07/quickdesk/internal/middleware"
	"github.com/abhishek-kr07/quickdesk/internal/policy"
	"github.com/abhishek-kr07/quickdesk/internal/repository"
	"github.com/abhishek-kr07/quickdesk/internal/service"
)

func New(log zerolog.Logger, stores repository.Stores, cfg config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(httprate.LimitByIP(200, time.Minute))
	r.Use(middleware.WithAuth(log, cfg, stores.Users))

	// Health
	r.Get("/healthz", handlers.Health())

	// Services + handlers
	ticketSvc := service.NewTicketService(stores.Tickets, stores.Comments, stores.Users, stores.Categories)
	categorySvc := service.NewCategoryService(stores.Categories)
	userSvc := service.NewUserService(stores.Users)
	authSvc := service.NewAuthService(stores.Users, cfg.SessionSecret)

	th := handlers.NewTicketHTTP(ticketSvc)
	ch := handlers.NewCategoryHTTP(categorySvc)
	uh := handlers.NewUserHTTP(userSvc)
	ah := handlers.NewAuthHTTP(authSvc)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", ah.Register())
		r.Post("/login", ah.Login())
		r.Post("/logout", ah.Logout())
		r.With(middleware.RequireAuth).Get("/me", ah.Me())
	})

	r.Route("/api/tickets", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", th.List())
		r.Post("/", th.Create())
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", th.Get())
			r.Put("/", th.Update())
			r.Post("/comments", th.AddComment())
		})
	})

	r.Route("/api/categories", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", ch.List())
		r.Get("/{id}", ch.Get())
		r.With(middleware.RequireRoles(policy.RoleAdmin)).Post("/", ch.Create())
		r.With(middleware.RequireRoles(policy.RoleAdmin)).Put("/{id}", ch.Update())
		r.With(middleware.RequireRoles(policy.RoleAdmin)).Delete("/{id}", ch.Delete())
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.RequireRoles(policy.RoleAdmin))
		r.Get("/", uh.List())
		r.Get("/stats/overview", uh.Stats())
		r.Get("/{id}", uh.Get())
		r.Put("/{id}", uh.Update())
		r.Delete("/{id}", uh.Delete())
	})

	return r
}
