package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/shuttlehub/club-system/handlers"
	"github.com/shuttlehub/club-system/middleware"
	"github.com/shuttlehub/club-system/models"
)

func SetupRoutes(
	router *chi.Mux,
	auth *middleware.Authenticator,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	sessionHandler *handlers.SessionHandler,
	scheduleHandler *handlers.ScheduleHandler,
	venueHandler *handlers.VenueHandler,
	postHandler *handlers.PostHandler,
	dashboardHandler *handlers.DashboardHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Get("/dashboard", dashboardHandler.Get)

	router.Route("/users", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Get("/me", userHandler.Me)
			r.Put("/me", userHandler.Update)
		})
		r.Get("/{userID}", userHandler.GetByID)
	})

	router.Route("/sessions", func(r chi.Router) {
		// Public read access for the club display boards.
		r.Get("/", sessionHandler.List)
		r.Get("/live", sessionHandler.GetLive)
		r.Get("/{sessionID}", sessionHandler.GetByID)
		r.Get("/{sessionID}/rankings", sessionHandler.Rankings)
		r.Get("/{sessionID}/live", webSocketHandler.Subscribe)

		// Session control is for organizers only.
		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(auth.Authorize(models.RoleOrganizer))

			r.Post("/", sessionHandler.Create)
			r.Post("/{sessionID}/start", sessionHandler.Start)
			r.Post("/{sessionID}/end", sessionHandler.End)
			r.Post("/{sessionID}/assign", sessionHandler.AutoAssign)
			r.Post("/{sessionID}/courts", sessionHandler.AddCourt)
			r.Delete("/{sessionID}/courts/{courtNumber}", sessionHandler.RemoveCourt)
			r.Post("/{sessionID}/courts/{courtNumber}/complete", sessionHandler.CompleteMatch)
			r.Post("/{sessionID}/courts/{courtNumber}/substitute", sessionHandler.SubstitutePlayer)
			r.Post("/{sessionID}/players", sessionHandler.AddPlayer)
			r.Post("/{sessionID}/players/{playerID}/pause", sessionHandler.PausePlayer)
			r.Post("/{sessionID}/players/{playerID}/resume", sessionHandler.ResumePlayer)
			r.Post("/{sessionID}/ratings/reset", sessionHandler.ResetRatings)
		})
	})

	router.Route("/schedule", func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Use(auth.Authorize(models.RoleOrganizer))
		r.Post("/preview", scheduleHandler.Preview)
		r.Post("/recurring", scheduleHandler.CreateRecurring)
	})

	router.Route("/venues", func(r chi.Router) {
		r.Get("/", venueHandler.List)
		r.Get("/{venueID}", venueHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(auth.Authorize(models.RoleOrganizer))
			r.Post("/", venueHandler.Create)
			r.Put("/{venueID}", venueHandler.Update)
			r.Post("/{venueID}/photo", venueHandler.UploadPhoto)
			r.Delete("/{venueID}", venueHandler.Delete)
		})
	})

	router.Route("/posts", func(r chi.Router) {
		r.Get("/", postHandler.List)
		r.Get("/{postID}", postHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(auth.Authorize(models.RoleOrganizer))
			r.Post("/", postHandler.Create)
			r.Put("/{postID}", postHandler.Update)
			r.Delete("/{postID}", postHandler.Delete)
		})
	})
}
