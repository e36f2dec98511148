package routes

import (
	"net/http"

	"github.com/Dosada05/league-system/handlers"
	"github.com/Dosada05/league-system/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes wires every handler into the router. Everything except the auth
// endpoints and the health check requires an authenticated session.
func SetupRoutes(
	router *chi.Mux,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	leagueHandler *handlers.LeagueHandler,
	matchHandler *handlers.MatchHandler,
	jwtSecret []byte,
	frontendURL string,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})

	router.Route("/auth", func(r chi.Router) {
		r.Get("/callback", authHandler.Callback)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))

		r.Route("/users", func(r chi.Router) {
			r.Get("/me", userHandler.Me)
			r.Put("/me", userHandler.UpdateMe)
			r.Post("/me/avatar", userHandler.UploadAvatar)
		})

		r.Route("/leagues", func(r chi.Router) {
			r.Get("/my-leagues", leagueHandler.MyLeagues)
			r.Get("/{leagueID}", leagueHandler.GetLeague)
		})

		r.Route("/matches", func(r chi.Router) {
			r.Get("/my-matches", matchHandler.MyMatches)
			r.Post("/{matchID}/score", matchHandler.ReportScore)
			r.Put("/{matchID}/score", matchHandler.EditScore)
			r.Delete("/{matchID}/score", matchHandler.DeleteScore)
		})
	})
}
