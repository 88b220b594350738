package routes

import (
	"log/slog"
	"time"

	"github.com/Dosada05/swiss-tournament/handlers"
	"github.com/Dosada05/swiss-tournament/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router chi.Router,
	logger *slog.Logger,
	jwtSecret string,
	allowedOrigins []string,
	tournamentHandler *handlers.TournamentHandler,
	authHandler *handlers.AuthHandler,
	snapshotHandler *handlers.SnapshotHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/health", handlers.Health)
	router.Get("/ws/standings", webSocketHandler.ServeStandings)

	router.Group(func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(10 * time.Second))

		r.Post("/auth/login", authHandler.Login)

		r.Get("/players/count", tournamentHandler.CountPlayers)
		r.Get("/standings", tournamentHandler.Standings)
		r.Get("/pairings", tournamentHandler.Pairings)

		// Защищенные маршруты только для организаторов
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.RequireOrganizer)

			r.Post("/players", tournamentHandler.RegisterPlayer)
			r.Delete("/players", tournamentHandler.DeletePlayers)
			r.Post("/matches", tournamentHandler.ReportMatch)
			r.Delete("/matches", tournamentHandler.DeleteMatches)
			r.Post("/standings/snapshots", snapshotHandler.Export)
			r.Delete("/standings/snapshots/*", snapshotHandler.Delete)
		})
	})
}
