package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"

	"github.com/robinhio12/rockbrakel/handlers"
	"github.com/robinhio12/rockbrakel/middleware"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret []byte,
	authHandler *handlers.AuthHandler,
	playerHandler *handlers.PlayerHandler,
	resultHandler *handlers.ResultHandler,
	tournamentHandler *handlers.TournamentHandler,
	rankingHandler *handlers.RankingHandler,
	adminHandler *handlers.AdminHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Post("/auth/login", authHandler.Login)

	router.Route("/players", func(r chi.Router) {
		r.Post("/", playerHandler.Register)
		r.Get("/", playerHandler.List)
	})

	router.Route("/results", func(r chi.Router) {
		r.Get("/", resultHandler.GetAll)
		r.Post("/{game}", resultHandler.Submit)
		r.Get("/{game}/players/{playerID}/exists", resultHandler.CheckExistingScore)
	})

	router.Route("/doping", func(r chi.Router) {
		r.Get("/", resultHandler.DopingUsage)
		r.Get("/{game}/players/{playerID}", resultHandler.CheckDoping)
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/results", tournamentHandler.CheckResults)
		r.Get("/{game}", tournamentHandler.Get)
		r.Get("/{game}/matches", tournamentHandler.ListMatches)
		r.Post("/{game}/generate", tournamentHandler.Generate)
		r.Post("/{game}/matches", tournamentHandler.SubmitMatch)
	})

	router.Route("/rankings", func(r chi.Router) {
		r.Get("/", rankingHandler.Get)
		r.Get("/winners", rankingHandler.CheckWinners)
		r.Post("/winners/{jersey}/dismiss", rankingHandler.DismissWinner)
	})

	// Organizer-only routes.
	router.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin(jwtSecret))

		r.Get("/answer-keys/{game}", adminHandler.GetAnswerKey)
		r.Put("/answer-keys/{game}", adminHandler.SetAnswerKey)
		r.Delete("/results", adminHandler.ClearResults)
	})

	router.Get("/ws/{room}", webSocketHandler.ServeWs)
}
