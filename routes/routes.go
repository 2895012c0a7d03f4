package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/mateus/app-pelada/docs"
	"github.com/mateus/app-pelada/handlers"
	"github.com/mateus/app-pelada/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth      *handlers.AuthHandler
	User      *handlers.UserHandler
	Pelada    *handlers.PeladaHandler
	Player    *handlers.PlayerHandler
	Draw      *handlers.DrawHandler
	Match     *handlers.MatchHandler
	Ranking   *handlers.RankingHandler
	WebSocket *handlers.WebSocketHandler
	Health    *handlers.HealthHandler
}

type Options struct {
	Tokens         middleware.TokenParser
	HTTPObserver   middleware.HTTPObserver
	MetricsHandler http.Handler
	AllowedOrigins []string
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if opts.HTTPObserver != nil {
		router.Use(middleware.Metrics(opts.HTTPObserver))
	}

	// Публичные маршруты
	router.Get("/", h.Health.Welcome)
	router.Get("/healthz", h.Health.Healthz)
	router.Post("/users", h.Auth.Register)
	router.Post("/login", h.Auth.Login)

	if opts.MetricsHandler != nil {
		router.Method(http.MethodGet, "/metrics", opts.MetricsHandler)
	}
	router.Get(docs.SpecPath, docs.SpecHandler)
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docs.SpecPath)))

	// Защищенные маршруты
	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(opts.Tokens))

		r.Get("/users/me", h.User.GetMe)

		r.Route("/peladas", func(r chi.Router) {
			r.Post("/", h.Pelada.CreatePelada)
			r.Get("/", h.Pelada.ListPeladas)

			r.Route("/{peladaID}", func(r chi.Router) {
				r.Get("/", h.Pelada.GetPelada)

				r.Route("/players", func(r chi.Router) {
					r.Post("/", h.Player.CreatePlayer)
					r.Get("/", h.Player.ListPlayers)
					r.Get("/{playerID}", h.Player.GetPlayer)
					r.Put("/{playerID}", h.Player.UpdatePlayer)
					r.Delete("/{playerID}", h.Player.DeletePlayer)
				})

				r.Post("/draw", h.Draw.DrawTeams)

				r.Post("/matches", h.Match.RegisterMatch)
				r.Get("/matches", h.Match.ListMatches)

				r.Get("/ranking", h.Ranking.GetRanking)
				r.Get("/ranking/pdf", h.Ranking.ExportPDF)
				r.Post("/ranking/pdf/publish", h.Ranking.PublishPDF)
			})
		})

		r.Get("/ws/peladas/{peladaID}", h.WebSocket.ServeWs)
	})
}
