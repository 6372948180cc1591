package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GoArmGo/Playlister/internal/auth"
)

// RouterConfig — параметры HTTP-слоя.
type RouterConfig struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// NewRouter собирает chi-роутер со всеми маршрутами сервиса.
// Завершающий слэш в пути не важен: /store/playlist/ и /store/playlist равнозначны.
func NewRouter(
	cfg RouterConfig,
	authHandler *AuthHandler,
	playlistHandler *PlaylistHandler,
	sessions *auth.SessionManager,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(Metrics())
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Get("/logout", authHandler.Logout)
		r.Get("/loggedIn", authHandler.LoggedIn)
		r.With(RequireSession(sessions, logger)).Put("/profile", authHandler.UpdateProfile)
	})

	r.Route("/store", func(r chi.Router) {
		r.Use(RequireSession(sessions, logger))

		r.Post("/playlist", playlistHandler.CreatePlaylist)
		r.Get("/playlist/{id}", playlistHandler.GetPlaylist)
		r.Put("/playlist/{id}", playlistHandler.UpdatePlaylist)
		r.Delete("/playlist/{id}", playlistHandler.DeletePlaylist)
		r.Get("/playlistpairs", playlistHandler.GetPlaylistPairs)
		r.Get("/playlists", playlistHandler.GetPlaylists)
	})

	return r
}
