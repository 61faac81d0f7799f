package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/saulo-duarte/goalie-lambda/docs"
	"github.com/saulo-duarte/goalie-lambda/internal/auth"
	"github.com/saulo-duarte/goalie-lambda/internal/config"
	"github.com/saulo-duarte/goalie-lambda/internal/goal"
	"github.com/saulo-duarte/goalie-lambda/internal/middlewares"
	"github.com/saulo-duarte/goalie-lambda/internal/user"
)

type RouterConfig struct {
	UserHandler    *user.Handler
	GoalHandler    *goal.Handler
	AuthHandler    *auth.Handler
	Issuer         *auth.TokenIssuer
	AllowedOrigins []string
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware(cfg.AllowedOrigins))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		config.JSON(w, http.StatusOK, map[string]string{"message": "Goal Tracker API v2"})
	})
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		config.JSON(w, http.StatusOK, map[string]string{
			"status":  "awake",
			"message": "Goal Tracker API is running",
		})
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	requireAuth := auth.AuthMiddleware(cfg.Issuer)

	r.Route("/auth", func(r chi.Router) {
		r.Mount("/google", user.AuthRoutes(cfg.UserHandler))
		r.Post("/refresh", cfg.AuthHandler.RefreshToken)
		r.Post("/logout", cfg.AuthHandler.Logout)
		r.With(requireAuth).Get("/me", cfg.UserHandler.GetUser)
	})

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/goals", goal.Routes(cfg.GoalHandler))
	})
	return r
}
