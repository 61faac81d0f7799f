package user

import "github.com/go-chi/chi/v5"

// Routes serves the authenticated profile endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/me", h.GetUser)
	return r
}

// AuthRoutes serves the public half of the Google sign-in flow.
func AuthRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/login", h.GoogleLogin)
	r.Get("/callback", h.GoogleCallback)
	return r
}
