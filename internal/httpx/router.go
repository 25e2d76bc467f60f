package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the storefront routes. The session cookie middleware
// runs on every route so even the first page view gets a cart session.
func NewRouter(handler *Handler, sessionCookie string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(SessionCookie(sessionCookie))

	r.Get("/", handler.Index)
	r.Get("/health", handler.Health)
	r.Get("/add-to-cart/{id}", handler.AddToCart)
	r.Get("/cart", handler.ShowCart)
	r.Post("/update-cart", handler.UpdateCart)
	r.Get("/checkout", handler.ReviewCheckout)
	r.Post("/checkout", handler.SubmitCheckout)
	r.Get("/success", handler.Success)
	r.Get("/admin", handler.Admin)
	return r
}
