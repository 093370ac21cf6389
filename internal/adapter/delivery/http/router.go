package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter initializes and returns a new Chi router configured with middleware and routes for the URL shortener API.
func NewRouter(
	logger *httplog.Logger,
	urlUseCase urlUseCase,
	categoryUseCase categoryUseCase,
	authUseCase authUseCase,
	tokens tokenParser,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*"},
		AllowedMethods:   []string{"POST", "GET", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept", "Authorization"},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(recoverer)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/swagger.yml"),
	))

	r.Get("/docs/swagger.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./docs/swagger.yml")
	})

	urls := newURLHandler(urlUseCase)
	categories := newCategoryHandler(categoryUseCase)
	auth := newAuthHandler(authUseCase)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", handlePing)

		r.Group(func(r chi.Router) {
			r.Use(authenticate(tokens))

			r.Route("/auth", func(r chi.Router) {
				r.Post("/register", auth.register)
				r.Post("/login", auth.login)

				r.Route("/me", func(r chi.Router) {
					r.Use(requireUser)

					r.Get("/", auth.me)
					r.Delete("/", auth.deleteAccount)
				})
			})

			r.Route("/shorten", func(r chi.Router) {
				r.Post("/", urls.shortenURL)

				r.Route("/{shortCode}", func(r chi.Router) {
					r.Get("/", urls.getURL)
					r.Put("/", urls.updateURL)
					r.Delete("/", urls.deleteURL)
					r.Get("/stats", urls.getURLStats)
					r.Post("/access", urls.recordAccess)

					r.Route("/categories", func(r chi.Router) {
						r.Use(requireUser)

						r.Post("/", categories.attachCategories)
						r.Delete("/", categories.detachCategories)
					})
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(requireUser)

				r.Get("/urls", urls.listURLs)

				r.Route("/categories", func(r chi.Router) {
					r.Get("/", categories.listCategories)
					r.Post("/", categories.createCategory)

					r.Route("/{categoryID}", func(r chi.Router) {
						r.Get("/", categories.getCategory)
						r.Put("/", categories.updateCategory)
						r.Delete("/", categories.deleteCategory)
						r.Get("/urls", categories.listCategoryURLs)
					})
				})
			})
		})
	})

	r.Get("/{shortCode}", urls.redirect)

	return r
}
