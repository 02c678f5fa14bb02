package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the API router. Taking the handlers as arguments keeps
// the router buildable against isolated test instances.
func NewRouter(userHandler *UserHandler, weightHandler *WeightHandler, photoHandler *PhotoHandler) chi.Router {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/users", userHandler.ListUsers)
		r.Post("/users", userHandler.CreateUser)
		r.Delete("/users/{user_id}", userHandler.DeleteUser)

		r.Route("/users/{user_id}/weight", func(r chi.Router) {
			r.Get("/", weightHandler.ListRecords)
			r.Post("/", weightHandler.AddRecord)
			r.Put("/{record_id}", weightHandler.UpdateRecord)
			r.Delete("/{record_id}", weightHandler.DeleteRecord)
		})

		r.Post("/users/{user_id}/photos", photoHandler.UploadPhoto)
		r.Get("/users/{user_id}/photos", photoHandler.ListPhotos)

		r.Get("/photos/{photo_id}", photoHandler.ServePhoto)
		r.Get("/photos/{photo_id}/download", photoHandler.DownloadPhoto)
		r.Delete("/photos/{photo_id}", photoHandler.DeletePhoto)
	})

	return r
}

// corsMiddleware permits cross-origin requests from any origin
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
