package middleware

import (
	"github.com/go-chi/cors"
)

// NewCORS builds the CORS middleware for the portfolio frontend. Origins come
// from configuration; methods and headers cover the JSON API plus the
// multipart statement upload, which sends no extra headers beyond
// Content-Type.
func NewCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
