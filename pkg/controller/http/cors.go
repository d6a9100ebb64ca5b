package http

import (
	"net/http"

	"github.com/go-chi/cors"
)

// noCORSPath is served without any cross-origin headers
const noCORSPath = "/no-cors"

// CORSConfig is the cross-origin policy of the API
type CORSConfig struct {
	AllowedOrigins []string
	AllowedHeaders []string
	MaxAge         int
}

// corsMiddleware applies cfg to every path except the excluded ones. With no
// allowed origins the browser gets no CORS headers at all.
func corsMiddleware(cfg CORSConfig, excluded ...string) func(http.Handler) http.Handler {
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{"Accept", "Content-Type"}
	}

	withCORS := cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: allowedHeaders,
		MaxAge:         cfg.MaxAge,
	})

	skip := make(map[string]struct{}, len(excluded))
	for _, p := range excluded {
		skip[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		h := withCORS(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := skip[r.URL.Path]; ok || len(cfg.AllowedOrigins) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			h.ServeHTTP(w, r)
		})
	}
}
