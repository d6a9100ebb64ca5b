package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/secmon-lab/riskcalc/pkg/usecase"
	"github.com/secmon-lab/riskcalc/pkg/utils/errutil"
	"github.com/secmon-lab/riskcalc/pkg/utils/logging"
	"github.com/secmon-lab/riskcalc/pkg/utils/safe"
)

// maxRequestBodySize caps the size of request bodies
const maxRequestBodySize = 1 << 20

type Server struct {
	router         *chi.Mux
	cors           CORSConfig
	metricsHandler http.Handler
}

type Options func(*Server)

// WithCORS sets the cross-origin policy for the public API routes
func WithCORS(cfg CORSConfig) Options {
	return func(s *Server) {
		s.cors = cfg
	}
}

// WithMetricsHandler exposes handler on /metrics
func WithMetricsHandler(handler http.Handler) Options {
	return func(s *Server) {
		s.metricsHandler = handler
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware(s.cors, noCORSPath))

	r.Get("/", rootHandler)
	r.Get("/wake-up", wakeUpHandler)
	r.Post("/calculate-risk", calculateRiskHandler(uc.Risk))
	r.Get(noCORSPath, noCORSHandler)

	if s.metricsHandler != nil {
		r.Handle("/metrics", s.metricsHandler)
	}

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		logger := logging.Default().With("request_id", middleware.GetReqID(r.Context()))
		ctx := logging.With(r.Context(), logger)

		defer func() {
			logger.Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r.WithContext(ctx))
	})
}

type messageResponse struct {
	Message string `json:"message"`
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	safe.Write(r.Context(), w, []byte("Welcome to the Risk Calculator Backend!"))
}

// wakeUpHandler lets a sleeping host be warmed up before the first assessment
func wakeUpHandler(w http.ResponseWriter, r *http.Request) {
	errutil.WriteJSON(r.Context(), w, http.StatusOK, messageResponse{Message: "Server is awake"})
}

func noCORSHandler(w http.ResponseWriter, r *http.Request) {
	errutil.WriteJSON(r.Context(), w, http.StatusOK, messageResponse{Message: "This route has no CORS"})
}
