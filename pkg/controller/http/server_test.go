package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	httpctrl "github.com/secmon-lab/riskcalc/pkg/controller/http"
	"github.com/secmon-lab/riskcalc/pkg/service/metrics"
	"github.com/secmon-lab/riskcalc/pkg/usecase"
)

const testOrigin = "https://frontend.example.com"

func newTestServer(opts ...httpctrl.Options) *httpctrl.Server {
	opts = append([]httpctrl.Options{
		httpctrl.WithCORS(httpctrl.CORSConfig{AllowedOrigins: []string{testOrigin}}),
	}, opts...)
	return httpctrl.New(usecase.New(), opts...)
}

func TestServer_Root(t *testing.T) {
	srv := newTestServer()
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.Value(t, w.Body.String()).Equal("Welcome to the Risk Calculator Backend!")
}

func TestServer_WakeUp(t *testing.T) {
	srv := newTestServer()
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/wake-up", nil))

	gt.Value(t, w.Code).Equal(http.StatusOK)
	var resp map[string]string
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp)).Required()
	gt.Value(t, resp["message"]).Equal("Server is awake")
}

func TestServer_CORS(t *testing.T) {
	srv := newTestServer()

	t.Run("allowed origin gets CORS headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/wake-up", nil)
		req.Header.Set("Origin", testOrigin)
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)

		gt.Value(t, w.Header().Get("Access-Control-Allow-Origin")).Equal(testOrigin)
	})

	t.Run("other origin gets no CORS headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/wake-up", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)

		gt.Value(t, w.Header().Get("Access-Control-Allow-Origin")).Equal("")
	})

	t.Run("preflight for calculate-risk", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/calculate-risk", nil)
		req.Header.Set("Origin", testOrigin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "Content-Type")
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)

		gt.Value(t, w.Header().Get("Access-Control-Allow-Origin")).Equal(testOrigin)
		gt.String(t, w.Header().Get("Access-Control-Allow-Methods")).Contains(http.MethodPost)
	})

	t.Run("no-cors route never has CORS headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/no-cors", nil)
		req.Header.Set("Origin", testOrigin)
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)

		gt.Value(t, w.Code).Equal(http.StatusOK)
		gt.Value(t, w.Header().Get("Access-Control-Allow-Origin")).Equal("")
		gt.String(t, w.Body.String()).Contains("This route has no CORS")
	})
}

func TestServer_Metrics(t *testing.T) {
	t.Run("disabled by default", func(t *testing.T) {
		srv := newTestServer()
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		gt.Value(t, w.Code).Equal(http.StatusNotFound)
	})

	t.Run("counts assessments", func(t *testing.T) {
		recorder := metrics.New()
		srv := httpctrl.New(usecase.New(usecase.WithMetrics(recorder)),
			httpctrl.WithMetricsHandler(recorder.Handler()))

		body := `{"age":50,"height":170,"weight":70,"systolic":125,"diastolic":78,"familyHistory":["diabetes"]}`
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/calculate-risk", strings.NewReader(body)))
		gt.Value(t, w.Code).Equal(http.StatusOK)

		w = httptest.NewRecorder()
		srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		gt.Value(t, w.Code).Equal(http.StatusOK)
		gt.String(t, w.Body.String()).Contains(`riskcalc_assessments_total{category="Moderate Risk"} 1`)
	})

	t.Run("counts rejected request fields", func(t *testing.T) {
		recorder := metrics.New()
		srv := httpctrl.New(usecase.New(usecase.WithMetrics(recorder)),
			httpctrl.WithMetricsHandler(recorder.Handler()))

		for _, body := range []string{
			`{"age":50,"height":170,"weight":70,"diastolic":78}`,
			`{"age":50,"height":170,"weight":"heavy","systolic":125,"diastolic":78}`,
			`{"age":50,`,
		} {
			w := httptest.NewRecorder()
			srv.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/calculate-risk", strings.NewReader(body)))
			gt.Value(t, w.Code).Equal(http.StatusBadRequest)
		}

		w := httptest.NewRecorder()
		srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		out := w.Body.String()
		gt.String(t, out).Contains(`riskcalc_validation_failures_total{field="systolic"} 1`)
		gt.String(t, out).Contains(`riskcalc_validation_failures_total{field="weight"} 1`)
		gt.String(t, out).Contains(`riskcalc_validation_failures_total{field="body"} 1`)
	})
}
