package routes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/mateus/app-pelada/handlers"
	"github.com/mateus/app-pelada/metrics"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

type rejectAll struct{}

func (rejectAll) Parse(string) (int, error) { return 0, errors.New("invalid") }

func TestSetupRoutes(t *testing.T) {
	Convey("Given the full router", t, func() {
		m := metrics.NewManager(metrics.WithRuntimeCollectors(false))
		router := chi.NewRouter()
		SetupRoutes(router, Handlers{
			Auth:    handlers.NewAuthHandler(nil, nil),
			User:    handlers.NewUserHandler(nil),
			Pelada:  handlers.NewPeladaHandler(nil),
			Player:  handlers.NewPlayerHandler(nil),
			Draw:    handlers.NewDrawHandler(nil),
			Match:   handlers.NewMatchHandler(nil),
			Ranking: handlers.NewRankingHandler(nil),
			Health:  handlers.NewHealthHandler(okPinger{}),
		}, Options{
			Tokens:         rejectAll{},
			HTTPObserver:   m,
			MetricsHandler: m.Handler(),
			AllowedOrigins: []string{"*"},
		})

		get := func(path string) *httptest.ResponseRecorder {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			return rec
		}

		Convey("Public routes answer without a token", func() {
			So(get("/").Code, ShouldEqual, http.StatusOK)
			So(get("/healthz").Code, ShouldEqual, http.StatusOK)
			So(get("/swagger/openapi.yaml").Code, ShouldEqual, http.StatusOK)
		})

		Convey("Protected routes require a token", func() {
			for _, path := range []string{"/users/me", "/peladas", "/peladas/1", "/peladas/1/ranking", "/ws/peladas/1"} {
				So(get(path).Code, ShouldEqual, http.StatusUnauthorized)
			}
		})

		Convey("Metrics expose the observed routes", func() {
			get("/healthz")
			rec := get("/metrics")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `route="/healthz"`)
		})
	})
}
