package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	. "github.com/smartystreets/goconvey/convey"
)

type stubTokens map[string]int

func (s stubTokens) Parse(token string) (int, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return 0, errors.New("bad token")
}

func echoUserID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetUserIDFromContext(r.Context())
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(strconv.Itoa(id)))
	})
}

func TestAuthenticate(t *testing.T) {
	Convey("Given the authentication middleware", t, func() {
		h := Authenticate(stubTokens{"good": 7})(echoUserID())

		serve := func(req *http.Request) *httptest.ResponseRecorder {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			return rec
		}

		Convey("A valid bearer token reaches the handler", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer good")
			rec := serve(req)
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldEqual, "7")
		})

		Convey("The token query parameter is accepted", func() {
			rec := serve(httptest.NewRequest(http.MethodGet, "/?token=good", nil))
			So(rec.Code, ShouldEqual, http.StatusOK)
		})

		Convey("Missing, malformed and invalid tokens are rejected", func() {
			So(serve(httptest.NewRequest(http.MethodGet, "/", nil)).Code, ShouldEqual, http.StatusUnauthorized)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Basic good")
			So(serve(req).Code, ShouldEqual, http.StatusUnauthorized)

			req = httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer nope")
			rec := serve(req)
			So(rec.Code, ShouldEqual, http.StatusUnauthorized)
			So(rec.Body.String(), ShouldContainSubstring, `"error"`)
		})
	})

	Convey("An empty context has no user", t, func() {
		_, err := GetUserIDFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
		So(errors.Is(err, ErrNoUserInContext), ShouldBeTrue)
	})
}

type observed struct {
	route  string
	method string
	status int
}

type recordingObserver struct{ calls []observed }

func (o *recordingObserver) ObserveHTTPRequest(route, method string, status int, _ time.Duration) {
	o.calls = append(o.calls, observed{route, method, status})
}

func TestMetrics(t *testing.T) {
	Convey("Requests are reported by route pattern", t, func() {
		obs := &recordingObserver{}
		r := chi.NewRouter()
		r.Use(Metrics(obs))
		r.Get("/peladas/{peladaID}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/peladas/42", nil))
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

		So(len(obs.calls), ShouldEqual, 2)
		So(obs.calls[0], ShouldResemble, observed{"/peladas/{peladaID}", http.MethodGet, http.StatusTeapot})
		So(obs.calls[1].status, ShouldEqual, http.StatusNotFound)
	})
}
