package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a metrics manager", t, func() {
		m := NewManager(WithNamespace("test"), WithRuntimeCollectors(false))

		Convey("Draw outcomes are counted", func() {
			m.DrawCompleted(2 * time.Millisecond)
			m.DrawCompleted(time.Millisecond)
			m.DrawRejected("invalid_size")

			So(testutil.ToFloat64(m.drawsCompleted), ShouldEqual, 2)
			So(testutil.ToFloat64(m.drawsRejected.WithLabelValues("invalid_size")), ShouldEqual, 1)
			So(testutil.CollectAndCount(m.drawDuration), ShouldEqual, 1)
		})

		Convey("HTTP requests are labelled by route", func() {
			m.ObserveHTTPRequest("/peladas/{peladaID}", http.MethodGet, http.StatusOK, 5*time.Millisecond)
			m.ObserveHTTPRequest("/peladas/{peladaID}", http.MethodGet, http.StatusOK, 5*time.Millisecond)

			So(testutil.ToFloat64(m.httpRequests.WithLabelValues("/peladas/{peladaID}", "GET", "200")), ShouldEqual, 2)
		})

		Convey("The handler exposes the registry", func() {
			m.DrawCompleted(time.Millisecond)
			rec := httptest.NewRecorder()
			m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)
			body, _ := io.ReadAll(rec.Body)
			So(strings.Contains(string(body), "test_draw_completed_total 1"), ShouldBeTrue)
		})
	})

	Convey("Two managers do not collide", t, func() {
		So(func() {
			NewManager()
			NewManager()
		}, ShouldNotPanic)
	})
}
