package draw_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mateus/app-pelada/draw"
	. "github.com/smartystreets/goconvey/convey"
)

func TestHub_Publish(t *testing.T) {
	Convey("Given a running hub with one listener on pelada 7", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		hub := draw.NewHub(nil)
		go hub.Run(ctx)

		upgrader := websocket.Upgrader{}
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			conn, err := upgrader.Upgrade(w, r, nil)
			if err != nil {
				return
			}
			hub.Register(draw.NewClient(hub, conn, draw.RoomID(7)))
		}))
		defer srv.Close()

		conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
		So(err, ShouldBeNil)
		defer conn.Close()

		deadline := time.Now().Add(2 * time.Second)
		for hub.RoomSize(draw.RoomID(7)) == 0 && time.Now().Before(deadline) {
			time.Sleep(5 * time.Millisecond)
		}
		So(hub.RoomSize(draw.RoomID(7)), ShouldEqual, 1)

		Convey("When an event is published for that pelada", func() {
			hub.Publish(7, draw.EventDrawCompleted, map[string]int{"players": 20})

			conn.SetReadDeadline(time.Now().Add(2 * time.Second))
			_, data, err := conn.ReadMessage()
			So(err, ShouldBeNil)

			var event struct {
				Type    string         `json:"type"`
				Payload map[string]int `json:"payload"`
				RoomID  string         `json:"room_id"`
			}
			So(json.Unmarshal(data, &event), ShouldBeNil)

			Convey("Then the listener receives it", func() {
				So(event.Type, ShouldEqual, draw.EventDrawCompleted)
				So(event.RoomID, ShouldEqual, "pelada_7")
				So(event.Payload["players"], ShouldEqual, 20)
			})
		})

		Convey("When an event targets another pelada", func() {
			hub.Publish(8, draw.EventMatchRegistered, nil)

			conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
			_, _, err := conn.ReadMessage()

			Convey("Then nothing arrives", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
