package db_test

import (
	"strings"
	"testing"

	"github.com/mateus/app-pelada/db"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSchema(t *testing.T) {
	Convey("The embedded schema", t, func() {
		schema := db.Schema()

		Convey("declares every table idempotently", func() {
			for _, table := range []string{"users", "peladas", "players", "matches", "match_stats"} {
				So(schema, ShouldContainSubstring, "CREATE TABLE IF NOT EXISTS "+table+" (")
			}
			So(strings.Count(schema, "CREATE TABLE ("), ShouldEqual, 0)
		})

		Convey("names the constraints the repositories map", func() {
			So(schema, ShouldContainSubstring, "users_email_key")
			So(schema, ShouldContainSubstring, "match_stats_match_player_key")
		})
	})
}
