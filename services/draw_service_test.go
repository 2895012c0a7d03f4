package services

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/mateus/app-pelada/draw"
	"github.com/mateus/app-pelada/models"
)

func TestDrawService(t *testing.T) {
	Convey("Given a pelada with 22 players", t, func() {
		ctx := context.Background()
		f := newFixture()
		ids := f.addPlayers(22)
		pub := &recordingPublisher{}
		obs := &recordingObserver{}
		svc := NewDrawService(f.peladas, f.players, draw.NewDrawer(draw.NewSeededShuffler(1, 2)), pub, obs, nil)

		Convey("Drawing 20 of them yields four teams of five", func() {
			teams, err := svc.DrawTeams(ctx, f.owner.ID, f.pelada.ID, DrawInput{PlayerIDs: ids[:20]})
			So(err, ShouldBeNil)
			for i := 0; i < models.TeamCount; i++ {
				So(len(*teams.Bucket(i)), ShouldEqual, models.TeamSize)
			}
			So(obs.completed, ShouldEqual, 1)
			So(pub.count(), ShouldEqual, 1)
			So(pub.events[0].eventType, ShouldEqual, draw.EventDrawCompleted)
			So(pub.events[0].peladaID, ShouldEqual, f.pelada.ID)

			Convey("And the strongest players lead each team", func() {
				// Ratings are distinct, so no tier is shuffled.
				So(teams.A[0].Rating, ShouldEqual, 22)
				So(teams.B[0].Rating, ShouldEqual, 21)
				So(teams.C[0].Rating, ShouldEqual, 20)
				So(teams.D[0].Rating, ShouldEqual, 19)
				So(teams.D[1].Rating, ShouldEqual, 18)
				So(teams.A[1].Rating, ShouldEqual, 15)
			})
		})

		Convey("A pool of the wrong size is rejected", func() {
			_, err := svc.DrawTeams(ctx, f.owner.ID, f.pelada.ID, DrawInput{PlayerIDs: ids[:19]})
			So(errors.Is(err, ErrDrawInvalidSize), ShouldBeTrue)
			_, err = svc.DrawTeams(ctx, f.owner.ID, f.pelada.ID, DrawInput{PlayerIDs: ids[:21]})
			So(errors.Is(err, ErrDrawInvalidSize), ShouldBeTrue)
			So(obs.rejected, ShouldResemble, []string{DrawRejectInvalidSize, DrawRejectInvalidSize})
			So(pub.count(), ShouldEqual, 0)
		})

		Convey("Repeated ids are rejected", func() {
			pool := append([]int{}, ids[:19]...)
			pool = append(pool, ids[0])
			_, err := svc.DrawTeams(ctx, f.owner.ID, f.pelada.ID, DrawInput{PlayerIDs: pool})
			So(errors.Is(err, ErrDrawDuplicatePlayers), ShouldBeTrue)
			So(obs.rejected, ShouldResemble, []string{DrawRejectDuplicates})
		})

		Convey("Unknown ids are reported as not found", func() {
			pool := append([]int{}, ids[:19]...)
			pool = append(pool, 99999)
			_, err := svc.DrawTeams(ctx, f.owner.ID, f.pelada.ID, DrawInput{PlayerIDs: pool})
			So(errors.Is(err, ErrDrawPlayersNotFound), ShouldBeTrue)
			So(obs.rejected, ShouldResemble, []string{DrawRejectNotFound})
		})

		Convey("Only the owner may draw", func() {
			_, err := svc.DrawTeams(ctx, f.stranger.ID, f.pelada.ID, DrawInput{PlayerIDs: ids[:20]})
			So(errors.Is(err, ErrForbiddenOperation), ShouldBeTrue)

			_, err = svc.DrawTeams(ctx, f.owner.ID, 9999, DrawInput{PlayerIDs: ids[:20]})
			So(errors.Is(err, ErrPeladaNotFound), ShouldBeTrue)
		})
	})
}
