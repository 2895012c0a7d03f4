package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeResult struct {
	rows int64
	err  error
}

func (f fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (f fakeResult) RowsAffected() (int64, error) { return f.rows, f.err }

func TestCheckAffectedRows(t *testing.T) {
	Convey("checkAffectedRows", t, func() {
		Convey("returns the not-found error when nothing changed", func() {
			So(checkAffectedRows(fakeResult{rows: 0}, ErrPlayerNotFound), ShouldEqual, ErrPlayerNotFound)
		})
		Convey("returns nil when a row changed", func() {
			So(checkAffectedRows(fakeResult{rows: 1}, ErrPlayerNotFound), ShouldBeNil)
		})
		Convey("wraps driver failures", func() {
			boom := errors.New("boom")
			err := checkAffectedRows(fakeResult{err: boom}, ErrPlayerNotFound)
			So(errors.Is(err, boom), ShouldBeTrue)
		})
	})
}

func TestPqConstraintError(t *testing.T) {
	Convey("pqConstraintError", t, func() {
		err := fmt.Errorf("insert: %w", &pq.Error{Code: pqUniqueViolation, Constraint: "users_email_key"})

		Convey("finds the constraint of a wrapped pq error", func() {
			constraint, ok := pqConstraintError(err, pqUniqueViolation)
			So(ok, ShouldBeTrue)
			So(constraint, ShouldEqual, "users_email_key")
		})

		Convey("ignores other SQLSTATE codes", func() {
			_, ok := pqConstraintError(err, pqForeignKeyViolation)
			So(ok, ShouldBeFalse)
		})

		Convey("ignores non-postgres errors", func() {
			_, ok := pqConstraintError(errors.New("plain"), pqUniqueViolation)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestToInt64s(t *testing.T) {
	Convey("toInt64s converts ids for pq arrays", t, func() {
		So(toInt64s([]int{3, 1, 2}), ShouldResemble, []int64{3, 1, 2})
		So(toInt64s(nil), ShouldResemble, []int64{})
	})
}
