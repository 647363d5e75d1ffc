package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/pgspaces/pgspaces/internal/domain"
)

func TestParseWaitArgs(t *testing.T) {
	Convey("Given wait command arguments", t, func() {
		Convey("When no arguments are given", func() {
			total, interval, err := ParseWaitArgs(nil)

			Convey("It should apply the defaults", func() {
				So(err, ShouldBeNil)
				So(total, ShouldEqual, 5*time.Minute)
				So(interval, ShouldEqual, 30*time.Second)
			})
		})

		Convey("When minutes and interval are given", func() {
			total, interval, err := ParseWaitArgs([]string{"2", "10"})

			Convey("It should parse both values", func() {
				So(err, ShouldBeNil)
				So(total, ShouldEqual, 2*time.Minute)
				So(interval, ShouldEqual, 10*time.Second)
			})
		})

		Convey("When minutes is zero", func() {
			_, _, err := ParseWaitArgs([]string{"0"})

			Convey("It should fail with an invalid argument error", func() {
				So(errors.Is(err, domain.ErrInvalidArgument), ShouldBeTrue)
			})
		})

		Convey("When minutes is negative", func() {
			_, _, err := ParseWaitArgs([]string{"-1"})

			Convey("It should fail with an invalid argument error", func() {
				So(errors.Is(err, domain.ErrInvalidArgument), ShouldBeTrue)
			})
		})

		Convey("When minutes is not a number", func() {
			_, _, err := ParseWaitArgs([]string{"soon"})

			Convey("It should fail with an invalid argument error", func() {
				So(errors.Is(err, domain.ErrInvalidArgument), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "soon")
			})
		})

		Convey("When the interval is non-positive", func() {
			_, _, err := ParseWaitArgs([]string{"1", "0"})

			Convey("It should fail with an invalid argument error", func() {
				So(errors.Is(err, domain.ErrInvalidArgument), ShouldBeTrue)
			})
		})
	})
}

func TestWait(t *testing.T) {
	Convey("Given a wait use case", t, func() {
		uc := NewWait(&testLogger{})

		Convey("When waiting a short duration", func() {
			start := time.Now()
			err := uc.Execute(context.Background(), 150*time.Millisecond, 50*time.Millisecond)
			elapsed := time.Since(start)

			Convey("It should complete only after the full duration", func() {
				So(err, ShouldBeNil)
				So(elapsed, ShouldBeGreaterThanOrEqualTo, 150*time.Millisecond)
			})
		})

		Convey("When the duration is non-positive", func() {
			start := time.Now()
			err := uc.Execute(context.Background(), 0, time.Second)
			elapsed := time.Since(start)

			Convey("It should fail immediately without waiting", func() {
				So(errors.Is(err, domain.ErrInvalidArgument), ShouldBeTrue)
				So(elapsed, ShouldBeLessThan, 100*time.Millisecond)
			})
		})

		Convey("When the context is cancelled mid-wait", func() {
			ctx, cancel := context.WithCancel(context.Background())
			go func() {
				time.Sleep(30 * time.Millisecond)
				cancel()
			}()

			err := uc.Execute(ctx, time.Minute, 10*time.Millisecond)

			Convey("It should stop with the context error", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}
