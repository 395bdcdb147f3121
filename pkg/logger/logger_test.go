package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the global logger", t, func() {
		Convey("When it is initialized with stdout", func() {
			So(Init(), ShouldBeNil)

			Convey("Then Get returns a logger", func() {
				So(Get(), ShouldNotBeNil)
				So(Sync(), ShouldBeNil)
			})
		})

		Convey("When it is initialized with a nil writer", func() {
			err := InitWithWriter(nil)

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestLoggerOutput(t *testing.T) {
	Convey("Given a logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(InitWithWriter(&buf), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging with fields", func() {
			Get().Info(ctx, "dataset loaded",
				String("file", "emissions.csv"),
				Int("rows", 42),
				Bool("ok", true),
				Duration("took", 2*time.Millisecond),
				Error(errors.New("boom")),
			)
			out := buf.String()

			Convey("Then the record carries message, fields and source", func() {
				So(out, ShouldContainSubstring, "dataset loaded")
				So(out, ShouldContainSubstring, "file=emissions.csv")
				So(out, ShouldContainSubstring, "rows=42")
				So(out, ShouldContainSubstring, "ok=true")
				So(out, ShouldContainSubstring, "error=boom")
				So(out, ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When logging through a named logger", func() {
			Named("loader").Warn(ctx, "row dropped")

			Convey("Then the component is attached", func() {
				So(buf.String(), ShouldContainSubstring, "component=loader")
			})
		})

		Convey("When the level is raised to error", func() {
			So(SetLevelString("error"), ShouldBeNil)
			Get().Info(ctx, "hidden")
			Get().Error(ctx, "visible")

			Convey("Then lower levels are filtered", func() {
				So(buf.String(), ShouldNotContainSubstring, "hidden")
				So(buf.String(), ShouldContainSubstring, "visible")
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level strings", t, func() {
		So(Init(), ShouldBeNil)

		Convey("Then known levels are accepted regardless of case", func() {
			for _, lvl := range []string{"debug", "INFO", "", "warn", "Warning", " error "} {
				So(SetLevelString(lvl), ShouldBeNil)
			}
		})

		Convey("Then unknown levels are rejected", func() {
			So(SetLevelString("verbose"), ShouldNotBeNil)
		})
	})
}
