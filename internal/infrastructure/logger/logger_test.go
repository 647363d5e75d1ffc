package logger

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given the Logger package", t, func() {
		Convey("New function", func() {
			Convey("When creating a logger with console output only", func() {
				logger, err := New("info", "")

				Convey("It should create a logger successfully", func() {
					So(err, ShouldBeNil)
					So(logger, ShouldNotBeNil)
					So(func() { logger.Infof("test log") }, ShouldNotPanic)
				})
			})

			Convey("When creating a logger with a valid log file", func() {
				tempDir, err := os.MkdirTemp("", "logger_test")
				So(err, ShouldBeNil)
				defer os.RemoveAll(tempDir)

				logFile := filepath.Join(tempDir, "pgspaces.log")
				logger, err := New("debug", logFile)

				Convey("It should create a logger and log file successfully", func() {
					So(err, ShouldBeNil)
					So(logger, ShouldNotBeNil)

					logger.Debugf("test debug log")
					logger.Sync()

					_, err := os.Stat(logFile)
					So(err, ShouldBeNil)

					logger.Close()
				})
			})

			Convey("When creating a logger with an invalid log level", func() {
				logger, err := New("chatty", "")

				Convey("It should fall back to info level", func() {
					So(err, ShouldBeNil)
					So(logger, ShouldNotBeNil)
					So(func() { logger.Infof("test info log") }, ShouldNotPanic)
				})
			})

			Convey("When the log directory cannot be created", func() {
				logger, err := New("info", "/proc/nope/pgspaces.log")

				Convey("It should return an error", func() {
					So(err, ShouldNotBeNil)
					So(err.Error(), ShouldContainSubstring, "failed to create log directory")
					So(logger, ShouldBeNil)
				})
			})
		})

		Convey("Close method", func() {
			Convey("When closing a console-only logger", func() {
				logger, err := New("info", "")
				So(err, ShouldBeNil)

				Convey("It should close without panicking", func() {
					So(func() { logger.Close() }, ShouldNotPanic)
				})
			})
		})
	})
}
