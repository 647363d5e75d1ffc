package domain

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestAttempt(t *testing.T) {
	Convey("Given a backup attempt", t, func() {
		now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

		Convey("When constructing from a fixed time", func() {
			attempt := NewAttempt(now)

			Convey("It should derive the artifact name from the timestamp", func() {
				So(attempt.Timestamp, ShouldEqual, "2026-03-14_09-26-53")
				So(attempt.ArtifactName, ShouldEqual, "backup_2026-03-14_09-26-53.sql")
				So(attempt.LocalPath, ShouldEqual, filepath.Join(os.TempDir(), attempt.ArtifactName))
			})

			Convey("It should match the artifact naming pattern", func() {
				pattern := regexp.MustCompile(`^backup_\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}\.sql$`)
				So(pattern.MatchString(attempt.ArtifactName), ShouldBeTrue)
			})

			Convey("It should be deterministic for the same instant", func() {
				again := NewAttempt(now)
				So(again, ShouldResemble, attempt)
			})
		})
	})
}

func TestUploadDescriptor(t *testing.T) {
	Convey("Given an upload descriptor", t, func() {
		now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
		attempt := NewAttempt(now)

		Convey("When building from an attempt", func() {
			desc := NewUploadDescriptor("postgres-backups", attempt.ArtifactName, attempt, "appdb", "db.internal")

			Convey("It should namespace the key under the prefix", func() {
				So(desc.Key, ShouldEqual, "postgres-backups/backup_2026-03-14_09-26-53.sql")
			})

			Convey("It should carry the fixed content type and metadata", func() {
				So(desc.ContentType, ShouldEqual, "application/sql")
				So(desc.Metadata["backup-timestamp"], ShouldEqual, attempt.Timestamp)
				So(desc.Metadata["database-name"], ShouldEqual, "appdb")
				So(desc.Metadata["database-host"], ShouldEqual, "db.internal")
				So(desc.Metadata["backup-type"], ShouldEqual, "full")
			})
		})
	})
}
