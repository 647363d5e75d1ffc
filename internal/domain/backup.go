package domain

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"
)

// TimestampLayout is the wall-clock format embedded in artifact names.
const TimestampLayout = "2006-01-02_15-04-05"

// Attempt captures one backup invocation. The timestamp is fixed at
// construction and the artifact name is derived from it, so a single
// run can never produce two differently named files.
type Attempt struct {
	Timestamp    string
	ArtifactName string
	LocalPath    string
}

func NewAttempt(now time.Time) Attempt {
	ts := now.Format(TimestampLayout)
	name := fmt.Sprintf("backup_%s.sql", ts)

	return Attempt{
		Timestamp:    ts,
		ArtifactName: name,
		LocalPath:    filepath.Join(os.TempDir(), name),
	}
}

// UploadDescriptor describes where and how one artifact is stored
// remotely. Built fresh per upload, never persisted.
type UploadDescriptor struct {
	Key         string
	ContentType string
	Metadata    map[string]string
}

func NewUploadDescriptor(prefix, remoteName string, attempt Attempt, dbName, dbHost string) UploadDescriptor {
	return UploadDescriptor{
		Key:         path.Join(prefix, remoteName),
		ContentType: "application/sql",
		Metadata: map[string]string{
			"backup-timestamp": attempt.Timestamp,
			"database-name":    dbName,
			"database-host":    dbHost,
			"backup-type":      "full",
		},
	}
}

// UploadResult is the location of a stored artifact.
type UploadResult struct {
	Bucket string
	Key    string
	URL    string
}

// StoredObject is a read-only projection of one object in the store.
type StoredObject struct {
	Key          string
	Size         int64
	LastModified time.Time
}
