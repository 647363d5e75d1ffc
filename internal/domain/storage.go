package domain

import (
	"context"
	"time"
)

type ObjectStorage interface {
	Upload(ctx context.Context, localPath string, desc UploadDescriptor) (UploadResult, error)
	List(ctx context.Context) ([]StoredObject, error)
	Delete(ctx context.Context, key string) error
	GetOldObjects(ctx context.Context, cutoffTime time.Time) ([]StoredObject, error)
}
