package storage

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	s3manager "github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "github.com/pgspaces/pgspaces/internal/config"
	"github.com/pgspaces/pgspaces/internal/domain"
)

type S3Storage struct {
	client   *s3.Client
	uploader *s3manager.Uploader
	bucket   string
	endpoint string
	prefix   string
}

// NewS3 creates an S3Storage against an S3-compatible endpoint
// (DigitalOcean Spaces by default) using static credentials.
func NewS3(cfg *appconfig.ObjectStoreConfig) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load store config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String("https://" + cfg.Endpoint)
	})

	return &S3Storage{
		client:   client,
		uploader: s3manager.NewUploader(client),
		bucket:   cfg.Bucket,
		endpoint: cfg.Endpoint,
		prefix:   cfg.Prefix,
	}, nil
}

// Upload streams one local file to the store under the descriptor's
// key. Exactly one attempt; the store's own contract is trusted to
// never expose partial uploads as visible objects.
func (s *S3Storage) Upload(ctx context.Context, localPath string, desc domain.UploadDescriptor) (domain.UploadResult, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return domain.UploadResult{}, &domain.UploadError{Err: fmt.Errorf("open %s: %w", localPath, err)}
	}
	defer file.Close()

	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &desc.Key,
		Body:        file,
		ContentType: aws.String(desc.ContentType),
		Metadata:    desc.Metadata,
	})
	if err != nil {
		return domain.UploadResult{}, &domain.UploadError{Err: err}
	}

	return domain.UploadResult{
		Bucket: s.bucket,
		Key:    desc.Key,
		URL:    s.objectURL(desc.Key),
	}, nil
}

func (s *S3Storage) objectURL(key string) string {
	return fmt.Sprintf("https://%s.%s/%s", s.bucket, s.endpoint, key)
}

// List returns every object under the configured prefix in the store's
// natural return order.
func (s *S3Storage) List(ctx context.Context) ([]domain.StoredObject, error) {
	resp, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: &s.bucket,
		Prefix: &s.prefix,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list objects: %w", err)
	}

	var objects []domain.StoredObject
	for _, obj := range resp.Contents {
		objects = append(objects, domain.StoredObject{
			Key:          aws.ToString(obj.Key),
			Size:         aws.ToInt64(obj.Size),
			LastModified: aws.ToTime(obj.LastModified),
		})
	}

	return objects, nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// GetOldObjects returns objects whose last-modified time precedes the
// cutoff.
func (s *S3Storage) GetOldObjects(ctx context.Context, cutoffTime time.Time) ([]domain.StoredObject, error) {
	objects, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	var old []domain.StoredObject
	for _, obj := range objects {
		if obj.LastModified.Before(cutoffTime) {
			old = append(old, obj)
		}
	}

	return old, nil
}
