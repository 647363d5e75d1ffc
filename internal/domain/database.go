package domain

import "context"

type Database interface {
	Dump(ctx context.Context, outputPath string) error
	Ping(ctx context.Context) (serverVersion string, err error)
	GetName() string
}
