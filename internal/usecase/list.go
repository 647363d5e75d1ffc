package usecase

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/pgspaces/pgspaces/internal/domain"
)

// List enumerates stored artifacts under the configured prefix and
// renders them newest-first.
type List struct {
	storage domain.ObjectStorage
	logger  Logger
	out     io.Writer
}

func NewList(storage domain.ObjectStorage, logger Logger, out io.Writer) *List {
	return &List{
		storage: storage,
		logger:  logger,
		out:     out,
	}
}

func (uc *List) Execute(ctx context.Context) error {
	objects, err := uc.storage.List(ctx)
	if err != nil {
		return fmt.Errorf("list backups: %w", err)
	}

	if len(objects) == 0 {
		fmt.Fprintln(uc.out, "No backups found")
		return nil
	}

	sortNewestFirst(objects)

	cyan := color.New(color.FgCyan).SprintFunc()
	for i, obj := range objects {
		fmt.Fprintf(uc.out, "%3d. %s  %8.2f MiB  %s\n",
			i+1,
			cyan(obj.Key),
			float64(obj.Size)/(1024*1024),
			obj.LastModified.Format("2006-01-02 15:04:05"),
		)
	}

	return nil
}

// sortNewestFirst orders by last-modified descending. The sort is
// stable so equal timestamps keep the store's return order; exact tie
// ordering carries no operational meaning.
func sortNewestFirst(objects []domain.StoredObject) {
	sort.SliceStable(objects, func(i, j int) bool {
		return objects[i].LastModified.After(objects[j].LastModified)
	})
}
