package files

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a user has no stored file.
var ErrNotFound = errors.New("file not found")

// Repo defines persistence for the per-user current file. Replace must
// behave as one logical transaction: it removes every prior row for the
// user, inserts the new one, and returns the evicted paths so the caller
// can delete the backing files.
type Repo interface {
	Replace(ctx context.Context, file StoredFile) (evicted []string, err error)
	Latest(ctx context.Context, userID string) (StoredFile, error)
}
