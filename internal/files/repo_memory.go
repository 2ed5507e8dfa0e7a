package files

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo, used when no
// database is configured and in tests.
type MemoryRepo struct {
	mu     sync.Mutex
	nextID int64
	data   map[string]StoredFile // userID -> current file
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]StoredFile)}
}

// Replace swaps the user's current file, returning the prior path.
func (r *MemoryRepo) Replace(ctx context.Context, file StoredFile) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var evicted []string
	if prev, ok := r.data[file.UserID]; ok && prev.Path != file.Path {
		evicted = append(evicted, prev.Path)
	}
	r.nextID++
	file.ID = r.nextID
	r.data[file.UserID] = file
	return evicted, nil
}

// Latest returns the user's current file.
func (r *MemoryRepo) Latest(ctx context.Context, userID string) (StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return StoredFile{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.data[userID]
	if !ok {
		return StoredFile{}, ErrNotFound
	}
	return f, nil
}

var _ Repo = (*MemoryRepo)(nil)
