package files

import (
	"context"
	"errors"
	"os"
	"time"

	"docvoice-backend/internal/shared/telemetry"
)

// Service owns the per-user current file and its backing data on disk.
// No other component deletes or relocates stored files.
type Service struct {
	Repo Repo
}

// Replace records path as the user's current file and deletes the
// previous file's record and backing data. Already-missing files on disk
// are tolerated.
func (s *Service) Replace(ctx context.Context, userID, path string) (StoredFile, error) {
	if userID == "" {
		return StoredFile{}, errors.New("user id required")
	}
	file := StoredFile{
		UserID:    userID,
		Path:      path,
		Kind:      KindFromPath(path),
		CreatedAt: time.Now().UTC(),
	}
	evicted, err := s.Repo.Replace(ctx, file)
	if err != nil {
		return StoredFile{}, err
	}
	for _, old := range evicted {
		if err := os.Remove(old); err != nil && !errors.Is(err, os.ErrNotExist) {
			telemetry.Error("files.evict.failed", map[string]any{
				"user_id": userID,
				"path":    old,
				"err":     err.Error(),
			})
		}
	}
	return file, nil
}

// Latest returns the user's current file, or ErrNotFound.
func (s *Service) Latest(ctx context.Context, userID string) (StoredFile, error) {
	if userID == "" {
		return StoredFile{}, errors.New("user id required")
	}
	return s.Repo.Latest(ctx, userID)
}
