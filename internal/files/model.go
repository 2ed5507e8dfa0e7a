package files

import (
	"path/filepath"
	"strings"
	"time"
)

// Kind classifies a stored file by what extraction it needs.
type Kind string

const (
	KindImage Kind = "image"
	KindPDF   Kind = "pdf"
)

// KindFromPath derives the file kind from the file extension.
// Everything that is not a PDF is treated as an image.
func KindFromPath(path string) Kind {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return KindPDF
	}
	return KindImage
}

// StoredFile is the single current document tracked for a user.
type StoredFile struct {
	ID        int64
	UserID    string
	Path      string
	Kind      Kind
	CreatedAt time.Time
}
