// Package uploads receives document uploads from the transport, enforces
// size ceilings before anything touches disk, and hands the stored path to
// the file store.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"docvoice-backend/internal/dialog"
	"docvoice-backend/internal/files"
	"docvoice-backend/internal/shared/server/middleware"
	"docvoice-backend/internal/shared/server/respond"
	"docvoice-backend/internal/shared/telemetry"
	"docvoice-backend/internal/shared/util"
)

const (
	// maxPhotoBytes caps image uploads.
	maxPhotoBytes = 10 << 20
	// maxDocumentBytes caps document uploads.
	maxDocumentBytes = 50 << 20
)

var imageExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".bmp":  {},
	".tiff": {},
}

// Handler wires upload routes to the file store and dialog controller.
type Handler struct {
	Files    *files.Service
	Dialog   *dialog.Controller
	FilesDir string
}

// NewHandler constructs a Handler.
func NewHandler(svc *files.Service, ctrl *dialog.Controller, filesDir string) *Handler {
	return &Handler{Files: svc, Dialog: ctrl, FilesDir: filesDir}
}

// RegisterRoutes attaches upload routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents", h.upload)
	rg.GET("/documents/current", h.current)
}

type uploadResponse struct {
	FileName string   `json:"fileName"`
	Kind     string   `json:"kind"`
	Notice   string   `json:"notice"`
	Menu     string   `json:"menu"`
	Chunks   []string `json:"chunks,omitempty"`
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxDocumentBytes+1<<20)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Отправьте изображение или PDF-файл.", nil)
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if _, err := util.SanitizeFileName(fileHeader.Filename); err != nil || ext == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Отправьте изображение или PDF-файл.", nil)
		return
	}

	isImage, limit := classify(ext)
	// Reject on declared size before any disk write.
	if fileHeader.Size > limit {
		msg := "Файл слишком большой."
		if isImage {
			msg = "Фото слишком большое."
		}
		respond.Error(c, http.StatusRequestEntityTooLarge, "size_exceeded", msg, nil)
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer src.Close()

	if err := os.MkdirAll(h.FilesDir, 0o755); err != nil {
		telemetry.Error("uploads.mkdir.failed", map[string]any{"dir": h.FilesDir, "err": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Не удалось сохранить файл.", nil)
		return
	}

	path := filepath.Join(h.FilesDir, storedName(userID, isImage, ext))
	if err := writeFile(path, src); err != nil {
		telemetry.Error("uploads.write.failed", map[string]any{"path": path, "err": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Не удалось сохранить файл.", nil)
		return
	}

	stored, err := h.Files.Replace(c.Request.Context(), userID, path)
	if err != nil {
		telemetry.Error("uploads.replace.failed", map[string]any{
			"user_id": userID,
			"path":    path,
			"err":     err.Error(),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Не удалось сохранить файл.", nil)
		return
	}

	reply := h.Dialog.NoteUpload(userID)
	respond.JSON(c, http.StatusCreated, uploadResponse{
		FileName: filepath.Base(stored.Path),
		Kind:     string(stored.Kind),
		Notice:   reply.Notice,
		Menu:     string(reply.Menu),
	})
}

func (h *Handler) current(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	doc, err := h.Files.Latest(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, files.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "no_document", "Файл не найден.", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch document", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"fileName":   filepath.Base(doc.Path),
		"kind":       string(doc.Kind),
		"uploadedAt": doc.CreatedAt,
	})
}

// classify returns whether the extension is an image and its size ceiling.
func classify(ext string) (bool, int64) {
	if _, ok := imageExts[ext]; ok {
		return true, maxPhotoBytes
	}
	return false, maxDocumentBytes
}

// storedName keys the on-disk file by user and kind so a new upload of
// the same kind overwrites in place.
func storedName(userID string, isImage bool, ext string) string {
	stem := "file"
	if isImage {
		stem = "photo"
	}
	return fmt.Sprintf("%s_%s%s", util.SanitizeUserKey(userID), stem, ext)
}

func writeFile(path string, src io.Reader) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, src); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	return nil
}
