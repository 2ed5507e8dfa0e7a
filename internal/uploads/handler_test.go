package uploads

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"docvoice-backend/internal/dialog"
	"docvoice-backend/internal/files"
	"docvoice-backend/internal/shared/server/middleware"
)

func newTestRouter(t *testing.T, dir string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := &files.Service{Repo: files.NewMemoryRepo()}
	ctrl := dialog.NewController(svc, nil, nil, nil, dialog.Timeouts{})
	h := NewHandler(svc, ctrl, dir)

	r := gin.New()
	r.Use(middleware.UserID())
	h.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func multipartBody(t *testing.T, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	fw, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return buf, mw.FormDataContentType()
}

func doUpload(t *testing.T, r *gin.Engine, userID, fileName string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, fileName, content)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadStoresFileAndShowsMenu(t *testing.T) {
	dir := t.TempDir()
	r := newTestRouter(t, dir)

	w := doUpload(t, r, "u1", "scan.png", []byte("png-bytes"))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		FileName string `json:"fileName"`
		Kind     string `json:"kind"`
		Notice   string `json:"notice"`
		Menu     string `json:"menu"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.FileName != "u1_photo.png" {
		t.Fatalf("unexpected file name %q", resp.FileName)
	}
	if resp.Kind != string(files.KindImage) {
		t.Fatalf("unexpected kind %q", resp.Kind)
	}
	if resp.Menu != string(dialog.MenuMain) {
		t.Fatalf("unexpected menu %q", resp.Menu)
	}
	if resp.Notice == "" {
		t.Fatalf("expected a notice")
	}

	data, err := os.ReadFile(filepath.Join(dir, "u1_photo.png"))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("stored content mismatch: %q", data)
	}
}

func TestUploadReplacesPreviousFile(t *testing.T) {
	dir := t.TempDir()
	r := newTestRouter(t, dir)

	if w := doUpload(t, r, "u1", "scan.png", []byte("first")); w.Code != http.StatusCreated {
		t.Fatalf("first upload: expected 201, got %d", w.Code)
	}
	if w := doUpload(t, r, "u1", "doc.pdf", []byte("second")); w.Code != http.StatusCreated {
		t.Fatalf("second upload: expected 201, got %d", w.Code)
	}

	if _, err := os.Stat(filepath.Join(dir, "u1_photo.png")); !os.IsNotExist(err) {
		t.Fatalf("expected previous file to be evicted, stat err = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/current", nil)
	req.Header.Set("X-User-Id", "u1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		FileName string `json:"fileName"`
		Kind     string `json:"kind"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.FileName != "u1_file.pdf" {
		t.Fatalf("unexpected current file %q", resp.FileName)
	}
	if resp.Kind != string(files.KindPDF) {
		t.Fatalf("unexpected kind %q", resp.Kind)
	}
}

func TestUploadRejectsOversizedPhoto(t *testing.T) {
	dir := t.TempDir()
	r := newTestRouter(t, dir)

	w := doUpload(t, r, "u1", "big.jpg", bytes.Repeat([]byte{0xff}, maxPhotoBytes+1))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", w.Code)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected nothing written to disk, found %d entries", len(entries))
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/current", nil)
	req.Header.Set("X-User-Id", "u1")
	cw := httptest.NewRecorder()
	r.ServeHTTP(cw, req)
	if cw.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after rejected upload, got %d", cw.Code)
	}
}

func TestUploadRequiresUserHeader(t *testing.T) {
	r := newTestRouter(t, t.TempDir())

	w := doUpload(t, r, "", "scan.png", []byte("png-bytes"))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestUploadRejectsMissingExtension(t *testing.T) {
	r := newTestRouter(t, t.TempDir())

	w := doUpload(t, r, "u1", "noext", []byte("data"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCurrentWithoutUpload(t *testing.T) {
	r := newTestRouter(t, t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/current", nil)
	req.Header.Set("X-User-Id", "u9")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
