package dialog

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"docvoice-backend/internal/llm"
	"docvoice-backend/internal/recognize"
	"docvoice-backend/internal/shared/server/middleware"
	"docvoice-backend/internal/shared/server/respond"
	"docvoice-backend/internal/shared/telemetry"
	"docvoice-backend/internal/shared/util"
	"docvoice-backend/internal/speech"
)

// Handler wires HTTP dialog routes to the controller.
type Handler struct {
	Ctrl *Controller
	// AudioDir holds transient synthesis artifacts; they are removed
	// after delivery on every exit path.
	AudioDir string
}

// NewHandler constructs a Handler.
func NewHandler(ctrl *Controller, audioDir string) *Handler {
	return &Handler{Ctrl: ctrl, AudioDir: audioDir}
}

// RegisterRoutes attaches dialog routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/dialog", h.selectAction)
	rg.GET("/dialog/audio", h.audio)
}

type selectRequest struct {
	Action string `json:"action"`
}

type selectResponse struct {
	Notice string   `json:"notice,omitempty"`
	Chunks []string `json:"chunks,omitempty"`
	Menu   string   `json:"menu,omitempty"`
}

func (h *Handler) selectAction(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	intent, ok := ParseIntent(req.Action)
	if !ok {
		// Unknown labels are ignored: no state change, no reply.
		c.Status(http.StatusNoContent)
		return
	}

	if intent == IntentToAudio {
		h.audio(c)
		return
	}

	reply, err := h.Ctrl.Select(c.Request.Context(), userID, intent)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoDocument):
			respond.Error(c, http.StatusNotFound, "no_document", "Файл не найден.", nil)
		case errors.Is(err, ErrNoText):
			respond.Error(c, http.StatusConflict, "no_text", "Нет текста для обработки.", nil)
		case errors.Is(err, recognize.ErrRecognition):
			respond.Error(c, http.StatusBadGateway, "recognition_error", "Ошибка при распознавании.", nil)
		case errors.Is(err, llm.ErrLLM):
			respond.Error(c, http.StatusBadGateway, "llm_error", "Ошибка GPT.", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Не удалось обработать запрос.", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, selectResponse{
		Notice: reply.Notice,
		Chunks: reply.Chunks,
		Menu:   string(reply.Menu),
	})
}

func (h *Handler) audio(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	audio, err := h.Ctrl.Synthesize(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoText):
			respond.Error(c, http.StatusConflict, "no_text", "Нет текста для озвучивания.", nil)
		case errors.Is(err, speech.ErrSynthesis):
			respond.Error(c, http.StatusBadGateway, "synthesis_error", "Ошибка при преобразовании в аудио.", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Не удалось обработать запрос.", nil)
		}
		return
	}

	path := filepath.Join(h.AudioDir, fmt.Sprintf("audio_%s.mp3", util.SanitizeUserKey(userID)))
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		telemetry.Error("dialog.audio.write_failed", map[string]any{"user_id": userID, "err": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Не удалось обработать запрос.", nil)
		return
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			telemetry.Error("dialog.audio.cleanup_failed", map[string]any{"path": path, "err": err.Error()})
		}
	}()

	c.FileAttachment(path, "audio.mp3")
}
