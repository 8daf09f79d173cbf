// Package handler provides HTTP handler functions for the paste API.
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/roguepikachu/pastebin/internal/domain"
	"github.com/roguepikachu/pastebin/internal/service"
	"github.com/roguepikachu/pastebin/pkg"
	"github.com/roguepikachu/pastebin/pkg/logger"
)

const (
	// TimeFormat is the serialization format for createdAt, always in UTC.
	TimeFormat = "2006-01-02T15:04:05.000Z07:00"

	msgCreated        = "Paste created"
	msgContentMissing = "Content is required"
	msgNotFound       = "Paste not found or expired."
	msgInternal       = "internal server error"
)

// PasteService defines the handler's dependency contract.
type PasteService interface {
	CreatePaste(ctx context.Context, content string) (domain.Paste, error)
	GetPaste(ctx context.Context, id string) (domain.Paste, error)
}

// Handler handles HTTP requests for pastes.
type Handler struct {
	svc PasteService
}

// NewHandler constructs a Handler with the given PasteService.
func NewHandler(svc PasteService) *Handler {
	return &Handler{svc: svc}
}

func tooLarge(max int) pkg.ErrorBody {
	return pkg.ErrorBody{Error: fmt.Sprintf("Content too large. Max allowed is %s characters.", groupDigits(max))}
}

// groupDigits formats n with comma thousands separators.
func groupDigits(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// Create handles the creation of a new paste.
func (h *Handler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	var req domain.CreatePasteRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			logger.Warn(ctx, "request body exceeds %d bytes", mbe.Limit)
			c.JSON(http.StatusRequestEntityTooLarge, pkg.ErrorBody{Error: "Request body too large."})
			return
		}
		logger.Warn(ctx, "failed to bind JSON: %s", err.Error())
		c.JSON(http.StatusBadRequest, pkg.ErrorBody{Error: msgContentMissing})
		return
	}

	paste, err := h.svc.CreatePaste(ctx, req.Content)
	if err != nil {
		if ve, ok := service.IsValidation(err); ok {
			if ve.Reason == service.ReasonTooLarge {
				c.JSON(http.StatusRequestEntityTooLarge, tooLarge(ve.Max))
				return
			}
			c.JSON(http.StatusBadRequest, pkg.ErrorBody{Error: msgContentMissing})
			return
		}
		logger.Error(ctx, "failed to create paste: %s", err.Error())
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, pkg.ErrorBody{Error: msgInternal})
		return
	}
	logger.WithField(ctx, "pasteId", paste.ID).Info("paste created")
	c.JSON(http.StatusCreated, domain.CreatePasteResponseDTO{Message: msgCreated, PasteID: paste.ID})
}

// Get handles fetching a live paste by its identifier.
func (h *Handler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("pasteId")
	paste, err := h.svc.GetPaste(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrPasteNotFound) {
			c.JSON(http.StatusNotFound, pkg.MessageBody{Message: msgNotFound})
			return
		}
		logger.Error(ctx, "failed to get paste: %s", err.Error())
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, pkg.ErrorBody{Error: msgInternal})
		return
	}
	logger.WithField(ctx, "pasteId", id).Debug("paste retrieved")
	c.JSON(http.StatusOK, domain.PasteResponseDTO{
		Content:   paste.Content,
		CreatedAt: paste.CreatedAt.UTC().Format(TimeFormat),
	})
}
