package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mirstone/ordermart/internal/core/domain"
	"go.uber.org/zap"
)

// Domain errors are wrapped with a reason, so the lookup walks the
// error chain instead of indexing a map by the concrete value.
var errorStatuses = []struct {
	err    error
	status int
}{
	{domain.ErrValidation, http.StatusUnprocessableEntity},
	{domain.ErrInvariantViolation, http.StatusUnprocessableEntity},
	{domain.ErrInvalidTransition, http.StatusConflict},
	{domain.ErrConcurrencyConflict, http.StatusConflict},
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrBadRequest, http.StatusBadRequest},
	{domain.ErrInternal, http.StatusInternalServerError},
}

type errorResponse struct {
	Error string `json:"error"`
}

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// handleValidationError sends an error response for some specific request validation error
func (h *Handler) handleValidationError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

// handleBindingError reports a malformed request body with the decoding
// reason attached.
func (h *Handler) handleBindingError(ctx *gin.Context, err error) {
	h.handleValidationError(ctx, fmt.Errorf("%w: %v", domain.ErrBadRequest, err))
}

func (h *Handler) handleError(ctx *gin.Context, err error) {
	for _, mapping := range errorStatuses {
		if errors.Is(err, mapping.err) {
			ctx.JSON(mapping.status, errorResponse{Error: err.Error()})
			return
		}
	}
	h.logger.Error("error processing request", zap.Error(err))
	ctx.JSON(http.StatusInternalServerError, errorResponse{Error: domain.ErrInternal.Error()})
}

// handleSuccess sends a success response with the specified status code and optional data
func (h *Handler) handleSuccessWithStatus(ctx *gin.Context, data any, status int) {
	if data != nil {
		ctx.JSON(status, data)
	} else {
		ctx.Status(status)
	}
}

func (h *Handler) handleSuccess(ctx *gin.Context, data any) {
	h.handleSuccessWithStatus(ctx, data, http.StatusOK)
}
