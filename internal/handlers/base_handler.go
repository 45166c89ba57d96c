package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/hostel-service/internal/services"
	"github.com/SAP-F-2025/hostel-service/internal/utils"
	"github.com/SAP-F-2025/hostel-service/internal/validator"
)

// ErrorResponse is the body of every 4xx/5xx JSON reply
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, message string, args ...any) {
	args = append(args, "method", c.Request.Method, "path", c.FullPath())
	utils.FromContext(c, h.logger).Debug(message, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, message string, args ...any) {
	args = append(args, "error", err, "method", c.Request.Method, "path", c.FullPath())
	utils.FromContext(c, h.logger).Error(message, args...)
}

// bindJSON decodes the request body into dest. A malformed body is reported
// as a validation failure.
func (h *BaseHandler) bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return false
	}
	return true
}

// handleServiceError maps service errors to HTTP replies. Store failures
// never leak their detail to the client.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidID):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid record id",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrValidationFailed):
		var details interface{} = err.Error()
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			details = validationErrors
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: details,
		})
	default:
		h.LogError(c, err, "Request failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
