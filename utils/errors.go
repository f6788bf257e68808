package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"legalease-platform/internal/common"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	ErrorCode string      `json:"error_code"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}

// RespondWithError sends a standardized error response
func RespondWithError(c *gin.Context, statusCode int, errorCode, message string, details interface{}) {
	c.JSON(statusCode, ErrorResponse{
		ErrorCode: errorCode,
		Message:   message,
		Details:   details,
	})
}

// RespondWithBadRequest sends a 400 Bad Request error
func RespondWithBadRequest(c *gin.Context, message string, details interface{}) {
	RespondWithError(c, http.StatusBadRequest, "bad_request", message, details)
}

// RespondWithUnauthorized sends a 401 Unauthorized error
func RespondWithUnauthorized(c *gin.Context, message string) {
	RespondWithError(c, http.StatusUnauthorized, "unauthorized", message, nil)
}

// RespondWithNotFound sends a 404 Not Found error
func RespondWithNotFound(c *gin.Context, message string) {
	RespondWithError(c, http.StatusNotFound, "not_found", message, nil)
}

// RespondWithInternalError sends a 500 Internal Server Error
func RespondWithInternalError(c *gin.Context, message string, details interface{}) {
	RespondWithError(c, http.StatusInternalServerError, "internal_error", message, details)
}

// RespondWithPipelineError maps a pipeline failure onto the right status.
// A classifier rejection or empty context is the caller's document being out
// of scope (4xx); everything else is a processing failure (5xx). The two
// must never be conflated.
func RespondWithPipelineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrRejected):
		RespondWithError(c, http.StatusBadRequest, "not_legal_document",
			"Validation failed. The uploaded file does not appear to be a legal document.", nil)
	case errors.Is(err, common.ErrEmptyContext):
		RespondWithError(c, http.StatusBadRequest, "empty_context",
			"Document context is empty. Cannot explain clause.", nil)
	case errors.Is(err, common.ErrNotFound):
		RespondWithNotFound(c, "Document not found.")
	case errors.Is(err, common.ErrUnsupportedFormat), errors.Is(err, common.ErrExtraction), errors.Is(err, common.ErrSubprocess):
		RespondWithError(c, http.StatusInternalServerError, "extraction_failed",
			"Failed to extract text from the document.", nil)
	case errors.Is(err, common.ErrModel):
		RespondWithError(c, http.StatusInternalServerError, "model_error",
			"Failed to generate model output.", nil)
	case errors.Is(err, common.ErrPersistence):
		RespondWithError(c, http.StatusInternalServerError, "persistence_error",
			"Failed to store the document.", nil)
	default:
		RespondWithInternalError(c, "Failed to process document.", nil)
	}
}
