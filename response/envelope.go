// Package response implements the uniform success/error envelope every
// endpoint replies with.
package response

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/karimelhadi/atelierbackend/store"
)

type SuccessEnvelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       any             `json:"data"`
	Timestamp  string          `json:"timestamp"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
}

type ErrorEnvelope struct {
	Success   bool               `json:"success"`
	Message   string             `json:"message"`
	Timestamp string             `json:"timestamp"`
	Errors    []store.FieldError `json:"errors,omitempty"`
	ErrorCode string             `json:"errorCode,omitempty"`
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func OK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, SuccessEnvelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: timestamp(),
	})
}

func Paged(c *gin.Context, message string, data any, page, limit int, total int64) {
	p := NewPaginationInfo(page, limit, total)
	c.JSON(http.StatusOK, SuccessEnvelope{
		Success:    true,
		Message:    message,
		Data:       data,
		Timestamp:  timestamp(),
		Pagination: &p,
	})
}

func Fail(c *gin.Context, status int, message, code string) {
	c.JSON(status, ErrorEnvelope{
		Success:   false,
		Message:   message,
		Timestamp: timestamp(),
		ErrorCode: code,
	})
}

// FromError maps a store error onto the error envelope. Unknown errors
// are logged and surfaced as a generic internal failure.
func FromError(c *gin.Context, err error) {
	var ve *store.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, ErrorEnvelope{
			Success:   false,
			Message:   "Validation failed",
			Timestamp: timestamp(),
			Errors:    ve.Fields,
			ErrorCode: "VALIDATION_ERROR",
		})
		return
	}

	var nfe *store.NotFoundError
	if errors.As(err, &nfe) {
		Fail(c, http.StatusNotFound, nfe.Error(), "NOT_FOUND")
		return
	}

	var fe *store.ForbiddenError
	if errors.As(err, &fe) {
		Fail(c, http.StatusForbidden, fe.Error(), "FORBIDDEN")
		return
	}

	var de *store.DuplicateError
	if errors.As(err, &de) {
		Fail(c, http.StatusConflict, de.Error(), "DUPLICATE")
		return
	}

	log.Printf("internal error: %v", err)
	Fail(c, http.StatusInternalServerError, "Something went wrong", "INTERNAL_ERROR")
}
