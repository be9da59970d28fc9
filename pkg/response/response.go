// Package response keeps the JSON shapes returned by every handler in one
// place: a flat detail/errors body for failures, raw payloads for success,
// and the {count,next,previous,results} envelope for paginated lists.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/foodgram-backend/internal/apperr"
)

// Paginated is the list envelope. Next/Previous are fully-formed page URLs
// or null at the edges.
type Paginated struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func BadRequest(c *gin.Context, detail string) {
	c.JSON(http.StatusBadRequest, gin.H{"detail": detail})
}

func Unauthorized(c *gin.Context, detail string) {
	c.JSON(http.StatusUnauthorized, gin.H{"detail": detail})
}

func Forbidden(c *gin.Context, detail string) {
	c.JSON(http.StatusForbidden, gin.H{"detail": detail})
}

func NotFound(c *gin.Context, detail string) {
	c.JSON(http.StatusNotFound, gin.H{"detail": detail})
}

func InternalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	_ = c.Error(err)
}

// Error maps a service error to its HTTP status by kind. Validation kinds
// reuse the field name so clients can attach messages to inputs.
func Error(c *gin.Context, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		InternalError(c, err)
		return
	}
	body := gin.H{"detail": e.Msg}
	if e.Field != "" {
		body = gin.H{e.Field: []string{e.Msg}}
	}
	switch e.Kind {
	case apperr.KindNotFound:
		c.JSON(http.StatusNotFound, body)
	case apperr.KindForbidden:
		c.JSON(http.StatusForbidden, body)
	case apperr.KindUnauthorized:
		c.JSON(http.StatusUnauthorized, body)
	case apperr.KindMissingField,
		apperr.KindDuplicateReference,
		apperr.KindUnknownReference,
		apperr.KindInvalidField,
		apperr.KindAlreadyExists,
		apperr.KindSelfReferenceForbidden:
		c.JSON(http.StatusBadRequest, body)
	default:
		InternalError(c, err)
	}
}
