package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petit-bistro/service-reservation/internal/domain"
)

// errorBody is the JSON shape of every failure response: the error kind for
// programmatic handling plus a human-readable reason.
type errorBody struct {
	Kind    domain.ErrorKind `json:"kind"`
	Message string           `json:"message"`
}

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"data": data})
}

// BadRequest writes a 400 response for malformed input.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": errorBody{
		Kind:    domain.KindInvalid,
		Message: msg,
	}})
}

// Unauthorized writes a 401 response.
func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": errorBody{
		Kind:    domain.KindUnauthorized,
		Message: msg,
	}})
}

// Error maps a domain error to its HTTP status and writes the failure body.
func Error(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	c.JSON(statusFor(kind), gin.H{"error": errorBody{
		Kind:    kind,
		Message: err.Error(),
	}})
}

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindInvalid:
		return http.StatusBadRequest
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindDeadlineExceeded:
		return http.StatusUnprocessableEntity
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
