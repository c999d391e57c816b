package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Status messages returned by successful mutations.
const (
	MessageUpdated = "Updated"
	MessageDeleted = "Deleted"
)

// Error is the JSON envelope of every failed request.
type Error struct {
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}

// Created is returned by a successful insert.
type Created struct {
	ID int64 `json:"id"`
}

// Success responses
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

func CreatedID(c *gin.Context, id int64) {
	c.JSON(http.StatusCreated, Created{ID: id})
}

func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, message)
}

// Error responses
func ErrorResponse(c *gin.Context, statusCode int, kind, message string) {
	c.JSON(statusCode, Error{
		Message: message,
		Kind:    kind,
	})
}

// Common error responses
func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, "not_found", message)
}

// InternalServerError reports a fault that is not attributable to the store,
// such as a recovered panic.
func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, "internal", message)
}
