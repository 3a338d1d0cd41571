package handler

import (
	"errors"
	"net/http"

	"fiyo/backend/internal/relation"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope used by every endpoint.
type APIResponse struct {
	Status  int         `json:"status"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

// ErrorResponse documents the envelope shape for error cases in swagger.
type ErrorResponse struct {
	Status  int         `json:"status" example:"400"`
	Data    interface{} `json:"data"`
	Message string      `json:"message" example:"An error message"`
}

func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, APIResponse{Status: status, Data: data, Message: message})
}

// respondRelationError maps engine errors onto HTTP status codes.
func respondRelationError(c *gin.Context, err error, alreadyExistsMsg, notFoundMsg string) {
	switch {
	case errors.Is(err, relation.ErrSelfReference):
		respond(c, http.StatusBadRequest, nil, "You cannot perform this action on yourself.")
	case errors.Is(err, relation.ErrAlreadyExists):
		respond(c, http.StatusBadRequest, nil, alreadyExistsMsg)
	case errors.Is(err, relation.ErrNotFound):
		respond(c, http.StatusNotFound, nil, notFoundMsg)
	default:
		respond(c, http.StatusInternalServerError, nil, "Internal server error.")
	}
}
