package api

import (
	"errors"
	"net/http"

	"github.com/dreamshops/catalog/models"
	"github.com/gin-gonic/gin"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, Response{
		Status:  "fail",
		Message: message,
	})
}

// StatusFor maps a service error to the HTTP status returned to clients.
func StatusFor(err error) int {
	switch {
	case models.IsNotFound(err):
		return http.StatusNotFound
	case models.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrCategoryExists), errors.Is(err, models.ErrCategoryInUse):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Fail writes err with its mapped status. Internal errors are not echoed to the client.
func Fail(c *gin.Context, prefix string, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		ErrorResponse(c, status, prefix)
		return
	}
	ErrorResponse(c, status, prefix+": "+err.Error())
}
