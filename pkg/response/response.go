package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Alkan41/yakit-takip-api/pkg/errors"
)

// Envelope is the uniform REST response body.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody carries a stable machine code plus a human message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OK writes a 200 envelope with the given payload.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes a 201 envelope with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// Error maps any error onto the envelope, deriving status and code from the
// typed application error when present.
func Error(c *gin.Context, err error) {
	appErr := apperrors.FromError(err)
	c.JSON(appErr.Status, Envelope{
		Success: false,
		Error:   &ErrorBody{Code: appErr.Code, Message: appErr.Message},
	})
}
