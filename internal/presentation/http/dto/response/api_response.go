package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sangkips/label-bridge/pkg/apperror"
)

// PrintedResponse is the body of a successful print.
type PrintedResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse is the body of every failed request. ErrorCode is null
// unless the OS reported a code.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	ErrorCode *int   `json:"errorCode"`
}

// HealthResponse is the body of the health check.
type HealthResponse struct {
	Status string `json:"status"`
}

// Printed sends a 200 {"success": true} response
func Printed(c *gin.Context) {
	c.JSON(http.StatusOK, PrintedResponse{Success: true})
}

// Healthy sends a 200 {"status": "ok"} response
func Healthy(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Error sends an error response with the AppError's status code
func Error(c *gin.Context, err error) {
	appErr := apperror.GetAppError(err)
	c.JSON(appErr.Code, ErrorResponse{
		Success:   false,
		Error:     appErr.Message,
		ErrorCode: appErr.ErrorCode,
	})
}

// AbortWithError sends an error response and stops the handler chain
func AbortWithError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

// BadRequest sends a 400 Bad Request response
func BadRequest(c *gin.Context, message string) {
	Error(c, apperror.NewBadRequestError(message))
}
