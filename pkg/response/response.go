package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/school-dashboard-api/pkg/errors"
)

// Envelope represents the common response contract.
type Envelope struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Message   string      `json:"message"`
	Code      string      `json:"code,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// exposeKey marks a context whose error responses may carry raw detail.
const exposeKey = "response.exposeDetail"

// ExposeDetail returns middleware enabling the raw error text in responses.
// It is mounted only in development.
func ExposeDetail() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(exposeKey, true)
		c.Next()
	}
}

func now() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// JSON sends a success envelope.
func JSON(c *gin.Context, status int, data interface{}, message string) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, Envelope{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: now(),
	})
}

// OK responds with HTTP 200.
func OK(c *gin.Context, data interface{}, message string) {
	JSON(c, http.StatusOK, data, message)
}

// Error sends an error envelope converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	envelope := Envelope{
		Success:   false,
		Message:   appErr.Message,
		Code:      appErr.Code,
		Timestamp: now(),
	}
	if c.GetBool(exposeKey) {
		envelope.Error = appErr.Detail()
	}
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, envelope)
}

// ErrorWithData sends an error envelope that still carries a data payload,
// used where the failure body is itself informative.
func ErrorWithData(c *gin.Context, err error, data interface{}) {
	appErr := appErrors.FromError(err)
	envelope := Envelope{
		Success:   false,
		Data:      data,
		Message:   appErr.Message,
		Code:      appErr.Code,
		Timestamp: now(),
	}
	if c.GetBool(exposeKey) {
		envelope.Error = appErr.Detail()
	}
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, envelope)
}

// RouteNotFound answers unknown paths with the list of served endpoints.
func RouteNotFound(endpoints []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, struct {
			Envelope
			AvailableEndpoints []string `json:"available_endpoints"`
		}{
			Envelope: Envelope{
				Success:   false,
				Message:   "Endpoint not found",
				Code:      appErrors.ErrRouteNotFound.Code,
				Timestamp: now(),
			},
			AvailableEndpoints: endpoints,
		})
	}
}
