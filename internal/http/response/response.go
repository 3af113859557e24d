package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/knowligo/knowligo-backend/internal/platform/apierr"
)

// Envelope is the uniform response body. Count is present only on list
// responses, Message only when there is something worth saying.
type Envelope struct {
	Success bool        `json:"success"`
	Count   *int        `json:"count,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

func List(c *gin.Context, count int, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Count: &count, Data: data})
}

func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message})
}

// Error maps an error to the envelope, honoring apierr statuses and hiding
// internals behind a generic message.
func Error(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := "internal server error"
	if e, ok := apierr.As(err); ok {
		status = e.Status
		if status < http.StatusInternalServerError {
			msg = e.Error()
		}
	}
	c.JSON(status, Envelope{Success: false, Message: msg})
}
