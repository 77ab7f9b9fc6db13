package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"schedule-proposer/internal/schedule"
	"schedule-proposer/pkg/response"
)

// respondError translates use-case errors into HTTP responses. Unknown errors are 500s
// and their cause is only logged.
func (h *handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, schedule.ErrEmptyInput):
		response.Error(c, err)
	default:
		response.InternalError(c, err)
	}
}
