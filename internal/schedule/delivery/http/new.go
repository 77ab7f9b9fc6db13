package http

import (
	"github.com/gin-gonic/gin"

	"schedule-proposer/internal/schedule"
	"schedule-proposer/pkg/log"
)

// Handler is the public interface for the schedule HTTP delivery layer.
type Handler interface {
	Propose(c *gin.Context)
	AvailableSlots(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc schedule.UseCase
}

// New creates a new HTTP handler for the schedule domain.
func New(l log.Logger, uc schedule.UseCase) Handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
