package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"schedule-proposer/pkg/response"
)

// Propose godoc
// @Summary     Propose a meeting time
// @Description Extracts the date/time suggestions from a message and reconciles them with the calendar and working hours.
// @Tags        Schedule
// @Accept      json
// @Produce     json
// @Param       body body     proposeReq  true "Inbound message"
// @Success     200  {object} proposeResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     429  {object} response.Resp "Too Many Requests"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/schedule/proposals [POST]
func (h *handler) Propose(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processProposeReq(c)
	if err != nil {
		h.l.Warnf(ctx, "schedule.http.Propose: invalid request: %v", err)
		response.Error(c, err)
		return
	}

	output, err := h.uc.Propose(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Propose: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, h.newProposeResp(output, time.Now()))
}

// AvailableSlots godoc
// @Summary     List available slots
// @Description Lists every free slot inside the scheduling horizon, formatted without year.
// @Tags        Schedule
// @Produce     json
// @Success     200 {object} slotsResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/schedule/slots [GET]
func (h *handler) AvailableSlots(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.AvailableSlots(ctx)
	if err != nil {
		h.l.Errorf(ctx, "uc.AvailableSlots: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, h.newSlotsResp(output))
}
