package http

import (
	"github.com/gin-gonic/gin"
)

// processProposeReq binds and validates the proposal request body.
func (h *handler) processProposeReq(c *gin.Context) (proposeReq, error) {
	var req proposeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}
