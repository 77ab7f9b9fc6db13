package httpserver

import (
	"github.com/gin-gonic/gin"

	"schedule-proposer/pkg/response"
)

const (
	HealthMessage = "Meeting times, proposed"
	HealthVersion = "1.0.0"
	ServiceName   = "schedule-proposer"
)

// componentsResp describes which optional collaborators are wired. The service answers
// proposals with any of them missing, so readiness never fails on them.
type componentsResp struct {
	Calendar     bool     `json:"calendar"`
	LLMProviders []string `json:"llm_providers"`
	Telegram     bool     `json:"telegram"`
}

type statusResp struct {
	Status     string          `json:"status"`
	Message    string          `json:"message"`
	Version    string          `json:"version"`
	Service    string          `json:"service"`
	Components *componentsResp `json:"components,omitempty"`
}

func newStatusResp(status string) statusResp {
	return statusResp{
		Status:  status,
		Message: HealthMessage,
		Version: HealthVersion,
		Service: ServiceName,
	}
}

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Produce json
// @Success 200 {object} statusResp "API is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, newStatusResp("healthy"))
}

// readyCheck reports readiness together with the optional components in use.
// @Summary Readiness Check
// @Description Check if the API is ready and which of calendar, LLM and Telegram are wired
// @Tags Health
// @Produce json
// @Success 200 {object} statusResp "API is ready"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	resp := newStatusResp("ready")
	providers := srv.llmProviders
	if providers == nil {
		providers = []string{}
	}
	resp.Components = &componentsResp{
		Calendar:     srv.calendarEnabled,
		LLMProviders: providers,
		Telegram:     srv.telegramHandler != nil,
	}
	response.OK(c, resp)
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the API is alive
// @Tags Health
// @Produce json
// @Success 200 {object} statusResp "API is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, newStatusResp("alive"))
}
