package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	"schedule-proposer/internal/middleware"
	scheduleHTTP "schedule-proposer/internal/schedule/delivery/http"
	pkgTelegram "schedule-proposer/pkg/telegram"
)

const telegramSecretHeader = pkgTelegram.SecretTokenHeader

// setupScheduleDomain registers /api/v1/schedule/proposals and /api/v1/schedule/slots.
func (srv HTTPServer) setupScheduleDomain(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware) error {
	h := scheduleHTTP.New(srv.l, srv.scheduleUC)
	scheduleHTTP.RegisterRoutes(api.Group("/schedule"), h, mw)

	srv.l.Infof(ctx, "Schedule domain registered")
	return nil
}
