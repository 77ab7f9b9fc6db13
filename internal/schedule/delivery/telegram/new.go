package telegram

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"schedule-proposer/internal/schedule"
	pkgLog "schedule-proposer/pkg/log"
	pkgTelegram "schedule-proposer/pkg/telegram"
)

const (
	defaultProcessTimeout = 60 * time.Second
	defaultDedupSize      = 1000
	defaultDedupTTL       = 10 * time.Minute
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
	// Wait blocks until every background reply has finished.
	Wait()
}

// Sender delivers a reply to a chat. *pkgTelegram.Bot implements it.
type Sender interface {
	Send(ctx context.Context, req pkgTelegram.SendMessageRequest) error
}

// Config tunes the webhook processing.
type Config struct {
	ProcessTimeout time.Duration // bound of one background run, default 60s
	KeywordFilter  bool          // answer only messages IsScheduleRelated accepts
	DedupSize      int
	DedupTTL       time.Duration
}

type handler struct {
	l       pkgLog.Logger
	uc      schedule.UseCase
	bot     Sender
	cfg     Config
	mu      sync.Mutex
	seen    *expirable.LRU[int64, struct{}]
	pending sync.WaitGroup
}

// New creates a new Telegram delivery handler.
func New(l pkgLog.Logger, uc schedule.UseCase, bot Sender, cfg Config) Handler {
	if cfg.ProcessTimeout <= 0 {
		cfg.ProcessTimeout = defaultProcessTimeout
	}
	if cfg.DedupSize <= 0 {
		cfg.DedupSize = defaultDedupSize
	}
	if cfg.DedupTTL <= 0 {
		cfg.DedupTTL = defaultDedupTTL
	}

	return &handler{
		l:    l,
		uc:   uc,
		bot:  bot,
		cfg:  cfg,
		seen: expirable.NewLRU[int64, struct{}](cfg.DedupSize, nil, cfg.DedupTTL),
	}
}
