package telegram

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"schedule-proposer/internal/schedule"
	pkgResponse "schedule-proposer/pkg/response"
	pkgTelegram "schedule-proposer/pkg/telegram"
)

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It responds with HTTP 200 immediately and processes the message in a background goroutine;
// the LLM and calendar round trips can outlast Telegram's webhook timeout.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err)
		return
	}

	if update.Message == nil || update.Message.Chat == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	// Telegram redelivers updates it considers unanswered.
	if h.markSeen(update.UpdateID) {
		h.l.Infof(ctx, "telegram handler: duplicate update %d skipped", update.UpdateID)
		pkgResponse.OK(c, map[string]string{"status": "duplicate"})
		return
	}

	msg := update.Message
	bgCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.cfg.ProcessTimeout)

	h.pending.Add(1)
	go func() {
		defer h.pending.Done()
		defer cancel()
		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: background processMessage failed: %v", err)
			_ = h.reply(bgCtx, msg, messageProcessingFailed)
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// processMessage answers a single Telegram message with a proposal.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	text := msg.Content()
	if text == "" {
		return nil
	}

	switch text {
	case "/start", "/help":
		return h.reply(ctx, msg, messageHelp)
	}

	if h.cfg.KeywordFilter && !h.uc.IsScheduleRelated("", text) {
		h.l.Debugf(ctx, "telegram handler: message %d is not schedule related", msg.MessageID)
		return nil
	}

	output, err := h.uc.Propose(ctx, schedule.ProposeInput{Text: text})
	if errors.Is(err, schedule.ErrEmptyInput) {
		return nil
	}
	if err != nil {
		return err
	}

	return h.reply(ctx, msg, formatReply(output.Result, output.Degraded))
}

func (h *handler) reply(ctx context.Context, msg *pkgTelegram.Message, text string) error {
	return h.bot.Send(ctx, pkgTelegram.SendMessageRequest{
		ChatID:           msg.Chat.ID,
		Text:             text,
		ReplyToMessageID: msg.MessageID,
	})
}

// markSeen records id and reports whether it was already recorded.
func (h *handler) markSeen(id int64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.seen.Contains(id) {
		return true
	}
	h.seen.Add(id, struct{}{})
	return false
}

func (h *handler) Wait() {
	h.pending.Wait()
}
