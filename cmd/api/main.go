package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"schedule-proposer/config"
	_ "schedule-proposer/docs" // Swagger docs
	"schedule-proposer/internal/httpserver"
	"schedule-proposer/internal/schedule"
	tgDelivery "schedule-proposer/internal/schedule/delivery/telegram"
	"schedule-proposer/internal/schedule/repository"
	gcalRepo "schedule-proposer/internal/schedule/repository/gcalendar"
	"schedule-proposer/internal/schedule/usecase"
	"schedule-proposer/pkg/datemath"
	"schedule-proposer/pkg/gcalendar"
	"schedule-proposer/pkg/llmprovider"
	"schedule-proposer/pkg/log"
	"schedule-proposer/pkg/metrics"
	"schedule-proposer/pkg/telegram"
)

// @title       Schedule Proposer API
// @description Proposes meeting times from Japanese messages against Google Calendar availability.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Schedule Proposer...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Timezone: %s", cfg.Schedule.Timezone)

	loc, err := datemath.LoadLocation(cfg.Schedule.Timezone)
	if err != nil {
		logger.Errorf(ctx, "Invalid schedule timezone: %v", err)
		return
	}

	// 3. Busy source: Google Calendar (optional)
	var busySource repository.BusySource
	if cfg.GoogleCalendar.CredentialsPath != "" {
		calendarClient, calErr := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath, cfg.GoogleCalendar.TokenPath)
		if calErr != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", calErr)
		} else {
			busySource = gcalRepo.New(calendarClient, cfg.GoogleCalendar.CalendarID, loc)
			logger.Infof(ctx, "Google Calendar initialized for calendar %q", cfg.GoogleCalendar.CalendarID)
		}
	}
	if busySource == nil {
		logger.Warn(ctx, "No busy source configured: every slot inside working hours is treated as free")
	}

	// 4. LLM analysis (optional)
	var llm usecase.LLMGenerator
	var llmNames []string
	if len(cfg.LLM.Providers) > 0 {
		providers, llmErr := llmprovider.InitializeProviders(ctx, &cfg.LLM, logger)
		if llmErr != nil {
			logger.Warnf(ctx, "LLM analysis disabled: %v", llmErr)
		} else {
			llm = llmprovider.NewManager(providers, llmprovider.NewManagerConfig(&cfg.LLM), logger)
			for _, p := range providers {
				llmNames = append(llmNames, p.Name())
			}
		}
	}

	// 5. Schedule use case
	scheduleMetrics := metrics.NewScheduleMetrics(prometheus.DefaultRegisterer)
	scheduleUC, err := usecase.New(logger, busySource, llm, scheduleMetrics, usecase.Config{
		Timezone: cfg.Schedule.Timezone,
		Policy: schedule.WorkingHoursPolicy{
			StartHour:              cfg.Schedule.StartHour,
			EndHour:                cfg.Schedule.EndHour,
			SlotDurationMinutes:    cfg.Schedule.DurationMinutes,
			SlotGranularityMinutes: cfg.Schedule.GranularityMinutes,
			SkipWeekends:           cfg.Schedule.SkipWeekends,
			HorizonDays:            cfg.Schedule.HorizonDays,
		},
		ProximityChars:    cfg.Schedule.ProximityChars,
		MinOverlapMinutes: cfg.Schedule.MinOverlapMinutes,
		CalendarTimeout:   cfg.Schedule.CalendarTimeout,
		Keywords:          cfg.Schedule.Keywords,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize schedule use case: %v", err)
		return
	}

	// 6. Telegram channel (optional)
	var telegramHandler tgDelivery.Handler
	if cfg.Telegram.BotToken != "" && cfg.Webhook.Enabled {
		telegramBot := telegram.NewBot(cfg.Telegram.BotToken)
		telegramHandler = tgDelivery.New(logger, scheduleUC, telegramBot, tgDelivery.Config{
			KeywordFilter: cfg.Telegram.KeywordFilter,
		})

		// Register webhook: auto-detect ngrok or fallback to manual config
		webhookURL := cfg.Telegram.WebhookURL
		if webhookURL == "" {
			ngrokURL, ngrokErr := detectNgrokURL(ctx, defaultNgrokAPI)
			if ngrokErr != nil {
				logger.Warnf(ctx, "Could not detect ngrok URL: %v", ngrokErr)
			} else {
				webhookURL = ngrokURL + "/webhook/telegram"
				logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
			}
		}

		if webhookURL != "" {
			if whErr := telegramBot.SetWebhook(ctx, webhookURL, cfg.Webhook.Secret); whErr != nil {
				logger.Warnf(ctx, "Failed to set Telegram webhook: %v", whErr)
			} else {
				logger.Infof(ctx, "Telegram webhook registered at %s", webhookURL)
			}
		}
	} else {
		logger.Warn(ctx, "Telegram channel skipped: TELEGRAM_BOT_TOKEN is missing or webhooks are disabled")
	}

	// 7. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		ScheduleUseCase: scheduleUC,
		TelegramHandler: telegramHandler,
		TelegramSecret:  cfg.Webhook.Secret,
		RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
		TrustedProxies:  cfg.HTTPServer.TrustedProxies,
		CalendarEnabled: busySource != nil,
		LLMProviders:    llmNames,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 8. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
