package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"vitalwatch/internal/config"
	"vitalwatch/internal/utils"
)

// telegramLimiter is the global rate limiter for Telegram messages
var telegramLimiter *rate.Limiter

func initTelegramLimiter(ratePerSecond int) {
	telegramLimiter = rate.NewLimiter(rate.Limit(float64(ratePerSecond)), ratePerSecond)
}

// SendTelegram delivers a Task via the go-telegram/bot library.
func SendTelegram(ctx context.Context, task Task, cfg config.Config, logger *logrus.Logger) error {
	if telegramLimiter == nil {
		initTelegramLimiter(cfg.Telegram.RatePerSecond)
	}
	if err := telegramLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("telegram rate limit exceeded: %w", err)
	}

	if cfg.Telegram.BotToken == "" {
		return fmt.Errorf("missing telegram bot token")
	}
	if cfg.Telegram.ChatID == 0 {
		return fmt.Errorf("missing telegram chat_id")
	}

	// Compose message
	var sb strings.Builder
	fmt.Fprintf(&sb, "*%s*\n%s\n", task.Subject, task.Body)
	if task.PatientName != "" {
		fmt.Fprintf(&sb, "\n*Patient:* %s (%s)\n", task.PatientName, task.PatientID)
	}
	for _, e := range task.Entries {
		fmt.Fprintf(&sb, "*%s:* %.2f (normal %.2f-%.2f)\n", e.Vital, e.Value, e.ThresholdMin, e.ThresholdMax)
	}

	// Retry sending message
	return utils.Retry(logger, 3, time.Second, func() error {
		b, err := bot.New(cfg.Telegram.BotToken)
		if err != nil {
			return fmt.Errorf("failed to initialize Telegram bot: %w", err)
		}
		params := &bot.SendMessageParams{
			ChatID:    cfg.Telegram.ChatID,
			Text:      sb.String(),
			ParseMode: "Markdown",
		}
		if _, err := b.SendMessage(ctx, params); err != nil {
			return fmt.Errorf("failed to send Telegram message to chat_id %d: %w", cfg.Telegram.ChatID, err)
		}
		return nil
	})
}
