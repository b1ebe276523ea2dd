package chart_display

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"time"

	"frametimes/internal/features/frame_charts"
	storage "frametimes/internal/infra/fs"
	logging "frametimes/internal/infra/log"
	"frametimes/internal/infra/retry"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// photoSender is the part of tgbotapi.BotAPI the presenter needs.
type photoSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramPresenter sends the chart as a photo to one chat.
type TelegramPresenter struct {
	sender         photoSender
	chatID         int64
	rateLimiter    *rate.Limiter             // Telegram allows about one message per second per chat
	circuitBreaker *gobreaker.CircuitBreaker // stops hammering the API after repeated failures
	retry          retry.Options
}

func NewTelegramPresenter(token string, chatID int64, maxRetries int) (*TelegramPresenter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	logging.LogInfo("Telegram bot authorized", zap.String("username", bot.Self.UserName))

	return newTelegramPresenter(bot, chatID, retry.Options{
		MaxRetries: maxRetries,
		BaseDelay:  500 * time.Millisecond,
		MaxDelay:   30 * time.Second,
	}), nil
}

func newTelegramPresenter(sender photoSender, chatID int64, opts retry.Options) *TelegramPresenter {
	return &TelegramPresenter{
		sender:      sender,
		chatID:      chatID,
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 1),
		circuitBreaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "TelegramSendPhoto",
			MaxRequests: 1,
			Interval:    60 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 5
			},
		}),
		retry: opts,
	}
}

// Caption summarizes the chart for the photo message.
func Caption(chart frame_charts.StackedChart) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d frames", len(chart.Bars))
	if chart.Title != "" {
		fmt.Fprintf(&b, " from %s", chart.Title)
	}
	if len(chart.Bars) > 0 {
		var sum float64
		for _, bar := range chart.Bars {
			sum += bar.Total()
		}
		fmt.Fprintf(&b, "\navg %.2f ms, max %.2f ms", sum/float64(len(chart.Bars)), chart.MaxTotal())
	}
	b.WriteString("\n")
	b.WriteString(strings.Join(chart.Series, " + "))
	return b.String()
}

func (p *TelegramPresenter) Present(ctx context.Context, chart frame_charts.StackedChart, img image.Image) error {
	data, err := storage.EncodePNG(img)
	if err != nil {
		return err
	}

	photo := tgbotapi.NewPhoto(p.chatID, tgbotapi.FileBytes{Name: storage.ChartFileName, Bytes: data})
	photo.Caption = Caption(chart)

	startTime := time.Now()
	attempt := 0
	err = retry.Do(ctx, p.retry, func() error {
		attempt++
		if err := p.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter wait failed: %w", err)
		}
		_, err := p.circuitBreaker.Execute(func() (interface{}, error) {
			return p.sender.Send(photo)
		})
		if err != nil {
			logging.LogWarn("Telegram send attempt failed",
				zap.Int("attempt", attempt),
				zap.Int64("chat_id", p.chatID),
				zap.Error(err))
		}
		return classifyTelegramError(err)
	})
	if err != nil {
		logging.LogError("Failed to send chart to Telegram", zap.Int64("chat_id", p.chatID), zap.Error(err))
		return fmt.Errorf("failed to send chart to Telegram: %w", err)
	}

	logging.LogSuccess("Chart sent to Telegram",
		zap.Int64("chat_id", p.chatID),
		zap.Int("bytes", len(data)),
		zap.Int64("duration_ms", time.Since(startTime).Milliseconds()))
	return nil
}

// classifyTelegramError marks rate limits and server errors as transient.
func classifyTelegramError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *tgbotapi.Error
	if !errors.As(err, &apiErr) || !retry.IsRetryableCode(apiErr.Code) {
		return err
	}
	return &retry.TransientError{
		Code:       apiErr.Code,
		RetryAfter: time.Duration(apiErr.RetryAfter) * time.Second,
		Err:        err,
	}
}
