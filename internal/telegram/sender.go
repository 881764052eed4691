package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"github.com/elboletin/newsbot/internal/observability"
)

const (
	sleepBetweenBlocks = 500 * time.Millisecond
	retryBaseDelay     = 1 * time.Second
	maxSendRetries     = 2
)

// Delivery status per item. FAILED items are not recorded as sent, so the
// next run picks them up again.
const (
	StatusDelivered    = "delivered"
	StatusTextFallback = "text_fallback"
	StatusFailed       = "failed"
)

// API is the slice of the Bot API the driver needs; *tgbotapi.BotAPI
// satisfies it.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Driver sends formatted blocks strictly in order, degrading from media with
// caption to plain text, and reports which fingerprints were confirmed.
type Driver struct {
	api       API
	chatID    int64
	retryBase time.Duration
	logger    *zerolog.Logger
}

func NewDriver(api API, chatID int64, logger *zerolog.Logger) *Driver {
	return &Driver{
		api:       api,
		chatID:    chatID,
		retryBase: retryBaseDelay,
		logger:    logger,
	}
}

// SendHeader sends the bulletin header line.
func (d *Driver) SendHeader(ctx context.Context, text string) error {
	return d.sendText(ctx, text)
}

// Deliver walks the blocks in sequence and returns the fingerprints of every
// block that reached DELIVERED, plus whether the whole sequence did. One block
// failing never aborts the rest. Callers whose fingerprints span multiple
// blocks must only trust them when complete is true.
func (d *Driver) Deliver(ctx context.Context, blocks []Block) (delivered []string, complete bool) {
	complete = true

	for i, block := range blocks {
		if ctx.Err() != nil {
			d.logger.Warn().Int("remaining", len(blocks)-i).Msg("delivery aborted by cancellation")

			return delivered, false
		}

		status := d.deliverBlock(ctx, block)
		observability.ItemsDelivered.WithLabelValues(status).Inc()

		if status == StatusFailed {
			complete = false

			continue
		}

		delivered = append(delivered, block.Fingerprints...)

		if i < len(blocks)-1 {
			select {
			case <-ctx.Done():
			case <-time.After(sleepBetweenBlocks):
			}
		}
	}

	return delivered, complete
}

// deliverBlock runs the per-item state machine: PENDING → DELIVERED, or
// PENDING → TEXT_FALLBACK → DELIVERED when the media send fails, or FAILED
// when both attempts are exhausted.
func (d *Driver) deliverBlock(ctx context.Context, block Block) string {
	if block.ImageURL != "" {
		err := d.sendPhoto(ctx, block.ImageURL, block.Text)
		if err == nil {
			return StatusDelivered
		}

		d.logger.Warn().Err(err).Str("image", block.ImageURL).Msg("media send failed, retrying as text")

		if err := d.sendText(ctx, block.Text); err != nil {
			d.logger.Error().Err(err).Msg("text fallback failed, skipping item")

			return StatusFailed
		}

		return StatusTextFallback
	}

	if err := d.sendText(ctx, block.Text); err != nil {
		d.logger.Error().Err(err).Msg("send failed, skipping item")

		return StatusFailed
	}

	return StatusDelivered
}

func (d *Driver) sendPhoto(ctx context.Context, imageURL, caption string) error {
	photo := tgbotapi.NewPhoto(d.chatID, tgbotapi.FileURL(imageURL))
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeMarkdownV2

	return d.sendWithRetry(ctx, photo)
}

func (d *Driver) sendText(ctx context.Context, text string) error {
	msg := tgbotapi.NewMessage(d.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2

	return d.sendWithRetry(ctx, msg)
}

// sendWithRetry absorbs transient transport hiccups with a short exponential
// backoff before the caller's own fallback kicks in.
func (d *Driver) sendWithRetry(ctx context.Context, c tgbotapi.Chattable) error {
	backoff := retry.WithMaxRetries(maxSendRetries, retry.NewExponential(d.retryBase))

	return retry.Do(ctx, backoff, func(_ context.Context) error {
		if _, err := d.api.Send(c); err != nil {
			return retry.RetryableError(err)
		}

		return nil
	})
}
