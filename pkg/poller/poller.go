// Package poller long-polls getUpdates and hands decoded updates to a handler.
package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tgwire/pkg/config"
	"tgwire/pkg/decode"
	"tgwire/pkg/method"
	"tgwire/pkg/types"
	"tgwire/pkg/value"
)

const (
	messagePreviewLimit   = 240
	defaultRetryDelay     = 3 * time.Second
	typingRefreshInterval = 4 * time.Second
)

// Doer sends one operation. *dispatch.Dispatcher implements it.
type Doer interface {
	Do(ctx context.Context, op method.Operation) (any, error)
}

// Handler processes one update. A returned error is logged and does not stop
// polling; the update is not redelivered.
type Handler func(context.Context, types.Update) error

// Poller tracks the getUpdates offset and filters senders by allow_from.
type Poller struct {
	client     Doer
	dec        *decode.Decoder
	cfg        config.PollingConfig
	allowFrom  map[string]struct{}
	offset     int64
	retryDelay time.Duration
	log        *slog.Logger
}

// New constructs a poller over client. dec decodes each update body on its
// own so one undecodable update does not stall the batch.
func New(client Doer, dec *decode.Decoder, tg config.TelegramConfig, polling config.PollingConfig, log *slog.Logger) (*Poller, error) {
	if client == nil {
		return nil, errors.New("client is required")
	}
	if dec == nil {
		return nil, errors.New("decoder is required")
	}

	if log == nil {
		log = slog.Default()
	}

	return &Poller{
		client:     client,
		dec:        dec,
		cfg:        polling,
		allowFrom:  allowFromSet(tg.AllowFrom),
		retryDelay: defaultRetryDelay,
		log:        log.With("component", "poller"),
	}, nil
}

// Offset is the next update id the poller will ask for.
func (p *Poller) Offset() int64 {
	return p.offset
}

// Run polls until ctx is cancelled. Failed polls are retried after a delay.
func (p *Poller) Run(ctx context.Context, handler Handler) error {
	if handler == nil {
		return errors.New("handler is required")
	}

	p.log.Info("Polling started", "timeout", p.cfg.Timeout(), "limit", p.cfg.Limit, "allowed_updates", strings.Join(p.cfg.AllowedUpdates, ","))

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		if _, err := p.Poll(ctx, handler); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			p.log.Error("Poll failed", "error", err, "retry_in", p.retryDelay)

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(p.retryDelay):
			}
		}
	}
}

// Poll performs one getUpdates call and handles every returned update. It
// returns the number of updates received, including ones that could not be
// decoded. Those are logged and skipped; the offset still moves past them.
func (p *Poller) Poll(ctx context.Context, handler Handler) (int, error) {
	op, err := method.NewGetUpdates(p.offset, p.cfg.Limit, p.cfg.Timeout(), p.cfg.AllowedUpdates)
	if err != nil {
		return 0, fmt.Errorf("build getUpdates: %w", err)
	}

	result, err := p.client.Do(ctx, op)
	if err != nil {
		return 0, err
	}

	raws, ok := result.([]types.RawUpdate)
	if !ok {
		return 0, fmt.Errorf("getUpdates result is %T", result)
	}

	for _, raw := range raws {
		if next := raw.ID.Next(); next > p.offset {
			p.offset = next
		}

		update, err := decode.Into[types.Update](p.dec, raw.Tree)
		if err != nil {
			p.log.Warn("Skipping undecodable update", "update_id", raw.ID.String(), "error", err)
			continue
		}

		p.deliver(ctx, update, handler)
	}

	return len(raws), nil
}

// deliver filters the sender, logs the update and runs handler.
func (p *Poller) deliver(ctx context.Context, update types.Update, handler Handler) {
	sender := update.Sender()
	if sender == nil && len(p.allowFrom) > 0 {
		p.log.Debug("Ignoring update without sender", "update_id", update.UpdateID.String(), "kind", string(update.Kind()))
		return
	}
	if sender != nil && !p.senderAllowed(sender.ID) {
		p.log.Debug("Ignoring update from unauthorized sender", "sender_id", sender.ID.String())
		return
	}

	attrs := []any{"update_id", update.UpdateID.String(), "kind", string(update.Kind())}
	if msg := update.AnyMessage(); msg != nil {
		attrs = append(attrs, "chat_id", msg.Chat.ID.String(), "content", previewText(msg.Text))
	}
	p.log.Info("Received update", attrs...)

	if err := handler(ctx, update); err != nil {
		p.log.Error("Failed to handle update", "update_id", update.UpdateID.String(), "error", err)
	}
}

// senderAllowed checks whether a sender is permitted by allow_from config.
//
// When no allow list is configured, all senders are accepted.
func (p *Poller) senderAllowed(id value.UserID) bool {
	if len(p.allowFrom) == 0 {
		return true
	}

	_, ok := p.allowFrom[id.String()]
	return ok
}

// StartTyping sends a typing action and refreshes it periodically until the
// returned cancel function is called.
func StartTyping(ctx context.Context, client Doer, chat value.ChatID, log *slog.Logger) context.CancelFunc {
	typingCtx, cancel := context.WithCancel(ctx)

	op, err := method.NewSendChatAction(chat, value.ActionTyping)
	if err != nil {
		log.Debug("Failed to build typing action", "chat_id", chat.String(), "error", err)
		return cancel
	}

	sendTyping := func() {
		if _, err := client.Do(typingCtx, op); err != nil && typingCtx.Err() == nil {
			log.Debug("Failed to send typing indicator", "chat_id", chat.String(), "error", err)
		}
	}

	sendTyping()

	go func() {
		ticker := time.NewTicker(typingRefreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-typingCtx.Done():
				return
			case <-ticker.C:
				sendTyping()
			}
		}
	}()

	return cancel
}

// allowFromSet normalizes allow_from values into a lookup set.
func allowFromSet(allowFrom []string) map[string]struct{} {
	if len(allowFrom) == 0 {
		return nil
	}

	allowed := make(map[string]struct{}, len(allowFrom))
	for _, entry := range allowFrom {
		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}
		allowed[trimmed] = struct{}{}
	}

	if len(allowed) == 0 {
		return nil
	}

	return allowed
}

// previewText returns a bounded log-safe preview of message text.
func previewText(text string) string {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) <= messagePreviewLimit {
		return trimmed
	}

	return trimmed[:messagePreviewLimit] + "..."
}
