package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ladelicato/salesbot/instagram"
	"github.com/ladelicato/salesbot/store"
)

type Config struct {
	// BotUserID is the authenticated account's own id; threads whose last
	// message it authored need no reply.
	BotUserID string

	ReplyText        string
	UnitPrice        float64
	InboxLimit       int
	FallbackCustomer string
}

// Bot reconciles the durable store with the current inbox: at most one
// automated reply per thread, ever, each successful reply recorded as a
// sale.
type Bot struct {
	gateway Gateway
	store   Store
	config  Config
	backoff Backoff
	status  *Status
}

func New(gateway Gateway, st Store, config Config, backoff Backoff, status *Status) *Bot {
	if config.InboxLimit <= 0 {
		config.InboxLimit = 20
	}
	if config.FallbackCustomer == "" {
		config.FallbackCustomer = "Cliente"
	}

	return &Bot{
		gateway: gateway,
		store:   st,
		config:  config,
		backoff: backoff,
		status:  status,
	}
}

// Run ticks until ctx is cancelled. No tick-level error ever stops the
// loop; a rate-limit signal earns the long cool-down, anything else the
// transient one.
func (b *Bot) Run(ctx context.Context) {
	b.status.SetOnline(true)
	defer b.status.SetOnline(false)

	log.Info().
		Int("inbox_limit", b.config.InboxLimit).
		Dur("tick_delay", b.backoff.TickDelay).
		Msg("Reply loop started")

	for {
		err := b.tick(ctx)

		var wait time.Duration
		switch {
		case err == nil:
			wait = b.backoff.TickDelay
		case ctx.Err() != nil:
			return
		case errors.Is(err, instagram.ErrRateLimited):
			b.status.MarkError(err)
			log.Warn().
				Dur("cooldown", b.backoff.RateLimitCooldown).
				Msg("Rate limited, suspending replies")
			wait = b.backoff.RateLimitCooldown
		default:
			b.status.MarkError(err)
			log.Error().Err(err).
				Dur("cooldown", b.backoff.TransientCooldown).
				Msg("Tick failed, will retry")
			wait = b.backoff.TransientCooldown
		}

		if !sleepCtx(ctx, wait) {
			return
		}
	}
}

// tick processes one inbox window in gateway order. A rate-limit signal
// aborts the tick; a failure on one thread is contained to that thread.
func (b *Bot) tick(ctx context.Context) error {
	threads, err := b.gateway.ListRecentThreads(b.config.InboxLimit)
	if err != nil {
		return fmt.Errorf("failed to fetch inbox: %w", err)
	}

	answeredIDs, err := b.store.Answered()
	if err != nil {
		return fmt.Errorf("failed to load answered set: %w", err)
	}

	answered := make(map[string]bool, len(answeredIDs))
	for _, id := range answeredIDs {
		answered[id] = true
	}

	for _, thread := range threads {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if thread.LastSenderID == b.config.BotUserID {
			continue
		}
		if answered[thread.ID] {
			continue
		}

		if err := b.reply(thread); err != nil {
			if errors.Is(err, instagram.ErrRateLimited) {
				return err
			}

			log.Error().Err(err).
				Str("thread_id", thread.ID).
				Msg("Failed to answer thread, will retry next tick")

			if !sleepCtx(ctx, b.backoff.FailureCooldown) {
				return ctx.Err()
			}
			continue
		}

		answered[thread.ID] = true

		if !sleepCtx(ctx, b.backoff.NextSendDelay()) {
			return ctx.Err()
		}
	}

	b.status.MarkTick()
	return nil
}

// reply performs the per-thread sequence: persist pending before anything
// can fail, resolve the customer's name best effort, send the fixed text,
// then persist answered and the sale. The thread only counts as handled
// once everything after the send is on disk.
func (b *Bot) reply(thread instagram.Thread) error {
	if err := b.store.MarkPending(thread.ID); err != nil {
		return fmt.Errorf("failed to mark thread pending: %w", err)
	}

	customer, err := b.gateway.UserInfo(thread.LastSenderID)
	if err != nil || customer == "" {
		if err != nil {
			log.Warn().Err(err).
				Str("user_id", thread.LastSenderID).
				Msg("Display name lookup failed, using fallback")
		}
		customer = b.config.FallbackCustomer
	}

	if err := b.gateway.SendText(thread.ID, b.config.ReplyText); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}

	if err := b.store.MarkAnswered(thread.ID); err != nil {
		return fmt.Errorf("failed to mark thread answered: %w", err)
	}

	sale := store.SaleRecord{
		ThreadID:  thread.ID,
		Customer:  customer,
		Amount:    b.config.UnitPrice,
		Timestamp: time.Now(),
	}
	if err := b.store.AddSale(sale); err != nil {
		return fmt.Errorf("failed to record sale: %w", err)
	}

	log.Info().
		Str("thread_id", thread.ID).
		Str("customer", customer).
		Float64("amount", sale.Amount).
		Msg("Answered new conversation")

	return nil
}

// sleepCtx waits for d or until ctx is cancelled, reporting whether the
// full wait elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
