// Package poller drives the ingestion cycle: every tick it opens a fresh
// store connection, fetches all device records from the upstream API and
// inserts them sequentially in response order. Failures never stop the loop;
// the fixed interval doubles as the retry backoff.
package poller

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"vizvolt/internal/models"
	"vizvolt/internal/sanitize"
)

// Fetcher returns the raw per-device records for one tick.
type Fetcher interface {
	FetchDevices(ctx context.Context) ([]map[string]any, error)
}

// Store persists normalized readings for the duration of one tick.
type Store interface {
	Insert(ctx context.Context, reading models.DeviceReading) error
	Close() error
}

// Connect opens a fresh Store. The poller calls it at the start of every tick
// and closes the result before sleeping, so no connection outlives a tick.
type Connect func(ctx context.Context) (Store, error)

// Poller runs the timer-driven ingestion loop.
type Poller struct {
	fetcher  Fetcher
	connect  Connect
	interval time.Duration
	logger   *zap.Logger
}

// New builds a poller with the given tick interval.
func New(fetcher Fetcher, connect Connect, interval time.Duration, logger *zap.Logger) *Poller {
	return &Poller{
		fetcher:  fetcher,
		connect:  connect,
		interval: interval,
		logger:   logger,
	}
}

// Run executes ticks until the context is cancelled. The first tick starts
// immediately. A failed tick is logged and the loop proceeds to the next one
// after the fixed interval; no failure is ever fatal.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("ingestion started", zap.Duration("interval", p.interval))

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if err := p.tick(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.logger.Error("tick failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// tick performs one fetch-and-store cycle. Connection and fetch errors abort
// the whole tick; a single reading's insert failure is logged and the next
// reading is still attempted.
func (p *Poller) tick(ctx context.Context) error {
	store, err := p.connect(ctx)
	if err != nil {
		return fmt.Errorf("connect store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			p.logger.Warn("failed to close store", zap.Error(err))
		}
	}()

	devices, err := p.fetcher.FetchDevices(ctx)
	if err != nil {
		return fmt.Errorf("fetch devices: %w", err)
	}

	for _, raw := range devices {
		reading := sanitize.Reading(raw, time.Now())
		if err := store.Insert(ctx, reading); err != nil {
			p.logger.Error("insert failed", zap.Any("imei", raw["imei"]), zap.Error(err))
			continue
		}
		p.logger.Info("inserted reading", zap.Any("imei", raw["imei"]))
	}
	return nil
}
