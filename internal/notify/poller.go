package notify

import (
	"context"
	"log"
	"time"

	"cinecraft/internal/domain/models"
)

const DefaultPollInterval = 30 * time.Second

// BookingSource lists bookings; the poller filters them itself.
type BookingSource interface {
	Bookings(ctx context.Context) ([]models.Booking, error)
}

type BookingSourceFunc func(ctx context.Context) ([]models.Booking, error)

func (f BookingSourceFunc) Bookings(ctx context.Context) ([]models.Booking, error) { return f(ctx) }

// Poller fetches bookings periodically and merges new pending ones into Feed.
// The checkpoint only moves when the reader opens the feed (MarkRead).
type Poller struct {
	Source      BookingSource
	Checkpoints CheckpointStore
	Key         string
	Feed        *Feed
	Interval    time.Duration
	Now         func() time.Time
	OnNew       func(added []Notification, unread int)
}

func (p *Poller) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p *Poller) feed() *Feed {
	if p.Feed == nil {
		p.Feed = NewFeed(MaxNotifications)
	}
	return p.Feed
}

// Poll runs one fetch-and-merge cycle. Without a stored checkpoint it only
// records now, so bookings made before the first look never show up.
func (p *Poller) Poll(ctx context.Context) (int, error) {
	since, err := p.Checkpoints.Load(ctx, p.Key)
	if err != nil {
		return 0, err
	}
	if since.IsZero() {
		return 0, p.Checkpoints.Save(ctx, p.Key, p.now())
	}
	bookings, err := p.Source.Bookings(ctx)
	if err != nil {
		return 0, err
	}
	added := p.feed().Merge(FromBookings(bookings, since))
	if len(added) > 0 && p.OnNew != nil {
		p.OnNew(added, p.feed().Unread())
	}
	return len(added), nil
}

// Run polls immediately and then on every tick until ctx is cancelled.
// Fetch errors are logged and the loop keeps going.
func (p *Poller) Run(ctx context.Context) error {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if _, err := p.Poll(ctx); err != nil && ctx.Err() == nil {
		log.Printf("[NOTIFY] action=poll error=%v", err)
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if _, err := p.Poll(ctx); err != nil && ctx.Err() == nil {
				log.Printf("[NOTIFY] action=poll error=%v", err)
			}
		}
	}
}

// MarkRead is what opening the bell does: everything read, checkpoint now.
func (p *Poller) MarkRead(ctx context.Context) error {
	p.feed().MarkAllRead()
	return p.Checkpoints.Save(ctx, p.Key, p.now())
}
