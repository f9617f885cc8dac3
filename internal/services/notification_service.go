package services

import (
	"context"
	"fmt"
	"time"

	"cinecraft/internal/notify"
)

// NotificationService backs the admin bell: new pending bookings since the
// admin last opened it.
type NotificationService struct {
	Bookings    BookingService
	Checkpoints notify.CheckpointStore
	Now         func() time.Time
}

// NotificationFeed is the bell payload.
type NotificationFeed struct {
	Notifications []notify.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unread_count"`
	LastChecked   *time.Time            `json:"last_checked"`
}

func (s NotificationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s NotificationService) store() notify.CheckpointStore {
	if s.Checkpoints != nil {
		return s.Checkpoints
	}
	return defaultCheckpoints
}

var defaultCheckpoints = notify.NewMemoryCheckpointStore()

func checkpointKey(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}

// Feed lists unseen pending bookings, newest first, capped at 10. The first
// call for a user starts the checkpoint at now and returns an empty feed.
func (s NotificationService) Feed(ctx context.Context, userID int64) (NotificationFeed, error) {
	since, err := s.store().Load(ctx, checkpointKey(userID))
	if err != nil {
		return NotificationFeed{}, wrapRepoErr("notification", err)
	}
	if since.IsZero() {
		now, err := s.MarkRead(ctx, userID)
		if err != nil {
			return NotificationFeed{}, err
		}
		return NotificationFeed{Notifications: []notify.Notification{}, LastChecked: &now}, nil
	}
	list, err := s.Bookings.PendingSince(ctx, since)
	if err != nil {
		return NotificationFeed{}, err
	}
	feed := notify.NewFeed(notify.MaxNotifications)
	feed.Merge(notify.FromBookings(list, since))

	return NotificationFeed{Notifications: feed.Items(), UnreadCount: feed.Unread(), LastChecked: &since}, nil
}

// MarkRead moves the checkpoint to now; earlier bookings stop showing up.
func (s NotificationService) MarkRead(ctx context.Context, userID int64) (time.Time, error) {
	now := s.now()
	if err := s.store().Save(ctx, checkpointKey(userID), now); err != nil {
		return time.Time{}, wrapRepoErr("notification", err)
	}
	return now, nil
}
