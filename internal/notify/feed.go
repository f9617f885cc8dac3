// Package notify turns new bookings into admin notifications: an in-memory
// feed, a poller with a persisted checkpoint, and push sinks (websocket hub,
// Telegram).
package notify

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"cinecraft/internal/domain/models"
)

const (
	MaxNotifications = 10
	TypeNewBooking   = "new_booking"
)

type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	BookingID int64     `json:"booking_id,omitempty"`
	Time      time.Time `json:"time"`
	Read      bool      `json:"read"`
}

// FromBooking builds the "New Booking Request" notification for b.
func FromBooking(b models.Booking) Notification {
	service := strings.TrimSpace(b.ServiceTitle)
	if service == "" {
		service = "a service"
	}
	return Notification{
		ID:        fmt.Sprintf("booking_%d", b.ID),
		Type:      TypeNewBooking,
		Title:     "New Booking Request",
		Message:   fmt.Sprintf("%s requested %s", b.Name, service),
		BookingID: b.ID,
		Time:      b.CreatedAt,
	}
}

// FromBookings keeps pending bookings created strictly after since.
func FromBookings(bookings []models.Booking, since time.Time) []Notification {
	out := make([]Notification, 0, len(bookings))
	for _, b := range bookings {
		if b.Status != models.BookingPending || !b.CreatedAt.After(since) {
			continue
		}
		out = append(out, FromBooking(b))
	}
	return out
}

// Feed is the bell's list: newest first, deduplicated by ID, capped.
type Feed struct {
	mu    sync.Mutex
	items []Notification
	limit int
}

func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = MaxNotifications
	}
	return &Feed{limit: limit}
}

// Merge puts incoming ahead of the existing entries and returns the ones
// that were not already in the feed and survived the cap. Entries already
// present keep their read state.
func (f *Feed) Merge(incoming []Notification) []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing := make(map[string]Notification, len(f.items))
	for _, n := range f.items {
		existing[n.ID] = n
	}
	seen := make(map[string]bool, len(incoming)+len(f.items))
	merged := make([]Notification, 0, len(incoming)+len(f.items))
	for _, n := range incoming {
		if seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		if old, ok := existing[n.ID]; ok {
			n.Read = old.Read
		}
		merged = append(merged, n)
	}
	for _, n := range f.items {
		if seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		merged = append(merged, n)
	}
	if len(merged) > f.limit {
		merged = merged[:f.limit]
	}
	var added []Notification
	for _, n := range merged {
		if _, ok := existing[n.ID]; !ok {
			added = append(added, n)
		}
	}
	f.items = merged
	return added
}

func (f *Feed) Items() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Notification{}, f.items...)
}

// Unread counts the unread entries still in the feed.
func (f *Feed) Unread() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, it := range f.items {
		if !it.Read {
			n++
		}
	}
	return n
}

func (f *Feed) MarkAllRead() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		f.items[i].Read = true
	}
}

func (f *Feed) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = nil
}

// TimeAgo renders the bell's relative timestamps.
func TimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	}
	return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
}
