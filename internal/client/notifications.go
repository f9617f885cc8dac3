package client

import (
	"context"
	"net/http"
	"time"

	"cinecraft/internal/domain"
	"cinecraft/internal/domain/models"
	"cinecraft/internal/notify"
)

type NotificationsAPI struct{ c *Client }

func (c *Client) Notifications() NotificationsAPI { return NotificationsAPI{c: c} }

// Feed mirrors GET /api/notifications.
type Feed struct {
	Notifications []notify.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unread_count"`
	LastChecked   *time.Time            `json:"last_checked"`
}

func (a NotificationsAPI) Feed(ctx context.Context) (Feed, error) {
	var f Feed
	_, err := a.c.do(ctx, http.MethodGet, "/api/notifications", nil, &f)
	return f, err
}

func (a NotificationsAPI) MarkRead(ctx context.Context) error {
	_, err := a.c.do(ctx, http.MethodPost, "/api/notifications/read", nil, nil)
	return err
}

func (a NotificationsAPI) Clear(ctx context.Context) error {
	_, err := a.c.do(ctx, http.MethodDelete, "/api/notifications", nil, nil)
	return err
}

// BookingSource lets a notify.Poller watch the server's pending bookings.
func (c *Client) BookingSource() notify.BookingSource {
	return notify.BookingSourceFunc(func(ctx context.Context) ([]models.Booking, error) {
		return c.Bookings().List(ctx, domain.ListFilter{Status: models.BookingPending, Limit: domain.MaxLimit})
	})
}
