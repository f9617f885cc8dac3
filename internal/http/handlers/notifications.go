package handlers

import (
	"net/http"

	"cinecraft/internal/http/middleware"
	"cinecraft/internal/utils"

	"github.com/gin-gonic/gin"
)

func GetNotifications(c *gin.Context) {
	feed, err := notificationService(c).Feed(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, feed, "")
}

func MarkNotificationsRead(c *gin.Context) {
	at, err := notificationService(c).MarkRead(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"last_checked": at}, "Notifications marked as read")
}

// ClearNotifications empties the bell; the feed is derived from the
// checkpoint, so clearing moves it forward just like marking read.
func ClearNotifications(c *gin.Context) {
	at, err := notificationService(c).MarkRead(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"last_checked": at}, "Notifications cleared")
}

// NotificationsWS upgrades to a websocket that receives new booking events.
func NotificationsWS(c *gin.Context) {
	hub := current().Hub
	if hub == nil {
		RespondError(c, http.StatusServiceUnavailable, "Live notifications are disabled", nil)
		return
	}
	if err := hub.ServeWS(c.Writer, c.Request); err != nil {
		utils.LogError(middleware.GetRequestID(c), "notify", "ws_upgrade", err)
	}
}
