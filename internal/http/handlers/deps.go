package handlers

import (
	"database/sql"
	"sync"
	"time"

	"cinecraft/internal/domain"
	"cinecraft/internal/http/middleware"
	"cinecraft/internal/notify"
	"cinecraft/internal/services"
	"cinecraft/internal/upload"

	"github.com/gin-gonic/gin"
)

// Deps are the collaborators handlers build their services from.
type Deps struct {
	DB              *sql.DB
	Cache           services.Cache
	Storage         upload.Storage
	UploadMaxBytes  int64
	Listeners       []services.BookingListener
	StatusListeners []services.BookingStatusListener
	JWTSecret       []byte
	JWTTTL          time.Duration
	Checkpoints     notify.CheckpointStore
	Hub             *notify.Hub
}

var (
	depsMu sync.RWMutex
	deps   Deps
)

// Setup installs the dependencies used by every handler.
func Setup(d Deps) {
	depsMu.Lock()
	defer depsMu.Unlock()
	deps = d
}

func current() Deps {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return deps
}

func bookingService(c *gin.Context) services.BookingService {
	d := current()
	return services.BookingService{
		DB:              d.DB,
		Listeners:       d.Listeners,
		StatusListeners: d.StatusListeners,
		RequestID:       middleware.GetRequestID(c),
	}
}

func catalogService(c *gin.Context) services.CatalogService {
	d := current()
	return services.CatalogService{DB: d.DB, Cache: d.Cache, RequestID: middleware.GetRequestID(c)}
}

func portfolioService(c *gin.Context) services.PortfolioService {
	return services.PortfolioService{DB: current().DB, RequestID: middleware.GetRequestID(c)}
}

func feedbackService(c *gin.Context) services.FeedbackService {
	return services.FeedbackService{DB: current().DB, RequestID: middleware.GetRequestID(c)}
}

func contentService(c *gin.Context) services.ContentService {
	return services.ContentService{DB: current().DB, RequestID: middleware.GetRequestID(c)}
}

func authService(c *gin.Context) services.AuthService {
	d := current()
	return services.AuthService{DB: d.DB, Secret: d.JWTSecret, TTL: d.JWTTTL, RequestID: middleware.GetRequestID(c)}
}

// uploadService validates against allowed (the media list when nil).
func uploadService(c *gin.Context, allowed []string) services.UploadService {
	d := current()
	return services.UploadService{
		Storage:      d.Storage,
		MaxSize:      d.UploadMaxBytes,
		AllowedTypes: allowed,
		RequestID:    middleware.GetRequestID(c),
	}
}

func notificationService(c *gin.Context) services.NotificationService {
	d := current()
	return services.NotificationService{Bookings: bookingService(c), Checkpoints: d.Checkpoints}
}

// ParseToken validates bearer tokens for the auth middleware.
func ParseToken(token string) (domain.RequestContext, error) {
	d := current()
	return services.AuthService{Secret: d.JWTSecret}.ParseToken(token)
}
