package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "cinecraft/internal/config"
	intdb "cinecraft/internal/db"
	"cinecraft/internal/domain"
	"cinecraft/internal/google"
	router "cinecraft/internal/http"
	"cinecraft/internal/http/handlers"
	"cinecraft/internal/notify"
	"cinecraft/internal/seed"
	"cinecraft/internal/services"
	"cinecraft/internal/upload"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db, err := intconfig.ConnectDB(env.DBDSN)
	if err != nil {
		log.Fatalf("database unavailable: %v", err)
	}
	defer intconfig.CloseDB()

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 30*time.Second)
	if err := intdb.EnsureSchema(bootCtx, db); err != nil {
		log.Fatalf("schema bootstrap failed: %v", err)
	}
	if catalog, err := seed.Load(env.SeedFile); err != nil {
		log.Printf("warning: seed skipped: %v", err)
	} else if _, err := seed.Apply(bootCtx, db, catalog); err != nil {
		log.Printf("warning: seed failed: %v", err)
	}

	jwtTTL := time.Duration(env.JWTTTLHours) * time.Hour
	auth := services.AuthService{DB: db, Secret: []byte(env.JWTSecret), TTL: jwtTTL, RequestID: "boot"}
	if created, err := auth.EnsureAdmin(bootCtx, "Administrator", env.AdminEmail, env.AdminPassword); err != nil {
		log.Printf("warning: admin bootstrap failed: %v", err)
	} else if created {
		log.Printf("[AUTH] bootstrap admin %s created", env.AdminEmail)
	}

	rdb := connectRedis(bootCtx, env)
	if rdb != nil {
		defer rdb.Close()
	}

	storage, err := newStorage(env)
	if err != nil {
		log.Fatalf("upload storage: %v", err)
	}

	hub := notify.NewHub()
	deps := handlers.Deps{
		DB:             db,
		Cache:          services.NewRedisCache(rdb),
		Storage:        storage,
		UploadMaxBytes: int64(env.UploadMaxMB) * upload.MB,
		Listeners:      []services.BookingListener{hub},
		JWTSecret:      []byte(env.JWTSecret),
		JWTTTL:         jwtTTL,
		Checkpoints:    checkpoints(rdb),
		Hub:            hub,
	}
	if env.Telegram.BotToken != "" {
		sink, err := notify.NewTelegramSink(env.Telegram.BotToken, env.Telegram.ChatIDs)
		if err != nil {
			log.Printf("warning: telegram disabled: %v", err)
		} else {
			deps.Listeners = append(deps.Listeners, sink)
		}
	}
	if sheet := connectSheet(bootCtx, env, db); sheet != nil {
		deps.Listeners = append(deps.Listeners, sheet)
		deps.StatusListeners = append(deps.StatusListeners, sheet)
	}
	cancelBoot()
	handlers.Setup(deps)

	// Router (Gin engine)
	r := router.NewRouter(env)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server running at http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped cleanly.")
}

// connectRedis returns nil when Redis is unset or unreachable; the catalog
// cache is then skipped and checkpoints stay in memory.
func connectRedis(ctx context.Context, env intconfig.Env) *redis.Client {
	rdb := intconfig.NewRedisClient(env)
	if rdb == nil {
		return nil
	}
	if err := intconfig.PingRedis(ctx, rdb); err != nil {
		log.Printf("warning: %v; continuing without redis", err)
		_ = rdb.Close()
		return nil
	}
	log.Printf("[REDIS] connected to %s", env.RedisAddr)
	return rdb
}

func checkpoints(rdb *redis.Client) notify.CheckpointStore {
	if rdb == nil {
		return notify.NewMemoryCheckpointStore()
	}
	return notify.RedisCheckpointStore{Client: rdb}
}

func newStorage(env intconfig.Env) (upload.Storage, error) {
	if env.Cloudinary.Enabled() {
		log.Printf("[UPLOAD] using cloudinary cloud=%s folder=%s", env.Cloudinary.CloudName, env.Cloudinary.Folder)
		return upload.NewCloudinaryStorage(env.Cloudinary.CloudName, env.Cloudinary.APIKey, env.Cloudinary.APISecret, env.Cloudinary.Folder)
	}
	log.Printf("[UPLOAD] using local disk dir=%s", env.UploadDir)
	return upload.NewLocalStorage(env.UploadDir, env.PublicBaseURL)
}

// connectSheet mirrors bookings into Google Sheets when configured.
func connectSheet(ctx context.Context, env intconfig.Env, db *sql.DB) *google.BookingSheet {
	if !env.Google.Enabled() {
		return nil
	}
	sheet, err := google.NewBookingSheet(ctx, env.Google.CredentialsFile, env.Google.BookingsSheetID)
	if err != nil {
		log.Printf("warning: google sheets disabled: %v", err)
		return nil
	}
	if err := sheet.TestConnection(ctx); err != nil {
		log.Printf("warning: google sheets disabled: %v", err)
		return nil
	}
	if env.Google.ResyncOnStart {
		list, err := services.BookingService{DB: db, RequestID: "boot"}.List(ctx, domain.ListFilter{Limit: domain.MaxLimit})
		if err == nil {
			err = sheet.ReplaceAll(ctx, list)
		}
		if err != nil {
			log.Printf("warning: sheet resync failed: %v", err)
		}
	}
	if err := sheet.WarmUpCache(ctx); err != nil {
		log.Printf("warning: sheet cache warm-up failed: %v", err)
	}
	return sheet
}
