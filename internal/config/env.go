package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr       string
	GinMode       string
	PublicBaseURL string
	DBDSN         string
	JWTSecret     string
	JWTTTLHours   int
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CORSOrigins   []string
	UploadDir     string
	UploadMaxMB   int
	Cloudinary    CloudinaryEnv
	Telegram      TelegramEnv
	Google        GoogleEnv
	SeedFile      string
	AdminEmail    string
	AdminPassword string
}

type CloudinaryEnv struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

func (c CloudinaryEnv) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

type TelegramEnv struct {
	BotToken string
	ChatIDs  []int64
}

type GoogleEnv struct {
	CredentialsFile string
	BookingsSheetID string
	// ResyncOnStart rewrites the whole sheet from the database at boot.
	ResyncOnStart bool
}

func (g GoogleEnv) Enabled() bool {
	return g.CredentialsFile != "" && g.BookingsSheetID != ""
}

// LoadEnv reads .env when present and fills defaults for everything unset.
func LoadEnv() Env {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: failed to read .env: %v", err)
	}

	env := Env{
		AppAddr:       getenv("APP_ADDR", ":5000"),
		GinMode:       getenv("GIN_MODE", ""),
		PublicBaseURL: strings.TrimRight(getenv("PUBLIC_BASE_URL", "http://localhost:5000"), "/"),
		DBDSN:         getenv("DB_DSN", ""),
		JWTSecret:     getenv("JWT_SECRET", "local-dev-secret-change-me"),
		JWTTTLHours:   getenvInt("JWT_TTL_HOURS", 24),
		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getenvInt("REDIS_DB", 0),
		CORSOrigins:   splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		UploadDir:     getenv("UPLOAD_DIR", "./uploads"),
		UploadMaxMB:   getenvInt("UPLOAD_MAX_MB", 50),
		Cloudinary: CloudinaryEnv{
			CloudName: getenv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getenv("CLOUDINARY_API_KEY", ""),
			APISecret: getenv("CLOUDINARY_API_SECRET", ""),
			Folder:    getenv("CLOUDINARY_FOLDER", "cinecraft"),
		},
		Telegram: TelegramEnv{
			BotToken: getenv("TELEGRAM_BOT_TOKEN", ""),
			ChatIDs:  parseChatIDs(getenv("TELEGRAM_CHAT_IDS", "")),
		},
		Google: GoogleEnv{
			CredentialsFile: getenv("GOOGLE_CREDENTIALS_FILE", ""),
			BookingsSheetID: getenv("GOOGLE_BOOKINGS_SHEET_ID", ""),
			ResyncOnStart:   getenv("GOOGLE_SHEET_RESYNC", "") == "true",
		},
		SeedFile:      getenv("SEED_FILE", ""),
		AdminEmail:    getenv("ADMIN_EMAIL", ""),
		AdminPassword: getenv("ADMIN_PASSWORD", ""),
	}
	if env.DBDSN != "" {
		env.DBDSN = normalizeDSN(env.DBDSN)
	} else {
		env.DBDSN = buildDSN(
			getenv("DB_USER", "root"),
			getenv("DB_PASSWORD", ""),
			getenv("DB_HOST", "127.0.0.1:3306"),
			getenv("DB_NAME", "cinecraft"),
		)
	}
	return env
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("warning: %s=%q is not a number, using default %d", k, v, def)
		return def
	}
	return n
}

func splitCSV(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseChatIDs(raw string) []int64 {
	out := []int64{}
	for _, p := range splitCSV(raw) {
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			log.Printf("warning: ignoring telegram chat id %q", p)
			continue
		}
		out = append(out, id)
	}
	return out
}
