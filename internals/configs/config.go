package configs

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	AppName         string
	AppBaseURL      string
	SessionSecret   string
	JWTSecret       string
	StoragePath     string
	MatriculePrefix string
	TrashRetention  int
	TrashCron       string
	MaxUploadMB     int

	MidtransServerKey  string
	MidtransClientKey  string
	MidtransProduction bool

	SendGridAPIKey string
	MailFrom       string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if GetEnv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("[WARN] .env tidak ditemukan, memakai ENV sistem")
		} else {
			log.Println("[INFO] .env dimuat")
		}
	}

	AppName = GetEnv("APP_NAME", "École Schoolku")
	AppBaseURL = strings.TrimRight(GetEnv("APP_BASE_URL", "http://localhost:3000"), "/")
	SessionSecret = GetEnv("SESSION_SECRET")
	JWTSecret = GetEnv("JWT_SECRET")
	StoragePath = GetEnv("STORAGE_PATH", "./uploads")
	MatriculePrefix = strings.ToUpper(GetEnv("MATRICULE_PREFIX", "ECL"))
	TrashRetention = GetEnvInt("TRASH_RETENTION_DAYS", 30)
	TrashCron = GetEnv("TRASH_CRON", "15 2 * * *")
	MaxUploadMB = GetEnvInt("MAX_UPLOAD_MB", 16)

	MidtransServerKey = GetEnv("MIDTRANS_SERVER_KEY")
	MidtransClientKey = GetEnv("MIDTRANS_CLIENT_KEY")
	MidtransProduction = GetEnvBool("MIDTRANS_PRODUCTION", false)

	SendGridAPIKey = GetEnv("SENDGRID_API_KEY")
	MailFrom = GetEnv("MAIL_FROM", "no-reply@schoolku.local")

	if JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET belum diset, cookie arsip memakai secret sementara")
		JWTSecret = fmt.Sprintf("dev-%d", time.Now().UnixNano())
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[WARN] %s=%q bukan angka, pakai default %d", key, v, def)
		return def
	}
	return i
}

func GetEnvBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "":
		return def
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// DatabaseDSN menyusun DSN postgres dari DB_* (DATABASE_URL menang jika ada).
func DatabaseDSN() string {
	if url := GetEnv("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=schoolku",
		GetEnv("DB_USER", "postgres"),
		GetEnv("DB_PASSWORD"),
		GetEnv("DB_HOST", "localhost"),
		GetEnv("DB_PORT", "5432"),
		GetEnv("DB_NAME", "schoolku"),
		GetEnv("DB_SSLMODE", "disable"),
	)
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	level := gormLogger.Warn
	if GetEnvBool("DB_DEBUG", false) {
		level = gormLogger.Info
	}
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	cp := *l
	cp.LogLevel = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && err != gormLogger.ErrRecordNotFound && l.LogLevel >= gormLogger.Error:
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
