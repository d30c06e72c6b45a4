package configs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// AppConfig: semua setting runtime, diisi dari ENV (lihat .env.example).
type AppConfig struct {
	Port        string `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"APP_ENV" default:"development"`

	DBDriver   string `envconfig:"DB_DRIVER" default:"postgres"`
	DBUser     string `envconfig:"DB_USER"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBName     string `envconfig:"DB_NAME"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"require"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"academy.db"`

	JWTSecret string `envconfig:"JWT_SECRET"`

	// dipakai untuk link verifikasi & QR
	PublicBaseURL string   `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:3000"`
	CORSOrigins   []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`

	CertFontPath     string `envconfig:"CERT_FONT_PATH"`
	CertBoldFontPath string `envconfig:"CERT_BOLD_FONT_PATH"`
	TemplateSeedFile string `envconfig:"CERT_TEMPLATE_SEED_FILE" default:"internals/seeds/certificates/templates.yaml"`
}

var (
	App       AppConfig
	JWTSecret string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env not found, using system ENV")
	} else {
		log.Println("✅ .env loaded")
	}

	if err := envconfig.Process("", &App); err != nil {
		log.Fatalf("❌ invalid configuration: %v", err)
	}
	JWTSecret = App.JWTSecret

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	} else {
		log.Println("✅ JWT_SECRET loaded.")
	}
	return App
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func (c AppConfig) PostgresDSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   c.DBHost + ":" + c.DBPort,
		Path:   "/" + c.DBName,
	}
	q := url.Values{}
	q.Set("sslmode", c.DBSSLMode)
	q.Set("application_name", "academy")
	q.Set("options", "-c statement_timeout=3000")
	u.RawQuery = q.Encode()
	return u.String()
}

func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// VerifyURL: halaman verifikasi publik untuk satu sertifikat.
func (c AppConfig) VerifyURL(certificateID string) string {
	return strings.TrimRight(c.PublicBaseURL, "/") + "/certificates/verify/" + url.PathEscape(certificateID)
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
	if strings.EqualFold(GetEnv("DB_LOG_LEVEL"), "info") {
		level = gormLogger.Info
	}
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	clone := *l
	clone.LogLevel = level
	return &clone
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
	case err != nil && l.LogLevel >= gormLogger.Error && !isRecordNotFound(err):
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func (c AppConfig) String() string {
	return fmt.Sprintf("env=%s port=%s db=%s base_url=%s", c.Environment, c.Port, c.DBDriver, c.PublicBaseURL)
}
