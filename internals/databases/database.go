package database

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"academy_backend/internals/configs"
	certModel "academy_backend/internals/features/certificates/certificates/model"
	tplModel "academy_backend/internals/features/certificates/templates/model"
	courseModel "academy_backend/internals/features/courses/courses/model"
	enrollmentModel "academy_backend/internals/features/courses/enrollments/model"
	lessonModel "academy_backend/internals/features/courses/lessons/model"
	progressModel "academy_backend/internals/features/progress/progress/model"
	userModel "academy_backend/internals/features/users/user/model"
)

var DB *gorm.DB

// ConnectDB membuka koneksi sesuai DB_DRIVER (postgres | sqlite).
func ConnectDB(cfg configs.AppConfig) error {
	var (
		db  *gorm.DB
		err error
	)
	switch strings.ToLower(cfg.DBDriver) {
	case "sqlite":
		log.Printf("🔌 Koneksi ke SQLite (%s)...", cfg.SQLitePath)
		db, err = OpenSQLite(cfg.SQLitePath, configs.NewGormLogger())
	default:
		log.Println("🔌 Koneksi ke PostgreSQL...")
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  cfg.PostgresDSN(),
			PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
		}), &gorm.Config{Logger: configs.NewGormLogger(), TranslateError: true})
	}
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	DB = db
	log.Println("✅ DB connected.")
	return nil
}

// OpenSQLite dipakai untuk dev lokal dan test (":memory:").
func OpenSQLite(path string, logger gormLogger.Interface) (*gorm.DB, error) {
	if logger == nil {
		logger = gormLogger.Default.LogMode(gormLogger.Silent)
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger, TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, err
	}
	return db, nil
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	// ⚖️ Sesuaikan dengan limit Postgres/PgBouncer
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	// jalankan ringan supaya koneksi/pool “keisi” & siap
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := Ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
			return
		}
		var n int64
		if err := DB.Model(&tplModel.CertificateTemplateModel{}).Where("is_default = ?", true).Count(&n).Error; err != nil {
			log.Printf("warm-up query err: %v", err)
		}
	}()
}

func Ping() error {
	if DB == nil {
		return fmt.Errorf("db not connected")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Models: urutan penting (FK) untuk AutoMigrate.
func Models() []any {
	return []any{
		&userModel.UserModel{},
		&courseModel.CourseModel{},
		&lessonModel.LessonModel{},
		&enrollmentModel.CourseEnrollmentModel{},
		&progressModel.LessonProgressModel{},
		&tplModel.CertificateTemplateModel{},
		&certModel.CertificateModel{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
