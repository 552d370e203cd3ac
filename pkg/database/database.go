package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"skillbloom_backend/internal/config"
	"skillbloom_backend/internal/model"
	"skillbloom_backend/internal/util"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	gormConfig := &gorm.Config{
		// 唯一索引冲突统一转换为 gorm.ErrDuplicatedKey
		TranslateError: true,
		Logger: logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  level,
				IgnoreRecordNotFoundError: true,
			},
		),
	}

	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, err
	}

	log.Printf("Database connection established (driver=%s)", cfg.Driver)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")
	return db, nil
}

func dialectorFor(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case util.DBDriverMySQL:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			cfg.Charset,
			cfg.ParseTime,
		)
		return mysql.Open(dsn), nil
	case util.DBDriverSQLite, "":
		dsn := cfg.DSN
		if dsn == "" || dsn == "memory" {
			return sqlite.Open("file::memory:?cache=shared"), nil
		}
		// sqlite 文件所在目录不存在时先创建
		if dir := filepath.Dir(dsn); dir != "." && dir != "/" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create database directory %q: %w", dir, err)
			}
		}
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.AssessmentResult{},
		&model.SkillEnrollment{},
		&model.PodEnrollment{},
		&model.PodTaskCompletion{},
		&model.HealthLog{},
		&model.JournalEntry{},
		&model.AILog{},
		&model.BabyReading{},
		&model.BabyProfile{},
	)
}
