package store

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rileyhilliard/tilemon/internal/errors"
)

// record is one stored blob.
type record struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (record) TableName() string { return "kv" }

// SQLiteKV stores blobs in a single-table SQLite database.
type SQLiteKV struct {
	db   *gorm.DB
	path string
}

// OpenSQLite opens (creating if needed) the database at path, including any
// missing parent directories.
func OpenSQLite(path string) (*SQLiteKV, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrPersist,
				fmt.Sprintf("Cannot create store directory %s", dir),
				"Check permissions or set 'store' in tilemon.yaml")
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		// Standard logger; the dashboard points it at the log file.
		Logger: gormlogger.New(log.Default(), gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrPersist,
			fmt.Sprintf("Cannot open layout store %s", path),
			"Check the file is a tilemon store and is not locked by another process")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrPersist, "Cannot open layout store", "")
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&record{}); err != nil {
		_ = sqlDB.Close()
		return nil, errors.WrapWithCode(err, errors.ErrPersist, "Cannot prepare layout store", "")
	}

	return &SQLiteKV{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *SQLiteKV) Path() string {
	return s.path
}

func (s *SQLiteKV) Get(key string) ([]byte, bool, error) {
	var rec record
	res := s.db.Where(map[string]any{"key": key}).Limit(1).Find(&rec)
	if res.Error != nil {
		return nil, false, errors.WrapWithCode(res.Error, errors.ErrPersist,
			fmt.Sprintf("Failed to read '%s' from the layout store", key), "")
	}
	if res.RowsAffected == 0 {
		return nil, false, nil
	}
	return rec.Value, true, nil
}

// Set upserts key in a single statement.
func (s *SQLiteKV) Set(key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	rec := record{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrPersist,
			fmt.Sprintf("Failed to write '%s' to the layout store", key), "")
	}
	return nil
}

func (s *SQLiteKV) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
