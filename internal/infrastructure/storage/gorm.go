package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fitforge/internal/core/tracker"
	"fitforge/internal/infrastructure/config"
	"fitforge/internal/pkg/common"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// StateRecord app_states 資料表
type StateRecord struct {
	UserID    string `gorm:"primaryKey;size:128"`
	Payload   string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName 資料表名稱
func (StateRecord) TableName() string {
	return "app_states"
}

// GormStore 關聯式資料庫儲存
type GormStore struct {
	db *gorm.DB
}

// OpenGormStore 開啟資料庫並自動遷移
func OpenGormStore(driver, dsn string) (*GormStore, error) {
	var dialector gorm.Dialector
	switch driver {
	case config.StorageSQLite:
		dialector = sqlite.Open(dsn)
	case config.StoragePostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, common.ErrUnsupportedStorage.Wrap(fmt.Errorf("driver %q", driver))
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewGormStore(db)
}

// NewGormStore 使用既有連線
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&StateRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate app_states: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Load(ctx context.Context, userID string) (*tracker.AppState, error) {
	var rec StateRecord
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return decodeState([]byte(rec.Payload))
}

func (s *GormStore) Save(ctx context.Context, userID string, state *tracker.AppState) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}

	rec := StateRecord{UserID: userID, Payload: string(data), UpdatedAt: time.Now()}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
