package recordstore

import (
	"context"
	"errors"
	"fmt"

	"clinic-queue/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps collections as rows of the `collections` table on MySQL
// or PostgreSQL.
type GormStore struct {
	db     *gorm.DB
	driver string
}

// NewGormStore wraps an open gorm connection. Call Migrate before first use.
func NewGormStore(db *gorm.DB, driver string) *GormStore {
	return &GormStore{db: db, driver: driver}
}

// Migrate creates the collections table if needed
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(&models.Collection{})
}

func (s *GormStore) Read(ctx context.Context, name string) ([]byte, error) {
	var row models.Collection
	err := s.db.WithContext(ctx).Where("name = ?", name).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.Payload, nil
}

func (s *GormStore) Write(ctx context.Context, name string, data []byte) error {
	row := models.Collection{Name: name, Payload: data}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
}

func (s *GormStore) Delete(ctx context.Context, name string) (bool, error) {
	result := s.db.WithContext(ctx).Where("name = ?", name).Delete(&models.Collection{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *GormStore) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).
		Model(&models.Collection{}).
		Where("name LIKE ?", escapeLike(prefix)+"%").
		Order("name").
		Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Driver() string { return s.driver }

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
