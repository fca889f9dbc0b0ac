// Package inventory is the relational vehicle store.
package inventory

import (
	"context"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/run-bigpig/carpick/internal/logger"
	"github.com/run-bigpig/carpick/internal/models"
)

var log = logger.New("Inventory")

// Sanity predicates applied to every read: listings outside these bounds are
// data-entry noise, not candidates.
const (
	maxMileageKm = 200000
	minModelYear = 2015
)

// Store wraps the inventory database.
type Store struct {
	db *gorm.DB
}

// Open connects to the sqlite inventory database at path and migrates the
// schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("inventory: open %s: %w", path, err)
	}
	return NewStore(db)
}

// NewStore wraps an existing connection and migrates the schema.
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&models.VehicleItem{}); err != nil {
		return nil, fmt.Errorf("inventory: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// FindByBudget returns sane candidate rows for a budget band, ordered by the
// caller-supplied comparator. Listings up to 20% over the ceiling are kept
// because the budget score decays rather than cuts there.
func (s *Store) FindByBudget(ctx context.Context, budget models.Budget, limit int, orderBy string) ([]models.VehicleItem, error) {
	if orderBy == "" {
		orderBy = "price ASC"
	}
	if limit <= 0 {
		limit = 50
	}

	q := s.db.WithContext(ctx).
		Where("price > 0").
		Where("mileage < ?", maxMileageKm).
		Where("year >= ?", minModelYear)
	if budget.Max > 0 {
		q = q.Where("price <= ?", int(float64(budget.Max)*1.2))
	}

	var vehicles []models.VehicleItem
	if err := q.Order(orderBy).Limit(limit).Find(&vehicles).Error; err != nil {
		return nil, fmt.Errorf("inventory: find by budget: %w", err)
	}
	log.Debug("budget %d-%d: %d candidates", budget.Min, budget.Max, len(vehicles))
	return vehicles, nil
}

// All returns every sane listing, used when a priority shift widens the
// candidate pool.
func (s *Store) All(ctx context.Context, limit int) ([]models.VehicleItem, error) {
	if limit <= 0 {
		limit = 200
	}
	var vehicles []models.VehicleItem
	err := s.db.WithContext(ctx).
		Where("price > 0").
		Where("mileage < ?", maxMileageKm).
		Where("year >= ?", minModelYear).
		Order("price ASC").
		Limit(limit).
		Find(&vehicles).Error
	if err != nil {
		return nil, fmt.Errorf("inventory: list: %w", err)
	}
	return vehicles, nil
}

// Seed inserts vehicles, replacing nothing.
func (s *Store) Seed(ctx context.Context, vehicles []models.VehicleItem) error {
	if len(vehicles) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(&vehicles).Error; err != nil {
		return fmt.Errorf("inventory: seed: %w", err)
	}
	log.Info("seeded %d vehicles", len(vehicles))
	return nil
}

// Count returns the number of stored listings.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.VehicleItem{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("inventory: count: %w", err)
	}
	return n, nil
}
