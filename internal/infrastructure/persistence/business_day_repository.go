package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/dairyops/backend/internal/domain/dayops"
)

// GormBusinessDayRepository implements BusinessDayRepository using GORM.
// All single-row finders return (nil, nil) when no matching day exists.
type GormBusinessDayRepository struct {
	db *gorm.DB
}

// NewGormBusinessDayRepository creates a new GormBusinessDayRepository
func NewGormBusinessDayRepository(db *gorm.DB) *GormBusinessDayRepository {
	return &GormBusinessDayRepository{db: db}
}

// FindByDate finds the day row for a calendar date
func (r *GormBusinessDayRepository) FindByDate(ctx context.Context, date time.Time) (*dayops.BusinessDay, error) {
	var day dayops.BusinessDay
	if err := r.db.WithContext(ctx).
		Where("business_date = ?", date).
		First(&day).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &day, nil
}

// FindOpen finds the single OPEN day, if any
func (r *GormBusinessDayRepository) FindOpen(ctx context.Context) (*dayops.BusinessDay, error) {
	var day dayops.BusinessDay
	if err := r.db.WithContext(ctx).
		Where("status = ?", dayops.DayStatusOpen).
		First(&day).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &day, nil
}

// FindLatest finds the most recent day regardless of status
func (r *GormBusinessDayRepository) FindLatest(ctx context.Context) (*dayops.BusinessDay, error) {
	var day dayops.BusinessDay
	if err := r.db.WithContext(ctx).
		Order("business_date DESC").
		First(&day).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &day, nil
}

// FindLatestClosed finds the most recent settled (CLOSED or LOCKED) day
func (r *GormBusinessDayRepository) FindLatestClosed(ctx context.Context) (*dayops.BusinessDay, error) {
	var day dayops.BusinessDay
	if err := r.db.WithContext(ctx).
		Where("status IN ?", []dayops.DayStatus{dayops.DayStatusClosed, dayops.DayStatusLocked}).
		Order("business_date DESC").
		First(&day).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &day, nil
}

// FindLatestClosedBefore finds the most recent settled day strictly before a
// date. A LOCKED day counts as settled; locking happens after closing.
func (r *GormBusinessDayRepository) FindLatestClosedBefore(ctx context.Context, date time.Time) (*dayops.BusinessDay, error) {
	var day dayops.BusinessDay
	if err := r.db.WithContext(ctx).
		Where("status IN ? AND business_date < ?", []dayops.DayStatus{dayops.DayStatusClosed, dayops.DayStatusLocked}, date).
		Order("business_date DESC").
		First(&day).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &day, nil
}

// Create inserts a new day row; fails if a row for the date exists
func (r *GormBusinessDayRepository) Create(ctx context.Context, day *dayops.BusinessDay) error {
	return r.db.WithContext(ctx).Create(day).Error
}

// Save persists status transitions
func (r *GormBusinessDayRepository) Save(ctx context.Context, day *dayops.BusinessDay) error {
	return r.db.WithContext(ctx).Save(day).Error
}

var _ dayops.BusinessDayRepository = (*GormBusinessDayRepository)(nil)
