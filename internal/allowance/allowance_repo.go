package allowance

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=allowance_repo.go -destination=mock/allowance_repo_mock.go -package=mock
type Repository interface {
	Count(ctx context.Context) (int64, error)
	FindPage(ctx context.Context, start, limit int) ([]ShiftAllowance, error)
	FindByID(ctx context.Context, id uint) (*ShiftAllowance, error)
	LatestDurationMonth(ctx context.Context) (time.Time, error)
	LatestPayrollMonth(ctx context.Context) (time.Time, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ShiftAllowance{}).Count(&count).Error
	return count, err
}

func (r *repository) FindPage(ctx context.Context, start, limit int) ([]ShiftAllowance, error) {
	var records []ShiftAllowance
	err := r.db.WithContext(ctx).
		Preload("Mappings").
		Order("id ASC").
		Offset(start).
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*ShiftAllowance, error) {
	var record ShiftAllowance
	err := r.db.WithContext(ctx).
		Preload("Mappings").
		First(&record, "id = ?", id).Error
	return &record, err
}

func (r *repository) LatestDurationMonth(ctx context.Context) (time.Time, error) {
	var latest *time.Time
	err := r.db.WithContext(ctx).
		Model(&ShiftAllowance{}).
		Select("max(duration_month)").
		Scan(&latest).Error
	if err != nil {
		return time.Time{}, err
	}
	if latest == nil {
		return time.Time{}, gorm.ErrRecordNotFound
	}
	return *latest, nil
}

func (r *repository) LatestPayrollMonth(ctx context.Context) (time.Time, error) {
	var latest *time.Time
	err := r.db.WithContext(ctx).
		Model(&ShiftAllowance{}).
		Select("max(payroll_month)").
		Scan(&latest).Error
	if err != nil {
		return time.Time{}, err
	}
	if latest == nil {
		return time.Time{}, gorm.ErrRecordNotFound
	}
	return *latest, nil
}
