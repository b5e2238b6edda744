package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jinzhu/now"
	"gorm.io/gorm"

	"trip_ledger/internal/models"
)

var (
	ErrNotFound       = errors.New("data not found")
	ErrDuplicateEntry = errors.New("plate number already recorded for this date")
)

// TripRepository is the storage boundary for trip records.
type TripRepository interface {
	Create(ctx context.Context, rec *models.TripRecord) error
	FindByID(ctx context.Context, id uint) (*models.TripRecord, error)
	Save(ctx context.Context, rec *models.TripRecord) error
	Delete(ctx context.Context, id uint) error
	ListDated(ctx context.Context) ([]models.TripRecord, error)
	ListBetween(ctx context.Context, from, to models.Date) ([]models.TripRecord, error)
}

type gormTripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &gormTripRepository{db: db}
}

// Create inserts rec unless the same plate already has a trip on that day.
// The check and the insert are separate statements, so two concurrent
// creates for the same plate and day can both pass.
func (r *gormTripRepository) Create(ctx context.Context, rec *models.TripRecord) error {
	day := now.With(rec.Date.Time)

	var count int64
	err := r.db.WithContext(ctx).Model(&models.TripRecord{}).
		Where("nopol = ? AND tanggal BETWEEN ? AND ?", rec.PlateNumber, day.BeginningOfDay(), day.EndOfDay()).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("check duplicate trip: %w", err)
	}
	if count > 0 {
		return ErrDuplicateEntry
	}

	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("create trip: %w", err)
	}
	return nil
}

func (r *gormTripRepository) FindByID(ctx context.Context, id uint) (*models.TripRecord, error) {
	var rec models.TripRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find trip %d: %w", id, err)
	}
	return &rec, nil
}

func (r *gormTripRepository) Save(ctx context.Context, rec *models.TripRecord) error {
	if err := r.db.WithContext(ctx).Save(rec).Error; err != nil {
		return fmt.Errorf("save trip %d: %w", rec.ID, err)
	}
	return nil
}

func (r *gormTripRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.TripRecord{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete trip %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListDated returns every trip that has a date, newest first.
func (r *gormTripRepository) ListDated(ctx context.Context) ([]models.TripRecord, error) {
	var recs []models.TripRecord
	err := r.db.WithContext(ctx).
		Where("tanggal IS NOT NULL").
		Order("tanggal DESC").Order("id DESC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	return recs, nil
}

// ListBetween returns trips dated from..to inclusive, oldest first.
func (r *gormTripRepository) ListBetween(ctx context.Context, from, to models.Date) ([]models.TripRecord, error) {
	var recs []models.TripRecord
	err := r.db.WithContext(ctx).
		Where("tanggal BETWEEN ? AND ?", now.With(from.Time).BeginningOfDay(), now.With(to.Time).EndOfDay()).
		Order("tanggal ASC").Order("id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list trips between %s and %s: %w", from, to, err)
	}
	return recs, nil
}
