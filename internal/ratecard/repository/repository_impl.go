package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/irvrobbi/promusic/internal/ratecard/domain"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) Lookup(ctx context.Context, territory domain.Territory, medium domain.Medium, tier domain.Tier) (*domain.RateEntry, error) {
	if !territory.Valid() {
		return nil, domain.ErrInvalidTerritory
	}
	if !medium.Valid() {
		return nil, domain.ErrInvalidMedium
	}
	if !tier.Valid() {
		return nil, domain.ErrInvalidTier
	}

	var entry domain.RateEntry
	err := r.db.WithContext(ctx).
		Where("territory = ? AND medium = ? AND tier = ?", territory, medium, tier).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRateNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *Repository) List(ctx context.Context, territory domain.Territory) ([]domain.RateEntry, error) {
	if !territory.Valid() {
		return nil, domain.ErrInvalidTerritory
	}

	var entries []domain.RateEntry
	err := r.db.WithContext(ctx).
		Where("territory = ?", territory).
		Order("category, medium, tier").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.RateEntry{}).Count(&count).Error
	return count, err
}
