package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"plate-service/internal/model"
)

type RecognitionRepository struct {
	db *gorm.DB
}

func NewRecognitionRepository(db *gorm.DB) *RecognitionRepository {
	return &RecognitionRepository{db: db}
}

func (r *RecognitionRepository) Create(ctx context.Context, recognition *model.Recognition) error {
	return r.db.WithContext(ctx).Create(recognition).Error
}

func (r *RecognitionRepository) GetByID(ctx context.Context, id string) (*model.Recognition, error) {
	var recognition model.Recognition
	err := r.db.WithContext(ctx).Preload("Plates").Where("id = ?", id).First(&recognition).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &recognition, nil
}

type RecognitionListFilter struct {
	RequestedBy *string
	ImageRef    *string
	From        *time.Time
	To          *time.Time
}

func (r *RecognitionRepository) List(ctx context.Context, filter RecognitionListFilter) ([]model.Recognition, error) {
	var recognitions []model.Recognition
	query := r.db.WithContext(ctx).Model(&model.Recognition{}).Preload("Plates")

	if filter.RequestedBy != nil {
		query = query.Where("requested_by = ?", *filter.RequestedBy)
	}
	if filter.ImageRef != nil {
		query = query.Where("image_ref = ?", *filter.ImageRef)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at < ?", *filter.To)
	}

	if err := query.Order("created_at DESC").Find(&recognitions).Error; err != nil {
		return nil, err
	}

	return recognitions, nil
}

type PlateReadListFilter struct {
	NormalizedPlate *string
	MinConfidence   *float64
	From            *time.Time
	To              *time.Time
}

func (r *RecognitionRepository) ListPlateReads(ctx context.Context, filter PlateReadListFilter) ([]model.PlateRead, error) {
	var reads []model.PlateRead
	query := r.db.WithContext(ctx).Model(&model.PlateRead{})

	if filter.NormalizedPlate != nil {
		query = query.Where("normalized_plate = ?", *filter.NormalizedPlate)
	}
	if filter.MinConfidence != nil {
		query = query.Where("confidence >= ?", *filter.MinConfidence)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at < ?", *filter.To)
	}

	if err := query.Order("created_at DESC").Find(&reads).Error; err != nil {
		return nil, err
	}

	return reads, nil
}
