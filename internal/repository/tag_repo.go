package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"foodgram/internal/domain"
)

var (
	ErrTagExists       = errors.New("tag with this name, color or slug already exists")
	ErrTagInvalidColor = errors.New("tag color is not in the palette")
)

type TagRepository interface {
	Create(ctx context.Context, tag *domain.Tag) error
	GetAll(ctx context.Context) ([]domain.Tag, error)
	GetByID(ctx context.Context, id int64) (*domain.Tag, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	if !tag.Color.Valid() {
		return ErrTagInvalidColor
	}
	err := r.db.WithContext(ctx).Create(tag).Error
	if isUniqueViolation(err) {
		return ErrTagExists
	}
	return err
}

func (r *tagRepository) GetAll(ctx context.Context) ([]domain.Tag, error) {
	var tags []domain.Tag
	err := r.db.WithContext(ctx).Order("id DESC").Find(&tags).Error
	return tags, err
}

func (r *tagRepository) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	var tag domain.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Tag, error) {
	var tags []domain.Tag
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}
