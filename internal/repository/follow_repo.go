package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"foodgram/internal/domain"
)

var (
	ErrFollowExists   = errors.New("already following this author")
	ErrFollowNotFound = errors.New("follow not found")
)

type FollowRepository interface {
	Add(ctx context.Context, userID, authorID int64) error
	Remove(ctx context.Context, userID, authorID int64) error
	Exists(ctx context.Context, userID, authorID int64) (bool, error)
	AuthorIDs(ctx context.Context, userID int64) ([]int64, error)
	ListByUserID(ctx context.Context, userID int64) ([]domain.Follow, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Add(ctx context.Context, userID, authorID int64) error {
	follow := &domain.Follow{
		UserID:   userID,
		AuthorID: authorID,
	}

	err := r.db.WithContext(ctx).Create(follow).Error
	if isUniqueViolation(err) {
		return ErrFollowExists
	}
	return err
}

func (r *followRepository) Remove(ctx context.Context, userID, authorID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&domain.Follow{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFollowNotFound
	}
	return nil
}

func (r *followRepository) Exists(ctx context.Context, userID, authorID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, err
}

func (r *followRepository) AuthorIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&domain.Follow{}).
		Where("user_id = ?", userID).
		Pluck("author_id", &ids).Error
	return ids, err
}

// ListByUserID возвращает подписки пользователя вместе с авторами,
// новые сверху.
func (r *followRepository) ListByUserID(ctx context.Context, userID int64) ([]domain.Follow, error) {
	var follows []domain.Follow
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Author").
		Order("created_at DESC").
		Find(&follows).Error
	return follows, err
}
