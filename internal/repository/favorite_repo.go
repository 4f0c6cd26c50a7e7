package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"foodgram/internal/domain"
)

var (
	ErrFavoriteExists   = errors.New("recipe already in favorites")
	ErrFavoriteNotFound = errors.New("favorite not found")
)

type FavoriteRepository interface {
	Add(ctx context.Context, userID, recipeID int64) error
	Remove(ctx context.Context, userID, recipeID int64) error
	Exists(ctx context.Context, userID, recipeID int64) (bool, error)
	RecipeIDs(ctx context.Context, userID int64) ([]int64, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Add вставляет пару (user, recipe). Гонки разрешает уникальный индекс:
// проигравшая вставка получает ErrFavoriteExists, дубликат не возникает.
func (r *favoriteRepository) Add(ctx context.Context, userID, recipeID int64) error {
	favorite := &domain.Favorite{
		UserID:   userID,
		RecipeID: recipeID,
	}

	err := r.db.WithContext(ctx).Create(favorite).Error
	if isUniqueViolation(err) {
		return ErrFavoriteExists
	}
	return err
}

// Remove удаляет пару. Если её не было — ErrFavoriteNotFound.
func (r *favoriteRepository) Remove(ctx context.Context, userID, recipeID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&domain.Favorite{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, recipeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

// RecipeIDs возвращает id всех избранных рецептов пользователя.
// Используется для проекции is_favorited в списках без запроса на строку.
func (r *favoriteRepository) RecipeIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&domain.Favorite{}).
		Where("user_id = ?", userID).
		Pluck("recipe_id", &ids).Error
	return ids, err
}
