package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"foodgram/internal/domain"
)

var (
	ErrCartItemExists   = errors.New("recipe already in shopping cart")
	ErrCartItemNotFound = errors.New("cart item not found")
)

// ShoppingListItem — агрегированная строка списка покупок: количества
// суммируются по паре (название, единица измерения), не по id ингредиента.
type ShoppingListItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	TotalAmount     int    `json:"total_amount"`
}

type CartRepository interface {
	Add(ctx context.Context, userID, recipeID int64) error
	Remove(ctx context.Context, userID, recipeID int64) error
	Exists(ctx context.Context, userID, recipeID int64) (bool, error)
	RecipeIDs(ctx context.Context, userID int64) ([]int64, error)
	AggregateIngredients(ctx context.Context, userID int64) ([]ShoppingListItem, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Add(ctx context.Context, userID, recipeID int64) error {
	item := &domain.CartItem{
		UserID:   userID,
		RecipeID: recipeID,
	}

	err := r.db.WithContext(ctx).Create(item).Error
	if isUniqueViolation(err) {
		return ErrCartItemExists
	}
	return err
}

func (r *cartRepository) Remove(ctx context.Context, userID, recipeID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&domain.CartItem{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *cartRepository) Exists(ctx context.Context, userID, recipeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.CartItem{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

func (r *cartRepository) RecipeIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&domain.CartItem{}).
		Where("user_id = ?", userID).
		Pluck("recipe_id", &ids).Error
	return ids, err
}

// AggregateIngredients собирает состав всех рецептов из корзины
// пользователя и суммирует количества по (название, единица измерения).
// Пустая корзина — пустой список, не ошибка.
func (r *cartRepository) AggregateIngredients(ctx context.Context, userID int64) ([]ShoppingListItem, error) {
	var items []ShoppingListItem
	err := r.db.WithContext(ctx).
		Model(&domain.IngredientAmount{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(ingredient_amounts.amount) AS total_amount").
		Joins("JOIN ingredients ON ingredients.id = ingredient_amounts.ingredient_id").
		Joins("JOIN cart_items ON cart_items.recipe_id = ingredient_amounts.recipe_id").
		Where("cart_items.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name ASC").
		Scan(&items).Error
	return items, err
}
