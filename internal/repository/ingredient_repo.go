package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"foodgram/internal/domain"
)

// ErrIngredientExists возвращается при попытке вставить дубликат пары
// (название, единица измерения). Сидер логирует и пропускает такие строки.
var ErrIngredientExists = errors.New("ingredient already exists")

type IngredientRepository interface {
	Create(ctx context.Context, ingredient *domain.Ingredient) error
	GetByID(ctx context.Context, id int64) (*domain.Ingredient, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Ingredient, error)
	Search(ctx context.Context, namePrefix string) ([]domain.Ingredient, error)
}

type ingredientRepository struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) Create(ctx context.Context, ingredient *domain.Ingredient) error {
	err := r.db.WithContext(ctx).Create(ingredient).Error
	if isUniqueViolation(err) {
		return ErrIngredientExists
	}
	return err
}

func (r *ingredientRepository) GetByID(ctx context.Context, id int64) (*domain.Ingredient, error) {
	var ingredient domain.Ingredient
	if err := r.db.WithContext(ctx).First(&ingredient, id).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Ingredient, error) {
	var ingredients []domain.Ingredient
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ingredients).Error
	return ingredients, err
}

// Search возвращает ингредиенты по префиксу названия (автодополнение).
// Регистр не учитывается.
func (r *ingredientRepository) Search(ctx context.Context, namePrefix string) ([]domain.Ingredient, error) {
	var ingredients []domain.Ingredient
	query := r.db.WithContext(ctx).Order("name ASC")
	if namePrefix != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", namePrefix+"%")
	}
	err := query.Find(&ingredients).Error
	return ingredients, err
}
