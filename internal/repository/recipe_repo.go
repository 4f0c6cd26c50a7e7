package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"foodgram/internal/domain"
)

// RecipeFilters — необязательные фильтры списка рецептов, комбинируются
// через AND. Нулевые значения означают "фильтр не применён".
type RecipeFilters struct {
	AuthorID    int64
	TagSlugs    []string // slug-и тегов, внутри набора — OR
	FavoritedBy int64    // id пользователя, 0 = не применять
	InCartOf    int64    // id пользователя, 0 = не применять
	Limit       int
	Offset      int
}

type RecipeRepository interface {
	Create(ctx context.Context, recipe *domain.Recipe, tags []domain.Tag, ingredients []domain.IngredientAmount) error
	Update(ctx context.Context, recipe *domain.Recipe, tags []domain.Tag, ingredients []domain.IngredientAmount) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Recipe, error)
	GetAll(ctx context.Context, f RecipeFilters) ([]domain.Recipe, int64, error)
	GetByAuthorID(ctx context.Context, authorID int64, limit int) ([]domain.Recipe, error)
	CountByAuthorID(ctx context.Context, authorID int64) (int64, error)
}

type recipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// Create сохраняет рецепт вместе с тегами и составом в одной транзакции.
func (r *recipeRepository) Create(ctx context.Context, recipe *domain.Recipe, tags []domain.Tag, ingredients []domain.IngredientAmount) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}

		if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
			return err
		}

		return createIngredientRows(tx, recipe.ID, ingredients)
	})
}

// Update сохраняет скалярные поля и заменяет теги и состав целиком:
// старые строки состава удаляются, новые вставляются. Ингредиент,
// не вошедший в запрос, из рецепта пропадает.
func (r *recipeRepository) Update(ctx context.Context, recipe *domain.Recipe, tags []domain.Tag, ingredients []domain.IngredientAmount) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(recipe).Error; err != nil {
			return err
		}

		if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&domain.IngredientAmount{}).Error; err != nil {
			return err
		}

		return createIngredientRows(tx, recipe.ID, ingredients)
	})
}

func createIngredientRows(tx *gorm.DB, recipeID int64, ingredients []domain.IngredientAmount) error {
	if len(ingredients) == 0 {
		return nil
	}
	for i := range ingredients {
		ingredients[i].ID = 0
		ingredients[i].RecipeID = recipeID
	}
	return tx.Create(&ingredients).Error
}

// Delete удаляет рецепт и всё, что на него ссылается: состав, избранное,
// корзины, связи с тегами. Справочники не затрагиваются.
func (r *recipeRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&domain.IngredientAmount{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&domain.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&domain.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Recipe{ID: id}).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&domain.Recipe{}, id).Error
	})
}

func (r *recipeRepository) GetByID(ctx context.Context, id int64) (*domain.Recipe, error) {
	var recipe domain.Recipe
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&recipe, id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// GetAll возвращает страницу рецептов (новые сверху) и общее количество
// под теми же фильтрами.
func (r *recipeRepository) GetAll(ctx context.Context, f RecipeFilters) ([]domain.Recipe, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Recipe{})

	if f.AuthorID > 0 {
		query = query.Where("author_id = ?", f.AuthorID)
	}

	if len(f.TagSlugs) > 0 {
		tagged := r.db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", f.TagSlugs)
		query = query.Where("recipes.id IN (?)", tagged)
	}

	if f.FavoritedBy > 0 {
		favorited := r.db.Model(&domain.Favorite{}).
			Select("recipe_id").
			Where("user_id = ?", f.FavoritedBy)
		query = query.Where("recipes.id IN (?)", favorited)
	}

	if f.InCartOf > 0 {
		inCart := r.db.Model(&domain.CartItem{}).
			Select("recipe_id").
			Where("user_id = ?", f.InCartOf)
		query = query.Where("recipes.id IN (?)", inCart)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Order("recipes.id DESC")

	if f.Limit > 0 {
		query = query.Limit(f.Limit).Offset(f.Offset)
	}

	var recipes []domain.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, total, nil
}

func (r *recipeRepository) GetByAuthorID(ctx context.Context, authorID int64, limit int) ([]domain.Recipe, error) {
	query := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var recipes []domain.Recipe
	err := query.Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepository) CountByAuthorID(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}
