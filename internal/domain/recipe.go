package domain

import "time"

// Recipe — агрегат рецепта. Строки IngredientAmount принадлежат рецепту
// и живут только вместе с ним: при обновлении состав заменяется целиком,
// при удалении рецепта строки удаляются каскадом.
type Recipe struct {
	ID          int64  `json:"id" gorm:"primaryKey"`
	AuthorID    int64  `json:"author_id" gorm:"not null;index"`
	Name        string `json:"name" gorm:"size:200;not null"`
	Image       string `json:"image" gorm:"size:500"`
	Text        string `json:"text" gorm:"type:text"`
	CookingTime int    `json:"cooking_time" gorm:"not null"`

	Author      *User              `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Ingredients []IngredientAmount `json:"ingredients,omitempty" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Tags        []Tag              `json:"tags,omitempty" gorm:"many2many:recipe_tags"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (Recipe) TableName() string { return "recipes" }

// IngredientAmount — количество ингредиента в рецепте.
// Один и тот же ингредиент не может входить в рецепт дважды.
type IngredientAmount struct {
	ID           int64 `json:"id" gorm:"primaryKey"`
	RecipeID     int64 `json:"recipe_id" gorm:"not null;index;uniqueIndex:idx_recipe_ingredient"`
	IngredientID int64 `json:"ingredient_id" gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	Amount       int   `json:"amount" gorm:"not null"`

	Ingredient *Ingredient `json:"ingredient,omitempty" gorm:"foreignKey:IngredientID"`
}

func (IngredientAmount) TableName() string { return "ingredient_amounts" }
