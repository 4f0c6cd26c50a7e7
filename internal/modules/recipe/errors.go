package recipe

import "errors"

// Тексты пользовательских ошибок соответствуют историческому API
// и завязаны на клиентов, поэтому не переводятся.
var (
	ErrNoIngredients       = errors.New("нет ингредиентов")
	ErrIngredientDuplicate = errors.New("Ингредиент уже добавлен")
	ErrAmountTooSmall      = errors.New("количества слишком мало")
	ErrCookingTimeTooSmall = errors.New("время слишком мало")
	ErrInvalidImage        = errors.New("некорректное изображение")

	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrTagNotFound        = errors.New("tag not found")
	ErrNotAuthor          = errors.New("only the author can modify the recipe")

	ErrAlreadyAdded   = errors.New("Рецепт уже был добавлен")
	ErrAlreadyRemoved = errors.New("Рецепт уже был удален")
)
