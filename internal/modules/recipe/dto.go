package recipe

import "foodgram/internal/domain"

// IngredientEntry — строка состава в запросе на создание/обновление.
type IngredientEntry struct {
	ID     int64 `json:"id"`
	Amount int   `json:"amount"`
}

type CreateRecipeRequest struct {
	Name        string            `json:"name" binding:"required"`
	Image       string            `json:"image"` // base64 data URL
	Text        string            `json:"text"`
	CookingTime int               `json:"cooking_time"`
	Tags        []int64           `json:"tags"`
	Ingredients []IngredientEntry `json:"ingredients"`
}

type ListQuery struct {
	AuthorID         int64
	TagSlugs         []string
	IsFavorited      bool
	IsInShoppingCart bool
	Page             int
	Limit            int
}

type AuthorResponse struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

type IngredientAmountResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeResponse — полное чтение рецепта. IsFavorited и IsInShoppingCart
// считаются для конкретного читателя и для анонима всегда false.
type RecipeResponse struct {
	ID               int64                      `json:"id"`
	Author           AuthorResponse             `json:"author"`
	Tags             []domain.Tag               `json:"tags"`
	Ingredients      []IngredientAmountResponse `json:"ingredients"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	CookingTime      int                        `json:"cooking_time"`
}

// CompactRecipeResponse — краткая карточка, возвращается из toggle-операций.
type CompactRecipeResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

type RecipeListResponse struct {
	Count   int64            `json:"count"`
	Results []RecipeResponse `json:"results"`
}

func toAuthorResponse(u *domain.User, isSubscribed bool) AuthorResponse {
	if u == nil {
		return AuthorResponse{}
	}
	return AuthorResponse{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: isSubscribed,
	}
}

func toRecipeResponse(r *domain.Recipe, isFavorited, isInCart, isSubscribed bool) RecipeResponse {
	ingredients := make([]IngredientAmountResponse, 0, len(r.Ingredients))
	for _, ia := range r.Ingredients {
		item := IngredientAmountResponse{
			ID:     ia.IngredientID,
			Amount: ia.Amount,
		}
		if ia.Ingredient != nil {
			item.Name = ia.Ingredient.Name
			item.MeasurementUnit = ia.Ingredient.MeasurementUnit
		}
		ingredients = append(ingredients, item)
	}

	tags := r.Tags
	if tags == nil {
		tags = []domain.Tag{}
	}

	return RecipeResponse{
		ID:               r.ID,
		Author:           toAuthorResponse(r.Author, isSubscribed),
		Tags:             tags,
		Ingredients:      ingredients,
		Name:             r.Name,
		Image:            r.Image,
		Text:             r.Text,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInCart,
		CookingTime:      r.CookingTime,
	}
}

func toCompactResponse(r *domain.Recipe) CompactRecipeResponse {
	return CompactRecipeResponse{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}
