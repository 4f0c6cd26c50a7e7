package subscription

import "foodgram/internal/domain"

// RecipeBrief — краткая карточка рецепта автора в списке подписок.
type RecipeBrief struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// SubscriptionResponse — автор из подписок вместе с его рецептами.
// IsSubscribed в этом контексте всегда true.
type SubscriptionResponse struct {
	ID           int64         `json:"id"`
	Email        string        `json:"email"`
	Username     string        `json:"username"`
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	IsSubscribed bool          `json:"is_subscribed"`
	Recipes      []RecipeBrief `json:"recipes"`
	RecipesCount int64         `json:"recipes_count"`
}

func toSubscriptionResponse(author *domain.User, recipes []domain.Recipe, recipesCount int64) SubscriptionResponse {
	briefs := make([]RecipeBrief, 0, len(recipes))
	for _, r := range recipes {
		briefs = append(briefs, RecipeBrief{
			ID:          r.ID,
			Name:        r.Name,
			Image:       r.Image,
			CookingTime: r.CookingTime,
		})
	}

	resp := SubscriptionResponse{
		IsSubscribed: true,
		Recipes:      briefs,
		RecipesCount: recipesCount,
	}
	if author != nil {
		resp.ID = author.ID
		resp.Email = author.Email
		resp.Username = author.Username
		resp.FirstName = author.FirstName
		resp.LastName = author.LastName
	}
	return resp
}
