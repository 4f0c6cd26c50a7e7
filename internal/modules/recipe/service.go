package recipe

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"foodgram/internal/domain"
	"foodgram/internal/repository"
)

// ImageStore сохраняет base64-картинку и возвращает её публичный URL.
type ImageStore interface {
	SaveBase64(data string) (string, error)
}

type Service struct {
	recipes     repository.RecipeRepository
	ingredients repository.IngredientRepository
	tags        repository.TagRepository
	favorites   repository.FavoriteRepository
	cart        repository.CartRepository
	follows     repository.FollowRepository
	images      ImageStore

	minCookingTime      int
	minIngredientAmount int // исключающий порог: amount <= порога — ошибка
}

func NewService(
	recipes repository.RecipeRepository,
	ingredients repository.IngredientRepository,
	tags repository.TagRepository,
	favorites repository.FavoriteRepository,
	cart repository.CartRepository,
	follows repository.FollowRepository,
	images ImageStore,
	minCookingTime int,
	minIngredientAmount int,
) *Service {
	return &Service{
		recipes:             recipes,
		ingredients:         ingredients,
		tags:                tags,
		favorites:           favorites,
		cart:                cart,
		follows:             follows,
		images:              images,
		minCookingTime:      minCookingTime,
		minIngredientAmount: minIngredientAmount,
	}
}

// validateInput прогоняет все проверки до единственной записи в базу.
func (s *Service) validateInput(ctx context.Context, req CreateRecipeRequest) ([]domain.IngredientAmount, []domain.Tag, error) {
	if len(req.Ingredients) == 0 {
		return nil, nil, ErrNoIngredients
	}

	seen := make(map[int64]bool, len(req.Ingredients))
	ids := make([]int64, 0, len(req.Ingredients))
	for _, entry := range req.Ingredients {
		if seen[entry.ID] {
			return nil, nil, ErrIngredientDuplicate
		}
		seen[entry.ID] = true
		ids = append(ids, entry.ID)

		if entry.Amount <= s.minIngredientAmount {
			return nil, nil, ErrAmountTooSmall
		}
	}

	if req.CookingTime < s.minCookingTime {
		return nil, nil, ErrCookingTimeTooSmall
	}

	existing, err := s.ingredients.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	if len(existing) != len(ids) {
		return nil, nil, ErrIngredientNotFound
	}

	var tags []domain.Tag
	if len(req.Tags) > 0 {
		tags, err = s.tags.GetByIDs(ctx, req.Tags)
		if err != nil {
			return nil, nil, err
		}
		if len(tags) != len(uniqueIDs(req.Tags)) {
			return nil, nil, ErrTagNotFound
		}
	}

	rows := make([]domain.IngredientAmount, 0, len(req.Ingredients))
	for _, entry := range req.Ingredients {
		rows = append(rows, domain.IngredientAmount{
			IngredientID: entry.ID,
			Amount:       entry.Amount,
		})
	}

	return rows, tags, nil
}

func (s *Service) Create(ctx context.Context, authorID int64, req CreateRecipeRequest) (*RecipeResponse, error) {
	rows, tags, err := s.validateInput(ctx, req)
	if err != nil {
		return nil, err
	}

	imageURL := ""
	if req.Image != "" {
		imageURL, err = s.images.SaveBase64(req.Image)
		if err != nil {
			return nil, ErrInvalidImage
		}
	}

	recipe := &domain.Recipe{
		AuthorID:    authorID,
		Name:        req.Name,
		Image:       imageURL,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}

	if err := s.recipes.Create(ctx, recipe, tags, rows); err != nil {
		return nil, err
	}

	return s.Get(ctx, recipe.ID, authorID)
}

func (s *Service) Update(ctx context.Context, recipeID, actorID int64, req CreateRecipeRequest) (*RecipeResponse, error) {
	existing, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if existing.AuthorID != actorID {
		return nil, ErrNotAuthor
	}

	rows, tags, err := s.validateInput(ctx, req)
	if err != nil {
		return nil, err
	}

	if req.Image != "" {
		imageURL, err := s.images.SaveBase64(req.Image)
		if err != nil {
			return nil, ErrInvalidImage
		}
		existing.Image = imageURL
	}

	existing.Name = req.Name
	existing.Text = req.Text
	existing.CookingTime = req.CookingTime
	existing.Tags = nil
	existing.Ingredients = nil

	if err := s.recipes.Update(ctx, existing, tags, rows); err != nil {
		return nil, err
	}

	return s.Get(ctx, recipeID, actorID)
}

func (s *Service) Delete(ctx context.Context, recipeID, actorID int64) error {
	existing, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	if existing.AuthorID != actorID {
		return ErrNotAuthor
	}
	return s.recipes.Delete(ctx, recipeID)
}

// Get возвращает рецепт глазами viewerID; 0 означает анонима.
func (s *Service) Get(ctx context.Context, recipeID, viewerID int64) (*RecipeResponse, error) {
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	isFavorited, isInCart, isSubscribed := false, false, false
	if viewerID > 0 {
		if isFavorited, err = s.favorites.Exists(ctx, viewerID, recipeID); err != nil {
			return nil, err
		}
		if isInCart, err = s.cart.Exists(ctx, viewerID, recipeID); err != nil {
			return nil, err
		}
		if isSubscribed, err = s.follows.Exists(ctx, viewerID, recipe.AuthorID); err != nil {
			return nil, err
		}
	}

	resp := toRecipeResponse(recipe, isFavorited, isInCart, isSubscribed)
	return &resp, nil
}

// List отдаёт страницу рецептов под фильтрами запроса. Фильтры
// is_favorited / is_in_shopping_cart для анонима не применяются.
func (s *Service) List(ctx context.Context, viewerID int64, q ListQuery) (*RecipeListResponse, error) {
	filters := repository.RecipeFilters{
		AuthorID: q.AuthorID,
		TagSlugs: q.TagSlugs,
		Limit:    q.Limit,
		Offset:   (q.Page - 1) * q.Limit,
	}
	if viewerID > 0 {
		if q.IsFavorited {
			filters.FavoritedBy = viewerID
		}
		if q.IsInShoppingCart {
			filters.InCartOf = viewerID
		}
	}

	recipes, total, err := s.recipes.GetAll(ctx, filters)
	if err != nil {
		return nil, err
	}

	var favoriteSet, cartSet, followSet map[int64]bool
	if viewerID > 0 {
		if favoriteSet, err = idSet(s.favorites.RecipeIDs(ctx, viewerID)); err != nil {
			return nil, err
		}
		if cartSet, err = idSet(s.cart.RecipeIDs(ctx, viewerID)); err != nil {
			return nil, err
		}
		if followSet, err = idSet(s.follows.AuthorIDs(ctx, viewerID)); err != nil {
			return nil, err
		}
	}

	results := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		r := &recipes[i]
		results = append(results, toRecipeResponse(
			r,
			favoriteSet[r.ID],
			cartSet[r.ID],
			followSet[r.AuthorID],
		))
	}

	return &RecipeListResponse{Count: total, Results: results}, nil
}

// AddFavorite / AddToCart: повторное добавление — конфликт, не no-op.
func (s *Service) AddFavorite(ctx context.Context, userID, recipeID int64) (*CompactRecipeResponse, error) {
	return s.addRelation(ctx, userID, recipeID, s.favorites.Add, repository.ErrFavoriteExists)
}

func (s *Service) RemoveFavorite(ctx context.Context, userID, recipeID int64) error {
	err := s.favorites.Remove(ctx, userID, recipeID)
	if errors.Is(err, repository.ErrFavoriteNotFound) {
		return ErrAlreadyRemoved
	}
	return err
}

func (s *Service) AddToCart(ctx context.Context, userID, recipeID int64) (*CompactRecipeResponse, error) {
	return s.addRelation(ctx, userID, recipeID, s.cart.Add, repository.ErrCartItemExists)
}

func (s *Service) RemoveFromCart(ctx context.Context, userID, recipeID int64) error {
	err := s.cart.Remove(ctx, userID, recipeID)
	if errors.Is(err, repository.ErrCartItemNotFound) {
		return ErrAlreadyRemoved
	}
	return err
}

func (s *Service) addRelation(
	ctx context.Context,
	userID, recipeID int64,
	add func(context.Context, int64, int64) error,
	existsErr error,
) (*CompactRecipeResponse, error) {
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	if err := add(ctx, userID, recipeID); err != nil {
		if errors.Is(err, existsErr) {
			return nil, ErrAlreadyAdded
		}
		return nil, err
	}

	resp := toCompactResponse(recipe)
	return &resp, nil
}

// ShoppingList агрегирует состав рецептов в корзине пользователя.
func (s *Service) ShoppingList(ctx context.Context, userID int64) ([]repository.ShoppingListItem, error) {
	return s.cart.AggregateIngredients(ctx, userID)
}

func (s *Service) getRecipe(ctx context.Context, id int64) (*domain.Recipe, error) {
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

func idSet(ids []int64, err error) (map[int64]bool, error) {
	if err != nil {
		return nil, err
	}
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	return unique
}
