package subscription

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"foodgram/internal/domain"
	"foodgram/internal/repository"
)

type Service struct {
	follows repository.FollowRepository
	users   repository.UserRepository
	recipes repository.RecipeRepository
}

func NewService(
	follows repository.FollowRepository,
	users repository.UserRepository,
	recipes repository.RecipeRepository,
) *Service {
	return &Service{follows: follows, users: users, recipes: recipes}
}

// Subscribe подписывает пользователя на автора. Подписка на себя и
// повторная подписка — ошибки, проверяются до записи.
func (s *Service) Subscribe(ctx context.Context, userID, authorID int64) (*SubscriptionResponse, error) {
	if userID == authorID {
		return nil, ErrSelfFollow
	}

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthorNotFound
		}
		return nil, err
	}

	if err := s.follows.Add(ctx, userID, authorID); err != nil {
		if errors.Is(err, repository.ErrFollowExists) {
			return nil, ErrAlreadyFollowing
		}
		return nil, err
	}

	return s.authorView(ctx, author, 0)
}

func (s *Service) Unsubscribe(ctx context.Context, userID, authorID int64) error {
	err := s.follows.Remove(ctx, userID, authorID)
	if errors.Is(err, repository.ErrFollowNotFound) {
		return ErrNotFollowing
	}
	return err
}

// List возвращает всех авторов из подписок пользователя; recipesLimit
// ограничивает число рецептов на автора, 0 — без ограничения.
func (s *Service) List(ctx context.Context, userID int64, recipesLimit int) ([]SubscriptionResponse, error) {
	follows, err := s.follows.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]SubscriptionResponse, 0, len(follows))
	for _, f := range follows {
		view, err := s.authorView(ctx, f.Author, recipesLimit)
		if err != nil {
			return nil, err
		}
		result = append(result, *view)
	}

	return result, nil
}

func (s *Service) authorView(ctx context.Context, author *domain.User, recipesLimit int) (*SubscriptionResponse, error) {
	if author == nil {
		return nil, ErrAuthorNotFound
	}

	recipes, err := s.recipes.GetByAuthorID(ctx, author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}

	count, err := s.recipes.CountByAuthorID(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	resp := toSubscriptionResponse(author, recipes, count)
	return &resp, nil
}
