package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"foodgram/internal/database"
	"foodgram/internal/domain"
	"foodgram/internal/middleware"
	"foodgram/internal/modules/auth"
	"foodgram/internal/modules/catalog"
	"foodgram/internal/modules/recipe"
	"foodgram/internal/modules/subscription"
	jwtsvc "foodgram/internal/pkg/jwt"
	"foodgram/internal/repository"
)

type E2ETestSuite struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtService *jwtsvc.Service
}

type TestResponse struct {
	Success bool         `json:"success"`
	Data    interface{}  `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// noopImages подменяет файловое хранилище, чтобы тесты не писали на диск.
type noopImages struct{}

func (noopImages) SaveBase64(string) (string, error) {
	return "/media/recipes/test.jpg", nil
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, database.Migrate(db), "Failed to migrate test database")

	userRepo := repository.NewUserRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	tagRepo := repository.NewTagRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	cartRepo := repository.NewCartRepository(db)
	followRepo := repository.NewFollowRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	authHandler := auth.NewHandler(auth.NewService(userRepo, jwtService))
	catalogHandler := catalog.NewHandler(tagRepo, ingredientRepo)

	recipeService := recipe.NewService(
		recipeRepo, ingredientRepo, tagRepo,
		favoriteRepo, cartRepo, followRepo,
		noopImages{}, 1, 0,
	)
	recipeHandler := recipe.NewHandler(recipeService, 100)

	subscriptionHandler := subscription.NewHandler(
		subscription.NewService(followRepo, userRepo, recipeRepo),
	)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")

	authHandler.RegisterRoutes(api)
	catalogHandler.RegisterRoutes(api)

	public := api.Group("/")
	public.Use(middleware.OptionalAuth(jwtService))

	protected := api.Group("/")
	protected.Use(middleware.RequireAuth(jwtService))

	recipeHandler.RegisterRoutes(public, protected)
	subscriptionHandler.RegisterRoutes(protected)

	return &E2ETestSuite{router: r, db: db, jwtService: jwtService}
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "Body: %s", w.Body.String())
	return &resp
}

func dataMap(t *testing.T, resp *TestResponse) map[string]interface{} {
	m, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "expected object in data, got %T", resp.Data)
	return m
}

// register + login, возвращает токен и id пользователя
func (s *E2ETestSuite) registerUser(t *testing.T, email, username string) (string, int64) {
	w := s.makeRequest("POST", "/api/auth/register", map[string]interface{}{
		"email":      email,
		"username":   username,
		"first_name": "Тест",
		"last_name":  "Тестов",
		"password":   "Password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "Body: %s", w.Body.String())

	w = s.makeRequest("POST", "/api/auth/login", map[string]interface{}{
		"email":    email,
		"password": "Password123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, "Body: %s", w.Body.String())

	data := dataMap(t, parseResponse(t, w))
	token, _ := data["auth_token"].(string)
	require.NotEmpty(t, token)

	user, _ := data["user"].(map[string]interface{})
	require.NotNil(t, user)
	return token, int64(user["id"].(float64))
}

func (s *E2ETestSuite) seedCatalog(t *testing.T) (ingredientIDs []int64, tagIDs []int64) {
	ingredients := []domain.Ingredient{
		{Name: "картофель", MeasurementUnit: "г"},
		{Name: "морковь", MeasurementUnit: "шт."},
	}
	for i := range ingredients {
		require.NoError(t, s.db.Create(&ingredients[i]).Error)
		ingredientIDs = append(ingredientIDs, ingredients[i].ID)
	}

	tags := []domain.Tag{
		{Name: "Обед", Color: domain.TagColorGreen, Slug: "lunch"},
		{Name: "Ужин", Color: domain.TagColorPurple, Slug: "dinner"},
	}
	for i := range tags {
		require.NoError(t, s.db.Create(&tags[i]).Error)
		tagIDs = append(tagIDs, tags[i].ID)
	}
	return ingredientIDs, tagIDs
}

func recipeBody(name string, ingredientIDs, tagIDs []int64) map[string]interface{} {
	ingredients := make([]map[string]interface{}, 0, len(ingredientIDs))
	for i, id := range ingredientIDs {
		ingredients = append(ingredients, map[string]interface{}{
			"id":     id,
			"amount": (i + 1) * 100,
		})
	}
	return map[string]interface{}{
		"name":         name,
		"text":         "как готовить",
		"cooking_time": 45,
		"tags":         tagIDs,
		"ingredients":  ingredients,
	}
}

func TestFlow_AuthAndRecipeLifecycle(t *testing.T) {
	suite := setupTestSuite(t)
	ingredientIDs, tagIDs := suite.seedCatalog(t)

	token, _ := suite.registerUser(t, "chef@test.com", "chef")

	var recipeID string

	t.Run("POST /recipes requires auth", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/recipes", recipeBody("Борщ", ingredientIDs, tagIDs), "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("POST /recipes", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/recipes", recipeBody("Борщ", ingredientIDs, tagIDs), token)
		require.Equal(t, http.StatusCreated, w.Code, "Body: %s", w.Body.String())

		data := dataMap(t, parseResponse(t, w))
		assert.Equal(t, "Борщ", data["name"])
		assert.Equal(t, false, data["is_favorited"])
		recipeID = fmt.Sprintf("%.0f", data["id"].(float64))

		author := data["author"].(map[string]interface{})
		assert.Equal(t, "chef", author["username"])
	})

	t.Run("POST /recipes rejects empty composition", func(t *testing.T) {
		body := recipeBody("Пустой", nil, tagIDs)
		w := suite.makeRequest("POST", "/api/recipes", body, token)
		require.Equal(t, http.StatusBadRequest, w.Code)

		resp := parseResponse(t, w)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
		assert.Equal(t, "нет ингредиентов", resp.Error.Message)
	})

	t.Run("GET /recipes/:id as anonymous", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/recipes/"+recipeID, nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		data := dataMap(t, parseResponse(t, w))
		assert.Equal(t, false, data["is_favorited"])
		assert.Equal(t, false, data["is_in_shopping_cart"])
	})

	t.Run("GET /recipes filtered by tag", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/recipes?tags=lunch", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		data := dataMap(t, parseResponse(t, w))
		assert.Equal(t, float64(1), data["count"])

		w = suite.makeRequest("GET", "/api/recipes?tags=breakfast", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		data = dataMap(t, parseResponse(t, w))
		assert.Equal(t, float64(0), data["count"])
	})

	t.Run("PATCH /recipes/:id by another user", func(t *testing.T) {
		otherToken, _ := suite.registerUser(t, "other@test.com", "other")
		w := suite.makeRequest("PATCH", "/api/recipes/"+recipeID, recipeBody("Чужой", ingredientIDs, tagIDs), otherToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("PATCH /recipes/:id replaces composition", func(t *testing.T) {
		body := recipeBody("Борщ по-новому", ingredientIDs[:1], tagIDs[1:])
		w := suite.makeRequest("PATCH", "/api/recipes/"+recipeID, body, token)
		require.Equal(t, http.StatusOK, w.Code, "Body: %s", w.Body.String())

		data := dataMap(t, parseResponse(t, w))
		assert.Equal(t, "Борщ по-новому", data["name"])
		assert.Len(t, data["ingredients"], 1)
		assert.Len(t, data["tags"], 1)
	})

	t.Run("DELETE /recipes/:id", func(t *testing.T) {
		w := suite.makeRequest("DELETE", "/api/recipes/"+recipeID, nil, token)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = suite.makeRequest("GET", "/api/recipes/"+recipeID, nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestFlow_FavoritesAndShoppingCart(t *testing.T) {
	suite := setupTestSuite(t)
	ingredientIDs, tagIDs := suite.seedCatalog(t)

	token, _ := suite.registerUser(t, "chef@test.com", "chef")

	w := suite.makeRequest("POST", "/api/recipes", recipeBody("Борщ", ingredientIDs, tagIDs), token)
	require.Equal(t, http.StatusCreated, w.Code)
	data := dataMap(t, parseResponse(t, w))
	recipeID := fmt.Sprintf("%.0f", data["id"].(float64))

	t.Run("POST /recipes/:id/favorite", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/recipes/"+recipeID+"/favorite", nil, token)
		require.Equal(t, http.StatusCreated, w.Code, "Body: %s", w.Body.String())

		// карточка краткая, без автора и состава
		card := dataMap(t, parseResponse(t, w))
		assert.Equal(t, "Борщ", card["name"])
		assert.NotContains(t, card, "author")
	})

	t.Run("POST /recipes/:id/favorite twice", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/recipes/"+recipeID+"/favorite", nil, token)
		require.Equal(t, http.StatusBadRequest, w.Code)

		resp := parseResponse(t, w)
		assert.Equal(t, "CONFLICT", resp.Error.Code)
		assert.Equal(t, "Рецепт уже был добавлен", resp.Error.Message)
	})

	t.Run("GET /recipes?is_favorited=1", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/recipes?is_favorited=1", nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		data := dataMap(t, parseResponse(t, w))
		assert.Equal(t, float64(1), data["count"])
		results := data["results"].([]interface{})
		first := results[0].(map[string]interface{})
		assert.Equal(t, true, first["is_favorited"])
	})

	t.Run("DELETE /recipes/:id/favorite twice", func(t *testing.T) {
		w := suite.makeRequest("DELETE", "/api/recipes/"+recipeID+"/favorite", nil, token)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = suite.makeRequest("DELETE", "/api/recipes/"+recipeID+"/favorite", nil, token)
		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, "Рецепт уже был удален", resp.Error.Message)
	})

	t.Run("shopping cart download", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/recipes/"+recipeID+"/shopping_cart", nil, token)
		require.Equal(t, http.StatusCreated, w.Code, "Body: %s", w.Body.String())

		w = suite.makeRequest("GET", "/api/recipes/download_shopping_cart", nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		assert.Contains(t, w.Header().Get("Content-Disposition"), "shop_list.txt")
		body := w.Body.String()
		assert.Contains(t, body, "Список покупок")
		assert.Contains(t, body, "1. картофель -100 г")
		assert.Contains(t, body, "2. морковь -200 шт.")
	})
}

func TestFlow_Subscriptions(t *testing.T) {
	suite := setupTestSuite(t)
	ingredientIDs, tagIDs := suite.seedCatalog(t)

	chefToken, chefID := suite.registerUser(t, "chef@test.com", "chef")
	readerToken, _ := suite.registerUser(t, "reader@test.com", "reader")

	w := suite.makeRequest("POST", "/api/recipes", recipeBody("Борщ", ingredientIDs, tagIDs), chefToken)
	require.Equal(t, http.StatusCreated, w.Code)

	chefPath := fmt.Sprintf("/api/users/%d/subscribe", chefID)

	t.Run("subscribe to self", func(t *testing.T) {
		w := suite.makeRequest("POST", chefPath, nil, chefToken)
		require.Equal(t, http.StatusBadRequest, w.Code)

		resp := parseResponse(t, w)
		assert.Equal(t, "Вы не можете подписаться на самого себя", resp.Error.Message)
	})

	t.Run("subscribe and list", func(t *testing.T) {
		w := suite.makeRequest("POST", chefPath, nil, readerToken)
		require.Equal(t, http.StatusCreated, w.Code, "Body: %s", w.Body.String())

		data := dataMap(t, parseResponse(t, w))
		assert.Equal(t, "chef", data["username"])
		assert.Equal(t, true, data["is_subscribed"])
		assert.Equal(t, float64(1), data["recipes_count"])

		w = suite.makeRequest("GET", "/api/users/subscriptions", nil, readerToken)
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		list, ok := resp.Data.([]interface{})
		require.True(t, ok)
		require.Len(t, list, 1)
	})

	t.Run("subscribe twice", func(t *testing.T) {
		w := suite.makeRequest("POST", chefPath, nil, readerToken)
		require.Equal(t, http.StatusBadRequest, w.Code)

		resp := parseResponse(t, w)
		assert.Equal(t, "CONFLICT", resp.Error.Code)
	})

	t.Run("unsubscribe twice", func(t *testing.T) {
		w := suite.makeRequest("DELETE", chefPath, nil, readerToken)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = suite.makeRequest("DELETE", chefPath, nil, readerToken)
		require.Equal(t, http.StatusNotFound, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, "Автор не в подписках.", resp.Error.Message)
	})
}

func TestFlow_Catalog(t *testing.T) {
	suite := setupTestSuite(t)
	suite.seedCatalog(t)

	t.Run("GET /tags", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/tags", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		tags, ok := resp.Data.([]interface{})
		require.True(t, ok)
		assert.Len(t, tags, 2)
	})

	t.Run("GET /ingredients?name=", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/ingredients?name=карт", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		found, ok := resp.Data.([]interface{})
		require.True(t, ok)
		require.Len(t, found, 1)
		first := found[0].(map[string]interface{})
		assert.Equal(t, "картофель", first["name"])
	})

	t.Run("GET /tags/:id not found", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/tags/999", nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
