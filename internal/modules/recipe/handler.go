package recipe

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"foodgram/internal/pkg/response"
)

type Handler struct {
	service      *Service
	maxPageLimit int
}

func NewHandler(service *Service, maxPageLimit int) *Handler {
	if maxPageLimit <= 0 {
		maxPageLimit = 100
	}
	return &Handler{service: service, maxPageLimit: maxPageLimit}
}

// RegisterRoutes вешает чтение на группу с опциональной авторизацией,
// запись и toggle-операции — на защищённую.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/recipes", h.List)
	public.GET("/recipes/:id", h.Get)

	protected.POST("/recipes", h.Create)
	protected.PATCH("/recipes/:id", h.Update)
	protected.DELETE("/recipes/:id", h.Delete)

	protected.POST("/recipes/:id/favorite", h.AddFavorite)
	protected.DELETE("/recipes/:id/favorite", h.RemoveFavorite)
	protected.POST("/recipes/:id/shopping_cart", h.AddToCart)
	protected.DELETE("/recipes/:id/shopping_cart", h.RemoveFromCart)
	protected.GET("/recipes/download_shopping_cart", h.DownloadShoppingCart)
}

func (h *Handler) List(c *gin.Context) {
	q := ListQuery{
		TagSlugs: c.QueryArray("tags"),
		Page:     1,
		Limit:    20,
	}

	if author := c.Query("author"); author != "" {
		if id, err := strconv.ParseInt(author, 10, 64); err == nil && id > 0 {
			q.AuthorID = id
		}
	}
	q.IsFavorited = parseBoolParam(c.Query("is_favorited"))
	q.IsInShoppingCart = parseBoolParam(c.Query("is_in_shopping_cart"))

	if page := c.Query("page"); page != "" {
		if val, err := strconv.Atoi(page); err == nil && val > 0 {
			q.Page = val
		}
	}
	if limit := c.Query("limit"); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil && val > 0 && val <= h.maxPageLimit {
			q.Limit = val
		}
	}

	result, err := h.service.List(c.Request.Context(), viewerID(c), q)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Get(c *gin.Context) {
	recipeID, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.service.Get(c.Request.Context(), recipeID, viewerID(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), viewerID(c), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

func (h *Handler) Update(c *gin.Context) {
	recipeID, ok := parseID(c)
	if !ok {
		return
	}

	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	result, err := h.service.Update(c.Request.Context(), recipeID, viewerID(c), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Delete(c *gin.Context) {
	recipeID, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), recipeID, viewerID(c)); err != nil {
		h.handleError(c, err)
		return
	}

	response.NoContent(c)
}

func (h *Handler) AddFavorite(c *gin.Context) {
	h.addRelation(c, h.service.AddFavorite)
}

func (h *Handler) RemoveFavorite(c *gin.Context) {
	h.removeRelation(c, h.service.RemoveFavorite)
}

func (h *Handler) AddToCart(c *gin.Context) {
	h.addRelation(c, h.service.AddToCart)
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	h.removeRelation(c, h.service.RemoveFromCart)
}

// DownloadShoppingCart отдаёт агрегированный список покупок текстовым
// вложением shop_list.txt.
func (h *Handler) DownloadShoppingCart(c *gin.Context) {
	items, err := h.service.ShoppingList(c.Request.Context(), viewerID(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+ShoppingListFilename)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(RenderShoppingList(items)))
}

func (h *Handler) addRelation(c *gin.Context, add func(ctx context.Context, userID, recipeID int64) (*CompactRecipeResponse, error)) {
	recipeID, ok := parseID(c)
	if !ok {
		return
	}

	result, err := add(c.Request.Context(), viewerID(c), recipeID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

func (h *Handler) removeRelation(c *gin.Context, remove func(ctx context.Context, userID, recipeID int64) error) {
	recipeID, ok := parseID(c)
	if !ok {
		return
	}

	if err := remove(c.Request.Context(), viewerID(c), recipeID); err != nil {
		h.handleError(c, err)
		return
	}

	response.NoContent(c)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrRecipeNotFound),
		errors.Is(err, ErrIngredientNotFound),
		errors.Is(err, ErrTagNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrNotAuthor):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrAlreadyAdded), errors.Is(err, ErrAlreadyRemoved):
		response.Error(c, http.StatusBadRequest, "CONFLICT", err.Error())
	case errors.Is(err, ErrNoIngredients),
		errors.Is(err, ErrIngredientDuplicate),
		errors.Is(err, ErrAmountTooSmall),
		errors.Is(err, ErrCookingTimeTooSmall),
		errors.Is(err, ErrInvalidImage):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal server error")
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid recipe ID")
		return 0, false
	}
	return id, true
}

func viewerID(c *gin.Context) int64 {
	return c.GetInt64("user_id")
}

func parseBoolParam(v string) bool {
	return v == "1" || v == "true" || v == "True"
}
