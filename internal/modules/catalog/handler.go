package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"foodgram/internal/pkg/response"
	"foodgram/internal/repository"
)

// Handler отдаёт справочники тегов и ингредиентов. Оба — только чтение:
// наполняются сидером, через API не меняются.
type Handler struct {
	tags        repository.TagRepository
	ingredients repository.IngredientRepository
}

func NewHandler(tags repository.TagRepository, ingredients repository.IngredientRepository) *Handler {
	return &Handler{tags: tags, ingredients: ingredients}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/tags", h.GetTags)
	rg.GET("/tags/:id", h.GetTagByID)
	rg.GET("/ingredients", h.SearchIngredients)
	rg.GET("/ingredients/:id", h.GetIngredientByID)
}

func (h *Handler) GetTags(c *gin.Context) {
	tags, err := h.tags.GetAll(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to get tags")
		return
	}
	response.Success(c, http.StatusOK, tags)
}

func (h *Handler) GetTagByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid tag ID")
		return
	}

	tag, err := h.tags.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Tag not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to get tag")
		return
	}

	response.Success(c, http.StatusOK, tag)
}

// SearchIngredients — автодополнение по префиксу названия: GET /ingredients?name=
func (h *Handler) SearchIngredients(c *gin.Context) {
	ingredients, err := h.ingredients.Search(c.Request.Context(), c.Query("name"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to search ingredients")
		return
	}
	response.Success(c, http.StatusOK, ingredients)
}

func (h *Handler) GetIngredientByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ingredient ID")
		return
	}

	ingredient, err := h.ingredients.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Ingredient not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to get ingredient")
		return
	}

	response.Success(c, http.StatusOK, ingredient)
}
