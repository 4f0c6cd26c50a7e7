package subscription

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"foodgram/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("/subscriptions", h.List)
		users.POST("/:id/subscribe", h.Subscribe)
		users.DELETE("/:id/subscribe", h.Unsubscribe)
	}
}

// List — GET /users/subscriptions?recipes_limit=N
func (h *Handler) List(c *gin.Context) {
	recipesLimit := 0
	if limit := c.Query("recipes_limit"); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil && val > 0 {
			recipesLimit = val
		}
	}

	result, err := h.service.List(c.Request.Context(), c.GetInt64("user_id"), recipesLimit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Subscribe(c *gin.Context) {
	authorID, ok := parseAuthorID(c)
	if !ok {
		return
	}

	result, err := h.service.Subscribe(c.Request.Context(), c.GetInt64("user_id"), authorID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

func (h *Handler) Unsubscribe(c *gin.Context) {
	authorID, ok := parseAuthorID(c)
	if !ok {
		return
	}

	if err := h.service.Unsubscribe(c.Request.Context(), c.GetInt64("user_id"), authorID); err != nil {
		h.handleError(c, err)
		return
	}

	response.NoContent(c)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSelfFollow):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrAlreadyFollowing):
		response.Error(c, http.StatusBadRequest, "CONFLICT", err.Error())
	case errors.Is(err, ErrNotFollowing), errors.Is(err, ErrAuthorNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal server error")
	}
}

func parseAuthorID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid author ID")
		return 0, false
	}
	return id, true
}
