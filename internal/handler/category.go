package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/yuhcee/trivia-api/internal/domain"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categories domain.CategoryRepository
	questions  domain.QuestionRepository
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categories domain.CategoryRepository, questions domain.QuestionRepository) *CategoryHandler {
	return &CategoryHandler{
		categories: categories,
		questions:  questions,
	}
}

// Register registers the category routes
func (h *CategoryHandler) Register(e *echo.Echo) {
	e.GET("/categories", h.ListCategories)
	e.GET("/categories/:category_id/questions", h.ListCategoryQuestions)
}

// CategoriesResponse is the response for the category listing
type CategoriesResponse struct {
	Success    bool              `json:"success"`
	Categories map[string]string `json:"categories"`
}

// ListCategories returns every category as an id-to-type mapping. An empty
// categories table is a not-found condition.
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := loadCategoryMap(c.Request().Context(), h.categories)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return echo.NewHTTPError(http.StatusUnprocessableEntity)
	}

	return c.JSON(http.StatusOK, CategoriesResponse{
		Success:    true,
		Categories: categories,
	})
}

// CategoryQuestionsResponse is the response for the per-category listing.
// The key casing differs from the other listings, and totalQuestions counts
// questions across every category; both are part of the observable contract.
type CategoryQuestionsResponse struct {
	Success         bool              `json:"success"`
	Questions       []domain.Question `json:"questions"`
	TotalQuestions  int               `json:"totalQuestions"`
	CurrentCategory string            `json:"currentCategory"`
}

// ListCategoryQuestions returns one page of the questions belonging to a
// single category
func (h *CategoryHandler) ListCategoryQuestions(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("category_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	ctx := c.Request().Context()

	category, err := h.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return echo.NewHTTPError(http.StatusUnprocessableEntity)
	}

	selection, err := h.questions.ListByCategory(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity)
	}

	total, err := h.questions.Count(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity)
	}

	return c.JSON(http.StatusOK, CategoryQuestionsResponse{
		Success:         true,
		Questions:       paginate(selection, pageParam(c)),
		TotalQuestions:  total,
		CurrentCategory: category.Type,
	})
}
