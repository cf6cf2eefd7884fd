package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/yuhcee/trivia-api/internal/domain"
)

// questionsPerPage is the fixed page size for every paginated listing.
const questionsPerPage = 10

// ErrorResponse is the envelope for every error status
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

var errorMessages = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusNotFound:            "resource not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable entity",
}

// JSONErrorHandler renders every error, including the router's own 404 and
// 405, as the fixed three-field envelope. Errors without an HTTP status are
// reported as unprocessable.
func JSONErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusUnprocessableEntity
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
	}

	message, ok := errorMessages[code]
	if !ok {
		message = strings.ToLower(http.StatusText(code))
	}

	if err := c.JSON(code, ErrorResponse{Success: false, Error: code, Message: message}); err != nil {
		c.Logger().Error(err)
	}
}

// pageParam reads the 1-based page query parameter; anything that does not
// parse as a positive integer falls back to page 1.
func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// paginate slices the ordered questions into the requested fixed-size page.
// An out-of-range page yields an empty slice; callers decide whether that is
// an error.
func paginate(questions []domain.Question, page int) []domain.Question {
	start := (page - 1) * questionsPerPage
	if start >= len(questions) {
		return []domain.Question{}
	}
	end := min(start+questionsPerPage, len(questions))
	return questions[start:end]
}

// loadCategoryMap loads every category into an id-to-type mapping, keyed by
// the decimal id. An empty categories table is a not-found condition.
func loadCategoryMap(ctx context.Context, categories domain.CategoryRepository) (map[string]string, error) {
	all, err := categories.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, domain.ErrCategoryNotFound
	}

	m := make(map[string]string, len(all))
	for _, category := range all {
		m[strconv.Itoa(category.ID)] = category.Type
	}
	return m, nil
}
