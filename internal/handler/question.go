package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/yuhcee/trivia-api/internal/domain"
)

// QuestionHandler handles question-related HTTP requests
type QuestionHandler struct {
	questions  domain.QuestionRepository
	categories domain.CategoryRepository
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questions domain.QuestionRepository, categories domain.CategoryRepository) *QuestionHandler {
	return &QuestionHandler{
		questions:  questions,
		categories: categories,
	}
}

// Register registers the question routes
func (h *QuestionHandler) Register(e *echo.Echo) {
	e.GET("/questions", h.ListQuestions)
	e.POST("/questions", h.CreateOrSearchQuestions)
	e.DELETE("/questions/:question_id", h.DeleteQuestion)
}

// QuestionsPageResponse is the response for the paginated question listing
type QuestionsPageResponse struct {
	Success         bool              `json:"success"`
	Questions       []domain.Question `json:"questions"`
	TotalQuestions  int               `json:"total_questions"`
	Categories      map[string]string `json:"categories"`
	CurrentCategory any               `json:"current_category"`
}

// ListQuestions returns one fixed-size page of all questions, ordered by id
func (h *QuestionHandler) ListQuestions(c echo.Context) error {
	ctx := c.Request().Context()

	selection, err := h.questions.List(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity)
	}

	page := paginate(selection, pageParam(c))
	if len(page) == 0 {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	total, err := h.questions.Count(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity)
	}

	categories, err := loadCategoryMap(ctx, h.categories)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity)
	}

	return c.JSON(http.StatusOK, QuestionsPageResponse{
		Success:         true,
		Questions:       page,
		TotalQuestions:  total,
		Categories:      categories,
		CurrentCategory: nil,
	})
}

// questionPayload carries both modes of POST /questions. Category and
// difficulty stay raw so that a non-integer value is rejected at insert
// shaping, not at bind, matching the integer column's behavior.
type questionPayload struct {
	Question   string          `json:"question"`
	Answer     string          `json:"answer"`
	Category   json.RawMessage `json:"category"`
	Difficulty json.RawMessage `json:"difficulty"`
	SearchTerm string          `json:"searchTerm"`
}

// SearchQuestionsResponse is the response for search mode. TotalQuestions
// reports the returned page length, not the full match count.
type SearchQuestionsResponse struct {
	Success        bool              `json:"success"`
	Questions      []domain.Question `json:"questions"`
	TotalQuestions int               `json:"total_questions"`
}

// CreatedQuestionResponse is the response for create mode
type CreatedQuestionResponse struct {
	Success bool `json:"success"`
	Created int  `json:"created"`
}

// CreateOrSearchQuestions either searches question text or creates a new
// question, depending on whether a non-empty searchTerm is supplied
func (h *QuestionHandler) CreateOrSearchQuestions(c echo.Context) error {
	var payload questionPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest)
	}

	ctx := c.Request().Context()

	if payload.SearchTerm != "" {
		matches, err := h.questions.Search(ctx, payload.SearchTerm)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity)
		}

		page := paginate(matches, pageParam(c))
		return c.JSON(http.StatusOK, SearchQuestionsResponse{
			Success:        true,
			Questions:      page,
			TotalQuestions: len(page),
		})
	}

	question := domain.Question{
		Question: payload.Question,
		Answer:   payload.Answer,
	}
	if err := decodeIntField(payload.Category, &question.Category); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity)
	}
	if err := decodeIntField(payload.Difficulty, &question.Difficulty); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity)
	}

	if err := h.questions.Create(ctx, &question); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity)
	}

	return c.JSON(http.StatusOK, CreatedQuestionResponse{
		Success: true,
		Created: question.ID,
	})
}

// decodeIntField decodes a raw JSON value into an integer field. Absent and
// null values leave the field at zero.
func decodeIntField(raw json.RawMessage, field *int) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, field)
}

// DeletedQuestionResponse is the response for a successful delete
type DeletedQuestionResponse struct {
	Success bool `json:"success"`
	Deleted int  `json:"deleted"`
}

// DeleteQuestion removes a question by id. Deleting an id that does not
// exist reports unprocessable, not not-found; existing clients rely on it.
func (h *QuestionHandler) DeleteQuestion(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("question_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	if err := h.questions.Delete(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity)
	}

	return c.JSON(http.StatusOK, DeletedQuestionResponse{
		Success: true,
		Deleted: id,
	})
}
