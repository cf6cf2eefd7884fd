package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/yuhcee/trivia-api/internal/domain"
)

// QuizHandler handles quiz play requests
type QuizHandler struct {
	questions domain.QuestionRepository
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(questions domain.QuestionRepository) *QuizHandler {
	return &QuizHandler{
		questions: questions,
	}
}

// Register registers the quiz routes
func (h *QuizHandler) Register(e *echo.Echo) {
	e.POST("/quizzes", h.PlayQuiz)
}

// CategoryID is a category id that clients may send as a JSON number or as
// a numeric string
type CategoryID int

// UnmarshalJSON accepts both 3 and "3"
func (id *CategoryID) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return errors.New("category id must be an integer")
	}
	*id = CategoryID(n)
	return nil
}

// QuizCategory identifies the category to draw from; id 0 means all
// categories
type QuizCategory struct {
	ID   *CategoryID `json:"id"`
	Type string      `json:"type"`
}

// QuizRequest is the request body for playing a quiz round
type QuizRequest struct {
	QuizCategory      *QuizCategory `json:"quiz_category" validate:"required"`
	PreviousQuestions *[]int        `json:"previous_questions" validate:"required"`
}

// QuizResponse carries the next question; the question key is absent when
// the candidate set is exhausted
type QuizResponse struct {
	Success  bool             `json:"success"`
	Question *domain.Question `json:"question,omitempty"`
}

// PlayQuiz returns one random question from the requested category that is
// not among the previously seen ids
func (h *QuizHandler) PlayQuiz(c echo.Context) error {
	var req QuizRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest)
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest)
	}
	if req.QuizCategory.ID == nil {
		return echo.NewHTTPError(http.StatusBadRequest)
	}

	question, err := h.questions.Random(c.Request().Context(), int(*req.QuizCategory.ID), *req.PreviousQuestions)
	if err != nil {
		if errors.Is(err, domain.ErrQuestionNotFound) {
			return c.JSON(http.StatusOK, QuizResponse{Success: true})
		}
		return echo.NewHTTPError(http.StatusUnprocessableEntity)
	}

	return c.JSON(http.StatusOK, QuizResponse{
		Success:  true,
		Question: question,
	})
}
