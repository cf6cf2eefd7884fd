package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/yuhcee/trivia-api/internal/domain"
)

type fakeQuestionRepo struct {
	questions []domain.Question
	nextID    int
	err       error // when set, every operation fails with it
}

func (f *fakeQuestionRepo) List(ctx context.Context) ([]domain.Question, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Question, len(f.questions))
	copy(out, f.questions)
	return out, nil
}

func (f *fakeQuestionRepo) Count(ctx context.Context) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.questions), nil
}

func (f *fakeQuestionRepo) Search(ctx context.Context, term string) ([]domain.Question, error) {
	if f.err != nil {
		return nil, f.err
	}
	matches := []domain.Question{}
	for _, q := range f.questions {
		if strings.Contains(strings.ToLower(q.Question), strings.ToLower(term)) {
			matches = append(matches, q)
		}
	}
	return matches, nil
}

func (f *fakeQuestionRepo) ListByCategory(ctx context.Context, categoryID int) ([]domain.Question, error) {
	if f.err != nil {
		return nil, f.err
	}
	matches := []domain.Question{}
	for _, q := range f.questions {
		if q.Category == categoryID {
			matches = append(matches, q)
		}
	}
	return matches, nil
}

func (f *fakeQuestionRepo) Create(ctx context.Context, question *domain.Question) error {
	if f.err != nil {
		return f.err
	}
	question.ID = f.nextID
	f.nextID++
	f.questions = append(f.questions, *question)
	return nil
}

func (f *fakeQuestionRepo) Delete(ctx context.Context, id int) error {
	if f.err != nil {
		return f.err
	}
	for i, q := range f.questions {
		if q.ID == id {
			f.questions = append(f.questions[:i], f.questions[i+1:]...)
			return nil
		}
	}
	return domain.ErrQuestionNotFound
}

func (f *fakeQuestionRepo) Random(ctx context.Context, categoryID int, exclude []int) (*domain.Question, error) {
	if f.err != nil {
		return nil, f.err
	}
	excluded := make(map[int]bool, len(exclude))
	for _, id := range exclude {
		excluded[id] = true
	}
	for _, q := range f.questions {
		if excluded[q.ID] {
			continue
		}
		if categoryID != 0 && q.Category != categoryID {
			continue
		}
		q := q
		return &q, nil
	}
	return nil, domain.ErrQuestionNotFound
}

type fakeCategoryRepo struct {
	categories []domain.Category
	err        error // when set, every operation fails with it
}

func (f *fakeCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Category, len(f.categories))
	copy(out, f.categories)
	return out, nil
}

func (f *fakeCategoryRepo) GetByID(ctx context.Context, id int) (*domain.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, cat := range f.categories {
		if cat.ID == id {
			cat := cat
			return &cat, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

var testCategories = []domain.Category{
	{ID: 1, Type: "Science"},
	{ID: 2, Type: "Art"},
	{ID: 3, Type: "Geography"},
	{ID: 4, Type: "History"},
	{ID: 5, Type: "Entertainment"},
	{ID: 6, Type: "Sports"},
}

// newTestServer wires the handlers onto a full echo instance so that
// routing, binding, validation and the central error handler are all in play.
func newTestServer(questions []domain.Question, categories []domain.Category) (*echo.Echo, *fakeQuestionRepo, *fakeCategoryRepo) {
	nextID := 1
	for _, q := range questions {
		if q.ID >= nextID {
			nextID = q.ID + 1
		}
	}

	questionRepo := &fakeQuestionRepo{questions: questions, nextID: nextID}
	categoryRepo := &fakeCategoryRepo{categories: categories}

	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = JSONErrorHandler

	NewQuestionHandler(questionRepo, categoryRepo).Register(e)
	NewCategoryHandler(categoryRepo, questionRepo).Register(e)
	NewQuizHandler(questionRepo).Register(e)

	return e, questionRepo, categoryRepo
}

// doJSON performs a request and decodes the response body into a generic map
func doJSON(t *testing.T, e *echo.Echo, method, target string, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else if raw, ok := body.(string); ok {
		reader = bytes.NewReader([]byte(raw))
	} else {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var decoded map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec.Code, decoded
}

// someQuestions builds n sequential questions, ids 1..n, cycling categories 1..6
func someQuestions(n int) []domain.Question {
	questions := make([]domain.Question, 0, n)
	for i := 1; i <= n; i++ {
		questions = append(questions, domain.Question{
			ID:         i,
			Question:   "Question number " + strconv.Itoa(i) + "?",
			Answer:     "Answer " + strconv.Itoa(i),
			Category:   (i-1)%6 + 1,
			Difficulty: i%5 + 1,
		})
	}
	return questions
}

func assertError(t *testing.T, code int, body map[string]any, wantCode int, wantMessage string) {
	t.Helper()
	if code != wantCode {
		t.Fatalf("status = %d, want %d", code, wantCode)
	}
	if success, _ := body["success"].(bool); success {
		t.Errorf("success = true, want false")
	}
	if got := body["error"]; got != float64(wantCode) {
		t.Errorf("error = %v, want %d", got, wantCode)
	}
	if got := body["message"]; got != wantMessage {
		t.Errorf("message = %v, want %q", got, wantMessage)
	}
}

func questionIDs(t *testing.T, body map[string]any) []int {
	t.Helper()
	raw, ok := body["questions"].([]any)
	if !ok {
		t.Fatalf("questions missing or not a list: %v", body["questions"])
	}
	ids := make([]int, 0, len(raw))
	for _, item := range raw {
		q, ok := item.(map[string]any)
		if !ok {
			t.Fatalf("question entry is not an object: %v", item)
		}
		ids = append(ids, int(q["id"].(float64)))
	}
	return ids
}
