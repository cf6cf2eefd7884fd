package domain

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrQuestionNotFound = errors.New("question not found")
)

// QuestionRepository defines the interface for question-related operations
type QuestionRepository interface {
	// List retrieves all questions ordered by id
	List(ctx context.Context) ([]Question, error)

	// Count returns the total number of questions
	Count(ctx context.Context) (int, error)

	// Search retrieves questions whose text contains the term, case-insensitively
	Search(ctx context.Context, term string) ([]Question, error)

	// ListByCategory retrieves all questions with the given category id
	ListByCategory(ctx context.Context, categoryID int) ([]Question, error)

	// Create inserts a new question and assigns its id
	Create(ctx context.Context, question *Question) error

	// Delete removes a question by its id
	Delete(ctx context.Context, id int) error

	// Random picks one question uniformly at random, excluding the given ids.
	// A category id of 0 means any category.
	Random(ctx context.Context, categoryID int, exclude []int) (*Question, error)
}

// Question represents a trivia question. The category field references a
// Category id but is not validated against the categories table; a dangling
// reference is stored as-is.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}
