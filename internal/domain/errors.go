package domain

import "errors"

var (
	// ErrCategoryNotFound indicates the requested category does not exist.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrNoQuestions is returned when a category has no question content.
	ErrNoQuestions = errors.New("no questions found for category")
	// ErrNameRequired is returned when a quiz is started without a player name.
	ErrNameRequired = errors.New("player name is required")
	// ErrCategoryRequired is returned when a quiz is started without a category.
	ErrCategoryRequired = errors.New("category is required")
)
