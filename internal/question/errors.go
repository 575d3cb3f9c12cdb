package question

import "errors"

// Malformed request shape.
var (
	ErrMissingSearchTerm = errors.New("search term is required")
)

// Well-formed request referencing nothing.
var (
	ErrPageNotFound     = errors.New("page out of range")
	ErrCategoryNotFound = errors.New("category not found")
	ErrNoMatches        = errors.New("no questions match search term")
	ErrQuestionNotFound = errors.New("question not found")
)

// Well-formed request failing domain validation.
var (
	ErrInvalidQuestion          = errors.New("invalid question")
	ErrUnknownCategory          = errors.New("question references unknown category")
	ErrDeleteNotFound           = errors.New("question to delete does not exist")
	ErrMissingQuizCategory      = errors.New("quiz_category is required")
	ErrMissingPreviousQuestions = errors.New("previous_questions is required")
)
