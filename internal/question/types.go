package question

import "strings"

// Question is the client-facing trivia item. Category is rendered as a
// decimal string, the representation quiz clients send back.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category,string"`
	Difficulty int    `json:"difficulty"`
}

// Category is a labelled grouping of questions.
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// Page is one page of the question listing.
type Page struct {
	Questions  []Question
	Total      int
	Categories []Category
}

// CategoryQuestions holds every question filed under one category.
type CategoryQuestions struct {
	Category  Category
	Questions []Question
}

// NewQuestion carries the fields required to create a question.
type NewQuestion struct {
	Question   string `validate:"required,nonul"`
	Answer     string `validate:"required,nonul"`
	Category   int    `validate:"required,min=1"`
	Difficulty int    `validate:"required,min=1"`
}

// QuizCategory scopes quiz selection. ID 0 or type "all" selects every
// category.
type QuizCategory struct {
	ID   int
	Type string
}

// All reports whether the category denotes "no filter".
func (c QuizCategory) All() bool {
	return c.ID == 0 || strings.EqualFold(c.Type, "all")
}

// QuizRequest asks for the next unseen quiz question. A nil PreviousIDs or
// Category means the field was absent from the request.
type QuizRequest struct {
	PreviousIDs []int
	Category    *QuizCategory
}
