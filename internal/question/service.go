package question

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

// DefaultPageSize is used when ServiceOptions.PageSize is unset.
const DefaultPageSize = 10

type questionRepo interface {
	Page(ctx context.Context, limit, offset int32) ([]sqlcgen.Question, int64, error)
	GetByID(ctx context.Context, id int32) (sqlcgen.Question, error)
	Create(ctx context.Context, params sqlcgen.CreateQuestionParams) (sqlcgen.Question, error)
	Delete(ctx context.Context, id int32) error
	Search(ctx context.Context, term string) ([]sqlcgen.Question, error)
	ByCategory(ctx context.Context, categoryID int32) (sqlcgen.Category, []sqlcgen.Question, error)
	QuizCandidates(ctx context.Context, categoryID *int32, excluded []int32) ([]sqlcgen.Question, error)
}

type categoryRepo interface {
	List(ctx context.Context) ([]sqlcgen.Category, error)
}

// Service implements pagination, filtering, search and quiz selection over
// the question store.
type Service struct {
	questions  questionRepo
	categories categoryRepo
	pageSize   int
	intN       func(n int) int
	validate   *validator.Validate
}

type ServiceOptions struct {
	PageSize int
	// IntN returns a uniform integer in [0, n). Defaults to math/rand/v2.
	IntN func(n int) int
}

func NewService(questions questionRepo, categories categoryRepo, opts ServiceOptions) *Service {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.PageSize > math.MaxInt32 {
		opts.PageSize = math.MaxInt32
	}
	if opts.IntN == nil {
		opts.IntN = rand.IntN
	}
	validate := validator.New()
	_ = validate.RegisterValidation("nonul", func(fl validator.FieldLevel) bool {
		return !containsNUL(fl.Field().String())
	})
	return &Service{
		questions:  questions,
		categories: categories,
		pageSize:   opts.PageSize,
		intN:       opts.IntN,
		validate:   validate,
	}
}

// PageSize reports the fixed number of questions per page.
func (s *Service) PageSize() int {
	return s.pageSize
}

// ListQuestions returns the 1-based page. A page starting past the last
// question is ErrPageNotFound, never an empty success.
func (s *Service) ListQuestions(ctx context.Context, page int) (Page, error) {
	if page < 1 || page-1 > math.MaxInt32/s.pageSize {
		return Page{}, ErrPageNotFound
	}
	offset := int64(page-1) * int64(s.pageSize)

	rows, total, err := s.questions.Page(ctx, int32(s.pageSize), int32(offset))
	if err != nil {
		return Page{}, fmt.Errorf("list questions: %w", err)
	}
	if offset >= total {
		return Page{}, ErrPageNotFound
	}

	categories, err := s.ListCategories(ctx)
	if err != nil {
		return Page{}, err
	}

	return Page{
		Questions:  toQuestions(rows),
		Total:      int(total),
		Categories: categories,
	}, nil
}

// ListCategories returns every category ordered by id.
func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, Category{ID: int(row.ID), Type: row.Type})
	}
	return out, nil
}

// QuestionsByCategory lists a category's questions. An existing category
// with no questions is a success.
func (s *Service) QuestionsByCategory(ctx context.Context, categoryID int) (CategoryQuestions, error) {
	id, ok := toID(categoryID)
	if !ok {
		return CategoryQuestions{}, ErrCategoryNotFound
	}
	category, rows, err := s.questions.ByCategory(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return CategoryQuestions{}, ErrCategoryNotFound
		}
		return CategoryQuestions{}, fmt.Errorf("questions by category %d: %w", categoryID, err)
	}
	return CategoryQuestions{
		Category:  Category{ID: int(category.ID), Type: category.Type},
		Questions: toQuestions(rows),
	}, nil
}

// GetQuestion fetches one question by id.
func (s *Service) GetQuestion(ctx context.Context, questionID int) (Question, error) {
	id, ok := toID(questionID)
	if !ok {
		return Question{}, ErrQuestionNotFound
	}
	row, err := s.questions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Question{}, ErrQuestionNotFound
		}
		return Question{}, fmt.Errorf("get question %d: %w", questionID, err)
	}
	return toQuestion(row), nil
}

// CreateQuestion validates and persists a question, returning it with its
// generated id.
func (s *Service) CreateQuestion(ctx context.Context, in NewQuestion) (Question, error) {
	in.Question = strings.TrimSpace(in.Question)
	in.Answer = strings.TrimSpace(in.Answer)
	if err := s.validate.Struct(in); err != nil {
		return Question{}, fmt.Errorf("%w: %v", ErrInvalidQuestion, err)
	}
	category, ok := toID(in.Category)
	if !ok {
		return Question{}, ErrUnknownCategory
	}
	difficulty, ok := toID(in.Difficulty)
	if !ok {
		return Question{}, fmt.Errorf("%w: difficulty out of range", ErrInvalidQuestion)
	}

	row, err := s.questions.Create(ctx, sqlcgen.CreateQuestionParams{
		Question:   in.Question,
		Answer:     in.Answer,
		Category:   category,
		Difficulty: difficulty,
	})
	if err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return Question{}, ErrUnknownCategory
		}
		return Question{}, fmt.Errorf("create question: %w", err)
	}
	return toQuestion(row), nil
}

// DeleteQuestion removes a question permanently. Deleting an id that does not
// exist, including one already deleted, is ErrDeleteNotFound.
func (s *Service) DeleteQuestion(ctx context.Context, questionID int) (int, error) {
	id, ok := toID(questionID)
	if !ok {
		return 0, ErrDeleteNotFound
	}
	if err := s.questions.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrDeleteNotFound
		}
		return 0, fmt.Errorf("delete question %d: %w", questionID, err)
	}
	return questionID, nil
}

// SearchQuestions returns every question whose text contains term, ignoring
// case. Results are not paginated. A nil term means the key was absent.
func (s *Service) SearchQuestions(ctx context.Context, term *string) ([]Question, error) {
	if term == nil {
		return nil, ErrMissingSearchTerm
	}
	// Stored text can never hold NUL, and Postgres rejects it as a parameter.
	if containsNUL(*term) {
		return nil, ErrNoMatches
	}
	rows, err := s.questions.Search(ctx, *term)
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoMatches
	}
	return toQuestions(rows), nil
}

// NextQuizQuestion picks a uniformly random question from the candidate pool:
// questions in the requested category (or all) not listed in PreviousIDs.
// An exhausted pool yields a nil question and no error.
func (s *Service) NextQuizQuestion(ctx context.Context, req QuizRequest) (*Question, error) {
	if req.Category == nil {
		return nil, ErrMissingQuizCategory
	}
	if req.PreviousIDs == nil {
		return nil, ErrMissingPreviousQuestions
	}

	seen := make(map[int]struct{}, len(req.PreviousIDs))
	excluded := make([]int32, 0, len(req.PreviousIDs))
	for _, prev := range req.PreviousIDs {
		seen[prev] = struct{}{}
		if id, ok := toID(prev); ok {
			excluded = append(excluded, id)
		}
	}

	var scope *int32
	if !req.Category.All() {
		id, ok := toID(req.Category.ID)
		if !ok {
			return nil, nil
		}
		scope = &id
	}

	rows, err := s.questions.QuizCandidates(ctx, scope, excluded)
	if err != nil {
		return nil, fmt.Errorf("quiz candidates: %w", err)
	}

	pool := make([]sqlcgen.Question, 0, len(rows))
	for _, row := range rows {
		if _, dup := seen[int(row.ID)]; dup {
			continue
		}
		if scope != nil && row.Category != *scope {
			continue
		}
		pool = append(pool, row)
	}
	if len(pool) == 0 {
		return nil, nil
	}

	picked := toQuestion(pool[s.intN(len(pool))])
	return &picked, nil
}

func toQuestion(row sqlcgen.Question) Question {
	return Question{
		ID:         int(row.ID),
		Question:   row.Question,
		Answer:     row.Answer,
		Category:   int(row.Category),
		Difficulty: int(row.Difficulty),
	}
}

func toQuestions(rows []sqlcgen.Question) []Question {
	out := make([]Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, toQuestion(row))
	}
	return out
}

func containsNUL(s string) bool {
	return strings.IndexByte(s, 0) >= 0
}

// toID narrows an identifier to the column width; anything outside it
// cannot exist in the store.
func toID(id int) (int32, bool) {
	if id < math.MinInt32 || id > math.MaxInt32 {
		return 0, false
	}
	return int32(id), true
}
