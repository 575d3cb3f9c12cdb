package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

type questionStore interface {
	GetQuestion(ctx context.Context, id int32) (sqlcgen.Question, error)
	SearchQuestions(ctx context.Context, term string) ([]sqlcgen.Question, error)
	ListQuizCandidates(ctx context.Context, arg sqlcgen.ListQuizCandidatesParams) ([]sqlcgen.Question, error)
}

// QuestionRepository wraps sqlc queries for trivia questions. Multi-statement
// operations open their own transaction on db.
type QuestionRepository struct {
	db    txBeginner
	store questionStore
}

// NewQuestionRepository builds a repository over a pool (or any transaction
// starter) and the single-statement query set bound to it.
func NewQuestionRepository(db txBeginner, store questionStore) *QuestionRepository {
	return &QuestionRepository{db: db, store: store}
}

// Page returns one page of questions ordered by id together with the total
// question count, both read from the same snapshot.
func (r *QuestionRepository) Page(ctx context.Context, limit, offset int32) ([]sqlcgen.Question, int64, error) {
	var (
		rows  []sqlcgen.Question
		total int64
	)
	err := inTx(ctx, r.db, readOnly, func(q *sqlcgen.Queries) error {
		var err error
		if total, err = q.CountQuestions(ctx); err != nil {
			return err
		}
		if int64(offset) >= total {
			return nil
		}
		rows, err = q.ListQuestionsPage(ctx, sqlcgen.ListQuestionsPageParams{Limit: limit, Offset: offset})
		return err
	})
	if err != nil {
		return nil, 0, translate(err)
	}
	return rows, total, nil
}

// GetByID fetches a single question.
func (r *QuestionRepository) GetByID(ctx context.Context, id int32) (sqlcgen.Question, error) {
	row, err := r.store.GetQuestion(ctx, id)
	return row, translate(err)
}

// Create inserts a question after confirming its category exists.
func (r *QuestionRepository) Create(ctx context.Context, params sqlcgen.CreateQuestionParams) (sqlcgen.Question, error) {
	var created sqlcgen.Question
	err := inTx(ctx, r.db, pgx.TxOptions{}, func(q *sqlcgen.Queries) error {
		if _, err := q.GetCategory(ctx, params.Category); err != nil {
			if errors.Is(translate(err), ErrNotFound) {
				return ErrForeignKey
			}
			return err
		}
		var err error
		created, err = q.CreateQuestion(ctx, params)
		return err
	})
	if err != nil {
		return sqlcgen.Question{}, translate(err)
	}
	return created, nil
}

// Delete removes a question, returning ErrNotFound if it does not exist.
func (r *QuestionRepository) Delete(ctx context.Context, id int32) error {
	err := inTx(ctx, r.db, pgx.TxOptions{}, func(q *sqlcgen.Queries) error {
		if _, err := q.LockQuestion(ctx, id); err != nil {
			return err
		}
		n, err := q.DeleteQuestion(ctx, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
	return translate(err)
}

// Search returns questions whose text contains term, ignoring case.
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]sqlcgen.Question, error) {
	rows, err := r.store.SearchQuestions(ctx, term)
	return rows, translate(err)
}

// ByCategory resolves a category and lists its questions in one snapshot.
func (r *QuestionRepository) ByCategory(ctx context.Context, categoryID int32) (sqlcgen.Category, []sqlcgen.Question, error) {
	var (
		category sqlcgen.Category
		rows     []sqlcgen.Question
	)
	err := inTx(ctx, r.db, readOnly, func(q *sqlcgen.Queries) error {
		var err error
		if category, err = q.GetCategory(ctx, categoryID); err != nil {
			return err
		}
		rows, err = q.ListQuestionsByCategory(ctx, categoryID)
		return err
	})
	if err != nil {
		return sqlcgen.Category{}, nil, translate(err)
	}
	return category, rows, nil
}

// QuizCandidates lists questions eligible for the next quiz pick. A nil
// categoryID means every category.
func (r *QuestionRepository) QuizCandidates(ctx context.Context, categoryID *int32, excluded []int32) ([]sqlcgen.Question, error) {
	params := sqlcgen.ListQuizCandidatesParams{Excluded: excluded}
	if params.Excluded == nil {
		params.Excluded = []int32{}
	}
	if categoryID != nil {
		params.Category = pgtype.Int4{Int32: *categoryID, Valid: true}
	}
	rows, err := r.store.ListQuizCandidates(ctx, params)
	return rows, translate(err)
}
