package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

type mockQuestionStore struct {
	mock.Mock
}

func (m *mockQuestionStore) GetQuestion(ctx context.Context, id int32) (sqlcgen.Question, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(sqlcgen.Question), args.Error(1)
}

func (m *mockQuestionStore) SearchQuestions(ctx context.Context, term string) ([]sqlcgen.Question, error) {
	args := m.Called(ctx, term)
	return args.Get(0).([]sqlcgen.Question), args.Error(1)
}

func (m *mockQuestionStore) ListQuizCandidates(ctx context.Context, arg sqlcgen.ListQuizCandidatesParams) ([]sqlcgen.Question, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).([]sqlcgen.Question), args.Error(1)
}

type failingBeginner struct {
	err error
}

func (f failingBeginner) BeginTx(context.Context, pgx.TxOptions) (pgx.Tx, error) {
	return nil, f.err
}

func TestQuestionRepository_GetByID(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(nil, store)

	expect := sqlcgen.Question{ID: 5, Question: "Who?", Answer: "Maya Angelou", Category: 4, Difficulty: 2}
	store.On("GetQuestion", mock.Anything, int32(5)).Return(expect, nil)

	got, err := repo.GetByID(context.Background(), 5)
	assert.NoError(t, err)
	assert.Equal(t, expect, got)
	store.AssertExpectations(t)
}

func TestQuestionRepository_GetByIDMissing(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(nil, store)

	store.On("GetQuestion", mock.Anything, int32(19826)).Return(sqlcgen.Question{}, pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 19826)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuestionRepository_Search(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(nil, store)

	expect := []sqlcgen.Question{{ID: 9, Question: "What boxer's original name is Cassius Clay?"}}
	store.On("SearchQuestions", mock.Anything, "clay").Return(expect, nil)

	got, err := repo.Search(context.Background(), "clay")
	assert.NoError(t, err)
	assert.Equal(t, expect, got)
	store.AssertExpectations(t)
}

func TestQuestionRepository_QuizCandidatesParams(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(nil, store)

	category := int32(2)
	scoped := sqlcgen.ListQuizCandidatesParams{
		Category: pgtype.Int4{Int32: 2, Valid: true},
		Excluded: []int32{16, 17, 18},
	}
	unscoped := sqlcgen.ListQuizCandidatesParams{Excluded: []int32{}}

	store.On("ListQuizCandidates", mock.Anything, scoped).Return([]sqlcgen.Question{{ID: 19, Category: 2}}, nil)
	store.On("ListQuizCandidates", mock.Anything, unscoped).Return([]sqlcgen.Question{{ID: 2}, {ID: 4}}, nil)

	got, err := repo.QuizCandidates(context.Background(), &category, []int32{16, 17, 18})
	assert.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = repo.QuizCandidates(context.Background(), nil, nil)
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	store.AssertExpectations(t)
}

func TestQuestionRepository_BeginFailureSurfaces(t *testing.T) {
	boom := errors.New("pool exhausted")
	repo := NewQuestionRepository(failingBeginner{err: boom}, new(mockQuestionStore))

	_, _, err := repo.Page(context.Background(), 10, 0)
	assert.ErrorIs(t, err, boom)

	err = repo.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, boom)

	_, err = repo.Create(context.Background(), sqlcgen.CreateQuestionParams{Question: "q", Answer: "a", Category: 1, Difficulty: 1})
	assert.ErrorIs(t, err, boom)
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(pgx.ErrNoRows), ErrNotFound)
	assert.ErrorIs(t, translate(&pgconn.PgError{Code: "23503", ConstraintName: "questions_category_fkey"}), ErrForeignKey)

	other := &pgconn.PgError{Code: "23514"}
	assert.Same(t, other, translate(other))
}
