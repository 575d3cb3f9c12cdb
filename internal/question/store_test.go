package question

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

// memoryStore is an in-process stand-in for the Postgres repositories.
type memoryStore struct {
	mu         sync.Mutex
	categories []sqlcgen.Category
	questions  map[int32]sqlcgen.Question
	nextID     int32
	failWith   error
	offsets    []int32
}

func newMemoryStore() *memoryStore {
	return &memoryStore{questions: map[int32]sqlcgen.Question{}, nextID: 1}
}

// seededStore mirrors the bundled seed migration's categories plus a small,
// predictable question set.
func seededStore() *memoryStore {
	s := newMemoryStore()
	s.categories = []sqlcgen.Category{
		{ID: 1, Type: "Science"},
		{ID: 2, Type: "Art"},
		{ID: 3, Type: "Geography"},
		{ID: 4, Type: "History"},
		{ID: 5, Type: "Entertainment"},
		{ID: 6, Type: "Sports"},
	}
	s.put(sqlcgen.Question{ID: 2, Question: "What movie earned Tom Hanks his third straight Oscar nomination, in 1996?", Answer: "Apollo 13", Category: 5, Difficulty: 4})
	s.put(sqlcgen.Question{ID: 4, Question: "What actor did author Anne Rice first denounce, then praise in the role of her beloved Lestat?", Answer: "Tom Cruise", Category: 5, Difficulty: 4})
	s.put(sqlcgen.Question{ID: 5, Question: "Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?", Answer: "Maya Angelou", Category: 4, Difficulty: 2})
	s.put(sqlcgen.Question{ID: 9, Question: "What boxer's original name is Cassius Clay?", Answer: "Muhammad Ali", Category: 4, Difficulty: 1})
	s.put(sqlcgen.Question{ID: 10, Question: "Which is the only team to play in every soccer World Cup tournament?", Answer: "Brazil", Category: 6, Difficulty: 3})
	s.put(sqlcgen.Question{ID: 11, Question: "Which country won the first ever soccer World Cup in 1930?", Answer: "Uruguay", Category: 6, Difficulty: 4})
	s.put(sqlcgen.Question{ID: 12, Question: "Who invented Peanut Butter?", Answer: "George Washington Carver", Category: 4, Difficulty: 2})
	s.put(sqlcgen.Question{ID: 13, Question: "What is the largest lake in Africa?", Answer: "Lake Victoria", Category: 3, Difficulty: 2})
	s.put(sqlcgen.Question{ID: 14, Question: "In which royal palace would you find the Hall of Mirrors?", Answer: "The Palace of Versailles", Category: 3, Difficulty: 3})
	s.put(sqlcgen.Question{ID: 15, Question: "The Taj Mahal is located in which Indian city?", Answer: "Agra", Category: 3, Difficulty: 2})
	s.put(sqlcgen.Question{ID: 16, Question: "Which Dutch graphic artist-initials M C was a creator of optical illusions?", Answer: "Escher", Category: 2, Difficulty: 1})
	s.put(sqlcgen.Question{ID: 17, Question: "La Giaconda is better known as what?", Answer: "Mona Lisa", Category: 2, Difficulty: 3})
	s.put(sqlcgen.Question{ID: 18, Question: "How many paintings did Van Gogh sell in his lifetime?", Answer: "One", Category: 2, Difficulty: 4})
	s.put(sqlcgen.Question{ID: 19, Question: "Which American artist was a pioneer of Abstract Expressionism, and a leading exponent of action painting?", Answer: "Jackson Pollock", Category: 2, Difficulty: 2})
	s.put(sqlcgen.Question{ID: 20, Question: "What is the heaviest organ in the human body?", Answer: "The Liver", Category: 1, Difficulty: 4})
	s.put(sqlcgen.Question{ID: 21, Question: "Who discovered penicillin?", Answer: "Alexander Fleming", Category: 1, Difficulty: 3})
	s.put(sqlcgen.Question{ID: 22, Question: "Hematology is a branch of medicine involving the study of what?", Answer: "Blood", Category: 1, Difficulty: 4})
	s.put(sqlcgen.Question{ID: 23, Question: "Which dung beetle was worshipped by the ancient Egyptians?", Answer: "Scarab", Category: 4, Difficulty: 4})
	return s
}

func (s *memoryStore) put(q sqlcgen.Question) {
	s.questions[q.ID] = q
	if q.ID >= s.nextID {
		s.nextID = q.ID + 1
	}
}

func (s *memoryStore) sorted(keep func(sqlcgen.Question) bool) []sqlcgen.Question {
	out := make([]sqlcgen.Question, 0, len(s.questions))
	for _, q := range s.questions {
		if keep == nil || keep(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *memoryStore) hasCategory(id int32) (sqlcgen.Category, bool) {
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return sqlcgen.Category{}, false
}

func (s *memoryStore) List(_ context.Context) ([]sqlcgen.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	return append([]sqlcgen.Category(nil), s.categories...), nil
}

func (s *memoryStore) Page(_ context.Context, limit, offset int32) ([]sqlcgen.Question, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offsets = append(s.offsets, offset)
	if s.failWith != nil {
		return nil, 0, s.failWith
	}
	all := s.sorted(nil)
	total := int64(len(all))
	if int64(offset) >= total {
		return nil, total, nil
	}
	end := int(offset) + int(limit)
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (s *memoryStore) GetByID(_ context.Context, id int32) (sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.questions[id]
	if !ok {
		return sqlcgen.Question{}, repository.ErrNotFound
	}
	return q, nil
}

func (s *memoryStore) Create(_ context.Context, params sqlcgen.CreateQuestionParams) (sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return sqlcgen.Question{}, s.failWith
	}
	if _, ok := s.hasCategory(params.Category); !ok {
		return sqlcgen.Question{}, repository.ErrForeignKey
	}
	q := sqlcgen.Question{
		ID:         s.nextID,
		Question:   params.Question,
		Answer:     params.Answer,
		Category:   params.Category,
		Difficulty: params.Difficulty,
	}
	s.put(q)
	return q, nil
}

func (s *memoryStore) Delete(_ context.Context, id int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	if _, ok := s.questions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.questions, id)
	return nil
}

func (s *memoryStore) Search(_ context.Context, term string) ([]sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	needle := strings.ToLower(term)
	return s.sorted(func(q sqlcgen.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), needle)
	}), nil
}

func (s *memoryStore) ByCategory(_ context.Context, categoryID int32) (sqlcgen.Category, []sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return sqlcgen.Category{}, nil, s.failWith
	}
	c, ok := s.hasCategory(categoryID)
	if !ok {
		return sqlcgen.Category{}, nil, repository.ErrNotFound
	}
	return c, s.sorted(func(q sqlcgen.Question) bool { return q.Category == categoryID }), nil
}

func (s *memoryStore) QuizCandidates(_ context.Context, categoryID *int32, excluded []int32) ([]sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	skip := make(map[int32]struct{}, len(excluded))
	for _, id := range excluded {
		skip[id] = struct{}{}
	}
	return s.sorted(func(q sqlcgen.Question) bool {
		if _, ok := skip[q.ID]; ok {
			return false
		}
		return categoryID == nil || q.Category == *categoryID
	}), nil
}

var errStoreDown = errors.New("store unavailable")
