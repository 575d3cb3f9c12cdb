package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// looseInt accepts a JSON number or a numeric string.
type looseInt int

func (n *looseInt) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("not an integer: %q", raw)
	}
	*n = looseInt(v)
	return nil
}

// previousQuestion is either a bare id or an object carrying "id".
type previousQuestion int

func (p *previousQuestion) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var obj struct {
			ID *looseInt `json:"id"`
		}
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return err
		}
		if obj.ID == nil {
			return fmt.Errorf("previous question without id")
		}
		*p = previousQuestion(*obj.ID)
		return nil
	}
	var id looseInt
	if err := id.UnmarshalJSON(trimmed); err != nil {
		return err
	}
	*p = previousQuestion(id)
	return nil
}

// quizCategory is {"id": ..., "type": ...} or the string "all".
type quizCategory struct {
	ID   looseInt `json:"id"`
	Type string   `json:"type"`
}

func (c *quizCategory) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		if !strings.EqualFold(s, "all") {
			return fmt.Errorf("unknown quiz category %q", s)
		}
		*c = quizCategory{Type: "all"}
		return nil
	}
	var v struct {
		ID   *looseInt `json:"id"`
		Type string    `json:"type"`
	}
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return err
	}
	if v.ID == nil {
		// The web client's "all categories" button sends {"type":"click","id":0}.
		if !strings.EqualFold(v.Type, "all") && !strings.EqualFold(v.Type, "click") {
			return fmt.Errorf("quiz category %q without id", v.Type)
		}
		*c = quizCategory{Type: v.Type}
		return nil
	}
	*c = quizCategory{ID: *v.ID, Type: v.Type}
	return nil
}

type createQuestionRequest struct {
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Category   looseInt `json:"category"`
	Difficulty looseInt `json:"difficulty"`
}

func (r createQuestionRequest) toNewQuestion() NewQuestion {
	return NewQuestion{
		Question:   r.Question,
		Answer:     r.Answer,
		Category:   int(r.Category),
		Difficulty: int(r.Difficulty),
	}
}

type searchRequest struct {
	SearchTerm *string `json:"searchTerm"`
}

type quizRequest struct {
	PreviousQuestions *[]previousQuestion `json:"previous_questions"`
	QuizCategory      *quizCategory       `json:"quiz_category"`
}

func (r quizRequest) toQuizRequest() QuizRequest {
	var out QuizRequest
	if r.PreviousQuestions != nil {
		out.PreviousIDs = make([]int, 0, len(*r.PreviousQuestions))
		for _, p := range *r.PreviousQuestions {
			out.PreviousIDs = append(out.PreviousIDs, int(p))
		}
	}
	if r.QuizCategory != nil {
		out.Category = &QuizCategory{ID: int(r.QuizCategory.ID), Type: r.QuizCategory.Type}
	}
	return out
}
