package question

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

const maxBodyBytes = 1 << 20

// HTTPHandler exposes the trivia REST endpoints.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs a question HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "question_http").Logger(),
	}
}

// Register mounts the routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /categories", h.ListCategories)
	mux.HandleFunc("GET /categories/{id}/questions", h.QuestionsByCategory)
	mux.HandleFunc("GET /questions", h.ListQuestions)
	mux.HandleFunc("POST /questions", h.CreateQuestion)
	mux.HandleFunc("GET /questions/{id}", h.GetQuestion)
	mux.HandleFunc("DELETE /questions/{id}", h.DeleteQuestion)
	mux.HandleFunc("POST /questions/search", h.SearchQuestions)
	mux.HandleFunc("POST /quiz", h.NextQuizQuestion)
}

// ListQuestions handles GET /questions?page=N
func (h *HTTPHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			page = parsed
		}
	}

	result, err := h.svc.ListQuestions(r.Context(), page)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"questions":       result.Questions,
		"total_questions": result.Total,
		"categories":      categoryMap(result.Categories),
	})
}

// ListCategories handles GET /categories
func (h *HTTPHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"categories":       categoryMap(categories),
		"total_categories": len(categories),
	})
}

// QuestionsByCategory handles GET /categories/{id}/questions
func (h *HTTPHandler) QuestionsByCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httperrors.RespondNotFound(w)
		return
	}

	result, err := h.svc.QuestionsByCategory(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        result.Questions,
		"total_questions":  len(result.Questions),
		"current_category": result.Category.Type,
	})
}

// GetQuestion handles GET /questions/{id}
func (h *HTTPHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httperrors.RespondNotFound(w)
		return
	}

	q, err := h.svc.GetQuestion(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"question": q,
	})
}

// DeleteQuestion handles DELETE /questions/{id}
func (h *HTTPHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httperrors.RespondUnprocessable(w)
		return
	}

	deleted, err := h.svc.DeleteQuestion(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	logger := logging.FromContextOr(r.Context(), h.logger)
	logger.Info().Int("question_id", deleted).Msg("question deleted")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"deleted": deleted,
	})
}

// CreateQuestion handles POST /questions
func (h *HTTPHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req createQuestionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		httperrors.RespondUnprocessable(w)
		return
	}

	created, err := h.svc.CreateQuestion(r.Context(), req.toNewQuestion())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	logger := logging.FromContextOr(r.Context(), h.logger)
	logger.Info().Int("question_id", created.ID).Msg("question created")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"created_with_id": created.ID,
	})
}

// SearchQuestions handles POST /questions/search
func (h *HTTPHandler) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		httperrors.RespondBadRequest(w)
		return
	}

	questions, err := h.svc.SearchQuestions(r.Context(), req.SearchTerm)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"questions":       questions,
		"total_questions": len(questions),
	})
}

// NextQuizQuestion handles POST /quiz
func (h *HTTPHandler) NextQuizQuestion(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if err := decodeJSON(w, r, &req); err != nil {
		httperrors.RespondUnprocessable(w)
		return
	}

	q, err := h.svc.NextQuizQuestion(r.Context(), req.toQuizRequest())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"question": q,
	})
}

// fail maps service errors onto the envelope. Anything unrecognised is
// logged and reported as a bare 500.
func (h *HTTPHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger := logging.FromContextOr(r.Context(), h.logger)
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	httperrors.RespondStatus(w, status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrMissingSearchTerm):
		return http.StatusBadRequest
	case errors.Is(err, ErrPageNotFound),
		errors.Is(err, ErrCategoryNotFound),
		errors.Is(err, ErrNoMatches),
		errors.Is(err, ErrQuestionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidQuestion),
		errors.Is(err, ErrUnknownCategory),
		errors.Is(err, ErrDeleteNotFound),
		errors.Is(err, ErrMissingQuizCategory),
		errors.Is(err, ErrMissingPreviousQuestions):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads one JSON value from the body. An empty body decodes as an
// empty object.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func categoryMap(categories []Category) map[int]string {
	out := make(map[int]string, len(categories))
	for _, c := range categories {
		out[c.ID] = c.Type
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
