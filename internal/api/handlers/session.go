package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/inquestlab/inquest/internal/domain"
	"github.com/inquestlab/inquest/internal/profile"
	"github.com/inquestlab/inquest/internal/session"
	"github.com/inquestlab/inquest/internal/store"
)

type SessionHandler struct {
	manager *session.Manager
	turns   domain.TurnStore
}

func NewSessionHandler(manager *session.Manager, turns domain.TurnStore) *SessionHandler {
	return &SessionHandler{manager: manager, turns: turns}
}

type createSessionRequest struct {
	Profile string `json:"profile,omitempty"`
}

type createSessionResponse struct {
	ID        string `json:"id"`
	Profile   string `json:"profile"`
	Title     string `json:"title"`
	StartedAt string `json:"started_at"`
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	s, err := h.manager.Create(r.Context(), req.Profile)
	if err != nil {
		if errors.Is(err, profile.ErrUnknownProfile) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	writeJSON(w, http.StatusCreated, createSessionResponse{
		ID:        s.ID.String(),
		Profile:   s.Profile.Key,
		Title:     s.Profile.Title,
		StartedAt: s.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

func (h *SessionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshot())
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	if err := h.manager.End(r.Context(), id); err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to end session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ended"})
}

type respondRequest struct {
	Text string `json:"text"`
}

func (h *SessionHandler) Respond(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req respondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	result := s.Respond(r.Context(), req.Text)
	writeJSON(w, http.StatusOK, result)
}

type runTestRequest struct {
	Test string `json:"test,omitempty"`
}

type runTestResponse struct {
	Lines  []string       `json:"lines"`
	Events []domain.Event `json:"events"`
}

func (h *SessionHandler) RunTest(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req runTestRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	lines, events := s.RunTest(r.Context(), req.Test)
	writeJSON(w, http.StatusOK, runTestResponse{Lines: lines, Events: events})
}

type judgeRequest struct {
	Verdict string `json:"verdict,omitempty"`
}

type judgeResponse struct {
	Lines []string `json:"lines"`
}

func (h *SessionHandler) Judge(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req judgeRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	lines := s.Judge(r.Context(), req.Verdict)
	writeJSON(w, http.StatusOK, judgeResponse{Lines: lines})
}

type addNoteRequest struct {
	Note string `json:"note"`
}

func (h *SessionHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req addNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Note == "" {
		writeError(w, http.StatusBadRequest, "note is required")
		return
	}

	s.AddNote(req.Note)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *SessionHandler) Evidence(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	notes := s.Evidence()
	writeJSON(w, http.StatusOK, map[string]any{
		"evidence": notes,
		"count":    len(notes),
	})
}

func (h *SessionHandler) Events(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	events := s.DrainEvents()
	writeJSON(w, http.StatusOK, map[string]any{
		"events": events,
		"count":  len(events),
	})
}

type similarTurnsResponse struct {
	Turns []domain.TurnWithScore `json:"turns"`
	Count int                    `json:"count"`
}

// SimilarTurns finds persisted turns whose trait snapshot is closest to the
// given turn's snapshot, across all sessions.
func (h *SessionHandler) SimilarTurns(w http.ResponseWriter, r *http.Request) {
	if h.turns == nil {
		writeError(w, http.StatusServiceUnavailable, "persistence not configured")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	turn, err := strconv.Atoi(chi.URLParam(r, "turn"))
	if err != nil || turn <= 0 {
		writeError(w, http.StatusBadRequest, "invalid turn number")
		return
	}

	limit := 5
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
	}

	rec, err := h.turns.GetBySessionAndTurn(r.Context(), id, turn)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "turn not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load turn")
		return
	}

	turns, err := h.turns.FindSimilar(r.Context(), rec.State, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to search turns")
		return
	}

	writeJSON(w, http.StatusOK, similarTurnsResponse{Turns: turns, Count: len(turns)})
}

// session resolves the {id} URL param to a live session, writing the error
// response itself on failure.
func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return nil, false
	}

	s, err := h.manager.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, session.ErrSessionNotFound.Error())
		return nil, false
	}
	return s, true
}
