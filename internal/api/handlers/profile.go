package handlers

import (
	"net/http"

	"github.com/inquestlab/inquest/internal/domain"
	"github.com/inquestlab/inquest/internal/profile"
)

type ProfileHandler struct {
	registry *profile.Registry
}

func NewProfileHandler(registry *profile.Registry) *ProfileHandler {
	return &ProfileHandler{registry: registry}
}

// profileSummary is the public view of a profile. Ground truths and bias
// dials stay hidden so an operator client cannot see what the agent is
// concealing.
type profileSummary struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles := h.registry.List()
	out := make([]profileSummary, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, summarize(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"profiles": out,
		"count":    len(out),
	})
}

func summarize(p *domain.Profile) profileSummary {
	return profileSummary{Key: p.Key, Title: p.Title, Description: p.Description}
}
