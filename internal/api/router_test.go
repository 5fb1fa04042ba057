package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inquestlab/inquest/internal/profile"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	return NewApp(nil, profile.NewRegistry(), zap.NewNop())
}

func doJSON(t *testing.T, app *App, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func createSession(t *testing.T, app *App, profileKey string) string {
	t.Helper()
	body := ""
	if profileKey != "" {
		body = fmt.Sprintf(`{"profile":%q}`, profileKey)
	}
	rec := doJSON(t, app, http.MethodPost, "/v1/sessions", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		ID      string `json:"id"`
		Profile string `json:"profile"`
	}
	decode(t, rec, &resp)
	require.NotEmpty(t, resp.ID)
	return resp.ID
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	rec := doJSON(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestMetricsCountsRequests(t *testing.T) {
	app := newTestApp(t)

	doJSON(t, app, http.MethodGet, "/health", "")

	rec := doJSON(t, app, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		RequestCount int64 `json:"request_count"`
		LiveSessions int   `json:"live_sessions"`
	}
	decode(t, rec, &resp)
	assert.GreaterOrEqual(t, resp.RequestCount, int64(1))
	assert.Equal(t, 0, resp.LiveSessions)
}

func TestMetricsCountsInterrogationOps(t *testing.T) {
	app := newTestApp(t)
	id := createSession(t, app, "")

	doJSON(t, app, http.MethodPost, "/v1/sessions/"+id+"/respond", `{"text":"What is your goal?"}`)
	doJSON(t, app, http.MethodPost, "/v1/sessions/"+id+"/run", `{"test":"contradiction_scan"}`)
	doJSON(t, app, http.MethodPost, "/v1/sessions/"+id+"/judge", `{"verdict":"reject"}`)
	// failed operations count as errors, not turns
	doJSON(t, app, http.MethodPost, "/v1/sessions/"+id+"/respond", `{"text":""}`)

	rec := doJSON(t, app, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		TurnCount     int64 `json:"turn_count"`
		ProbeCount    int64 `json:"probe_count"`
		JudgmentCount int64 `json:"judgment_count"`
		ErrorCount    int64 `json:"error_count"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, int64(1), resp.TurnCount)
	assert.Equal(t, int64(1), resp.ProbeCount)
	assert.Equal(t, int64(1), resp.JudgmentCount)
	assert.Equal(t, int64(1), resp.ErrorCount)
}

func TestCreateSessionDefaultProfile(t *testing.T) {
	app := newTestApp(t)

	rec := doJSON(t, app, http.MethodPost, "/v1/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		ID        string `json:"id"`
		Profile   string `json:"profile"`
		Title     string `json:"title"`
		StartedAt string `json:"started_at"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, profile.DefaultKey, resp.Profile)
	assert.NotEmpty(t, resp.Title)
	assert.NotEmpty(t, resp.StartedAt)
	assert.Equal(t, 1, app.Manager.Count())
}

func TestCreateSessionEnvDefault(t *testing.T) {
	t.Setenv("DEFAULT_PROFILE", "obedient_fragile")
	app := newTestApp(t)

	rec := doJSON(t, app, http.MethodPost, "/v1/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Profile string `json:"profile"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, "obedient_fragile", resp.Profile)
}

func TestCreateSessionUnknownProfile(t *testing.T) {
	app := newTestApp(t)

	rec := doJSON(t, app, http.MethodPost, "/v1/sessions", `{"profile":"bogus"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown profile")
}

func TestCreateSessionMalformedBody(t *testing.T) {
	app := newTestApp(t)

	rec := doJSON(t, app, http.MethodPost, "/v1/sessions", `{"profile":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSessionSnapshot(t *testing.T) {
	app := newTestApp(t)
	id := createSession(t, app, "naive_truth_teller")

	rec := doJSON(t, app, http.MethodGet, "/v1/sessions/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var snap struct {
		ProfileKey string             `json:"profile_key"`
		TurnCount  int                `json:"turn_count"`
		TrustLevel int                `json:"trust_level"`
		Coherence  map[string]float64 `json:"coherence"`
	}
	decode(t, rec, &snap)
	assert.Equal(t, "naive_truth_teller", snap.ProfileKey)
	assert.Equal(t, 0, snap.TurnCount)
	assert.Equal(t, 65, snap.TrustLevel)
	assert.Len(t, snap.Coherence, 4)
}

func TestGetSessionUnknownID(t *testing.T) {
	app := newTestApp(t)

	rec := doJSON(t, app, http.MethodGet, "/v1/sessions/2f9b9f66-68b6-4e04-a6b1-7a9f0a4f7b17", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetSessionInvalidID(t *testing.T) {
	app := newTestApp(t)

	rec := doJSON(t, app, http.MethodGet, "/v1/sessions/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRespond(t *testing.T) {
	app := newTestApp(t)
	id := createSession(t, app, "")

	rec := doJSON(t, app, http.MethodPost, "/v1/sessions/"+id+"/respond", `{"text":"What is your goal?"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Reply string `json:"reply"`
		Turn  int    `json:"turn"`
	}
	decode(t, rec, &resp)
	assert.NotEmpty(t, resp.Reply)
	assert.Equal(t, 1, resp.Turn)
}

func TestRespondEmptyText(t *testing.T) {
	app := newTestApp(t)
	id := createSession(t, app, "")

	rec := doJSON(t, app, http.MethodPost, "/v1/sessions/"+id+"/respond", `{"text":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "text is required")
}

func TestDeleteSession(t *testing.T) {
	app := newTestApp(t)
	id := createSession(t, app, "")

	rec := doJSON(t, app, http.MethodDelete, "/v1/sessions/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, app.Manager.Count())

	rec = doJSON(t, app, http.MethodDelete, "/v1/sessions/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, app, http.MethodGet, "/v1/sessions/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListProfiles(t *testing.T) {
	app := newTestApp(t)

	rec := doJSON(t, app, http.MethodGet, "/v1/profiles", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Profiles []struct {
			Key         string `json:"key"`
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"profiles"`
		Count int `json:"count"`
	}
	decode(t, rec, &resp)
	assert.GreaterOrEqual(t, resp.Count, 5)
	assert.Len(t, resp.Profiles, resp.Count)

	// hidden trait fields never cross the wire
	assert.NotContains(t, rec.Body.String(), "deception")
	assert.NotContains(t, rec.Body.String(), "truths")
}

func TestJudgeEndpoint(t *testing.T) {
	app := newTestApp(t)
	id := createSession(t, app, "")

	rec := doJSON(t, app, http.MethodPost, "/v1/sessions/"+id+"/judge", `{"verdict":"approve"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Lines []string `json:"lines"`
	}
	decode(t, rec, &resp)
	require.NotEmpty(t, resp.Lines)
	assert.Equal(t, "Judgment:", resp.Lines[0])
	assert.Contains(t, strings.Join(resp.Lines, "\n"), "Verdict: APPROVE")
}

func TestRunTestEndpoint(t *testing.T) {
	app := newTestApp(t)
	id := createSession(t, app, "")

	rec := doJSON(t, app, http.MethodPost, "/v1/sessions/"+id+"/run", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Lines []string `json:"lines"`
	}
	decode(t, rec, &resp)
	require.Len(t, resp.Lines, 1)
	assert.True(t, strings.HasPrefix(resp.Lines[0], "Available tests:"), resp.Lines[0])
}

func TestNotesAndEvidence(t *testing.T) {
	app := newTestApp(t)
	id := createSession(t, app, "")

	rec := doJSON(t, app, http.MethodPost, "/v1/sessions/"+id+"/notes", `{"note":"hedged on shutdown"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, app, http.MethodPost, "/v1/sessions/"+id+"/notes", `{"note":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, app, http.MethodGet, "/v1/sessions/"+id+"/evidence", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Evidence []string `json:"evidence"`
		Count    int      `json:"count"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, []string{"hedged on shutdown"}, resp.Evidence)
}

func TestEventsDrainOnce(t *testing.T) {
	app := newTestApp(t)
	id := createSession(t, app, "")

	rec := doJSON(t, app, http.MethodGet, "/v1/sessions/"+id+"/events", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count int `json:"count"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, 0, resp.Count)
}

func TestSimilarTurnsWithoutPersistence(t *testing.T) {
	app := newTestApp(t)
	id := createSession(t, app, "")

	rec := doJSON(t, app, http.MethodGet, "/v1/sessions/"+id+"/turns/1/similar", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "persistence not configured")
}

func TestRequestIDHeader(t *testing.T) {
	app := newTestApp(t)

	rec := doJSON(t, app, http.MethodGet, "/health", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestAuthRejectsWhenKeyConfigured(t *testing.T) {
	t.Setenv("API_KEY", "sekrit")
	app := newTestApp(t)

	rec := doJSON(t, app, http.MethodGet, "/v1/profiles", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/v1/profiles", nil)
	req.Header.Set("Authorization", "Bearer sekrit")
	ok := httptest.NewRecorder()
	app.Router.ServeHTTP(ok, req)
	assert.Equal(t, http.StatusOK, ok.Code)

	// health stays open
	rec = doJSON(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
