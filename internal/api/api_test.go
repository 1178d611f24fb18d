package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lifegame-app/lifegame/internal/app/tracker"
	"github.com/lifegame-app/lifegame/internal/domain"
	"github.com/lifegame-app/lifegame/internal/infra/sqlite"
)

func newTestServer(t *testing.T) (*Server, *tracker.Tracker) {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	tr := tracker.New(db)
	tr.Load()
	return NewServer(tr, "test"), tr
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// ─── Status & Health ────────────────────────────────────────────────────────

func TestAPI_Status(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv.Handler(), "GET", "/api/status", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body map[string]string
	json.NewDecoder(w.Body).Decode(&body)
	if body["status"] != "lifegame is running" {
		t.Errorf("status = %q, unexpected", body["status"])
	}
}

func TestAPI_HealthWithoutChecker(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv.Handler(), "GET", "/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestAPI_Version(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv.Handler(), "GET", "/api/version", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body map[string]string
	json.NewDecoder(w.Body).Decode(&body)
	if body["version"] != "test" {
		t.Errorf("version = %q, want %q", body["version"], "test")
	}
}

// ─── Goals ──────────────────────────────────────────────────────────────────

func TestAPI_ListGoals_Defaults(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv.Handler(), "GET", "/api/goals", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body struct {
		Goals []domain.Goal `json:"goals"`
	}
	json.NewDecoder(w.Body).Decode(&body)
	if len(body.Goals) != len(domain.DefaultGoals()) {
		t.Errorf("goals = %d, want %d defaults", len(body.Goals), len(domain.DefaultGoals()))
	}
}

func TestAPI_AddGoal(t *testing.T) {
	srv, tr := newTestServer(t)

	w := doJSON(t, srv.Handler(), "POST", "/api/goals", `{"title":"Read","points":40}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var goal domain.Goal
	json.NewDecoder(w.Body).Decode(&goal)
	if goal.ID == "" || goal.Title != "Read" || goal.Points != 40 {
		t.Errorf("goal = %+v, unexpected", goal)
	}

	if len(tr.Goals()) != len(domain.DefaultGoals())+1 {
		t.Errorf("goal was not persisted in tracker")
	}
}

func TestAPI_AddGoal_Validation(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv.Handler(), "POST", "/api/goals", `{"title":"","points":40}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty title: status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestAPI_AddBadHabitGoal(t *testing.T) {
	srv, tr := newTestServer(t)
	h := srv.Handler()

	// Negative points track a bad habit; checking it costs XP.
	w := doJSON(t, h, "POST", "/api/goals", `{"title":"Ate junk food","points":-50}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var goal domain.Goal
	json.NewDecoder(w.Body).Decode(&goal)
	if goal.Points != -50 {
		t.Errorf("points = %d, want -50", goal.Points)
	}

	w = doJSON(t, h, "POST", "/api/goals/"+goal.ID+"/toggle", "")
	if w.Code != http.StatusOK {
		t.Fatalf("toggle status = %d, want %d", w.Code, http.StatusOK)
	}
	var body struct {
		Points int `json:"points"`
	}
	json.NewDecoder(w.Body).Decode(&body)
	if body.Points != -50 {
		t.Errorf("today points = %d, want -50", body.Points)
	}

	// Checked bad habits feed the loss ranking.
	stats := tr.Stats()
	if len(stats.Losses) != 1 || stats.Losses[0].Title != "Ate junk food" {
		t.Fatalf("losses = %+v, want the bad habit ranked", stats.Losses)
	}
	if stats.Losses[0].TotalLoss != -50 {
		t.Errorf("total loss = %d, want -50", stats.Losses[0].TotalLoss)
	}
}

func TestAPI_UpdateGoal_ToNegativePoints(t *testing.T) {
	srv, tr := newTestServer(t)
	goal := tr.Goals()[0]

	w := doJSON(t, srv.Handler(), "PUT", "/api/goals/"+goal.ID, `{"title":"Skipped gym","points":-30}`)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusNoContent, w.Body.String())
	}
	if tr.Goals()[0].Points != -30 {
		t.Errorf("points = %d, want -30", tr.Goals()[0].Points)
	}
}

func TestAPI_ToggleGoal(t *testing.T) {
	srv, tr := newTestServer(t)
	goal := tr.Goals()[0]

	w := doJSON(t, srv.Handler(), "POST", "/api/goals/"+goal.ID+"/toggle", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var body struct {
		Points      int                  `json:"points"`
		Completions domain.CompletionMap `json:"completions"`
	}
	json.NewDecoder(w.Body).Decode(&body)
	if body.Points != goal.Points {
		t.Errorf("points = %d, want %d", body.Points, goal.Points)
	}
	if !body.Completions[goal.ID] {
		t.Errorf("completion for %s not set", goal.ID)
	}

	// Toggle back off
	w = doJSON(t, srv.Handler(), "POST", "/api/goals/"+goal.ID+"/toggle", "")
	json.NewDecoder(w.Body).Decode(&body)
	if body.Points != 0 {
		t.Errorf("points after untoggle = %d, want 0", body.Points)
	}
}

func TestAPI_ToggleGoal_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv.Handler(), "POST", "/api/goals/nope/toggle", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestAPI_UpdateAndDeleteGoal(t *testing.T) {
	srv, tr := newTestServer(t)
	goal := tr.Goals()[0]

	w := doJSON(t, srv.Handler(), "PUT", "/api/goals/"+goal.ID, `{"title":"Renamed","points":55}`)
	if w.Code != http.StatusNoContent {
		t.Fatalf("update status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if tr.Goals()[0].Title != "Renamed" || tr.Goals()[0].Points != 55 {
		t.Errorf("goal not updated: %+v", tr.Goals()[0])
	}

	w = doJSON(t, srv.Handler(), "DELETE", "/api/goals/"+goal.ID, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want %d", w.Code, http.StatusNoContent)
	}

	w = doJSON(t, srv.Handler(), "DELETE", "/api/goals/"+goal.ID, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

// ─── Derived views ──────────────────────────────────────────────────────────

func TestAPI_LevelStreakStatsSummary(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	for _, path := range []string{"/api/level", "/api/streak", "/api/stats", "/api/summary", "/api/progress"} {
		w := doJSON(t, h, "GET", path, "")
		if w.Code != http.StatusOK {
			t.Errorf("GET %s: status = %d, want %d", path, w.Code, http.StatusOK)
		}
	}
}

func TestAPI_LevelFreshInstall(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv.Handler(), "GET", "/api/level", "")
	var ld domain.LevelData
	json.NewDecoder(w.Body).Decode(&ld)
	if ld.Level != 1 {
		t.Errorf("fresh level = %d, want 1", ld.Level)
	}
	if ld.NextLevelXP != 1000 {
		t.Errorf("next level XP = %d, want 1000", ld.NextLevelXP)
	}
}

// ─── Profile ────────────────────────────────────────────────────────────────

func TestAPI_Profile(t *testing.T) {
	srv, tr := newTestServer(t)
	h := srv.Handler()

	w := doJSON(t, h, "GET", "/api/profile", "")
	var profile struct {
		Name     string `json:"name"`
		Baseline int    `json:"baseline"`
	}
	json.NewDecoder(w.Body).Decode(&profile)
	if profile.Baseline != domain.DefaultBaseline {
		t.Errorf("baseline = %d, want %d", profile.Baseline, domain.DefaultBaseline)
	}

	w = doJSON(t, h, "PUT", "/api/profile", `{"name":"Sam","baseline":80}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if tr.Name() != "Sam" || tr.Baseline() != 80 {
		t.Errorf("profile not applied: name=%q baseline=%d", tr.Name(), tr.Baseline())
	}

	w = doJSON(t, h, "PUT", "/api/profile", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty update: status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	w = doJSON(t, h, "PUT", "/api/profile", `{"baseline":-5}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("negative baseline: status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
