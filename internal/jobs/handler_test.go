package jobs_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"jobtracker-backend/internal/jobs"
	"jobtracker-backend/internal/shared/server/middleware"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(middleware.Auth("test"))
	jobs.NewHandler(jobs.NewService(jobs.NewMemoryRepo())).RegisterRoutes(api)
	return r
}

func do(t *testing.T, r http.Handler, method, path, user string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", user)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body=%s)", err, rec.Body.String())
	}
	return rec, env
}

func TestJobsCreateGetAndForbiddenUpdate(t *testing.T) {
	r := newRouter()

	rec, env := do(t, r, http.MethodPost, "/api/v1/jobs", "poster", map[string]any{
		"title":   "Backend Engineer",
		"company": "Acme",
		"salary":  "$100,000 - $120,000",
		"skills":  []string{"Go"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var created jobs.JobResponse
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode job: %v", err)
	}
	if created.ID == "" || created.PostedBy != "poster" {
		t.Fatalf("unexpected job %+v", created)
	}

	rec, _ = do(t, r, http.MethodGet, "/api/v1/jobs/"+created.ID, "someone-else", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for public read, got %d", rec.Code)
	}

	rec, env = do(t, r, http.MethodPut, "/api/v1/jobs/"+created.ID, "someone-else", map[string]any{
		"title": "Hijacked", "company": "Acme",
	})
	if rec.Code != http.StatusForbidden || env.Code != "forbidden" {
		t.Fatalf("expected 403 forbidden, got %d %q", rec.Code, env.Code)
	}

	rec, env = do(t, r, http.MethodGet, "/api/v1/jobs/does-not-exist", "poster", nil)
	if rec.Code != http.StatusNotFound || env.Code != "not_found" {
		t.Fatalf("expected 404 not_found, got %d %q", rec.Code, env.Code)
	}
}

func TestJobsCreateValidation(t *testing.T) {
	r := newRouter()
	rec, env := do(t, r, http.MethodPost, "/api/v1/jobs", "poster", map[string]any{"title": "No company"})
	if rec.Code != http.StatusBadRequest || env.Code != "validation_error" {
		t.Fatalf("expected 400 validation_error, got %d %q", rec.Code, env.Code)
	}
	if env.Success {
		t.Fatalf("expected success=false")
	}
}

func TestJobsListMine(t *testing.T) {
	r := newRouter()
	do(t, r, http.MethodPost, "/api/v1/jobs", "a", map[string]any{"title": "One", "company": "Acme"})
	do(t, r, http.MethodPost, "/api/v1/jobs", "b", map[string]any{"title": "Two", "company": "Globex"})

	rec, env := do(t, r, http.MethodGet, "/api/v1/jobs?mine=true", "b", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var list []jobs.JobResponse
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].Company != "Globex" {
		t.Fatalf("unexpected list %+v", list)
	}
}
