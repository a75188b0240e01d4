package analytics_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"jobtracker-backend/internal/analytics"
	"jobtracker-backend/internal/applications"
	"jobtracker-backend/internal/jobs"
	"jobtracker-backend/internal/shared/server/middleware"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Code    string          `json:"code"`
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	now := time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC)

	jobRepo := jobs.NewMemoryRepo()
	for _, job := range []jobs.Job{
		{ID: "acme", Title: "Engineer", Company: "Acme", Salary: "$100,000 - $120,000"},
		{ID: "globex", Title: "Analyst", Company: "Globex", Salary: "$90,000"},
	} {
		if err := jobRepo.Create(ctx, job); err != nil {
			t.Fatalf("seed job: %v", err)
		}
	}

	tracker := applications.NewService(applications.NewMemoryRepo(), jobRepo)
	tracker.Now = func() time.Time { return now.AddDate(0, 0, -1) }
	if _, err := tracker.Create(ctx, "alice", "acme", "offer"); err != nil {
		t.Fatalf("seed application: %v", err)
	}
	if _, err := tracker.Create(ctx, "alice", "globex", "interviewing"); err != nil {
		t.Fatalf("seed application: %v", err)
	}

	svc := analytics.NewService(tracker)
	svc.Now = func() time.Time { return now }

	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(middleware.Auth("test"))
	analytics.NewHandler(svc).RegisterRoutes(api)
	return r
}

func get(t *testing.T, r http.Handler, path string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("X-User-Id", "alice")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return rec.Code, env
}

func TestAnalyticsEndpoint(t *testing.T) {
	r := newRouter(t)

	code, env := get(t, r, "/api/v1/analytics?range=7d")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	for _, key := range []string{"metrics", "statusDistribution", "monthlyData", "topCompanies"} {
		if _, ok := payload[key]; !ok {
			t.Fatalf("payload missing %q", key)
		}
	}
	var metrics analytics.Metrics
	if err := json.Unmarshal(payload["metrics"], &metrics); err != nil {
		t.Fatalf("decode metrics: %v", err)
	}
	if metrics.TotalApplications != 2 || metrics.OfferRate != 50 || metrics.InterviewRate != 50 {
		t.Fatalf("unexpected metrics %+v", metrics)
	}
	if metrics.AvgSalary == nil || *metrics.AvgSalary != 100000 {
		t.Fatalf("expected avg salary 100000, got %v", metrics.AvgSalary)
	}

	code, env = get(t, r, "/api/v1/analytics?range=forever")
	if code != http.StatusBadRequest || env.Code != "validation_error" {
		t.Fatalf("expected 400 validation_error, got %d %q", code, env.Code)
	}
}

func TestDashboardEndpoint(t *testing.T) {
	r := newRouter(t)
	code, env := get(t, r, "/api/v1/dashboard")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	var payload struct {
		Metrics            analytics.Metrics               `json:"metrics"`
		RecentApplications []applications.RecordResponse `json:"recentApplications"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Metrics.TotalApplications != 2 || len(payload.RecentApplications) != 2 {
		t.Fatalf("unexpected dashboard %+v", payload)
	}
}
