package web

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vitalcoach/backend/internal/config"
	"github.com/vitalcoach/backend/internal/importer"
	"github.com/vitalcoach/backend/internal/store"
)

// Stub stores let handler tests run without a database.

type stubFoodStore struct {
	existing     []string
	foods        []store.Food
	inserted     []importer.FoodItem
	insertResult store.BulkInsertResult
	deleteErr    error
	deletedID    string
}

func (s *stubFoodStore) ExistingNames(context.Context) ([]string, error) {
	return s.existing, nil
}

func (s *stubFoodStore) BulkInsert(_ context.Context, items []importer.FoodItem) (store.BulkInsertResult, error) {
	s.inserted = items
	if s.insertResult.Inserted == 0 && s.insertResult.Failed == nil {
		return store.BulkInsertResult{Inserted: len(items)}, nil
	}
	return s.insertResult, nil
}

func (s *stubFoodStore) List(context.Context) ([]store.Food, error) {
	return s.foods, nil
}

func (s *stubFoodStore) Delete(_ context.Context, id string) error {
	s.deletedID = id
	return s.deleteErr
}

type stubPlanStore struct {
	plans     []store.Plan
	created   *store.Plan
	deleteErr error
}

func (s *stubPlanStore) Create(_ context.Context, plan store.Plan) (store.Plan, error) {
	plan.ID = "11111111-2222-3333-4444-555555555555"
	plan.CreatedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.created = &plan
	return plan, nil
}

func (s *stubPlanStore) List(_ context.Context, clientName string, planType store.PlanType) ([]store.Plan, error) {
	var out []store.Plan
	for _, p := range s.plans {
		if clientName != "" && p.ClientName != clientName {
			continue
		}
		if planType != "" && p.Type != planType {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *stubPlanStore) Delete(_ context.Context, id string) error {
	return s.deleteErr
}

type stubCheckInStore struct {
	checkIns []store.CheckIn
	created  *store.CheckIn
}

func (s *stubCheckInStore) Create(_ context.Context, ci store.CheckIn) (store.CheckIn, error) {
	ci.ID = "66666666-7777-8888-9999-000000000000"
	ci.CreatedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.created = &ci
	return ci, nil
}

func (s *stubCheckInStore) List(_ context.Context, clientName string) ([]store.CheckIn, error) {
	return s.checkIns, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           8080,
			RequestTimeout: time.Minute,
		},
		Import: config.ImportConfig{
			MaxFileSize: 1 << 20,
			MaxRows:     1000,
			BatchSize:   10,
			Timeout:     time.Minute,
		},
		Rate: config.RateLimitConfig{Enabled: false},
		Security: config.SecurityConfig{
			EnableCSP:      true,
			AllowedOrigins: []string{"*"},
		},
		Logging: config.LoggingConfig{Level: "error", Format: "text"},
	}
}

type testStores struct {
	foods    *stubFoodStore
	plans    *stubPlanStore
	checkIns *stubCheckInStore
}

func newTestServer() (*Server, *testStores) {
	stores := &testStores{
		foods:    &stubFoodStore{},
		plans:    &stubPlanStore{},
		checkIns: &stubCheckInStore{},
	}
	srv := NewServer(testConfig(), stores.foods, stores.plans, stores.checkIns)
	return srv, stores
}

// doJSON posts a JSON body and returns the recorder.
func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

// doGet issues a GET request against the router.
func doGet(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

// uploadCSV posts content as a multipart file upload.
func uploadCSV(t *testing.T, srv *Server, path, content string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "foods.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}
