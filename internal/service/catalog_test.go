package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/sakif/api-catalog/internal/apperror"
	"github.com/sakif/api-catalog/internal/model"
)

// mockAPIRepo is an in-memory repository.APIRepository for testing the
// service without a database.
type mockAPIRepo struct {
	apis   map[int64]*model.API
	nextID int64
}

func newMockAPIRepo() *mockAPIRepo {
	return &mockAPIRepo{apis: make(map[int64]*model.API)}
}

func (m *mockAPIRepo) Create(_ context.Context, api *model.API) error {
	m.nextID++
	api.ID = m.nextID
	if api.Method == "" {
		api.Method = "GET"
	}
	api.CreatedAt = time.Now()
	api.UpdatedAt = api.CreatedAt
	stored := *api
	m.apis[api.ID] = &stored
	return nil
}

func (m *mockAPIRepo) GetByID(_ context.Context, id int64) (*model.API, error) {
	api, ok := m.apis[id]
	if !ok {
		return nil, apperror.NotFound("api", id)
	}
	result := *api
	return &result, nil
}

func (m *mockAPIRepo) List(_ context.Context) ([]model.API, error) {
	result := make([]model.API, 0, len(m.apis))
	for id := int64(1); id <= m.nextID; id++ {
		if api, ok := m.apis[id]; ok {
			result = append(result, *api)
		}
	}
	return result, nil
}

func (m *mockAPIRepo) UpdateRating(_ context.Context, id int64, rating int) error {
	api, ok := m.apis[id]
	if !ok {
		return apperror.NotFound("api", id)
	}
	api.Rating = rating
	return nil
}

func (m *mockAPIRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.apis[id]; !ok {
		return apperror.NotFound("api", id)
	}
	delete(m.apis, id)
	return nil
}

func newTestCatalog(t *testing.T) (*CatalogService, *mockAPIRepo) {
	t.Helper()
	repo := newMockAPIRepo()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewCatalogService(repo, logger), repo
}

func validInput() CreateAPIInput {
	return CreateAPIInput{
		Name:        "Cat Facts",
		Tech:        "REST",
		Description: "random cat facts",
		URL:         "https://catfact.ninja",
		Code:        "curl https://catfact.ninja/fact",
		Endpoint:    "https://catfact.ninja/fact",
	}
}

func TestCatalogCreate_Success(t *testing.T) {
	svc, _ := newTestCatalog(t)

	api, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if api.ID == 0 {
		t.Error("expected an assigned ID")
	}
	if api.Name != "Cat Facts" {
		t.Errorf("Name = %q, want %q", api.Name, "Cat Facts")
	}
}

func TestCatalogCreate_TrimsFields(t *testing.T) {
	svc, _ := newTestCatalog(t)

	in := validInput()
	in.Name = "  Cat Facts  "
	in.Endpoint = " https://catfact.ninja/fact "

	api, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if api.Name != "Cat Facts" {
		t.Errorf("Name = %q, want trimmed", api.Name)
	}
	if api.Endpoint != "https://catfact.ninja/fact" {
		t.Errorf("Endpoint = %q, want trimmed", api.Endpoint)
	}
}

func TestCatalogCreate_MissingFieldsListedTogether(t *testing.T) {
	svc, _ := newTestCatalog(t)

	in := validInput()
	in.Tech = ""
	in.Endpoint = "   "

	_, err := svc.Create(context.Background(), in)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
	// The message names every missing field, not just the first.
	msg := err.Error()
	if !strings.Contains(msg, "tech") || !strings.Contains(msg, "endpoint") {
		t.Errorf("error message %q should list both missing fields", msg)
	}
}

func TestCatalogCreate_AllFieldsMissing(t *testing.T) {
	svc, _ := newTestCatalog(t)

	_, err := svc.Create(context.Background(), CreateAPIInput{})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
}

func TestCatalogRate_Overwrites(t *testing.T) {
	svc, repo := newTestCatalog(t)
	api, _ := svc.Create(context.Background(), validInput())

	if err := svc.Rate(context.Background(), api.ID, 5); err != nil {
		t.Fatalf("Rate(5) error = %v", err)
	}
	if err := svc.Rate(context.Background(), api.ID, 2); err != nil {
		t.Fatalf("Rate(2) error = %v", err)
	}

	if got := repo.apis[api.ID].Rating; got != 2 {
		t.Errorf("Rating = %d, want 2 (overwritten, not averaged)", got)
	}
}

func TestCatalogRate_NotFound(t *testing.T) {
	svc, _ := newTestCatalog(t)

	if err := svc.Rate(context.Background(), 999, 4); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestCatalogDelete(t *testing.T) {
	svc, _ := newTestCatalog(t)
	api, _ := svc.Create(context.Background(), validInput())

	if err := svc.Delete(context.Background(), api.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.GetByID(context.Background(), api.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}

	apis, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(apis) != 0 {
		t.Errorf("List() returned %d entries after delete, want 0", len(apis))
	}
}
