package sqlstore

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/api-catalog/internal/apperror"
	"github.com/sakif/api-catalog/internal/model"
)

// newTestStore opens a throwaway in-memory SQLite database. It is
// destroyed when the connection closes at test cleanup.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestAPI(t *testing.T, s *Store, name string) *model.API {
	t.Helper()
	api := &model.API{
		Name:     name,
		Tech:     "REST",
		Endpoint: "https://api.example.com/" + name,
	}
	if err := s.Create(context.Background(), api); err != nil {
		t.Fatalf("failed to create test api: %v", err)
	}
	return api
}

func TestCreateAPI(t *testing.T) {
	s := newTestStore(t)

	api := &model.API{
		Name:        "Cat Facts",
		Tech:        "REST",
		Description: "random cat facts",
		URL:         "https://catfact.ninja",
		Code:        "curl https://catfact.ninja/fact",
		Endpoint:    "https://catfact.ninja/fact",
	}

	if err := s.Create(context.Background(), api); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if api.ID == 0 {
		t.Error("expected a generated ID")
	}
	if api.Method != "GET" {
		t.Errorf("Method = %q, want default %q", api.Method, "GET")
	}
	if api.Rating != 0 {
		t.Errorf("Rating = %d, want 0", api.Rating)
	}
	if api.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestGetAPIByID(t *testing.T) {
	s := newTestStore(t)
	created := createTestAPI(t, s, "weather")

	got, err := s.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "weather" {
		t.Errorf("Name = %q, want %q", got.Name, "weather")
	}
	if got.Endpoint != created.Endpoint {
		t.Errorf("Endpoint = %q, want %q", got.Endpoint, created.Endpoint)
	}
}

func TestGetAPIByID_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetByID(context.Background(), 999)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestListAPIs(t *testing.T) {
	s := newTestStore(t)

	first := createTestAPI(t, s, "one")
	second := createTestAPI(t, s, "two")

	apis, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(apis) != 2 {
		t.Fatalf("List() returned %d entries, want 2", len(apis))
	}
	if apis[0].ID != first.ID || apis[1].ID != second.ID {
		t.Errorf("List() order = [%d, %d], want insertion order [%d, %d]",
			apis[0].ID, apis[1].ID, first.ID, second.ID)
	}
}

func TestUpdateRating_OverwritesWholesale(t *testing.T) {
	s := newTestStore(t)
	api := createTestAPI(t, s, "rated")

	if err := s.UpdateRating(context.Background(), api.ID, 5); err != nil {
		t.Fatalf("UpdateRating(5) error = %v", err)
	}
	got, err := s.GetByID(context.Background(), api.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Rating != 5 {
		t.Errorf("Rating = %d, want 5", got.Rating)
	}

	// A second submission overwrites — no averaging, no history.
	if err := s.UpdateRating(context.Background(), api.ID, 2); err != nil {
		t.Fatalf("UpdateRating(2) error = %v", err)
	}
	got, err = s.GetByID(context.Background(), api.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Rating != 2 {
		t.Errorf("Rating = %d, want 2 (last write wins)", got.Rating)
	}
}

func TestUpdateRating_NotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateRating(context.Background(), 999, 3)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestDeleteAPI(t *testing.T) {
	s := newTestStore(t)
	api := createTestAPI(t, s, "doomed")

	if err := s.Delete(context.Background(), api.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := s.GetByID(context.Background(), api.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}

	apis, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(apis) != 0 {
		t.Errorf("List() returned %d entries after delete, want 0", len(apis))
	}
}

func TestDeleteAPI_NotFound(t *testing.T) {
	s := newTestStore(t)

	if err := s.Delete(context.Background(), 999); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestRebind(t *testing.T) {
	sqlite := &Store{postgres: false}
	pg := &Store{postgres: true}

	q := `SELECT id FROM apis WHERE id = ? AND rating = ?`

	if got := sqlite.rebind(q); got != q {
		t.Errorf("sqlite rebind changed the query: %q", got)
	}
	want := `SELECT id FROM apis WHERE id = $1 AND rating = $2`
	if got := pg.rebind(q); got != want {
		t.Errorf("postgres rebind = %q, want %q", got, want)
	}
}
