// Package service contains the business logic layer.
//
// Services accept plain values (never *http.Request), enforce the
// application's rules, and return domain errors from internal/apperror.
// The handlers translate those errors into HTTP responses.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/api-catalog/internal/apperror"
	"github.com/sakif/api-catalog/internal/model"
	"github.com/sakif/api-catalog/internal/repository"
)

// CatalogService handles catalog entry operations: creation, listing,
// rating and deletion. Entries have no update-in-place operation for
// fields other than the rating.
type CatalogService struct {
	repo   repository.APIRepository
	logger *slog.Logger
}

// NewCatalogService creates a CatalogService.
func NewCatalogService(repo repository.APIRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		logger: logger,
	}
}

// CreateAPIInput carries the admin form's fields. All six are required.
type CreateAPIInput struct {
	Name        string
	Tech        string
	Description string
	URL         string
	Code        string
	Endpoint    string
}

// Validate returns a ValidationError naming every missing field, so the
// form can be re-rendered with the full list rather than one at a time.
func (in CreateAPIInput) Validate() error {
	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"name", in.Name},
		{"tech", in.Tech},
		{"desc", in.Description},
		{"url", in.URL},
		{"code", in.Code},
		{"endpoint", in.Endpoint},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return apperror.ValidationFailed(missing[0],
			"missing required fields: "+strings.Join(missing, ", "))
	}
	return nil
}

// Create validates and persists a new catalog entry.
func (s *CatalogService) Create(ctx context.Context, in CreateAPIInput) (*model.API, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	api := &model.API{
		Name:        strings.TrimSpace(in.Name),
		Tech:        strings.TrimSpace(in.Tech),
		Description: in.Description,
		URL:         strings.TrimSpace(in.URL),
		Code:        in.Code,
		Endpoint:    strings.TrimSpace(in.Endpoint),
	}

	if err := s.repo.Create(ctx, api); err != nil {
		s.logger.Error("failed to create api",
			slog.String("name", api.Name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating api: %w", err)
	}

	s.logger.Info("api created",
		slog.Int64("id", api.ID),
		slog.String("name", api.Name),
	)

	return api, nil
}

// GetByID retrieves a catalog entry.
// Returns apperror.ErrNotFound if no entry has the id.
func (s *CatalogService) GetByID(ctx context.Context, id int64) (*model.API, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns the full catalog.
func (s *CatalogService) List(ctx context.Context) ([]model.API, error) {
	apis, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list apis", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing apis: %w", err)
	}
	return apis, nil
}

// Rate overwrites an entry's rating with the submitted value. No bounds are
// enforced beyond it being an integer; the last submitted value wins.
func (s *CatalogService) Rate(ctx context.Context, id int64, rating int) error {
	if err := s.repo.UpdateRating(ctx, id, rating); err != nil {
		return err
	}
	s.logger.Info("api rated",
		slog.Int64("id", id),
		slog.Int("rating", rating),
	)
	return nil
}

// Delete removes a catalog entry unconditionally.
// Returns apperror.ErrNotFound if no entry has the id.
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("api deleted", slog.Int64("id", id))
	return nil
}
