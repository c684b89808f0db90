package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/capflow/backend/internal/apperror"
	"github.com/capflow/backend/internal/model"
	"github.com/capflow/backend/internal/repository"
)

// SettingsRepositoryInterface defines the contract for settings persistence.
type SettingsRepositoryInterface interface {
	Get(ctx context.Context) (*model.Settings, error)
	Save(ctx context.Context, settings *model.Settings) error
}

// SettingsService handles the singleton application settings. Stored weights
// always sum to 1.0; renormalization happens on save, not on read.
type SettingsService struct {
	repo SettingsRepositoryInterface
}

// NewSettingsService creates a new SettingsService with the given repository.
func NewSettingsService(repo SettingsRepositoryInterface) *SettingsService {
	return &SettingsService{repo: repo}
}

type UpdateSettingsInput struct {
	Weights           model.Weights `json:"weights"`
	SensitiveSubjects []string      `json:"sensitiveSubjects"`
	Theme             string        `json:"theme" validate:"omitempty,oneof=light dark"`
	HideCapacity      bool          `json:"hideCapacity"`
}

// Get returns the saved settings, or the defaults when nothing has been saved.
func (s *SettingsService) Get(ctx context.Context) (*model.Settings, error) {
	settings, err := s.repo.Get(ctx)
	if errors.Is(err, repository.ErrSettingsNotFound) {
		defaults := model.DefaultSettings()
		return &defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting settings: %w", err)
	}
	return settings, nil
}

// Update validates, normalizes and persists the settings. Weights are scaled
// proportionally so they sum to 1.0; non-positive sums fall back to defaults.
func (s *SettingsService) Update(ctx context.Context, input UpdateSettingsInput) (*model.Settings, error) {
	if err := validate.Struct(input); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}
	if input.Weights.CapacityHeadroom < 0 || input.Weights.PriceCompetitiveness < 0 || input.Weights.CreditRating < 0 {
		return nil, apperror.ValidationError("weights", "weights cannot be negative")
	}

	settings := &model.Settings{
		Weights:           normalizeWeights(input.Weights),
		SensitiveSubjects: pq.StringArray(input.SensitiveSubjects),
		Theme:             input.Theme,
		HideCapacity:      input.HideCapacity,
	}
	if settings.Theme == "" {
		settings.Theme = model.DefaultSettings().Theme
	}
	if settings.SensitiveSubjects == nil {
		settings.SensitiveSubjects = pq.StringArray{}
	}

	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("saving settings: %w", err)
	}
	return settings, nil
}

// normalizeWeights scales the weights so they sum to 1.0.
func normalizeWeights(w model.Weights) model.Weights {
	sum := w.Sum()
	if sum <= 0 {
		return model.DefaultSettings().Weights
	}
	return model.Weights{
		CapacityHeadroom:     w.CapacityHeadroom / sum,
		PriceCompetitiveness: w.PriceCompetitiveness / sum,
		CreditRating:         w.CreditRating / sum,
	}
}
