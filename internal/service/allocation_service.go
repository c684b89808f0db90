package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/capflow/backend/internal/allocation"
	"github.com/capflow/backend/internal/logger"
	"github.com/capflow/backend/internal/model"
)

// BankListerInterface provides the bank universe for ranking runs.
type BankListerInterface interface {
	List(ctx context.Context) ([]model.Bank, error)
}

// ProjectRepoForAllocation provides the project lookups ranking needs.
type ProjectRepoForAllocation interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	ListByStatus(ctx context.Context, status model.ProjectStatus) ([]model.Project, error)
}

// SettingsProviderInterface supplies the scoring weights.
type SettingsProviderInterface interface {
	Get(ctx context.Context) (*model.Settings, error)
}

// AllocationService runs the ranking engine against live data. It loads a
// consistent snapshot per call; the engine itself never touches storage.
type AllocationService struct {
	banks    BankListerInterface
	projects ProjectRepoForAllocation
	settings SettingsProviderInterface
	engine   *allocation.Engine
}

// NewAllocationService creates a new AllocationService.
func NewAllocationService(banks BankListerInterface, projects ProjectRepoForAllocation, settings SettingsProviderInterface, engine *allocation.Engine) *AllocationService {
	return &AllocationService{banks: banks, projects: projects, settings: settings, engine: engine}
}

// RankBanks evaluates every bank against one project and returns the full
// ranked list, ineligible banks included.
func (s *AllocationService) RankBanks(ctx context.Context, projectID uuid.UUID) ([]model.RankedBank, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("getting project %s: %w", projectID, err)
	}

	banks, err := s.banks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing banks: %w", err)
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	return s.engine.Rank(banks, *project, settings.Weights), nil
}

// Optimize proposes a bank for every planned project. Forced assignments pin
// a project to a bank regardless of eligibility; pairs referencing unknown
// projects or banks are logged and skipped.
func (s *AllocationService) Optimize(ctx context.Context, forced map[uuid.UUID]uuid.UUID) ([]model.OptimizationResult, error) {
	banks, err := s.banks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing banks: %w", err)
	}

	projects, err := s.projects.ListByStatus(ctx, model.ProjectStatusPlanned)
	if err != nil {
		return nil, fmt.Errorf("listing planned projects: %w", err)
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	s.warnUnknownForced(ctx, forced, banks, projects)

	return s.engine.Optimize(banks, projects, settings.Weights, forced), nil
}

// warnUnknownForced logs forced pairs the engine will silently skip, so a
// stale assignment left over from a deleted bank or project is visible.
func (s *AllocationService) warnUnknownForced(ctx context.Context, forced map[uuid.UUID]uuid.UUID, banks []model.Bank, projects []model.Project) {
	if len(forced) == 0 {
		return
	}

	bankIDs := make(map[uuid.UUID]bool, len(banks))
	for _, b := range banks {
		bankIDs[b.ID] = true
	}
	projectIDs := make(map[uuid.UUID]bool, len(projects))
	for _, p := range projects {
		projectIDs[p.ID] = true
	}

	log := logger.FromContext(ctx)
	for projectID, bankID := range forced {
		if !projectIDs[projectID] {
			log.Warn("forced assignment references unknown or non-planned project, skipping",
				"projectId", projectID, "bankId", bankID)
			continue
		}
		if !bankIDs[bankID] {
			log.Warn("forced assignment references unknown bank, skipping",
				"projectId", projectID, "bankId", bankID)
		}
	}
}
