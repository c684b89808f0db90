package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/capflow/backend/internal/apperror"
	"github.com/capflow/backend/internal/model"
	"github.com/capflow/backend/internal/rating"
)

// ProjectRepositoryInterface defines the contract for project data access.
// Implementations must be safe for concurrent use.
type ProjectRepositoryInterface interface {
	Create(ctx context.Context, project *model.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	List(ctx context.Context) ([]model.Project, error)
	ListByStatus(ctx context.Context, status model.ProjectStatus) ([]model.Project, error)
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	Issue(ctx context.Context, project *model.Project) error
}

// BankRepoForProjects provides the bank lookups project operations need.
type BankRepoForProjects interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Bank, error)
}

// ProjectService handles business logic for the project pipeline, including
// allocation and issuance.
type ProjectService struct {
	repo     ProjectRepositoryInterface
	bankRepo BankRepoForProjects
	scale    rating.Scale
	now      func() time.Time
}

// NewProjectService creates a new ProjectService with the given repositories.
func NewProjectService(repo ProjectRepositoryInterface, bankRepo BankRepoForProjects, scale rating.Scale) *ProjectService {
	return &ProjectService{repo: repo, bankRepo: bankRepo, scale: scale, now: time.Now}
}

type CreateProjectInput struct {
	Name                string          `json:"name" validate:"required"`
	Country             string          `json:"country" validate:"required"`
	CapacityNeeded      decimal.Decimal `json:"capacityNeeded"`
	TenorRequired       *int            `json:"tenorRequired" validate:"omitempty,min=1"`
	ProjectType         []string        `json:"projectType"`
	MinimumCreditRating *string         `json:"minimumCreditRating"`
	PlannedIssuanceDate *time.Time      `json:"plannedIssuanceDate"`
	AllocatedBankID     *uuid.UUID      `json:"allocatedBankId"`
}

type UpdateProjectInput struct {
	Name                string          `json:"name" validate:"required"`
	Country             string          `json:"country" validate:"required"`
	CapacityNeeded      decimal.Decimal `json:"capacityNeeded"`
	TenorRequired       *int            `json:"tenorRequired" validate:"omitempty,min=1"`
	ProjectType         []string        `json:"projectType"`
	MinimumCreditRating *string         `json:"minimumCreditRating"`
	PlannedIssuanceDate *time.Time      `json:"plannedIssuanceDate"`
	AllocatedBankID     *uuid.UUID      `json:"allocatedBankId"`
}

func (s *ProjectService) validateMinimumRating(r *string) error {
	if r == nil || *r == "" {
		return nil
	}
	if !s.scale.Known(*r) {
		return apperror.ValidationError("minimumCreditRating", fmt.Sprintf("unknown credit rating %q", *r))
	}
	return nil
}

// Create registers a new planned project.
func (s *ProjectService) Create(ctx context.Context, input CreateProjectInput) (*model.Project, error) {
	if err := validate.Struct(input); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}
	if err := s.validateMinimumRating(input.MinimumCreditRating); err != nil {
		return nil, err
	}
	if !input.CapacityNeeded.IsPositive() {
		return nil, apperror.ValidationError("capacityNeeded", "capacity needed must be positive")
	}

	project := &model.Project{
		Name:                input.Name,
		Country:             input.Country,
		CapacityNeeded:      input.CapacityNeeded,
		TenorRequired:       input.TenorRequired,
		ProjectType:         pq.StringArray(input.ProjectType),
		MinimumCreditRating: normalizeRating(input.MinimumCreditRating),
		Status:              model.ProjectStatusPlanned,
		PlannedIssuanceDate: input.PlannedIssuanceDate,
		AllocatedBankID:     input.AllocatedBankID,
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	return project, nil
}

// Get retrieves a project by its ID.
func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting project %s: %w", id, err)
	}
	return project, nil
}

// List retrieves all projects, optionally filtered by status.
func (s *ProjectService) List(ctx context.Context, status *model.ProjectStatus) ([]model.Project, error) {
	var (
		projects []model.Project
		err      error
	)
	if status != nil {
		projects, err = s.repo.ListByStatus(ctx, *status)
	} else {
		projects, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// Update replaces a project's stored fields. Issued projects stay issued;
// status and issuance date are not touched here.
func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, input UpdateProjectInput) (*model.Project, error) {
	if err := validate.Struct(input); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}
	if err := s.validateMinimumRating(input.MinimumCreditRating); err != nil {
		return nil, err
	}
	if !input.CapacityNeeded.IsPositive() {
		return nil, apperror.ValidationError("capacityNeeded", "capacity needed must be positive")
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting project %s: %w", id, err)
	}

	existing.Name = input.Name
	existing.Country = input.Country
	existing.CapacityNeeded = input.CapacityNeeded
	existing.TenorRequired = input.TenorRequired
	existing.ProjectType = pq.StringArray(input.ProjectType)
	existing.MinimumCreditRating = normalizeRating(input.MinimumCreditRating)
	existing.PlannedIssuanceDate = input.PlannedIssuanceDate
	existing.AllocatedBankID = input.AllocatedBankID

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("updating project %s: %w", id, err)
	}
	return existing, nil
}

// Delete removes a project.
func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	return nil
}

// Allocate records the bank chosen for a planned project. A nil bankID clears
// the allocation.
func (s *ProjectService) Allocate(ctx context.Context, id uuid.UUID, bankID *uuid.UUID) (*model.Project, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting project %s: %w", id, err)
	}
	if project.Status != model.ProjectStatusPlanned {
		return nil, apperror.Conflict("only planned projects can be allocated")
	}

	if bankID != nil {
		if _, err := s.bankRepo.GetByID(ctx, *bankID); err != nil {
			return nil, apperror.BadRequest("allocated bank does not exist")
		}
	}

	project.AllocatedBankID = bankID
	if err := s.repo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("updating project %s: %w", id, err)
	}
	return project, nil
}

// Issue converts a planned project into an issued one, booking its capacity
// need against the allocated bank. The project must have an allocation.
func (s *ProjectService) Issue(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting project %s: %w", id, err)
	}
	if project.Status == model.ProjectStatusIssued {
		return nil, apperror.Conflict("project is already issued")
	}
	if project.AllocatedBankID == nil {
		return nil, apperror.BadRequest("project has no allocated bank")
	}

	now := s.now()
	project.Status = model.ProjectStatusIssued
	project.IssuanceDate = &now

	if err := s.repo.Issue(ctx, project); err != nil {
		return nil, fmt.Errorf("issuing project %s: %w", id, err)
	}
	return project, nil
}
