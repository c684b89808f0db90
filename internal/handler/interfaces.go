package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/capflow/backend/internal/model"
	"github.com/capflow/backend/internal/service"
)

// BankServiceInterface for handler testing
type BankServiceInterface interface {
	Create(ctx context.Context, input service.CreateBankInput) (*model.BankView, error)
	Get(ctx context.Context, id uuid.UUID) (*model.BankView, error)
	List(ctx context.Context) ([]model.BankView, error)
	Update(ctx context.Context, id uuid.UUID, input service.UpdateBankInput) (*model.BankView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProjectServiceInterface for handler testing
type ProjectServiceInterface interface {
	Create(ctx context.Context, input service.CreateProjectInput) (*model.Project, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Project, error)
	List(ctx context.Context, status *model.ProjectStatus) ([]model.Project, error)
	Update(ctx context.Context, id uuid.UUID, input service.UpdateProjectInput) (*model.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Allocate(ctx context.Context, id uuid.UUID, bankID *uuid.UUID) (*model.Project, error)
	Issue(ctx context.Context, id uuid.UUID) (*model.Project, error)
}

// SettingsServiceInterface for handler testing
type SettingsServiceInterface interface {
	Get(ctx context.Context) (*model.Settings, error)
	Update(ctx context.Context, input service.UpdateSettingsInput) (*model.Settings, error)
}

// AllocationServiceInterface for handler testing
type AllocationServiceInterface interface {
	RankBanks(ctx context.Context, projectID uuid.UUID) ([]model.RankedBank, error)
	Optimize(ctx context.Context, forced map[uuid.UUID]uuid.UUID) ([]model.OptimizationResult, error)
}

// DashboardServiceInterface for handler testing
type DashboardServiceInterface interface {
	Get(ctx context.Context) (*model.DashboardData, error)
}
