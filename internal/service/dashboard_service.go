package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/capflow/backend/internal/model"
)

// ProjectListerInterface provides the project pipeline for dashboard figures.
type ProjectListerInterface interface {
	List(ctx context.Context) ([]model.Project, error)
}

// DashboardService aggregates portfolio-level capacity and pipeline figures.
type DashboardService struct {
	banks    BankListerInterface
	projects ProjectListerInterface
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(banks BankListerInterface, projects ProjectListerInterface) *DashboardService {
	return &DashboardService{banks: banks, projects: projects}
}

// Get computes the dashboard snapshot from current banks and projects.
func (s *DashboardService) Get(ctx context.Context) (*model.DashboardData, error) {
	banks, err := s.banks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing banks: %w", err)
	}

	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	data := &model.DashboardData{
		BankCount:         len(banks),
		CapacityByCountry: make(map[string]decimal.Decimal),
	}

	for _, b := range banks {
		data.TotalCapacity = data.TotalCapacity.Add(b.TotalCapacity)
		data.TotalUsed = data.TotalUsed.Add(b.UsedCapacity)

		available := b.AvailableCapacity()
		if available.IsNegative() {
			available = decimal.Zero
		}
		for _, c := range b.Countries {
			data.CapacityByCountry[c] = data.CapacityByCountry[c].Add(available)
		}
	}
	data.TotalAvailable = data.TotalCapacity.Sub(data.TotalUsed)

	if data.TotalCapacity.IsPositive() {
		utilization := data.TotalUsed.Div(data.TotalCapacity).Mul(decimal.NewFromInt(100))
		data.UtilizationPercent = utilization.InexactFloat64()
	}

	for _, p := range projects {
		switch p.Status {
		case model.ProjectStatusPlanned:
			data.PlannedProjects++
			data.PipelineNeeded = data.PipelineNeeded.Add(p.CapacityNeeded)
		case model.ProjectStatusIssued:
			data.IssuedProjects++
		}
	}

	return data, nil
}
