package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/capflow/backend/internal/apperror"
	"github.com/capflow/backend/internal/model"
	"github.com/capflow/backend/internal/rating"
	"github.com/capflow/backend/internal/repository"
)

// MockProjectRepo implements ProjectRepositoryInterface for testing
type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) Create(ctx context.Context, project *model.Project) error {
	args := m.Called(ctx, project)
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepo) List(ctx context.Context) ([]model.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectRepo) ListByStatus(ctx context.Context, status model.ProjectStatus) ([]model.Project, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectRepo) Update(ctx context.Context, project *model.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepo) Issue(ctx context.Context, project *model.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func newProjectService(repo *MockProjectRepo, bankRepo *MockBankRepo) *ProjectService {
	return NewProjectService(repo, bankRepo, rating.DefaultScale())
}

func TestProjectService_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     CreateProjectInput
		setupMock func(*MockProjectRepo)
		wantErr   bool
		check     func(*testing.T, *model.Project)
	}{
		{
			name: "success defaults to planned",
			input: CreateProjectInput{
				Name:           "Baltic Wind Farm",
				Country:        "EE",
				CapacityNeeded: decimal.NewFromInt(120),
				ProjectType:    []string{"Wind"},
			},
			setupMock: func(m *MockProjectRepo) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Project) bool {
					return p.Status == model.ProjectStatusPlanned
				})).Return(nil)
			},
			check: func(t *testing.T, p *model.Project) {
				assert.Equal(t, model.ProjectStatusPlanned, p.Status)
				assert.Nil(t, p.IssuanceDate)
			},
		},
		{
			name: "missing country",
			input: CreateProjectInput{
				Name:           "Baltic Wind Farm",
				CapacityNeeded: decimal.NewFromInt(120),
			},
			setupMock: func(m *MockProjectRepo) {},
			wantErr:   true,
		},
		{
			name: "non-positive capacity",
			input: CreateProjectInput{
				Name:           "Baltic Wind Farm",
				Country:        "EE",
				CapacityNeeded: decimal.Zero,
			},
			setupMock: func(m *MockProjectRepo) {},
			wantErr:   true,
		},
		{
			name: "unknown minimum rating",
			input: CreateProjectInput{
				Name:                "Baltic Wind Farm",
				Country:             "EE",
				CapacityNeeded:      decimal.NewFromInt(120),
				MinimumCreditRating: strPtr("Q"),
			},
			setupMock: func(m *MockProjectRepo) {},
			wantErr:   true,
		},
		{
			name: "repository error",
			input: CreateProjectInput{
				Name:           "Baltic Wind Farm",
				Country:        "EE",
				CapacityNeeded: decimal.NewFromInt(120),
			},
			setupMock: func(m *MockProjectRepo) {
				m.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := new(MockProjectRepo)
			tt.setupMock(repo)
			svc := newProjectService(repo, new(MockBankRepo))

			project, err := svc.Create(context.Background(), tt.input)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.check != nil {
					tt.check(t, project)
				}
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestProjectService_List_StatusFilter(t *testing.T) {
	t.Parallel()

	repo := new(MockProjectRepo)
	planned := model.ProjectStatusPlanned
	repo.On("ListByStatus", mock.Anything, planned).Return([]model.Project{{Name: "Baltic Wind Farm"}}, nil)
	svc := newProjectService(repo, new(MockBankRepo))

	projects, err := svc.List(context.Background(), &planned)

	assert.NoError(t, err)
	assert.Len(t, projects, 1)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "List")
}

func TestProjectService_Allocate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		project   *model.Project
		bankKnown bool
		clear     bool
		wantErr   bool
	}{
		{
			name:      "success",
			project:   &model.Project{ID: uuid.New(), Status: model.ProjectStatusPlanned},
			bankKnown: true,
		},
		{
			name:    "clearing allocation skips bank lookup",
			project: &model.Project{ID: uuid.New(), Status: model.ProjectStatusPlanned},
			clear:   true,
		},
		{
			name:    "issued project rejected",
			project: &model.Project{ID: uuid.New(), Status: model.ProjectStatusIssued},
			wantErr: true,
		},
		{
			name:    "unknown bank rejected",
			project: &model.Project{ID: uuid.New(), Status: model.ProjectStatusPlanned},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := new(MockProjectRepo)
			bankRepo := new(MockBankRepo)
			repo.On("GetByID", mock.Anything, tt.project.ID).Return(tt.project, nil)

			var bankID *uuid.UUID
			if !tt.clear {
				id := uuid.New()
				bankID = &id
				if tt.bankKnown {
					bankRepo.On("GetByID", mock.Anything, id).Return(&model.Bank{ID: id}, nil)
				} else if tt.project.Status == model.ProjectStatusPlanned {
					bankRepo.On("GetByID", mock.Anything, id).Return(nil, repository.ErrBankNotFound)
				}
			}
			if !tt.wantErr {
				repo.On("Update", mock.Anything, mock.Anything).Return(nil)
			}

			svc := newProjectService(repo, bankRepo)
			project, err := svc.Allocate(context.Background(), tt.project.ID, bankID)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, bankID, project.AllocatedBankID)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestProjectService_Issue(t *testing.T) {
	t.Parallel()

	bankID := uuid.New()

	tests := []struct {
		name      string
		project   *model.Project
		wantErr   bool
		errStatus int
	}{
		{
			name: "success",
			project: &model.Project{
				ID:              uuid.New(),
				Status:          model.ProjectStatusPlanned,
				CapacityNeeded:  decimal.NewFromInt(120),
				AllocatedBankID: &bankID,
			},
		},
		{
			name: "already issued",
			project: &model.Project{
				ID:              uuid.New(),
				Status:          model.ProjectStatusIssued,
				AllocatedBankID: &bankID,
			},
			wantErr:   true,
			errStatus: 409,
		},
		{
			name: "no allocated bank",
			project: &model.Project{
				ID:     uuid.New(),
				Status: model.ProjectStatusPlanned,
			},
			wantErr:   true,
			errStatus: 400,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := new(MockProjectRepo)
			repo.On("GetByID", mock.Anything, tt.project.ID).Return(tt.project, nil)
			if !tt.wantErr {
				repo.On("Issue", mock.Anything, mock.MatchedBy(func(p *model.Project) bool {
					return p.Status == model.ProjectStatusIssued && p.IssuanceDate != nil
				})).Return(nil)
			}

			svc := newProjectService(repo, new(MockBankRepo))
			svc.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

			project, err := svc.Issue(context.Background(), tt.project.ID)

			if tt.wantErr {
				var appErr *apperror.AppError
				assert.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.errStatus, appErr.StatusCode)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, model.ProjectStatusIssued, project.Status)
				assert.Equal(t, 2026, project.IssuanceDate.Year())
			}
			repo.AssertExpectations(t)
		})
	}
}
