package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/capflow/backend/internal/model"
	"github.com/capflow/backend/internal/repository"
)

// MockAllocationService implements AllocationServiceInterface for testing
type MockAllocationService struct {
	mock.Mock
}

func (m *MockAllocationService) RankBanks(ctx context.Context, projectID uuid.UUID) ([]model.RankedBank, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RankedBank), args.Error(1)
}

func (m *MockAllocationService) Optimize(ctx context.Context, forced map[uuid.UUID]uuid.UUID) ([]model.OptimizationResult, error) {
	args := m.Called(ctx, forced)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OptimizationResult), args.Error(1)
}

func TestAllocationHandler_Ranking(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		projectID  string
		setupMock  func(*MockAllocationService, uuid.UUID)
		wantStatus int
	}{
		{
			name:      "success",
			projectID: uuid.New().String(),
			setupMock: func(m *MockAllocationService, id uuid.UUID) {
				m.On("RankBanks", mock.Anything, id).Return([]model.RankedBank{
					{Bank: model.Bank{Name: "Nordic Trade Bank"}, Score: 0.42, Eligible: true},
					{Bank: model.Bank{Name: "Andes Capital"}, Eligible: false, DisqualifyReasons: []string{"Does not operate in project country"}},
				}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid uuid",
			projectID:  "nope",
			setupMock:  func(m *MockAllocationService, id uuid.UUID) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:      "project not found",
			projectID: uuid.New().String(),
			setupMock: func(m *MockAllocationService, id uuid.UUID) {
				m.On("RankBanks", mock.Anything, id).
					Return(nil, fmt.Errorf("getting project: %w", repository.ErrProjectNotFound))
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockService := new(MockAllocationService)
			handler := NewAllocationHandler(mockService)

			projectID, _ := uuid.Parse(tt.projectID)
			tt.setupMock(mockService, projectID)

			req := requestWithID(http.MethodGet, "/api/projects/"+tt.projectID+"/ranking", tt.projectID, nil)
			w := httptest.NewRecorder()

			handler.Ranking(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestAllocationHandler_Optimize(t *testing.T) {
	t.Parallel()

	projectID := uuid.New()
	bankID := uuid.New()

	mockService := new(MockAllocationService)
	handler := NewAllocationHandler(mockService)

	forced := map[uuid.UUID]uuid.UUID{projectID: bankID}
	mockService.On("Optimize", mock.Anything, forced).Return([]model.OptimizationResult{
		{ProjectID: projectID, RecommendedBankID: &bankID, Score: -1, Forced: true},
	}, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"forcedAssignments": map[string]string{projectID.String(): bankID.String()},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/optimize", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.Optimize(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var results []model.OptimizationResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&results))
	require.Len(t, results, 1)
	assert.True(t, results[0].Forced)
	mockService.AssertExpectations(t)
}

func TestAllocationHandler_Optimize_EmptyBody(t *testing.T) {
	t.Parallel()

	mockService := new(MockAllocationService)
	handler := NewAllocationHandler(mockService)

	mockService.On("Optimize", mock.Anything, map[uuid.UUID]uuid.UUID(nil)).
		Return([]model.OptimizationResult{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/optimize", nil)
	w := httptest.NewRecorder()

	handler.Optimize(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}
