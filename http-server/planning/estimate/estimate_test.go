package estimate

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"aqua-backend/internal/catalog"
	"aqua-backend/internal/storage"
)

type MockPlanningStorage struct {
	mock.Mock
}

func (m *MockPlanningStorage) GetProject(ctx context.Context, id string) (storage.Project, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(storage.Project), args.Error(1)
}

func (m *MockPlanningStorage) GetParameters(ctx context.Context) ([]storage.ParameterOverride, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.ParameterOverride), args.Error(1)
}

func planningProject() storage.Project {
	progress := make(map[string]storage.StepProgress)
	for _, step := range catalog.All() {
		progress[step.ID] = storage.StepProgress{}
	}
	return storage.Project{
		ID:             "proj-1",
		Name:           "Vanilla Sky - Batch 7",
		ProductType:    "Paper Air Freshener",
		PrintingMethod: catalog.PrintingScreen,
		HangingMethod:  catalog.HangingString,
		TargetQuantity: 1000,
		Progress:       progress,
	}
}

func TestEstimate_Success(t *testing.T) {
	mockStorage := new(MockPlanningStorage)
	mockStorage.On("GetProject", mock.Anything, "proj-1").Return(planningProject(), nil)
	mockStorage.On("GetParameters", mock.Anything).Return([]storage.ParameterOverride{}, nil)

	handler := Estimate(slog.Default(), mockStorage)

	body := `{"project_id":"proj-1","total_workers":5,"assignments":{"flowpack":3}}`
	req := httptest.NewRequest(http.MethodPost, "/api/planning/estimate", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp Response
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	require.NoError(t, err)

	assert.Len(t, resp.Estimates, 6)
	assert.Equal(t, 2, resp.Available)
	assert.Empty(t, resp.Warnings)
	// Unstaffed steps remain, so the day still carries a bottleneck.
	assert.True(t, resp.Bottleneck)

	for _, est := range resp.Estimates {
		if est.StepID == catalog.StepFlowpack {
			assert.Equal(t, 3, est.Assigned)
			assert.Equal(t, 1200, est.Capacity)
			assert.True(t, est.HoursKnown)
			assert.False(t, est.Bottleneck)
		}
	}

	mockStorage.AssertExpectations(t)
}

func TestEstimate_RejectedAssignmentBecomesWarning(t *testing.T) {
	mockStorage := new(MockPlanningStorage)
	mockStorage.On("GetProject", mock.Anything, "proj-1").Return(planningProject(), nil)
	mockStorage.On("GetParameters", mock.Anything).Return([]storage.ParameterOverride{}, nil)

	handler := Estimate(slog.Default(), mockStorage)

	// String machine maxes out at one operator.
	body := `{"project_id":"proj-1","total_workers":10,"assignments":{"string_machine":4}}`
	req := httptest.NewRequest(http.MethodPost, "/api/planning/estimate", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp Response
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))

	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "String Machine")

	// The rejected delta was not applied.
	for _, est := range resp.Estimates {
		if est.StepID == catalog.StepStringMachine {
			assert.Equal(t, 0, est.Assigned)
		}
	}
	assert.Equal(t, 10, resp.Available)
}

func TestEstimate_ProjectNotFound(t *testing.T) {
	mockStorage := new(MockPlanningStorage)
	mockStorage.On("GetProject", mock.Anything, "missing").Return(storage.Project{}, storage.ErrNotFound)
	mockStorage.On("GetParameters", mock.Anything).Return([]storage.ParameterOverride{}, nil)

	handler := Estimate(slog.Default(), mockStorage)

	body := `{"project_id":"missing","total_workers":5}`
	req := httptest.NewRequest(http.MethodPost, "/api/planning/estimate", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestEstimate_BadRequest(t *testing.T) {
	handler := Estimate(slog.Default(), new(MockPlanningStorage))

	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{broken`},
		{"missing project", `{"total_workers":5}`},
		{"zero workers", `{"project_id":"proj-1","total_workers":0}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/planning/estimate", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}
