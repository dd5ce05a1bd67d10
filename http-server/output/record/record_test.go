package record

import (
	"context"
	"fmt"
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
	"aqua-backend/internal/service/production"
	"aqua-backend/internal/storage"
)

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) RecordOutput(ctx context.Context, req storage.RecordOutput) (storage.OutputWrite, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(storage.OutputWrite), args.Error(1)
}

func TestRecordOutput_Success(t *testing.T) {
	mockRecorder := new(MockRecorder)
	mockRecorder.On("RecordOutput", mock.Anything, mock.MatchedBy(func(req storage.RecordOutput) bool {
		return req.ProjectID == "proj-1" && req.StepID == catalog.StepFlowpack && req.Quantity == 300
	})).Return(storage.OutputWrite{
		ProjectID: "proj-1",
		StepID:    catalog.StepFlowpack,
		Quantity:  300,
		Activities: []storage.WorkerActivity{
			{WorkerID: "w-1", QuantityProduced: 150},
			{WorkerID: "w-2", QuantityProduced: 150},
		},
	}, nil)

	handler := RecordOutput(slog.Default(), mockRecorder)

	body := `{"project_id":"proj-1","step_id":"flowpack","quantity":300,"worker_ids":["w-1","w-2"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/output", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]interface{}
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
	assert.Equal(t, "success", resp["status"])
	assert.Equal(t, float64(300), resp["quantity"])
	assert.Equal(t, float64(2), resp["workers"])

	mockRecorder.AssertExpectations(t)
}

func TestRecordOutput_ValidationErrors(t *testing.T) {
	cases := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{"invalid json", `{broken`, nil, http.StatusBadRequest},
		{"missing ids", `{"quantity":10}`, nil, http.StatusBadRequest},
		{
			"bad quantity",
			`{"project_id":"proj-1","step_id":"flowpack","quantity":0}`,
			fmt.Errorf("record: %w", production.ErrBadQuantity),
			http.StatusBadRequest,
		},
		{
			"step outside pipeline",
			`{"project_id":"proj-1","step_id":"hanger_manual","quantity":10}`,
			fmt.Errorf("record: %w", production.ErrStepNotInPipeline),
			http.StatusBadRequest,
		},
		{
			"unknown worker",
			`{"project_id":"proj-1","step_id":"flowpack","quantity":10}`,
			fmt.Errorf("record: %w", production.ErrUnknownWorker),
			http.StatusBadRequest,
		},
		{
			"project missing",
			`{"project_id":"ghost","step_id":"flowpack","quantity":10}`,
			fmt.Errorf("record: %w", storage.ErrNotFound),
			http.StatusNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockRecorder := new(MockRecorder)
			if tc.serviceErr != nil {
				mockRecorder.On("RecordOutput", mock.Anything, mock.Anything).
					Return(storage.OutputWrite{}, tc.serviceErr)
			}

			handler := RecordOutput(slog.Default(), mockRecorder)

			req := httptest.NewRequest(http.MethodPost, "/api/output", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			if tc.serviceErr == nil {
				mockRecorder.AssertNotCalled(t, "RecordOutput", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestRecordOutput_InternalError(t *testing.T) {
	mockRecorder := new(MockRecorder)
	mockRecorder.On("RecordOutput", mock.Anything, mock.Anything).
		Return(storage.OutputWrite{}, fmt.Errorf("record: commit: lock wait timeout"))

	handler := RecordOutput(slog.Default(), mockRecorder)

	body := `{"project_id":"proj-1","step_id":"flowpack","quantity":10}`
	req := httptest.NewRequest(http.MethodPost, "/api/output", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
