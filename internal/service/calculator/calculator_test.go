package calculator

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"aqua-backend/internal/catalog"
	"aqua-backend/internal/storage"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) GetStocks(ctx context.Context) ([]storage.StockRecord, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	stocks, ok := args.Get(0).([]storage.StockRecord)
	if !ok {
		return nil, fmt.Errorf("expected []storage.StockRecord, got %T", args.Get(0))
	}
	return stocks, args.Error(1)
}

func (m *MockStorage) GetParameters(ctx context.Context) ([]storage.ParameterOverride, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	overrides, ok := args.Get(0).([]storage.ParameterOverride)
	if !ok {
		return nil, fmt.Errorf("expected []storage.ParameterOverride, got %T", args.Get(0))
	}
	return overrides, args.Error(1)
}

func rowByStep(rows []Row, stepID string) (Row, bool) {
	for _, row := range rows {
		if row.StepID == stepID {
			return row, true
		}
	}
	return Row{}, false
}

func TestEstimate(t *testing.T) {
	mockStorage := new(MockStorage)
	mockStorage.On("GetStocks", mock.Anything).Return([]storage.StockRecord{
		{ProductType: "Paper Air Freshener", StepID: catalog.StepCutting, Quantity: 400},
		// Stock of another product type must not be counted.
		{ProductType: "Car Freshener Premium", StepID: catalog.StepFlowpack, Quantity: 9000},
	}, nil)
	mockStorage.On("GetParameters", mock.Anything).Return([]storage.ParameterOverride{}, nil)

	service := New(mockStorage)

	rows, err := service.Estimate(context.Background(), Request{
		Quantity:       1000,
		ProductType:    "Paper Air Freshener",
		PrintingMethod: catalog.PrintingScreen,
		HangingMethod:  catalog.HangingString,
		Workers:        map[string]int{catalog.StepFlowpack: 3},
	})
	require.NoError(t, err)
	require.Len(t, rows, 6)

	cutting, ok := rowByStep(rows, catalog.StepCutting)
	require.True(t, ok)
	assert.Equal(t, 400, cutting.StockAvailable)
	assert.Equal(t, 600, cutting.WorkNeeded)
	assert.Equal(t, 1, cutting.Workers)

	flowpack, ok := rowByStep(rows, catalog.StepFlowpack)
	require.True(t, ok)
	assert.Equal(t, 0, flowpack.StockAvailable)
	assert.Equal(t, 1000, flowpack.WorkNeeded)
	assert.Equal(t, 3, flowpack.Workers)
	assert.Equal(t, 1200, flowpack.Capacity)
	require.True(t, flowpack.HoursKnown)
	assert.InDelta(t, 0.833, flowpack.Hours.InexactFloat64(), 0.001)

	// Pre-printed/Hanger steps are not part of this pipeline.
	_, ok = rowByStep(rows, catalog.StepHangerManual)
	assert.False(t, ok)
}

func TestEstimate_StockCoversStep(t *testing.T) {
	mockStorage := new(MockStorage)
	mockStorage.On("GetStocks", mock.Anything).Return([]storage.StockRecord{
		{ProductType: "Paper Air Freshener", StepID: catalog.StepCutting, Quantity: 5000},
	}, nil)
	mockStorage.On("GetParameters", mock.Anything).Return([]storage.ParameterOverride{}, nil)

	service := New(mockStorage)

	rows, err := service.Estimate(context.Background(), Request{
		Quantity:       1000,
		ProductType:    "Paper Air Freshener",
		PrintingMethod: catalog.PrintingScreen,
		HangingMethod:  catalog.HangingString,
	})
	require.NoError(t, err)

	cutting, ok := rowByStep(rows, catalog.StepCutting)
	require.True(t, ok)
	assert.Equal(t, 0, cutting.WorkNeeded)
	require.True(t, cutting.HoursKnown)
	assert.True(t, cutting.Hours.IsZero())
}

func TestEstimate_NoCapacityAtWorkerCount(t *testing.T) {
	mockStorage := new(MockStorage)
	mockStorage.On("GetStocks", mock.Anything).Return([]storage.StockRecord{}, nil)
	mockStorage.On("GetParameters", mock.Anything).Return([]storage.ParameterOverride{}, nil)

	service := New(mockStorage)

	// Flowpack has no defined rate for a single worker.
	rows, err := service.Estimate(context.Background(), Request{
		Quantity:       1000,
		ProductType:    "Paper Air Freshener",
		PrintingMethod: catalog.PrintingScreen,
		HangingMethod:  catalog.HangingString,
	})
	require.NoError(t, err)

	flowpack, ok := rowByStep(rows, catalog.StepFlowpack)
	require.True(t, ok)
	assert.Equal(t, 0, flowpack.Capacity)
	assert.False(t, flowpack.HoursKnown)
}

func TestEstimate_OverrideCurveApplies(t *testing.T) {
	mockStorage := new(MockStorage)
	mockStorage.On("GetStocks", mock.Anything).Return([]storage.StockRecord{}, nil)
	mockStorage.On("GetParameters", mock.Anything).Return([]storage.ParameterOverride{
		{StepID: catalog.StepCutting, CapacityCurve: `{"1": 500}`},
	}, nil)

	service := New(mockStorage)

	rows, err := service.Estimate(context.Background(), Request{
		Quantity:       1000,
		ProductType:    "Paper Air Freshener",
		PrintingMethod: catalog.PrintingScreen,
		HangingMethod:  catalog.HangingString,
	})
	require.NoError(t, err)

	cutting, ok := rowByStep(rows, catalog.StepCutting)
	require.True(t, ok)
	assert.Equal(t, 500, cutting.Capacity)
	assert.InDelta(t, 2.0, cutting.Hours.InexactFloat64(), 0.001)
}

func TestEstimate_BadQuantity(t *testing.T) {
	service := New(new(MockStorage))

	_, err := service.Estimate(context.Background(), Request{Quantity: 0})
	assert.Error(t, err)
}

func TestEstimate_StorageFailure(t *testing.T) {
	mockStorage := new(MockStorage)
	mockStorage.On("GetStocks", mock.Anything).Return(nil, errors.New("connection refused"))
	mockStorage.On("GetParameters", mock.Anything).Return([]storage.ParameterOverride{}, nil)

	service := New(mockStorage)

	_, err := service.Estimate(context.Background(), Request{
		Quantity:       100,
		ProductType:    "Paper Air Freshener",
		PrintingMethod: catalog.PrintingScreen,
		HangingMethod:  catalog.HangingString,
	})
	assert.ErrorContains(t, err, "connection refused")
}
