package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"nutricalc/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockNutritionService is a mock implementation of NutritionService.
type MockNutritionService struct {
	mock.Mock
}

func (m *MockNutritionService) Search(ctx context.Context, query string) ([]model.FoodSummary, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FoodSummary), args.Error(1)
}

func (m *MockNutritionService) Calculate(ctx context.Context, lines []model.IngredientLine) (model.NutrientTotals, error) {
	args := m.Called(ctx, lines)
	return args.Get(0).(model.NutrientTotals), args.Error(1)
}

// MockRecipeService is a mock implementation of RecipeService.
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) Save(ctx context.Context, userID uuid.UUID, req *model.SaveRecipeRequest) (*model.SaveRecipeResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SaveRecipeResponse), args.Error(1)
}

func (m *MockRecipeService) List(ctx context.Context, userID uuid.UUID) ([]model.Recipe, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

// MockAuthService is a mock implementation of AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, creds model.Credentials) (*model.User, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, creds model.Credentials) (string, error) {
	args := m.Called(ctx, creds)
	return args.String(0), args.Error(1)
}

// decodeError reads a standard error body from a recorder.
func decodeError(t *testing.T, w *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var body model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
