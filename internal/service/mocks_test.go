package service

import (
	"context"

	"nutricalc/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockFoodSearcher is a mock implementation of FoodSearcher.
type MockFoodSearcher struct {
	mock.Mock
}

func (m *MockFoodSearcher) Search(ctx context.Context, query string) ([]model.FoodSummary, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FoodSummary), args.Error(1)
}

// MockAggregator is a mock implementation of NutritionAggregator.
type MockAggregator struct {
	mock.Mock
}

func (m *MockAggregator) Aggregate(ctx context.Context, lines []model.IngredientLine) (model.NutrientTotals, error) {
	args := m.Called(ctx, lines)
	return args.Get(0).(model.NutrientTotals), args.Error(1)
}

// MockRecipeRepository is a mock implementation of RecipeRepository.
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) Save(ctx context.Context, userID uuid.UUID, name string, lines []model.IngredientLine, totals model.NutrientTotals) (uuid.UUID, error) {
	args := m.Called(ctx, userID, name, lines, totals)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockRecipeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Recipe, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockTokenIssuer is a mock implementation of TokenIssuer.
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(userID uuid.UUID, email string) (string, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Error(1)
}
