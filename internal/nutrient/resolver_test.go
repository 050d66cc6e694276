package nutrient

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"nutricalc/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFoodLookup is a mock implementation of FoodLookup.
type MockFoodLookup struct {
	mock.Mock
}

func (m *MockFoodLookup) Food(ctx context.Context, foodID string) (*model.FoodRecord, error) {
	args := m.Called(ctx, foodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FoodRecord), args.Error(1)
}

// failingCache fails every operation it is configured to fail.
type failingCache struct {
	getErr error
	putErr error
	puts   atomic.Int32
}

func (c *failingCache) Get(ctx context.Context, foodID string) (model.NutrientProfile, bool, error) {
	return model.NutrientProfile{}, false, c.getErr
}

func (c *failingCache) Put(ctx context.Context, record model.FoodRecord) error {
	c.puts.Add(1)
	return c.putErr
}

var flour = model.FoodRecord{
	ID:          "X",
	Description: "Flour, wheat",
	Nutrients:   model.NutrientProfile{Calories: 364, Protein: 10, Fat: 1, Carbohydrates: 76, Fiber: 3},
}

func newMemoryCache(t *testing.T) *MemoryCache {
	t.Helper()
	cache, err := NewMemoryCache(16)
	require.NoError(t, err)
	return cache
}

func TestResolver_MissThenHit(t *testing.T) {
	ctx := context.Background()
	cache := newMemoryCache(t)
	remote := new(MockFoodLookup)
	remote.On("Food", mock.Anything, "X").Return(&flour, nil).Once()

	resolver := NewResolver(cache, remote, zerolog.Nop())

	first, err := resolver.Resolve(ctx, "X")
	require.NoError(t, err)
	assert.Equal(t, flour.Nutrients, first)
	assert.Equal(t, 1, cache.Len())

	second, err := resolver.Resolve(ctx, "X")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	remote.AssertNumberOfCalls(t, "Food", 1)
}

func TestResolver_ServesCachedProfileWithoutRemote(t *testing.T) {
	ctx := context.Background()
	cache := newMemoryCache(t)
	require.NoError(t, cache.Put(ctx, flour))
	remote := new(MockFoodLookup)

	resolver := NewResolver(cache, remote, zerolog.Nop())

	profile, err := resolver.Resolve(ctx, " X ")

	require.NoError(t, err)
	assert.Equal(t, flour.Nutrients, profile)
	remote.AssertNotCalled(t, "Food", mock.Anything, mock.Anything)
}

func TestResolver_RemoteFailureLeavesCacheUntouched(t *testing.T) {
	ctx := context.Background()
	cache := newMemoryCache(t)
	remote := new(MockFoodLookup)
	remote.On("Food", mock.Anything, "999999999").
		Return(nil, model.NewRemoteUnavailableError("Failed to fetch food 999999999", errors.New("status 404")))

	resolver := NewResolver(cache, remote, zerolog.Nop())

	_, err := resolver.Resolve(ctx, "999999999")

	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrRemoteUnavailable))
	assert.Equal(t, 0, cache.Len())
}

func TestResolver_WrapsUnclassifiedRemoteErrors(t *testing.T) {
	remote := new(MockFoodLookup)
	remote.On("Food", mock.Anything, "X").Return(nil, errors.New("connection reset"))

	resolver := NewResolver(newMemoryCache(t), remote, zerolog.Nop())

	_, err := resolver.Resolve(context.Background(), "X")

	assert.True(t, errors.Is(err, model.ErrRemoteUnavailable))
}

func TestResolver_InvalidIdentifiers(t *testing.T) {
	tests := []struct {
		name   string
		foodID string
	}{
		{name: "Empty", foodID: ""},
		{name: "Blank", foodID: "   "},
		{name: "Path traversal", foodID: "../admin"},
		{name: "Query injection", foodID: "1?api_key=x"},
		{name: "Too long", foodID: string(make([]byte, 65))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := new(MockFoodLookup)
			resolver := NewResolver(newMemoryCache(t), remote, zerolog.Nop())

			_, err := resolver.Resolve(context.Background(), tt.foodID)

			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrLookup))
			remote.AssertNotCalled(t, "Food", mock.Anything, mock.Anything)
		})
	}
}

func TestResolver_CacheReadFailureIsAMiss(t *testing.T) {
	cache := &failingCache{getErr: errors.New("connection refused")}
	remote := new(MockFoodLookup)
	remote.On("Food", mock.Anything, "X").Return(&flour, nil)

	resolver := NewResolver(cache, remote, zerolog.Nop())

	profile, err := resolver.Resolve(context.Background(), "X")

	require.NoError(t, err)
	assert.Equal(t, flour.Nutrients, profile)
	assert.Equal(t, int32(1), cache.puts.Load())
}

func TestResolver_CacheWriteFailureIsNotFatal(t *testing.T) {
	cache := &failingCache{putErr: model.NewCacheError("Failed to write nutrient cache", errors.New("disk full"))}
	remote := new(MockFoodLookup)
	remote.On("Food", mock.Anything, "X").Return(&flour, nil)

	resolver := NewResolver(cache, remote, zerolog.Nop())

	profile, err := resolver.Resolve(context.Background(), "X")

	require.NoError(t, err)
	assert.Equal(t, flour.Nutrients, profile)
}

// slowLookup counts calls and answers after a short delay.
type slowLookup struct {
	calls atomic.Int32
	delay time.Duration
}

func (l *slowLookup) Food(ctx context.Context, foodID string) (*model.FoodRecord, error) {
	l.calls.Add(1)
	time.Sleep(l.delay)
	record := flour
	record.ID = foodID
	return &record, nil
}

func TestResolver_ConcurrentResolvesAgree(t *testing.T) {
	cache := newMemoryCache(t)
	remote := &slowLookup{delay: 20 * time.Millisecond}
	resolver := NewResolver(cache, remote, zerolog.Nop())

	const callers = 16
	results := make([]model.NutrientProfile, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = resolver.Resolve(context.Background(), "X")
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, flour.Nutrients, results[i])
	}
	assert.GreaterOrEqual(t, remote.calls.Load(), int32(1))
	assert.Less(t, remote.calls.Load(), int32(callers))
	assert.Equal(t, 1, cache.Len())
}

func TestResolver_CallerCancellation(t *testing.T) {
	remote := &slowLookup{delay: 200 * time.Millisecond}
	resolver := NewResolver(newMemoryCache(t), remote, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := resolver.Resolve(ctx, "X")

	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrRemoteUnavailable))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
