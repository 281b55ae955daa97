//go:build unit

package statscache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mraditya/flight-journal-service/internal/app/dto"
)

type MockRedisClient struct {
	mock.Mock
}

func NewMockRedisClient(t *testing.T) *MockRedisClient {
	m := &MockRedisClient{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRedisClient) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	args := m.Called(ctx, key, value, expiration)
	return args.Get(0).(*redis.BoolCmd)
}

func (m *MockRedisClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	args := m.Called(ctx, keys)
	return args.Get(0).(*redis.IntCmd)
}

func (m *MockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	args := m.Called(ctx, key, value, expiration)
	return args.Get(0).(*redis.StatusCmd)
}

func (m *MockRedisClient) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(ctx, key)
	return args.Get(0).(*redis.StringCmd)
}

func TestStatsCache_AcquireLock_Closure(t *testing.T) {
	acquireRequest := func(mockSetup func(m *MockRedisClient), want bool) func(t *testing.T) {
		return func(t *testing.T) {
			m := NewMockRedisClient(t)
			mockSetup(m)
			c := NewStatsCache(m)

			got, err := c.AcquireLock(context.Background(), 5*time.Second)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}
	}

	t.Run("lock_acquired", acquireRequest(func(m *MockRedisClient) {
		m.On("SetNX", mock.Anything, lockKey, "1", 5*time.Second).Return(redis.NewBoolResult(true, nil))
	}, true))

	t.Run("lock_held_elsewhere", acquireRequest(func(m *MockRedisClient) {
		m.On("SetNX", mock.Anything, lockKey, "1", 5*time.Second).Return(redis.NewBoolResult(false, nil))
	}, false))
}

func TestStatsCache_GetStats_Closure(t *testing.T) {
	stats := dto.FlightStats{
		TotalFlights:         3,
		TotalDurationMinutes: 725,
		TotalDurationHours:   12.1,
		UniqueAirlines:       []string{"LATAM Airlines", "SAS"},
		UniqueAirportsCount:  4,
		UniqueAirports:       []string{"ARN", "FRA", "GRU", "SCL"},
	}
	payload, _ := json.Marshal(stats)

	t.Run("cache_hit", func(t *testing.T) {
		m := NewMockRedisClient(t)
		m.On("Get", mock.Anything, statsKey).Return(redis.NewStringResult(string(payload), nil))

		got, err := NewStatsCache(m).GetStats(context.Background())
		assert.NoError(t, err)
		if diff := cmp.Diff(stats, got); diff != "" {
			t.Fatalf("GetStats mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("cache_miss", func(t *testing.T) {
		m := NewMockRedisClient(t)
		m.On("Get", mock.Anything, statsKey).Return(redis.NewStringResult("", redis.Nil))

		_, err := NewStatsCache(m).GetStats(context.Background())
		assert.Error(t, err)
	})
}

func TestStatsCache_Invalidate(t *testing.T) {
	m := NewMockRedisClient(t)
	m.On("Del", mock.Anything, []string{statsKey}).Return(redis.NewIntResult(1, nil))

	assert.NoError(t, NewStatsCache(m).Invalidate(context.Background()))
}
