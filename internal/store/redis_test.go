package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/workouttimer/internal/domain"
)

func TestRedis_KeyPrefix(t *testing.T) {
	tests := []struct {
		prefix string
		key    string
		want   string
	}{
		{"", KeyWorkouts, KeyWorkouts},
		{"workouttimer:", KeyWorkouts, "workouttimer:" + KeyWorkouts},
		{"a:b:", "theme", "a:b:theme"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			r := NewRedisWithClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}), tt.prefix)
			defer r.Close()
			assert.Equal(t, tt.want, r.key(tt.key))
		})
	}
}

func TestRedis_GetResult(t *testing.T) {
	t.Run("hit", func(t *testing.T) {
		value, ok, err := getResult("k", "v", nil)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "v", value)
	})

	t.Run("empty value is present", func(t *testing.T) {
		value, ok, err := getResult("k", "", nil)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, value)
	})

	t.Run("missing key", func(t *testing.T) {
		value, ok, err := getResult("k", "", redis.Nil)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, value)
	})

	t.Run("failure", func(t *testing.T) {
		cause := errors.New("connection reset")
		_, ok, err := getResult("k", "", cause)
		require.Error(t, err)
		assert.False(t, ok)

		var storeErr *domain.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "get", storeErr.Op)
		assert.Equal(t, "k", storeErr.Key)
		assert.ErrorIs(t, err, cause)
	})
}

func TestRedis_UnreachableServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r := NewRedisWithClient(redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	}), "p:")
	defer r.Close()

	_, ok, err := r.Get(ctx, KeyWorkouts)
	assert.False(t, ok)
	var storeErr *domain.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, KeyWorkouts, storeErr.Key, "errors carry the unprefixed key")

	err = r.Set(ctx, KeyWorkouts, "[]")
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "set", storeErr.Op)

	err = r.Remove(ctx, KeyWorkouts)
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "remove", storeErr.Op)

	_, err = NewRedis(ctx, RedisOptions{Addr: "127.0.0.1:1"})
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "open", storeErr.Op)
}
