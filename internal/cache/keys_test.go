package cache

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTodoPageKey(t *testing.T) {
	key := TodoPageKey("u1", 3, 2, 10)
	assert.Equal(t, "todos:u1:v3:page=2:limit=10", key)
	assert.True(t, strings.HasPrefix(key, TodoPagePrefix("u1", 3)))
	assert.False(t, strings.HasPrefix(key, TodoPagePrefix("u1", 4)))
}

func TestTodoPagePrefixDoesNotOverlap(t *testing.T) {
	assert.False(t, strings.HasPrefix(TodoPageKey("u10", 1, 1, 10), TodoPagePrefix("u1", 1)))
	assert.False(t, strings.HasPrefix(TodoPageKey("u1", 12, 1, 10), TodoPagePrefix("u1", 1)))
	assert.False(t, strings.HasPrefix(TodoVersionKey("u1"), TodoPagePrefix("u1", 0)))
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRedisCache(ctx, "redis://127.0.0.1:1/0")
	assert.Error(t, err)
}
