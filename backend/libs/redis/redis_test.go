package redis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRedisClientRejectsBadOptions(t *testing.T) {
	_, err := NewRedisClient("  ", "", 0)
	require.Error(t, err)

	_, err = NewRedisClient("localhost:6379", "", -1)
	require.Error(t, err)
}
