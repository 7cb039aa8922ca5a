package cache

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevokedKey(t *testing.T) {
	assert.Equal(t, "session:revoked:abc", revokedKey("abc"))
}

func TestSessionStore_RevokeSkipsExpiredTokens(t *testing.T) {
	// Nothing listens on this address; a zero ttl must not reach the server.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	store := NewSessionStore(client)
	require.NoError(t, store.Revoke(context.Background(), "abc", 0))
}
