package redis_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/ignite/mailcore/internal/store"
	redisstore "github.com/ignite/mailcore/internal/store/redis"
	"github.com/ignite/mailcore/internal/store/storetest"
)

func setupTestRedis(t *testing.T) *goredis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client
}

func TestContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return redisstore.New(setupTestRedis(t))
	})
}

func TestUnreachableServerIsAFault(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()
	s := redisstore.New(client)

	mr.Close()

	_, err = s.List(ctx, "accounts")
	require.ErrorIs(t, err, store.ErrFault)
	err = s.Put(ctx, "accounts", store.Record{ID: "a1", Data: json.RawMessage(`{}`)})
	require.ErrorIs(t, err, store.ErrFault)
}
