package session_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/esiddiqui/goidc-session/session"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*session.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return session.NewRedisStore(client, "goidc:session"), mr
}

func TestRedisStoreContract(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	_, err := store.GetData(ctx, "missing")
	assert.ErrorIs(t, err, session.ErrKeyNotFound)

	require.NoError(t, store.SetData(ctx, "k", []byte("v1")))
	got, err := store.GetData(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	require.NoError(t, store.SetData(ctx, "k", []byte("v2")))
	got, err = store.GetData(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	require.NoError(t, store.RemoveData(ctx, "k"))
	require.NoError(t, store.RemoveData(ctx, "k"))
	_, err = store.GetData(ctx, "k")
	assert.ErrorIs(t, err, session.ErrKeyNotFound)
}

func TestRedisStoreKeyPrefix(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetData(ctx, "abc", []byte("v")))
	assert.True(t, mr.Exists("goidc:session:abc"))
}

func TestManagerOverRedisStore(t *testing.T) {
	store, _ := newTestRedisStore(t)
	m, err := session.NewManager(session.WithStore(store))
	require.NoError(t, err)
	ctx := context.Background()

	bundle := session.TokenBundle{Subject: "user-42", AccessToken: "AT1", IdToken: "IT1"}
	id, err := m.CreateUserSession(ctx, "user-42", bundle)
	require.NoError(t, err)

	got, err := m.GetUserSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, bundle, *got)

	ok, err := m.DestroyUserSession(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = m.GetUserSession(ctx, id)
	assert.True(t, session.IsCode(err, session.CodeSessionNotFound))
}
