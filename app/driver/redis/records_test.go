package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"session-service/app/domain"
)

func newTestStore(t *testing.T) (*RecordStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRecordStore(client), mr
}

func testRecord(token string) domain.SessionRecord {
	return domain.SessionRecord{
		Token:      token,
		IdentityID: uuid.New(),
		ExpiresAt:  time.Now().Add(time.Hour),
	}
}

func TestRecordStore_CreateGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	rec := testRecord("tok-1")
	require.NoError(t, store.Create(ctx, rec))

	got, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, rec.IdentityID, got.IdentityID)
	assert.Equal(t, rec.Token, got.Token)
}

func TestRecordStore_Get_Missing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "unknown")
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestRecordStore_Create_RejectsExpired(t *testing.T) {
	store, _ := newTestStore(t)

	rec := testRecord("tok-expired")
	rec.ExpiresAt = time.Now().Add(-time.Minute)
	assert.Error(t, store.Create(context.Background(), rec))
}

func TestRecordStore_TTLElapsed(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	rec := testRecord("tok-ttl")
	rec.ExpiresAt = time.Now().Add(time.Minute)
	require.NoError(t, store.Create(ctx, rec))

	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "tok-ttl")
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestRecordStore_SetTenant(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, testRecord("tok-tenant")))

	tenantID := uuid.New()
	require.NoError(t, store.SetTenant(ctx, "tok-tenant", tenantID))

	got, err := store.Get(ctx, "tok-tenant")
	require.NoError(t, err)
	assert.Equal(t, tenantID, got.TenantID)
}

func TestRecordStore_Delete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, testRecord("tok-del")))
	require.NoError(t, store.Delete(ctx, "tok-del"))

	_, err := store.Get(ctx, "tok-del")
	assert.ErrorIs(t, err, domain.ErrSessionExpired)

	// revoking an already-revoked token is fine
	assert.NoError(t, store.Delete(ctx, "tok-del"))
}
