// Package redis holds the Redis-backed server-side session records.
// Each issued credential gets a record keyed by its token, expiring with
// the credential. Logout deletes the record, so a token rejected here is
// unrecoverable even if it has not yet passed its expiry instant.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"session-service/app/domain"
)

// RecordStore stores session records in Redis with a TTL matching the
// credential lifetime.
type RecordStore struct {
	client *redis.Client
	prefix string
}

// NewRecordStore creates a Redis-backed session record store.
func NewRecordStore(client *redis.Client) *RecordStore {
	return &RecordStore{
		client: client,
		prefix: "session:",
	}
}

func (r *RecordStore) key(token string) string {
	return r.prefix + token
}

// Create stores a record until the credential's expiry instant.
func (r *RecordStore) Create(ctx context.Context, rec domain.SessionRecord) error {
	if rec.Token == "" || rec.IdentityID == uuid.Nil {
		return fmt.Errorf("session record: missing token or identity_id")
	}

	ttl := time.Until(rec.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session record: expires_at must be in the future")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("session record: failed to marshal: %w", err)
	}

	return r.client.Set(ctx, r.key(rec.Token), data, ttl).Err()
}

// Get looks up the record for a token. A missing or expired record
// returns domain.ErrSessionExpired.
func (r *RecordStore) Get(ctx context.Context, token string) (*domain.SessionRecord, error) {
	val, err := r.client.Get(ctx, r.key(token)).Result()
	if err == redis.Nil {
		return nil, domain.ErrSessionExpired
	}
	if err != nil {
		return nil, err
	}

	var rec domain.SessionRecord
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return nil, fmt.Errorf("session record: failed to unmarshal: %w", err)
	}
	return &rec, nil
}

// SetTenant updates the active tenant on an existing record, keeping the
// remaining TTL.
func (r *RecordStore) SetTenant(ctx context.Context, token string, tenantID uuid.UUID) error {
	rec, err := r.Get(ctx, token)
	if err != nil {
		return err
	}

	rec.TenantID = tenantID
	ttl := time.Until(rec.ExpiresAt)
	if ttl <= 0 {
		return r.client.Del(ctx, r.key(token)).Err()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("session record: failed to marshal: %w", err)
	}
	return r.client.Set(ctx, r.key(token), data, ttl).Err()
}

// Delete revokes the record for a token. Deleting an unknown token is
// not an error; logout must always succeed.
func (r *RecordStore) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, r.key(token)).Err()
}
