package credstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	fieldEmail     = "email"
	fieldPhone     = "phone"
	fieldTwoFactor = "twofactor"
)

// RedisMirror persists the same single snapshot in Redis so it survives
// process restarts (kiosk and multi-process storefront deployments). The
// semantics are identical to Memory: one credential key, one profile hash,
// no TTL, no eviction.
type RedisMirror struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisMirror returns a Redis-backed store. The prefix namespaces the two
// keys; it defaults to "hxacct" when empty.
func NewRedisMirror(rdb *redis.Client, prefix string) *RedisMirror {
	if prefix == "" {
		prefix = "hxacct"
	}
	return &RedisMirror{rdb: rdb, prefix: prefix}
}

func (s *RedisMirror) credKey() string {
	return s.prefix + ":cred"
}

func (s *RedisMirror) profileKey() string {
	return s.prefix + ":profile"
}

// Current describes the current operation and its observable behavior.
func (s *RedisMirror) Current(ctx context.Context) (Credential, error) {
	val, err := s.rdb.Get(ctx, s.credKey()).Result()
	if err == redis.Nil {
		return "", ErrNoCredential
	}
	if err != nil {
		return "", fmt.Errorf("read credential: %w", err)
	}
	if val == "" {
		return "", ErrNoCredential
	}
	return Credential(val), nil
}

// Replace describes the replace operation and its observable behavior.
// A SET is atomic server-side, so the swap is visible to the next reader.
func (s *RedisMirror) Replace(ctx context.Context, cred Credential) error {
	if err := s.rdb.Set(ctx, s.credKey(), string(cred), 0).Err(); err != nil {
		return fmt.Errorf("replace credential: %w", err)
	}
	return nil
}

// Profile describes the profile operation and its observable behavior.
func (s *RedisMirror) Profile(ctx context.Context) (Profile, error) {
	fields, err := s.rdb.HGetAll(ctx, s.profileKey()).Result()
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}
	return Profile{
		Email:            fields[fieldEmail],
		PhoneNumber:      fields[fieldPhone],
		TwoFactorEnabled: fields[fieldTwoFactor] == "1",
	}, nil
}

// UpdateProfile describes the updateprofile operation and its observable behavior.
// Only the provided fields are written; HSET leaves the rest untouched, which
// gives the merge-without-removal contract natively.
func (s *RedisMirror) UpdateProfile(ctx context.Context, patch ProfilePatch) (Profile, error) {
	pairs := make([]interface{}, 0, 6)
	if patch.Email != nil {
		pairs = append(pairs, fieldEmail, *patch.Email)
	}
	if patch.PhoneNumber != nil {
		pairs = append(pairs, fieldPhone, *patch.PhoneNumber)
	}
	if patch.TwoFactorEnabled != nil {
		val := "0"
		if *patch.TwoFactorEnabled {
			val = "1"
		}
		pairs = append(pairs, fieldTwoFactor, val)
	}
	if len(pairs) > 0 {
		if err := s.rdb.HSet(ctx, s.profileKey(), pairs...).Err(); err != nil {
			return Profile{}, fmt.Errorf("update profile: %w", err)
		}
	}
	return s.Profile(ctx)
}

// Clear destroys the snapshot. Used by the logout path.
func (s *RedisMirror) Clear(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.credKey(), s.profileKey()).Err(); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}
