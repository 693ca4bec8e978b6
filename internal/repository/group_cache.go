package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const groupCachePrefix = "cache:group:"

// cachedGroupStore serves GetGroup from redis and delegates everything else.
type cachedGroupStore struct {
	MembershipStore
	client *redis.Client
	ttl    time.Duration
}

// NewCachedGroupStore wraps store so group lookups are cached for ttl.
func NewCachedGroupStore(store MembershipStore, client *redis.Client, ttl time.Duration) *cachedGroupStore {
	return &cachedGroupStore{MembershipStore: store, client: client, ttl: ttl}
}

func (s *cachedGroupStore) GetGroup(ctx context.Context, groupName string) (*Group, error) {
	key := groupCachePrefix + groupName

	data, err := s.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		group := &Group{}
		if jsonErr := json.Unmarshal(data, group); jsonErr == nil {
			return group, nil
		}
		logrus.WithField("key", key).Warn("[Cache] Dropping undecodable group entry")
		s.client.Del(ctx, key)
	case !errors.Is(err, redis.Nil):
		logrus.WithError(err).WithField("key", key).Warn("[Cache] Group lookup failed, falling back to store")
	}

	group, err := s.MembershipStore.GetGroup(ctx, groupName)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(group); err == nil {
		if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
			logrus.WithError(err).WithField("key", key).Warn("[Cache] Failed to store group")
		}
	}
	return group, nil
}

// PurgeGroups removes every cached group and returns how many keys were dropped.
func (s *cachedGroupStore) PurgeGroups(ctx context.Context) (int, error) {
	var cursor uint64
	purged := 0
	for {
		keys, next, err := s.client.Scan(ctx, cursor, groupCachePrefix+"*", 100).Result()
		if err != nil {
			return purged, err
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return purged, err
			}
			purged += len(keys)
		}
		cursor = next
		if cursor == 0 {
			return purged, nil
		}
	}
}
