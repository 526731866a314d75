package ipfs

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/captain-sol/voyage-client/pkg/cache"
	"github.com/captain-sol/voyage-client/pkg/metrics"
)

const (
	cacheHitMetricName  = "Ipfs_CacheHit"
	cacheMissMetricName = "Ipfs_CacheMiss"
)

// CachedStore memoizes fetches by CID. Content under a CID never changes, so
// entries are never invalidated, only evicted.
type CachedStore struct {
	log   *logrus.Entry
	store Store
	cache cache.Cache
}

// NewCachedStore wraps store with a weighted LRU whose budget is in bytes.
func NewCachedStore(store Store, budget int) *CachedStore {
	return &CachedStore{
		log:   logrus.StandardLogger().WithField("type", "ipfs/cached_store"),
		store: store,
		cache: cache.NewCache(budget),
	}
}

// SetVerbose logs evictions.
func (s *CachedStore) SetVerbose(verbose bool) {
	s.cache.SetVerbose(verbose)
}

func (s *CachedStore) UploadBytes(ctx context.Context, data []byte) (string, error) {
	cid, err := s.store.UploadBytes(ctx, data)
	if err != nil {
		return "", err
	}
	s.remember("bytes:"+cid, append([]byte(nil), data...))
	return cid, nil
}

func (s *CachedStore) UploadJSON(ctx context.Context, v interface{}) (string, error) {
	return s.store.UploadJSON(ctx, v)
}

func (s *CachedStore) FetchJSON(ctx context.Context, cid string) (json.RawMessage, error) {
	key := "json:" + cid
	if cached, ok := s.cache.Retrieve(key); ok {
		metrics.RecordCount(ctx, cacheHitMetricName, 1)
		return append(json.RawMessage(nil), cached.([]byte)...), nil
	}
	metrics.RecordCount(ctx, cacheMissMetricName, 1)

	data, err := s.store.FetchJSON(ctx, cid)
	if err != nil {
		return nil, err
	}
	s.remember(key, append([]byte(nil), data...))
	return data, nil
}

func (s *CachedStore) FetchBytes(ctx context.Context, cid string) ([]byte, error) {
	key := "bytes:" + cid
	if cached, ok := s.cache.Retrieve(key); ok {
		metrics.RecordCount(ctx, cacheHitMetricName, 1)
		return append([]byte(nil), cached.([]byte)...), nil
	}
	metrics.RecordCount(ctx, cacheMissMetricName, 1)

	data, err := s.store.FetchBytes(ctx, cid)
	if err != nil {
		return nil, err
	}
	s.remember(key, append([]byte(nil), data...))
	return data, nil
}

// remember caches value when it fits. Concurrent misses for the same CID can
// race to insert; the loser's ErrKeyExists is expected and dropped.
func (s *CachedStore) remember(key string, value []byte) {
	if len(value) == 0 {
		return
	}

	err := s.cache.Insert(key, value, len(value))
	switch err {
	case nil, cache.ErrKeyExists:
	case cache.ErrOverBudget:
		s.log.WithField("key", key).WithField("size", len(value)).Debug("content larger than cache budget")
	default:
		s.log.WithError(err).WithField("key", key).Warn("failure caching content")
	}
}
