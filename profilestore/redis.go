package profilestore

import (
	"encoding/json"
	"net/http"

	"github.com/gomodule/redigo/redis"
	log "github.com/sirupsen/logrus"

	"retailpulse/cache"
	cacheRedis "retailpulse/cache/redis"
	"retailpulse/rfm"
	U "retailpulse/util"
)

const (
	profileKeyPrefix = "profiles"
	statsKeyPrefix   = "segments:stats:latest"
)

// RedisStore shares the latest run between api replicas. Profiles are
// one json value per customer, segment rows one value under a fixed
// key.
type RedisStore struct{}

func NewRedisStore() *RedisStore {
	return &RedisStore{}
}

func profileKey(customerID float64) (*cache.Key, error) {
	return cache.NewKey(U.FloatToString(customerID), profileKeyPrefix, "")
}

func (store *RedisStore) ReplaceProfiles(profiles []rfm.CustomerProfile, stats []rfm.SegmentStatistic) int {
	logCtx := log.WithFields(log.Fields{"profiles": len(profiles)})

	purgeKey, err := cache.NewKeyWithOnlyPrefix(profileKeyPrefix)
	if err != nil {
		logCtx.WithError(err).Error("Failed to build profile purge key")
		return http.StatusInternalServerError
	}

	pattern, err := purgeKey.KeyWithAllCustomers()
	if err != nil {
		logCtx.WithError(err).Error("Failed to build profile purge pattern")
		return http.StatusInternalServerError
	}

	staleKeys, err := cacheRedis.ScanKeys(pattern)
	if err != nil {
		logCtx.WithError(err).Error("Failed to scan stale profile keys")
		return http.StatusInternalServerError
	}

	if err := cacheRedis.DelKeys(staleKeys); err != nil {
		logCtx.WithError(err).Error("Failed to purge stale profiles")
		return http.StatusInternalServerError
	}

	for i := range profiles {
		key, err := profileKey(profiles[i].CustomerID)
		if err != nil {
			logCtx.WithError(err).Error("Failed to build profile key")
			return http.StatusInternalServerError
		}

		value, err := json.Marshal(profiles[i])
		if err != nil {
			logCtx.WithError(err).Error("Failed to marshal profile")
			return http.StatusInternalServerError
		}

		if err := cacheRedis.Set(key, string(value), 0); err != nil {
			logCtx.WithError(err).Error("Failed to set profile")
			return http.StatusInternalServerError
		}
	}

	statsValue, err := json.Marshal(stats)
	if err != nil {
		logCtx.WithError(err).Error("Failed to marshal segment statistics")
		return http.StatusInternalServerError
	}

	statsKey, err := cache.NewKeyWithOnlyPrefix(statsKeyPrefix)
	if err != nil {
		logCtx.WithError(err).Error("Failed to build stats key")
		return http.StatusInternalServerError
	}

	if err := cacheRedis.SetPrefixKey(statsKey, string(statsValue), 0); err != nil {
		logCtx.WithError(err).Error("Failed to set segment statistics")
		return http.StatusInternalServerError
	}

	return http.StatusCreated
}

func (store *RedisStore) GetProfile(customerID float64) (*rfm.CustomerProfile, int) {
	key, err := profileKey(customerID)
	if err != nil {
		return nil, http.StatusInternalServerError
	}

	value, err := cacheRedis.Get(key)
	if err == redis.ErrNil {
		return nil, http.StatusNotFound
	}
	if err != nil {
		log.WithError(err).WithFields(log.Fields{"customer_id": customerID}).Error(
			"Failed to get profile from redis")
		return nil, http.StatusInternalServerError
	}

	var profile rfm.CustomerProfile
	if err := json.Unmarshal([]byte(value), &profile); err != nil {
		log.WithError(err).WithFields(log.Fields{"customer_id": customerID}).Error(
			"Failed to unmarshal profile")
		return nil, http.StatusInternalServerError
	}

	return &profile, http.StatusFound
}

func (store *RedisStore) GetSegmentStatistics() ([]rfm.SegmentStatistic, int) {
	statsKey, err := cache.NewKeyWithOnlyPrefix(statsKeyPrefix)
	if err != nil {
		return nil, http.StatusInternalServerError
	}

	value, err := cacheRedis.GetPrefixKey(statsKey)
	if err == redis.ErrNil {
		return nil, http.StatusNotFound
	}
	if err != nil {
		log.WithError(err).Error("Failed to get segment statistics from redis")
		return nil, http.StatusInternalServerError
	}

	var stats []rfm.SegmentStatistic
	if err := json.Unmarshal([]byte(value), &stats); err != nil {
		log.WithError(err).Error("Failed to unmarshal segment statistics")
		return nil, http.StatusInternalServerError
	}

	return stats, http.StatusFound
}

func (store *RedisStore) Count() int {
	purgeKey, err := cache.NewKeyWithOnlyPrefix(profileKeyPrefix)
	if err != nil {
		return 0
	}

	pattern, err := purgeKey.KeyWithAllCustomers()
	if err != nil {
		return 0
	}

	keys, err := cacheRedis.ScanKeys(pattern)
	if err != nil {
		log.WithError(err).Error("Failed to count profiles in redis")
		return 0
	}
	return len(keys)
}
