package redis

import (
	"errors"

	"github.com/gomodule/redigo/redis"

	"retailpulse/cache"
	C "retailpulse/config"
)

func Set(key *cache.Key, value string, expiryInSecs float64) error {
	if key == nil {
		return cache.ErrorInvalidKey
	}

	if value == "" {
		return errors.New("empty cache key value")
	}

	cKey, err := key.Key()
	if err != nil {
		return err
	}

	redisConn := C.GetCacheRedisConnection()
	defer redisConn.Close()

	if expiryInSecs == 0 {
		_, err = redisConn.Do("SET", cKey, value)
	} else {
		_, err = redisConn.Do("SET", cKey, value, "EX", expiryInSecs)
	}

	return err
}

// SetPrefixKey - Set for keys without a customer scope,
// i.e segments:stats:latest.
func SetPrefixKey(key *cache.Key, value string, expiryInSecs float64) error {
	if key == nil {
		return cache.ErrorInvalidKey
	}

	if value == "" {
		return errors.New("empty cache key value")
	}

	cKey, err := key.KeyWithOnlyPrefix()
	if err != nil {
		return err
	}

	redisConn := C.GetCacheRedisConnection()
	defer redisConn.Close()

	if expiryInSecs == 0 {
		_, err = redisConn.Do("SET", cKey, value)
	} else {
		_, err = redisConn.Do("SET", cKey, value, "EX", expiryInSecs)
	}

	return err
}

func Get(key *cache.Key) (string, error) {
	if key == nil {
		return "", cache.ErrorInvalidKey
	}

	cKey, err := key.Key()
	if err != nil {
		return "", err
	}

	redisConn := C.GetCacheRedisConnection()
	defer redisConn.Close()

	return redis.String(redisConn.Do("GET", cKey))
}

func GetPrefixKey(key *cache.Key) (string, error) {
	if key == nil {
		return "", cache.ErrorInvalidKey
	}

	cKey, err := key.KeyWithOnlyPrefix()
	if err != nil {
		return "", err
	}

	redisConn := C.GetCacheRedisConnection()
	defer redisConn.Close()

	return redis.String(redisConn.Do("GET", cKey))
}

// MGet Function to get multiple keys from redis. Returns slice of result strings.
func MGet(keys ...*cache.Key) ([]string, error) {
	var cKeys []interface{}
	var cValues []string
	for _, key := range keys {
		if key == nil {
			return cValues, cache.ErrorInvalidKey
		}
		cKey, err := key.Key()
		if err != nil {
			return cValues, err
		}
		cKeys = append(cKeys, cKey)
	}
	redisConn := C.GetCacheRedisConnection()
	defer redisConn.Close()

	values, err := redis.Values(redisConn.Do("MGET", cKeys...))
	if err != nil {
		return cValues, err
	}

	if err := redis.ScanSlice(values, &cValues); err != nil {
		return cValues, err
	}
	return cValues, nil
}

func Del(key *cache.Key) error {
	if key == nil {
		return cache.ErrorInvalidKey
	}

	cKey, err := key.Key()
	if err != nil {
		return err
	}

	redisConn := C.GetCacheRedisConnection()
	defer redisConn.Close()

	_, err = redisConn.Do("DEL", cKey)
	return err
}

// Exists Checks if a key exists in Redis.
func Exists(key *cache.Key) (bool, error) {
	if key == nil {
		return false, cache.ErrorInvalidKey
	}

	cKey, err := key.Key()
	if err != nil {
		return false, err
	}

	redisConn := C.GetCacheRedisConnection()
	defer redisConn.Close()

	count, err := redisConn.Do("EXISTS", cKey)
	if err != nil {
		return false, err
	}
	return count.(int64) == 1, nil
}

// ScanKeys - Collects every key matching the pattern with a cursored
// SCAN, never KEYS.
func ScanKeys(pattern string) ([]string, error) {
	if pattern == "" {
		return nil, cache.ErrorInvalidKey
	}

	redisConn := C.GetCacheRedisConnection()
	defer redisConn.Close()

	var matched []string
	cursor := 0
	for {
		reply, err := redis.Values(redisConn.Do("SCAN", cursor, "MATCH", pattern, "COUNT", 1000))
		if err != nil {
			return matched, err
		}

		var page []string
		if _, err := redis.Scan(reply, &cursor, &page); err != nil {
			return matched, err
		}
		matched = append(matched, page...)

		if cursor == 0 {
			return matched, nil
		}
	}
}

// DelKeys - Deletes raw keys, i.e the output of ScanKeys.
func DelKeys(keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	cKeys := make([]interface{}, 0, len(keys))
	for _, key := range keys {
		cKeys = append(cKeys, key)
	}

	redisConn := C.GetCacheRedisConnection()
	defer redisConn.Close()

	_, err := redisConn.Do("DEL", cKeys...)
	return err
}
