// Package profilestore keeps the latest profiling run queryable by the
// http api. Two backends: an in process lru cache for single node
// deploys and redis for shared ones.
package profilestore

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	C "retailpulse/config"
	"retailpulse/rfm"
)

type Store interface {
	// ReplaceProfiles swaps the stored run, profiles and segment rows
	// together, for a new one. Customers from the previous run that are
	// absent from the new one must not survive the swap.
	ReplaceProfiles(profiles []rfm.CustomerProfile, stats []rfm.SegmentStatistic) int
	GetProfile(customerID float64) (*rfm.CustomerProfile, int)
	GetSegmentStatistics() ([]rfm.SegmentStatistic, int)
	Count() int
}

var store Store

func Init(config *C.Configuration) error {
	switch config.ProfileStore {
	case C.ProfileStoreRedis:
		store = NewRedisStore()
	case C.ProfileStoreLRU, "":
		size := config.ProfileCacheSize
		if size <= 0 {
			size = DefaultProfileCacheSize
		}
		lruStore, err := NewLRUStore(size)
		if err != nil {
			return err
		}
		store = lruStore
	default:
		return fmt.Errorf("unknown profile store %s", config.ProfileStore)
	}

	log.WithFields(log.Fields{"store": config.ProfileStore}).Info("Profile store initialized")
	return nil
}

func GetStore() Store {
	return store
}
