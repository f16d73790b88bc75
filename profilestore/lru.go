package profilestore

import (
	"net/http"
	"sync"

	lru "github.com/hashicorp/golang-lru"

	"retailpulse/rfm"
)

const DefaultProfileCacheSize = 50000

// LRUStore serves lookups out of process memory. Profile capacity is
// bounded so an oversized upload cannot grow the heap without limit.
type LRUStore struct {
	profiles *lru.Cache

	statsLock sync.RWMutex
	stats     []rfm.SegmentStatistic
}

func NewLRUStore(size int) (*LRUStore, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &LRUStore{profiles: cache}, nil
}

func (store *LRUStore) ReplaceProfiles(profiles []rfm.CustomerProfile, stats []rfm.SegmentStatistic) int {
	store.profiles.Purge()
	for i := range profiles {
		profile := profiles[i]
		store.profiles.Add(profile.CustomerID, &profile)
	}

	store.statsLock.Lock()
	store.stats = append([]rfm.SegmentStatistic(nil), stats...)
	store.statsLock.Unlock()

	return http.StatusCreated
}

func (store *LRUStore) GetProfile(customerID float64) (*rfm.CustomerProfile, int) {
	value, exists := store.profiles.Get(customerID)
	if !exists {
		return nil, http.StatusNotFound
	}

	profile, ok := value.(*rfm.CustomerProfile)
	if !ok {
		return nil, http.StatusInternalServerError
	}

	copied := *profile
	return &copied, http.StatusFound
}

func (store *LRUStore) GetSegmentStatistics() ([]rfm.SegmentStatistic, int) {
	store.statsLock.RLock()
	defer store.statsLock.RUnlock()

	if len(store.stats) == 0 {
		return nil, http.StatusNotFound
	}

	copied := append([]rfm.SegmentStatistic(nil), store.stats...)
	return copied, http.StatusFound
}

func (store *LRUStore) Count() int {
	return store.profiles.Len()
}
