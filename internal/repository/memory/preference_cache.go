package memory

import (
	"time"

	"portfolio-chat-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// PreferenceCache keeps recently read visitor preferences in process so the
// chat path does not hit storage for the mode lookup on every message.
type PreferenceCache struct {
	cache *cache.Cache
}

func NewPreferenceCache(ttl time.Duration) *PreferenceCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &PreferenceCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *PreferenceCache) Get(visitorId string) (*entity.Preference, bool) {
	if x, found := c.cache.Get(visitorId); found {
		return x.(*entity.Preference), true
	}
	return nil, false
}

// Save only keeps real preferences. A miss is not cached, so a visitor who
// onboards while a chat turn is in flight is never pinned to the default mode.
func (c *PreferenceCache) Save(visitorId string, preference *entity.Preference) {
	if preference == nil {
		return
	}
	c.cache.Set(visitorId, preference, cache.DefaultExpiration)
}

func (c *PreferenceCache) Delete(visitorId string) {
	c.cache.Delete(visitorId)
}
