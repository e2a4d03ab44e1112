package memory

import (
	"testing"
	"time"

	"portfolio-chat-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceCache(t *testing.T) {
	t.Run("keeps saved preference", func(t *testing.T) {
		c := NewPreferenceCache(time.Minute)
		c.Save("visitor-a", &entity.Preference{VisitorId: "visitor-a", Role: "recruiter"})

		p, found := c.Get("visitor-a")
		require.True(t, found)
		assert.Equal(t, "recruiter", p.Role)
	})

	t.Run("missing preference is not cached", func(t *testing.T) {
		c := NewPreferenceCache(time.Minute)
		c.Save("visitor-a", nil)

		_, found := c.Get("visitor-a")
		assert.False(t, found)
	})

	t.Run("delete invalidates", func(t *testing.T) {
		c := NewPreferenceCache(time.Minute)
		c.Save("visitor-a", &entity.Preference{VisitorId: "visitor-a", Role: "friends"})
		c.Delete("visitor-a")

		_, found := c.Get("visitor-a")
		assert.False(t, found)
	})
}
