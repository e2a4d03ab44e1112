// Package visitor issues and recognises the anonymous visitor identity that
// scopes quota, sessions and preferences.
package visitor

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultCookieName = "ft_vid"
	CookieMaxAge      = 365 * 24 * time.Hour
)

// Resolve returns the visitor id carried by token when it is a well formed
// id. Otherwise it generates a fresh one and reports issued=true so the caller
// persists it. It never fails.
func Resolve(token string) (visitorId string, issued bool) {
	if token != "" {
		if id, err := uuid.Parse(token); err == nil && id != uuid.Nil {
			return id.String(), false
		}
	}
	return uuid.New().String(), true
}
