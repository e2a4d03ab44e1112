package mode

import (
	"portfolio-chat-be/internal/constant"
	"portfolio-chat-be/internal/entity"
)

// Mode is the assistant voice for one request.
type Mode string

const (
	Recruiter Mode = "recruiter"
	Casual    Mode = "casual"
)

func (m Mode) String() string {
	return string(m)
}

// FromPreference picks Recruiter only for visitors who onboarded as recruiters.
func FromPreference(p *entity.Preference) Mode {
	if p != nil && p.Role == constant.RoleRecruiter {
		return Recruiter
	}
	return Casual
}
