package quota

import (
	"context"
	"fmt"
	"time"

	"portfolio-chat-be/internal/dto"
)

// MessageTimes lists creation times of a visitor's user messages since a
// point in time.
type MessageTimes interface {
	ListUserMessageTimes(ctx context.Context, visitorId string, since time.Time) ([]time.Time, error)
}

type Outcome int

const (
	Allow Outcome = iota
	DenyDailyLimit
	DenyBurst
)

func (o Outcome) String() string {
	switch o {
	case DenyDailyLimit:
		return "deny_daily_limit"
	case DenyBurst:
		return "deny_burst"
	default:
		return "allow"
	}
}

// Policy holds the admission thresholds. Both limits are inclusive: a count
// equal to the limit denies.
type Policy struct {
	DailyLimit  int
	DailyWindow time.Duration
	BurstLimit  int
	BurstWindow time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		DailyLimit:  10,
		DailyWindow: 24 * time.Hour,
		BurstLimit:  3,
		BurstWindow: 10 * time.Second,
	}
}

type Decision struct {
	Outcome Outcome
	// Count is the number of user messages found in the daily window.
	Count   int
	Message string
}

func (d Decision) Allowed() bool {
	return d.Outcome == Allow
}

// Err converts a denial into the typed error surfaced to HTTP. It returns nil
// for Allow.
func (d Decision) Err(policy Policy) error {
	switch d.Outcome {
	case DenyDailyLimit:
		return &dto.RateLimitError{Reason: dto.RateLimitDaily, Limit: policy.DailyLimit, Message: d.Message}
	case DenyBurst:
		return &dto.RateLimitError{Reason: dto.RateLimitBurst, Limit: policy.BurstLimit, Message: d.Message}
	}
	return nil
}

// Accountant decides whether a visitor may send another chat message.
type Accountant struct {
	store  MessageTimes
	policy Policy
}

func NewAccountant(store MessageTimes, policy Policy) *Accountant {
	return &Accountant{store: store, policy: policy}
}

func (a *Accountant) Policy() Policy {
	return a.policy
}

// CheckAdmission counts the visitor's user messages in the trailing daily
// window and, when at least BurstLimit exist, the subset inside the burst
// window. The daily check wins when both apply.
func (a *Accountant) CheckAdmission(ctx context.Context, visitorId string, now time.Time) (Decision, error) {
	times, err := a.store.ListUserMessageTimes(ctx, visitorId, now.Add(-a.policy.DailyWindow))
	if err != nil {
		return Decision{}, &dto.StorageError{Op: "checking message quota", Err: err}
	}

	count := len(times)
	if count >= a.policy.DailyLimit {
		return Decision{
			Outcome: DenyDailyLimit,
			Count:   count,
			Message: fmt.Sprintf("You've reached your daily limit (%d messages). Try again tomorrow!", a.policy.DailyLimit),
		}, nil
	}

	if count >= a.policy.BurstLimit {
		burstStart := now.Add(-a.policy.BurstWindow)
		recent := 0
		for _, t := range times {
			if !t.Before(burstStart) {
				recent++
			}
		}
		if recent >= a.policy.BurstLimit {
			return Decision{
				Outcome: DenyBurst,
				Count:   count,
				Message: "Slow down! Please wait a few seconds between messages.",
			}, nil
		}
	}

	return Decision{Outcome: Allow, Count: count}, nil
}
