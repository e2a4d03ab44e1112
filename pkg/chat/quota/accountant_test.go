package quota

import (
	"context"
	"errors"
	"testing"
	"time"

	"portfolio-chat-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTimes struct {
	times []time.Time
	err   error
	since time.Time
}

func (f *fakeTimes) ListUserMessageTimes(ctx context.Context, visitorId string, since time.Time) ([]time.Time, error) {
	f.since = since
	if f.err != nil {
		return nil, f.err
	}
	var out []time.Time
	for _, t := range f.times {
		if !t.Before(since) {
			out = append(out, t)
		}
	}
	return out, nil
}

func ago(now time.Time, d ...time.Duration) []time.Time {
	out := make([]time.Time, len(d))
	for i, x := range d {
		out[i] = now.Add(-x)
	}
	return out
}

func repeat(d time.Duration, n int) []time.Duration {
	out := make([]time.Duration, n)
	for i := range out {
		out[i] = d
	}
	return out
}

func TestCheckAdmission(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		times   []time.Time
		want    Outcome
		message string
	}{
		{
			name:  "no history",
			times: nil,
			want:  Allow,
		},
		{
			name:  "nine spread out",
			times: ago(now, repeat(time.Hour, 9)...),
			want:  Allow,
		},
		{
			name:    "ten in the last day",
			times:   ago(now, repeat(time.Hour, 10)...),
			want:    DenyDailyLimit,
			message: "You've reached your daily limit (10 messages). Try again tomorrow!",
		},
		{
			name:  "ten but one just outside the day",
			times: append(ago(now, repeat(time.Hour, 9)...), now.Add(-24*time.Hour-time.Second)),
			want:  Allow,
		},
		{
			name:    "three within burst window",
			times:   ago(now, 2*time.Second, 5*time.Second, 8*time.Second),
			want:    DenyBurst,
			message: "Slow down! Please wait a few seconds between messages.",
		},
		{
			name:  "two within burst window",
			times: ago(now, 2*time.Second, 5*time.Second, time.Minute),
			want:  Allow,
		},
		{
			name:  "burst boundary is inclusive",
			times: ago(now, time.Second, 2*time.Second, 10*time.Second),
			want:  DenyBurst,
		},
		{
			name:  "just past the burst boundary",
			times: ago(now, time.Second, 2*time.Second, 10*time.Second+time.Millisecond),
			want:  Allow,
		},
		{
			name:  "daily wins over burst",
			times: ago(now, append(repeat(time.Second, 3), repeat(time.Hour, 7)...)...),
			want:  DenyDailyLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeTimes{times: tt.times}
			a := NewAccountant(store, DefaultPolicy())

			d, err := a.CheckAdmission(context.Background(), "v1", now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Outcome)
			if tt.message != "" {
				assert.Equal(t, tt.message, d.Message)
			}
			assert.Equal(t, now.Add(-24*time.Hour), store.since)
		})
	}
}

func TestCheckAdmissionStorageError(t *testing.T) {
	a := NewAccountant(&fakeTimes{err: errors.New("connection refused")}, DefaultPolicy())

	_, err := a.CheckAdmission(context.Background(), "v1", time.Now())

	var storageErr *dto.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.NotContains(t, storageErr.PublicDetails(), "connection refused")
}

func TestDecisionErr(t *testing.T) {
	policy := DefaultPolicy()

	assert.Nil(t, Decision{Outcome: Allow}.Err(policy))

	var rateErr *dto.RateLimitError
	require.ErrorAs(t, Decision{Outcome: DenyDailyLimit, Message: "m"}.Err(policy), &rateErr)
	assert.Equal(t, "Rate limit exceeded", rateErr.Label())
	assert.Equal(t, 10, rateErr.Limit)

	require.ErrorAs(t, Decision{Outcome: DenyBurst, Message: "m"}.Err(policy), &rateErr)
	assert.Equal(t, "Spam detected", rateErr.Label())
	assert.Equal(t, 3, rateErr.Limit)
}
