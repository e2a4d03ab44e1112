package visitor

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	existing := uuid.NewString()

	tests := []struct {
		name       string
		token      string
		wantIssued bool
		wantSame   bool
	}{
		{"valid token kept", existing, false, true},
		{"empty token", "", true, false},
		{"garbage token", "abc", true, false},
		{"nil uuid", uuid.Nil.String(), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, issued := Resolve(tt.token)
			assert.Equal(t, tt.wantIssued, issued)
			if tt.wantSame {
				assert.Equal(t, tt.token, id)
			} else {
				_, err := uuid.Parse(id)
				require.NoError(t, err)
				assert.NotEqual(t, tt.token, id)
			}
		})
	}

	a, _ := Resolve("")
	b, _ := Resolve("")
	assert.NotEqual(t, a, b)
}
