package credit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeStatus(t *testing.T) {
	now := time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		remaining int
		expiresAt time.Time
		want      Status
	}{
		{"credits left and not expired", 3, now.Add(time.Hour), StatusActive},
		{"no credits left", 0, now.Add(time.Hour), StatusDepleted},
		{"expired with credits left", 3, now.Add(-time.Hour), StatusExpired},
		{"expired and depleted reads expired", 0, now.Add(-time.Hour), StatusExpired},
		{"expiry boundary is expired", 3, now, StatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStatus(tt.remaining, tt.expiresAt, now))
		})
	}
}
