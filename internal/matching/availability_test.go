package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"worklink-matching/internal/models"
)

// 2026-03-02 is a Monday.
var monday = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func weekdayProfile(days ...string) *models.WorkerProfile {
	return &models.WorkerProfile{
		WorkerID:    "w-1",
		WorkingDays: days,
		WorkStart:   "09:00",
		WorkEnd:     "18:00",
	}
}

func TestAvailabilityScore(t *testing.T) {
	tests := []struct {
		name    string
		profile *models.WorkerProfile
		urgency models.Urgency
		ref     time.Time
		want    float64
	}{
		{
			name:    "working day medium urgency",
			profile: weekdayProfile("mon", "tue", "wed"),
			urgency: models.UrgencyMedium,
			ref:     monday,
			want:    1.0,
		},
		{
			name:    "off day medium urgency",
			profile: weekdayProfile("sat", "sun"),
			urgency: models.UrgencyMedium,
			ref:     monday,
			want:    0.6,
		},
		{
			name:    "working day emergency penalized",
			profile: weekdayProfile("mon"),
			urgency: models.UrgencyEmergency,
			ref:     monday,
			want:    0.95,
		},
		{
			name:    "off day low urgency boosted",
			profile: weekdayProfile("sun"),
			urgency: models.UrgencyLow,
			ref:     monday,
			want:    0.65,
		},
		{
			name:    "working day low urgency clamps at 1",
			profile: weekdayProfile("mon"),
			urgency: models.UrgencyLow,
			ref:     monday,
			want:    1.0,
		},
		{
			name:    "empty schedule counts as off day",
			profile: weekdayProfile(),
			urgency: models.UrgencyHigh,
			ref:     monday,
			want:    0.6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AvailabilityScore(tt.profile, tt.urgency, tt.ref), 1e-9)
		})
	}
}

func TestAvailabilityScore_LeaveDateIsHardZero(t *testing.T) {
	p := weekdayProfile("mon")
	p.LeaveDates = []string{"2026-03-02"}

	// Leave wins over everything, including the low-urgency boost.
	for _, u := range []models.Urgency{models.UrgencyLow, models.UrgencyMedium, models.UrgencyEmergency} {
		assert.Equal(t, 0.0, AvailabilityScore(p, u, monday), "urgency %s", u)
	}

	// The day after leave ends the worker scores normally again.
	tuesday := monday.AddDate(0, 0, 1)
	p.WorkingDays = []string{"tue"}
	assert.Equal(t, 1.0, AvailabilityScore(p, models.UrgencyMedium, tuesday))
}
