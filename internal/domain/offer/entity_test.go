package offer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnumsAreValid(t *testing.T) {
	for _, d := range DiscountTypes() {
		assert.True(t, d.IsValid())
	}
	for _, s := range Statuses() {
		assert.True(t, s.IsValid())
	}

	assert.False(t, DiscountType("percent").IsValid())
	assert.False(t, Status("expired").IsValid())
}

func TestCoversDate(t *testing.T) {
	o := Offer{
		StartDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, o.CoversDate(time.Date(2026, 1, 10, 23, 59, 0, 0, time.UTC)))
	assert.True(t, o.CoversDate(time.Date(2026, 1, 20, 18, 0, 0, 0, time.UTC)))
	assert.False(t, o.CoversDate(time.Date(2026, 1, 9, 12, 0, 0, 0, time.UTC)))
	assert.False(t, o.CoversDate(time.Date(2026, 1, 21, 0, 0, 0, 0, time.UTC)))
}
