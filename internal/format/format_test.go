package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrencyRoundsAtDisplayTime(t *testing.T) {
	out := Currency(33.005, "USD")
	assert.Contains(t, out, "33.0")
	assert.NotEmpty(t, out)
}

func TestCurrencyUnknownCodeFallsBackToUSD(t *testing.T) {
	assert.Equal(t, Currency(10, "USD"), Currency(10, ""))
	assert.Equal(t, Currency(10, "USD"), Currency(10, "???"))
}

func TestCurrencyDistinctUnits(t *testing.T) {
	assert.NotEqual(t, Currency(10, "USD"), Currency(10, "EUR"))
}

func TestDate(t *testing.T) {
	assert.Equal(t, "-", Date(time.Time{}))

	ts := time.Date(2024, time.May, 1, 14, 30, 0, 0, time.UTC)
	assert.NotEqual(t, "-", Date(ts))
}

func TestDateString(t *testing.T) {
	assert.Equal(t, "-", DateString(""))
	assert.Equal(t, "-", DateString("not a date"))
	assert.NotEqual(t, "-", DateString("2024-05-01"))
	assert.NotEqual(t, "-", DateString("2024-05-01T10:00:00Z"))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "20.00%", Percent(0.2))
	assert.Equal(t, "0.00%", Percent(0))
}
