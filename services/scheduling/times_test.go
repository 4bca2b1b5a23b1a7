package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMinutes(t *testing.T) {
	got, err := AddMinutes("10:30", 90)
	require.NoError(t, err)
	assert.Equal(t, "12:00", got)

	got, err = AddMinutes("09:00", 45)
	require.NoError(t, err)
	assert.Equal(t, "09:45", got)

	_, err = AddMinutes("9am", 30)
	assert.Error(t, err)
}

func TestWeekdayName(t *testing.T) {
	got, err := WeekdayName("2024-06-03")
	require.NoError(t, err)
	assert.Equal(t, "Monday", got)

	_, err = WeekdayName("03/06/2024")
	assert.Error(t, err)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:05", formatClock(9*60+5))
	assert.Equal(t, "00:00", formatClock(0))
	assert.Equal(t, "16:00", formatClock(960))
}
