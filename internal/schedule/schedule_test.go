package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlots(t *testing.T) {
	t.Parallel()

	slots := Slots()

	require.Len(t, slots, 10)
	assert.Equal(t, []string{"05:00", "05:15", "05:30"}, slots[:3])
	assert.Equal(t, "07:15", slots[len(slots)-1])
	assert.NotContains(t, slots, "07:30")
	assert.NotContains(t, slots, "04:45")
}

func TestIsValidSlot(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		time  string
		valid bool
	}{
		{"05:00", true},
		{"06:45", true},
		{"07:15", true},
		{"07:30", false},
		{"04:45", false},
		{"05:10", false},
		{"5:00", false},
		{"", false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.time, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.valid, IsValidSlot(tc.time))
		})
	}
}

func TestFree(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		day      string
		booked   []string
		expected []string
	}{
		{
			name:     "No bookings",
			day:      Monday,
			booked:   nil,
			expected: Slots(),
		},
		{
			name:   "Some bookings",
			day:    Wednesday,
			booked: []string{"05:00", "06:15", "07:15"},
			expected: []string{
				"05:15", "05:30", "05:45", "06:00", "06:30", "06:45", "07:00",
			},
		},
		{
			name:     "Booked time outside the grid is ignored",
			day:      Friday,
			booked:   []string{"08:00"},
			expected: Slots(),
		},
		{
			name:     "Fully booked",
			day:      Friday,
			booked:   Slots(),
			expected: []string{},
		},
		{
			name:     "Invalid day",
			day:      "Tuesday",
			booked:   nil,
			expected: []string{},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, Free(tc.day, tc.booked))
		})
	}
}

func TestFreeExcludesExactlyBookedTimes(t *testing.T) {
	t.Parallel()

	for _, day := range Days() {
		for _, booked := range Slots() {
			free := Free(day, []string{booked})

			assert.NotContains(t, free, booked)
			assert.Len(t, free, len(Slots())-1)
		}
	}
}

func TestEnums(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidDay(Monday))
	assert.False(t, IsValidDay("monday"))
	assert.False(t, IsValidDay("Tuesday"))

	assert.True(t, IsValidMeetingType(Zoom))
	assert.True(t, IsValidMeetingType(FaceToFace))
	assert.False(t, IsValidMeetingType("phone"))

	assert.Equal(t, 0, DayOrder(Monday))
	assert.Equal(t, 2, DayOrder(Friday))
	assert.Equal(t, -1, DayOrder("Sunday"))
}
