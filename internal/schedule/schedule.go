// Package schedule holds the fixed booking template: which days can be booked,
// which meeting formats exist and the 15-minute slot grid inside the morning window.
package schedule

import (
	"fmt"
	"slices"
)

const (
	Monday    = "Monday"
	Wednesday = "Wednesday"
	Friday    = "Friday"
)

const (
	FaceToFace = "face-to-face"
	Zoom       = "zoom"
)

// Grid bounds in minutes since midnight. End is exclusive.
const (
	StartMinute  = 5 * 60
	EndMinute    = 7*60 + 30
	SlotDuration = 15
)

var (
	days         = []string{Monday, Wednesday, Friday}
	meetingTypes = []string{FaceToFace, Zoom}
)

// Days returns the bookable days in calendar order.
func Days() []string {
	return slices.Clone(days)
}

// MeetingTypes returns the supported meeting formats.
func MeetingTypes() []string {
	return slices.Clone(meetingTypes)
}

func IsValidDay(day string) bool {
	return slices.Contains(days, day)
}

func IsValidMeetingType(meetingType string) bool {
	return slices.Contains(meetingTypes, meetingType)
}

// DayOrder is the position of day within the bookable week, or -1.
func DayOrder(day string) int {
	return slices.Index(days, day)
}

// Slots generates the grid as zero-padded "HH:MM" strings, StartMinute <= t < EndMinute.
func Slots() []string {
	slots := make([]string, 0, (EndMinute-StartMinute)/SlotDuration)
	for m := StartMinute; m < EndMinute; m += SlotDuration {
		slots = append(slots, formatMinute(m))
	}

	return slots
}

func IsValidSlot(t string) bool {
	return slices.Contains(Slots(), t)
}

// Free returns the grid slots for day that are not in booked, ascending.
// An unknown day has no slots.
func Free(day string, booked []string) []string {
	if !IsValidDay(day) {
		return []string{}
	}

	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}

	free := make([]string, 0, len(Slots()))
	for _, t := range Slots() {
		if _, ok := taken[t]; !ok {
			free = append(free, t)
		}
	}

	return free
}

func formatMinute(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
