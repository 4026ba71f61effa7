package models

import "time"

type Booking struct {
	ID          int64     `json:"id"`
	StudentName string    `json:"student_name"`
	MeetingType string    `json:"meeting_type"`
	Day         string    `json:"day"`
	Time        string    `json:"time"`
	CreatedAt   time.Time `json:"created_at"`
}
