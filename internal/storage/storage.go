package storage

import (
	"context"
	"errors"

	"slotBooker/internal/models"
)

var (
	ErrSlotConflict    = errors.New("time slot already booked")
	ErrBookingNotFound = errors.New("booking not found")
)

// Store is the contract shared by every booking backend.
type Store interface {
	ListBookings(ctx context.Context) ([]models.Booking, error)
	ListBookingsByDay(ctx context.Context, day string) ([]models.Booking, error)
	IsSlotFree(ctx context.Context, day, time string) (bool, error)
	CreateBooking(ctx context.Context, booking models.Booking) (models.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
	AvailableSlots(ctx context.Context, day string) ([]string, error)
	Ping(ctx context.Context) error
	Close() error
}
