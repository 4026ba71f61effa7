package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"slotBooker/internal/config"
	"slotBooker/internal/models"
	"slotBooker/internal/schedule"
	"slotBooker/internal/storage"
	"slotBooker/internal/storage/migrations"
)

const uniqueViolation = "23505"

type Storage struct {
	DB *sql.DB
}

var _ storage.Store = (*Storage)(nil)

func InitDB(ctx context.Context, dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	return Open(ctx, connStr)
}

// Open connects using a lib/pq connection string and applies migrations.
func Open(ctx context.Context, connStr string) (*Storage, error) {
	const op = "storage.postgres.Open"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect to the database: %w", op, err)
	}

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: failed to connect to the database: %w", op, err)
	}

	if _, err = migrations.Up(ctx, db, goose.DialectPostgres, "postgres"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *Storage) ListBookings(ctx context.Context) ([]models.Booking, error) {
	const op = "storage.postgres.ListBookings"

	query := `
		SELECT id, student_name, meeting_type, day, time, created_at
		FROM bookings
		ORDER BY array_position(ARRAY['Monday', 'Wednesday', 'Friday'], day), time`

	bookings, err := s.queryBookings(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookings, nil
}

func (s *Storage) ListBookingsByDay(ctx context.Context, day string) ([]models.Booking, error) {
	const op = "storage.postgres.ListBookingsByDay"

	query := `
		SELECT id, student_name, meeting_type, day, time, created_at
		FROM bookings
		WHERE day = $1
		ORDER BY time`

	bookings, err := s.queryBookings(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookings, nil
}

func (s *Storage) IsSlotFree(ctx context.Context, day, time string) (bool, error) {
	const op = "storage.postgres.IsSlotFree"

	checkQuery := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE day = $1 AND time = $2
		)`

	var taken bool
	if err := s.DB.QueryRowContext(ctx, checkQuery, day, time).Scan(&taken); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return !taken, nil
}

func (s *Storage) CreateBooking(ctx context.Context, booking models.Booking) (models.Booking, error) {
	const op = "storage.postgres.CreateBooking"

	insertQuery := `
		INSERT INTO bookings (student_name, meeting_type, day, time, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at`

	err := s.DB.QueryRowContext(ctx, insertQuery,
		booking.StudentName,
		booking.MeetingType,
		booking.Day,
		booking.Time,
	).Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return models.Booking{}, fmt.Errorf("%s: %w", op, storage.ErrSlotConflict)
		}

		return models.Booking{}, fmt.Errorf("%s: failed to create booking: %w", op, err)
	}

	return booking, nil
}

func (s *Storage) DeleteBooking(ctx context.Context, id int64) error {
	const op = "storage.postgres.DeleteBooking"

	result, err := s.DB.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: failed to delete booking: %w", op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
	}

	return nil
}

func (s *Storage) AvailableSlots(ctx context.Context, day string) ([]string, error) {
	const op = "storage.postgres.AvailableSlots"

	if !schedule.IsValidDay(day) {
		return []string{}, nil
	}

	bookings, err := s.ListBookingsByDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	booked := make([]string, 0, len(bookings))
	for _, b := range bookings {
		booked = append(booked, b.Time)
	}

	return schedule.Free(day, booked), nil
}

func (s *Storage) queryBookings(ctx context.Context, query string, args ...any) ([]models.Booking, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		var booking models.Booking
		err = rows.Scan(
			&booking.ID,
			&booking.StudentName,
			&booking.MeetingType,
			&booking.Day,
			&booking.Time,
			&booking.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}
