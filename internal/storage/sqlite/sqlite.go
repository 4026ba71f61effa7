package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"slotBooker/internal/config"
	"slotBooker/internal/models"
	"slotBooker/internal/schedule"
	"slotBooker/internal/storage"
	"slotBooker/internal/storage/migrations"
)

type Storage struct {
	db *sql.DB
}

var _ storage.Store = (*Storage)(nil)

// New opens the database file, applies migrations and pins the pool to a single
// connection so SQLite sees one writer at a time.
func New(ctx context.Context, cfg *config.SQLite) (*Storage, error) {
	const op = "storage.sqlite.New"

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%s: create data dir: %w", op, err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d&_foreign_keys=on",
		cfg.Path,
		cfg.BusyTimeout.Milliseconds(),
	)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err = migrations.Up(ctx, db, goose.DialectSQLite3, "sqlite"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db.SetMaxOpenConns(1)

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) ListBookings(ctx context.Context) ([]models.Booking, error) {
	const op = "storage.sqlite.ListBookings"

	query := `
		SELECT id, student_name, meeting_type, day, time, created_at
		FROM bookings
		ORDER BY CASE day
			WHEN 'Monday' THEN 1
			WHEN 'Wednesday' THEN 2
			WHEN 'Friday' THEN 3
		END, time`

	bookings, err := s.queryBookings(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookings, nil
}

func (s *Storage) ListBookingsByDay(ctx context.Context, day string) ([]models.Booking, error) {
	const op = "storage.sqlite.ListBookingsByDay"

	query := `
		SELECT id, student_name, meeting_type, day, time, created_at
		FROM bookings
		WHERE day = ?
		ORDER BY time`

	bookings, err := s.queryBookings(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookings, nil
}

func (s *Storage) IsSlotFree(ctx context.Context, day, time string) (bool, error) {
	const op = "storage.sqlite.IsSlotFree"

	var taken bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM bookings WHERE day = ? AND time = ?)`,
		day, time,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return !taken, nil
}

// CreateBooking relies on UNIQUE(day, time) alone; a lost race surfaces as
// storage.ErrSlotConflict.
func (s *Storage) CreateBooking(ctx context.Context, booking models.Booking) (models.Booking, error) {
	const op = "storage.sqlite.CreateBooking"

	booking.CreatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO bookings (student_name, meeting_type, day, time, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		booking.StudentName,
		booking.MeetingType,
		booking.Day,
		booking.Time,
		booking.CreatedAt,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return models.Booking{}, fmt.Errorf("%s: %w", op, storage.ErrSlotConflict)
		}

		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Booking{}, fmt.Errorf("%s: failed to get last insert id: %w", op, err)
	}

	booking.ID = id

	return booking, nil
}

func (s *Storage) DeleteBooking(ctx context.Context, id int64) error {
	const op = "storage.sqlite.DeleteBooking"

	res, err := s.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if affected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
	}

	return nil
}

func (s *Storage) AvailableSlots(ctx context.Context, day string) ([]string, error) {
	const op = "storage.sqlite.AvailableSlots"

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
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		err = rows.Scan(
			&b.ID,
			&b.StudentName,
			&b.MeetingType,
			&b.Day,
			&b.Time,
			&b.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}
