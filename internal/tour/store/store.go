package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
	"github.com/MrJamesThe3rd/balcao/internal/database"
	"github.com/MrJamesThe3rd/balcao/internal/tour"
)

type Store struct {
	db database.Querier
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// NewTx builds a store whose queries run inside tx.
func NewTx(tx *sql.Tx) *Store {
	return &Store{db: tx}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectScheduleColumns = `
	ts.id, ts.product_id, p.name, p.price, ts.tour_date, ts.available_spots,
	ts.status, ts.notes, ts.created_at
`

const bookedQuery = `
	SELECT COALESCE(SUM(num_participants), 0)
	FROM tour_bookings
	WHERE schedule_id = $1 AND payment_status <> 'cancelled'
`

func scanSchedule(s scanner, extra ...any) (*tour.Schedule, error) {
	var sch tour.Schedule

	dest := []any{
		&sch.ID, &sch.ProductID, &sch.TourName, &sch.Price, &sch.Date, &sch.AvailableSpots,
		&sch.Status, &sch.Notes, &sch.CreatedAt,
	}

	if err := s.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	return &sch, nil
}

func (s *Store) CreateSchedule(ctx context.Context, sch *tour.Schedule) error {
	query := `
		INSERT INTO tour_schedules (product_id, tour_date, available_spots, status, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		sch.ProductID, sch.Date, sch.AvailableSpots, sch.Status, sch.Notes,
	).Scan(&sch.ID, &sch.CreatedAt)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return apperr.NotFound("product")
		}

		return fmt.Errorf("creating tour schedule: %w", err)
	}

	return nil
}

func (s *Store) GetSchedule(ctx context.Context, id uuid.UUID) (*tour.Schedule, error) {
	return s.getSchedule(ctx, id, "")
}

// LockSchedule reads a departure and holds its row lock until the
// transaction ends, so bookings against it are serialized. The booked count
// is read after the lock is granted and sees every booking committed before.
func (s *Store) LockSchedule(ctx context.Context, id uuid.UUID) (*tour.Schedule, error) {
	return s.getSchedule(ctx, id, " FOR UPDATE OF ts")
}

func (s *Store) getSchedule(ctx context.Context, id uuid.UUID, lock string) (*tour.Schedule, error) {
	query := `SELECT ` + selectScheduleColumns + `
		FROM tour_schedules ts
		JOIN products p ON p.id = ts.product_id
		WHERE ts.id = $1` + lock

	sch, err := scanSchedule(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("tour schedule")
		}

		return nil, fmt.Errorf("getting tour schedule: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, bookedQuery, id).Scan(&sch.Booked); err != nil {
		return nil, fmt.Errorf("counting booked spots: %w", err)
	}

	return sch, nil
}

func (s *Store) ListSchedules(ctx context.Context, filter tour.ListFilter) ([]*tour.Schedule, error) {
	query := `SELECT ` + selectScheduleColumns + `,
			COALESCE((
				SELECT SUM(b.num_participants)
				FROM tour_bookings b
				WHERE b.schedule_id = ts.id AND b.payment_status <> 'cancelled'
			), 0)
		FROM tour_schedules ts
		JOIN products p ON p.id = ts.product_id
		WHERE ts.tour_date >= $1`

	args := []any{filter.From}
	argIdx := 2

	if filter.Status != "" {
		query += fmt.Sprintf(" AND ts.status = $%d", argIdx)

		args = append(args, filter.Status)
		argIdx++
	}

	if filter.ProductID != nil {
		query += fmt.Sprintf(" AND ts.product_id = $%d", argIdx)

		args = append(args, *filter.ProductID)
		argIdx++
	}

	query += " ORDER BY ts.tour_date ASC, p.name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tour schedules: %w", err)
	}
	defer rows.Close()

	var schedules []*tour.Schedule

	for rows.Next() {
		var booked int

		sch, err := scanSchedule(rows, &booked)
		if err != nil {
			return nil, fmt.Errorf("scanning tour schedule: %w", err)
		}

		sch.Booked = booked
		schedules = append(schedules, sch)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tour schedule rows: %w", err)
	}

	return schedules, nil
}

func (s *Store) ListBookings(ctx context.Context, scheduleID uuid.UUID) ([]*tour.Booking, error) {
	query := `
		SELECT b.id, b.schedule_id, b.customer_id, c.full_name, b.employee_id, b.num_participants,
		       b.total_price, b.payment_status, COALESCE(b.payment_method, ''), b.notes, b.booking_date
		FROM tour_bookings b
		JOIN customers c ON c.id = b.customer_id
		WHERE b.schedule_id = $1
		ORDER BY b.booking_date ASC
	`

	rows, err := s.db.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("listing tour bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*tour.Booking

	for rows.Next() {
		var b tour.Booking
		if err := rows.Scan(
			&b.ID, &b.ScheduleID, &b.CustomerID, &b.CustomerName, &b.EmployeeID, &b.Participants,
			&b.Total, &b.PaymentStatus, &b.PaymentMethod, &b.Notes, &b.Date,
		); err != nil {
			return nil, fmt.Errorf("scanning tour booking: %w", err)
		}

		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tour booking rows: %w", err)
	}

	return bookings, nil
}

func (s *Store) InsertBooking(ctx context.Context, b *tour.Booking) error {
	query := `
		INSERT INTO tour_bookings (
			schedule_id, customer_id, employee_id, booking_date, num_participants,
			total_price, payment_status, payment_method, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	var method *string
	if b.PaymentMethod != "" {
		method = &b.PaymentMethod
	}

	err := s.db.QueryRowContext(ctx, query,
		b.ScheduleID, b.CustomerID, b.EmployeeID, b.Date, b.Participants,
		b.Total, b.PaymentStatus, method, b.Notes,
	).Scan(&b.ID)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return apperr.NotFound("customer")
		}

		return fmt.Errorf("creating tour booking: %w", err)
	}

	return nil
}
