package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/train-seat-reservation/internal/model"
)

// MySQLStore is the durable BookingStore implementation.  It persists
// booking records and their passengers in two tables:
//
//	bookings(pnr, user_id, train_id, travel_date, source, destination,
//	         coach_type, total_fare, status, position, refund_amount,
//	         cancelled_at, confirmed_at, created_at)
//	booking_passengers(pnr, seq, name, age, gender, preference,
//	                   coach_id, seat_id)
//
// Only booking records are durable; the live seat map and the lock
// table stay in-memory by design, so after a restart the stored
// bookings serve as the audit trail rather than as a recovery source.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore returns a store bound to the provided database.
func NewMySQLStore(db *sql.DB) *MySQLStore { return &MySQLStore{db: db} }

// Create inserts the booking and its passengers in one transaction.
func (s *MySQLStore) Create(ctx context.Context, b *model.Booking) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM bookings WHERE pnr = ?`, b.PNR).Scan(&one)
	switch {
	case err == nil:
		return fmt.Errorf("pnr %s: %w", b.PNR, ErrDuplicatePNR)
	case !errors.Is(err, sql.ErrNoRows):
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO bookings
		 (pnr, user_id, train_id, travel_date, source, destination, coach_type,
		  total_fare, status, position, refund_amount, cancelled_at, confirmed_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.PNR, b.UserID, b.TrainID, string(b.Date), b.Source, b.Destination, string(b.CoachType),
		b.TotalFare, string(b.State.Status), b.State.Position, b.State.RefundAmount,
		nullTime(b.State.CancelledAt), nullTime(b.ConfirmedAt), b.CreatedAt.UTC(),
	)
	if err != nil {
		return err
	}
	if err := insertPassengersTx(ctx, tx, b); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Update rewrites the booking row and replaces its passenger rows.
// Passenger seat assignments change on commit and cancellation, so a
// delete-and-reinsert keeps the two tables consistent without
// per-field diffing.
func (s *MySQLStore) Update(ctx context.Context, b *model.Booking) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status = ?, position = ?, refund_amount = ?,
		 cancelled_at = ?, confirmed_at = ? WHERE pnr = ?`,
		string(b.State.Status), b.State.Position, b.State.RefundAmount,
		nullTime(b.State.CancelledAt), nullTime(b.ConfirmedAt), b.PNR,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// The row may exist with identical values; distinguish a
		// no-op update from a missing booking.
		var one int
		if scanErr := tx.QueryRowContext(ctx, `SELECT 1 FROM bookings WHERE pnr = ?`, b.PNR).Scan(&one); scanErr != nil {
			if errors.Is(scanErr, sql.ErrNoRows) {
				return fmt.Errorf("pnr %s: %w", b.PNR, ErrBookingNotFound)
			}
			return scanErr
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM booking_passengers WHERE pnr = ?`, b.PNR); err != nil {
		return err
	}
	if err := insertPassengersTx(ctx, tx, b); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByPNR loads one booking with its passengers.
func (s *MySQLStore) GetByPNR(ctx context.Context, pnr string) (*model.Booking, error) {
	b, err := s.scanBooking(s.db.QueryRowContext(ctx,
		`SELECT pnr, user_id, train_id, travel_date, source, destination, coach_type,
		        total_fare, status, position, refund_amount, cancelled_at, confirmed_at, created_at
		 FROM bookings WHERE pnr = ?`, pnr))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("pnr %s: %w", pnr, ErrBookingNotFound)
		}
		return nil, err
	}
	if err := s.loadPassengers(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ListByUser returns the user's bookings, newest first.
func (s *MySQLStore) ListByUser(ctx context.Context, userID uint64) ([]*model.Booking, error) {
	return s.list(ctx,
		`SELECT pnr, user_id, train_id, travel_date, source, destination, coach_type,
		        total_fare, status, position, refund_amount, cancelled_at, confirmed_at, created_at
		 FROM bookings WHERE user_id = ? ORDER BY created_at DESC`, userID)
}

// ListByStatus returns bucket bookings in the given status ascending
// by queue position.
func (s *MySQLStore) ListByStatus(ctx context.Context, trainID string, date model.TravelDate, ct model.CoachType, status model.BookingStatus) ([]*model.Booking, error) {
	return s.list(ctx,
		`SELECT pnr, user_id, train_id, travel_date, source, destination, coach_type,
		        total_fare, status, position, refund_amount, cancelled_at, confirmed_at, created_at
		 FROM bookings
		 WHERE train_id = ? AND travel_date = ? AND coach_type = ? AND status = ?
		 ORDER BY position ASC`,
		trainID, string(date), string(ct), string(status))
}

func (s *MySQLStore) list(ctx context.Context, query string, args ...interface{}) ([]*model.Booking, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Booking
	for rows.Next() {
		b, err := s.scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, b := range out {
		if err := s.loadPassengers(ctx, b); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (s *MySQLStore) scanBooking(row rowScanner) (*model.Booking, error) {
	var (
		b                        model.Booking
		date, coachType, status  string
		cancelledAt, confirmedAt sql.NullTime
	)
	err := row.Scan(&b.PNR, &b.UserID, &b.TrainID, &date, &b.Source, &b.Destination, &coachType,
		&b.TotalFare, &status, &b.State.Position, &b.State.RefundAmount,
		&cancelledAt, &confirmedAt, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	b.Date = model.TravelDate(date)
	b.CoachType = model.CoachType(coachType)
	b.State.Status = model.BookingStatus(status)
	if cancelledAt.Valid {
		b.State.CancelledAt = cancelledAt.Time
	}
	if confirmedAt.Valid {
		b.ConfirmedAt = confirmedAt.Time
	}
	return &b, nil
}

func (s *MySQLStore) loadPassengers(ctx context.Context, b *model.Booking) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, age, gender, preference, coach_id, seat_id
		 FROM booking_passengers WHERE pnr = ? ORDER BY seq ASC`, b.PNR)
	if err != nil {
		return err
	}
	defer rows.Close()
	b.Passengers = b.Passengers[:0]
	for rows.Next() {
		var (
			p                  model.Passenger
			gender, preference string
		)
		if err := rows.Scan(&p.Name, &p.Age, &gender, &preference, &p.CoachID, &p.SeatID); err != nil {
			return err
		}
		p.Gender = model.Gender(gender)
		p.Preference = model.BerthType(preference)
		b.Passengers = append(b.Passengers, p)
	}
	return rows.Err()
}

func insertPassengersTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	if len(b.Passengers) == 0 {
		return nil
	}
	query := `INSERT INTO booking_passengers (pnr, seq, name, age, gender, preference, coach_id, seat_id) VALUES `
	args := make([]interface{}, 0, len(b.Passengers)*8)
	for i, p := range b.Passengers {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?, ?)"
		args = append(args, b.PNR, i, p.Name, p.Age, string(p.Gender), string(p.Preference), p.CoachID, p.SeatID)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
