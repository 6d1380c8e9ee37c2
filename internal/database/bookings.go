package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/models"
)

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (item_id, booker_id, start_date, end_date, status)
              VALUES (?, ?, ?, ?, ?)`
	result, err := db.ExecContext(ctx, query,
		booking.ItemID,
		booking.BookerID,
		fmtTime(booking.Start),
		fmtTime(booking.End),
		booking.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	return nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	var booking models.Booking
	var startStr, endStr string
	query := `SELECT id, item_id, booker_id, start_date, end_date, status
              FROM bookings WHERE id = ?`
	err := db.QueryRowContext(ctx, query, id).Scan(
		&booking.ID, &booking.ItemID, &booking.BookerID, &startStr, &endStr, &booking.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.Start, err = parseTime(startStr); err != nil {
		return nil, fmt.Errorf("failed to parse booking start %s: %w", startStr, err)
	}
	if booking.End, err = parseTime(endStr); err != nil {
		return nil, fmt.Errorf("failed to parse booking end %s: %w", endStr, err)
	}
	return &booking, nil
}

func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE bookings SET status = ? WHERE id = ?`
	if _, err := db.ExecContext(ctx, query, status, id); err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	return nil
}

// LastBookingForItem returns the booking with the greatest start at or before
// now, or nil when there is none. With approvedOnly set, only APPROVED
// bookings are considered.
func (db *DB) LastBookingForItem(ctx context.Context, itemID int64, now time.Time, approvedOnly bool) (*models.Booking, error) {
	query := `SELECT id, item_id, booker_id, start_date, end_date, status
              FROM bookings WHERE item_id = ? AND start_date <= ?`
	args := []any{itemID, fmtTime(now)}
	if approvedOnly {
		query += ` AND status = ?`
		args = append(args, models.StatusApproved)
	}
	query += ` ORDER BY start_date DESC LIMIT 1`
	return db.queryOptionalBooking(ctx, query, args...)
}

// NextBookingForItem returns the booking with the smallest start after now,
// or nil when there is none.
func (db *DB) NextBookingForItem(ctx context.Context, itemID int64, now time.Time, approvedOnly bool) (*models.Booking, error) {
	query := `SELECT id, item_id, booker_id, start_date, end_date, status
              FROM bookings WHERE item_id = ? AND start_date > ?`
	args := []any{itemID, fmtTime(now)}
	if approvedOnly {
		query += ` AND status = ?`
		args = append(args, models.StatusApproved)
	}
	query += ` ORDER BY start_date ASC LIMIT 1`
	return db.queryOptionalBooking(ctx, query, args...)
}

// HasApprovedBooking reports whether the user holds an APPROVED booking of
// the item whose start is at or before now. Gates comment creation.
func (db *DB) HasApprovedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM bookings
              WHERE item_id = ? AND booker_id = ? AND status = ? AND start_date <= ?`
	err := db.QueryRowContext(ctx, query, itemID, bookerID, models.StatusApproved, fmtTime(now)).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check approved booking: %w", err)
	}
	return count > 0, nil
}

const bookingViewSelect = `SELECT b.id, b.start_date, b.end_date, b.status,
                                  u.id, u.name, i.id, i.name
                           FROM bookings b
                           JOIN users u ON u.id = b.booker_id
                           JOIN items i ON i.id = b.item_id`

// Booker listings.

func (db *DB) BookingsByBooker(ctx context.Context, bookerID int64, limit, offset int) ([]models.BookingView, error) {
	query := bookingViewSelect + ` WHERE b.booker_id = ? ORDER BY b.id DESC`
	args := []any{bookerID}
	if limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, limit, offset)
	}
	return db.queryBookingViews(ctx, query, args...)
}

func (db *DB) BookingsByBookerPast(ctx context.Context, bookerID int64, now time.Time) ([]models.BookingView, error) {
	query := bookingViewSelect + ` WHERE b.booker_id = ? AND b.end_date < ? ORDER BY b.id DESC`
	return db.queryBookingViews(ctx, query, bookerID, fmtTime(now))
}

func (db *DB) BookingsByBookerCurrent(ctx context.Context, bookerID int64, now time.Time) ([]models.BookingView, error) {
	query := bookingViewSelect + ` WHERE b.booker_id = ? AND b.start_date < ? AND b.end_date > ? ORDER BY b.id ASC`
	return db.queryBookingViews(ctx, query, bookerID, fmtTime(now), fmtTime(now))
}

func (db *DB) BookingsByBookerFuture(ctx context.Context, bookerID int64, now time.Time) ([]models.BookingView, error) {
	query := bookingViewSelect + ` WHERE b.booker_id = ? AND b.start_date > ? ORDER BY b.id DESC`
	return db.queryBookingViews(ctx, query, bookerID, fmtTime(now))
}

func (db *DB) BookingsByBookerStatus(ctx context.Context, bookerID int64, status string) ([]models.BookingView, error) {
	query := bookingViewSelect + ` WHERE b.booker_id = ? AND b.status = ? ORDER BY b.id DESC`
	return db.queryBookingViews(ctx, query, bookerID, status)
}

// Owner listings cover every booking of any item the user owns.

func (db *DB) BookingsByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]models.BookingView, error) {
	query := bookingViewSelect + ` WHERE i.owner_id = ? ORDER BY b.id DESC`
	args := []any{ownerID}
	if limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, limit, offset)
	}
	return db.queryBookingViews(ctx, query, args...)
}

func (db *DB) BookingsByOwnerPast(ctx context.Context, ownerID int64, now time.Time) ([]models.BookingView, error) {
	query := bookingViewSelect + ` WHERE i.owner_id = ? AND b.end_date < ? ORDER BY b.id DESC`
	return db.queryBookingViews(ctx, query, ownerID, fmtTime(now))
}

func (db *DB) BookingsByOwnerCurrent(ctx context.Context, ownerID int64, now time.Time) ([]models.BookingView, error) {
	query := bookingViewSelect + ` WHERE i.owner_id = ? AND b.start_date < ? AND b.end_date > ? ORDER BY b.id ASC`
	return db.queryBookingViews(ctx, query, ownerID, fmtTime(now), fmtTime(now))
}

func (db *DB) BookingsByOwnerFuture(ctx context.Context, ownerID int64, now time.Time) ([]models.BookingView, error) {
	query := bookingViewSelect + ` WHERE i.owner_id = ? AND b.start_date > ? ORDER BY b.id DESC`
	return db.queryBookingViews(ctx, query, ownerID, fmtTime(now))
}

func (db *DB) BookingsByOwnerStatus(ctx context.Context, ownerID int64, status string) ([]models.BookingView, error) {
	query := bookingViewSelect + ` WHERE i.owner_id = ? AND b.status = ? ORDER BY b.id DESC`
	return db.queryBookingViews(ctx, query, ownerID, status)
}

func (db *DB) queryOptionalBooking(ctx context.Context, query string, args ...any) (*models.Booking, error) {
	var booking models.Booking
	var startStr, endStr string
	err := db.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID, &booking.ItemID, &booking.BookerID, &startStr, &endStr, &booking.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query booking: %w", err)
	}

	if booking.Start, err = parseTime(startStr); err != nil {
		return nil, fmt.Errorf("failed to parse booking start %s: %w", startStr, err)
	}
	if booking.End, err = parseTime(endStr); err != nil {
		return nil, fmt.Errorf("failed to parse booking end %s: %w", endStr, err)
	}
	return &booking, nil
}

func (db *DB) queryBookingViews(ctx context.Context, query string, args ...any) ([]models.BookingView, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var views []models.BookingView
	for rows.Next() {
		var v models.BookingView
		var startStr, endStr string
		err := rows.Scan(&v.ID, &startStr, &endStr, &v.Status, &v.Booker.ID, &v.Booker.Name, &v.Item.ID, &v.Item.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		if v.Start, err = parseTime(startStr); err != nil {
			return nil, fmt.Errorf("failed to parse booking start %s: %w", startStr, err)
		}
		if v.End, err = parseTime(endStr); err != nil {
			return nil, fmt.Errorf("failed to parse booking end %s: %w", endStr, err)
		}
		views = append(views, v)
	}
	return views, rows.Err()
}
