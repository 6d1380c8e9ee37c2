package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shareit/internal/models"
)

func (db *DB) CreateRequest(ctx context.Context, request *models.ItemRequest) error {
	query := `INSERT INTO requests (description, requestor_id, created) VALUES (?, ?, ?)`
	result, err := db.ExecContext(ctx, query,
		request.Description,
		request.RequestorID,
		fmtTime(request.Created),
	)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	request.ID = id
	return nil
}

func (db *DB) GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error) {
	var request models.ItemRequest
	var createdStr string
	query := `SELECT id, description, requestor_id, created FROM requests WHERE id = ?`
	err := db.QueryRowContext(ctx, query, id).Scan(
		&request.ID, &request.Description, &request.RequestorID, &createdStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	if request.Created, err = parseTime(createdStr); err != nil {
		return nil, fmt.Errorf("failed to parse request created %s: %w", createdStr, err)
	}
	return &request, nil
}

// RequestsByRequestor returns the caller's own requests, newest first.
func (db *DB) RequestsByRequestor(ctx context.Context, requestorID int64) ([]models.ItemRequest, error) {
	query := `SELECT id, description, requestor_id, created
              FROM requests WHERE requestor_id = ? ORDER BY created DESC`
	return db.queryRequests(ctx, query, requestorID)
}

// RequestsByOthers returns requests created by anyone except the caller,
// newest first, optionally limited.
func (db *DB) RequestsByOthers(ctx context.Context, requestorID int64, limit, offset int) ([]models.ItemRequest, error) {
	query := `SELECT id, description, requestor_id, created
              FROM requests WHERE requestor_id != ? ORDER BY created DESC`
	args := []any{requestorID}
	if limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, limit, offset)
	}
	return db.queryRequests(ctx, query, args...)
}

func (db *DB) queryRequests(ctx context.Context, query string, args ...any) ([]models.ItemRequest, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	var requests []models.ItemRequest
	for rows.Next() {
		var r models.ItemRequest
		var createdStr string
		if err := rows.Scan(&r.ID, &r.Description, &r.RequestorID, &createdStr); err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		if r.Created, err = parseTime(createdStr); err != nil {
			return nil, fmt.Errorf("failed to parse request created %s: %w", createdStr, err)
		}
		requests = append(requests, r)
	}
	return requests, rows.Err()
}
