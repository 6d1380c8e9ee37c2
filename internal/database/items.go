package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shareit/internal/models"
)

func (db *DB) CreateItem(ctx context.Context, item *models.Item) error {
	query := `INSERT INTO items (name, description, available, owner_id, request_id)
              VALUES (?, ?, ?, ?, ?)`
	result, err := db.ExecContext(ctx, query,
		item.Name,
		item.Description,
		item.Available,
		item.OwnerID,
		nullableID(item.RequestID),
	)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	item.ID = id
	return nil
}

func (db *DB) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	query := `SELECT id, name, description, available, owner_id, request_id
              FROM items WHERE id = ?`
	return db.scanItemRow(db.QueryRowContext(ctx, query, id))
}

func (db *DB) GetItemsByOwner(ctx context.Context, ownerID int64) ([]models.Item, error) {
	query := `SELECT id, name, description, available, owner_id, request_id
              FROM items WHERE owner_id = ? ORDER BY id`
	return db.queryItems(ctx, query, ownerID)
}

func (db *DB) GetItemsByRequest(ctx context.Context, requestID int64) ([]models.Item, error) {
	query := `SELECT id, name, description, available, owner_id, request_id
              FROM items WHERE request_id = ? ORDER BY id`
	return db.queryItems(ctx, query, requestID)
}

// UpdateItem applies only the fields present in the patch. The owner column
// is rewritten to ownerID on every patch, matching the historical behavior.
func (db *DB) UpdateItem(ctx context.Context, id, ownerID int64, patch models.ItemPatch) (*models.Item, error) {
	item, err := db.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Available != nil {
		item.Available = *patch.Available
	}
	if patch.RequestID != nil {
		item.RequestID = *patch.RequestID
	}
	item.OwnerID = ownerID

	query := `UPDATE items SET name = ?, description = ?, available = ?, owner_id = ?, request_id = ? WHERE id = ?`
	_, err = db.ExecContext(ctx, query,
		item.Name, item.Description, item.Available, item.OwnerID, nullableID(item.RequestID), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	return item, nil
}

// SearchItems matches text case-insensitively against name or description,
// over available items only. A blank query returns nothing.
func (db *DB) SearchItems(ctx context.Context, text string) ([]models.Item, error) {
	if text == "" {
		return nil, nil
	}
	pattern := "%" + text + "%"
	query := `SELECT id, name, description, available, owner_id, request_id
              FROM items
              WHERE (name LIKE ? COLLATE NOCASE OR description LIKE ? COLLATE NOCASE)
                AND available = 1
              ORDER BY id`
	return db.queryItems(ctx, query, pattern, pattern)
}

func (db *DB) queryItems(ctx context.Context, query string, args ...any) ([]models.Item, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var item models.Item
		var requestID sql.NullInt64
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Available, &item.OwnerID, &requestID); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		item.RequestID = requestID.Int64
		items = append(items, item)
	}
	return items, rows.Err()
}

func (db *DB) scanItemRow(row *sql.Row) (*models.Item, error) {
	var item models.Item
	var requestID sql.NullInt64
	err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Available, &item.OwnerID, &requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	item.RequestID = requestID.Int64
	return &item, nil
}

func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
