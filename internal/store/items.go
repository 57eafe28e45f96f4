package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/erazemk/stockroom/internal/model"
)

const itemColumns = `id, name, quantity, unit, activity, curriculum, location, min_quantity, notes, notes_updated_at`

// CreateItem creates a new inventory item. Name is required; every other
// field falls back to its default.
func CreateItem(ctx context.Context, db *sql.DB, in model.NewItem) (*model.Item, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	quantity := 0
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	minQuantity := model.DefaultMinQuantity
	if in.MinQuantity != nil {
		minQuantity = *in.MinQuantity
	}
	unit := model.DefaultUnit
	if in.Unit != nil {
		unit = *in.Unit
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO inventory_item (name, quantity, unit, activity, curriculum, location, min_quantity, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Name, quantity, unit, in.Activity, in.Curriculum, in.Location, minQuantity, in.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID, or nil if it does not exist.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	return getItem(ctx, db, id)
}

func getItem(ctx context.Context, q querier, id int64) (*model.Item, error) {
	item := &model.Item{}
	err := q.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM inventory_item WHERE id = ?`, id,
	).Scan(&item.ID, &item.Name, &item.Quantity, &item.Unit, &item.Activity, &item.Curriculum,
		&item.Location, &item.MinQuantity, &item.Notes, &item.NotesUpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns every item in primary key order.
func ListItems(ctx context.Context, db *sql.DB) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM inventory_item ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Quantity, &item.Unit, &item.Activity, &item.Curriculum,
			&item.Location, &item.MinQuantity, &item.Notes, &item.NotesUpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateItem applies a partial update. Fields absent from the patch keep
// their stored values. Writing notes stamps notes_updated_at.
func UpdateItem(ctx context.Context, db *sql.DB, id int64, patch model.ItemPatch) (*model.Item, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	item, err := getItem(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}

	if patch.Apply(item) {
		now := time.Now().UTC()
		item.NotesUpdatedAt = &now
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE inventory_item
		 SET name = ?, quantity = ?, unit = ?, activity = ?, curriculum = ?, location = ?,
		     min_quantity = ?, notes = ?, notes_updated_at = ?
		 WHERE id = ?`,
		item.Name, item.Quantity, item.Unit, item.Activity, item.Curriculum, item.Location,
		item.MinQuantity, item.Notes, item.NotesUpdatedAt, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing item update: %w", err)
	}

	return GetItem(ctx, db, id)
}

// DeleteItem permanently removes an item.
func DeleteItem(ctx context.Context, db *sql.DB, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %w", ErrDeleteFailed, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM inventory_item WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeleteFailed, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeleteFailed, err)
	}
	if n == 0 {
		return fmt.Errorf("item %d: %w", id, ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing: %w", ErrDeleteFailed, err)
	}
	return nil
}
