package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/erazemk/zaloga/internal/model"
)

// ErrNameRequired is returned when an item would be stored without a name.
var ErrNameRequired = errors.New("item name is required")

// now returns the timestamp written to date_added and last_modified.
var now = func() time.Time { return time.Now().UTC() }

const itemColumns = `id, name, description, location, quantity, date_added, last_modified`

// AddItem creates a new item and returns its ID. Empty description and
// location are stored as NULL.
func AddItem(ctx context.Context, db *sql.DB, name, description, location string, quantity int64) (int64, error) {
	if name == "" {
		return 0, ErrNameRequired
	}

	ts := now()
	result, err := db.ExecContext(ctx,
		`INSERT INTO items (name, description, location, quantity, date_added, last_modified)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		name, nullString(description), nullString(location), quantity, ts, ts,
	)
	if err != nil {
		return 0, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting item id: %w", err)
	}
	return id, nil
}

// GetItem returns an item by ID, or nil if there is none.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	item, err := scanItem(db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// UpdateItem applies the non-nil fields of u and refreshes last_modified.
// It reports false without writing when u is empty, and false when no item
// has the given ID.
func UpdateItem(ctx context.Context, db *sql.DB, id int64, u model.ItemUpdate) (bool, error) {
	if u.Empty() {
		return false, nil
	}
	if u.Name != nil && *u.Name == "" {
		return false, ErrNameRequired
	}

	var sets []string
	var args []any
	if u.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *u.Name)
	}
	if u.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, nullString(*u.Description))
	}
	if u.Location != nil {
		sets = append(sets, "location = ?")
		args = append(args, nullString(*u.Location))
	}
	if u.Quantity != nil {
		sets = append(sets, "quantity = ?")
		args = append(args, *u.Quantity)
	}
	sets = append(sets, "last_modified = ?")
	args = append(args, now(), id)

	result, err := db.ExecContext(ctx,
		`UPDATE items SET `+strings.Join(sets, ", ")+` WHERE id = ?`,
		args...,
	)
	if err != nil {
		return false, fmt.Errorf("updating item: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("updating item: %w", err)
	}
	return n > 0, nil
}

// DeleteItem permanently removes an item. It reports whether a row was removed.
func DeleteItem(ctx context.Context, db *sql.DB, id int64) (bool, error) {
	result, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting item: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting item: %w", err)
	}
	return n > 0, nil
}

// SearchItems returns items whose name or description contains term,
// ignoring case, in insertion order. The term is matched literally.
func SearchItems(ctx context.Context, db *sql.DB, term string) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items
		 WHERE instr(casefold(name), casefold(?)) > 0
		    OR instr(casefold(description), casefold(?)) > 0
		 ORDER BY id`,
		term, term,
	)
	if err != nil {
		return nil, fmt.Errorf("searching items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// ListItems returns all items in insertion order.
func ListItems(ctx context.Context, db *sql.DB) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// CountItems returns the number of stored items.
func CountItems(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (*model.Item, error) {
	item := &model.Item{}
	var description, location sql.NullString
	err := row.Scan(&item.ID, &item.Name, &description, &location, &item.Quantity, &item.DateAdded, &item.LastModified)
	if err != nil {
		return nil, err
	}
	item.Description = description.String
	item.Location = location.String
	return item, nil
}

func scanItems(rows *sql.Rows) ([]model.Item, error) {
	items := []model.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
