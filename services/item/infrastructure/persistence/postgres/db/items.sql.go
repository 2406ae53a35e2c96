package db

import (
	"context"
	"database/sql"
	"time"
)

const insertItem = `-- name: InsertItem :one
INSERT INTO items (category, title, description, price, owner_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at
`

type InsertItemParams struct {
	Category    string
	Title       string
	Description sql.NullString
	Price       string
	OwnerID     int64
}

type InsertItemRow struct {
	ID        int64
	CreatedAt time.Time
}

func (q *Queries) InsertItem(ctx context.Context, arg InsertItemParams) (InsertItemRow, error) {
	row := q.db.QueryRowContext(ctx, insertItem,
		arg.Category,
		arg.Title,
		arg.Description,
		arg.Price,
		arg.OwnerID,
	)
	var i InsertItemRow
	err := row.Scan(&i.ID, &i.CreatedAt)
	return i, err
}

const getItemByID = `-- name: GetItemByID :one
SELECT id, category, title, description, price, owner_id, created_at
FROM items
WHERE id = $1
`

func (q *Queries) GetItemByID(ctx context.Context, id int64) (Item, error) {
	row := q.db.QueryRowContext(ctx, getItemByID, id)
	var i Item
	err := row.Scan(
		&i.ID,
		&i.Category,
		&i.Title,
		&i.Description,
		&i.Price,
		&i.OwnerID,
		&i.CreatedAt,
	)
	return i, err
}

const listItems = `-- name: ListItems :many
SELECT id, category, title, description, price, owner_id, created_at
FROM items
ORDER BY id DESC
`

func (q *Queries) ListItems(ctx context.Context) ([]Item, error) {
	return q.queryItems(ctx, listItems)
}

// $1 is an ILIKE pattern; callers escape %, _ and \ in user input.
const searchItems = `-- name: SearchItems :many
SELECT id, category, title, description, price, owner_id, created_at
FROM items
WHERE title ILIKE $1 OR description ILIKE $1
ORDER BY id DESC
`

func (q *Queries) SearchItems(ctx context.Context, pattern string) ([]Item, error) {
	return q.queryItems(ctx, searchItems, pattern)
}

func (q *Queries) queryItems(ctx context.Context, query string, args ...interface{}) ([]Item, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Item
	for rows.Next() {
		var i Item
		if err := rows.Scan(
			&i.ID,
			&i.Category,
			&i.Title,
			&i.Description,
			&i.Price,
			&i.OwnerID,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
