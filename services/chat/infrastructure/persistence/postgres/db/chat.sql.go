package db

import (
	"context"
	"time"
)

const getRoomByItemID = `-- name: GetRoomByItemID :one
SELECT id, item_id, created_at
FROM chat_rooms
WHERE item_id = $1
`

func (q *Queries) GetRoomByItemID(ctx context.Context, itemID int64) (ChatRoom, error) {
	row := q.db.QueryRowContext(ctx, getRoomByItemID, itemID)
	var i ChatRoom
	err := row.Scan(&i.ID, &i.ItemID, &i.CreatedAt)
	return i, err
}

// DO UPDATE (not DO NOTHING) so RETURNING yields the row even when a
// concurrent transaction inserted it first.
const upsertRoom = `-- name: UpsertRoom :one
INSERT INTO chat_rooms (item_id)
VALUES ($1)
ON CONFLICT (item_id) DO UPDATE SET item_id = EXCLUDED.item_id
RETURNING id, item_id, created_at
`

func (q *Queries) UpsertRoom(ctx context.Context, itemID int64) (ChatRoom, error) {
	row := q.db.QueryRowContext(ctx, upsertRoom, itemID)
	var i ChatRoom
	err := row.Scan(&i.ID, &i.ItemID, &i.CreatedAt)
	return i, err
}

const lockRoom = `-- name: LockRoom :one
SELECT id
FROM chat_rooms
WHERE id = $1
FOR UPDATE
`

func (q *Queries) LockRoom(ctx context.Context, id int64) (int64, error) {
	row := q.db.QueryRowContext(ctx, lockRoom, id)
	var roomID int64
	err := row.Scan(&roomID)
	return roomID, err
}

// created_at never goes backwards within a room, even if the clock does or two
// sends land in the same microsecond. Callers hold the room lock.
const insertMessage = `-- name: InsertMessage :one
INSERT INTO chat_messages (room_id, sender_id, message, created_at)
SELECT $1::bigint, $2::bigint, $3::text,
       GREATEST(clock_timestamp(), COALESCE(MAX(created_at), '-infinity'::timestamptz))
FROM chat_messages
WHERE room_id = $1::bigint
RETURNING id, created_at
`

type InsertMessageParams struct {
	RoomID   int64
	SenderID int64
	Message  string
}

type InsertMessageRow struct {
	ID        int64
	CreatedAt time.Time
}

func (q *Queries) InsertMessage(ctx context.Context, arg InsertMessageParams) (InsertMessageRow, error) {
	row := q.db.QueryRowContext(ctx, insertMessage, arg.RoomID, arg.SenderID, arg.Message)
	var i InsertMessageRow
	err := row.Scan(&i.ID, &i.CreatedAt)
	return i, err
}

const listMessages = `-- name: ListMessages :many
SELECT id, room_id, sender_id, message, created_at
FROM chat_messages
WHERE room_id = $1
ORDER BY created_at, id
`

func (q *Queries) ListMessages(ctx context.Context, roomID int64) ([]ChatMessage, error) {
	rows, err := q.db.QueryContext(ctx, listMessages, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ChatMessage
	for rows.Next() {
		var i ChatMessage
		if err := rows.Scan(
			&i.ID,
			&i.RoomID,
			&i.SenderID,
			&i.Message,
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
