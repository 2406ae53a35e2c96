package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgForeignKeyViolation = "23503"

	roomItemFKey      = "chat_rooms_item_id_fkey"
	messageRoomFKey   = "chat_messages_room_id_fkey"
	messageSenderFKey = "chat_messages_sender_id_fkey"
)

// isFKViolation reports whether err is a foreign key violation on constraint.
func isFKViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation && pgErr.ConstraintName == constraint
}
