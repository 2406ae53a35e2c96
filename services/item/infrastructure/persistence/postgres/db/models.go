package db

import (
	"database/sql"
	"time"
)

type Item struct {
	ID          int64
	Category    string
	Title       string
	Description sql.NullString
	Price       string
	OwnerID     int64
	CreatedAt   time.Time
}
