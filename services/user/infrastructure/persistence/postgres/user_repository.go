package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/usedmarket/pkg/database"
	userdomain "github.com/ghuser/usedmarket/services/user/domain"
	"github.com/ghuser/usedmarket/services/user/domain/models"
	"github.com/ghuser/usedmarket/services/user/infrastructure/persistence/postgres/db"
)

const pgUniqueViolation = "23505"

// UserRepository implements repositories.UserRepository against PostgreSQL.
type UserRepository struct {
	db *database.Database
}

// NewUserRepository returns a UserRepository backed by the given storage gateway.
func NewUserRepository(database *database.Database) *UserRepository {
	return &UserRepository{db: database}
}

// Create inserts a user. Returns ErrDuplicateEmail on the lower(email) unique index.
func (r *UserRepository) Create(ctx context.Context, email, password string) (int64, error) {
	var id int64
	err := r.db.WithConn(ctx, func(conn *sql.Conn) error {
		var err error
		id, err = db.New(conn).InsertUser(ctx, db.InsertUserParams{
			Email:    models.NormalizeEmail(email),
			Password: password,
		})
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return 0, userdomain.ErrDuplicateEmail
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

// FindByEmail looks a user up case-insensitively. Returns ErrUserNotFound if absent.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, func(q *db.Queries) (db.User, error) {
		return q.GetUserByEmail(ctx, models.NormalizeEmail(email))
	})
}

// FindByID returns ErrUserNotFound if no user has the given ID.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findOne(ctx, func(q *db.Queries) (db.User, error) {
		return q.GetUserByID(ctx, id)
	})
}

func (r *UserRepository) findOne(ctx context.Context, query func(*db.Queries) (db.User, error)) (*models.User, error) {
	var row db.User
	err := r.db.WithConn(ctx, func(conn *sql.Conn) error {
		var err error
		row, err = query(db.New(conn))
		return err
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return rowToUser(row), nil
}

func rowToUser(row db.User) *models.User {
	return &models.User{
		ID:        row.ID,
		Email:     row.Email,
		Password:  row.Password,
		CreatedAt: row.CreatedAt,
	}
}
