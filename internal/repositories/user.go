package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/user-accounts/internal/logger"
	"github.com/sbilibin2017/user-accounts/internal/models"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// ErrUniqueViolation is returned when an insert or update collides with the
// unique constraints on name or email. Uniqueness is enforced here, at the
// store level, not pre-checked by callers.
var ErrUniqueViolation = errors.New("name or email already exists")

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByID returns the user with the given id, or nil when no row matches.
func (r *UserReadRepository) GetByID(ctx context.Context, id int64) (*models.UserDB, error) {
	const query = `
		SELECT id, name, email, password, status
		FROM users
		WHERE id = $1
	`
	return r.get(ctx, query, id)
}

// GetByEmail returns the user with the given email, or nil when no row matches.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	const query = `
		SELECT id, name, email, password, status
		FROM users
		WHERE email = $1
	`
	return r.get(ctx, query, email)
}

func (r *UserReadRepository) get(ctx context.Context, query string, arg any) (*models.UserDB, error) {
	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, arg)

	logger.Log.Infow("user read",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{arg},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListActive returns all users with status=true in id order.
// The ordering follows insertion order and is not part of the contract.
func (r *UserReadRepository) ListActive(ctx context.Context) ([]models.UserDB, error) {
	const query = `
		SELECT id, name, email, password, status
		FROM users
		WHERE status = TRUE
		ORDER BY id
	`

	var users []models.UserDB
	err := r.db.SelectContext(ctx, &users, query)

	logger.Log.Infow("user list",
		"query", strings.Join(strings.Fields(query), " "),
		"count", len(users),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return users, nil
}

type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Save upserts a user and returns the stored row. Unique-constraint
// collisions on name or email come back as ErrUniqueViolation. An update
// against a missing id returns nil without error.
func (r *UserWriteRepository) Save(ctx context.Context, upd models.UserUpdate) (*models.UserDB, error) {
	if upd.ID == 0 {
		return r.insert(ctx, upd)
	}
	return r.update(ctx, upd)
}

func (r *UserWriteRepository) insert(ctx context.Context, upd models.UserUpdate) (*models.UserDB, error) {
	const query = `
		INSERT INTO users (name, email, password, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, password, status
	`
	args := []any{upd.Name, upd.Email, upd.PasswordHash, upd.Status}

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, args...)

	logger.Log.Infow("user insert",
		"query", strings.Join(strings.Fields(query), " "),
		"name", upd.Name,
		"email", upd.Email,
		"error", err,
	)

	if err != nil {
		return nil, translateUniqueViolation(err)
	}
	return &user, nil
}

func (r *UserWriteRepository) update(ctx context.Context, upd models.UserUpdate) (*models.UserDB, error) {
	const query = `
		UPDATE users
		SET name     = COALESCE($2, name),
		    email    = COALESCE($3, email),
		    password = COALESCE($4, password),
		    status   = COALESCE($5, status)
		WHERE id = $1
		RETURNING id, name, email, password, status
	`
	args := []any{upd.ID, upd.Name, upd.Email, upd.PasswordHash, upd.Status}

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, args...)

	logger.Log.Infow("user update",
		"query", strings.Join(strings.Fields(query), " "),
		"id", upd.ID,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translateUniqueViolation(err)
	}
	return &user, nil
}

func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrUniqueViolation
	}
	return err
}
