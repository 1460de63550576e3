// Package repo contains all database access logic for the Tripmate API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tripmate/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// UserRepo defines the persistence operations for the identity store.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type UserRepo interface {
	// Create inserts a new user. Email and phone are unique across all users;
	// a collision returns domain.ErrConflict.
	Create(ctx context.Context, user domain.User) (domain.User, error)

	// GetByID retrieves a single user by primary key.
	// Returns domain.ErrNotFound if no user with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)

	// GetByEmail retrieves a user by exact (lower-cased) email.
	// Returns domain.ErrNotFound if no user has that email.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// GetByPhone retrieves a user by exact phone.
	// Returns domain.ErrNotFound if no user has that phone.
	GetByPhone(ctx context.Context, phone string) (domain.User, error)

	// GetByIDs returns the users whose IDs appear in ids, keyed by ID.
	// Missing IDs are simply absent from the map, never an error.
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.User, error)

	// Search returns up to limit users whose name or email contains q,
	// case-insensitively, ordered by name.
	Search(ctx context.Context, q string, limit int) ([]domain.User, error)

	// List returns all users ordered by creation time.
	List(ctx context.Context) ([]domain.User, error)

	// UpdatePassword replaces the stored password hash for a user.
	// Returns domain.ErrNotFound if no user with that ID exists.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// pgUserRepo is the Postgres implementation of UserRepo.
type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

const userColumns = `id, name, email, phone, password_hash, role, created_at, updated_at`

func (r *pgUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	const q = `
		INSERT INTO users (name, email, phone, password_hash, role)
		VALUES (@name, @email, @phone, @password_hash, @role)
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"name":          user.Name,
		"email":         nullIfEmpty(user.Email),
		"phone":         nullIfEmpty(user.Phone),
		"password_hash": user.PasswordHash,
		"role":          string(user.Role),
	}

	result, err := scanUser(r.db.QueryRow(ctx, q, args))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", domain.ErrConflict)
		}
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = @id`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = @email`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByEmail: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByPhone(ctx context.Context, phone string) (domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE phone = @phone`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"phone": phone}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByPhone: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.User, error) {
	users := make(map[uuid.UUID]domain.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	const q = `SELECT ` + userColumns + ` FROM users WHERE id = ANY(@ids)`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": ids})
	if err != nil {
		return nil, fmt.Errorf("repo.UserRepo.GetByIDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.UserRepo.GetByIDs: scan: %w", err)
		}
		users[u.ID] = u
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.UserRepo.GetByIDs: rows: %w", err)
	}

	return users, nil
}

func (r *pgUserRepo) Search(ctx context.Context, q string, limit int) ([]domain.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE name ILIKE @pattern OR email ILIKE @pattern
		ORDER BY name
		LIMIT @limit`

	rows, err := r.db.Query(ctx, query, pgx.NamedArgs{
		"pattern": "%" + q + "%",
		"limit":   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("repo.UserRepo.Search: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows, "repo.UserRepo.Search")
}

func (r *pgUserRepo) List(ctx context.Context) ([]domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users ORDER BY created_at`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.UserRepo.List: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows, "repo.UserRepo.List")
}

func (r *pgUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	const q = `
		UPDATE users
		SET password_hash = @password_hash, updated_at = now()
		WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "password_hash": passwordHash})
	if err != nil {
		return fmt.Errorf("repo.UserRepo.UpdatePassword: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.UserRepo.UpdatePassword: %w", domain.ErrNotFound)
	}
	return nil
}

func collectUsers(rows pgx.Rows, op string) ([]domain.User, error) {
	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return users, nil
}

// scanUser maps a single database row into a domain.User.
// It handles the UUID and nullable email/phone conversions.
func scanUser(s scanner) (domain.User, error) {
	var (
		u     domain.User
		id    pgtype.UUID
		email pgtype.Text
		phone pgtype.Text
		role  string
	)

	err := s.Scan(&id, &u.Name, &email, &phone, &u.PasswordHash, &role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}

	u.ID = uuid.UUID(id.Bytes)
	u.Email = email.String
	u.Phone = phone.String
	u.Role = domain.UserRole(role)

	return u, nil
}

// nullIfEmpty converts "" to a SQL NULL so the partial unique indexes on
// email and phone ignore absent values.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
