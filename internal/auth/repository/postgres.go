package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jamie33k/EmergencySystemFinal-draft/internal/auth/domain"
)

// PostgresUserStore backs the user store with a pgx pool.
type PostgresUserStore struct {
	db *pgxpool.Pool
}

func NewPostgresUserStore(db *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

// Migrate creates the users table if it does not exist.
func (s *PostgresUserStore) Migrate(ctx context.Context) error {
	const ddl = `
create table if not exists users (
    id          text primary key,
    username    text not null,
    email       text not null,
    password    text not null,
    role        text not null,
    phone       text not null default '',
    created_at  timestamptz not null,
    updated_at  timestamptz not null
);
create unique index if not exists users_username_ci on users (lower(username));
create unique index if not exists users_email_ci on users (lower(email));
`
	if _, err := s.db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("migrate users: %w", err)
	}
	return nil
}

const userColumns = "id, username, email, password, role, phone, created_at, updated_at"

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.Phone, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PostgresUserStore) GetByCredentialName(ctx context.Context, usernameOrEmail string) (*domain.User, error) {
	q := `select ` + userColumns + ` from users
		where lower(username) = lower($1) or lower(email) = lower($1)
		order by created_at asc limit 1`
	return scanUser(s.db.QueryRow(ctx, q, usernameOrEmail))
}

func (s *PostgresUserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	q := `select ` + userColumns + ` from users where id = $1`
	return scanUser(s.db.QueryRow(ctx, q, id))
}

func (s *PostgresUserStore) List(ctx context.Context) ([]domain.User, error) {
	q := `select ` + userColumns + ` from users order by created_at asc`
	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.Phone, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	q := `insert into users (` + userColumns + `) values ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := s.db.Exec(ctx, q,
		user.ID, user.Username, user.Email, user.PasswordHash,
		user.Role, user.Phone, user.CreatedAt, user.UpdatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrDuplicateUser
	}
	return err
}

func (s *PostgresUserStore) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := s.db.Exec(ctx, `delete from users where id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
