package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jamie33k/EmergencySystemFinal-draft/internal/emergency/domain"
)

// PostgresRequestStore backs the request store with a pgx pool.
type PostgresRequestStore struct {
	db *pgxpool.Pool
}

func NewPostgresRequestStore(db *pgxpool.Pool) *PostgresRequestStore {
	return &PostgresRequestStore{db: db}
}

// Migrate creates the emergency_requests table if it does not exist.
func (s *PostgresRequestStore) Migrate(ctx context.Context) error {
	const ddl = `
create table if not exists emergency_requests (
    id            text primary key,
    client_id     text not null,
    responder_id  text not null default '',
    type          text not null,
    priority      text not null,
    description   text not null,
    location_lat  double precision not null,
    location_lng  double precision not null,
    city          text not null,
    status        text not null,
    created_at    timestamptz not null,
    updated_at    timestamptz not null
);
create index if not exists emergency_requests_client_idx on emergency_requests (client_id);
create index if not exists emergency_requests_responder_idx on emergency_requests (responder_id);
create index if not exists emergency_requests_status_idx on emergency_requests (status);
`
	if _, err := s.db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("migrate emergency_requests: %w", err)
	}
	return nil
}

const requestColumns = "id, client_id, responder_id, type, priority, description, location_lat, location_lng, city, status, created_at, updated_at"

func scanRequest(row pgx.Row) (*domain.EmergencyRequest, error) {
	var r domain.EmergencyRequest
	err := row.Scan(&r.ID, &r.ClientID, &r.ResponderID, &r.Type, &r.Priority, &r.Description,
		&r.LocationLat, &r.LocationLng, &r.City, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *PostgresRequestStore) Create(ctx context.Context, req *domain.EmergencyRequest) error {
	q := `insert into emergency_requests (` + requestColumns + `)
		values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`
	_, err := s.db.Exec(ctx, q,
		req.ID, req.ClientID, req.ResponderID, req.Type, req.Priority, req.Description,
		req.LocationLat, req.LocationLng, req.City, req.Status, req.CreatedAt, req.UpdatedAt,
	)
	return err
}

func (s *PostgresRequestStore) GetByID(ctx context.Context, id string) (*domain.EmergencyRequest, error) {
	q := `select ` + requestColumns + ` from emergency_requests where id = $1`
	return scanRequest(s.db.QueryRow(ctx, q, id))
}

func (s *PostgresRequestStore) List(ctx context.Context, filter domain.Filter) ([]domain.EmergencyRequest, error) {
	q := `select ` + requestColumns + ` from emergency_requests
		where ($1 = '' or client_id = $1)
		  and ($2 = '' or responder_id = $2)
		  and ($3 = '' or status = $3)
		order by created_at asc`
	rows, err := s.db.Query(ctx, q, filter.ClientID, filter.ResponderID, filter.Status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.EmergencyRequest
	for rows.Next() {
		var r domain.EmergencyRequest
		if err := rows.Scan(&r.ID, &r.ClientID, &r.ResponderID, &r.Type, &r.Priority, &r.Description,
			&r.LocationLat, &r.LocationLng, &r.City, &r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresRequestStore) Update(ctx context.Context, req *domain.EmergencyRequest) error {
	q := `update emergency_requests
		set responder_id = $2, type = $3, priority = $4, description = $5,
		    location_lat = $6, location_lng = $7, city = $8, status = $9, updated_at = $10
		where id = $1`
	tag, err := s.db.Exec(ctx, q,
		req.ID, req.ResponderID, req.Type, req.Priority, req.Description,
		req.LocationLat, req.LocationLng, req.City, req.Status, req.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}

func (s *PostgresRequestStore) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := s.db.Exec(ctx, `delete from emergency_requests where id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
