package repository

import (
	"context"
	"fmt"

	"shopfront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const clientColumns = `id, user_id, full_name, contact, address, is_active, created_at, updated_at`

// clientRepository implements the ClientRepository interface using PostgreSQL.
type clientRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewClientRepository creates a new PostgreSQL-backed client repository.
func NewClientRepository(pool *pgxpool.Pool, logger zerolog.Logger) ClientRepository {
	return &clientRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "client").Logger(),
	}
}

// Create inserts a new client and fills in its generated id.
func (r *clientRepository) Create(ctx context.Context, client *model.Client) error {
	query := `
		INSERT INTO clients (user_id, full_name, contact, address, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		client.UserID, client.FullName, client.Contact, client.Address, client.IsActive,
	).Scan(&client.ID, &client.CreatedAt, &client.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", client.UserID).Msg("failed to create client")
		return fmt.Errorf("failed to create client: %w", err)
	}

	r.logger.Debug().Int64("client_id", client.ID).Msg("client created successfully")

	return nil
}

func scanClient(row pgx.Row) (*model.Client, error) {
	var c model.Client
	err := row.Scan(
		&c.ID, &c.UserID, &c.FullName, &c.Contact, &c.Address,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByID retrieves a client by id, or nil if absent.
func (r *clientRepository) GetByID(ctx context.Context, id int64) (*model.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	c, err := scanClient(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("client_id", id).Msg("client not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("client_id", id).Msg("failed to query client")
		return nil, fmt.Errorf("failed to query client: %w", err)
	}

	return c, nil
}

// GetByIDTx retrieves a client by id within the provided transaction.
func (r *clientRepository) GetByIDTx(ctx context.Context, tx pgx.Tx, id int64) (*model.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	c, err := scanClient(tx.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("client_id", id).Msg("client not found in transaction")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("client_id", id).Msg("failed to query client in transaction")
		return nil, fmt.Errorf("failed to query client: %w", err)
	}

	return c, nil
}

// GetByUserID retrieves the client owned by the given user, or nil.
func (r *clientRepository) GetByUserID(ctx context.Context, userID int64) (*model.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE user_id = $1`

	c, err := scanClient(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to query client by user")
		return nil, fmt.Errorf("failed to query client by user: %w", err)
	}

	return c, nil
}

// GetAll retrieves all clients.
func (r *clientRepository) GetAll(ctx context.Context) ([]model.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query clients")
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	var clients []model.Client
	for rows.Next() {
		var c model.Client
		err := rows.Scan(
			&c.ID, &c.UserID, &c.FullName, &c.Contact, &c.Address,
			&c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan client row")
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating client rows")
		return nil, fmt.Errorf("error iterating clients: %w", err)
	}

	return clients, nil
}

// Update persists mutable client fields.
func (r *clientRepository) Update(ctx context.Context, client *model.Client) error {
	query := `
		UPDATE clients
		SET full_name = $2, contact = $3, address = $4, is_active = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		client.ID, client.FullName, client.Contact, client.Address, client.IsActive,
	).Scan(&client.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Int64("client_id", client.ID).Msg("failed to update client")
		return fmt.Errorf("failed to update client: %w", err)
	}

	return nil
}

// Delete removes a client and returns the number of affected rows.
func (r *clientRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("client_id", id).Msg("failed to delete client")
		return 0, fmt.Errorf("failed to delete client: %w", err)
	}

	return tag.RowsAffected(), nil
}
