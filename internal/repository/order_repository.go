package repository

import (
	"context"
	"fmt"
	"time"

	"shopfront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateOrder inserts a new order within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (client_id, status, total)
		VALUES ($1, $2, $3)
		RETURNING id, order_date
	`

	err := tx.QueryRow(ctx, query, order.ClientID, order.Status, order.Total).
		Scan(&order.ID, &order.OrderDate)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("client_id", order.ClientID).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Int64("order_id", order.ID).
		Msg("order created successfully")

	return nil
}

// CreateOrderItems inserts multiple order items within the provided transaction.
func (r *orderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5)
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Int64("order_id", items[i].OrderID).
				Int64("product_id", items[i].ProductID).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("order items created successfully")

	return nil
}

// GetByID retrieves an order by its id with its client and items attached.
func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `
		SELECT o.id, o.client_id, o.status, o.order_date, o.total,
			c.id, c.user_id, c.full_name, c.contact, c.address, c.is_active, c.created_at, c.updated_at
		FROM orders o
		JOIN clients c ON c.id = o.client_id
		WHERE o.id = $1
	`

	var order model.Order
	var client model.Client
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID, &order.ClientID, &order.Status, &order.OrderDate, &order.Total,
		&client.ID, &client.UserID, &client.FullName, &client.Contact, &client.Address,
		&client.IsActive, &client.CreatedAt, &client.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("order_id", id).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}
	order.Client = &client

	itemsByOrder, err := r.loadItems(ctx, []int64{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = itemsByOrder[order.ID]

	return &order, nil
}

// GetAll retrieves all orders with clients and items attached.
func (r *orderRepository) GetAll(ctx context.Context) ([]model.Order, error) {
	query := `
		SELECT o.id, o.client_id, o.status, o.order_date, o.total,
			c.id, c.user_id, c.full_name, c.contact, c.address, c.is_active, c.created_at, c.updated_at
		FROM orders o
		JOIN clients c ON c.id = o.client_id
		ORDER BY o.id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	var orderIDs []int64
	for rows.Next() {
		var order model.Order
		var client model.Client
		err := rows.Scan(
			&order.ID, &order.ClientID, &order.Status, &order.OrderDate, &order.Total,
			&client.ID, &client.UserID, &client.FullName, &client.Contact, &client.Address,
			&client.IsActive, &client.CreatedAt, &client.UpdatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		order.Client = &client
		orders = append(orders, order)
		orderIDs = append(orderIDs, order.ID)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if err := r.attachItems(ctx, orders, orderIDs); err != nil {
		return nil, err
	}

	return orders, nil
}

// UpdateStatus sets an order's status and returns the number of affected rows.
func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("order_id", id).
			Str("status", string(status)).
			Msg("failed to update order status")
		return 0, fmt.Errorf("failed to update order status: %w", err)
	}

	return tag.RowsAffected(), nil
}

// Delete removes an order (items cascade) and returns the number of affected rows.
func (r *orderRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to delete order")
		return 0, fmt.Errorf("failed to delete order: %w", err)
	}

	return tag.RowsAffected(), nil
}

// GetPaidBetween retrieves PAID orders whose order date falls within
// [start, end], with items attached.
func (r *orderRepository) GetPaidBetween(ctx context.Context, start, end time.Time) ([]model.Order, error) {
	query := `
		SELECT id, client_id, status, order_date, total
		FROM orders
		WHERE status = $1 AND order_date BETWEEN $2 AND $3
		ORDER BY order_date
	`

	rows, err := r.pool.Query(ctx, query, model.StatusPaid, start, end)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query paid orders")
		return nil, fmt.Errorf("failed to query paid orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	var orderIDs []int64
	for rows.Next() {
		var order model.Order
		err := rows.Scan(&order.ID, &order.ClientID, &order.Status, &order.OrderDate, &order.Total)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
		orderIDs = append(orderIDs, order.ID)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if err := r.attachItems(ctx, orders, orderIDs); err != nil {
		return nil, err
	}

	return orders, nil
}

// attachItems loads the items for the given order ids and attaches them in place.
func (r *orderRepository) attachItems(ctx context.Context, orders []model.Order, orderIDs []int64) error {
	if len(orders) == 0 {
		return nil
	}

	itemsByOrder, err := r.loadItems(ctx, orderIDs)
	if err != nil {
		return err
	}

	for i := range orders {
		orders[i].Items = itemsByOrder[orders[i].ID]
	}

	return nil
}

// loadItems retrieves order items (with their products) for a batch of
// orders in a single query, keyed by order id.
func (r *orderRepository) loadItems(ctx context.Context, orderIDs []int64) (map[int64][]model.OrderItem, error) {
	query := `
		SELECT i.id, i.order_id, i.product_id, i.quantity, i.unit_price, i.subtotal,
			p.id, p.name, p.description, p.price, p.quantity, p.images,
			p.category_id, p.added_by, p.created_at, p.updated_at
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.order_id = ANY($1)
		ORDER BY i.id
	`

	rows, err := r.pool.Query(ctx, query, orderIDs)
	if err != nil {
		r.logger.Error().Err(err).Int("order_count", len(orderIDs)).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	itemsByOrder := make(map[int64][]model.OrderItem, len(orderIDs))
	for rows.Next() {
		var item model.OrderItem
		var product model.Product
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.Subtotal,
			&product.ID, &product.Name, &product.Description, &product.Price, &product.Quantity,
			&product.Images, &product.CategoryID, &product.AddedByID, &product.CreatedAt, &product.UpdatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		item.Product = &product
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return itemsByOrder, nil
}
