package repository

import (
	"context"
	"time"

	"shopfront/internal/model"

	"github.com/jackc/pgx/v5"
)

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// Create inserts a new user and fills in its generated id.
	Create(ctx context.Context, user *model.User) error

	// GetByID retrieves a user by id, or nil if absent.
	GetByID(ctx context.Context, id int64) (*model.User, error)

	// GetByEmail retrieves a user by email, or nil if absent.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetAll retrieves all users.
	GetAll(ctx context.Context) ([]model.User, error)

	// Update persists mutable user fields.
	Update(ctx context.Context, user *model.User) error

	// Delete removes a user and returns the number of affected rows.
	Delete(ctx context.Context, id int64) (int64, error)
}

// ClientRepository defines the interface for client data access operations.
type ClientRepository interface {
	// Create inserts a new client and fills in its generated id.
	Create(ctx context.Context, client *model.Client) error

	// GetByID retrieves a client by id, or nil if absent.
	GetByID(ctx context.Context, id int64) (*model.Client, error)

	// GetByIDTx retrieves a client by id within the provided transaction.
	GetByIDTx(ctx context.Context, tx pgx.Tx, id int64) (*model.Client, error)

	// GetByUserID retrieves the client owned by the given user, or nil.
	GetByUserID(ctx context.Context, userID int64) (*model.Client, error)

	// GetAll retrieves all clients.
	GetAll(ctx context.Context) ([]model.Client, error)

	// Update persists mutable client fields.
	Update(ctx context.Context, client *model.Client) error

	// Delete removes a client and returns the number of affected rows.
	Delete(ctx context.Context, id int64) (int64, error)
}

// CategoryRepository defines the interface for category data access operations.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	GetAll(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id int64) (int64, error)
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// Create inserts a new product and fills in its generated id.
	Create(ctx context.Context, product *model.Product) error

	// GetByID retrieves a single product by its id, or nil if absent.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// GetAll retrieves all products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// Update persists mutable product fields.
	Update(ctx context.Context, product *model.Product) error

	// Delete removes a product and returns the number of affected rows.
	Delete(ctx context.Context, id int64) (int64, error)

	// LockByIDs retrieves the products with the given ids within the
	// provided transaction, taking row locks held until the transaction
	// ends. Missing ids are simply absent from the result.
	LockByIDs(ctx context.Context, tx pgx.Tx, ids []int64) ([]model.Product, error)

	// DecrementStock atomically subtracts quantity from a product's stock
	// within the provided transaction. It returns false when the product's
	// stock is lower than the requested quantity, in which case no row is
	// changed.
	DecrementStock(ctx context.Context, tx pgx.Tx, id int64, quantity int) (bool, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction and
	// fills in its generated id and order date.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its id with its client and items
	// (including each item's product) attached, or nil if absent.
	GetByID(ctx context.Context, id int64) (*model.Order, error)

	// GetAll retrieves all orders with clients and items attached.
	GetAll(ctx context.Context) ([]model.Order, error)

	// UpdateStatus sets an order's status and returns the number of
	// affected rows.
	UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (int64, error)

	// Delete removes an order (items cascade) and returns the number of
	// affected rows.
	Delete(ctx context.Context, id int64) (int64, error)

	// GetPaidBetween retrieves PAID orders whose order date falls within
	// [start, end], with items attached.
	GetPaidBetween(ctx context.Context, start, end time.Time) ([]model.Order, error)
}

// SalesReportRepository defines the interface for sales report records.
type SalesReportRepository interface {
	Create(ctx context.Context, report *model.SalesReport) error
	GetByID(ctx context.Context, id int64) (*model.SalesReport, error)
	GetAll(ctx context.Context) ([]model.SalesReport, error)
}
