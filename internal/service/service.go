package service

import (
	"context"
	"io"

	"shopfront/internal/model"
)

// UserService defines operations for account management.
type UserService interface {
	// SignUp registers a new user with a hashed password.
	SignUp(ctx context.Context, req *model.SignUpRequest) (*model.User, error)

	// SignIn verifies credentials and issues an access token.
	SignIn(ctx context.Context, req *model.SignInRequest) (*model.SignInResponse, error)

	// GetByID retrieves a user by id.
	GetByID(ctx context.Context, id int64) (*model.User, error)

	// GetAll retrieves all users.
	GetAll(ctx context.Context) ([]model.User, error)

	// Update applies a partial update to a user.
	Update(ctx context.Context, id int64, req *model.UpdateUserRequest) (*model.User, error)

	// Delete removes a user.
	Delete(ctx context.Context, id int64) error
}

// ClientService defines operations for client profile management.
type ClientService interface {
	Create(ctx context.Context, req *model.ClientRequest) (*model.Client, error)
	GetByID(ctx context.Context, id int64) (*model.Client, error)
	GetByUserID(ctx context.Context, userID int64) (*model.Client, error)
	GetAll(ctx context.Context) ([]model.Client, error)
	Update(ctx context.Context, id int64, req *model.ClientRequest) (*model.Client, error)
	Delete(ctx context.Context, id int64) error
}

// CategoryService defines operations for category management.
type CategoryService interface {
	Create(ctx context.Context, req *model.CategoryRequest, actor *model.User) (*model.Category, error)
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	GetAll(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, id int64, req *model.CategoryRequest) (*model.Category, error)
	Delete(ctx context.Context, id int64) error
}

// ProductService defines operations for product management.
type ProductService interface {
	// Create adds a product; its category must exist.
	Create(ctx context.Context, req *model.ProductRequest, actor *model.User) (*model.Product, error)

	// GetByID retrieves a single product by id.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// GetAll retrieves all products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// Update applies a partial update to a product.
	Update(ctx context.Context, id int64, req *model.UpdateProductRequest, actor *model.User) (*model.Product, error)

	// Delete removes a product.
	Delete(ctx context.Context, id int64) error
}

// OrderService defines operations for order management.
type OrderService interface {
	// CreateOrder atomically validates the client and products, decrements
	// stock and persists the order with its items.
	CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.Order, error)

	// ProcessPayment records a simulated payment outcome on the order.
	ProcessPayment(ctx context.Context, orderID int64, success bool) (*model.Order, error)

	// GetByID retrieves an order with its client and items.
	GetByID(ctx context.Context, id int64) (*model.Order, error)

	// GetAll retrieves all orders with clients and items.
	GetAll(ctx context.Context) ([]model.Order, error)

	// UpdateStatus sets an order's status.
	UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error)

	// Delete removes an order and its items.
	Delete(ctx context.Context, id int64) error
}

// SalesReportService defines operations for sales report generation.
type SalesReportService interface {
	// Create aggregates paid orders in the period into a CSV file and
	// records the report.
	Create(ctx context.Context, req *model.SalesReportRequest) (*model.SalesReport, error)

	// GetByID retrieves a report record.
	GetByID(ctx context.Context, id int64) (*model.SalesReport, error)

	// GetAll retrieves all report records, newest first.
	GetAll(ctx context.Context) ([]model.SalesReport, error)

	// Download opens the CSV file behind a report for streaming.
	Download(ctx context.Context, id int64) (io.ReadCloser, *model.SalesReport, error)
}
