package service

import (
	"context"
	"fmt"

	"shopfront/internal/model"
	"shopfront/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	logger      zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		clientRepo:  clientRepo,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// CreateOrder validates the order request against the current client and
// product state, decrements stock and persists the order with its items as
// one transaction. On any failure nothing is persisted: no stock change, no
// order and no items.
func (s *orderService) CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.Order, error) {
	// Validate request
	if err := s.validateOrderRequest(req); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.StatusReceived
	}
	if !status.Valid() {
		return nil, model.NewValidationError(fmt.Sprintf("unknown order status: %s", status))
	}

	// Start transaction
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	// Validate the client inside the transaction
	var client *model.Client
	client, err = s.clientRepo.GetByIDTx(ctx, tx, req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	if client == nil {
		s.logger.Warn().Int64("client_id", req.ClientID).Msg("order for unknown client")
		err = model.NewNotFound("Client", req.ClientID)
		return nil, err
	}

	// Batch-load referenced products with row locks held until commit, so
	// concurrent orders against the same products serialise here.
	productIDs := make([]int64, len(req.Items))
	for i, item := range req.Items {
		productIDs[i] = item.ProductID
	}

	var products []model.Product
	products, err = s.productRepo.LockByIDs(ctx, tx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	productByID := make(map[int64]*model.Product, len(products))
	for i := range products {
		productByID[products[i].ID] = &products[i]
	}

	// Resolve every item before touching any stock.
	for _, item := range req.Items {
		product, ok := productByID[item.ProductID]
		if !ok {
			s.logger.Warn().Int64("product_id", item.ProductID).Msg("order references unknown product")
			err = model.NewNotFound("Product", item.ProductID)
			return nil, err
		}

		if product.Quantity < item.Quantity {
			s.logger.Warn().
				Int64("product_id", product.ID).
				Int("available", product.Quantity).
				Int("requested", item.Quantity).
				Msg("insufficient stock")
			err = model.NewStockInsufficient(product.Name)
			return nil, err
		}
	}

	// Decrement stock per item. The conditional update keeps the stock
	// invariant even if the earlier check raced.
	for _, item := range req.Items {
		var ok bool
		ok, err = s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to create order: %w", err)
		}
		if !ok {
			err = model.NewStockInsufficient(productByID[item.ProductID].Name)
			return nil, err
		}
	}

	// Build items with snapshotted unit prices; the order total is always
	// the exact sum of the item subtotals.
	items := make([]model.OrderItem, len(req.Items))
	total := decimal.Zero
	for i, item := range req.Items {
		subtotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		items[i] = model.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  subtotal,
		}
		total = total.Add(subtotal)
	}

	order := &model.Order{
		ClientID: req.ClientID,
		Status:   status,
		Total:    total,
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Int64("client_id", req.ClientID).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for i := range items {
		items[i].OrderID = order.ID
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
		s.logger.Error().
			Err(err).
			Int64("order_id", order.ID).
			Int("item_count", len(items)).
			Msg("failed to create order items")
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	// Commit transaction
	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("order_id", order.ID).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Int64("order_id", order.ID).
		Int64("client_id", req.ClientID).
		Int("item_count", len(items)).
		Str("total", total.String()).
		Msg("order created successfully")

	// Reload with client and item products attached for the caller.
	return s.GetByID(ctx, order.ID)
}

// ProcessPayment records a simulated payment outcome on the order. This is a
// single-row status change with no stock side effects.
func (s *orderService) ProcessPayment(ctx context.Context, orderID int64, success bool) (*model.Order, error) {
	order, err := s.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	status := model.StatusPaid
	if !success {
		status = model.StatusPaymentFailed
	}

	if _, err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, fmt.Errorf("failed to process payment: %w", err)
	}
	order.Status = status

	s.logger.Info().
		Int64("order_id", orderID).
		Bool("success", success).
		Str("status", string(status)).
		Msg("payment processed")

	return order, nil
}

// GetByID retrieves an order with its client and items.
func (s *orderService) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("order_id", id).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.NewNotFound("Order", id)
	}
	return order, nil
}

// GetAll retrieves all orders with clients and items.
func (s *orderService) GetAll(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus sets an order's status. Transitions are deliberately
// unconstrained, matching the rest of the fulfilment flow which asserts
// PREPARING/SHIPPED/DELIVERED by direct update.
func (s *orderService) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, model.NewValidationError(fmt.Sprintf("unknown order status: %s", status))
	}

	affected, err := s.orderRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if affected == 0 {
		return nil, model.NewNotFound("Order", id)
	}

	return s.GetByID(ctx, id)
}

// Delete removes an order and its items.
func (s *orderService) Delete(ctx context.Context, id int64) error {
	affected, err := s.orderRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if affected == 0 {
		return model.NewNotFound("Order", id)
	}

	s.logger.Info().Int64("order_id", id).Msg("order deleted")

	return nil
}

// validateOrderRequest validates the order request.
func (s *orderService) validateOrderRequest(req *model.OrderRequest) error {
	if req == nil {
		return model.NewValidationError("order request is required")
	}

	if req.ClientID <= 0 {
		return model.NewValidationError("clientId is required")
	}

	if len(req.Items) == 0 {
		return model.NewValidationError("order must contain at least one item")
	}

	for i, item := range req.Items {
		if item.ProductID <= 0 {
			return model.NewValidationError(fmt.Sprintf("item %d: productId is required", i))
		}

		if item.Quantity <= 0 {
			s.logger.Warn().
				Int("item_index", i).
				Int64("product_id", item.ProductID).
				Int("quantity", item.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}

		if item.UnitPrice.IsNegative() {
			return model.NewValidationError(fmt.Sprintf("item %d: unitPrice cannot be negative", i))
		}
	}

	return nil
}
