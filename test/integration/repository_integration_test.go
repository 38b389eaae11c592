package integration

import (
	"context"
	"sync"
	"testing"

	"shopfront/internal/model"
	"shopfront/internal/repository"
	"shopfront/internal/service"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewProductRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("Create and GetByID round-trip", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		categoryID := SeedCategory(t, testDB.Pool, "Books")

		product := &model.Product{
			Name:       "Go in Practice",
			Price:      decimal.RequireFromString("34.99"),
			Quantity:   12,
			Images:     []string{"cover.jpg"},
			CategoryID: categoryID,
		}
		require.NoError(t, repo.Create(ctx, product))
		require.NotZero(t, product.ID)

		got, err := repo.GetByID(ctx, product.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Go in Practice", got.Name)
		assert.True(t, got.Price.Equal(decimal.RequireFromString("34.99")))
		assert.Equal(t, 12, got.Quantity)
		assert.Equal(t, []string{"cover.jpg"}, got.Images)
	})

	t.Run("GetByID returns nil for non-existent product", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		product, err := repo.GetByID(ctx, 9999)
		require.NoError(t, err)
		assert.Nil(t, product)
	})

	t.Run("GetAll with pagination", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		categoryID := SeedCategory(t, testDB.Pool, "Books")
		for _, name := range []string{"A", "B", "C", "D", "E"} {
			SeedProduct(t, testDB.Pool, name, decimal.New(10, 0), 5, categoryID)
		}

		products, err := repo.GetAll(ctx, 2, 0)
		require.NoError(t, err)
		assert.Len(t, products, 2)

		products, err = repo.GetAll(ctx, 2, 4)
		require.NoError(t, err)
		assert.Len(t, products, 1)
	})

	t.Run("DecrementStock succeeds when stock suffices", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		categoryID := SeedCategory(t, testDB.Pool, "Books")
		productID := SeedProduct(t, testDB.Pool, "Widget", decimal.New(10, 0), 5, categoryID)

		tx, err := testDB.Pool.Begin(ctx)
		require.NoError(t, err)

		ok, err := repo.DecrementStock(ctx, tx, productID, 3)
		require.NoError(t, err)
		assert.True(t, ok)
		require.NoError(t, tx.Commit(ctx))

		assert.Equal(t, 2, ProductQuantity(t, testDB.Pool, productID))
	})

	t.Run("DecrementStock refuses to go negative", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		categoryID := SeedCategory(t, testDB.Pool, "Books")
		productID := SeedProduct(t, testDB.Pool, "Widget", decimal.New(10, 0), 2, categoryID)

		tx, err := testDB.Pool.Begin(ctx)
		require.NoError(t, err)

		ok, err := repo.DecrementStock(ctx, tx, productID, 3)
		require.NoError(t, err)
		assert.False(t, ok)
		require.NoError(t, tx.Rollback(ctx))

		assert.Equal(t, 2, ProductQuantity(t, testDB.Pool, productID))
	})

	t.Run("LockByIDs returns only existing products", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		categoryID := SeedCategory(t, testDB.Pool, "Books")
		productID := SeedProduct(t, testDB.Pool, "Widget", decimal.New(10, 0), 5, categoryID)

		tx, err := testDB.Pool.Begin(ctx)
		require.NoError(t, err)
		defer tx.Rollback(ctx)

		products, err := repo.LockByIDs(ctx, tx, []int64{productID, 9999})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, productID, products[0].ID)
	})
}

func TestOrderService_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()

	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)
	productRepo := repository.NewProductRepository(testDB.Pool, logger)
	clientRepo := repository.NewClientRepository(testDB.Pool, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, clientRepo, logger)

	ctx := context.Background()

	seed := func(t *testing.T, quantity int) (clientID, productID int64) {
		CleanupDB(t, testDB.Pool)
		userID := SeedUser(t, testDB.Pool, "Jane", "jane@example.com", []string{model.RoleClient})
		clientID = SeedClient(t, testDB.Pool, userID, "Jane Buyer")
		categoryID := SeedCategory(t, testDB.Pool, "Books")
		productID = SeedProduct(t, testDB.Pool, "Widget", decimal.RequireFromString("19.99"), quantity, categoryID)
		return clientID, productID
	}

	t.Run("CreateOrder persists order, items and decrements stock", func(t *testing.T) {
		clientID, productID := seed(t, 5)

		order, err := orderService.CreateOrder(ctx, &model.OrderRequest{
			ClientID: clientID,
			Items: []model.OrderItemRequest{
				{ProductID: productID, Quantity: 2, UnitPrice: decimal.RequireFromString("19.99")},
			},
		})

		require.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, model.StatusReceived, order.Status)
		assert.True(t, order.Total.Equal(decimal.RequireFromString("39.98")))
		require.Len(t, order.Items, 1)
		assert.True(t, order.Items[0].Subtotal.Equal(decimal.RequireFromString("39.98")))
		require.NotNil(t, order.Client)
		assert.Equal(t, clientID, order.Client.ID)

		assert.Equal(t, 3, ProductQuantity(t, testDB.Pool, productID))
	})

	t.Run("Failed order leaves no partial state", func(t *testing.T) {
		clientID, productID := seed(t, 5)

		// Second item references a product that does not exist, so the whole
		// order must roll back including the first item's stock.
		order, err := orderService.CreateOrder(ctx, &model.OrderRequest{
			ClientID: clientID,
			Items: []model.OrderItemRequest{
				{ProductID: productID, Quantity: 2, UnitPrice: decimal.RequireFromString("19.99")},
				{ProductID: 9999, Quantity: 1, UnitPrice: decimal.New(1, 0)},
			},
		})

		require.Error(t, err)
		assert.Nil(t, order)

		assert.Equal(t, 5, ProductQuantity(t, testDB.Pool, productID))
		assert.Equal(t, 0, CountRows(t, testDB.Pool, "orders"))
		assert.Equal(t, 0, CountRows(t, testDB.Pool, "order_items"))
	})

	t.Run("Insufficient stock aborts the order", func(t *testing.T) {
		clientID, productID := seed(t, 1)

		order, err := orderService.CreateOrder(ctx, &model.OrderRequest{
			ClientID: clientID,
			Items: []model.OrderItemRequest{
				{ProductID: productID, Quantity: 2, UnitPrice: decimal.RequireFromString("19.99")},
			},
		})

		require.Error(t, err)
		assert.Nil(t, order)

		var domainErr *model.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, model.ErrCodeStockInsufficient, domainErr.Code)

		assert.Equal(t, 1, ProductQuantity(t, testDB.Pool, productID))
		assert.Equal(t, 0, CountRows(t, testDB.Pool, "orders"))
	})

	t.Run("Concurrent orders never oversell", func(t *testing.T) {
		clientID, productID := seed(t, 1)

		const attempts = 2
		results := make([]error, attempts)

		var wg sync.WaitGroup
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, results[i] = orderService.CreateOrder(ctx, &model.OrderRequest{
					ClientID: clientID,
					Items: []model.OrderItemRequest{
						{ProductID: productID, Quantity: 1, UnitPrice: decimal.RequireFromString("19.99")},
					},
				})
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range results {
			if err == nil {
				succeeded++
			}
		}

		assert.Equal(t, 1, succeeded, "exactly one of the concurrent orders must win")
		assert.Equal(t, 0, ProductQuantity(t, testDB.Pool, productID))
		assert.Equal(t, 1, CountRows(t, testDB.Pool, "orders"))
	})

	t.Run("Payment flow updates status", func(t *testing.T) {
		clientID, productID := seed(t, 5)

		order, err := orderService.CreateOrder(ctx, &model.OrderRequest{
			ClientID: clientID,
			Items: []model.OrderItemRequest{
				{ProductID: productID, Quantity: 1, UnitPrice: decimal.RequireFromString("19.99")},
			},
		})
		require.NoError(t, err)

		paid, err := orderService.ProcessPayment(ctx, order.ID, true)
		require.NoError(t, err)
		assert.Equal(t, model.StatusPaid, paid.Status)

		// Payment does not touch stock.
		assert.Equal(t, 4, ProductQuantity(t, testDB.Pool, productID))

		reloaded, err := orderService.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusPaid, reloaded.Status)
	})

	t.Run("Failed payment marks order", func(t *testing.T) {
		clientID, productID := seed(t, 5)

		order, err := orderService.CreateOrder(ctx, &model.OrderRequest{
			ClientID: clientID,
			Items: []model.OrderItemRequest{
				{ProductID: productID, Quantity: 1, UnitPrice: decimal.RequireFromString("19.99")},
			},
		})
		require.NoError(t, err)

		failed, err := orderService.ProcessPayment(ctx, order.ID, false)
		require.NoError(t, err)
		assert.Equal(t, model.StatusPaymentFailed, failed.Status)
	})

	t.Run("GetByID is idempotent", func(t *testing.T) {
		clientID, productID := seed(t, 5)

		order, err := orderService.CreateOrder(ctx, &model.OrderRequest{
			ClientID: clientID,
			Items: []model.OrderItemRequest{
				{ProductID: productID, Quantity: 2, UnitPrice: decimal.RequireFromString("19.99")},
			},
		})
		require.NoError(t, err)

		first, err := orderService.GetByID(ctx, order.ID)
		require.NoError(t, err)
		second, err := orderService.GetByID(ctx, order.ID)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.True(t, first.Total.Equal(second.Total))
		assert.Len(t, second.Items, len(first.Items))

		// Reads do not change stock.
		assert.Equal(t, 3, ProductQuantity(t, testDB.Pool, productID))
	})
}

func TestUserRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewUserRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("Create and GetByEmail round-trip", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		user := &model.User{
			Name:         "Jane",
			Email:        "jane@example.com",
			PasswordHash: "hash",
			Roles:        []string{model.RoleClient},
		}
		require.NoError(t, repo.Create(ctx, user))
		require.NotZero(t, user.ID)

		got, err := repo.GetByEmail(ctx, "jane@example.com")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, []string{model.RoleClient}, got.Roles)
	})

	t.Run("GetByEmail returns nil when absent", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		got, err := repo.GetByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Delete reports affected rows", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		userID := SeedUser(t, testDB.Pool, "Jane", "jane@example.com", []string{model.RoleClient})

		affected, err := repo.Delete(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)

		affected, err = repo.Delete(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), affected)
	})
}
