package router

import (
	"net/http"

	"shopfront/internal/auth"
	"shopfront/internal/handler"
	"shopfront/internal/middleware"
	"shopfront/internal/repository"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	userHandler *handler.UserHandler,
	clientHandler *handler.ClientHandler,
	categoryHandler *handler.CategoryHandler,
	productHandler *handler.ProductHandler,
	orderHandler *handler.OrderHandler,
	reportHandler *handler.SalesReportHandler,
	tokens *auth.TokenManager,
	userRepo repository.UserRepository,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Users and authentication
	mux.HandleFunc("POST /api/users/signup", userHandler.SignUp)
	mux.HandleFunc("POST /api/users/signin", userHandler.SignIn)
	mux.HandleFunc("GET /api/users/me", userHandler.Me)
	mux.HandleFunc("GET /api/users", userHandler.GetAll)
	mux.HandleFunc("GET /api/users/{id}", userHandler.GetByID)
	mux.HandleFunc("PATCH /api/users/{id}", userHandler.Update)
	mux.HandleFunc("DELETE /api/users/{id}", userHandler.Delete)

	// Clients
	mux.HandleFunc("POST /api/clients", clientHandler.Create)
	mux.HandleFunc("GET /api/clients", clientHandler.GetAll)
	mux.HandleFunc("GET /api/clients/{id}", clientHandler.GetByID)
	mux.HandleFunc("PATCH /api/clients/{id}", clientHandler.Update)
	mux.HandleFunc("DELETE /api/clients/{id}", clientHandler.Delete)

	// Categories
	mux.HandleFunc("POST /api/categories", categoryHandler.Create)
	mux.HandleFunc("GET /api/categories", categoryHandler.GetAll)
	mux.HandleFunc("GET /api/categories/{id}", categoryHandler.GetByID)
	mux.HandleFunc("PATCH /api/categories/{id}", categoryHandler.Update)
	mux.HandleFunc("DELETE /api/categories/{id}", categoryHandler.Delete)

	// Products
	mux.HandleFunc("POST /api/products", productHandler.Create)
	mux.HandleFunc("GET /api/products", productHandler.GetAll)
	mux.HandleFunc("GET /api/products/{id}", productHandler.GetByID)
	mux.HandleFunc("PATCH /api/products/{id}", productHandler.Update)
	mux.HandleFunc("DELETE /api/products/{id}", productHandler.Delete)

	// Orders
	mux.HandleFunc("POST /api/orders", orderHandler.Create)
	mux.HandleFunc("POST /api/orders/{id}/pay", orderHandler.Pay)
	mux.HandleFunc("GET /api/orders", orderHandler.GetAll)
	mux.HandleFunc("GET /api/orders/{id}", orderHandler.GetByID)
	mux.HandleFunc("PATCH /api/orders/{id}", orderHandler.UpdateStatus)
	mux.HandleFunc("DELETE /api/orders/{id}", orderHandler.Delete)

	// Sales reports
	mux.HandleFunc("POST /api/sales-reports", reportHandler.Create)
	mux.HandleFunc("GET /api/sales-reports", reportHandler.GetAll)
	mux.HandleFunc("GET /api/sales-reports/{id}", reportHandler.GetByID)
	mux.HandleFunc("GET /api/sales-reports/{id}/download", reportHandler.Download)

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS -> Authenticate
	var h http.Handler = mux
	h = middleware.Authenticate(tokens, userRepo, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.RequestID(h)
	h = middleware.Recovery(logger)(h)

	return h
}
