package api

import (
	"database/sql"
	"net/http"

	"go.uber.org/zap"

	"logitrack/internal/model"
	"logitrack/internal/service"
)

// NewRouter creates the API router with all endpoints registered.
//
// Inventory and order routes run behind optional auth: the service layer
// enforces the configured role requirements, so an anonymous caller can
// reach any endpoint whose access policy allows it.
func NewRouter(db *sql.DB, svc *service.Service, jwtSecret string, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret, Logger: logger}
	usersHandler := &UsersHandler{DB: db, Logger: logger}
	inventoryHandler := &InventoryHandler{Service: svc, Logger: logger}
	ordersHandler := &OrdersHandler{Service: svc, Logger: logger}

	optionalAuth := OptionalAuth(jwtSecret, db, logger)
	requireAuth := RequireAuth(jwtSecret, db, logger)
	requireAdmin := RequireRole(model.RoleAdmin, logger)

	// Auth.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.Handle("POST /api/auth/logout", requireAuth(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("PUT /api/auth/password", requireAuth(http.HandlerFunc(authHandler.ChangePassword)))

	// Users (admin only).
	mux.Handle("GET /api/users", requireAuth(requireAdmin(http.HandlerFunc(usersHandler.List))))
	mux.Handle("POST /api/users", requireAuth(requireAdmin(http.HandlerFunc(usersHandler.Create))))
	mux.Handle("PUT /api/users/{id}", requireAuth(requireAdmin(http.HandlerFunc(usersHandler.Update))))
	mux.Handle("DELETE /api/users/{id}", requireAuth(requireAdmin(http.HandlerFunc(usersHandler.Delete))))

	// Inventory.
	mux.Handle("GET /api/inventory", optionalAuth(http.HandlerFunc(inventoryHandler.List)))
	mux.Handle("POST /api/inventory", optionalAuth(http.HandlerFunc(inventoryHandler.Create)))
	mux.Handle("DELETE /api/inventory/{id}", optionalAuth(http.HandlerFunc(inventoryHandler.Delete)))
	mux.Handle("PUT /api/inventory/{id}/photo", optionalAuth(http.HandlerFunc(inventoryHandler.UploadPhoto)))
	mux.Handle("GET /api/inventory/{id}/photo", optionalAuth(http.HandlerFunc(inventoryHandler.GetPhoto)))

	// Orders.
	mux.Handle("GET /api/orders", optionalAuth(http.HandlerFunc(ordersHandler.List)))
	mux.Handle("GET /api/orders/{id}", optionalAuth(http.HandlerFunc(ordersHandler.Get)))
	mux.Handle("POST /api/orders", optionalAuth(http.HandlerFunc(ordersHandler.Create)))
	mux.Handle("DELETE /api/orders/{id}", optionalAuth(http.HandlerFunc(ordersHandler.Delete)))

	return mux
}
