// Package routes defines the API routing configuration.
package routes

import (
	"corebank/internal/handlers"
	"corebank/internal/middleware"
	"corebank/internal/repositories"
	"corebank/internal/services/account"
	"corebank/internal/services/auth"
	"corebank/internal/services/transaction"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes wires repositories, services and handlers onto the app.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	userRepo := repositories.NewUserRepository(db, repositories.CacheService)
	accountRepo := repositories.NewAccountRepository(db)
	txnRepo := repositories.NewTransactionRepository(db)

	authService := auth.NewService(userRepo)
	accountService := account.NewService(userRepo, accountRepo, repositories.CacheService)
	transactionService := transaction.NewService(
		userRepo,
		accountRepo,
		txnRepo,
		repositories.CacheService,
		&transaction.NoopMetricsCollector{},
	)

	authHandler := handlers.NewAuthHandler(authService)
	accountHandler := handlers.NewAccountHandler(accountService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")

	// Public endpoints
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.Refresh)

	// Authenticated endpoints
	api.Post("/logout", authMiddleware.Handler, authHandler.Logout)

	accountGroup := api.Group("/account", authMiddleware.Handler)
	accountGroup.Post("/", accountHandler.CreateAccount)
	accountGroup.Delete("/", accountHandler.CloseAccount)
	accountGroup.Get("/", accountHandler.ListAccounts)
	accountGroup.Get("/:id", accountHandler.GetAccount)

	transactionGroup := api.Group("/transaction", authMiddleware.Handler)
	transactionGroup.Post("/use", transactionHandler.UseBalance)
	transactionGroup.Post("/cancel", transactionHandler.CancelBalance)
	transactionGroup.Get("/:transactionId", transactionHandler.QueryTransaction)
}
