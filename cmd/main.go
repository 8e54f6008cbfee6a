package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"food-order-service/internal/api"
	"food-order-service/internal/auth"
	"food-order-service/internal/config"
	"food-order-service/internal/payment"
	"food-order-service/internal/repository"
	"food-order-service/internal/service"
	"food-order-service/migrations"
)

func connectDBEnv(host, port, user, pass, dbname string) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)

	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("mysql", dsn)
		if err == nil {
			err = db.Ping()
			if err == nil {
				log.Printf("Connected to DB %s", dbname)
				return db, nil
			}
		}
		log.Printf("Retry %d: Failed to connect to DB %s (%s:%s): %v", i+1, dbname, host, port, err)
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to DB %s at %s:%s after retries: %v", dbname, host, port, err)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	db, err := connectDBEnv(
		envOr("DB_HOST", "127.0.0.1"),
		envOr("DB_PORT", "3306"),
		envOr("DB_USER", "root"),
		os.Getenv("DB_PASS"),
		envOr("DB_NAME", "food_order"),
	)
	if err != nil {
		panic(err)
	}

	if err := migrations.AutoMigrate(3, db); err != nil {
		log.Fatalf("Failed to migrate tables: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: envOr("REDIS_ADDR", "localhost:6379"),
	})

	orderWriter := config.NewKafkaWriter("order-topic")
	paymentWriter := config.NewKafkaWriter("payment-topic")

	tokenService := auth.NewTokenService(envOr("ACCESS_SECRET_KEY", "secret"))
	processor := payment.NewClient(envOr("STRIPE_API_URL", "https://api.stripe.com"), os.Getenv("STRIPE_SECRET_KEY"))

	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)

	orderService := service.NewOrderService(orderRepo, orderWriter, rdb)
	settlementService := service.NewSettlementService(paymentRepo, orderRepo, processor, paymentWriter)
	userService := service.NewUserService(userRepo)
	menuService := service.NewMenuService(productRepo, rdb)

	gate := auth.NewGate(tokenService, userService)

	authHandler := api.NewAuthHandler(tokenService)
	orderHandler := api.NewOrderHandler(orderService)
	paymentHandler := api.NewPaymentHandler(settlementService)
	userHandler := api.NewUserHandler(userService)
	menuHandler := api.NewMenuHandler(menuService)

	e := echo.New()

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(20),
				Burst:     60,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.Request().RemoteAddr, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))

	requireToken := gate.RequireToken()
	requireAdmin := gate.RequireAdmin()

	e.POST("/jwt", authHandler.IssueToken)

	e.GET("/menu", menuHandler.ListMenu)
	e.GET("/menu/:id", menuHandler.GetMenuItem)
	e.POST("/menu", menuHandler.AddMenuItem, requireToken, requireAdmin)
	e.PATCH("/menu/:id", menuHandler.UpdateMenuItem, requireToken, requireAdmin)
	e.DELETE("/menu/:id", menuHandler.DeleteMenuItem, requireToken, requireAdmin)

	e.POST("/orders", orderHandler.PlaceOrder)
	e.GET("/orders", orderHandler.ListOrders)
	e.DELETE("/orders/:id", orderHandler.DeleteOrder)

	e.POST("/users", userHandler.CreateUser)
	e.GET("/users", userHandler.ListUsers, requireToken, requireAdmin)
	e.GET("/users/admin/:email", userHandler.CheckAdmin, requireToken)
	e.PATCH("/users/admin/:id", userHandler.PromoteUser, requireToken, requireAdmin)
	e.DELETE("/users/:id", userHandler.DeleteUser, requireToken, requireAdmin)

	e.POST("/create-payment-intent", paymentHandler.CreatePaymentIntent)
	e.POST("/payment", paymentHandler.Settle)
	e.GET("/payments/:email", paymentHandler.PaymentHistory)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "food-order-service",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	e.Logger.Fatal(e.Start(":" + envOr("PORT", "5000")))
}
