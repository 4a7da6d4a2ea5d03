package main

import (
	"context"
	"os"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/sonuarjun3120/krishpafoods/internal/auth"
	"github.com/sonuarjun3120/krishpafoods/internal/cart"
	"github.com/sonuarjun3120/krishpafoods/internal/database"
	"github.com/sonuarjun3120/krishpafoods/internal/delivery"
	"github.com/sonuarjun3120/krishpafoods/internal/events"
	"github.com/sonuarjun3120/krishpafoods/internal/handlers"
	"github.com/sonuarjun3120/krishpafoods/internal/logs"
	"github.com/sonuarjun3120/krishpafoods/internal/middlewares"
	"github.com/sonuarjun3120/krishpafoods/internal/orders"
	"github.com/sonuarjun3120/krishpafoods/internal/otp"
	"github.com/sonuarjun3120/krishpafoods/internal/payments"
	"github.com/sonuarjun3120/krishpafoods/internal/rabbitmq"
	"github.com/sonuarjun3120/krishpafoods/internal/repository"
	"github.com/sonuarjun3120/krishpafoods/internal/router"
	"github.com/sonuarjun3120/krishpafoods/internal/web"
)

const otpRequestsPerMinute = 3

func main() {
	logger := logs.NewSlogLogger()
	err := godotenv.Load()
	if err == nil {
		logger.Info("loaded environment variables from .env file")
	} else {
		logger.Info("no .env file found, using environment variables")
	}

	pgDb, err := database.InitializePostgresDB()
	if err != nil {
		logger.Error("error connecting to database", "error", err)
		os.Exit(1)
	}
	logger.Info("database connected successfully")
	defer pgDb.Close()

	redisClient, err := initializeRedis()
	if err != nil {
		logger.Error("error connecting to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	rabbitmqConn, err := initializeRabbitMQ(logger)
	if err != nil {
		logger.Error("failed to initialize RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer rabbitmqConn.Close()

	jwtManager, err := initializeJWTManager()
	if err != nil {
		logger.Error("failed to initialize JWT manager", "error", err)
		os.Exit(1)
	}

	checkoutRepo := repository.NewPostgreSQLCheckoutRepository(pgDb)
	gateway := payments.NewGateway(os.Getenv("RAZORPAY_KEY_ID"), os.Getenv("RAZORPAY_KEY_SECRET"), logger)
	limiter := redis_rate.NewLimiter(redisClient)
	otpService := otp.NewService(checkoutRepo, limiter, otpRequestsPerMinute, logger)

	contacts := orders.StoreContacts{
		OwnerPhone: os.Getenv("STORE_OWNER_PHONE"),
		OwnerEmail: os.Getenv("STORE_OWNER_EMAIL"),
	}
	otpGated := os.Getenv("OTP_GATE_DISABLED") != "true"
	checkout := orders.NewService(checkoutRepo, gateway, rabbitmqConn, otpService, contacts, otpGated, logger)

	handler := handlers.NewHandler(handlers.Config{
		Queries:  checkoutRepo,
		Checkout: checkout,
		Carts:    cart.NewStore(redisClient, logger),
		OTP:      otpService,
		Gateway:  gateway,
		JWT:      jwtManager,
		Geocoder: delivery.NewHTTPReverseGeocoder(geocoderURL(), logger),
		UPI: payments.UPIDetails{
			VPA:          os.Getenv("UPI_VPA"),
			MerchantName: os.Getenv("UPI_MERCHANT_NAME"),
		},
		Bank: payments.BankTransferDetails{
			AccountName:   os.Getenv("BANK_ACCOUNT_NAME"),
			AccountNumber: os.Getenv("BANK_ACCOUNT_NUMBER"),
			IFSC:          os.Getenv("BANK_IFSC"),
			BankName:      os.Getenv("BANK_NAME"),
		},
		Logger: logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	feed := events.NewFeed(logger)
	watcher := events.NewBrokerOrderWatcher(logger, rabbitmqConn, "admin_feed")
	go func() {
		if err := feed.Run(ctx, watcher); err != nil && ctx.Err() == nil {
			logger.Error("admin order feed stopped", "error", err)
		}
	}()

	mux := router.ConfigRoutes(router.Dependencies{
		Handler:    handler,
		JWTManager: jwtManager,
		DB:         pgDb,
		Broker:     rabbitmqConn,
		Feed:       feed,
		Logger:     logger,
	})

	rateLimits := map[int]middlewares.RateLimitConfig{
		middlewares.UnknownClient:       {Rate: rate.Limit(10), Burst: 20},
		middlewares.AuthenticatedClient: {Rate: rate.Limit(50), Burst: 100},
	}
	rateLimitEnabled := os.Getenv("RATE_LIMIT_DISABLED") != "true"
	rateLimiter := middlewares.NewRateLimiterMiddleware(logger, rateLimits, limiter, rateLimitEnabled)

	srv, err := web.InitializeServer(os.Getenv("PORT"), rateLimiter.Middleware(mux))
	if err != nil {
		logger.Error("failed to initialize server", "error", err)
		os.Exit(1)
	}

	web.StartServerAndWaitForShutdown(srv, logger)
}

func geocoderURL() string {
	if url := os.Getenv("GEOCODER_URL"); url != "" {
		return url
	}
	return "https://nominatim.openstreetmap.org"
}

func initializeRedis() (*redis.Client, error) {
	opts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}

func initializeRabbitMQ(logger logs.Logger) (*rabbitmq.RabbitMQ, error) {
	return rabbitmq.NewConnection(logger, os.Getenv("RABBITMQ_URL"))
}

func initializeJWTManager() (*auth.JWTManager, error) {
	privateKey, err := os.ReadFile(os.Getenv("JWT_PRIVATE_KEY_PATH"))
	if err != nil {
		return nil, err
	}
	publicKey, err := os.ReadFile(os.Getenv("JWT_PUBLIC_KEY_PATH"))
	if err != nil {
		return nil, err
	}
	return auth.NewJWTManager(privateKey, publicKey, "krishpafoods", "krishpafoods-admin", time.Hour)
}
