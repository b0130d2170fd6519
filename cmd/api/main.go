package main

import (
	"context"
	"log"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/me1610247/API-ecommerce/internal/notification"
	"github.com/me1610247/API-ecommerce/internal/notification/email"
	"github.com/me1610247/API-ecommerce/internal/repository"
	"github.com/me1610247/API-ecommerce/internal/service"
	transport "github.com/me1610247/API-ecommerce/internal/transport/http"
	"github.com/me1610247/API-ecommerce/internal/transport/http/handler"
	myValidator "github.com/me1610247/API-ecommerce/internal/validator"
	"github.com/me1610247/API-ecommerce/pkg/config"
	"github.com/me1610247/API-ecommerce/pkg/db"
	"github.com/me1610247/API-ecommerce/pkg/kafka"
	outbox "github.com/me1610247/API-ecommerce/pkg/outbox/repository"
	"github.com/me1610247/API-ecommerce/pkg/outbox/worker"
	"github.com/me1610247/API-ecommerce/pkg/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found, using system envs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	tp, err := utils.InitTracer(ctx, "ecommerce-api", cfg.Telemetry.Endpoint, cfg.Env)
	if err != nil {
		log.Fatalf("Error init tracer: %v", err)
	}

	loggerCfg := config.LoggerConfig{
		Level: "info",
		Env:   cfg.Env,
	}

	logger, err := config.NewLogger(loggerCfg)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			log.Printf("error syncing logger: %v", err)
		}
	}()

	pool, err := db.NewPostgresDB(cfg.Postgres.URL)
	if err != nil {
		log.Fatalf("error creating postgres db: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
	})

	kafkaProducer, err := kafka.NewProducer(cfg.Kafka.Brokers)
	if err != nil {
		log.Fatalf("error creating kafka producer: %v", err)
	}

	outboxRepo := outbox.NewOutboxRepository(pool, logger)
	outboxProcessor := worker.NewOutboxProcessor(pool, outboxRepo, kafkaProducer, logger)
	go outboxProcessor.Start(ctx)

	emailSender := email.NewSMTPSender(cfg.SMTP, logger)
	notificationService := notification.NewService(emailSender, logger, pool)
	notificationConsumer := notification.NewConsumer(notificationService, logger)
	go notificationConsumer.Start(ctx, cfg.Kafka.Brokers)

	userRepo := repository.NewUserRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)
	categoryRepo := repository.NewCategoryRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	reviewRepo := repository.NewReviewRepository(pool, logger)
	wishlistRepo := repository.NewWishlistRepository(pool, logger)

	authService := service.NewAuthService(userRepo, outboxRepo, pool, logger, myValidator.NewValidator())
	productService := service.NewCachedProductService(
		service.NewProductService(productRepo, categoryRepo, logger),
		redisClient,
	)
	categoryService := service.NewCategoryService(categoryRepo, logger)
	cartService := service.NewCartService(cartRepo, productRepo, logger)
	orderService := service.NewOrderService(pool, logger, orderRepo, cartRepo, userRepo, outboxRepo)
	reviewService := service.NewReviewService(reviewRepo, productRepo, logger)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo, logger)

	app := fiber.New()

	app.Use(otelfiber.Middleware())

	app.Use(limiter.New(limiter.Config{
		Max:        cfg.Limiter.Max,
		Expiration: cfg.Limiter.Expiration,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Try again later.",
			})
		},
	}))

	handlers := &transport.Handlers{
		Auth:     handler.NewAuthHandler(authService, logger),
		Product:  handler.NewProductHandler(productService, logger),
		Category: handler.NewCategoryHandler(categoryService, logger),
		Cart:     handler.NewCartHandler(cartService, logger),
		Order:    handler.NewOrderHandler(orderService, logger),
		Review:   handler.NewReviewHandler(reviewService, logger),
		Wishlist: handler.NewWishlistHandler(wishlistService, logger),
	}

	transport.RegisterRoutes(app, handlers)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	go func() {
		nethttp.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{
			Registry: reg,
		}))
		log.Println("Metrics server is listening on 9091 📈")

		if err := nethttp.ListenAndServe(":9091", nil); err != nil {
			log.Printf("Metrics serving failed: %v", err)
		}
	}()

	logger.Info("API service started!")

	go func() {
		log.Println("HTTP Service listening on: " + cfg.HTTP.Port)
		if err := app.Listen(cfg.HTTP.Port); err != nil {
			log.Fatalf("Error listening on HTTP port %v: %v\n", cfg.HTTP.Port, err)
		}
	}()

	<-ctx.Done()

	log.Println("Shutting down gracefully...")
	shutdownContext, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownContext); err != nil {
		log.Printf("Error shutting down HTTP app: %v\n", err)
	} else {
		log.Println("HTTP App stopped gracefully")
	}

	if err := kafkaProducer.Close(); err != nil {
		log.Printf("Error closing kafka producer: %v\n", err)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing redis client: %v\n", err)
	}

	if err := tp.Shutdown(shutdownContext); err != nil {
		log.Printf("Error shutting down telemetry: %v\n", err)
	} else {
		log.Println("Telemetry stopped correctly")
	}

	pool.Close()
	log.Println("✅ Postgres pool closed")
}
