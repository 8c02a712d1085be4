package cmd

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"club-platform/config"
	"club-platform/handlers"
	"club-platform/internal/gateway"
	"club-platform/monitoring"
	"club-platform/security"
	"club-platform/services"
	"club-platform/storage"
	"club-platform/store"
	"club-platform/utils"

	_ "club-platform/migrations"

	"github.com/joho/godotenv"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Start() error {
	// Optional .env overlay for local development.
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize Redis
	redisClient := utils.NewRedisClient(cfg.RedisURL)
	defer redisClient.Close()

	// Initialize PubNub
	pn := services.NewPubNub(cfg.PubNubPublishKey, cfg.PubNubSubscribeKey, cfg.PubNubSecretKey, cfg.PubNubUUID)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize gateways. An unconfigured provider is simply skipped; the
	// first registered one becomes the primary.
	registry := gateway.NewRegistry(gateway.NewFactory())
	if cfg.Cashfree.ClientID != "" {
		if err := registry.Register(ctx, gateway.ProviderCashfree, &cfg.Cashfree); err != nil {
			return err
		}
	}
	if cfg.Instamojo.APIKey != "" {
		if err := registry.Register(ctx, gateway.ProviderInstamojo, &cfg.Instamojo); err != nil {
			return err
		}
	}
	if len(registry.Available()) == 0 {
		log.Println("warning: no payment gateway configured, order creation will fail")
	}
	defer registry.Close(ctx)

	// Initialize object storage
	objectStore, err := storage.NewS3Store(ctx, &cfg.ObjectStore)
	if err != nil {
		return err
	}

	// Initialize stores
	transactions := store.NewPBTransactionStore(app)
	tickets := store.NewPBTicketStore(app)
	events := store.NewPBEventStore(app)
	coupons := store.NewPBCouponStore(app)

	// Initialize services
	qrService := services.NewQRService(objectStore)
	emailService := services.NewEmailService(app, cfg.MailFromName, cfg.MailFromAddress, cfg.ContactInbox)
	notifyService := services.NewNotifyService(pn)
	couponService := services.NewCouponService(coupons)
	ticketService := services.NewTicketService(tickets, qrService, emailService)
	paymentService := services.NewPaymentService(
		transactions, tickets, events, registry,
		ticketService, couponService, notifyService, cfg.PublicURL,
	)
	webhookQueue := services.NewWebhookQueue(redisClient, paymentService, cfg.WebhookMaxAttempts, cfg.WebhookRetryDelay)

	// Initialize handlers
	paymentHandler := handlers.NewPaymentHandler(paymentService, transactions, registry, webhookQueue)
	ticketHandler := handlers.NewTicketHandler(tickets, ticketService)
	eventHandler := handlers.NewEventHandler(events)
	couponHandler := handlers.NewCouponHandler(coupons, couponService)
	contactHandler := handlers.NewContactHandler(app, emailService)
	feedHandler := handlers.NewFeedHandler(app, notifyService)
	memberHandler := handlers.NewMemberHandler(app)

	limiter := security.NewRateLimiter(redisClient, cfg.RateLimitWindow, cfg.RateLimitRequests)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: cfg.Environment == "development",
	})

	// Start background tasks
	go webhookQueue.Run(ctx)
	if cfg.EnableMetrics {
		monitoring.NewMonitor(redisClient, services.WebhookQueueKey)
	}

	// Setup graceful shutdown
	go handleShutdown(cancel)

	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		// Payment endpoints
		e.Router.POST("/api/v1/payment/create-order", limiter.Limit("create-order", paymentHandler.CreateOrder))
		e.Router.GET("/api/v1/payment/verify/{order_id}", paymentHandler.Verify)
		e.Router.POST("/api/v1/payment/webhook/{provider}", paymentHandler.Webhook)

		// Ticket endpoints
		e.Router.GET("/api/v1/tickets/{ticket_id}", ticketHandler.Get)
		e.Router.POST("/api/v1/tickets/{ticket_id}/check-in", ticketHandler.CheckIn)

		// Event endpoints
		e.Router.GET("/api/v1/events", eventHandler.List)
		e.Router.GET("/api/v1/events/{event_id}", eventHandler.Get)
		e.Router.POST("/api/v1/events", eventHandler.Create)
		e.Router.GET("/api/v1/events/{event_id}/registrations", ticketHandler.Registrations)

		// Coupon endpoints
		e.Router.POST("/api/v1/coupons", couponHandler.Create)
		e.Router.POST("/api/v1/coupons/preview", couponHandler.Preview)

		// Contact form
		e.Router.POST("/api/v1/contact", limiter.Limit("contact", contactHandler.Submit))

		// Social feed
		e.Router.GET("/api/v1/feed", feedHandler.List)
		e.Router.POST("/api/v1/feed", feedHandler.Create)

		// Member registration
		e.Router.POST("/api/v1/members/register", limiter.Limit("register", memberHandler.Register))

		// Metrics
		if cfg.EnableMetrics {
			e.Router.GET("/metrics", apis.WrapStdHandler(promhttp.Handler()))
		}

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(503, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
			return e.JSON(200, map[string]string{"status": "healthy"})
		})

		log.Println("Server routes registered")

		return e.Next()
	})

	return app.Start()
}

// handleShutdown handles graceful shutdown
func handleShutdown(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
	cancel()
}
