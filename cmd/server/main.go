// Package main is the application entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taller-go/internal/assistant"
	"taller-go/internal/config"
	"taller-go/internal/handler"
	"taller-go/internal/middleware"
	"taller-go/internal/pipeline"
	"taller-go/internal/repository"
	"taller-go/internal/service"
	"taller-go/pkg/database"
	"taller-go/pkg/es"
	"taller-go/pkg/kafka"
	"taller-go/pkg/llm"
	"taller-go/pkg/log"
	"taller-go/pkg/storage"
	"taller-go/pkg/token"

	"github.com/gin-gonic/gin"
)

func main() {
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()

	database.InitMySQL(cfg.Database.MySQL.DSN)
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	storage.InitMinIO(cfg.MinIO)
	if err := es.InitES(cfg.Elasticsearch); err != nil {
		log.Fatalf("elasticsearch initialization failed: %s", err)
	}
	kafka.InitProducer(cfg.Kafka)

	// repositories
	userRepo := repository.NewUserRepository(database.DB)
	customerRepo := repository.NewCustomerRepository(database.DB)
	productRepo := repository.NewProductRepository(database.DB, database.RDB)
	orderRepo := repository.NewOrderRepository(database.DB)
	invoiceRepo := repository.NewInvoiceRepository(database.DB)
	statsRepo := repository.NewStatsRepository(database.DB)
	conversationRepo := repository.NewConversationRepository(database.DB)

	// services
	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpireHours, cfg.JWT.RefreshTokenExpireDays)
	userService := service.NewUserService(userRepo, jwtManager)
	customerService := service.NewCustomerService(customerRepo)
	productService := service.NewProductService(productRepo, cfg.Elasticsearch.IndexName)
	orderService := service.NewOrderService(orderRepo, customerRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, orderRepo, cfg.MinIO.BucketName)
	conversationService := service.NewConversationService(conversationRepo)

	// assistant orchestration
	gateway := llm.NewGateway(cfg.LLM)
	registry, err := assistant.NewRegistry(assistant.Deps{
		Products:  productService,
		Customers: customerService,
		Orders:    orderService,
		Invoices:  invoiceService,
		Stats:     statsRepo,
		Companies: service.NewCompanyDirectory(userRepo),
	})
	if err != nil {
		log.Fatalf("assembling tool registry failed: %s", err)
	}
	orchestrator := assistant.NewOrchestrator(
		gateway,
		registry,
		cfg.Assistant.FallbackMessage,
		cfg.Assistant.HistoryWindow,
	).WithRules(cfg.Assistant.Rules)
	chatService := service.NewChatService(conversationRepo, orchestrator, cfg.Assistant.DefaultModel, cfg.Assistant.HistoryWindow)

	// background product indexer
	indexer := pipeline.NewIndexer(productRepo, cfg.Elasticsearch.IndexName)
	go kafka.StartConsumer(cfg.Kafka, indexer)

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	authHandler := handler.NewAuthHandler(userService)
	customerHandler := handler.NewCustomerHandler(customerService)
	productHandler := handler.NewProductHandler(productService)
	orderHandler := handler.NewOrderHandler(orderService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	statsHandler := handler.NewStatsHandler(statsRepo)
	conversationHandler := handler.NewConversationHandler(conversationService)
	chatHandler := handler.NewChatHandler(chatService, jwtManager)

	apiV1 := r.Group("/api/v1")
	{
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refreshToken", authHandler.Refresh)
		}

		authed := apiV1.Group("/")
		authed.Use(middleware.AuthMiddleware(jwtManager))
		{
			authed.GET("/me", authHandler.Profile)

			customers := authed.Group("/customers")
			{
				customers.POST("", customerHandler.Create)
				customers.GET("", customerHandler.List)
				customers.GET("/:id", customerHandler.Get)
				customers.POST("/:id/vehicles", customerHandler.AddVehicle)
			}

			products := authed.Group("/products")
			{
				products.POST("", productHandler.Create)
				products.GET("", productHandler.List)
				products.GET("/lookup", productHandler.Lookup)
				products.GET("/search", productHandler.Search)
				products.GET("/low-stock", productHandler.LowStock)
			}

			orders := authed.Group("/orders")
			{
				orders.POST("", orderHandler.Create)
				orders.GET("", orderHandler.List)
				orders.GET("/:number", orderHandler.Get)
				orders.PUT("/:number/status", orderHandler.UpdateStatus)
				orders.POST("/:number/comments", orderHandler.AddComment)
				orders.POST("/:number/items", orderHandler.AddItem)
			}

			invoices := authed.Group("/invoices")
			{
				invoices.POST("", invoiceHandler.Issue)
				invoices.GET("", invoiceHandler.List)
				invoices.GET("/:number", invoiceHandler.Get)
				invoices.PUT("/:number/paid", invoiceHandler.MarkPaid)
				invoices.GET("/:number/document", invoiceHandler.Document)
			}
			authed.POST("/expenses", invoiceHandler.RecordExpense)

			stats := authed.Group("/stats")
			{
				stats.GET("/sales", statsHandler.SalesSummary)
				stats.GET("/sales/monthly", statsHandler.MonthlySales)
				stats.GET("/products/top", statsHandler.TopProducts)
				stats.GET("/income-expense", statsHandler.IncomeExpense)
				stats.GET("/receivable", statsHandler.Receivable)
			}

			conversations := authed.Group("/conversations")
			{
				conversations.GET("", conversationHandler.List)
				conversations.GET("/:id", conversationHandler.Get)
				conversations.PUT("/:id", conversationHandler.Rename)
				conversations.DELETE("/:id", conversationHandler.Delete)
			}

			authed.POST("/chat/messages", chatHandler.PostMessage)

			admin := authed.Group("/admin")
			admin.Use(middleware.AdminAuthMiddleware())
			{
				admin.PUT("/products/price", productHandler.UpdatePrice)
			}
		}
	}
	r.GET("/chat/:token", chatHandler.Handle)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server failed: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("http server shutdown failed: %v", err)
	}
	log.Info("server stopped")
}
