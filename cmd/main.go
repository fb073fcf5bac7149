package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"auction-house/internal/auth"
	"auction-house/internal/config"
	"auction-house/internal/database"
	"auction-house/internal/handlers"
	"auction-house/internal/repository"
	"auction-house/internal/services"
	"auction-house/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		utils.Fatal("failed to load configuration", map[string]any{"error": err.Error()})
	}

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		utils.Fatal("failed to connect to database", map[string]any{"error": err.Error()})
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		utils.Fatal("failed to run migrations", map[string]any{"error": err.Error()})
	}

	db := database.GetDB()

	// Initialize repository
	listingRepo := repository.NewListingRepository(db)

	// Initialize services
	accountService := services.NewAccountService(db)
	categoryService := services.NewCategoryService(db)
	listingService := services.NewListingService(db, listingRepo)
	bidService := services.NewBidService(db)
	watchlistService := services.NewWatchlistService(db, listingRepo)
	commentService := services.NewCommentService(db)
	analyticsService := services.NewAnalyticsService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(accountService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, listingService)
	listingHandler := handlers.NewListingHandler(listingService)
	bidHandler := handlers.NewBidHandler(bidService)
	watchlistHandler := handlers.NewWatchlistHandler(watchlistService)
	commentHandler := handlers.NewCommentHandler(commentService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
	if cfg.App.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.App.FrontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Authentication routes (public)
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	// Authenticated account routes
	authProtected := router.Group("/auth")
	authProtected.Use(auth.AuthMiddleware())
	{
		authProtected.GET("/me", authHandler.GetMe)
		authProtected.POST("/password", authHandler.ChangePassword)
	}

	// Public catalogue routes
	router.GET("/api/categories", categoryHandler.GetCategories)
	router.GET("/api/categories/:slug/listings", categoryHandler.GetCategoryListings)
	router.GET("/api/listings", listingHandler.GetListings)
	router.GET("/api/listings/:id", auth.OptionalAuthMiddleware(), listingHandler.GetListing)
	router.GET("/api/listings/slug/:slug", auth.OptionalAuthMiddleware(), listingHandler.GetListingBySlug)
	router.GET("/api/listings/:id/bids", bidHandler.GetListingBids)
	router.GET("/api/listings/:id/comments", commentHandler.GetListingComments)

	// Public analytics routes
	router.GET("/api/analytics/categories", analyticsHandler.GetCategoryBreakdown)
	router.GET("/api/analytics/summary", analyticsHandler.GetSummary)

	// API routes (protected)
	api := router.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		// Listing endpoints
		api.POST("/listings", listingHandler.CreateListing)
		api.PATCH("/listings/:id", listingHandler.UpdateListing)
		api.POST("/listings/:id/close", listingHandler.CloseListing)
		api.GET("/my-listings", listingHandler.GetMyListings)

		// Bid endpoints
		api.POST("/listings/:id/bids", bidHandler.PlaceBid)
		api.GET("/my-bids", bidHandler.GetMyBids)

		// Watchlist endpoints
		api.POST("/listings/:id/watch", watchlistHandler.ToggleWatch)
		api.GET("/watchlist", watchlistHandler.GetWatchlist)

		// Comment endpoints
		api.POST("/listings/:id/comments", commentHandler.CreateComment)
		api.PATCH("/comments/:id", commentHandler.UpdateComment)
		api.DELETE("/comments/:id", commentHandler.DeleteComment)
	}

	// Staff routes (protected + staff only)
	staff := router.Group("/api")
	staff.Use(auth.AuthMiddleware())
	staff.Use(auth.StaffMiddleware())
	{
		staff.POST("/categories", categoryHandler.CreateCategory)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
