package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/coresight-research/coreiq/internal/db"
	"github.com/coresight-research/coreiq/internal/handlers"
)

func main() {
	logger := zap.Must(zap.NewProduction())
	defer logger.Sync()

	// Load .env file if it exists (local dev)
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using environment variables")
	}

	ctx := context.Background()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		logger.Fatal("DATABASE_URL environment variable is required")
	}

	// Run migrations
	if err := db.RunMigrations(databaseURL); err != nil {
		logger.Warn("could not run migrations", zap.Error(err))
	} else {
		logger.Info("migrations completed")
	}

	// Connect to database
	pool, err := db.Connect(ctx, databaseURL)
	if err != nil {
		logger.Fatal("could not connect to database", zap.Error(err))
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Repositories
	companies := db.NewCompanyRepository(pool, logger)
	statements := db.NewStatementRepository(pool, companies, logger)
	news := db.NewNewsRepository(pool, companies, logger)
	earnings := db.NewEarningsRepository(pool, logger)
	forex := db.NewForexRepository(pool, logger)

	// Setup Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error == nil {
				logger.Info("request", zap.Int("status", v.Status), zap.String("uri", v.URI))
			} else {
				logger.Error("request", zap.Int("status", v.Status), zap.String("uri", v.URI), zap.Error(v.Error))
			}
			return nil
		},
	}))
	e.Use(middleware.Recover())

	h := handlers.New(companies, statements, news, earnings, forex, logger)

	// Routes
	e.GET("/health", h.Health)

	api := e.Group("/api")
	api.GET("/companies", h.ListCompanies)
	api.GET("/companies/:ticker", h.GetCompany)
	api.GET("/sectors", h.ListSectors)

	api.GET("/statements/:type/:ticker", h.GetStatement)
	api.GET("/statements/dates/:ticker", h.GetAvailableDates)
	api.GET("/statements/currency/:ticker", h.GetReportedCurrency)

	api.GET("/news", h.ListNews)
	api.GET("/news/featured", h.ListFeaturedNews)
	api.GET("/news/sources", h.ListNewsSources)
	api.GET("/news/:id", h.GetNewsArticle)

	api.GET("/earnings/:ticker", h.ListEarningsCalls)
	api.GET("/earnings/:ticker/:year/:quarter/transcript", h.GetTranscript)

	api.GET("/forex/rate", h.GetForexRate)
	api.GET("/forex/currencies", h.ListCurrencies)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
