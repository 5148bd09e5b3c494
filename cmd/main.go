package main

import (
	"context"

	"tax-backoffice-backend/config"
	"tax-backoffice-backend/middleware"
	"tax-backoffice-backend/utils"

	// Repositories
	activity_repositories "tax-backoffice-backend/activities/repositories"
	calculation_repositories "tax-backoffice-backend/calculations/repositories"
	case_repositories "tax-backoffice-backend/cases/repositories"
	client_repositories "tax-backoffice-backend/clients/repositories"
	inquiry_repositories "tax-backoffice-backend/inquiries/repositories"
	user_repositories "tax-backoffice-backend/users/repositories"

	// Services
	activity_services "tax-backoffice-backend/activities/services"

	// Routes
	activity_routes "tax-backoffice-backend/activities/routes"
	calculation_routes "tax-backoffice-backend/calculations/routes"
	case_routes "tax-backoffice-backend/cases/routes"
	client_routes "tax-backoffice-backend/clients/routes"
	dashboard_routes "tax-backoffice-backend/dashboard/routes"
	import_routes "tax-backoffice-backend/importer/routes"
	inquiry_routes "tax-backoffice-backend/inquiries/routes"
	report_routes "tax-backoffice-backend/reports/routes"
	user_routes "tax-backoffice-backend/users/routes"

	// Search
	search_controllers "tax-backoffice-backend/search/controllers"
	search_repositories "tax-backoffice-backend/search/repositories"
	search_routes "tax-backoffice-backend/search/routes"
	search_services "tax-backoffice-backend/search/services"

	// WebSocket
	"tax-backoffice-backend/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	config.InitLogger()

	if err := godotenv.Load(".env"); err != nil {
		config.Logger.Warn("No .env file found, relying on process environment")
	}

	app := fiber.New()

	middleware.InitCors(app)

	db := config.ConfigureDatabase()
	port := config.GetEnvOrDefault("PORT", "8080")
	ctx := context.Background()

	redisClient := config.InitRedisServer(ctx)

	indexPath := config.GetEnv("BLEVE_INDEX_PATH")
	if indexPath == "" {
		indexPath = "./bleve_data"
		config.Logger.Warn("BLEVE_INDEX_PATH not set, using default: ./bleve_data")
	}

	// WebSocket hub for the live activity stream
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Repositories
	indexingService := search_services.NewIndexingService(config.Logger, indexPath)
	_, searchInterfaceRepo := search_repositories.NewSearchRepository(indexingService)
	userRepo := user_repositories.NewUserRepository(db)
	caseRepo := case_repositories.NewCaseRepository(db)
	clientRepo := client_repositories.NewClientRepository(db)
	calculationRepo := calculation_repositories.NewCalculationRepository(db)
	inquiryRepo := inquiry_repositories.NewInquiryRepository(db)
	activityRepo := activity_repositories.NewActivityRepository(db)

	// Services
	recorder := activity_services.NewRecorder(db, wsHub, redisClient, ctx)

	// Routes
	app.Get("/api/v1/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	user_routes.InitRoutes(app, userRepo, searchInterfaceRepo, db)
	case_routes.CaseRouterInit(app, db, caseRepo, searchInterfaceRepo, recorder)
	client_routes.ClientInitRoutes(app, clientRepo, recorder, db)
	calculation_routes.InitCalculationRoutes(app, calculationRepo, db)
	inquiry_routes.InquiryRouterInit(app, db, inquiryRepo, searchInterfaceRepo)
	activity_routes.InitActivityRoutes(app, activityRepo, recorder, db)
	dashboard_routes.DashboardRouterInit(app, userRepo, caseRepo, calculationRepo, inquiryRepo, clientRepo)
	import_routes.ImportRouterInit(app, db)
	report_routes.ReportRouterInit(app, caseRepo)

	// WebSocket route streaming recorded activities
	wsHandler := websocket.NewWsHandler(wsHub, redisClient, ctx)
	app.Get("/ws", wsHandler.HandleWebSocket)

	// Search routes
	searchController := search_controllers.NewSearchController(indexingService)
	search_routes.InitSearchRoutes(app, searchController)

	// Rebuild the users index from the database when asked to
	if config.GetEnvOrDefault("SEARCH_REINDEX_ON_BOOT", "false") == "true" {
		users, err := userRepo.GetFilteredUsers(map[string]string{})
		if err != nil {
			config.Logger.Error("Failed to load users for reindex", zap.Error(err))
		} else if err := searchInterfaceRepo.IndexExistingUsers(users); err != nil {
			config.Logger.Error("Failed to reindex users", zap.Error(err))
		} else {
			config.Logger.Info("Reindexed users", zap.Int("count", len(users)))
		}
	}

	// Background retention job
	go utils.RunScheduledCleanup(activityRepo, redisClient)

	config.Logger.Info("Server starting", zap.String("port", port))
	config.Logger.Fatal("Server failed", zap.String("port", port), zap.Error(app.Listen(":"+port)))
}
