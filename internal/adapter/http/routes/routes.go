package routes

import (
	_ "satici_paneli/docs" // This will be auto-generated
	"satici_paneli/internal/adapter/http/handlers"
	"satici_paneli/internal/adapter/http/middleware"
	"satici_paneli/internal/adapter/persistence/repository"
	"satici_paneli/internal/infrastructure/auth"
	"satici_paneli/internal/infrastructure/database"
	"satici_paneli/internal/infrastructure/logging"
	"satici_paneli/internal/usecase"
	"strconv"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	logging.Setup()
	logger := logging.Component("routes")

	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	if err := router.Run(":" + strconv.Itoa(PORT)); err != nil {
		logger.Fatalf("failed to start the application: %v", err)
	}
}

func getRoutes() {
	logger := logging.Component("routes")

	ddb := database.ConnectDynamoDB()

	orderRepo := repository.NewOrderDynamoRepository(ddb)
	vendorRepo := repository.NewVendorDynamoRepository(ddb)
	productStatsRepo := repository.NewProductStatsDynamoRepository(ddb)

	tokens, err := auth.NewTokenManagerFromEnv()
	if err != nil {
		logger.Fatalf("token manager not configured: %v", err)
	}

	identityUseCase := usecase.NewIdentityUseCase(tokens, vendorRepo)
	orderUseCase := usecase.NewOrderUseCase(orderRepo)
	dashboardUseCase := usecase.NewDashboardUseCase(orderRepo, productStatsRepo)

	orderHandler := handlers.NewOrderHandler(orderUseCase)
	dashboardHandler := handlers.NewDashboardHandler(dashboardUseCase)

	api := router.Group("/api")
	addPingRoutes(api)

	// Every panel endpoint requires a resolved, approved vendor.
	protected := api.Group("")
	protected.Use(middleware.Authenticate(identityUseCase), middleware.RequireApproved())
	addOrderRoutes(protected, orderHandler)
	addDashboardRoutes(protected, dashboardHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logging.Component("http").Errorf("recovered from panic: %v", recovered)
		c.AbortWithStatusJSON(500, gin.H{"success": false, "message": "Sunucu hatası"})
	}))
}
