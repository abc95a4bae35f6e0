package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/workshop-manager/workshop-manager/internal/config"
	"github.com/workshop-manager/workshop-manager/internal/constants"
	"github.com/workshop-manager/workshop-manager/internal/database"
	"github.com/workshop-manager/workshop-manager/internal/handlers"
	"github.com/workshop-manager/workshop-manager/internal/logger"
	"github.com/workshop-manager/workshop-manager/internal/middleware"
	"github.com/workshop-manager/workshop-manager/internal/repository"
	"github.com/workshop-manager/workshop-manager/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if err := logger.Init(cfg.GinMode != "release"); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logger.Fatal("Failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations")
	}

	if cfg.SeedChief {
		database.SeedDefaultChief()
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		logger.Fatal("Failed to create Redis store")
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	orderRepo := repository.NewRepairOrderRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, employeeRepo)
	customerService := services.NewCustomerService(customerRepo)
	vehicleService := services.NewVehicleService(vehicleRepo)
	employeeService := services.NewEmployeeService(employeeRepo)
	catalogService := services.NewServiceCatalogService(serviceRepo)
	orderService := services.NewRepairOrderService(orderRepo)
	taskService := services.NewTaskService(taskRepo, userRepo, orderRepo)
	reportService := services.NewReportService(orderRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	vehicleHandler := handlers.NewVehicleHandler(vehicleService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	catalogHandler := handlers.NewServiceCatalogHandler(catalogService)
	orderHandler := handlers.NewRepairOrderHandler(orderService, authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	reportHandler := handlers.NewReportHandler(reportService)
	dashboardHandler := handlers.NewDashboardHandler(orderService, taskService, reportService, authService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Workshop Manager API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// All remaining routes require a session and a resolved capability
		protected := api.Group("")
		protected.Use(middleware.RequireAuth(), middleware.InjectCapability(authService))

		mechanic := middleware.RequireCapability(services.CapabilityMechanic)
		supervisor := middleware.RequireCapability(services.CapabilitySupervisor)
		chief := middleware.RequireCapability(services.CapabilityChief)

		customers := protected.Group("/customers")
		customers.Use(mechanic)
		{
			customers.POST("", customerHandler.CreateCustomer)
			customers.GET("", customerHandler.ListCustomers)
			customers.GET("/:id", customerHandler.GetCustomer)
			customers.PATCH("/:id", customerHandler.UpdateCustomer)
			customers.DELETE("/:id", supervisor, customerHandler.DeleteCustomer)
		}

		vehicles := protected.Group("/vehicles")
		vehicles.Use(mechanic)
		{
			vehicles.POST("", vehicleHandler.CreateVehicle)
			vehicles.GET("", vehicleHandler.ListVehicles)
			vehicles.GET("/:id", vehicleHandler.GetVehicle)
			vehicles.PATCH("/:id", vehicleHandler.UpdateVehicle)
			vehicles.DELETE("/:id", supervisor, vehicleHandler.DeleteVehicle)
		}

		employees := protected.Group("/employees")
		employees.Use(supervisor)
		{
			employees.POST("", chief, employeeHandler.CreateEmployee)
			employees.GET("", employeeHandler.ListEmployees)
			employees.GET("/:id", employeeHandler.GetEmployee)
			employees.PATCH("/:id", chief, employeeHandler.UpdateEmployee)
			employees.DELETE("/:id", chief, employeeHandler.DeleteEmployee)
		}

		catalog := protected.Group("/services")
		catalog.Use(mechanic)
		{
			catalog.POST("", supervisor, catalogHandler.CreateService)
			catalog.GET("", catalogHandler.ListServices)
			catalog.GET("/:id", catalogHandler.GetService)
			catalog.PATCH("/:id", supervisor, catalogHandler.UpdateService)
			catalog.DELETE("/:id", supervisor, catalogHandler.DeleteService)
		}

		orders := protected.Group("/repair-orders")
		orders.Use(mechanic)
		{
			orders.POST("", orderHandler.CreateRepairOrder)
			orders.GET("", orderHandler.ListRepairOrders)
			orders.GET("/available", orderHandler.ListAvailableRepairOrders)
			orders.GET("/:id", orderHandler.GetRepairOrder)
			orders.POST("/:id/claim", orderHandler.ClaimRepairOrder)
			orders.PATCH("/:id", orderHandler.UpdateRepairOrder)
			orders.DELETE("/:id", supervisor, orderHandler.DeleteRepairOrder)
		}

		tasks := protected.Group("/tasks")
		tasks.Use(mechanic)
		{
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.PATCH("/:id/status", taskHandler.ChangeTaskStatus)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.POST("/:id/comments", taskHandler.CommentTask)
			tasks.GET("/:id/history", taskHandler.ListTaskHistory)
		}

		reports := protected.Group("/reports")
		reports.Use(chief)
		{
			reports.GET("/income", reportHandler.MonthlyIncome)
		}

		dashboard := protected.Group("/dashboard")
		{
			dashboard.GET("/chief", chief, dashboardHandler.ChiefDashboard)
			dashboard.GET("/mechanic", mechanic, dashboardHandler.MechanicDashboard)
		}
	}

	// Start server
	addr := ":" + cfg.HTTPPort
	logger.Info("server starting on " + addr)
	if err := r.Run(addr); err != nil {
		logger.Fatal("Failed to start server")
	}
}
