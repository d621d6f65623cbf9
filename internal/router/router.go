package router

import (
	"time"

	"github.com/sndservices/snd-crm-backend/internal/config"
	"github.com/sndservices/snd-crm-backend/internal/database/repository"
	"github.com/sndservices/snd-crm-backend/internal/handlers"
	"github.com/sndservices/snd-crm-backend/internal/middleware"
	"github.com/sndservices/snd-crm-backend/internal/services"
	"github.com/sndservices/snd-crm-backend/internal/services/auth"
	"github.com/sndservices/snd-crm-backend/internal/services/excel"
	"github.com/sndservices/snd-crm-backend/internal/services/token"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin router with all API routes
func SetupRouter(db *gorm.DB, cfg *config.Config, tokens *token.Service, cache services.Cache, events *services.EventService) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-New-Access-Token"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	organizationRepo := repository.NewOrganizationRepository(db)
	franchiseeRepo := repository.NewFranchiseeRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	clientRepo := repository.NewClientRepository(db)
	jobRepo := repository.NewJobRepository(db)

	// Services
	authService := auth.NewAuthService(userRepo, roleRepo, tokens, cfg)
	organizationService := services.NewOrganizationService(organizationRepo)
	franchiseeService := services.NewFranchiseeService(franchiseeRepo, organizationRepo)
	branchService := services.NewBranchService(branchRepo, franchiseeRepo)
	clientService := services.NewClientService(clientRepo, branchRepo, cache)
	jobService := services.NewJobService(jobRepo, clientRepo, userRepo)
	roleService := services.NewRoleService(roleRepo, userRepo, organizationRepo)
	excelService := excel.NewExcelService(clientRepo, branchRepo, config.GetEnv("EXPORTS_DIR", "exports"))

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(authService, cfg)
	ownerMiddleware := middleware.NewOwnerMiddleware(roleRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, cfg, events)
	organizationHandler := handlers.NewOrganizationHandler(organizationService)
	franchiseeHandler := handlers.NewFranchiseeHandler(franchiseeService)
	branchHandler := handlers.NewBranchHandler(branchService)
	clientHandler := handlers.NewClientHandler(clientService, excelService)
	jobHandler := handlers.NewJobHandler(jobService)
	roleHandler := handlers.NewRoleHandler(roleService)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes
	api := r.Group("/api/v1")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
				"time":   time.Now().Format(time.RFC3339),
			})
		})

		// Auth routes (public)
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh", authHandler.Refresh)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(authMiddleware.RequireAuth())
		{
			authProtected := protected.Group("/auth")
			{
				authProtected.POST("/logout", authHandler.Logout)
				authProtected.GET("/me", authHandler.Me)
			}

			organizations := protected.Group("/organizations")
			{
				organizations.POST("", organizationHandler.Create)
				organizations.GET("", organizationHandler.List)
				organizations.GET("/:org_id", organizationHandler.Get)
				organizations.GET("/:org_id/franchisees", franchiseeHandler.ListByOrganization)

				// Owner-only organization administration
				ownerOnly := organizations.Group("/:org_id")
				ownerOnly.Use(ownerMiddleware.RequireOrganizationOwner())
				{
					ownerOnly.PUT("", organizationHandler.Update)
					ownerOnly.DELETE("", organizationHandler.Delete)
					ownerOnly.POST("/roles", roleHandler.Assign)
				}
			}

			franchisees := protected.Group("/franchisees")
			{
				franchisees.POST("", franchiseeHandler.Create)
				franchisees.GET("/:id", franchiseeHandler.Get)
				franchisees.PUT("/:id", franchiseeHandler.Update)
				franchisees.DELETE("/:id", franchiseeHandler.Delete)
				franchisees.GET("/:id/branches", branchHandler.ListByFranchisee)
			}

			branches := protected.Group("/branches")
			{
				branches.POST("", branchHandler.Create)
				branches.GET("/:id", branchHandler.Get)
				branches.PUT("/:id", branchHandler.Update)
				branches.DELETE("/:id", branchHandler.Delete)
			}

			clients := protected.Group("/clients")
			{
				clients.POST("", clientHandler.Create)
				clients.GET("", clientHandler.List)
				clients.GET("/export", clientHandler.Export)
				clients.GET("/:id", clientHandler.Get)
				clients.PUT("/:id", clientHandler.Update)
				clients.DELETE("/:id", clientHandler.Delete)
				clients.GET("/:id/jobs", jobHandler.ListByClient)
			}

			jobs := protected.Group("/jobs")
			{
				jobs.POST("", jobHandler.Create)
				jobs.GET("", jobHandler.List)
				jobs.GET("/:id", jobHandler.Get)
				jobs.PUT("/:id", jobHandler.Update)
				jobs.PUT("/:id/status", jobHandler.UpdateStatus)
				jobs.DELETE("/:id", jobHandler.Delete)
			}

			roles := protected.Group("/roles")
			{
				roles.GET("", roleHandler.List)
				roles.GET("/me", roleHandler.UserRoles)
			}
		}
	}

	return r
}
