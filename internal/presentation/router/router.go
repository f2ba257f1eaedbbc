package router

import (
	_ "gitviz-backend/docs"
	"gitviz-backend/internal/middleware"
	"gitviz-backend/internal/presentation/handlers"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// New builds the gateway router relaying to the given GitHub accessors
func New(github handlers.GitHubService) *gin.Engine {
	healthHandler := handlers.NewHealthHandler()
	userHandler := handlers.NewUserHandler(github)
	repositoryHandler := handlers.NewRepositoryHandler(github)

	router := gin.New()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())

	router.GET("/", healthHandler.Health)

	api := router.Group("/api")
	{
		users := api.Group("/user/:username")
		{
			users.GET("", userHandler.GetUser)
			users.GET("/repos", userHandler.GetUserRepositories)
			users.GET("/starred", userHandler.GetUserStarred)
		}

		repos := api.Group("/repos/:owner/:repo")
		{
			repos.GET("/tree", repositoryHandler.GetTree)
			repos.GET("/languages", repositoryHandler.GetLanguages)
		}
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
