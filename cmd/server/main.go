package main

import (
	"fmt"
	"log"
	"net/http"

	"fiyo/backend/internal/auth"
	"fiyo/backend/internal/config"
	"fiyo/backend/internal/database"
	"fiyo/backend/internal/handler"
	"fiyo/backend/internal/relation"
	"fiyo/backend/pkg/jwt"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "fiyo/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Fiyo Social API
// @version         1.0
// @description     This is the API for the Fiyo social service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database; the handle is injected into every service,
	// nothing reads it from package state.
	db, err := database.Connect(config.AppConfig.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	tokens := jwt.NewTokenManager(config.AppConfig.AccessTokenSecret, config.AppConfig.RefreshTokenSecret)
	followService := relation.NewFollowService(db)
	mateService := relation.NewMateService(db)
	relationService := relation.NewRelationService(db)

	userHandler := handler.NewUserHandler(db, relationService, tokens)
	connectionHandler := handler.NewConnectionHandler(followService, mateService)
	tokenHandler := handler.NewTokenHandler(db, tokens)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", userHandler.RegisterUser)
			authRoutes.POST("/login", userHandler.LoginUser)
		}

		// Token routes (authenticated by the tokens themselves)
		tokenRoutes := apiV1.Group("/tokens")
		{
			tokenRoutes.POST("/check", tokenHandler.CheckTokens)
			tokenRoutes.POST("/revoke", tokenHandler.RevokeTokens)
		}

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(auth.AuthMiddleware(tokens))
		{
			userRoutes.GET("", userHandler.SearchUsers) // Must be before /:username
			userRoutes.GET("/me", userHandler.GetMe)
			userRoutes.POST("/bulk", userHandler.GetBulkUsers)
			userRoutes.PUT("/update", userHandler.UpdateUser)
			userRoutes.DELETE("/delete", userHandler.DeleteUser)
			userRoutes.GET("/:username", userHandler.GetUserProfile)
		}

		// Connection routes (protected)
		connRoutes := apiV1.Group("")
		connRoutes.Use(auth.AuthMiddleware(tokens))
		{
			// Follow lists
			connRoutes.GET("/followers/:id", connectionHandler.GetFollowers)
			connRoutes.GET("/following/:id", connectionHandler.GetFollowing)
			connRoutes.GET("/pending/follow_requests", connectionHandler.GetPendingFollowRequests)

			// Follow actions
			connRoutes.POST("/send/follow_request", connectionHandler.SendFollowRequest)
			connRoutes.POST("/unsend/follow_request", connectionHandler.UnsendFollowRequest)
			connRoutes.POST("/accept/follow_request", connectionHandler.AcceptFollowRequest)
			connRoutes.POST("/reject/follow_request", connectionHandler.RejectFollowRequest)
			connRoutes.POST("/unfollow", connectionHandler.Unfollow)

			// Mate lists
			connRoutes.GET("/mates", connectionHandler.GetMates)
			connRoutes.GET("/pending/mate_requests", connectionHandler.GetPendingMateRequests)

			// Mate actions
			connRoutes.POST("/send/mate_request", connectionHandler.SendMateRequest)
			connRoutes.POST("/unsend/mate_request", connectionHandler.UnsendMateRequest)
			connRoutes.POST("/accept/mate_request", connectionHandler.AcceptMateRequest)
			connRoutes.POST("/reject/mate_request", connectionHandler.RejectMateRequest)
			connRoutes.POST("/remove/mate", connectionHandler.RemoveMate)
		}
	}

	fmt.Printf("Server is running on %s\n", config.AppConfig.ServerAddr)
	fmt.Println("Swagger UI is available at http://localhost:8080/swagger/index.html")
	log.Fatal(router.Run(config.AppConfig.ServerAddr))
}
