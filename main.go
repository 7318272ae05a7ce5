package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"penpal/config"
	"penpal/database"
	"penpal/handlers"
	"penpal/middleware"
	"penpal/store"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.MysqlDSN)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	if err := database.CreateTables(db); err != nil {
		logrus.WithError(err).Fatal("failed to create tables")
	}

	users := store.NewUserStore(db)
	friends := store.NewFriendStore(db, users)
	messages := store.NewMessageStore(db, users, friends)

	authHandler := handlers.NewAuthHandler(users, cfg)
	userHandler := handlers.NewUserHandler(users)
	friendHandler := handlers.NewFriendHandler(friends)
	messageHandler := handlers.NewMessageHandler(messages)

	r := gin.Default()

	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", middleware.Auth(cfg.JWTSecret), authHandler.Refresh)
	}

	userRoutes := r.Group("/api/users")
	userRoutes.Use(middleware.Auth(cfg.JWTSecret))
	{
		userRoutes.GET("", userHandler.GetAllUsers)
		userRoutes.GET("/me", userHandler.GetCurrentUser)
		userRoutes.GET("/search", userHandler.SearchUsers)
	}

	friendRoutes := r.Group("/api/friends")
	friendRoutes.Use(middleware.Auth(cfg.JWTSecret))
	{
		friendRoutes.GET("", friendHandler.GetFriends)
		friendRoutes.GET("/requests", friendHandler.GetReceivedRequests)
		friendRoutes.GET("/requests/sent", friendHandler.GetSentRequests)
		friendRoutes.POST("/request", friendHandler.SendRequest)
		friendRoutes.POST("/accept/:user_id", friendHandler.AcceptRequest)
		friendRoutes.POST("/reject/:user_id", friendHandler.RejectRequest)
		friendRoutes.DELETE("/:user_id", friendHandler.RemoveFriend)
	}

	messageRoutes := r.Group("/api/messages")
	messageRoutes.Use(middleware.Auth(cfg.JWTSecret))
	{
		messageRoutes.GET("/:user_id", messageHandler.GetHistory)
		messageRoutes.POST("/:user_id", messageHandler.SendMessage)
	}

	logrus.WithField("addr", cfg.ServerAddr).Info("server starting")
	if err := r.Run(cfg.ServerAddr); err != nil {
		logrus.WithError(err).Fatal("failed to start server")
	}
}
