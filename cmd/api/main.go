package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	handlerHttp "github.com/dcastillo/user-service/internal/handler/http"
	rediscache "github.com/dcastillo/user-service/internal/infrastructure/cache"
	"github.com/dcastillo/user-service/internal/infrastructure/config"
	"github.com/dcastillo/user-service/internal/infrastructure/database"
	"github.com/dcastillo/user-service/internal/infrastructure/external_services"
	"github.com/dcastillo/user-service/internal/infrastructure/jwt"
	"github.com/dcastillo/user-service/internal/infrastructure/logger"
	passwordservice "github.com/dcastillo/user-service/internal/infrastructure/password_service"
	randomgenerator "github.com/dcastillo/user-service/internal/infrastructure/random_generator"
	"github.com/dcastillo/user-service/internal/infrastructure/repository/mongodb"
	"github.com/dcastillo/user-service/internal/infrastructure/store"
	"github.com/dcastillo/user-service/internal/infrastructure/validator"
	"github.com/dcastillo/user-service/internal/usecase"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI environment variable not set")
	}
	dbName := os.Getenv("MONGODB_DB_NAME")
	if dbName == "" {
		log.Fatal("MONGODB_DB_NAME environment variable not set")
	}

	mongoClient, err := database.NewMongoDBClient(mongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect()

	// SMTP settings for the activation email
	smtpHost := os.Getenv("EMAIL_HOST")
	smtpPort := os.Getenv("EMAIL_PORT")
	smtpUsername := os.Getenv("EMAIL_USERNAME")
	smtpPassword := os.Getenv("EMAIL_APP_PASSWORD")
	smtpFrom := os.Getenv("EMAIL_FROM")

	router := gin.Default()

	// Dependency Injection: repository
	db := mongoClient.Client.Database(dbName)
	userRepo := mongodb.NewMongoUserRepository(db.Collection("users"), db.Collection("counters"))
	if err := userRepo.EnsureIndexes(context.Background()); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Dependency Injection: services
	appConfig := config.NewConfig()
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}
	jwtService := jwt.NewJWTManager(jwtSecret, appConfig.GetTokenExpiry())
	hasher := passwordservice.NewHasher()
	appLogger := logger.NewStdLogger()
	mailService := external_services.NewEmailService(smtpHost, smtpPort, smtpUsername, smtpPassword, smtpFrom)
	codeGenerator := randomgenerator.NewActivationCodeGenerator()
	appValidator := validator.NewValidator()

	// Dependency Injection: usecase
	userUsecase := usecase.NewUserUsecase(userRepo, hasher, jwtService, mailService, codeGenerator, appLogger, appConfig, appValidator)

	// Optional Dependency Injection: redis cache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		if rdb := rediscache.NewRedisFromURL(context.Background(), redisURL); rdb != nil {
			defer rediscache.Close(rdb)
			userUsecase.SetUserCache(store.NewUserCacheStore(rdb))
		}
	}

	appRouter := handlerHttp.NewRouter(userUsecase, jwtService)
	appRouter.SetupRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	log.Printf("Server running on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
