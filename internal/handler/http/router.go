package http

import (
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dcastillo/user-service/internal/domain/entity"
	"github.com/dcastillo/user-service/internal/handler/http/middleware"
	"github.com/dcastillo/user-service/internal/usecase"
	usecasecontract "github.com/dcastillo/user-service/internal/usecase/contract"
)

type Router struct {
	userHandler *UserHandler
	authHandler *AuthHandler
	jwtService  usecase.JWTService
}

func NewRouter(userUsecase usecasecontract.IUserUseCase, jwtService usecase.JWTService) *Router {
	return &Router{
		userHandler: NewUserHandler(userUsecase),
		authHandler: NewAuthHandler(userUsecase),
		jwtService:  jwtService,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	// rate limiter configuration
	lmt := tollbooth.NewLimiter(10, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
	lmt.SetIPLookups([]string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"})
	lmt.SetMessage("Too many requests, please try again later.")
	router.Use(middleware.RateLimiter(lmt))
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	// Static pages the activation flow redirects to
	router.Static("/public", "./public")

	// Authentication (no bearer token required)
	auth := router.Group("/api/auth")
	{
		auth.POST("", r.authHandler.Authenticate)
	}

	users := router.Group("/api/users")

	// Public user routes: registration and activation links
	users.POST("/create", r.userHandler.CreateUser)
	users.GET("/activate/:token", r.userHandler.Activate)

	// Bearer-token routes
	protected := users.Group("")
	protected.Use(middleware.AuthMiddleWare(r.jwtService))
	{
		protected.GET("/getAll", r.userHandler.GetAllUsers)
		protected.GET("/getById/:userId", r.userHandler.GetUserByID)
		protected.GET("/getByName/:userName", r.userHandler.GetUsersByName)
		protected.PUT("/changePassword", r.userHandler.ChangePassword)

		// Administrator-only mutations
		admin := protected.Group("")
		admin.Use(middleware.RequireRole(entity.UserRoleAdmin))
		{
			admin.PUT("/update/:userId", r.userHandler.UpdateUser)
			admin.DELETE("/deleteById/:userId", r.userHandler.DeleteUserByID)
		}
	}
}
