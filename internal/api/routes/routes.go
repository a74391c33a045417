package routes

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"petoverflow/internal/adapters/storage"
	"petoverflow/internal/api/handlers"
	"petoverflow/internal/api/middleware"
	"petoverflow/internal/database"
	"petoverflow/internal/repository"
	"petoverflow/internal/service"
)

type Router struct {
	engine          *gin.Engine
	authHandler     *handlers.AuthHandler
	questionHandler *handlers.QuestionHandler
	answerHandler   *handlers.AnswerHandler
	topicHandler    *handlers.TopicHandler
	userHandler     *handlers.UserHandler
	rateLimitMW     *middleware.RateLimitMiddleware
	authMW          *middleware.AuthMiddleware
}

func NewRouter(
	db *gorm.DB,
	redisClient *database.RedisClient,
	smsPublisher service.SmsPublisher,
	storageClient *storage.MinIOClient,
	jwtSecret string,
	logger *slog.Logger,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.CORS())
	engine.Use(middleware.LogApi())

	userRepo := repository.NewUserRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	topicRepo := repository.NewTopicRepository(db)
	questionVoteRepo := repository.NewQuestionVoteRepository(db)
	answerVoteRepo := repository.NewAnswerVoteRepository(db)

	ratingService := service.NewRatingService(questionRepo, answerRepo, topicRepo, questionVoteRepo, answerVoteRepo)
	voteService := service.NewVoteService(questionRepo, answerRepo, questionVoteRepo, answerVoteRepo)
	notificationService := service.NewNotificationService(userRepo, smsPublisher, logger)
	questionService := service.NewQuestionService(questionRepo, topicRepo, questionVoteRepo, ratingService, notificationService, logger)
	answerService := service.NewAnswerService(questionRepo, answerRepo, answerVoteRepo, ratingService, logger)
	topicService := service.NewTopicService(topicRepo, ratingService, logger)
	userService := service.NewUserService(userRepo, ratingService, jwtSecret, logger)

	return &Router{
		engine:          engine,
		authHandler:     handlers.NewAuthHandler(userService),
		questionHandler: handlers.NewQuestionHandler(questionService, answerService, voteService),
		answerHandler:   handlers.NewAnswerHandler(answerService, voteService),
		topicHandler:    handlers.NewTopicHandler(topicService, questionService),
		userHandler:     handlers.NewUserHandler(userService, questionService, answerService, storageClient),
		rateLimitMW:     middleware.NewRateLimitMiddleware(redisClient),
		authMW:          middleware.NewAuthMiddleware(jwtSecret),
	}
}

func (r *Router) SetupRoutes() {
	r.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.engine.Group("/api/v1")

	// Public routes (no authentication required)
	public := api.Group("/")
	{
		authRoutes := public.Group("/auth")
		authRoutes.Use(r.rateLimitMW.RateLimitIP(50, time.Minute))
		{
			authRoutes.POST("/register", r.authHandler.Register)
			authRoutes.POST("/login", r.authHandler.Login)
		}
	}

	// Authenticated routes
	auth := api.Group("/")
	auth.Use(r.authMW.RequireAuth())
	{
		questions := auth.Group("/questions")
		questions.Use(r.rateLimitMW.RateLimit(100, time.Minute))
		{
			questions.GET("", r.questionHandler.Newest)
			questions.GET("/best", r.questionHandler.Best)
			questions.POST("", r.questionHandler.Ask)
			questions.GET("/:id", r.questionHandler.GetQuestion)
			questions.GET("/:id/answers", r.questionHandler.Answers)
			questions.POST("/:id/answers", r.questionHandler.PostAnswer)
			questions.PUT("/:id/vote", r.questionHandler.Vote)
		}

		answers := auth.Group("/answers")
		answers.Use(r.rateLimitMW.RateLimit(100, time.Minute))
		{
			answers.GET("/:id", r.answerHandler.GetAnswer)
			answers.PUT("/:id/vote", r.answerHandler.Vote)
		}

		topics := auth.Group("/topics")
		topics.Use(r.rateLimitMW.RateLimit(100, time.Minute))
		{
			topics.GET("", r.topicHandler.AllTopics)
			topics.GET("/popular", r.topicHandler.PopularTopics)
			topics.GET("/:topic/questions", r.topicHandler.Questions)
		}

		users := auth.Group("/users")
		users.Use(r.rateLimitMW.RateLimit(100, time.Minute))
		{
			users.GET("/profile", r.userHandler.GetProfile)
			users.PUT("/profile", r.userHandler.UpdateProfile)
			users.POST("/profile/photo", r.userHandler.UploadPhoto)
			users.GET("/leaders", r.userHandler.Leaders)
			users.GET("/:id", r.userHandler.GetUser)
			users.GET("/:id/questions", r.userHandler.Questions)
			users.GET("/:id/answers", r.userHandler.Answers)
		}
	}
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
