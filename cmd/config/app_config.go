package config

import (
	"context"
	"cookbook-backend/domain"
	"cookbook-backend/internal/api/handlers"
	"cookbook-backend/internal/api/presenters"
	"cookbook-backend/internal/api/routes"
	"cookbook-backend/internal/middleware"
	"cookbook-backend/internal/utils"
	"cookbook-backend/internal/utils/mailing"
	"cookbook-backend/internal/utils/storage"
	"cookbook-backend/pkg/ai"
	"cookbook-backend/pkg/bookmark"
	"cookbook-backend/pkg/comment"
	"cookbook-backend/pkg/database"
	"cookbook-backend/pkg/follow"
	"cookbook-backend/pkg/history"
	"cookbook-backend/pkg/jwt"
	"cookbook-backend/pkg/like"
	"cookbook-backend/pkg/notification"
	"cookbook-backend/pkg/otp"
	"cookbook-backend/pkg/rating"
	"cookbook-backend/pkg/recipe"
	"cookbook-backend/pkg/user"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const defaultUploadMaxMB = 5

func NewApp(db *gorm.DB, rdb redis.UniversalClient) (*fiber.App, error) {
	utils.InitValidator()
	uploadMaxBytes := uploadLimit()

	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
		JSONEncoder:       json.Marshal,
		JSONDecoder:       json.Unmarshal,
		// multi-image uploads carry several files in one body
		BodyLimit:    int(uploadMaxBytes)*10 + 1<<20,
		ErrorHandler: errorHandler,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, fmt.Errorf("open access log: %w", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3, err := storage.NewAwsS3(context.Background())
	if err != nil {
		return nil, err
	}
	mailer := mailing.NewMailer(mailing.LoadMailConfig())
	otpStore := otp.NewRedisStore(rdb, otp.DefaultOptions())
	transactor := database.NewTransactor(db)

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	historyRepository := history.NewHistoryRepository(db)
	notificationRepository := notification.NewNotificationRepository(db)
	likeRepository := like.NewLikeRepository(db)
	bookmarkRepository := bookmark.NewBookmarkRepository(db)
	ratingRepository := rating.NewRatingRepository(db)
	commentRepository := comment.NewCommentRepository(db)
	followRepository := follow.NewFollowRepository(db)

	// Service
	jwtService := jwt.NewJWTService(utils.GetConfig("JWT_SECRET"))
	historyService := history.NewHistoryService(historyRepository)
	notificationService := notification.NewNotificationService(notificationRepository)
	recipeService := recipe.NewRecipeService(recipeRepository, historyService, transactor)
	userService := user.NewUserService(userRepository, recipeRepository, jwtService, otpStore, mailer, transactor)
	likeService := like.NewLikeService(likeRepository, recipeRepository, notificationService, transactor)
	bookmarkService := bookmark.NewBookmarkService(bookmarkRepository, recipeRepository, notificationService, transactor)
	ratingService := rating.NewRatingService(ratingRepository, recipeRepository, notificationService, transactor)
	commentService := comment.NewCommentService(commentRepository, recipeRepository, notificationService, transactor)
	followService := follow.NewFollowService(followRepository, userRepository, notificationService, transactor)
	aiService := ai.NewAIService(ai.DefaultOptions(utils.GetConfig("AI_SERVICE_URL")))

	// Handler
	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         handlers.NewUserHandler(userService, validator),
		FollowHandler:       handlers.NewFollowHandler(followService),
		RecipeHandler:       handlers.NewRecipeHandler(recipeService, validator),
		LikeHandler:         handlers.NewLikeHandler(likeService),
		BookmarkHandler:     handlers.NewBookmarkHandler(bookmarkService),
		RatingHandler:       handlers.NewRatingHandler(ratingService),
		CommentHandler:      handlers.NewCommentHandler(commentService, validator),
		NotificationHandler: handlers.NewNotificationHandler(notificationService),
		HistoryHandler:      handlers.NewHistoryHandler(historyService, validator),
		UploadHandler:       handlers.NewUploadHandler(s3, uploadMaxBytes),
		AIHandler:           handlers.NewAIHandler(aiService, validator),
		AdminHandler:        handlers.NewAdminHandler(recipeService, userService, validator),
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()
	return app, nil
}

func uploadLimit() int64 {
	mb, err := strconv.Atoi(utils.GetConfigOr("UPLOAD_MAX_MB", strconv.Itoa(defaultUploadMaxMB)))
	if err != nil || mb <= 0 {
		mb = defaultUploadMaxMB
	}
	return int64(mb) << 20
}

func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return presenters.ErrorResponse(c, fe.Code, fe.Message, err)
	}
	return presenters.HandleError(c, domain.MessageInternalError, err)
}
