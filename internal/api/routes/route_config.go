package routes

import (
	"cookbook-backend/internal/api/handlers"
	"cookbook-backend/internal/middleware"
	"cookbook-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	FollowHandler       handlers.FollowHandler
	RecipeHandler       handlers.RecipeHandler
	LikeHandler         handlers.LikeHandler
	BookmarkHandler     handlers.BookmarkHandler
	RatingHandler       handlers.RatingHandler
	CommentHandler      handlers.CommentHandler
	NotificationHandler handlers.NotificationHandler
	HistoryHandler      handlers.HistoryHandler
	UploadHandler       handlers.UploadHandler
	AIHandler           handlers.AIHandler
	AdminHandler        handlers.AdminHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Auth()
	c.User()
	c.Recipe()
	c.Notification()
	c.SearchHistory()
	c.Upload()
	c.AI()
	c.Admin()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/auth")
	{
		auth.Post("/send-otp", c.UserHandler.SendOTP)
		auth.Post("/register", c.UserHandler.Register)
		auth.Post("/login", c.UserHandler.Login)
		auth.Post("/forgot-password", c.UserHandler.ForgotPassword)
		auth.Post("/reset-password", c.UserHandler.ResetPassword)
	}
}

func (c *Config) User() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	user := c.App.Group("/api/users")
	{
		user.Get("/me", auth, c.UserHandler.Me)
		user.Put("/me", auth, c.UserHandler.UpdateMe)
		user.Put("/me/password", auth, c.UserHandler.ChangePassword)
		user.Get("/exists", c.UserHandler.EmailExists)

		user.Post("/:id/follow", auth, c.FollowHandler.Follow)
		user.Delete("/:id/follow", auth, c.FollowHandler.Unfollow)
		user.Get("/:id/followers", c.FollowHandler.Followers)
		user.Get("/:id/following", c.FollowHandler.Following)
		user.Get("/:id/is-following", auth, c.FollowHandler.IsFollowing)
		user.Get("/:id/follow-stats", c.FollowHandler.Stats)
		user.Get("/:id", c.UserHandler.GetUser)
	}
}

func (c *Config) Recipe() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	recipes := c.App.Group("/api/recipes", c.Middleware.OptionalAuthMiddleware(c.JWTService))

	// static paths first so they are not captured by /:id
	recipes.Get("", c.RecipeHandler.ListRecipes)
	recipes.Post("", auth, c.RecipeHandler.CreateRecipe)
	recipes.Get("/search", c.RecipeHandler.SearchRecipes)
	recipes.Get("/filter", c.RecipeHandler.FilterRecipes)
	recipes.Get("/user/:userId", c.RecipeHandler.GetRecipesByUser)
	recipes.Get("/my-recipes", auth, c.RecipeHandler.GetMyRecipes)
	recipes.Get("/following-feed", auth, c.RecipeHandler.GetFollowingFeed)
	recipes.Get("/liked", auth, c.RecipeHandler.GetLikedRecipes)
	recipes.Get("/liked/ids", auth, c.LikeHandler.LikedRecipeIDs)
	recipes.Get("/bookmarked", auth, c.RecipeHandler.GetBookmarkedRecipes)
	recipes.Get("/bookmarked/ids", auth, c.BookmarkHandler.BookmarkedRecipeIDs)
	recipes.Get("/recently-viewed", auth, c.RecipeHandler.GetRecentlyViewed)
	recipes.Delete("/recently-viewed", auth, c.RecipeHandler.ClearRecentlyViewed)
	recipes.Delete("/recently-viewed/:recipeId", auth, c.RecipeHandler.RemoveRecentlyViewed)
	recipes.Put("/comments/:commentId", auth, c.CommentHandler.UpdateComment)
	recipes.Delete("/comments/:commentId", auth, c.CommentHandler.DeleteComment)

	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
	recipes.Put("/:id", auth, c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", auth, c.RecipeHandler.DeleteRecipe)

	recipes.Post("/:id/like", auth, c.LikeHandler.Like)
	recipes.Delete("/:id/like", auth, c.LikeHandler.Unlike)
	recipes.Post("/:id/toggle-like", auth, c.LikeHandler.ToggleLike)
	recipes.Get("/:id/is-liked", auth, c.LikeHandler.IsLiked)

	recipes.Post("/:id/bookmark", auth, c.BookmarkHandler.Bookmark)
	recipes.Delete("/:id/bookmark", auth, c.BookmarkHandler.RemoveBookmark)
	recipes.Post("/:id/toggle-bookmark", auth, c.BookmarkHandler.ToggleBookmark)
	recipes.Get("/:id/is-bookmarked", auth, c.BookmarkHandler.IsBookmarked)

	recipes.Get("/:id/ratings", c.RatingHandler.ListRatings)
	recipes.Post("/:id/ratings", auth, c.RatingHandler.Rate)
	recipes.Delete("/:id/ratings", auth, c.RatingHandler.DeleteRating)
	recipes.Get("/:id/ratings/my-rating", auth, c.RatingHandler.MyRating)
	recipes.Get("/:id/ratings/stats", c.RatingHandler.Stats)

	recipes.Get("/:id/comments", c.CommentHandler.ListComments)
	recipes.Post("/:id/comments", auth, c.CommentHandler.AddComment)
}

func (c *Config) Notification() {
	notifications := c.App.Group("/api/notifications", c.Middleware.AuthMiddleware(c.JWTService))
	{
		notifications.Get("", c.NotificationHandler.GetNotifications)
		notifications.Get("/unread", c.NotificationHandler.GetUnread)
		notifications.Get("/unread/count", c.NotificationHandler.CountUnread)
		notifications.Put("/read-all", c.NotificationHandler.MarkAllRead)
		notifications.Put("/:id/read", c.NotificationHandler.MarkRead)
		notifications.Delete("", c.NotificationHandler.DeleteAll)
		notifications.Delete("/:id", c.NotificationHandler.Delete)
	}
}

func (c *Config) SearchHistory() {
	history := c.App.Group("/api/search-history", c.Middleware.AuthMiddleware(c.JWTService))
	{
		history.Get("", c.HistoryHandler.GetSearchHistory)
		history.Post("", c.HistoryHandler.SaveSearch)
		history.Delete("", c.HistoryHandler.ClearSearchHistory)
		history.Delete("/query", c.HistoryHandler.DeleteSearchQuery)
		history.Get("/stats", c.HistoryHandler.SearchStats)
	}
}

func (c *Config) Upload() {
	upload := c.App.Group("/api/upload", c.Middleware.AuthMiddleware(c.JWTService))
	{
		upload.Post("/image", c.UploadHandler.UploadImage)
		upload.Post("/images", c.UploadHandler.UploadImages)
	}
}

func (c *Config) AI() {
	c.App.Post("/api/ai/chat", c.Middleware.AuthMiddleware(c.JWTService), c.AIHandler.Chat)
}

func (c *Config) Admin() {
	admin := c.App.Group("/api/admin", c.Middleware.AuthMiddleware(c.JWTService), c.Middleware.AdminMiddleware())
	{
		admin.Post("/recipes", c.AdminHandler.CreateRecipe)
		admin.Post("/recipes/bulk", c.AdminHandler.BulkCreateRecipes)
		admin.Put("/recipes/:id", c.AdminHandler.UpdateRecipe)
		admin.Delete("/recipes/:id", c.AdminHandler.DeleteRecipe)
		admin.Get("/users", c.AdminHandler.ListUsers)
		admin.Delete("/users/:id", c.AdminHandler.DeleteUser)
	}
}
