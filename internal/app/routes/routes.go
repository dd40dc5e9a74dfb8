package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ogzkr/campushub/internal/app/controllers"
	"github.com/ogzkr/campushub/internal/middleware"
)

// SetupRouter registers the API route table under /api/v1. Read endpoints
// on posts are public but accept an optional token so responses can carry
// viewer-relative fields.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	superController *controllers.SuperController,
	postController *controllers.PostController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
		auth.POST("/logout", authMiddleware.JWTAuth(), authController.Logout)
		auth.POST("/logout_all", authMiddleware.JWTAuth(), authController.LogoutAll)
	}

	users := v1.Group("/users", authMiddleware.JWTAuth())
	{
		users.GET("", userController.Search)
		users.GET("/me", userController.Me)
		users.PATCH("/me", userController.UpdateMe)
		users.GET("/username/:username", userController.GetByUsername)
		users.GET("/:userId", userController.GetByID)
		users.GET("/:userId/posts", userController.ListPosts)
		users.GET("/:userId/likes", userController.ListLikes)
	}

	supers := v1.Group("/supers", authMiddleware.JWTAuth())
	{
		supers.GET("", superController.Search)
		supers.POST("", superController.Create)
		supers.PATCH("", superController.Edit)
		supers.GET("/:superId", superController.GetByID)
		supers.POST("/:superId/followers", superController.Follow)
		supers.DELETE("/:superId/followers", superController.Unfollow)
	}

	posts := v1.Group("/posts")
	{
		posts.GET("", authMiddleware.OptionalJWTAuth(), postController.List)
		posts.GET("/:postId", authMiddleware.OptionalJWTAuth(), postController.GetByID)
		posts.GET("/:postId/comments", postController.ListComments)

		posts.POST("", authMiddleware.JWTAuth(), postController.Create)
		posts.POST("/:postId/likes", authMiddleware.JWTAuth(), postController.Like)
		posts.DELETE("/:postId/likes", authMiddleware.JWTAuth(), postController.Unlike)
		posts.POST("/:postId/comments", authMiddleware.JWTAuth(), postController.AddComment)
	}
}
