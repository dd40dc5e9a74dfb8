package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ogzkr/campushub/internal/app/models/dto"
	"github.com/ogzkr/campushub/internal/app/services"
	"github.com/ogzkr/campushub/internal/middleware"
	"github.com/ogzkr/campushub/internal/pkg/apperrors"
)

// UserController handles user directory endpoints
type UserController struct {
	userService services.UserService
	postService services.PostService
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService, postService services.PostService) *UserController {
	return &UserController{
		userService: userService,
		postService: postService,
	}
}

// Search finds users by a fuzzy term against username and display name
func (c *UserController) Search(ctx *gin.Context) {
	term := ctx.Query("search")

	result, err := c.userService.Search(ctx.Request.Context(), term)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: result})
}

// Me returns the authenticated user's own profile
func (c *UserController) Me(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	user, err := c.userService.Me(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: user})
}

// UpdateMe applies a partial update to the authenticated user's profile
func (c *UserController) UpdateMe(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.UpdateUserRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, err := c.userService.UpdateMe(ctx.Request.Context(), userID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("profile updated", user))
}

// GetByID returns a user's public profile
func (c *UserController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	user, err := c.userService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: user})
}

// GetByUsername resolves a fuzzy username to a single profile
func (c *UserController) GetByUsername(ctx *gin.Context) {
	username := ctx.Param("username")
	if username == "" {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("invalid username"))
		return
	}

	user, err := c.userService.GetByUsername(ctx.Request.Context(), username)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: user})
}

// ListPosts returns a user's posts
func (c *UserController) ListPosts(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	posts, err := c.postService.ListByUser(ctx.Request.Context(), middleware.OptionalUserID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{"posts": posts}})
}

// ListLikes returns the posts a user has liked
func (c *UserController) ListLikes(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	posts, err := c.postService.ListLikedByUser(ctx.Request.Context(), middleware.OptionalUserID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{"posts": posts}})
}

// parseIDParam parses a numeric path parameter, answering 400 on garbage
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("invalid "+name))
		return 0, false
	}
	return id, true
}
