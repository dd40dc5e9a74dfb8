package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ogzkr/campushub/internal/app/models/dto"
	"github.com/ogzkr/campushub/internal/app/services"
	"github.com/ogzkr/campushub/internal/middleware"
	"github.com/ogzkr/campushub/internal/pkg/helpers"
)

// PostController handles post, like and comment endpoints
type PostController struct {
	postService services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService services.PostService) *PostController {
	return &PostController{postService: postService}
}

// List returns the filtered, paginated post feed. All filters are optional
// and combine with AND; repeated or comma-separated tag values use OR.
func (c *PostController) List(ctx *gin.Context) {
	offset, limit := helpers.ParseOffsetLimitParams(ctx)

	filter := dto.PostFilter{
		Title:  ctx.Query("title"),
		Tags:   parseTagParams(ctx),
		Type:   ctx.Query("type"),
		Offset: offset,
		Limit:  limit,
	}

	result, err := c.postService.List(ctx.Request.Context(), middleware.OptionalUserID(ctx), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: result})
}

// parseTagParams accepts both ?tag=a&tag=b and ?tag=a,b
func parseTagParams(ctx *gin.Context) []string {
	var tags []string
	for _, raw := range ctx.QueryArray("tag") {
		for _, value := range strings.Split(raw, ",") {
			if value = strings.TrimSpace(value); value != "" {
				tags = append(tags, value)
			}
		}
	}
	return tags
}

// Create builds an immutable post for the caller
func (c *PostController) Create(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.CreatePostRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	post, err := c.postService.Create(ctx.Request.Context(), userID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("post created", post))
}

// GetByID returns a single post with a fresh like count
func (c *PostController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "postId")
	if !ok {
		return
	}

	post, err := c.postService.GetByID(ctx.Request.Context(), middleware.OptionalUserID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: post})
}

// Like records the caller's like of a post
func (c *PostController) Like(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	id, ok := parseIDParam(ctx, "postId")
	if !ok {
		return
	}

	like, err := c.postService.Like(ctx.Request.Context(), userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("liked", like))
}

// Unlike removes the caller's like of a post
func (c *PostController) Unlike(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	id, ok := parseIDParam(ctx, "postId")
	if !ok {
		return
	}

	if err := c.postService.Unlike(ctx.Request.Context(), userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("unliked"))
}

// AddComment appends a comment to a post
func (c *PostController) AddComment(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	id, ok := parseIDParam(ctx, "postId")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	comment, err := c.postService.AddComment(ctx.Request.Context(), userID, id, req.Text)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	// the commenter is the caller; fill the name from the token claims
	if username, exists := ctx.Get(middleware.ContextUsernameKey); exists {
		if name, ok := username.(string); ok {
			comment.Username = name
		}
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("comment added", comment))
}

// ListComments returns a post's comments in insertion order
func (c *PostController) ListComments(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "postId")
	if !ok {
		return
	}

	comments, err := c.postService.ListComments(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: comments})
}
