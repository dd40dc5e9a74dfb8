package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ogzkr/campushub/internal/app/models/dto"
	"github.com/ogzkr/campushub/internal/app/services"
	"github.com/ogzkr/campushub/internal/middleware"
)

// SuperController handles community entity endpoints
type SuperController struct {
	superService services.SuperService
}

// NewSuperController creates a new SuperController
func NewSuperController(superService services.SuperService) *SuperController {
	return &SuperController{superService: superService}
}

// Create builds a community entity; the caller becomes its leader
func (c *SuperController) Create(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.CreateSuperRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	super, err := c.superService.Create(ctx.Request.Context(), userID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("created", super))
}

// Edit applies a partial update addressed by id and type
func (c *SuperController) Edit(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.EditSuperRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	super, err := c.superService.Edit(ctx.Request.Context(), userID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("updated", super))
}

// GetByID returns a single entity in its kind-specific shape
func (c *SuperController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "superId")
	if !ok {
		return
	}

	super, err := c.superService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: super})
}

// Search finds entities of a kind by name, description or tag value
func (c *SuperController) Search(ctx *gin.Context) {
	kind := ctx.Query("type")
	term := ctx.Query("search")

	result, err := c.superService.Search(ctx.Request.Context(), kind, term)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: result})
}

// Follow adds the caller to the entity's followers
func (c *SuperController) Follow(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	id, ok := parseIDParam(ctx, "superId")
	if !ok {
		return
	}

	if err := c.superService.Follow(ctx.Request.Context(), id, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("following"))
}

// Unfollow removes the caller from the entity's followers
func (c *SuperController) Unfollow(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	id, ok := parseIDParam(ctx, "superId")
	if !ok {
		return
	}

	if err := c.superService.Unfollow(ctx.Request.Context(), id, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("unfollowed"))
}
