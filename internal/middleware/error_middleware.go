package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ogzkr/campushub/internal/app/models/dto"
	"github.com/ogzkr/campushub/internal/pkg/apperrors"
	"github.com/ogzkr/campushub/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses. Field-level
// validation failures serialize the full field map; everything else carries
// a single message under "detail". Anomalies (multiple matches included)
// surface as a generic 500 with no internals leaked.
func HandleAPIError(c *gin.Context, err error) {
	var ve *apperrors.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, dto.NewFieldErrorResponse(ve.Fields))
		return
	}

	switch {
	case apperrors.Is(err, apperrors.ErrValidation, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.NewMessageResponse(err.Error()))

	case apperrors.Is(err, apperrors.ErrAuthenticationFailed):
		c.JSON(http.StatusUnauthorized, dto.NewMessageResponse("Invalid credentials"))

	case apperrors.Is(err, apperrors.ErrUnauthenticated,
		apperrors.ErrTokenExpired, apperrors.ErrTokenInvalid,
		apperrors.ErrTokenRevoked, apperrors.ErrSessionNotFound):
		c.JSON(http.StatusUnauthorized, dto.NewMessageResponse("Authentication required"))

	case apperrors.Is(err, apperrors.ErrNotFound,
		apperrors.ErrUserNotFound, apperrors.ErrSuperNotFound, apperrors.ErrPostNotFound):
		c.JSON(http.StatusNotFound, dto.NewMessageResponse(err.Error()))

	case apperrors.Is(err, apperrors.ErrConflict,
		apperrors.ErrUsernameTaken, apperrors.ErrAlreadyLiked):
		c.JSON(http.StatusConflict, dto.NewMessageResponse(err.Error()))

	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, dto.NewMessageResponse("Internal server error"))
	}
}
