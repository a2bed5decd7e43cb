package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/iuermili/LeCourse/internal/app/models/dto"
	"github.com/iuermili/LeCourse/internal/pkg/apperrors"
	"github.com/iuermili/LeCourse/internal/pkg/auth"
)

// HandleAPIError maps application errors to HTTP responses with standard
// error codes. Storage errors never leak query details to the client.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed) || errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, messageOrDefault(err, "Validation failed")),
		})
	case errors.Is(err, apperrors.ErrCourseNotFound) || errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(404, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, messageOrDefault(err, "Resource not found")),
		})
	case errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrInvalidFormat):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid session token"),
		})
	case errors.Is(err, auth.ErrExpiredToken):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Session token expired"),
		})
	case errors.Is(err, apperrors.ErrSessionNotFound) || errors.Is(err, apperrors.ErrSessionExpired):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeSessionNotFound, "Session not found or expired"),
		})
	case errors.Is(err, apperrors.ErrModelUnavailable):
		c.JSON(503, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, "Language model is unavailable"),
		})
	case errors.Is(err, apperrors.ErrModelParse):
		c.JSON(500, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeModelOutputInvalid, "Model did not return valid JSON"),
		})
	case errors.Is(err, apperrors.ErrStorage):
		c.JSON(500, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Database error"),
		})
	default:
		c.JSON(500, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		})
	}
}

// messageOrDefault surfaces a CustomError's message when one is present
func messageOrDefault(err error, fallback string) string {
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		return customErr.Message
	}
	return fallback
}
