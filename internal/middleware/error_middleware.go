package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/otabek/davomat/internal/app/models/dto"
	"github.com/otabek/davomat/internal/pkg/apperrors"
	"github.com/otabek/davomat/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses. Controllers funnel
// every service error through here so status codes stay consistent.
func HandleAPIError(c *gin.Context, err error) {
	var custom *apperrors.CustomError
	detailsOf := func(d *dto.ErrorDetail) *dto.ErrorDetail {
		if errors.As(err, &custom) {
			if custom.Message != "" {
				d.Message = custom.Message
			}
			if custom.Details != nil {
				d = d.WithDetails(custom.Details)
			}
		}
		return d
	}

	switch {
	case errors.Is(err, apperrors.ErrGroupNotFound):
		c.JSON(http.StatusNotFound, dto.APIResponse{
			Error: detailsOf(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Group not found")),
		})
	case errors.Is(err, apperrors.ErrUserNotFound):
		c.JSON(http.StatusNotFound, dto.APIResponse{
			Error: detailsOf(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "User not found")),
		})
	case errors.Is(err, apperrors.ErrAttendanceNotFound):
		c.JSON(http.StatusNotFound, dto.APIResponse{
			Error: detailsOf(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Attendance record not found")),
		})
	case errors.Is(err, apperrors.ErrCertificateNotFound):
		c.JSON(http.StatusNotFound, dto.APIResponse{
			Error: detailsOf(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Certificate not found")),
		})
	case errors.Is(err, apperrors.ErrMemberNotInRecord):
		c.JSON(http.StatusNotFound, dto.APIResponse{
			Error: detailsOf(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Member is not on this attendance record")),
		})
	case errors.Is(err, apperrors.ErrDuplicateAttendance):
		c.JSON(http.StatusConflict, dto.APIResponse{
			Error: detailsOf(dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Attendance already recorded for today")),
		})
	case errors.Is(err, apperrors.ErrInvalidMembers):
		c.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: detailsOf(dto.NewErrorDetail(dto.ErrorCodeResourceInvalid, "Some members do not belong to this group")),
		})
	case errors.Is(err, apperrors.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: detailsOf(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid attendance status")),
		})
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: detailsOf(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")),
		})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: detailsOf(dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")),
		})
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.APIResponse{
			Error: detailsOf(dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")),
		})
	case errors.Is(err, apperrors.ErrTemplateMissing), errors.Is(err, apperrors.ErrCertificateRenderFailed):
		logger.Error().Err(err).Msg("Certificate rendering failed")
		c.JSON(http.StatusInternalServerError, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeRenderFailed, "Certificate could not be generated"),
		})
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled service error")
		c.JSON(http.StatusInternalServerError, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		})
	}
}
