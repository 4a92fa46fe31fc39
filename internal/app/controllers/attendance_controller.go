package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/otabek/davomat/internal/app/models/dto"
	"github.com/otabek/davomat/internal/app/services"
	"github.com/otabek/davomat/internal/middleware"
)

// parseUUIDParam parses a UUID path parameter
func parseUUIDParam(ctx *gin.Context, paramName string) (string, bool) {
	id := ctx.Param(paramName)
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid id").WithField(paramName),
		})
		return "", false
	}
	return id, true
}

// AttendanceController handles attendance sheet operations
type AttendanceController struct {
	attendanceService services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService services.AttendanceService) *AttendanceController {
	return &AttendanceController{attendanceService: attendanceService}
}

// CreateAttendance godoc
// @Summary Create today's attendance sheet for a group
// @Description Opens the attendance record for the current UTC day with the listed members. Fails with 409 if the sheet already exists.
// @Tags attendance
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Group ID"
// @Param request body dto.CreateAttendanceRequest true "Members to include"
// @Success 201 {object} dto.APIResponse{data=dto.AttendanceRecordResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 409 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /groups/{id}/attendance [post]
func (c *AttendanceController) CreateAttendance(ctx *gin.Context) {
	groupID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request body"),
		})
		return
	}

	result, err := c.attendanceService.CreateDailyAttendance(ctx.Request.Context(), groupID, req.Members)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: result})
}

// GetRecord godoc
// @Summary Get an attendance sheet
// @Description Returns the record with its member entries and status tallies.
// @Tags attendance
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Attendance record ID"
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceRecordResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /attendance/{id} [get]
func (c *AttendanceController) GetRecord(ctx *gin.Context) {
	attendanceID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	result, err := c.attendanceService.GetRecord(ctx.Request.Context(), attendanceID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: result})
}

// UpdateMemberStatus godoc
// @Summary Update one member's status on an attendance sheet
// @Description Sets the member's status to pending, attending or not-attending. Safe to repeat.
// @Tags attendance
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Attendance record ID"
// @Param userId path string true "Member user ID"
// @Param request body dto.UpdateMemberStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceRecordResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /attendance/{id}/members/{userId} [patch]
func (c *AttendanceController) UpdateMemberStatus(ctx *gin.Context) {
	attendanceID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := parseUUIDParam(ctx, "userId")
	if !ok {
		return
	}

	var req dto.UpdateMemberStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request body"),
		})
		return
	}

	result, err := c.attendanceService.SetMemberStatus(ctx.Request.Context(), attendanceID, userID, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: result})
}
