package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/otabek/davomat/internal/app/models/dto"
	"github.com/otabek/davomat/internal/app/services"
	"github.com/otabek/davomat/internal/middleware"
	"github.com/otabek/davomat/internal/pkg/helpers"
)

// UserController serves per-user attendance aggregates
type UserController struct {
	statsService services.StatsService
}

// NewUserController creates a new UserController
func NewUserController(statsService services.StatsService) *UserController {
	return &UserController{statsService: statsService}
}

// MyAttendance godoc
// @Summary Get the caller's attendance summary
// @Description Per-group session counts, attendance percentage, the overall roll-up and today's activity feed. Covers the current month unless since is given.
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param since query string false "Start of the aggregation window (YYYY-MM-DD), defaults to the first of the current month"
// @Success 200 {object} dto.APIResponse{data=dto.UserAttendanceSummary}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /users/me/attendance [get]
func (c *UserController) MyAttendance(ctx *gin.Context) {
	userID := ctx.GetString(middleware.ContextUserID)
	if userID == "" {
		ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
		return
	}

	since := helpers.MonthStartUTC(time.Now())
	if raw := ctx.Query("since"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.APIResponse{
				Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid since date, expected YYYY-MM-DD").WithField("since"),
			})
			return
		}
		since = parsed
	}

	summary, err := c.statsService.PerUserSummary(ctx.Request.Context(), userID, since)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: summary})
}

// AttendanceStats godoc
// @Summary Rank users by attendance
// @Description Per-user attendance stats for the given ids, sorted by percentage, with averages across the set. Unknown ids are zero-filled.
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param ids query string true "Comma-separated user ids"
// @Success 200 {object} dto.APIResponse{data=dto.LeaderboardResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /users/attendance-stats [get]
func (c *UserController) AttendanceStats(ctx *gin.Context) {
	raw := strings.TrimSpace(ctx.Query("ids"))
	if raw == "" {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "ids query parameter is required").WithField("ids"),
		})
		return
	}

	var ids []string
	for _, id := range strings.Split(raw, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, err := uuid.Parse(id); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.APIResponse{
				Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid id in ids").WithField("ids"),
			})
			return
		}
		ids = append(ids, id)
	}

	stats, err := c.statsService.CrossUserLeaderboard(ctx.Request.Context(), ids)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: stats})
}
