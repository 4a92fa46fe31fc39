package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/otabek/davomat/internal/app/models/dto"
	"github.com/otabek/davomat/internal/app/services"
	"github.com/otabek/davomat/internal/middleware"
)

// GroupController handles the group surface the ledger depends on
type GroupController struct {
	statsService services.StatsService
	groupService services.GroupService
}

// NewGroupController creates a new GroupController
func NewGroupController(statsService services.StatsService, groupService services.GroupService) *GroupController {
	return &GroupController{
		statsService: statsService,
		groupService: groupService,
	}
}

// GetGroup godoc
// @Summary Get a group's roster for one day
// @Description Returns the member list merged with the attendance entries of the requested day (defaults to today, UTC). Members without an entry show as pending.
// @Tags groups
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Group ID"
// @Param date query string false "Day in YYYY-MM-DD (UTC), defaults to today"
// @Success 200 {object} dto.APIResponse{data=dto.GroupRosterResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /groups/{id} [get]
func (c *GroupController) GetGroup(ctx *gin.Context) {
	groupID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	date := time.Now().UTC()
	if raw := ctx.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.APIResponse{
				Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid date, expected YYYY-MM-DD").WithField("date"),
			})
			return
		}
		date = parsed
	}

	roster, err := c.statsService.PerGroupRoster(ctx.Request.Context(), groupID, date)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: roster})
}

// RemoveMember godoc
// @Summary Remove a member from a group
// @Description Removes the membership and the member's entries from the group's attendance history.
// @Tags groups
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Group ID"
// @Param userId path string true "Member user ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /groups/{id}/members/{userId} [delete]
func (c *GroupController) RemoveMember(ctx *gin.Context) {
	groupID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := parseUUIDParam(ctx, "userId")
	if !ok {
		return
	}

	if err := c.groupService.RemoveMember(ctx.Request.Context(), groupID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Member removed"}})
}

// DeleteGroup godoc
// @Summary Delete a group
// @Description Deletes the group with its memberships and attendance history, and removes the stored group image.
// @Tags groups
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Group ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /groups/{id} [delete]
func (c *GroupController) DeleteGroup(ctx *gin.Context) {
	groupID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.groupService.Delete(ctx.Request.Context(), groupID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Group deleted"}})
}
