package dto

import "github.com/otabek/davomat/internal/app/models"

// MemberEntryRequest names one group member in a daily attendance sheet.
// Status defaults to pending when omitted.
type MemberEntryRequest struct {
	UserID string `json:"userId" binding:"required,uuid" example:"7d4a2c1e-9f3b-4a6d-8e5c-0b1a2c3d4e5f"`
	Status string `json:"status,omitempty" example:"pending" enums:"pending,attending,not-attending"`
}

// CreateAttendanceRequest opens the daily attendance sheet for a group
type CreateAttendanceRequest struct {
	Members []MemberEntryRequest `json:"members" binding:"required,min=1,dive"`
}

// UpdateMemberStatusRequest marks a single member on an existing sheet
type UpdateMemberStatusRequest struct {
	Status string `json:"status" binding:"required" example:"attending" enums:"pending,attending,not-attending"`
}

// AttendanceRecordResponse is the daily sheet together with its tallies
type AttendanceRecordResponse struct {
	Record  *models.AttendanceRecord `json:"record"`
	Summary models.AttendanceSummary `json:"summary"`
}
