package services

import (
	"context"
	"fmt"
	"time"

	"github.com/otabek/davomat/internal/app/models"
	"github.com/otabek/davomat/internal/app/models/dto"
	"github.com/otabek/davomat/internal/pkg/apperrors"
	"github.com/otabek/davomat/internal/pkg/cache"
	"github.com/otabek/davomat/internal/pkg/logger"
	"github.com/otabek/davomat/internal/pkg/metrics"
)

// AttendanceService defines the attendance ledger operations
type AttendanceService interface {
	CreateDailyAttendance(ctx context.Context, groupID string, members []dto.MemberEntryRequest) (*dto.AttendanceRecordResponse, error)
	SetMemberStatus(ctx context.Context, attendanceID, userID, status string) (*dto.AttendanceRecordResponse, error)
	GetRecord(ctx context.Context, id string) (*dto.AttendanceRecordResponse, error)
}

// attendanceServiceImpl implements the AttendanceService interface
type attendanceServiceImpl struct {
	attendanceRepo AttendanceStore
	groupRepo      GroupStore
	cache          *cache.Cache
}

// NewAttendanceService creates a new attendance service instance
func NewAttendanceService(
	attendanceRepo AttendanceStore,
	groupRepo GroupStore,
	cache *cache.Cache,
) AttendanceService {
	return &attendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		groupRepo:      groupRepo,
		cache:          cache,
	}
}

// CreateDailyAttendance opens the attendance sheet for the group's current
// UTC day. Every listed member must belong to the group; a second sheet for
// the same day is rejected by the database's unique constraint.
func (s *attendanceServiceImpl) CreateDailyAttendance(ctx context.Context, groupID string, members []dto.MemberEntryRequest) (*dto.AttendanceRecordResponse, error) {
	if len(members) == 0 {
		return nil, apperrors.NewValidationError("members cannot be empty")
	}

	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return nil, err
	}

	entries, err := s.buildEntries(ctx, groupID, members)
	if err != nil {
		return nil, err
	}

	record, err := s.attendanceRepo.CreateDaily(ctx, groupID, entries, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	metrics.AttendanceSheetsCreated.Inc()
	logger.Info().
		Str("groupId", groupID).
		Str("attendanceId", record.ID).
		Int("members", len(entries)).
		Msg("Daily attendance sheet created")

	s.invalidateStats(ctx, memberIDs(entries))

	return &dto.AttendanceRecordResponse{Record: record, Summary: record.Summarize()}, nil
}

// buildEntries validates the requested members against the group roster
// and fills in the default pending status.
func (s *attendanceServiceImpl) buildEntries(ctx context.Context, groupID string, members []dto.MemberEntryRequest) ([]models.MemberAttendanceEntry, error) {
	roster, err := s.groupRepo.GetMemberIDs(ctx, groupID)
	if err != nil {
		return nil, err
	}
	inGroup := make(map[string]bool, len(roster))
	for _, id := range roster {
		inGroup[id] = true
	}

	entries := make([]models.MemberAttendanceEntry, 0, len(members))
	seen := make(map[string]bool, len(members))
	var invalid []string
	for _, m := range members {
		if seen[m.UserID] {
			return nil, apperrors.NewValidationError(fmt.Sprintf("duplicate member %s", m.UserID))
		}
		seen[m.UserID] = true

		if !inGroup[m.UserID] {
			invalid = append(invalid, m.UserID)
			continue
		}

		status := models.AttendanceStatus(m.Status)
		if m.Status == "" {
			status = models.StatusPending
		}
		if !status.IsValid() {
			return nil, apperrors.ErrInvalidStatus
		}
		entries = append(entries, models.MemberAttendanceEntry{UserID: m.UserID, Status: status})
	}
	if len(invalid) > 0 {
		return nil, apperrors.NewInvalidMembersError(invalid)
	}
	return entries, nil
}

// SetMemberStatus marks a single member on an existing sheet. The update
// is a single-row write, so concurrent marks resolve last-write-wins and
// repeating the same mark is harmless.
func (s *attendanceServiceImpl) SetMemberStatus(ctx context.Context, attendanceID, userID, status string) (*dto.AttendanceRecordResponse, error) {
	st := models.AttendanceStatus(status)
	if !st.IsValid() {
		return nil, apperrors.ErrInvalidStatus
	}

	record, err := s.attendanceRepo.UpdateMemberStatus(ctx, attendanceID, userID, st, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	metrics.StatusUpdates.WithLabelValues(status).Inc()
	logger.Info().
		Str("attendanceId", attendanceID).
		Str("userId", userID).
		Str("status", status).
		Msg("Attendance status updated")

	s.invalidateStats(ctx, []string{userID})

	return &dto.AttendanceRecordResponse{Record: record, Summary: record.Summarize()}, nil
}

// GetRecord returns a sheet with its tallies
func (s *attendanceServiceImpl) GetRecord(ctx context.Context, id string) (*dto.AttendanceRecordResponse, error) {
	record, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.AttendanceRecordResponse{Record: record, Summary: record.Summarize()}, nil
}

func (s *attendanceServiceImpl) invalidateStats(ctx context.Context, userIDs []string) {
	for _, id := range userIDs {
		s.cache.InvalidatePrefix(ctx, userSummaryCachePrefix(id))
	}
	s.cache.InvalidatePrefix(ctx, leaderboardCachePrefix)
}

func memberIDs(entries []models.MemberAttendanceEntry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.UserID
	}
	return ids
}
