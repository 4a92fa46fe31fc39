package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/otabek/davomat/internal/app/models"
	"github.com/otabek/davomat/internal/app/models/dto"
	"github.com/otabek/davomat/internal/app/repositories"
	"github.com/otabek/davomat/internal/pkg/apperrors"
	"github.com/otabek/davomat/internal/pkg/cache"
	"github.com/otabek/davomat/internal/pkg/helpers"
	"github.com/otabek/davomat/internal/pkg/logger"
)

const leaderboardCachePrefix = "stats:leaderboard:"

func userSummaryCachePrefix(userID string) string {
	return "stats:user:" + userID + ":"
}

func userSummaryCacheKey(userID string, since time.Time) string {
	return userSummaryCachePrefix(userID) + since.UTC().Format("2006-01-02")
}

// StatsService computes read-side attendance aggregates. It never writes
// to the ledger.
type StatsService interface {
	PerUserSummary(ctx context.Context, userID string, since time.Time) (*dto.UserAttendanceSummary, error)
	PerGroupRoster(ctx context.Context, groupID string, date time.Time) (*dto.GroupRosterResponse, error)
	CrossUserLeaderboard(ctx context.Context, userIDs []string) (*dto.LeaderboardResponse, error)
	TodayActivityFeed(ctx context.Context, userID string) ([]dto.TodayActivity, error)
}

// statsServiceImpl implements the StatsService interface
type statsServiceImpl struct {
	attendanceRepo AttendanceStore
	groupRepo      GroupStore
	userRepo       UserStore
	cache          *cache.Cache
	now            func() time.Time
}

// NewStatsService creates a new stats service instance
func NewStatsService(
	attendanceRepo AttendanceStore,
	groupRepo GroupStore,
	userRepo UserStore,
	cache *cache.Cache,
) StatsService {
	return &statsServiceImpl{
		attendanceRepo: attendanceRepo,
		groupRepo:      groupRepo,
		userRepo:       userRepo,
		cache:          cache,
		now:            time.Now,
	}
}

// PerUserSummary aggregates one user's standing across all their groups,
// counting only records created at or after since (the zero time means full
// history). Session counting anchors at the user's earliest entry in each
// group within the window and falls back to the group's creation time when
// no entry exists yet.
func (s *statsServiceImpl) PerUserSummary(ctx context.Context, userID string, since time.Time) (*dto.UserAttendanceSummary, error) {
	key := userSummaryCacheKey(userID, since)
	var cached dto.UserAttendanceSummary
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	now := s.now().UTC()

	groups, err := s.groupRepo.GetGroupsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries, err := s.attendanceRepo.ListEntriesForUser(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	summary := &dto.UserAttendanceSummary{
		UserID: userID,
		Groups: make([]dto.GroupAttendanceStats, 0, len(groups)),
		Today:  []dto.TodayActivity{},
	}
	byGroup := entriesByGroup(entries)
	for _, g := range groups {
		row := groupStats(g, byGroup[g.ID], now)
		summary.Groups = append(summary.Groups, row)
		summary.TotalSessions += row.TotalSessions
		summary.Attended += row.Attended
		summary.NotAttended += row.NotAttended
		summary.Pending += row.Pending
	}
	summary.Percentage = percentage(summary.Attended, summary.TotalSessions)

	today, err := s.todayFeed(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	summary.Today = today

	s.cache.Set(ctx, key, summary)
	return summary, nil
}

// groupStats computes one user's row for one group
func groupStats(g models.Group, entries []repositories.UserEntryStat, now time.Time) dto.GroupAttendanceStats {
	row := dto.GroupAttendanceStats{GroupID: g.ID, GroupTitle: g.Title}

	var anchor time.Time
	for _, e := range entries {
		if anchor.IsZero() || e.EntryCreatedAt.Before(anchor) {
			anchor = e.EntryCreatedAt
		}
		switch e.Status {
		case models.StatusAttending:
			row.Attended++
		case models.StatusNotAttending:
			row.NotAttended++
		default:
			row.Pending++
		}
	}
	if anchor.IsZero() {
		anchor = g.CreatedAt
	}
	row.TotalSessions = helpers.SessionsSince(anchor, now)
	// entries recorded faster than the 24h window elapses must not push
	// the rate past 100
	if row.TotalSessions < row.Attended+row.NotAttended+row.Pending {
		row.TotalSessions = row.Attended + row.NotAttended + row.Pending
	}
	row.Percentage = percentage(row.Attended, row.TotalSessions)
	return row
}

// TodayActivityFeed lists the user's entries for the current UTC day, one
// item per group that has a record today.
func (s *statsServiceImpl) TodayActivityFeed(ctx context.Context, userID string) ([]dto.TodayActivity, error) {
	return s.todayFeed(ctx, userID, s.now().UTC())
}

func (s *statsServiceImpl) todayFeed(ctx context.Context, userID string, now time.Time) ([]dto.TodayActivity, error) {
	start, end := helpers.DayWindowUTC(now)
	entries, err := s.attendanceRepo.ListTodayForUser(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	feed := make([]dto.TodayActivity, 0, len(entries))
	for _, e := range entries {
		ts := e.EntryCreatedAt.Format(time.RFC3339)
		feed = append(feed, dto.TodayActivity{
			GroupID:    e.GroupID,
			GroupTitle: e.GroupTitle,
			Status:     string(e.Status),
			Timestamp:  &ts,
		})
	}
	return feed, nil
}

// PerGroupRoster merges the group's member list with the entries of a
// single day. Members without an entry default to pending with nil
// timestamps; the caller can tell a missing sheet apart via HasRecord.
func (s *statsServiceImpl) PerGroupRoster(ctx context.Context, groupID string, date time.Time) (*dto.GroupRosterResponse, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	members, err := s.groupRepo.GetMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}

	day := helpers.DayUTC(date)
	record, err := s.attendanceRepo.FindByGroupAndDay(ctx, groupID, day)
	if err != nil {
		return nil, err
	}

	entryByUser := map[string]models.MemberAttendanceEntry{}
	if record != nil {
		for _, e := range record.Members {
			entryByUser[e.UserID] = e
		}
	}

	resp := &dto.GroupRosterResponse{
		GroupID:    group.ID,
		GroupTitle: group.Title,
		Date:       day.Format("2006-01-02"),
		HasRecord:  record != nil,
		Members:    make([]dto.RosterMember, 0, len(members)),
	}
	for _, m := range members {
		rm := dto.RosterMember{
			UserID:   m.ID,
			Username: m.Username,
			Email:    m.Email,
			Status:   string(models.StatusPending),
		}
		if e, ok := entryByUser[m.ID]; ok {
			rm.Status = string(e.Status)
			marked := e.CreatedAt.Format(time.RFC3339)
			updated := e.UpdatedAt.Format(time.RFC3339)
			rm.MarkedAt = &marked
			rm.UpdatedAt = &updated
		}
		resp.Members = append(resp.Members, rm)

		resp.Stats.Total++
		switch rm.Status {
		case string(models.StatusAttending):
			resp.Stats.Attending++
		case string(models.StatusNotAttending):
			resp.Stats.NotAttending++
		default:
			resp.Stats.Pending++
		}
	}
	resp.Stats.Rate = percentage(resp.Stats.Attending, resp.Stats.Total)

	return resp, nil
}

// CrossUserLeaderboard ranks the given users by attendance percentage.
// Unknown ids are zero-filled rather than rejected so a dangling reference
// in a caller's list never fails the whole report.
func (s *statsServiceImpl) CrossUserLeaderboard(ctx context.Context, userIDs []string) (*dto.LeaderboardResponse, error) {
	if len(userIDs) == 0 {
		return nil, apperrors.NewValidationError("userIds cannot be empty")
	}

	key := leaderboardCacheKey(userIDs)
	var cached dto.LeaderboardResponse
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	now := s.now().UTC()

	users, err := s.userRepo.ListByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	userByID := make(map[string]models.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	groupsByUser, err := s.groupRepo.GetGroupsForUsers(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	entries, err := s.attendanceRepo.ListEntriesForUsers(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	entriesByUser := map[string][]repositories.UserEntryStat{}
	for _, e := range entries {
		entriesByUser[e.UserID] = append(entriesByUser[e.UserID], e)
	}

	resp := &dto.LeaderboardResponse{Users: make([]dto.LeaderboardEntry, 0, len(userIDs))}
	totalGroups := 0
	for _, id := range userIDs {
		entry := dto.LeaderboardEntry{UserID: id, Groups: []string{}}
		if u, ok := userByID[id]; ok {
			entry.Username = u.Username
			entry.Email = u.Email
		} else {
			logger.Warn().Str("userId", id).Msg("Leaderboard references unknown user, zero-filling")
		}

		byGroup := entriesByGroup(entriesByUser[id])
		for _, g := range groupsByUser[id] {
			row := groupStats(g, byGroup[g.ID], now)
			entry.Groups = append(entry.Groups, g.Title)
			entry.TotalSessions += row.TotalSessions
			entry.Attended += row.Attended
		}
		entry.Percentage = percentage(entry.Attended, entry.TotalSessions)

		totalGroups += len(entry.Groups)
		resp.Users = append(resp.Users, entry)
	}

	sort.SliceStable(resp.Users, func(i, j int) bool {
		return resp.Users[i].Percentage > resp.Users[j].Percentage
	})

	if n := len(resp.Users); n > 0 {
		var sum float64
		for _, u := range resp.Users {
			sum += u.Percentage
		}
		resp.AverageAttendance = sum / float64(n)
		resp.AverageGroupsPerUser = float64(totalGroups) / float64(n)
	}

	s.cache.Set(ctx, key, resp)
	return resp, nil
}

func leaderboardCacheKey(userIDs []string) string {
	ids := append([]string(nil), userIDs...)
	sort.Strings(ids)
	return fmt.Sprintf("%s%s", leaderboardCachePrefix, strings.Join(ids, ","))
}

func entriesByGroup(entries []repositories.UserEntryStat) map[string][]repositories.UserEntryStat {
	byGroup := map[string][]repositories.UserEntryStat{}
	for _, e := range entries {
		byGroup[e.GroupID] = append(byGroup[e.GroupID], e)
	}
	return byGroup
}

func percentage(attended, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(attended) / float64(total) * 100
}
