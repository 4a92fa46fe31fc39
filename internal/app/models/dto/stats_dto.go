package dto

// GroupAttendanceStats is one user's standing in one group. TotalSessions
// counts 24h windows elapsed since the user's first entry in the group;
// Percentage is Attended/TotalSessions*100, zero when no sessions elapsed.
type GroupAttendanceStats struct {
	GroupID       string  `json:"groupId"`
	GroupTitle    string  `json:"groupTitle"`
	TotalSessions int     `json:"totalSessions"`
	Attended      int     `json:"attended"`
	NotAttended   int     `json:"notAttended"`
	Pending       int     `json:"pending"`
	Percentage    float64 `json:"percentage"`
}

// TodayActivity is one group's entry for the current UTC day
type TodayActivity struct {
	GroupID    string  `json:"groupId"`
	GroupTitle string  `json:"groupTitle"`
	Status     string  `json:"status"`
	Timestamp  *string `json:"timestamp"`
}

// UserAttendanceSummary is the full per-user aggregate: per-group rows,
// an overall roll-up and today's activity feed
type UserAttendanceSummary struct {
	UserID        string                 `json:"userId"`
	Groups        []GroupAttendanceStats `json:"groups"`
	TotalSessions int                    `json:"totalSessions"`
	Attended      int                    `json:"attended"`
	NotAttended   int                    `json:"notAttended"`
	Pending       int                    `json:"pending"`
	Percentage    float64                `json:"percentage"`
	Today         []TodayActivity        `json:"today"`
}

// RosterMember merges a group member with that day's attendance entry.
// Members with no entry for the day show as pending with nil timestamps.
type RosterMember struct {
	UserID    string  `json:"userId"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Status    string  `json:"status"`
	MarkedAt  *string `json:"markedAt"`
	UpdatedAt *string `json:"updatedAt"`
}

// GroupRosterResponse is a group's roster for a single day plus its tallies
type GroupRosterResponse struct {
	GroupID    string         `json:"groupId"`
	GroupTitle string         `json:"groupTitle"`
	Date       string         `json:"date" example:"2025-05-02"`
	HasRecord  bool           `json:"hasRecord"`
	Members    []RosterMember `json:"members"`
	Stats      RosterStats    `json:"stats"`
}

// RosterStats are the tallies for one group-day
type RosterStats struct {
	Total        int     `json:"total"`
	Attending    int     `json:"attending"`
	NotAttending int     `json:"notAttending"`
	Pending      int     `json:"pending"`
	Rate         float64 `json:"rate"`
}

// LeaderboardEntry is one user's row in the cross-user ranking. Deleted
// users are zero-filled rather than dropped so ids in the request always
// map to a row.
type LeaderboardEntry struct {
	UserID        string   `json:"userId"`
	Username      string   `json:"username"`
	Email         string   `json:"email"`
	Groups        []string `json:"groups"`
	TotalSessions int      `json:"totalSessions"`
	Attended      int      `json:"attended"`
	Percentage    float64  `json:"percentage"`
}

// LeaderboardResponse ranks users by attendance percentage, descending
type LeaderboardResponse struct {
	Users                []LeaderboardEntry `json:"users"`
	AverageAttendance    float64            `json:"averageAttendance"`
	AverageGroupsPerUser float64            `json:"averageGroupsPerUser"`
}
